package geodata

// Sample returns a small illustrative reference table covering the indices
// the specification calls out by name (spec §6.1: index 0 is the "--"/"N/A"
// sentinel, 1 is "AP", 2 is "EU", 3 is "AD", ...). It is deliberately not a
// complete MaxMind country table — the full table is exactly the kind of
// external, process-wide reference data the specification treats as an
// injected collaborator (see spec §1, "OUT OF SCOPE"). Production callers
// load a complete table with LoadMsgpack/LoadMsgpackBytes and pass it to
// geoip.WithReferenceData; Sample exists so this package, and the geoip
// package's examples, work out of the box against small synthetic fixtures.
func Sample() *MapProvider {
	return &MapProvider{
		CountryCodes:      []string{"--", "AP", "EU", "AD", "AE", "US", "CA", "SK", "GB", "FR", "DE", "JP", "AU"},
		CountryCodes3:     []string{"--", "AP", "EU", "AND", "ARE", "USA", "CAN", "SVK", "GBR", "FRA", "DEU", "JPN", "AUS"},
		CountryNames:      []string{"N/A", "Asia/Pacific Region", "Europe", "Andorra", "United Arab Emirates", "United States", "Canada", "Slovakia", "United Kingdom", "France", "Germany", "Japan", "Australia"},
		CountryContinents: []string{"--", "AS", "EU", "EU", "AS", "NA", "NA", "EU", "EU", "EU", "EU", "AS", "OC"},
		RegionNames: map[string]string{
			"USCA": "California",
			"USTX": "Texas",
			"USNY": "New York",
			"CAON": "Ontario",
		},
		TimeZones: map[string]string{
			"USCA": "America/Los_Angeles",
			"USTX": "America/Chicago",
			"USNY": "America/New_York",
			"CAON": "America/Toronto",
			"US":   "America/New_York",
			"GB":   "Europe/London",
			"FR":   "Europe/Paris",
			"DE":   "Europe/Berlin",
			"JP":   "Asia/Tokyo",
			"AU":   "Australia/Sydney",
		},
	}
}
