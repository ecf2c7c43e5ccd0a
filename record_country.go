package geoip

// Country is the result of a country-style lookup (spec §3).
type Country struct {
	Request   string
	IP        string
	CodeID    int
	ISO2      string
	ISO3      string
	Name      string
	Continent string
}

// decodeCountry implements spec §4.6's Country-style decoder: code_id is the
// terminal offset minus segment_base, bounds-checked against the reference
// tables, then used to index the four parallel country arrays.
func decodeCountry(ref refData, meta recordMeta) (*Country, error) {
	codeID := int(meta.terminal - meta.segmentBase)
	return buildCountry(ref, codeID)
}

func buildCountry(ref refData, codeID int) (*Country, error) {
	if codeID < 0 || codeID >= ref.CountryCount() {
		return nil, newErr("decodeCountry", ErrCorruptDatabase, nil)
	}

	iso2, _ := ref.CountryCode(codeID)
	iso3, _ := ref.CountryCode3(codeID)
	name, _ := ref.CountryName(codeID)
	continent, _ := ref.CountryContinent(codeID)

	return &Country{
		CodeID:    codeID,
		ISO2:      iso2,
		ISO3:      iso3,
		Name:      name,
		Continent: continent,
	}, nil
}

// decodeNetSpeedLegacy implements spec §4.6's "NETSPEED legacy" special case:
// the code_id IS the speed class (0..3), returned as-is rather than indexed
// into the country tables.
func decodeNetSpeedLegacy(meta recordMeta) int {
	return int(meta.terminal - meta.segmentBase)
}
