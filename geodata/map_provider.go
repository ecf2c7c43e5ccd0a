package geodata

// MapProvider is a slice/map-backed Provider, suitable both as the decoded
// shape of the embedded default table and as a hand-built fixture in tests.
type MapProvider struct {
	CountryCodes      []string
	CountryCodes3     []string
	CountryNames      []string
	CountryContinents []string

	// RegionNames and TimeZones are keyed by "ISO2" or "ISO2REGIONCODE",
	// matching spec §4.6's composite-key lookup order (try iso2+region,
	// then fall back to iso2 alone — TimeZone implements that fallback
	// directly; RegionName does not fall back, per spec §4.6's City/Region
	// decoders which only ever look up the composite key).
	RegionNames map[string]string
	TimeZones   map[string]string
}

func (p *MapProvider) CountryCode(index int) (string, bool) {
	if index < 0 || index >= len(p.CountryCodes) {
		return "", false
	}
	return p.CountryCodes[index], true
}

func (p *MapProvider) CountryCode3(index int) (string, bool) {
	if index < 0 || index >= len(p.CountryCodes3) {
		return "", false
	}
	return p.CountryCodes3[index], true
}

func (p *MapProvider) CountryName(index int) (string, bool) {
	if index < 0 || index >= len(p.CountryNames) {
		return "", false
	}
	return p.CountryNames[index], true
}

func (p *MapProvider) CountryContinent(index int) (string, bool) {
	if index < 0 || index >= len(p.CountryContinents) {
		return "", false
	}
	return p.CountryContinents[index], true
}

func (p *MapProvider) CountryCount() int {
	return len(p.CountryCodes)
}

func (p *MapProvider) RegionName(iso2, regionCode string) (string, bool) {
	v, ok := p.RegionNames[iso2+regionCode]
	return v, ok
}

func (p *MapProvider) TimeZone(iso2, regionCode string) (string, bool) {
	if v, ok := p.TimeZones[iso2+regionCode]; ok {
		return v, true
	}
	v, ok := p.TimeZones[iso2]
	return v, ok
}
