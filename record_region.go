package geoip

// Region is the result of a region-style lookup (spec §3).
type Region struct {
	Request    string
	IP         string
	ISO2       string
	ISO3       string
	Name       string
	Continent  string
	RegionCode string
	RegionName string
	TimeZone   string
}

const (
	regionRev1USOffset     = 1
	regionRev1CanadaOffset = 677
	regionRev1WorldOffset  = 1353
	regionRev1FIPSRange    = 360

	regionRev0Threshold = 1000
	regionRev0CodeOther = 225
)

// regionCodeFromOffset derives the two-letter base-26 region code spec
// §4.6 describes as `chr(n/26 + 65) + chr(n%26 + 65)`.
func regionCodeFromOffset(n int) string {
	return string(rune('A'+n/26)) + string(rune('A'+n%26))
}

// decodeRegion implements spec §4.6's REGION_REV0/REGION_REV1 decoders.
func decodeRegion(ref refData, meta recordMeta, rev0 bool) (*Region, error) {
	p := int(meta.terminal - meta.segmentBase)

	var codeID int
	var regionCode string

	if rev0 {
		if p >= regionRev0Threshold {
			codeID = regionRev0CodeOther
			n := p - regionRev0Threshold
			regionCode = string(rune('A'+n/26)) + string(rune('A'+n%26))
		} else {
			codeID = p
			regionCode = ""
		}
	} else {
		switch {
		case p < regionRev1USOffset:
			codeID = 0
			regionCode = ""
		case p < regionRev1CanadaOffset:
			codeID = regionRev0CodeOther // 225, "US"
			regionCode = regionCodeFromOffset(p - regionRev1USOffset)
		case p < regionRev1WorldOffset:
			codeID = 38 // "CA"
			regionCode = regionCodeFromOffset(p - regionRev1CanadaOffset)
		default:
			codeID = (p - regionRev1WorldOffset) / regionRev1FIPSRange
			regionCode = ""
		}
	}

	country, err := buildCountry(ref, codeID)
	if err != nil {
		return nil, err
	}

	regionName, _ := ref.RegionName(country.ISO2, regionCode)
	tz, _ := lookupTimeZone(ref, country.ISO2, regionCode)

	return &Region{
		ISO2:       country.ISO2,
		ISO3:       country.ISO3,
		Name:       country.Name,
		Continent:  country.Continent,
		RegionCode: regionCode,
		RegionName: regionName,
		TimeZone:   tz,
	}, nil
}

// lookupTimeZone implements the composite-key fallback spec §4.6 describes
// for Region and City records: try iso2+regionCode, then iso2 alone.
func lookupTimeZone(ref refData, iso2, regionCode string) (string, bool) {
	return ref.TimeZone(iso2, regionCode)
}
