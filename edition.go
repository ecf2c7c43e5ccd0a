package geoip

// Edition identifies the on-disk schema of a legacy GeoIP database, decoded
// from the trailing structure-info marker (spec §6.1). The raw marker byte
// has already had the >=106 normalisation (subtract 105) applied by the time
// it becomes an Edition.
type Edition int

const (
	EditionCountry          Edition = 1
	EditionCityRev1         Edition = 2
	EditionRegionRev1       Edition = 3
	EditionISP              Edition = 4
	EditionOrg              Edition = 5
	EditionCityRev0         Edition = 6
	EditionRegionRev0       Edition = 7
	EditionProxy            Edition = 8
	EditionASNum            Edition = 9
	EditionNetSpeed         Edition = 10
	EditionDomain           Edition = 11
	EditionCountryV6        Edition = 12
	EditionLocationA        Edition = 13
	EditionAccuracyRadius   Edition = 14
	EditionLargeCountry     Edition = 17
	EditionLargeCountryV6   Edition = 18
	EditionASNumV6          Edition = 21
	EditionISPV6            Edition = 22
	EditionOrgV6            Edition = 23
	EditionDomainV6         Edition = 24
	EditionLocationAV6      Edition = 25
	EditionRegistrar        Edition = 26
	EditionRegistrarV6      Edition = 27
	EditionUserType         Edition = 28
	EditionUserTypeV6       Edition = 29
	EditionCityRev1V6       Edition = 30
	EditionCityRev0V6       Edition = 31
	EditionNetSpeedRev1     Edition = 32
	EditionNetSpeedRev1V6   Edition = 33
	EditionCountryConf      Edition = 34
	EditionCityConf         Edition = 35
	EditionRegionConf       Edition = 36
	EditionPostalConf       Edition = 37
	EditionAccuracyRadiusV6 Edition = 38
)

// structureNormalizationThreshold and offset implement spec §4.4: a raw
// marker byte >= 106 is normalised by subtracting 105.
const (
	structureNormalizationThreshold = 106
	structureNormalizationOffset    = 105
)

func normalizeEditionByte(raw byte) Edition {
	v := int(raw)
	if v >= structureNormalizationThreshold {
		v -= structureNormalizationOffset
	}
	return Edition(v)
}

// segmentFamily groups editions by how segment_base is determined and
// record_length/ip_bits are assigned, per spec §4.3.
type segmentFamily int

const (
	familyCountry segmentFamily = iota
	familyRegionRev0
	familyRegionRev1
	familyVarSeg
)

type editionAttrs struct {
	ipBits       int
	recordLength int
	family       segmentFamily
}

// fourByteRecordEditions is the set of editions whose data region uses a
// 4-byte record length instead of the default 3 (spec §4.3).
var fourByteRecordEditions = map[Edition]bool{
	EditionOrg:              true,
	EditionOrgV6:            true,
	EditionISP:              true,
	EditionISPV6:            true,
	EditionDomain:           true,
	EditionDomainV6:         true,
	EditionRegistrar:        true,
	EditionRegistrarV6:      true,
	EditionUserType:         true,
	EditionUserTypeV6:       true,
	EditionAccuracyRadius:   true,
	EditionAccuracyRadiusV6: true,
	EditionLargeCountry:     true,
	EditionLargeCountryV6:   true,
	EditionLocationA:        true,
	EditionLocationAV6:      true,
}

// v6Editions is the set of editions with a 128-bit trie.
var v6Editions = map[Edition]bool{
	EditionCountryV6:        true,
	EditionProxy:            true,
	EditionLargeCountryV6:   true,
	EditionASNumV6:          true,
	EditionISPV6:            true,
	EditionOrgV6:            true,
	EditionDomainV6:         true,
	EditionLocationAV6:      true,
	EditionRegistrarV6:      true,
	EditionUserTypeV6:       true,
	EditionCityRev1V6:       true,
	EditionCityRev0V6:       true,
	EditionNetSpeedRev1V6:   true,
	EditionAccuracyRadiusV6: true,
}

var countryFamilyEditions = map[Edition]bool{
	EditionCountry:   true,
	EditionProxy:     true,
	EditionCountryV6: true,
	EditionNetSpeed:  true,
}

func familyFor(e Edition) segmentFamily {
	switch {
	case countryFamilyEditions[e]:
		return familyCountry
	case e == EditionRegionRev0:
		return familyRegionRev0
	case e == EditionRegionRev1:
		return familyRegionRev1
	default:
		return familyVarSeg
	}
}

// attrsFor computes (ip_bits, record_length, family) for a known edition.
// Callers must first confirm the edition is implemented (implementedEditions).
func attrsFor(e Edition) editionAttrs {
	ipBits := 32
	if v6Editions[e] {
		ipBits = 128
	}
	recordLength := 3
	if fourByteRecordEditions[e] {
		recordLength = 4
	}
	return editionAttrs{
		ipBits:       ipBits,
		recordLength: recordLength,
		family:       familyFor(e),
	}
}

// implementedEditions lists every edition this reader knows how to decode.
// An edition byte outside this set is ErrUnsupportedEdition (spec §4.4,
// §4.8): fail-closed, never guess.
var implementedEditions = map[Edition]bool{
	EditionCountry:          true,
	EditionCityRev1:         true,
	EditionRegionRev1:       true,
	EditionISP:              true,
	EditionOrg:              true,
	EditionCityRev0:         true,
	EditionRegionRev0:       true,
	EditionProxy:            true,
	EditionASNum:            true,
	EditionNetSpeed:         true,
	EditionDomain:           true,
	EditionCountryV6:        true,
	EditionLocationA:        true,
	EditionAccuracyRadius:   true,
	EditionLargeCountry:     true,
	EditionLargeCountryV6:   true,
	EditionASNumV6:          true,
	EditionISPV6:            true,
	EditionOrgV6:            true,
	EditionDomainV6:         true,
	EditionLocationAV6:      true,
	EditionRegistrar:        true,
	EditionRegistrarV6:      true,
	EditionUserType:         true,
	EditionUserTypeV6:       true,
	EditionCityRev1V6:       true,
	EditionCityRev0V6:       true,
	EditionNetSpeedRev1:     true,
	EditionNetSpeedRev1V6:   true,
	EditionCountryConf:      true,
	EditionCityConf:         true,
	EditionRegionConf:       true,
	EditionPostalConf:       true,
	EditionAccuracyRadiusV6: true,
}

// isCityEdition reports whether e is one of the City family (rev0/rev1, v4/v6).
func isCityEdition(e Edition) bool {
	switch e {
	case EditionCityRev0, EditionCityRev1, EditionCityRev0V6, EditionCityRev1V6:
		return true
	}
	return false
}

// isRegionEdition reports whether e is one of the Region family.
func isRegionEdition(e Edition) bool {
	return e == EditionRegionRev0 || e == EditionRegionRev1
}

// isASNEdition reports whether e is one of the ASN family.
func isASNEdition(e Edition) bool {
	return e == EditionASNum || e == EditionASNumV6
}

// isNetSpeedEdition reports whether e is one of the NetSpeed family.
func isNetSpeedEdition(e Edition) bool {
	switch e {
	case EditionNetSpeed, EditionNetSpeedRev1, EditionNetSpeedRev1V6:
		return true
	}
	return false
}

// isISPOrgEdition reports whether e is routed through the ISP/Org decoder.
// Per spec DESIGN NOTES, CITYCONF/COUNTRYCONF/REGIONCONF/POSTALCONF are
// routed through the ISP decoder in the original source; see DESIGN.md for
// the open-question resolution.
func isISPOrgEdition(e Edition) bool {
	switch e {
	case EditionISP, EditionOrg, EditionDomain, EditionRegistrar, EditionUserType,
		EditionLocationA, EditionAccuracyRadius,
		EditionISPV6, EditionOrgV6, EditionDomainV6, EditionRegistrarV6, EditionUserTypeV6,
		EditionLocationAV6, EditionAccuracyRadiusV6,
		EditionCountryConf, EditionCityConf, EditionRegionConf, EditionPostalConf:
		return true
	}
	return false
}

var editionNames = map[Edition]string{
	EditionCountry:          "COUNTRY",
	EditionCityRev1:         "CITY_REV1",
	EditionRegionRev1:       "REGION_REV1",
	EditionISP:              "ISP",
	EditionOrg:              "ORG",
	EditionCityRev0:         "CITY_REV0",
	EditionRegionRev0:       "REGION_REV0",
	EditionProxy:            "PROXY",
	EditionASNum:            "ASNUM",
	EditionNetSpeed:         "NETSPEED",
	EditionDomain:           "DOMAIN",
	EditionCountryV6:        "COUNTRY_V6",
	EditionLocationA:        "LOCATIONA",
	EditionAccuracyRadius:   "ACCURACYRADIUS",
	EditionLargeCountry:     "LARGE_COUNTRY",
	EditionLargeCountryV6:   "LARGE_COUNTRY_V6",
	EditionASNumV6:          "ASNUM_V6",
	EditionISPV6:            "ISP_V6",
	EditionOrgV6:            "ORG_V6",
	EditionDomainV6:         "DOMAIN_V6",
	EditionLocationAV6:      "LOCATIONA_V6",
	EditionRegistrar:        "REGISTRAR",
	EditionRegistrarV6:      "REGISTRAR_V6",
	EditionUserType:         "USERTYPE",
	EditionUserTypeV6:       "USERTYPE_V6",
	EditionCityRev1V6:       "CITY_REV1_V6",
	EditionCityRev0V6:       "CITY_REV0_V6",
	EditionNetSpeedRev1:     "NETSPEED_REV1",
	EditionNetSpeedRev1V6:   "NETSPEED_REV1_V6",
	EditionCountryConf:      "COUNTRYCONF",
	EditionCityConf:         "CITYCONF",
	EditionRegionConf:       "REGIONCONF",
	EditionPostalConf:       "POSTALCONF",
	EditionAccuracyRadiusV6: "ACCURACYRADIUS_V6",
}

// String renders the edition's wire-format name (spec §6.1), or "UNKNOWN"
// for a marker byte with no implementation entry.
func (e Edition) String() string {
	if name, ok := editionNames[e]; ok {
		return name
	}
	return "UNKNOWN"
}
