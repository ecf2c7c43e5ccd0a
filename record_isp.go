package geoip

import "strings"

const maxOrgRecordLength = 300

// ISPOrg is the result of an ISP/Organization-style lookup (spec §3). The
// same decoder serves ISP, ORG, DOMAIN, REGISTRAR, USERTYPE, LOCATIONA,
// ACCURACYRADIUS, and the *_CONF editions (spec §4.6, §9 DESIGN NOTES).
type ISPOrg struct {
	Request string
	IP      string
	Name    string
}

// decodeISPOrg implements spec §4.6's ISP/Organization decoder: read a
// NUL-terminated ISO-8859-1 string, re-encode to UTF-8, and treat a leading
// `*` as "absent".
func decodeISPOrg(meta recordMeta) (*ISPOrg, error) {
	offset := meta.absoluteOffset()
	value, _, ok := readCString(meta.src, offset, maxOrgRecordLength, meta.src.size())
	if !ok {
		return nil, nil
	}
	if strings.HasPrefix(value, "*") {
		return nil, nil
	}
	return &ISPOrg{Name: value}, nil
}
