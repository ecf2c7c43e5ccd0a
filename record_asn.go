package geoip

import "regexp"

const maxASNRecordLength = 300

// ASN is the result of an ASN-style lookup (spec §3).
type ASN struct {
	Request     string
	IP          string
	Number      string
	Description string
}

var asnPattern = regexp.MustCompile(`^(AS\d+)(?:\s(.*))?$`)

// decodeASN implements spec §4.6's ASN decoder: a NUL-terminated string
// matched against `^(AS\d+)(?:\s(.*))?$`. A non-matching payload is
// returned verbatim as Number, since some databases misuse this slot for
// user-type data.
func decodeASN(meta recordMeta) (*ASN, error) {
	offset := meta.absoluteOffset()
	value, _, ok := readCString(meta.src, offset, maxASNRecordLength, meta.src.size())
	if !ok {
		return nil, nil
	}
	if value == "" {
		return nil, nil
	}

	if m := asnPattern.FindStringSubmatch(value); m != nil {
		return &ASN{Number: m[1], Description: m[2]}, nil
	}
	return &ASN{Number: value}, nil
}
