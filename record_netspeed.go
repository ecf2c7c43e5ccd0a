package geoip

const maxNetSpeedRecordLength = 20

// NetSpeedResult is the result of a NetSpeed-style lookup (spec §3): legacy
// NETSPEED databases yield a numeric class 0-3, rev1 databases yield a
// descriptive string (e.g. "Cable/DSL"). Exactly one of Numeric/Text is set.
type NetSpeedResult struct {
	Request    string
	IP         string
	Numeric    int
	HasNumeric bool
	Text       string
}

// decodeNetSpeedRev1 implements spec §4.6's NETSPEED_REV1 decoder: a
// NUL-terminated string up to 20 bytes.
func decodeNetSpeedRev1(meta recordMeta) (*NetSpeedResult, error) {
	offset := meta.absoluteOffset()
	value, _, ok := readCString(meta.src, offset, maxNetSpeedRecordLength, meta.src.size())
	if !ok {
		return nil, nil
	}
	return &NetSpeedResult{Text: value}, nil
}
