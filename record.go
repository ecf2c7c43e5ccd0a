package geoip

import "strings"

// recordMeta carries the fields a record decoder needs from the detected
// header and a trie terminal offset, per spec §4.6.
type recordMeta struct {
	src          byteSource
	edition      Edition
	recordLength int
	segmentBase  uint32
	terminal     uint32
	ref          refData
}

// indexSize is 2*record_length*segment_base, the byte length of the trie's
// index region (spec glossary).
func (m recordMeta) indexSize() int64 {
	return 2 * int64(m.recordLength) * int64(m.segmentBase)
}

// dataOffset is terminal_offset - segment_base, per spec glossary.
func (m recordMeta) dataOffset() uint32 {
	return m.terminal - m.segmentBase
}

// absoluteOffset is the byte offset of a non-country record's data: the
// index region length plus the data offset within the data region.
func (m recordMeta) absoluteOffset() int64 {
	return m.indexSize() + int64(m.dataOffset())
}

// isoToUTF8 re-encodes an ISO-8859-1 byte string to UTF-8. ISO-8859-1's
// first 256 code points map 1:1 onto Unicode code points 0-255, so this is a
// direct byte->rune widening — no table or library is needed, unlike
// encodings the pack's examples never touch (Shift-JIS, GBK, ...). This is
// the one place this module relies on the standard library where a
// corpus-grounded library could have served a genuinely multi-byte legacy
// encoding; ISO-8859-1 isn't one.
func isoToUTF8(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}

// readCString reads up to maxLen bytes starting at offset and returns the
// ISO-8859-1 prefix up to (not including) the first NUL, re-encoded as
// UTF-8, plus the absolute offset just past the terminating NUL (or past
// maxLen bytes if no NUL was found within the budget). ok is false if fewer
// than maxLen bytes were available AND no NUL was found — spec §4.6's City
// decoder treats that as an absent record.
func readCString(src byteSource, offset int64, maxLen int, fsz int64) (value string, next int64, ok bool) {
	remaining := maxLen
	if offset+int64(remaining) > fsz {
		remaining = int(fsz - offset)
	}
	if remaining <= 0 {
		return "", offset, false
	}

	buf := make([]byte, remaining)
	if err := src.readAt(buf, offset); err != nil {
		return "", offset, false
	}

	for i, b := range buf {
		if b == 0 {
			return isoToUTF8(buf[:i]), offset + int64(i) + 1, true
		}
	}

	// No NUL found within the read budget.
	if remaining < maxLen {
		// We were clamped by EOF and still found no NUL: truly short.
		return "", offset, false
	}
	return isoToUTF8(buf), offset + int64(remaining), true
}
