package geoip

import (
	"net/netip"

	"github.com/pkg/errors"
)

// leUint decodes an unsigned little-endian integer from b. Width equals
// len(b); the trie's record_length is either 3 or 4 bytes, neither of which
// encoding/binary has a named primitive for, so this is hand-rolled exactly
// as spec §4.2 describes: sum b[i]<<(8*i).
func leUint(b []byte) uint32 {
	var v uint32
	for i, x := range b {
		v |= uint32(x) << (8 * uint(i))
	}
	return v
}

// beUint decodes an unsigned big-endian integer from b: sum b[i]<<(8*(n-1-i)).
func beUint(b []byte) uint32 {
	var v uint32
	n := len(b)
	for i, x := range b {
		v |= uint32(x) << (8 * uint(n-1-i))
	}
	return v
}

// ip128 is a 128-bit unsigned integer, most-significant half first. IPv4
// addresses are stored with hi==0. Kept as a plain two-word pair rather than
// math/big (which the teacher uses for its own v6 arithmetic) because the
// only operation the trie navigator needs is "read bit i", not arbitrary
// arithmetic.
type ip128 struct {
	hi, lo uint64
}

// bit returns the value (0 or 1) of bit index i of a width-bit integer
// (width is 32 or 128), counting from the least-significant bit: i == 0 is
// the LSB and i == width-1 is the MSB.
func (v ip128) bit(i, width int) int {
	if width == 32 {
		// the 32-bit value lives in the low 32 bits of lo
		return int((v.lo >> uint(i)) & 1)
	}
	if i >= 64 {
		return int((v.hi >> uint(i-64)) & 1)
	}
	return int((v.lo >> uint(i)) & 1)
}

// parseAddress normalises and parses addr into a width-tagged integer. Per
// spec §4.2, the literal "::1" is unconditionally rewritten to 0.0.0.0; the
// other loopback spellings (127.0.0.1, localhost, 0000::1, 0:0:0:0:0:0:0:1)
// are only rewritten when the caller registered them via a local_ip_alias
// (WithLocalIPAlias) — otherwise they parse as themselves.
func parseAddress(addr string, localAlias map[string]string) (ip128, int, error) {
	if target, ok := localAlias[addr]; ok {
		addr = target
	} else if addr == "::1" {
		addr = "0.0.0.0"
	}

	parsed, err := netip.ParseAddr(addr)
	if err != nil {
		return ip128{}, 0, errors.Wrapf(err, "parsing address %q", addr)
	}

	if parsed.Is4() || parsed.Is4In6() {
		b := parsed.As4()
		return ip128{lo: uint64(beUint32(b[:]))}, 32, nil
	}

	b := parsed.As16()
	hi := beUint64(b[0:8])
	lo := beUint64(b[8:16])
	return ip128{hi: hi, lo: lo}, 128, nil
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// decodeCoordinate reverses the le24/10000-180 fixup from spec invariant 4.
func decodeCoordinate(b []byte) float64 {
	return float64(leUint(b))/10000.0 - 180.0
}

// encodeCoordinate is the inverse of decodeCoordinate, used by the
// coordinate round-trip test (spec §8 property 3).
func encodeCoordinate(v float64) uint32 {
	return uint32((v + 180.0) * 10000.0)
}
