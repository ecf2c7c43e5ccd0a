package geoip

import "net/netip"

// trie navigates the packed binary radix trie described in spec §4.5: each
// internal node occupies 2*recordLength bytes at offset
// 2*recordLength*nodeIndex, holding a little-endian left pointer (bit 0) and
// right pointer (bit 1). Descent starts at node 0 and examines bits from
// ipBits-1 down to 0. A pointer >= segmentBase terminates the descent; that
// pointer is the terminal offset.
type trie struct {
	src          byteSource
	recordLength int
	ipBits       int
	segmentBase  uint32
}

// lookup descends the trie for ip and returns the terminal offset. It never
// returns an offset below segmentBase: invariant 2 in spec §3.
func (t *trie) lookup(ip ip128) (uint32, error) {
	node := uint32(0)
	nodeBytes := 2 * t.recordLength
	buf := make([]byte, t.recordLength)

	for bit := t.ipBits - 1; bit >= 0; bit-- {
		offset := int64(node) * int64(nodeBytes)
		half := ip.bit(bit, t.ipBits)
		if half == 1 {
			offset += int64(t.recordLength)
		}
		if err := t.src.readAt(buf, offset); err != nil {
			return 0, wrapf("trie.lookup", ErrIO, err, "reading trie node at offset %d", offset)
		}
		ptr := leUint(buf)

		if ptr >= t.segmentBase {
			return ptr, nil
		}
		node = ptr
	}

	// Exhausted ipBits without terminating: spec §4.5 treats this as "no
	// data", i.e. segmentBase.
	return t.segmentBase, nil
}

// eachByIP performs the depth-first walk described in spec §4.7: recurse
// left (bit=0) then right (bit=1, setting the corresponding mask bit),
// emitting every terminal pointer in ascending-IP order.
func (t *trie) eachByIP(visit func(prefix ip128, prefixLen int, ptr uint32) bool) error {
	err := t.walk(0, ip128{}, 0, visit)
	if err == errStop {
		// errStop is purely an internal control-flow sentinel for "the
		// visitor asked to stop" — it must never leak to callers as a
		// real failure.
		return nil
	}
	return err
}

func (t *trie) walk(node uint32, prefix ip128, depth int, visit func(ip128, int, uint32) bool) error {
	if depth == t.ipBits {
		// Exhausted depth at an internal node index: treat as segmentBase
		// per spec §4.5's exhaustion rule.
		return errAbortOrContinue(visit(prefix, depth, t.segmentBase))
	}

	nodeBytes := 2 * t.recordLength
	offset := int64(node) * int64(nodeBytes)
	buf := make([]byte, nodeBytes)
	if err := t.src.readAt(buf, offset); err != nil {
		return wrapf("trie.walk", ErrIO, err, "reading trie node at offset %d", offset)
	}

	leftPtr := leUint(buf[:t.recordLength])
	rightPtr := leUint(buf[t.recordLength:])

	if leftPtr >= t.segmentBase {
		if !visit(prefix, depth+1, leftPtr) {
			return errStop
		}
	} else if err := t.walk(leftPtr, prefix, depth+1, visit); err != nil {
		return err
	}

	rightPrefix := setBit(prefix, depth, t.ipBits)
	if rightPtr >= t.segmentBase {
		if !visit(rightPrefix, depth+1, rightPtr) {
			return errStop
		}
	} else if err := t.walk(rightPtr, rightPrefix, depth+1, visit); err != nil {
		return err
	}

	return nil
}

// setBit sets bit index `depth` counting from the most-significant bit of a
// width-bit integer (0-indexed: depth 0 is the MSB).
func setBit(v ip128, depth, width int) ip128 {
	bitIndex := width - 1 - depth
	if bitIndex >= 64 {
		v.hi |= 1 << uint(bitIndex-64)
	} else {
		v.lo |= 1 << uint(bitIndex)
	}
	return v
}

var errStop = &walkStop{}

type walkStop struct{}

func (*walkStop) Error() string { return "geoip: iteration stopped by visitor" }

func errAbortOrContinue(cont bool) error {
	if cont {
		return nil
	}
	return errStop
}

// ip128ToAddr converts a width-tagged ip128 back to a netip.Addr, used when
// surfacing EachByIP results.
func ip128ToAddr(v ip128, width int) netip.Addr {
	if width == 32 {
		b := [4]byte{byte(v.lo >> 24), byte(v.lo >> 16), byte(v.lo >> 8), byte(v.lo)}
		return netip.AddrFrom4(b)
	}
	var b [16]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v.hi >> uint(8*(7-i)))
		b[8+i] = byte(v.lo >> uint(8*(7-i)))
	}
	return netip.AddrFrom16(b)
}
