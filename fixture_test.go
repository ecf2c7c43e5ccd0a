package geoip

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/geolegacy/geoip/geodata"
)

// fixtureTrie builds a packed binary radix trie byte-by-byte, per spec
// §4.5/§6.1, for use as a synthetic in-memory test database (no real
// MaxMind .dat file is bundled with this module). Addresses not explicitly
// inserted resolve to the noData sentinel supplied to finalize.
type fixtureTrie struct {
	recordLength int
	ipBits       int
	nodes        [][2]uint32
	assigned     [][2]bool
}

func newFixtureTrie(recordLength, ipBits int) *fixtureTrie {
	return &fixtureTrie{
		recordLength: recordLength,
		ipBits:       ipBits,
		nodes:        [][2]uint32{{0, 0}},
		assigned:     [][2]bool{{false, false}},
	}
}

func (f *fixtureTrie) insert(t *testing.T, addr string, terminal uint32) {
	t.Helper()
	ip, width, err := parseAddress(addr, nil)
	require.NoError(t, err)
	require.Equal(t, f.ipBits, width, "fixture address width must match trie ip_bits")

	node := 0
	for i := 0; i < f.ipBits; i++ {
		bit := ip.bit(f.ipBits-1-i, f.ipBits)
		last := i == f.ipBits-1
		if last {
			f.nodes[node][bit] = terminal
			f.assigned[node][bit] = true
			return
		}
		if f.assigned[node][bit] {
			node = int(f.nodes[node][bit])
			continue
		}
		newIdx := len(f.nodes)
		f.nodes = append(f.nodes, [2]uint32{0, 0})
		f.assigned = append(f.assigned, [2]bool{false, false})
		f.nodes[node][bit] = uint32(newIdx)
		f.assigned[node][bit] = true
		node = newIdx
	}
}

// finalize fills every unassigned child pointer with noData, so every
// address not explicitly inserted terminates immediately as "no data"
// rather than cycling back through the built structure.
func (f *fixtureTrie) finalize(noData uint32) {
	for i := range f.nodes {
		for h := 0; h < 2; h++ {
			if !f.assigned[i][h] {
				f.nodes[i][h] = noData
				f.assigned[i][h] = true
			}
		}
	}
}

func (f *fixtureTrie) nodeCount() int { return len(f.nodes) }

func (f *fixtureTrie) indexBytes() []byte {
	buf := make([]byte, 0, len(f.nodes)*2*f.recordLength)
	for _, n := range f.nodes {
		buf = append(buf, leBytes(n[0], f.recordLength)...)
		buf = append(buf, leBytes(n[1], f.recordLength)...)
	}
	return buf
}

func leBytes(v uint32, width int) []byte {
	b := make([]byte, width)
	for i := 0; i < width; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return b
}

// buildDatabase assembles index bytes, data bytes, and the trailing
// structure-info marker into one synthetic database image (spec §6.1).
// varSegBase is written as the 3 little-endian bytes following the marker
// when varSeg is true (VARSEG_FAMILY editions read segment_base from there).
func buildDatabase(index, data []byte, edition byte, varSeg bool, varSegBase uint32) []byte {
	buf := make([]byte, 0, len(index)+len(data)+7)
	buf = append(buf, index...)
	buf = append(buf, data...)
	buf = append(buf, 0xFF, 0xFF, 0xFF, edition)
	if varSeg {
		buf = append(buf, leBytes(varSegBase, 3)...)
	}
	return buf
}

// newTestDB wraps buf in a memorySource, detects its header, and constructs
// a DB for direct use by query-facade tests, bypassing Open/os.File.
func newTestDB(t *testing.T, buf []byte, ref geodata.Provider) *DB {
	t.Helper()
	src := newMemorySource(buf)
	h, err := detectHeader(src)
	require.NoError(t, err)
	if ref == nil {
		ref = geodata.Sample()
	}
	return &DB{
		src:          src,
		edition:      h.edition,
		ipBits:       h.ipBits,
		recordLength: h.recordLength,
		segmentBase:  h.segmentBase,
		ref:          ref,
		log:          logrus.NewEntry(logrus.New()),
	}
}
