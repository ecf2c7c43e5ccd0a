package geodata

import _ "embed"

//go:embed testdata/default.msgpack
var defaultSnapshot []byte

// LoadEmbedded decodes the module's bundled default reference-data snapshot
// (testdata/default.msgpack, produced by EncodeMsgpack) without requiring a
// caller-supplied file. It covers the same indices as Sample() — this is a
// convenience default for callers who have no production MaxMind snapshot of
// their own, not a claim of a complete country/region/timezone table; load a
// real snapshot with LoadMsgpack/LoadMsgpackBytes for production use.
func LoadEmbedded() (*MapProvider, error) {
	return LoadMsgpackBytes(defaultSnapshot)
}
