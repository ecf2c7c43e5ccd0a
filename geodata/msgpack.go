package geodata

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// wireProvider is the msgpack wire shape of a MapProvider. Kept distinct
// from MapProvider so struct tags don't leak onto the public type.
type wireProvider struct {
	CountryCodes      []string          `msgpack:"country_codes"`
	CountryCodes3     []string          `msgpack:"country_codes3"`
	CountryNames      []string          `msgpack:"country_names"`
	CountryContinents []string          `msgpack:"country_continents"`
	RegionNames       map[string]string `msgpack:"region_names"`
	TimeZones         map[string]string `msgpack:"time_zones"`
}

// EncodeMsgpack serialises a MapProvider to msgpack, for shipping a
// reference-data snapshot alongside a binary database.
func EncodeMsgpack(p *MapProvider) ([]byte, error) {
	w := wireProvider{
		CountryCodes:      p.CountryCodes,
		CountryCodes3:     p.CountryCodes3,
		CountryNames:      p.CountryNames,
		CountryContinents: p.CountryContinents,
		RegionNames:       p.RegionNames,
		TimeZones:         p.TimeZones,
	}
	buf, err := msgpack.Marshal(&w)
	if err != nil {
		return nil, errors.Wrap(err, "encoding reference data")
	}
	return buf, nil
}

// LoadMsgpack decodes a reference-data snapshot produced by EncodeMsgpack.
func LoadMsgpack(r io.Reader) (*MapProvider, error) {
	var w wireProvider
	if err := msgpack.NewDecoder(r).Decode(&w); err != nil {
		return nil, errors.Wrap(err, "decoding reference data")
	}
	return &MapProvider{
		CountryCodes:      w.CountryCodes,
		CountryCodes3:     w.CountryCodes3,
		CountryNames:      w.CountryNames,
		CountryContinents: w.CountryContinents,
		RegionNames:       w.RegionNames,
		TimeZones:         w.TimeZones,
	}, nil
}

// LoadMsgpackBytes is a convenience wrapper around LoadMsgpack for callers
// holding an in-memory snapshot (e.g. one bundled via go:embed in their own
// package).
func LoadMsgpackBytes(b []byte) (*MapProvider, error) {
	return LoadMsgpack(bytes.NewReader(b))
}
