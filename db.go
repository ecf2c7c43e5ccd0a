package geoip

import (
	"io"
	"net/netip"

	"github.com/sirupsen/logrus"

	"github.com/geolegacy/geoip/geodata"
)

// refData is the reference-data contract record decoders see. It is an
// alias for geodata.Provider so geoip's decoder files don't need to import
// geodata directly (db.go is the only file that wires the two packages
// together).
type refData = geodata.Provider

// DB is an opened legacy GeoIP database handle, per spec §3. Its edition
// fields are set once in Open and never mutated afterwards, so concurrent
// reads of them require no synchronisation (spec §5).
type DB struct {
	src          byteSource
	edition      Edition
	ipBits       int
	recordLength int
	segmentBase  uint32
	ref          geodata.Provider
	localAlias   map[string]string
	log          *logrus.Entry
}

// openConfig accumulates Option values before Open constructs a DB, grounded
// on andreiashu-geobed's GeobedConfig/Option pattern.
type openConfig struct {
	preload    bool
	localAlias map[string]string
	ref        geodata.Provider
	logger     *logrus.Logger
}

// Option configures Open. See WithPreload, WithLocalIPAlias,
// WithReferenceData, WithLogger.
type Option func(*openConfig)

// WithPreload selects the fully-preloaded in-memory byte source strategy
// (spec §4.1, §5 strategy 3): the whole file is read once at open and the
// underlying file is closed immediately afterward.
func WithPreload() Option {
	return func(c *openConfig) { c.preload = true }
}

// WithLocalIPAlias registers a literal address string that every query
// rewrites to target before parsing (spec §4.2's local_ip_alias). Call multiple times to
// register more than one alias.
func WithLocalIPAlias(alias string, target string) Option {
	return func(c *openConfig) {
		if c.localAlias == nil {
			c.localAlias = make(map[string]string)
		}
		c.localAlias[alias] = target
	}
}

// WithReferenceData supplies the country/region/timezone tables a caller has
// loaded (e.g. via geodata.LoadMsgpack). Reference data is treated as an
// external collaborator (spec §1); without this option, Open falls back to
// geodata.Sample(), a small illustrative table.
func WithReferenceData(p geodata.Provider) Option {
	return func(c *openConfig) { c.ref = p }
}

// WithLogger attaches a *logrus.Logger for open-time diagnostics (queries
// log nothing). Without
// it, Open uses a discard-handler logger so library use stays silent by
// default (spec's ambient-stack carry-over; see DESIGN.md).
func WithLogger(l *logrus.Logger) Option {
	return func(c *openConfig) { c.logger = l }
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Open detects the database edition and constructs a DB ready for queries,
// per spec §4.4 (header detection) and §5 (byte source selection).
func Open(path string, opts ...Option) (*DB, error) {
	cfg := openConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = discardLogger()
	}

	var src byteSource
	var err error
	if cfg.preload {
		src, err = preloadFileSource(path)
	} else {
		src, err = openFileSource(path)
	}
	if err != nil {
		return nil, wrapf("Open", ErrIO, err, "opening %s", path)
	}

	h, err := detectHeader(src)
	if err != nil {
		src.close()
		return nil, err
	}

	ref := cfg.ref
	if ref == nil {
		ref = geodata.Sample()
	}

	log := logger.WithFields(logrus.Fields{
		"path":         path,
		"edition":      h.edition,
		"ip_bits":      h.ipBits,
		"record_len":   h.recordLength,
		"segment_base": h.segmentBase,
		"preload":      cfg.preload,
	})
	log.Debug("geoip: database opened")

	return &DB{
		src:          src,
		edition:      h.edition,
		ipBits:       h.ipBits,
		recordLength: h.recordLength,
		segmentBase:  h.segmentBase,
		ref:          ref,
		localAlias:   cfg.localAlias,
		log:          log,
	}, nil
}

// Close releases the underlying byte source.
func (db *DB) Close() error {
	return db.src.close()
}

// DatabaseType exposes the edition detected at Open.
func (db *DB) DatabaseType() Edition {
	return db.edition
}

// lookup parses addr, descends the trie, and returns the meta needed by a
// record decoder plus whether the terminal is "no data" (terminal ==
// segmentBase, spec invariant 6 / §4.8 NoData).
func (db *DB) lookup(addr string) (recordMeta, bool, error) {
	ip, width, err := parseAddress(addr, db.localAlias)
	if err != nil {
		return recordMeta{}, false, newErr("lookup", ErrBadAddress, err)
	}

	if width == 128 && db.ipBits == 32 {
		return recordMeta{}, false, newErr("lookup", ErrBadAddress, nil)
	}

	t := &trie{src: db.src, recordLength: db.recordLength, ipBits: db.ipBits, segmentBase: db.segmentBase}
	terminal, err := t.lookup(ip)
	if err != nil {
		return recordMeta{}, false, err
	}

	meta := recordMeta{
		src:          db.src,
		edition:      db.edition,
		recordLength: db.recordLength,
		segmentBase:  db.segmentBase,
		terminal:     terminal,
		ref:          db.ref,
	}
	return meta, terminal == db.segmentBase, nil
}

// Country implements spec §4.7's country(addr): on a City/Region/NetSpeed
// database it delegates to that edition's decoder and projects the country
// fields out (a NetSpeed record has none, so only Request is set); on a
// Country-family database it decodes directly.
func (db *DB) Country(addr string) (*Country, error) {
	switch {
	case isCityEdition(db.edition):
		c, err := db.City(addr)
		if err != nil || c == nil {
			return nil, err
		}
		return &Country{Request: addr, ISO2: c.ISO2, ISO3: c.ISO3, Name: c.Name, Continent: c.Continent}, nil
	case isRegionEdition(db.edition):
		r, err := db.Region(addr)
		if err != nil || r == nil {
			return nil, err
		}
		return &Country{Request: addr, ISO2: r.ISO2, ISO3: r.ISO3, Name: r.Name, Continent: r.Continent}, nil
	case isNetSpeedEdition(db.edition):
		// NetSpeed records carry no country-shaped fields at all (spec
		// §4.6): the legacy variant's code_id is a 0-3 speed class, not a
		// reference-table index, and the rev1 variant is a bare string.
		// Delegate to NetSpeed for presence/no-data/error semantics (spec
		// §4.7) and hand back a Country carrying only Request — see
		// DESIGN.md's resolved open question for the rationale.
		ns, err := db.NetSpeed(addr)
		if err != nil || ns == nil {
			return nil, err
		}
		return &Country{Request: addr}, nil
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}
	result, err := decodeCountry(db.ref, meta)
	if err != nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// Region implements spec §4.7's region(addr): defined for REGION_REV0/REV1
// and the City editions (projecting the Region-shaped fields out of City).
func (db *DB) Region(addr string) (*Region, error) {
	if isCityEdition(db.edition) {
		c, err := db.City(addr)
		if err != nil || c == nil {
			return nil, err
		}
		return &Region{
			Request: addr, ISO2: c.ISO2, ISO3: c.ISO3, Name: c.Name, Continent: c.Continent,
			RegionCode: c.RegionCode, RegionName: c.RegionName, TimeZone: c.TimeZone,
		}, nil
	}
	if !isRegionEdition(db.edition) {
		return nil, newErr("Region", ErrInvalidForEdition, nil)
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}
	result, err := decodeRegion(db.ref, meta, db.edition == EditionRegionRev0)
	if err != nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// City implements spec §4.7's city(addr): only defined for City editions.
// Per testable property 5, calling this on a non-City database must not
// touch the data region at all — the edition check happens before lookup.
func (db *DB) City(addr string) (*City, error) {
	if !isCityEdition(db.edition) {
		return nil, newErr("City", ErrInvalidForEdition, nil)
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}
	rev1 := db.edition == EditionCityRev1 || db.edition == EditionCityRev1V6
	result, err := decodeCity(db.ref, meta, rev1)
	if err != nil || result == nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// ISP implements spec §4.7's isp(addr), an alias of Organization.
func (db *DB) ISP(addr string) (*ISPOrg, error) {
	return db.Organization(addr)
}

// Organization implements spec §4.7's organization(addr): defined for the
// ISP/Org family (spec §4.6, §9 DESIGN NOTES for the *_CONF routing).
func (db *DB) Organization(addr string) (*ISPOrg, error) {
	if !isISPOrgEdition(db.edition) {
		return nil, newErr("Organization", ErrInvalidForEdition, nil)
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}
	result, err := decodeISPOrg(meta)
	if err != nil || result == nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// ASN implements spec §4.7's asn(addr): defined for ASNUM/ASNUM_V6.
func (db *DB) ASN(addr string) (*ASN, error) {
	if !isASNEdition(db.edition) {
		return nil, newErr("ASN", ErrInvalidForEdition, nil)
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}
	result, err := decodeASN(meta)
	if err != nil || result == nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// NetSpeed implements spec §4.7's netspeed(addr): defined for NETSPEED and
// NETSPEED_REV1/NETSPEED_REV1_V6.
func (db *DB) NetSpeed(addr string) (*NetSpeedResult, error) {
	if !isNetSpeedEdition(db.edition) {
		return nil, newErr("NetSpeed", ErrInvalidForEdition, nil)
	}

	meta, noData, err := db.lookup(addr)
	if err != nil {
		return nil, err
	}
	if noData {
		return nil, nil
	}

	if db.edition == EditionNetSpeed {
		return &NetSpeedResult{Request: addr, Numeric: decodeNetSpeedLegacy(meta), HasNumeric: true}, nil
	}
	result, err := decodeNetSpeedRev1(meta)
	if err != nil || result == nil {
		return nil, err
	}
	result.Request = addr
	return result, nil
}

// Each implements spec §4.7's each(visit): iterates all data-segment
// records of a City database in database order, yielding each City result.
// Only valid for CITY_REV0/CITY_REV1 (and their v6 variants).
func (db *DB) Each(visit func(City) bool) error {
	if !isCityEdition(db.edition) {
		return newErr("Each", ErrInvalidForEdition, nil)
	}
	return db.EachByIP(func(_ netip.Addr, rec any) bool {
		if rec == nil {
			return true
		}
		return visit(rec.(City))
	})
}

// EachByIP implements spec §4.7's each_by_ip(visit): a depth-first walk of
// the trie maintaining the current IP prefix, emitting (ip, record) pairs
// for every leaf in ascending-IP order. rec is decoded with the same
// edition-specific decoder the public query methods use (nil for the
// segment_base sentinel, or when the underlying decoder itself reports no
// data — e.g. a truncated record, or a City record whose country index is
// out of range). A decoder error, such as an out-of-range country index in a
// Country or Region database, stops the walk and is returned.
func (db *DB) EachByIP(visit func(ip netip.Addr, rec any) bool) error {
	t := &trie{src: db.src, recordLength: db.recordLength, ipBits: db.ipBits, segmentBase: db.segmentBase}

	var decodeErr error
	err := t.eachByIP(func(prefix ip128, _ int, ptr uint32) bool {
		addr := ip128ToAddr(prefix, db.ipBits)
		if ptr == db.segmentBase {
			return visit(addr, nil)
		}
		rec, err := db.decodeRecord(ptr)
		if err != nil {
			decodeErr = err
			return false
		}
		return visit(addr, rec)
	})
	if decodeErr != nil {
		return decodeErr
	}
	return err
}

// decodeRecord decodes a raw trie terminal (ptr != segment_base, so "has
// data") into the edition-appropriate typed record, dispatching on db.edition
// the same way the edition-specific public methods (City, Region, ASN, ...)
// do. Returns a nil any when the decoder itself reports no data (as opposed
// to an error), matching the behaviour callers see from those methods.
func (db *DB) decodeRecord(ptr uint32) (any, error) {
	meta := recordMeta{
		src:          db.src,
		edition:      db.edition,
		recordLength: db.recordLength,
		segmentBase:  db.segmentBase,
		terminal:     ptr,
		ref:          db.ref,
	}

	switch {
	case isCityEdition(db.edition):
		rev1 := db.edition == EditionCityRev1 || db.edition == EditionCityRev1V6
		c, err := decodeCity(db.ref, meta, rev1)
		if err != nil || c == nil {
			return nil, err
		}
		return *c, nil
	case isRegionEdition(db.edition):
		r, err := decodeRegion(db.ref, meta, db.edition == EditionRegionRev0)
		if err != nil || r == nil {
			return nil, err
		}
		return *r, nil
	case isASNEdition(db.edition):
		a, err := decodeASN(meta)
		if err != nil || a == nil {
			return nil, err
		}
		return *a, nil
	case isISPOrgEdition(db.edition):
		o, err := decodeISPOrg(meta)
		if err != nil || o == nil {
			return nil, err
		}
		return *o, nil
	case isNetSpeedEdition(db.edition):
		if db.edition == EditionNetSpeed {
			return NetSpeedResult{Numeric: decodeNetSpeedLegacy(meta), HasNumeric: true}, nil
		}
		r, err := decodeNetSpeedRev1(meta)
		if err != nil || r == nil {
			return nil, err
		}
		return *r, nil
	default:
		c, err := decodeCountry(db.ref, meta)
		if err != nil {
			return nil, err
		}
		return *c, nil
	}
}
