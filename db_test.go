package geoip

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geolegacy/geoip/geodata"
)

func buildCountryDB(t *testing.T) *DB {
	t.Helper()
	f := newFixtureTrie(3, 32)
	f.insert(t, "217.67.16.35", countryBegin+7) // spec §8's literal SK scenario
	f.finalize(countryBegin)

	buf := buildDatabase(f.indexBytes(), nil, byte(EditionCountry), false, 0)
	return newTestDB(t, buf, geodata.Sample())
}

func TestCountryDatabaseEndToEnd(t *testing.T) {
	db := buildCountryDB(t)
	require.Equal(t, EditionCountry, db.DatabaseType())

	c, err := db.Country("217.67.16.35")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "SK", c.ISO2)
	require.Equal(t, "SVK", c.ISO3)
	require.Equal(t, "Slovakia", c.Name)
	require.Equal(t, "EU", c.Continent)
	require.Equal(t, 7, c.CodeID)

	c, err = db.Country("0.1.2.3")
	require.NoError(t, err)
	require.Nil(t, c, "unassigned address must be no-data, not an error")
}

func TestCountryDatabaseRejectsWrongOperations(t *testing.T) {
	db := buildCountryDB(t)

	_, err := db.City("217.67.16.35")
	require.True(t, IsCode(err, ErrInvalidForEdition))

	_, err = db.ASN("217.67.16.35")
	require.True(t, IsCode(err, ErrInvalidForEdition))

	_, err = db.Organization("217.67.16.35")
	require.True(t, IsCode(err, ErrInvalidForEdition))

	_, err = db.Region("217.67.16.35")
	require.True(t, IsCode(err, ErrInvalidForEdition))
}

func TestCountryDatabaseBadAddress(t *testing.T) {
	db := buildCountryDB(t)
	_, err := db.Country("not-an-address")
	require.True(t, IsCode(err, ErrBadAddress))
}

func buildCityDB(t *testing.T) (*DB, string, string) {
	t.Helper()
	addr1, addr2 := "1.2.3.4", "5.6.7.8"

	f := newFixtureTrie(3, 32)
	f.insert(t, addr1, 1)
	f.insert(t, addr2, 2)
	segmentBase := uint32(f.nodeCount())

	dma := uint32(803310)
	record1 := buildCityRecord(5 /* US */, "CA", "Los Angeles", "90001", 34.05, -118.25, &dma)
	record2 := buildCityRecord(8 /* GB */, "", "London", "", 51.5, -0.12, nil)

	f.insert(t, addr1, segmentBase+1)
	f.insert(t, addr2, segmentBase+1+uint32(len(record1)))
	f.finalize(segmentBase)

	data := append([]byte{0}, record1...)
	data = append(data, record2...)

	buf := buildDatabase(f.indexBytes(), data, byte(EditionCityRev1), true, segmentBase)
	return newTestDB(t, buf, geodata.Sample()), addr1, addr2
}

func TestCityDatabaseEndToEnd(t *testing.T) {
	db, addr1, addr2 := buildCityDB(t)
	require.Equal(t, EditionCityRev1, db.DatabaseType())

	c, err := db.City(addr1)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "US", c.ISO2)
	require.Equal(t, "Los Angeles", c.City)
	require.True(t, c.HasDMA)
	require.Equal(t, "America/Los_Angeles", c.TimeZone)

	c, err = db.City(addr2)
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "GB", c.ISO2)
	require.Equal(t, "London", c.City)
	require.False(t, c.HasDMA)

	c, err = db.City("9.9.9.9")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestCityDatabaseDelegation(t *testing.T) {
	db, addr1, _ := buildCityDB(t)

	r, err := db.Region(addr1)
	require.NoError(t, err)
	require.Equal(t, "US", r.ISO2)
	require.Equal(t, "CA", r.RegionCode)

	co, err := db.Country(addr1)
	require.NoError(t, err)
	require.Equal(t, "US", co.ISO2)

	_, err = db.ASN(addr1)
	require.True(t, IsCode(err, ErrInvalidForEdition))
}

func TestCityDatabaseEach(t *testing.T) {
	db, _, _ := buildCityDB(t)

	var cities []City
	err := db.Each(func(c City) bool {
		cities = append(cities, c)
		return true
	})
	require.NoError(t, err)
	require.Len(t, cities, 2)
	require.Equal(t, "Los Angeles", cities[0].City, "Each yields records in ascending-IP database order")
	require.Equal(t, "London", cities[1].City)
}

func TestCityDatabaseEachStopsEarly(t *testing.T) {
	db, _, _ := buildCityDB(t)

	var cities []City
	err := db.Each(func(c City) bool {
		cities = append(cities, c)
		return false
	})
	require.NoError(t, err)
	require.Len(t, cities, 1)
}

func TestCityDatabaseEachByIP(t *testing.T) {
	db, _, _ := buildCityDB(t)

	var names []string
	err := db.EachByIP(func(_ netip.Addr, rec any) bool {
		if rec == nil {
			return true // segment_base sentinel, no data at this leaf
		}
		names = append(names, rec.(City).City)
		return true
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Los Angeles", "London"}, names)
}

// TestASNDatabaseEachByIPDecodesRecords covers EachByIP for a non-City
// edition: rec must be a decoded ASN, not the raw trie terminal.
func TestASNDatabaseEachByIPDecodesRecords(t *testing.T) {
	db, _ := buildASNDB(t)

	var seen []ASN
	err := db.EachByIP(func(_ netip.Addr, rec any) bool {
		if rec == nil {
			return true
		}
		seen = append(seen, rec.(ASN))
		return true
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	require.Equal(t, "AS15169", seen[0].Number)
	require.Equal(t, "Google LLC", seen[0].Description)
}

// TestCountryDatabaseEachByIPDecodesRecords covers EachByIP for the
// COUNTRY_FAMILY default branch.
func TestCountryDatabaseEachByIPDecodesRecords(t *testing.T) {
	db := buildCountryDB(t)

	var seen []Country
	err := db.EachByIP(func(_ netip.Addr, rec any) bool {
		if rec == nil {
			return true
		}
		seen = append(seen, rec.(Country))
		return true
	})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	require.Equal(t, "SK", seen[0].ISO2)
}

func buildASNDB(t *testing.T) (*DB, string) {
	t.Helper()
	addr := "8.8.8.8"
	f := newFixtureTrie(3, 32)
	f.insert(t, addr, 1)
	segmentBase := uint32(f.nodeCount())
	f.insert(t, addr, segmentBase+1)
	f.finalize(segmentBase)

	data := append([]byte{0}, []byte("AS15169 Google LLC")...)
	data = append(data, 0)

	buf := buildDatabase(f.indexBytes(), data, byte(EditionASNum), true, segmentBase)
	return newTestDB(t, buf, geodata.Sample()), addr
}

func TestASNDatabaseEndToEnd(t *testing.T) {
	db, addr := buildASNDB(t)
	require.Equal(t, EditionASNum, db.DatabaseType())

	a, err := db.ASN(addr)
	require.NoError(t, err)
	require.Equal(t, "AS15169", a.Number)
	require.Equal(t, "Google LLC", a.Description)

	a, err = db.ASN("1.1.1.1")
	require.NoError(t, err)
	require.Nil(t, a)

	_, err = db.City(addr)
	require.True(t, IsCode(err, ErrInvalidForEdition))
}

func buildISPDB(t *testing.T) (*DB, string) {
	t.Helper()
	addr := "4.4.4.4"
	f := newFixtureTrie(4, 32)
	f.insert(t, addr, 1)
	segmentBase := uint32(f.nodeCount())
	f.insert(t, addr, segmentBase+1)
	f.finalize(segmentBase)

	data := append([]byte{0}, []byte("Level 3 Communications")...)
	data = append(data, 0)

	buf := buildDatabase(f.indexBytes(), data, byte(EditionISP), true, segmentBase)
	return newTestDB(t, buf, geodata.Sample()), addr
}

func TestISPDatabaseEndToEnd(t *testing.T) {
	db, addr := buildISPDB(t)

	r, err := db.ISP(addr)
	require.NoError(t, err)
	require.Equal(t, "Level 3 Communications", r.Name)

	r2, err := db.Organization(addr)
	require.NoError(t, err)
	require.Equal(t, r.Name, r2.Name, "ISP and Organization are aliases")
}

func TestNetSpeedLegacyDatabase(t *testing.T) {
	f := newFixtureTrie(3, 32)
	f.insert(t, "2.2.2.2", countryBegin+2)
	f.finalize(countryBegin)

	buf := buildDatabase(f.indexBytes(), nil, byte(EditionNetSpeed), false, 0)
	db := newTestDB(t, buf, geodata.Sample())

	r, err := db.NetSpeed("2.2.2.2")
	require.NoError(t, err)
	require.True(t, r.HasNumeric)
	require.Equal(t, 2, r.Numeric)
}

func TestNetSpeedRev1Database(t *testing.T) {
	addr := "3.3.3.3"
	f := newFixtureTrie(3, 32)
	f.insert(t, addr, 1)
	segmentBase := uint32(f.nodeCount())
	f.insert(t, addr, segmentBase+1)
	f.finalize(segmentBase)

	data := append([]byte{0}, []byte("Cable/DSL")...)
	data = append(data, 0)

	buf := buildDatabase(f.indexBytes(), data, byte(EditionNetSpeedRev1), true, segmentBase)
	db := newTestDB(t, buf, geodata.Sample())

	r, err := db.NetSpeed(addr)
	require.NoError(t, err)
	require.False(t, r.HasNumeric)
	require.Equal(t, "Cable/DSL", r.Text)
}

// TestNetSpeedDatabaseCountryDelegation covers spec §4.7's country(addr)
// delegation for NetSpeed editions: no country-shaped fields can come out of
// a NetSpeed record, so Country must neither error nor fabricate geography,
// and must still honour no-data.
func TestNetSpeedDatabaseCountryDelegation(t *testing.T) {
	f := newFixtureTrie(3, 32)
	f.insert(t, "2.2.2.2", countryBegin+2)
	f.finalize(countryBegin)

	buf := buildDatabase(f.indexBytes(), nil, byte(EditionNetSpeed), false, 0)
	db := newTestDB(t, buf, geodata.Sample())

	c, err := db.Country("2.2.2.2")
	require.NoError(t, err)
	require.NotNil(t, c)
	require.Equal(t, "2.2.2.2", c.Request)
	require.Empty(t, c.ISO2, "NetSpeed records carry no country fields")

	c, err = db.Country("9.9.9.9")
	require.NoError(t, err)
	require.Nil(t, c, "unassigned address must still be no-data, not an error")
}

func TestRegionDatabaseEndToEnd(t *testing.T) {
	f := newFixtureTrie(3, 32)
	f.insert(t, "6.6.6.6", stateBeginRev1+1) // US, region offset 0 -> "AA"
	f.finalize(stateBeginRev1)

	buf := buildDatabase(f.indexBytes(), nil, byte(EditionRegionRev1), false, 0)
	db := newTestDB(t, buf, regionTestRef())

	r, err := db.Region("6.6.6.6")
	require.NoError(t, err)
	require.Equal(t, "US", r.ISO2)
	require.Equal(t, "AA", r.RegionCode)

	_, err = db.City("6.6.6.6")
	require.True(t, IsCode(err, ErrInvalidForEdition))
}

func TestUnsupportedEditionRejectedAtOpen(t *testing.T) {
	buf := buildDatabase(nil, nil, 99, false, 0)
	_, err := detectHeader(newMemorySource(buf))
	require.True(t, IsCode(err, ErrUnsupportedEdition))
}
