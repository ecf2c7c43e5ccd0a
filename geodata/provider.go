// Package geodata holds the reference tables the legacy GeoIP record
// decoders index into: country code/name/continent arrays, region names,
// and timezone mappings. Per the specification these tables are an
// external collaborator — read-only data the caller supplies — rather than
// something this module owns outright, so Provider is an interface and the
// embedded table here is a convenience default, not a claim of
// completeness.
package geodata

// Provider is the read-only reference-data contract the record decoders
// use. Implementations must be safe for concurrent reads; callers
// typically load one Provider once per process and share it across every
// open database handle.
type Provider interface {
	// CountryCode returns the two-letter ISO code at a country-table index.
	CountryCode(index int) (string, bool)
	// CountryCode3 returns the three-letter ISO code at a country-table index.
	CountryCode3(index int) (string, bool)
	// CountryName returns the country name at a country-table index.
	CountryName(index int) (string, bool)
	// CountryContinent returns the continent code at a country-table index.
	CountryContinent(index int) (string, bool)
	// CountryCount returns the number of entries in the country table,
	// used to bounds-check a decoded code_id (spec invariant: "must fall
	// within the reference table bounds").
	CountryCount() int
	// RegionName returns the human-readable region name for an
	// (iso2, regionCode) composite key.
	RegionName(iso2, regionCode string) (string, bool)
	// TimeZone returns the IANA timezone for a composite iso2+regionCode
	// key, or (if the caller passes regionCode == "") for iso2 alone.
	TimeZone(iso2, regionCode string) (string, bool)
}
