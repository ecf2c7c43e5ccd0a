package geoip

const (
	cityFullRecordLength = 50
)

// City is the result of a City-style lookup (spec §3).
type City struct {
	Request    string
	IP         string
	ISO2       string
	ISO3       string
	Name       string
	Continent  string
	RegionCode string
	City       string
	Postal     string
	Latitude   float64
	Longitude  float64
	DMACode    int
	AreaCode   int
	HasDMA     bool
	TimeZone   string
	RegionName string
}

// decodeCity implements spec §4.6's City decoder: a fixed country-index
// byte followed by three NUL-terminated ISO-8859-1 strings, a 3-byte
// latitude and 3-byte longitude, and (US, rev1 only) a packed DMA/area code.
func decodeCity(ref refData, meta recordMeta, rev1 bool) (*City, error) {
	fsz := meta.src.size()
	offset := meta.absoluteOffset()

	header := make([]byte, 1)
	if offset+1 > fsz {
		return nil, nil
	}
	if err := meta.src.readAt(header, offset); err != nil {
		return nil, wrapf("decodeCity", ErrIO, err, "reading country byte at offset %d", offset)
	}
	codeID := int(header[0])

	country, err := buildCountry(ref, codeID)
	if err != nil {
		return nil, nil // out-of-range country index inside a City record: treat as absent, not corrupt.
	}

	cursor := offset + 1

	regionCode, cursor, ok := readCString(meta.src, cursor, cityFullRecordLength, fsz)
	if !ok {
		return nil, nil
	}
	cityName, cursor, ok := readCString(meta.src, cursor, cityFullRecordLength, fsz)
	if !ok {
		return nil, nil
	}
	postal, cursor, ok := readCString(meta.src, cursor, cityFullRecordLength, fsz)
	if !ok {
		return nil, nil
	}

	coords := make([]byte, 6)
	if cursor+6 > fsz {
		return nil, nil
	}
	if err := meta.src.readAt(coords, cursor); err != nil {
		return nil, wrapf("decodeCity", ErrIO, err, "reading coordinates at offset %d", cursor)
	}
	latitude := decodeCoordinate(coords[0:3])
	longitude := decodeCoordinate(coords[3:6])
	cursor += 6

	rec := &City{
		ISO2:       country.ISO2,
		ISO3:       country.ISO3,
		Name:       country.Name,
		Continent:  country.Continent,
		RegionCode: regionCode,
		City:       cityName,
		Postal:     postal,
		Latitude:   latitude,
		Longitude:  longitude,
	}

	if rev1 && country.ISO2 == "US" && cursor+3 <= fsz {
		dma := make([]byte, 3)
		if err := meta.src.readAt(dma, cursor); err == nil {
			v := leUint(dma)
			rec.DMACode = int(v) / 1000
			rec.AreaCode = int(v) % 1000
			rec.HasDMA = true
		}
	}

	rec.TimeZone, _ = lookupTimeZone(ref, rec.ISO2, rec.RegionCode)
	rec.RegionName, _ = ref.RegionName(rec.ISO2, rec.RegionCode)

	return rec, nil
}
