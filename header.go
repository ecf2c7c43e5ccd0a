package geoip

const (
	// structureInfoMaxSize bounds the backward scan for the trailing marker
	// (spec §4.4): give up after this many one-byte steps back.
	structureInfoMaxSize = 20

	// countryBegin is the fixed segment_base for COUNTRY_FAMILY editions.
	countryBegin uint32 = 16_776_960
	// stateBeginRev0 is the fixed segment_base for REGION_REV0_FAMILY.
	stateBeginRev0 uint32 = 16_700_000
	// stateBeginRev1 is the fixed segment_base for REGION_REV1_FAMILY.
	stateBeginRev1 uint32 = 16_000_000
)

// header is the result of detecting a database's edition and segment_base.
type header struct {
	edition      Edition
	ipBits       int
	recordLength int
	segmentBase  uint32
}

// detectHeader scans the trailing structure-info region of src for the
// 0xFF 0xFF 0xFF sentinel, per spec §4.4: starting 3 bytes before EOF, read 3
// bytes; if all three are 0xFF, the next byte is the edition marker.
// Otherwise back up 4 bytes from the end of that read (one byte before where
// it started) and retry, up to structureInfoMaxSize times.
// With no sentinel found, the edition defaults to Country with segment_base
// = countryBegin.
func detectHeader(src byteSource) (header, error) {
	fsz := src.size()

	pos := fsz - 3
	three := make([]byte, 3)
	for i := 0; i < structureInfoMaxSize && pos >= 0; i++ {
		if err := src.readAt(three, pos); err != nil {
			return header{}, wrapf("detectHeader", ErrIO, err, "reading structure-info at offset %d", pos)
		}
		if three[0] == 0xFF && three[1] == 0xFF && three[2] == 0xFF {
			markerByte := make([]byte, 1)
			if err := src.readAt(markerByte, pos+3); err != nil {
				return header{}, wrapf("detectHeader", ErrIO, err, "reading edition byte at offset %d", pos+3)
			}
			edition := normalizeEditionByte(markerByte[0])
			return finishHeader(src, edition, pos+4)
		}
		// The read advanced 3 bytes; backing up 4 from there starts the next
		// read one byte before this one.
		pos--
	}

	return header{
		edition:      EditionCountry,
		ipBits:       32,
		recordLength: 3,
		segmentBase:  countryBegin,
	}, nil
}

// finishHeader resolves (ip_bits, record_length, segment_base) for a
// detected edition, per spec §4.3/§4.4. afterMarker is the absolute offset
// of the 3 bytes following the edition byte, used by VARSEG_FAMILY editions.
func finishHeader(src byteSource, edition Edition, afterMarker int64) (header, error) {
	if !implementedEditions[edition] {
		return header{}, newErr("detectHeader", ErrUnsupportedEdition, nil)
	}

	attrs := attrsFor(edition)

	var segmentBase uint32
	switch attrs.family {
	case familyCountry:
		segmentBase = countryBegin
	case familyRegionRev0:
		segmentBase = stateBeginRev0
	case familyRegionRev1:
		segmentBase = stateBeginRev1
	case familyVarSeg:
		buf := make([]byte, 3)
		if err := src.readAt(buf, afterMarker); err != nil {
			return header{}, wrapf("detectHeader", ErrIO, err, "reading segment base at offset %d", afterMarker)
		}
		segmentBase = leUint(buf)
	}

	h := header{
		edition:      edition,
		ipBits:       attrs.ipBits,
		recordLength: attrs.recordLength,
		segmentBase:  segmentBase,
	}

	if h.segmentBase == 0 {
		return header{}, newErr("detectHeader", ErrCorruptDatabase, nil)
	}

	return h, nil
}
