package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"greg-hacke/exifsheet/tags"
)

// Decoder turns a TIFF-structured EXIF block into ordered entries.
type Decoder interface {
	Decode(tiff []byte) ([]Entry, error)
}

// TIFF field types.
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeSByte     = 6
	typeUndefined = 7
	typeSShort    = 8
	typeSLong     = 9
	typeSRational = 10
	typeFloat     = 11
	typeDouble    = 12
	typeIFD       = 13
)

var typeSizes = map[uint16]uint64{
	typeByte: 1, typeASCII: 1, typeShort: 2, typeLong: 4, typeRational: 8,
	typeSByte: 1, typeUndefined: 1, typeSShort: 2, typeSLong: 4, typeSRational: 8,
	typeFloat: 4, typeDouble: 8, typeIFD: 4,
}

// maxEntries bounds a single IFD; real files stay far below it.
const maxEntries = 1000

// tiffDecoder walks IFD0 and, when subIFDs is set, the Exif and GPS
// sub-IFDs. Exif entries follow IFD0 entries; GPS entries are folded into
// the GPSInfo value.
type tiffDecoder struct {
	resolver tags.Resolver
	subIFDs  bool
}

func byteOrder(data []byte) (binary.ByteOrder, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: EXIF data too short", ErrCorruptFile)
	}
	switch {
	case data[0] == 'I' && data[1] == 'I':
		return binary.LittleEndian, nil
	case data[0] == 'M' && data[1] == 'M':
		return binary.BigEndian, nil
	default:
		return nil, fmt.Errorf("%w: invalid TIFF byte order", ErrCorruptFile)
	}
}

func (d *tiffDecoder) Decode(data []byte) ([]Entry, error) {
	order, err := byteOrder(data)
	if err != nil {
		return nil, err
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, fmt.Errorf("%w: bad TIFF magic", ErrCorruptFile)
	}

	entries, err := d.readIFD(data, order.Uint32(data[4:8]), order, tags.GroupMain)
	if err != nil {
		return nil, err
	}
	if !d.subIFDs {
		return entries, nil
	}

	var exifEntries []Entry
	for i, e := range entries {
		offset, ok := e.Value.(int64)
		if !ok {
			continue
		}
		switch e.ID {
		case tags.GPSIFDPointer:
			gps, err := d.readIFD(data, uint32(offset), order, tags.GroupGPS)
			if err != nil {
				return nil, fmt.Errorf("read GPS IFD: %w", err)
			}
			entries[i].Value = GPS{Entries: gps}
		case tags.ExifIFDPointer:
			exifEntries, err = d.readIFD(data, uint32(offset), order, tags.GroupMain)
			if err != nil {
				return nil, fmt.Errorf("read Exif IFD: %w", err)
			}
		}
	}

	return append(entries, exifEntries...), nil
}

// readIFD parses one Image File Directory. Entries with an unknown type or
// an out-of-range value offset are skipped; a directory that does not fit
// in data is an error.
func (d *tiffDecoder) readIFD(data []byte, offset uint32, order binary.ByteOrder, group tags.Group) ([]Entry, error) {
	if uint64(offset)+2 > uint64(len(data)) {
		return nil, fmt.Errorf("%w: IFD offset %d out of bounds", ErrCorruptFile, offset)
	}

	numEntries := int(order.Uint16(data[offset : offset+2]))
	if numEntries > maxEntries {
		return nil, fmt.Errorf("%w: IFD claims %d entries", ErrCorruptFile, numEntries)
	}
	pos := uint64(offset) + 2
	if pos+uint64(numEntries)*12 > uint64(len(data)) {
		return nil, fmt.Errorf("%w: IFD at %d truncated", ErrCorruptFile, offset)
	}

	entries := make([]Entry, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		field := data[pos : pos+12]
		pos += 12

		tagID := order.Uint16(field[0:2])
		dataType := order.Uint16(field[2:4])
		count := order.Uint32(field[4:8])

		raw, ok := valueBytes(data, field[8:12], dataType, count, order)
		if !ok {
			continue
		}

		var value any
		switch {
		case group == tags.GroupMain && tags.IsXP(tagID):
			value = decodeUTF16LE(raw)
		case group == tags.GroupMain && tagID == tags.UserComment:
			value = decodeUserComment(raw, order)
		default:
			value = tagValue(raw, dataType, count, order)
		}

		entries = append(entries, Entry{
			ID:    tagID,
			Name:  tags.Name(d.resolver, group, tagID),
			Group: group,
			Value: value,
		})
	}

	return entries, nil
}

// valueBytes returns the bytes holding an entry's value: inline when they
// fit in four bytes, at the stored offset otherwise.
func valueBytes(data, field []byte, dataType uint16, count uint32, order binary.ByteOrder) ([]byte, bool) {
	size, ok := typeSizes[dataType]
	if !ok {
		return nil, false
	}
	total := size * uint64(count)
	if total <= 4 {
		return field[:total], true
	}
	offset := uint64(order.Uint32(field))
	if offset+total > uint64(len(data)) {
		return nil, false
	}
	return data[offset : offset+total], true
}

// tagValue interprets raw according to its TIFF type. Single values come
// back as scalars, longer counts as slices; byte arrays become text.
func tagValue(raw []byte, dataType uint16, count uint32, order binary.ByteOrder) any {
	n := int(count)

	switch dataType {
	case typeByte:
		if n == 1 {
			return int64(raw[0])
		}
		return DecodeText(raw)

	case typeASCII:
		if end := bytes.IndexByte(raw, 0); end >= 0 {
			raw = raw[:end]
		}
		return DecodeText(raw)

	case typeUndefined:
		return DecodeText(raw)

	case typeShort:
		return ints(n, func(i int) int64 { return int64(order.Uint16(raw[i*2:])) })

	case typeLong, typeIFD:
		return ints(n, func(i int) int64 { return int64(order.Uint32(raw[i*4:])) })

	case typeSByte:
		return ints(n, func(i int) int64 { return int64(int8(raw[i])) })

	case typeSShort:
		return ints(n, func(i int) int64 { return int64(int16(order.Uint16(raw[i*2:]))) })

	case typeSLong:
		return ints(n, func(i int) int64 { return int64(int32(order.Uint32(raw[i*4:]))) })

	case typeRational:
		return rationals(n, func(i int) Rational {
			return Rational{
				Num: int64(order.Uint32(raw[i*8:])),
				Den: int64(order.Uint32(raw[i*8+4:])),
			}
		})

	case typeSRational:
		return rationals(n, func(i int) Rational {
			return Rational{
				Num: int64(int32(order.Uint32(raw[i*8:]))),
				Den: int64(int32(order.Uint32(raw[i*8+4:]))),
			}
		})

	case typeFloat:
		return floats(n, func(i int) float64 { return float64(math.Float32frombits(order.Uint32(raw[i*4:]))) })

	case typeDouble:
		return floats(n, func(i int) float64 { return math.Float64frombits(order.Uint64(raw[i*8:])) })
	}

	return DecodeText(raw)
}

func ints(n int, at func(int) int64) any {
	if n == 1 {
		return at(0)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func floats(n int, at func(int) float64) any {
	if n == 1 {
		return at(0)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}

func rationals(n int, at func(int) Rational) any {
	if n == 1 {
		return at(0)
	}
	out := make([]Rational, n)
	for i := range out {
		out[i] = at(i)
	}
	return out
}
