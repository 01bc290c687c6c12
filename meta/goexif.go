package meta

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"

	"greg-hacke/exifsheet/tags"
)

// goexifDecoder decodes through github.com/rwcarlsen/goexif. goexif keeps
// fields in a map, so entries are ordered by tag id rather than file order.
// goexif always loads the Exif and GPS sub-IFDs; with subIFDs unset only
// IFD0 entries are kept and GPSInfo keeps its raw offset, matching the
// built-in decoder.
type goexifDecoder struct {
	resolver tags.Resolver
	subIFDs  bool
}

func (d *goexifDecoder) Decode(data []byte) ([]Entry, error) {
	order, err := byteOrder(data)
	if err != nil {
		return nil, err
	}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	w := &fieldCollector{resolver: d.resolver, order: order}
	if err := x.Walk(w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}

	sortByID(w.main)
	sortByID(w.gps)

	if !d.subIFDs {
		return ifd0Only(data, w.main)
	}
	for i, e := range w.main {
		if e.ID == tags.GPSIFDPointer {
			w.main[i].Value = GPS{Entries: w.gps}
		}
	}
	return w.main, nil
}

// ifd0Only drops entries whose id does not appear in the first directory.
func ifd0Only(data []byte, entries []Entry) ([]Entry, error) {
	tf, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptFile, err)
	}
	inIFD0 := map[uint16]bool{}
	if len(tf.Dirs) > 0 {
		for _, tag := range tf.Dirs[0].Tags {
			inIFD0[tag.Id] = true
		}
	}
	out := entries[:0]
	for _, e := range entries {
		if inIFD0[e.ID] {
			out = append(out, e)
		}
	}
	return out, nil
}

type fieldCollector struct {
	resolver tags.Resolver
	order    binary.ByteOrder
	main     []Entry
	gps      []Entry
}

func (c *fieldCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	field := string(name)
	switch {
	case strings.HasPrefix(field, "Interoperability") && field != "InteroperabilityIFDPointer":
		return nil
	case strings.HasPrefix(field, "GPS") && field != "GPSInfoIFDPointer":
		c.gps = append(c.gps, Entry{
			ID:    tag.Id,
			Name:  tags.Name(c.resolver, tags.GroupGPS, tag.Id),
			Group: tags.GroupGPS,
			Value: goexifValue(tag, c.order),
		})
	default:
		c.main = append(c.main, Entry{
			ID:    tag.Id,
			Name:  tags.Name(c.resolver, tags.GroupMain, tag.Id),
			Group: tags.GroupMain,
			Value: goexifValue(tag, c.order),
		})
	}
	return nil
}

func goexifValue(tag *tiff.Tag, order binary.ByteOrder) any {
	switch {
	case tags.IsXP(tag.Id):
		return decodeUTF16LE(tag.Val)
	case tag.Id == tags.UserComment:
		return decodeUserComment(tag.Val, order)
	}

	n := int(tag.Count)
	switch tag.Format() {
	case tiff.IntVal:
		if tag.Type == tiff.DTByte && n != 1 {
			return DecodeText(tag.Val)
		}
		return ints(n, func(i int) int64 {
			v, _ := tag.Int64(i)
			return v
		})
	case tiff.RatVal:
		return rationals(n, func(i int) Rational {
			num, den, _ := tag.Rat2(i)
			return Rational{Num: num, Den: den}
		})
	case tiff.FloatVal:
		return floats(n, func(i int) float64 {
			v, _ := tag.Float(i)
			return v
		})
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return DecodeText(tag.Val)
		}
		if end := strings.IndexByte(s, 0); end >= 0 {
			s = s[:end]
		}
		return s
	default:
		return DecodeText(tag.Val)
	}
}

func sortByID(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
}
