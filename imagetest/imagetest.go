// Package imagetest builds minimal image files carrying EXIF and XMP
// payloads for tests. The images have no decodable pixel data; only the
// container structure around the metadata is real.
package imagetest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TIFF field types used by the builders.
const (
	TypeByte      uint16 = 1
	TypeASCII     uint16 = 2
	TypeShort     uint16 = 3
	TypeLong      uint16 = 4
	TypeRational  uint16 = 5
	TypeUndefined uint16 = 7
	TypeSRational uint16 = 10
)

// ByteOrder is satisfied by binary.LittleEndian and binary.BigEndian.
type ByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Field is one IFD entry to encode.
type Field struct {
	ID     uint16
	Type   uint16
	Ints   []uint32 // SHORT, LONG, RATIONAL (num, den pairs)
	Signed []int32  // SRATIONAL (num, den pairs)
	Raw    []byte   // BYTE, ASCII, UNDEFINED
}

func (f Field) count() uint32 {
	switch f.Type {
	case TypeRational:
		return uint32(len(f.Ints) / 2)
	case TypeSRational:
		return uint32(len(f.Signed) / 2)
	case TypeShort, TypeLong:
		return uint32(len(f.Ints))
	default:
		return uint32(len(f.Raw))
	}
}

func (f Field) encode(order ByteOrder) []byte {
	var buf []byte
	switch f.Type {
	case TypeShort:
		for _, v := range f.Ints {
			buf = order.AppendUint16(buf, uint16(v))
		}
	case TypeLong, TypeRational:
		for _, v := range f.Ints {
			buf = order.AppendUint32(buf, v)
		}
	case TypeSRational:
		for _, v := range f.Signed {
			buf = order.AppendUint32(buf, uint32(v))
		}
	default:
		buf = append(buf, f.Raw...)
	}
	return buf
}

// ASCII builds a NUL-terminated ASCII field.
func ASCII(id uint16, s string) Field {
	return Field{ID: id, Type: TypeASCII, Raw: append([]byte(s), 0)}
}

// Short builds a SHORT field.
func Short(id uint16, v ...uint16) Field {
	ints := make([]uint32, len(v))
	for i, n := range v {
		ints[i] = uint32(n)
	}
	return Field{ID: id, Type: TypeShort, Ints: ints}
}

// Long builds a LONG field.
func Long(id uint16, v ...uint32) Field {
	return Field{ID: id, Type: TypeLong, Ints: v}
}

// Rational builds a RATIONAL field from num, den pairs.
func Rational(id uint16, pairs ...uint32) Field {
	return Field{ID: id, Type: TypeRational, Ints: pairs}
}

// Undefined builds an UNDEFINED field.
func Undefined(id uint16, b []byte) Field {
	return Field{ID: id, Type: TypeUndefined, Raw: b}
}

// Bytes builds a BYTE array field.
func Bytes(id uint16, b []byte) Field {
	return Field{ID: id, Type: TypeByte, Raw: b}
}

// Dir describes IFD0 and its optional sub-IFDs. Pointer entries for Exif
// and GPS are appended to IFD0 automatically when those lists are non-empty.
type Dir struct {
	Fields []Field
	Exif   []Field
	GPS    []Field
}

// TIFF encodes d as a TIFF structure with IFD0 at offset 8.
func TIFF(order ByteOrder, d Dir) []byte {
	main := append([]Field(nil), d.Fields...)
	ifds := [][]Field{main}
	exifIdx, gpsIdx := -1, -1
	if len(d.Exif) > 0 {
		main = append(main, Long(0x8769, 0))
		exifIdx = len(main) - 1
		ifds = append(ifds, d.Exif)
	}
	if len(d.GPS) > 0 {
		main = append(main, Long(0x8825, 0))
		gpsIdx = len(main) - 1
		ifds = append(ifds, d.GPS)
	}
	ifds[0] = main

	offsets := make([]uint32, len(ifds))
	next := uint32(8)
	for i, fields := range ifds {
		offsets[i] = next
		next += 2 + 12*uint32(len(fields)) + 4
	}
	sub := 1
	if exifIdx >= 0 {
		main[exifIdx].Ints = []uint32{offsets[sub]}
		sub++
	}
	if gpsIdx >= 0 {
		main[gpsIdx].Ints = []uint32{offsets[sub]}
	}

	buf := make([]byte, next)
	if order == binary.LittleEndian {
		copy(buf, "II")
	} else {
		copy(buf, "MM")
	}
	order.PutUint16(buf[2:], 42)
	order.PutUint32(buf[4:], 8)

	for i, fields := range ifds {
		pos := offsets[i]
		order.PutUint16(buf[pos:], uint16(len(fields)))
		pos += 2
		for _, f := range fields {
			value := f.encode(order)
			order.PutUint16(buf[pos:], f.ID)
			order.PutUint16(buf[pos+2:], f.Type)
			order.PutUint32(buf[pos+4:], f.count())
			if len(value) <= 4 {
				copy(buf[pos+8:pos+12], value)
			} else {
				order.PutUint32(buf[pos+8:], uint32(len(buf)))
				buf = append(buf, value...)
				if len(buf)%2 == 1 {
					buf = append(buf, 0)
				}
			}
			pos += 12
		}
		order.PutUint32(buf[pos:], 0)
	}
	return buf
}

func segment(marker byte, payload []byte) []byte {
	seg := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(seg[2:], uint16(len(payload)+2))
	return append(seg, payload...)
}

// JPEG wraps an EXIF block and an optional XMP packet in APP1 segments.
func JPEG(exif, xmp []byte) []byte {
	out := []byte{0xFF, 0xD8}
	out = append(out, segment(0xE0, []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"))...)
	if exif != nil {
		out = append(out, segment(0xE1, append([]byte("Exif\x00\x00"), exif...))...)
	}
	if xmp != nil {
		out = append(out, segment(0xE1, append([]byte("http://ns.adobe.com/xap/1.0/\x00"), xmp...))...)
	}
	out = append(out, segment(0xDA, []byte{0x01, 0x01, 0x00, 0x00, 0x3F, 0x00})...)
	out = append(out, 0x00, 0x00, 0xFF, 0xD9)
	return out
}

func pngChunk(kind string, data []byte) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(data)))
	out = append(out, kind...)
	out = append(out, data...)
	return append(out, 0, 0, 0, 0) // CRC is not checked by the locator
}

// PNG builds a PNG with optional eXIf and XMP iTXt chunks.
func PNG(exif, xmp []byte) []byte {
	out := []byte("\x89PNG\r\n\x1a\n")
	out = append(out, pngChunk("IHDR", make([]byte, 13))...)
	if exif != nil {
		out = append(out, pngChunk("eXIf", exif)...)
	}
	if xmp != nil {
		var itxt bytes.Buffer
		itxt.WriteString("XML:com.adobe.xmp")
		itxt.Write([]byte{0, 0, 0, 0, 0})
		itxt.Write(xmp)
		out = append(out, pngChunk("iTXt", itxt.Bytes())...)
	}
	return append(out, pngChunk("IEND", nil)...)
}

// WebP builds a RIFF/WEBP file with optional EXIF and XMP chunks.
func WebP(exif, xmp []byte) []byte {
	var body []byte
	chunk := func(fourCC string, data []byte) {
		body = append(body, fourCC...)
		body = binary.LittleEndian.AppendUint32(body, uint32(len(data)))
		body = append(body, data...)
		if len(data)%2 == 1 {
			body = append(body, 0)
		}
	}
	chunk("VP8X", make([]byte, 10))
	if exif != nil {
		chunk("EXIF", exif)
	}
	if xmp != nil {
		chunk("XMP ", xmp)
	}
	out := []byte("RIFF")
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)+4))
	out = append(out, "WEBP"...)
	return append(out, body...)
}

// XMPPacket builds a complete packet around one rdf:Description with the
// given extra attributes and body.
func XMPPacket(attrs, body string) []byte {
	return []byte(`<?xpacket begin="` + "\uFEFF" + `" id="W5M0MpCehiHzreSzNTczkc9d"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:dc="http://purl.org/dc/elements/1.1/"
    xmlns:xmp="http://ns.adobe.com/xap/1.0/" ` + attrs + `>` + body + `</rdf:Description>
 </rdf:RDF>
</x:xmpmeta>
<?xpacket end="w"?>`)
}

// CameraJPEG is a JPEG whose IFD0 carries Make and Model.
func CameraJPEG(maker, model string) []byte {
	return JPEG(TIFF(binary.BigEndian, Dir{Fields: []Field{
		ASCII(0x010F, maker),
		ASCII(0x0110, model),
	}}), nil)
}

// WriteFile writes data under dir, creating parent directories.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
