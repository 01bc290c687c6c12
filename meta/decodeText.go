package meta

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
)

// DecodeText turns a raw byte value into text. Valid UTF-8 is kept as is,
// anything else is read as ISO-8859-1. Trailing NULs are dropped.
func DecodeText(b []byte) string {
	b = bytes.TrimRight(b, "\x00")
	if utf8.Valid(b) {
		return string(b)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("\uFFFD")))
	}
	return string(out)
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return DecodeText(b)
	}
	return strings.TrimRight(string(out), "\x00")
}

// decodeUTF16LE decodes the Windows XP* tags.
func decodeUTF16LE(b []byte) string {
	return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), b)
}

// decodeUserComment honors the 8-byte character code that prefixes UserComment.
func decodeUserComment(b []byte, order binary.ByteOrder) string {
	if len(b) < 8 {
		return DecodeText(b)
	}
	code := string(bytes.TrimRight(b[:8], "\x00 "))
	body := b[8:]

	switch code {
	case "ASCII", "":
		return strings.TrimRight(DecodeText(body), " ")
	case "UNICODE":
		endian := unicode.BigEndian
		if order == binary.LittleEndian {
			endian = unicode.LittleEndian
		}
		return decodeWith(unicode.UTF16(endian, unicode.UseBOM), body)
	case "JIS":
		return decodeWith(japanese.ShiftJIS, body)
	default:
		return DecodeText(b)
	}
}
