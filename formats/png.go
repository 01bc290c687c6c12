package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

func init() {
	RegisterLocator(FormatPNG, pngLocator{})
}

const xmpKeyword = "XML:com.adobe.xmp"

type pngLocator struct{}

// Locate walks PNG chunks, taking EXIF from eXIf and XMP from the iTXt chunk
// keyed XML:com.adobe.xmp. Chunk CRCs are not verified.
func (pngLocator) Locate(data []byte) (*Container, error) {
	c := &Container{}
	offset := len(pngSignature)

	for offset+8 <= len(data) {
		chunkLen := int(binary.BigEndian.Uint32(data[offset : offset+4]))
		chunkType := string(data[offset+4 : offset+8])
		if chunkLen < 0 || offset+12+chunkLen > len(data) {
			return nil, fmt.Errorf("%w: PNG chunk %q overruns file", ErrMalformed, chunkType)
		}
		chunkData := data[offset+8 : offset+8+chunkLen]

		switch chunkType {
		case "eXIf":
			if c.EXIF == nil {
				c.EXIF = bytes.TrimPrefix(chunkData, exifHeader)
			}
		case "iTXt":
			if c.XMP == nil {
				c.XMP = itxtXMP(chunkData)
			}
		}

		offset += 12 + chunkLen // length + type + data + CRC
		if chunkType == "IEND" {
			break
		}
	}

	return c, nil
}

// itxtXMP returns the text of an uncompressed iTXt chunk carrying XMP:
// keyword NUL flag method language NUL translated NUL text.
func itxtXMP(chunk []byte) []byte {
	keyword, rest, ok := bytes.Cut(chunk, []byte{0})
	if !ok || string(keyword) != xmpKeyword || len(rest) < 2 {
		return nil
	}
	if rest[0] != 0 {
		return nil
	}
	rest = rest[2:]
	_, rest, ok = bytes.Cut(rest, []byte{0})
	if !ok {
		return nil
	}
	_, text, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return nil
	}
	return text
}
