package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

func init() {
	RegisterLocator(FormatWebP, webpLocator{})
}

type webpLocator struct{}

// Locate walks RIFF chunks after the WEBP form type.
func (webpLocator) Locate(data []byte) (*Container, error) {
	c := &Container{}
	offset := 12

	for offset+8 <= len(data) {
		fourCC := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		if size < 0 || offset+8+size > len(data) {
			return nil, fmt.Errorf("%w: RIFF chunk %q overruns file", ErrMalformed, fourCC)
		}
		payload := data[offset+8 : offset+8+size]

		switch fourCC {
		case "EXIF":
			c.EXIF = bytes.TrimPrefix(payload, exifHeader)
		case "XMP ":
			c.XMP = payload
		}

		offset += 8 + size + size%2 // chunks are padded to even length
	}

	return c, nil
}
