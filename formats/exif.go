package formats

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

func init() {
	RegisterLocator(FormatJPEG, jpegLocator{})
}

var (
	exifHeader = []byte("Exif\x00\x00")
	xmpHeader  = []byte("http://ns.adobe.com/xap/1.0/\x00")
)

type jpegLocator struct{}

// Locate walks JPEG marker segments up to start-of-scan, collecting the
// first APP1 Exif block and the first APP1 XMP packet.
func (jpegLocator) Locate(data []byte) (*Container, error) {
	c := &Container{}
	offset := 2 // SOI

	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			return nil, fmt.Errorf("%w: invalid JPEG marker at offset %d", ErrMalformed, offset)
		}
		marker := data[offset+1]

		// Fill bytes and standalone markers carry no length.
		if marker == 0xFF {
			offset++
			continue
		}
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD8) {
			offset += 2
			continue
		}
		if marker == 0xDA || marker == 0xD9 {
			break
		}

		segLen := int(binary.BigEndian.Uint16(data[offset+2 : offset+4]))
		if segLen < 2 || offset+2+segLen > len(data) {
			return nil, fmt.Errorf("%w: JPEG segment 0x%02X overruns file", ErrMalformed, marker)
		}
		segData := data[offset+4 : offset+2+segLen]

		if marker == 0xE1 {
			switch {
			case c.EXIF == nil && bytes.HasPrefix(segData, exifHeader):
				c.EXIF = segData[len(exifHeader):]
			case c.XMP == nil && bytes.HasPrefix(segData, xmpHeader):
				c.XMP = segData[len(xmpHeader):]
			}
		}

		offset += 2 + segLen
	}

	return c, nil
}
