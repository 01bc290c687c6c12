package formats

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greg-hacke/exifsheet/imagetest"
)

func TestSniff(t *testing.T) {
	tiff := imagetest.TIFF(binary.LittleEndian, imagetest.Dir{})

	assert.Equal(t, FormatJPEG, Sniff(imagetest.JPEG(nil, nil)))
	assert.Equal(t, FormatPNG, Sniff(imagetest.PNG(nil, nil)))
	assert.Equal(t, FormatTIFF, Sniff(tiff))
	assert.Equal(t, FormatWebP, Sniff(imagetest.WebP(nil, nil)))
	assert.Equal(t, FormatUnknown, Sniff([]byte("hello world")))
	assert.Equal(t, FormatUnknown, Sniff(nil))
}

func TestLocatePayloads(t *testing.T) {
	exif := imagetest.TIFF(binary.BigEndian, imagetest.Dir{Fields: []imagetest.Field{
		imagetest.ASCII(0x010F, "Acme"),
	}})
	xmp := imagetest.XMPPacket(`xmp:Rating="3"`, "")

	cases := []struct {
		name   string
		data   []byte
		format Format
	}{
		{"jpeg", imagetest.JPEG(exif, xmp), FormatJPEG},
		{"png", imagetest.PNG(exif, xmp), FormatPNG},
		{"webp", imagetest.WebP(exif, xmp), FormatWebP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Locate(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.format, c.Format)
			assert.Equal(t, exif, c.EXIF)
			assert.Equal(t, xmp, c.XMP)
		})
	}
}

func TestLocateTIFFIsItsOwnEXIF(t *testing.T) {
	data := imagetest.TIFF(binary.LittleEndian, imagetest.Dir{Fields: []imagetest.Field{
		imagetest.ASCII(0x0110, "X1"),
	}})

	c, err := Locate(data)
	require.NoError(t, err)
	assert.Equal(t, FormatTIFF, c.Format)
	assert.Equal(t, data, c.EXIF)
	assert.Nil(t, c.XMP)
}

func TestLocateWithoutMetadata(t *testing.T) {
	c, err := Locate(imagetest.JPEG(nil, nil))
	require.NoError(t, err)
	assert.Nil(t, c.EXIF)
	assert.Nil(t, c.XMP)
}

func TestLocateUnsupported(t *testing.T) {
	_, err := Locate([]byte("GIF89a...."))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestLocateMalformedJPEG(t *testing.T) {
	truncated := imagetest.CameraJPEG("Acme", "X1")[:30]
	_, err := Locate(truncated)
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)

	badMarker := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x04, 0x00, 0x00, 0x12, 0x34, 0x56, 0x78}
	_, err = Locate(badMarker)
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}

func TestLocateMalformedPNG(t *testing.T) {
	data := imagetest.PNG([]byte("MM\x00*\x00\x00\x00\x08"), nil)
	_, err := Locate(data[:len(data)-20])
	assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
}
