package formats

import "bytes"

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Sniff determines the container format from the leading bytes of a file.
func Sniff(header []byte) Format {
	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return FormatJPEG

	case len(header) >= 8 && bytes.Equal(header[:8], pngSignature):
		return FormatPNG

	case len(header) >= 4 && (string(header[:4]) == "II*\x00" || string(header[:4]) == "MM\x00*"):
		return FormatTIFF

	case len(header) >= 12 && string(header[:4]) == "RIFF" && string(header[8:12]) == "WEBP":
		return FormatWebP

	default:
		return FormatUnknown
	}
}
