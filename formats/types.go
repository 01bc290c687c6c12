package formats

import "errors"

// Format identifies an image container.
type Format string

const (
	FormatUnknown Format = "UNKNOWN"
	FormatJPEG    Format = "JPEG"
	FormatPNG     Format = "PNG"
	FormatTIFF    Format = "TIFF"
	FormatWebP    Format = "WEBP"
)

var (
	// ErrUnsupported is returned for containers with no registered locator.
	ErrUnsupported = errors.New("unsupported format")
	// ErrMalformed is returned when a container's structure cannot be walked.
	ErrMalformed = errors.New("malformed container")
)

// Container holds the metadata payloads found inside an image file.
// Either payload may be nil when the file does not carry it.
type Container struct {
	Format Format
	EXIF   []byte // TIFF-structured EXIF block, starting at the byte order mark
	XMP    []byte // raw XMP packet
}
