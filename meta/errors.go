package meta

import (
	"errors"
	"fmt"
	"strings"

	"greg-hacke/exifsheet/formats"
)

var (
	// ErrIO marks failures to open or read a file.
	ErrIO = errors.New("i/o error")
	// ErrUnsupportedFormat marks files whose container is not recognized.
	ErrUnsupportedFormat = formats.ErrUnsupported
	// ErrCorruptFile marks containers or EXIF blocks that cannot be parsed.
	ErrCorruptFile = errors.New("corrupt file")
	// ErrMissingField marks a structured metadata path that does not exist.
	ErrMissingField = errors.New("missing metadata field")
)

// FileError attaches the offending path to an extraction failure.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// FieldError reports an absent XMP path.
type FieldError struct {
	Path []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingField, strings.Join(e.Path, "/"))
}

func (e *FieldError) Unwrap() error { return ErrMissingField }
