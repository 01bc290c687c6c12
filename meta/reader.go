package meta

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"greg-hacke/exifsheet/formats"
	"greg-hacke/exifsheet/tags"
)

// DecoderKind selects the EXIF decoder implementation.
type DecoderKind string

const (
	DecoderBuiltin DecoderKind = "builtin"
	DecoderGoexif  DecoderKind = "goexif"
)

// XMPField lifts one XMP property into the metadata dictionary.
type XMPField struct {
	Name string   // entry name used in the report
	Path []string // property path below rdf:Description, e.g. ["dc:subject"]
}

// Options controls what ReadFile extracts.
type Options struct {
	Decoder   DecoderKind
	SubIFDs   bool // follow the Exif and GPS IFD pointers
	XMP       bool // parse the XMP packet
	XMPFields []XMPField
}

// Reader extracts metadata dictionaries from image files.
type Reader struct {
	opts    Options
	decoder Decoder
}

// NewReader creates a reader resolving tag names through resolver.
func NewReader(resolver tags.Resolver, opts Options) *Reader {
	var dec Decoder
	switch opts.Decoder {
	case DecoderGoexif:
		dec = &goexifDecoder{resolver: resolver, subIFDs: opts.SubIFDs}
	default:
		dec = &tiffDecoder{resolver: resolver, subIFDs: opts.SubIFDs}
	}
	return &Reader{opts: opts, decoder: dec}
}

// ReadFile extracts metadata from a file. The file is closed before return.
func (r *Reader) ReadFile(filename string) (*Metadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &FileError{Path: filename, Err: fmt.Errorf("%w: %w", ErrIO, err)}
	}
	defer file.Close()

	md, err := r.Read(file)
	if err != nil {
		return nil, &FileError{Path: filename, Err: err}
	}
	md.Path = filename
	return md, nil
}

// Read extracts metadata from an image held by src.
func (r *Reader) Read(src io.Reader) (*Metadata, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	c, err := formats.Locate(data)
	if err != nil {
		if errors.Is(err, formats.ErrMalformed) {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFile, err)
		}
		return nil, err
	}

	md := &Metadata{Format: c.Format, Size: int64(len(data))}

	// An APP1 holding only the Exif header carries no tags.
	if len(c.EXIF) > 0 {
		entries, err := r.decoder.Decode(c.EXIF)
		if err != nil {
			return nil, err
		}
		md.Entries = entries
	}

	if r.opts.XMP && c.XMP != nil {
		x, err := ParseXMP(c.XMP)
		if err != nil {
			return nil, err
		}
		md.XMP = x
		for _, f := range r.opts.XMPFields {
			values, err := x.Property(f.Path...)
			if errors.Is(err, ErrMissingField) {
				continue
			}
			md.Entries = append(md.Entries, Entry{
				Name:  f.Name,
				Group: tags.GroupXMP,
				Value: strings.Join(values, "; "),
			})
		}
	}

	return md, nil
}
