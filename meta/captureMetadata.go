package meta

import (
	"greg-hacke/exifsheet/formats"
	"greg-hacke/exifsheet/tags"
)

// Rational is an unsigned or signed TIFF rational.
type Rational struct {
	Num int64
	Den int64
}

// Entry is one resolved metadata field.
//
// Value is one of string, int64, float64, Rational, []int64, []float64,
// []Rational or GPS. Raw byte sequences are decoded to string before an
// Entry is built.
type Entry struct {
	ID    uint16
	Name  string
	Group tags.Group
	Value any
}

// GPS is the decoded GPS sub-IFD, kept as a structured value of the GPSInfo tag.
type GPS struct {
	Entries []Entry
}

// Metadata is the ordered metadata dictionary of one file.
type Metadata struct {
	Path    string
	Format  formats.Format
	Size    int64
	Entries []Entry // file order
	XMP     *XMP    // nil unless XMP extraction was requested and a packet exists
}

// Get returns the first entry with the given name.
func (m *Metadata) Get(name string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names lists entry names in dictionary order.
func (m *Metadata) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Name
	}
	return names
}
