package report

import "greg-hacke/exifsheet/meta"

// Projection is a metadata dictionary restricted to an allow-list.
// Names and Values always have the same length.
type Projection struct {
	Names  []string
	Values []string
}

// Len returns the number of projected tags.
func (p Projection) Len() int { return len(p.Names) }

// Value returns the text of name and whether it was projected.
func (p Projection) Value(name string) (string, bool) {
	for i, n := range p.Names {
		if n == name {
			return p.Values[i], true
		}
	}
	return "", false
}

// Project keeps the entries of md whose name is in allow, in dictionary
// order, with values rendered as text. Tags absent from md are omitted and
// only the first entry of a repeated name is kept.
func Project(md *meta.Metadata, allow []string) Projection {
	wanted := make(map[string]bool, len(allow))
	for _, name := range allow {
		wanted[name] = true
	}

	var p Projection
	if md == nil {
		return p
	}
	seen := make(map[string]bool, len(allow))
	for _, e := range md.Entries {
		if !wanted[e.Name] || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		p.Names = append(p.Names, e.Name)
		p.Values = append(p.Values, meta.FormatValue(e.Value))
	}
	return p
}
