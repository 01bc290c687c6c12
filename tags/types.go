package tags

import (
	"sort"
	"strconv"
)

// Group identifies the IFD family a tag id belongs to. GPS ids overlap the
// main TIFF/EXIF id space, so lookups are always scoped by group.
type Group int

const (
	GroupMain Group = iota // IFD0 and the Exif sub-IFD
	GroupGPS               // GPS sub-IFD
	GroupXMP               // fields lifted from the XMP packet
)

func (g Group) String() string {
	switch g {
	case GroupGPS:
		return "GPS"
	case GroupXMP:
		return "XMP"
	default:
		return "EXIF"
	}
}

// TagDef represents a single tag definition
type TagDef struct {
	ID          uint16 // Numeric tag identifier
	Name        string // Human-readable name
	Description string // Tag description
	Group       Group  // Which IFD family the id lives in
}

// Resolver maps numeric tag identifiers to definitions.
type Resolver interface {
	Lookup(group Group, id uint16) (TagDef, bool)
}

// Name resolves id through r, falling back to the decimal identifier.
func Name(r Resolver, group Group, id uint16) string {
	if r != nil {
		if def, ok := r.Lookup(group, id); ok && def.Name != "" {
			return def.Name
		}
	}
	return strconv.Itoa(int(id))
}

// Table is a read-only tag table. The zero value resolves nothing.
type Table struct {
	defs map[Group]map[uint16]TagDef
}

// NewTable builds a table from definitions. Later duplicates win.
func NewTable(defs ...[]TagDef) *Table {
	t := &Table{defs: make(map[Group]map[uint16]TagDef)}
	for _, list := range defs {
		for _, def := range list {
			m, ok := t.defs[def.Group]
			if !ok {
				m = make(map[uint16]TagDef)
				t.defs[def.Group] = m
			}
			m[def.ID] = def
		}
	}
	return t
}

// Lookup implements Resolver.
func (t *Table) Lookup(group Group, id uint16) (TagDef, bool) {
	if t == nil {
		return TagDef{}, false
	}
	def, ok := t.defs[group][id]
	return def, ok
}

// ByName finds a definition by its human-readable name.
func (t *Table) ByName(name string) (TagDef, bool) {
	if t == nil {
		return TagDef{}, false
	}
	for _, g := range []Group{GroupMain, GroupGPS} {
		for _, def := range t.defs[g] {
			if def.Name == name {
				return def, true
			}
		}
	}
	return TagDef{}, false
}

// All returns every definition ordered by group, then id.
func (t *Table) All() []TagDef {
	if t == nil {
		return nil
	}
	var out []TagDef
	for _, m := range t.defs {
		for _, def := range m {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].ID < out[j].ID
	})
	return out
}
