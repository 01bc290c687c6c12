// Package report turns per-file tag projections into a spreadsheet.
package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// PathColumn is the header of the first column.
const PathColumn = "Filepath"

var (
	// ErrMissingTag is returned under MissingError when a row lacks a column.
	ErrMissingTag = errors.New("missing tag")
	// ErrShape is returned when files and projections do not line up.
	ErrShape = errors.New("mismatched report input")
	// ErrIO marks failures writing or reading a report file.
	ErrIO = errors.New("report i/o error")
)

// MissingPolicy decides what a row gets for a column its file lacks.
type MissingPolicy string

const (
	MissingFill  MissingPolicy = "fill"  // empty cell
	MissingError MissingPolicy = "error" // fail with ErrMissingTag
)

// ParseMissingPolicy accepts "fill", "error" or "" (fill).
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MissingFill:
		return MissingFill, nil
	case MissingError:
		return MissingError, nil
	}
	return "", fmt.Errorf("unknown missing tag policy %q", s)
}

// MissingTagError names the file and tag that were missing.
type MissingTagError struct {
	Path string
	Tag  string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Path, ErrMissingTag, e.Tag)
}

func (e *MissingTagError) Unwrap() error { return ErrMissingTag }

// Row is one file of the report. Cells are keyed by column name.
type Row struct {
	Path  string
	Cells map[string]string
}

// Table is an assembled report.
type Table struct {
	Columns []string // Columns[0] is PathColumn
	Rows    []Row
}

// Assemble builds the report table. Columns are the first file's tag names
// in its order, followed by names first seen in later files in order of
// appearance. Every cell is looked up by name, so a file lacking a tag
// never shifts the cells after it.
func Assemble(files []string, projections []Projection, policy MissingPolicy) (*Table, error) {
	if len(files) != len(projections) {
		return nil, fmt.Errorf("%w: %d files, %d projections", ErrShape, len(files), len(projections))
	}

	t := &Table{Columns: []string{PathColumn}}
	known := map[string]bool{}
	for i, p := range projections {
		if len(p.Names) != len(p.Values) {
			return nil, fmt.Errorf("%w: %s has %d names and %d values", ErrShape, files[i], len(p.Names), len(p.Values))
		}
		for _, name := range p.Names {
			if !known[name] {
				known[name] = true
				t.Columns = append(t.Columns, name)
			}
		}
	}

	for i, p := range projections {
		row := Row{Path: files[i], Cells: make(map[string]string, len(p.Names))}
		for j, name := range p.Names {
			row.Cells[name] = p.Values[j]
		}
		for _, col := range t.Columns[1:] {
			if _, ok := row.Cells[col]; ok {
				continue
			}
			if policy == MissingError {
				return nil, &MissingTagError{Path: files[i], Tag: col}
			}
			row.Cells[col] = ""
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Records renders the table as text rows: the header, then one row per
// file with the path rendered by PathCell.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		rec[0] = PathCell(row.Path)
		for i, col := range t.Columns[1:] {
			rec[i+1] = row.Cells[col]
		}
		out = append(out, rec)
	}
	return out
}

// Hyperlink returns the spreadsheet expression linking to path and
// labelled with it. Double quotes in path are doubled.
func Hyperlink(path string) string {
	quoted := `"` + strings.ReplaceAll(path, `"`, `""`) + `"`
	return "HYPERLINK(" + quoted + "," + quoted + ")"
}

// maxFormulaString is the longest string literal Excel accepts inside a
// formula.
const maxFormulaString = 255

// Linkable reports whether path fits in a Hyperlink expression.
func Linkable(path string) bool {
	return utf8.RuneCountInString(strings.ReplaceAll(path, `"`, `""`)) <= maxFormulaString
}

// PathCell is the text of a row's first column: the hyperlink expression,
// or the bare path when it is too long to link.
func PathCell(path string) string {
	if Linkable(path) {
		return Hyperlink(path)
	}
	return path
}
