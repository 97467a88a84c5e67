// Package tabular provides the raw table model consumed by the reconciliation
// engine, along with fuzzy column discovery. Source spreadsheets do not have a
// guaranteed column order, so columns are located by case-insensitive substring
// search over header text. Discovery fails loudly when a required column is
// absent or when the tokens match more than one header.
package tabular

import (
	"strings"

	"github.com/bankops/atmrecon/pkg/errors"
)

// Table is an in-memory snapshot of one tabular dataset. Rows may be ragged;
// out-of-range cells read as empty strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates a table from headers and rows.
func New(headers []string, rows [][]string) *Table {
	return &Table{Headers: headers, Rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the trimmed value at (row, col), or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColumnSpec describes how to discover one semantic column. Every token in All
// must appear in the header; when Any is non-empty, at least one of its tokens
// must appear as well. Matching is case-insensitive substring search.
type ColumnSpec struct {
	Name string   // semantic name reported in structural errors
	All  []string // tokens that must all be present
	Any  []string // tokens of which at least one must be present
}

func (s ColumnSpec) matches(header string) bool {
	h := strings.ToUpper(header)
	for _, tok := range s.All {
		if !strings.Contains(h, strings.ToUpper(tok)) {
			return false
		}
	}
	if len(s.Any) == 0 {
		return true
	}
	for _, tok := range s.Any {
		if strings.Contains(h, strings.ToUpper(tok)) {
			return true
		}
	}
	return false
}

func (s ColumnSpec) tokens() []string {
	return append(append([]string{}, s.All...), s.Any...)
}

// Find locates the column described by spec. It returns a StructuralError when
// no header matches or when more than one header matches.
func (t *Table) Find(spec ColumnSpec) (int, error) {
	found := -1
	for i, h := range t.Headers {
		if !spec.matches(h) {
			continue
		}
		if found >= 0 {
			return -1, errors.NewStructuralError("", spec.Name, spec.tokens(), true)
		}
		found = i
	}
	if found < 0 {
		return -1, errors.NewStructuralError("", spec.Name, spec.tokens(), false)
	}
	return found, nil
}

// FindOptional behaves like Find but reports absence as -1 without error.
// Ambiguity is still an error: a table with two plausible candidates for the
// same semantic column cannot be trusted.
func (t *Table) FindOptional(spec ColumnSpec) (int, error) {
	idx, err := t.Find(spec)
	if err != nil {
		var se *errors.StructuralError
		if errors.AsStructural(err, &se) && !se.Ambiguous {
			return -1, nil
		}
		return -1, err
	}
	return idx, nil
}

// IsEmptyRow reports whether every cell of the given row is blank.
func (t *Table) IsEmptyRow(row int) bool {
	if row < 0 || row >= len(t.Rows) {
		return true
	}
	for _, cell := range t.Rows[row] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
