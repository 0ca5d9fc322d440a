package engine

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// RECORD VIEW — Zero-Copy Data Access Interface
// ============================================================================
// The aggregators never own the loaded data. They read through this interface.
//
// Implementations:
//   Table   — wraps []Record plus the header column list
//   SubView — filtered subset (indices into parent, zero-copy)
// ============================================================================

// RecordView provides indexed access to a dataset.
// The second return value of Dimension and Measure is false when the value is missing.
type RecordView interface {
	Len() int
	Dimension(index int, key string) (string, bool)
	Measure(index int, key string) (float64, bool)
	Columns() []string
	HasColumn(key string) bool
}

// ============================================================================
// TABLE — wraps []Record
// ============================================================================

// Table is the loaded record table. It is read-only once built.
type Table struct {
	records []Record
	columns []string
	index   map[string]bool
}

// NewTable creates a Table from a header and its records.
// Derived columns must be listed in columns to be addressable.
func NewTable(columns []string, records []Record) *Table {
	t := &Table{
		records: records,
		columns: columns,
		index:   make(map[string]bool, len(columns)),
	}
	for _, c := range columns {
		t.index[c] = true
	}
	return t
}

func (t *Table) Len() int { return len(t.records) }

func (t *Table) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(t.records) {
		return "", false
	}
	v, ok := t.records[i].Dimensions[key]
	return v, ok
}

// Measure returns the coerced value of key. Columns the loader did not coerce
// are parsed from their raw text; unparseable text is missing.
func (t *Table) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(t.records) {
		return 0, false
	}
	rec := t.records[i]
	if v, ok := rec.Measures[key]; ok {
		return v, true
	}
	raw, ok := rec.Dimensions[key]
	if !ok {
		return 0, false
	}
	return ParseNumber(raw)
}

func (t *Table) Columns() []string         { return t.columns }
func (t *Table) HasColumn(key string) bool { return t.index[key] }

// ============================================================================
// SUB VIEW — filtered subset (zero-copy)
// ============================================================================

// SubView is a subset of a parent RecordView.
// Holds indices into the parent, no data copy.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int { return len(v.indices) }

func (v *SubView) Dimension(i int, key string) (string, bool) {
	if i < 0 || i >= len(v.indices) {
		return "", false
	}
	return v.parent.Dimension(v.indices[i], key)
}

func (v *SubView) Measure(i int, key string) (float64, bool) {
	if i < 0 || i >= len(v.indices) {
		return 0, false
	}
	return v.parent.Measure(v.indices[i], key)
}

func (v *SubView) Columns() []string         { return v.parent.Columns() }
func (v *SubView) HasColumn(key string) bool { return v.parent.HasColumn(key) }

// ============================================================================
// COERCION
// ============================================================================

// ParseNumber converts cell text to a float. Blank, non-numeric, NaN and
// infinite values are reported as missing.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
