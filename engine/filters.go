package engine

import (
	"sort"
	"strings"
)

// ============================================================================
// FILTERS — Segment restriction via RecordView
// ============================================================================
// Single-pass filter: checks ALL column constraints per record in one loop.
// Returns a SubView (index list into parent).
// ============================================================================

// Filters define which records to include.
// Keys are column names. Values are allowed values.
// OR within a column, AND across columns. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// String renders filters as "col=a|b,col2=c" with columns sorted.
func (f Filters) String() string {
	keys := make([]string, 0, len(f.Dimensions))
	for k, vals := range f.Dimensions {
		if len(vals) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strings.Join(f.Dimensions[k], "|")
	}
	return strings.Join(parts, ",")
}

// ApplyFilters returns a view of records matching all column filters.
// Matching is case-insensitive; a missing value never matches.
func ApplyFilters(view RecordView, filters Filters) (RecordView, error) {
	if filters.IsEmpty() {
		return view, nil
	}

	sets := make(map[string]map[string]bool)
	for col, allowed := range filters.Dimensions {
		if len(allowed) == 0 {
			continue
		}
		if !view.HasColumn(col) {
			return nil, ColumnError(KindColumnNotFound, col)
		}
		sets[col] = toLowerSet(allowed)
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		pass := true
		for col, set := range sets {
			val, ok := view.Dimension(i, col)
			if !ok || !set[strings.ToLower(val)] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}

	return newSubView(view, indices), nil
}

// toLowerSet converts a string slice to a lowercase lookup set.
func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return set
}
