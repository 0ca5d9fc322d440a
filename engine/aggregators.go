package engine

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView, never on the loaded records directly.
// Grouping produces SubViews (index lists into parent view).
//
// Group order: keys ascending, missing key last.
// Value order ("value_desc"): mean descending, missing mean last, ties keep
// group order.
// ============================================================================

// ChurnRateByCategory computes the mean churn indicator per distinct value of column.
// Output is sorted by churn rate descending with missing rates last.
func ChurnRateByCategory(view RecordView, column string, opts ...Option) ([]CategoricalInsight, error) {
	cfg := applyOptions(opts)
	if !view.HasColumn(column) {
		return nil, ColumnError(KindColumnNotFound, column)
	}

	groups := GroupAndAggregate(view, column, cfg.IndicatorColumn, "value_desc")

	out := make([]CategoricalInsight, 0, len(groups))
	for _, g := range groups {
		out = append(out, CategoricalInsight{
			Feature:   column,
			Value:     g.KeyValue(),
			ChurnRate: g.Mean(),
			Count:     g.Count,
		})
	}
	return out, nil
}

// NumericAverageByChurn computes the mean of column per raw churn label.
// Output follows group order: labels ascending, missing label last.
func NumericAverageByChurn(view RecordView, column string, opts ...Option) ([]NumericInsight, error) {
	cfg := applyOptions(opts)
	if !view.HasColumn(column) {
		return nil, ColumnError(KindColumnNotFound, column)
	}
	if !view.HasColumn(cfg.LabelColumn) {
		return nil, ColumnError(KindColumnNotFound, cfg.LabelColumn)
	}

	groups := GroupAndAggregate(view, cfg.LabelColumn, column, "")

	out := make([]NumericInsight, 0, len(groups))
	for _, g := range groups {
		out = append(out, NumericInsight{
			Feature:    column,
			ChurnLabel: g.KeyValue(),
			Average:    g.Mean(),
			Count:      g.Count,
		})
	}
	return out, nil
}

// GroupAndAggregate is the aggregation pipeline: group → mean → sort.
func GroupAndAggregate(view RecordView, groupBy string, measure string, sortBy string) []Group {
	if view.Len() == 0 {
		return nil
	}

	groups := groupBySingle(view, groupBy)
	for i := range groups {
		aggregateGroup(&groups[i], measure)
	}
	SortGroups(groups, sortBy)
	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupBySingle(view RecordView, column string) []Group {
	grouped := make(map[string][]int)
	var missing []int
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key, ok := view.Dimension(i, column)
		if !ok {
			missing = append(missing, i)
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}
	sort.Strings(order)

	groups := make([]Group, 0, len(order)+1)
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	if len(missing) > 0 {
		groups = append(groups, Group{
			Missing: true,
			Count:   len(missing),
			View:    newSubView(view, missing),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string) {
	group.Count = group.View.Len()
	group.Value, group.Valid = MeanMeasure(group.View, measure)
}

// MeanMeasure averages a measure over the non-missing values of a view.
// valid is the number of values that contributed; zero means the mean is missing.
func MeanMeasure(view RecordView, measure string) (mean float64, valid int) {
	var total float64
	for i := 0; i < view.Len(); i++ {
		v, ok := view.Measure(i, measure)
		if !ok {
			continue
		}
		total += v
		valid++
	}
	if valid == 0 {
		return 0, 0
	}
	return total / float64(valid), valid
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts groups by the specified sort mode. Sorting is stable.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case "value_desc":
		sort.SliceStable(groups, func(i, j int) bool {
			return valueBefore(groups[i], groups[j])
		})
	default:
		// preserve grouping order
	}
}

// valueBefore reports whether a sorts before b in descending value order.
// Missing means go last.
func valueBefore(a, b Group) bool {
	am, bm := a.Valid > 0, b.Valid > 0
	if !am || !bm {
		return am && !bm
	}
	return a.Value > b.Value
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatFloat renders v as the shortest decimal that round-trips, with ".0"
// appended to integral values ("1.0", "7.5", "0.2655").
func FormatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// RoundTo4 rounds to 4 decimal places.
func RoundTo4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
