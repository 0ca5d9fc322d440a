package engine

import (
	"log"
)

// ============================================================================
// INSIGHT GENERATOR — Runs the aggregators across configured column lists
// ============================================================================
// Pipeline:
//   1. Apply segment filters → SubView
//   2. ChurnRateByCategory for each categorical column, in list order
//   3. NumericAverageByChurn for each numeric column, in list order
//   4. Concatenate into Insights
// ============================================================================

// InsightConfig lists the columns the generator aggregates.
type InsightConfig struct {
	Categorical []string `json:"categorical"`
	Numeric     []string `json:"numeric"`
}

// Generate produces the concatenated categorical and numeric insight tables.
// Each aggregator's internal order is preserved; tables follow list order.
func Generate(view RecordView, ic InsightConfig, opts ...Option) (*Insights, error) {
	cfg := applyOptions(opts)

	filtered, err := ApplyFilters(view, cfg.Filters)
	if err != nil {
		return nil, err
	}
	if !cfg.Filters.IsEmpty() {
		log.Printf("🔎 Segment %s: %d of %d records", cfg.Filters, filtered.Len(), view.Len())
	}

	out := &Insights{
		Categorical: make([]CategoricalInsight, 0),
		Numeric:     make([]NumericInsight, 0),
	}

	for _, col := range ic.Categorical {
		rows, err := ChurnRateByCategory(filtered, col, opts...)
		if err != nil {
			return nil, err
		}
		out.Categorical = append(out.Categorical, rows...)
	}

	for _, col := range ic.Numeric {
		rows, err := NumericAverageByChurn(filtered, col, opts...)
		if err != nil {
			return nil, err
		}
		out.Numeric = append(out.Numeric, rows...)
	}

	return out, nil
}
