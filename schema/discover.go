package schema

import (
	"fmt"
	"strings"

	"github.com/spektr-org/churn/engine"
)

// ============================================================================
// AUTO-DISCOVERY — Heuristic column classification
// ============================================================================
// Inspects a loaded table and proposes a Config.
//
// Classification pipeline per column:
//   1. Collect non-missing values → detect type (numeric or string)
//   2. Type + cardinality → classify role (categorical, numeric, skip)
//   3. Numeric columns with unparseable values are added to Coerce
// ============================================================================

// DiscoverOptions controls discovery behavior.
type DiscoverOptions struct {
	Name        string // Dataset name override
	LabelColumn string // Churn label column, excluded from the lists
}

type columnRole int

const (
	roleCategorical columnRole = iota
	roleNumeric
	roleSkipped
)

type columnAnalysis struct {
	name        string
	role        columnRole
	skipReason  string
	uniqueCount int
	valueCount  int
	numCount    int
	hasDecimals bool
}

// Discover classifies the columns of view into a Config.
// The label and indicator columns are never classified.
func Discover(view engine.RecordView, opts DiscoverOptions) (*Config, error) {
	cfg := Telco()
	cfg.Name = opts.Name
	if cfg.Name == "" {
		cfg.Name = "Auto-discovered Dataset"
	}
	if opts.LabelColumn != "" {
		cfg.LabelColumn = opts.LabelColumn
	}
	cfg.Coerce = nil
	cfg.Categorical = nil
	cfg.Numeric = nil
	cfg.DiscoveredFrom = "CSV"

	if view.Len() == 0 {
		return nil, engine.NewError(engine.KindReadError, "CSV has no data rows")
	}
	if !view.HasColumn(cfg.LabelColumn) {
		return nil, &engine.Error{
			Kind:    engine.KindSchemaError,
			Message: fmt.Sprintf("required column %q is missing", cfg.LabelColumn),
			Column:  cfg.LabelColumn,
		}
	}

	for _, name := range view.Columns() {
		if name == cfg.LabelColumn || name == cfg.IndicatorColumn {
			continue
		}
		col := analyzeColumn(view, name)
		switch col.role {
		case roleCategorical:
			cfg.Categorical = append(cfg.Categorical, name)
		case roleNumeric:
			cfg.Numeric = append(cfg.Numeric, name)
			if col.numCount < col.valueCount {
				cfg.Coerce = append(cfg.Coerce, name)
			}
		case roleSkipped:
			cfg.SkippedColumns = append(cfg.SkippedColumns, SkippedColumn{
				Column: name,
				Reason: col.skipReason,
			})
		}
	}

	return &cfg, nil
}

// analyzeColumn inspects all values in a column and classifies it.
func analyzeColumn(view engine.RecordView, name string) columnAnalysis {
	col := columnAnalysis{name: name}
	unique := make(map[string]bool)

	for i := 0; i < view.Len(); i++ {
		val, ok := view.Dimension(i, name)
		if !ok {
			continue
		}
		col.valueCount++
		unique[val] = true
		if _, ok := engine.ParseNumber(val); ok {
			col.numCount++
			if strings.Contains(val, ".") {
				col.hasDecimals = true
			}
		}
	}
	col.uniqueCount = len(unique)
	col.classifyRole(view.Len())
	return col
}

// classifyRole determines categorical vs numeric vs skip.
// A column is numeric when 80%+ of its non-missing values parse.
func (col *columnAnalysis) classifyRole(totalRows int) {
	if col.valueCount == 0 {
		col.role = roleSkipped
		col.skipReason = "All values are empty/null"
		return
	}
	if col.uniqueCount == totalRows && totalRows > 10 {
		col.role = roleSkipped
		col.skipReason = "Unique per row — likely an identifier"
		return
	}

	numeric := col.numCount >= int(float64(col.valueCount)*0.8)
	if numeric {
		if col.hasDecimals {
			col.role = roleNumeric
			return
		}
		// Few distinct integers (e.g. SeniorCitizen 0/1) are coded categories.
		uniqueRatio := float64(col.uniqueCount) / float64(totalRows)
		if col.uniqueCount < 20 && uniqueRatio < 0.3 {
			col.role = roleCategorical
			return
		}
		col.role = roleNumeric
		return
	}

	if col.uniqueCount > totalRows/2 && col.uniqueCount > 50 {
		col.role = roleSkipped
		col.skipReason = fmt.Sprintf("High cardinality (%d unique values) — not useful for grouping", col.uniqueCount)
		return
	}
	col.role = roleCategorical
}
