package engine

import "database/sql"

// ============================================================================
// CHURN ENGINE TYPES
// ============================================================================
// Record keeps raw cell text as dimensions and coerced numbers as measures.
// A key that is absent from either map is a missing value. Missing values
// are excluded from averages but still counted in group sizes.
//
// Dependency: engine has no third-party dependencies.
// ============================================================================

// Default column names for the Telco churn dataset.
const (
	DefaultLabelColumn     = "Churn"
	DefaultIndicatorColumn = "ChurnFlag"
	DefaultPositiveLabel   = "Yes"
	DefaultNegativeLabel   = "No"
)

// ============================================================================
// RECORD
// ============================================================================

// Record is a single customer row.
//
//	Record{Dimensions["Contract"]="Month-to-month", Measures["tenure"]=12, Measures["ChurnFlag"]=1}
type Record struct {
	Dimensions map[string]string  `json:"dimensions"`
	Measures   map[string]float64 `json:"measures"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is one distinct key of a grouping column.
type Group struct {
	Key     string     `json:"key"`
	Missing bool       `json:"missing"` // rows whose key is missing
	Count   int        `json:"count"`
	Valid   int        `json:"valid"` // rows that contributed to Value
	Value   float64    `json:"value"`
	View    RecordView `json:"-"`
}

// Mean returns the group's aggregate as a nullable value.
func (g Group) Mean() sql.NullFloat64 {
	if g.Valid == 0 {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: g.Value, Valid: true}
}

// KeyValue returns the group key as a nullable string.
func (g Group) KeyValue() sql.NullString {
	if g.Missing {
		return sql.NullString{}
	}
	return sql.NullString{String: g.Key, Valid: true}
}

// ============================================================================
// INSIGHT ROWS
// ============================================================================

// CategoricalInsight is the churn rate of one category value.
type CategoricalInsight struct {
	Feature   string          `json:"feature"`
	Value     sql.NullString  `json:"value"`
	ChurnRate sql.NullFloat64 `json:"churnRate"`
	Count     int             `json:"count"`
}

// NumericInsight is the average of a numeric column for one churn label.
type NumericInsight struct {
	Feature    string          `json:"feature"`
	ChurnLabel sql.NullString  `json:"churnLabel"`
	Average    sql.NullFloat64 `json:"average"`
	Count      int             `json:"count"`
}

// Insights holds both concatenated output tables.
type Insights struct {
	Categorical []CategoricalInsight `json:"categorical"`
	Numeric     []NumericInsight     `json:"numeric"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData is a render-ready table: fixed headers plus formatted cells.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column defines a table column.
type Column struct {
	Key string `json:"key"`
}

// Headers returns the column keys in order.
func (t *TableData) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		headers[i] = c.Key
	}
	return headers
}
