package engine

import "database/sql"

// ============================================================================
// TABLE BUILDER — Produces TableData from insight rows
// ============================================================================
// Missing cells render as empty strings; floats use FormatFloat.
// ============================================================================

// Fixed output headers.
var (
	CategoricalColumns = []Column{
		{Key: "feature"},
		{Key: "value"},
		{Key: "churn_rate"},
	}
	NumericColumns = []Column{
		{Key: "feature"},
		{Key: "churn_label"},
		{Key: "average"},
	}
)

// BuildCategoricalTable renders categorical insights as feature,value,churn_rate.
func BuildCategoricalTable(rows []CategoricalInsight) *TableData {
	t := &TableData{
		Title:   "Churn rate by category",
		Columns: CategoricalColumns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Feature, nullString(r.Value), nullFloat(r.ChurnRate)})
	}
	return t
}

// BuildNumericTable renders numeric insights as feature,churn_label,average.
func BuildNumericTable(rows []NumericInsight) *TableData {
	t := &TableData{
		Title:   "Numeric averages by churn label",
		Columns: NumericColumns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Feature, nullString(r.ChurnLabel), nullFloat(r.Average)})
	}
	return t
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func nullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return FormatFloat(v.Float64)
}
