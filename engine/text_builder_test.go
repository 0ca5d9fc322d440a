package engine

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSummary(t *testing.T) {
	ins := &Insights{
		Categorical: []CategoricalInsight{
			{Feature: "Contract", Value: nullStringOf("Month-to-month"), ChurnRate: nullFloatOf(0.4271), Count: 3875},
			{Feature: "Contract", Value: nullStringOf("Two year"), ChurnRate: nullFloatOf(0.0283), Count: 1695},
			{Feature: "PaymentMethod", Value: nullStringOf("Electronic check"), ChurnRate: nullFloatOf(0.4529), Count: 2365},
			{Feature: "PaymentMethod", Value: sql.NullString{}, ChurnRate: nullFloatOf(1), Count: 1},
		},
		Numeric: []NumericInsight{
			{Feature: "tenure", ChurnLabel: nullStringOf("No"), Average: nullFloatOf(37.57)},
			{Feature: "tenure", ChurnLabel: nullStringOf("Yes"), Average: nullFloatOf(17.98)},
			{Feature: "MonthlyCharges", ChurnLabel: nullStringOf("No"), Average: nullFloatOf(61.27)},
			{Feature: "MonthlyCharges", ChurnLabel: nullStringOf("Yes"), Average: nullFloatOf(74.44)},
		},
	}

	s := BuildSummary(ins)

	require.NotNil(t, s.TopCategory)
	assert.Equal(t, "PaymentMethod", s.TopCategory.Feature)
	assert.Equal(t, "Electronic check", s.TopCategory.Value.String, "missing keys are not reported")

	require.NotNil(t, s.Gap)
	assert.Equal(t, "tenure", s.Gap.Feature)
	assert.Equal(t, -52.1, s.Gap.ChangePercent)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Highest churn: PaymentMethod=Electronic check (45.3% of 2365 customers)", lines[0])
	assert.Equal(t, "Largest gap: tenure averages 17.98 for churned vs 37.57 for retained (52.1% lower)", lines[1])
}

func TestBuildSummaryCustomLabels(t *testing.T) {
	ins := &Insights{
		Numeric: []NumericInsight{
			{Feature: "balance", ChurnLabel: nullStringOf("0"), Average: nullFloatOf(100)},
			{Feature: "balance", ChurnLabel: nullStringOf("1"), Average: nullFloatOf(150)},
		},
	}

	assert.Nil(t, BuildSummary(ins).Gap)

	s := BuildSummary(ins, WithLabels("1", "0"))
	require.NotNil(t, s.Gap)
	assert.Equal(t, 50.0, s.Gap.ChangePercent)
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(&Insights{})
	assert.Equal(t, []string{"No churn signal in this dataset."}, s.Lines())
	assert.Equal(t, Summary{}, BuildSummary(nil))
}

func TestBuildTables(t *testing.T) {
	cat := BuildCategoricalTable([]CategoricalInsight{
		{Feature: "gender", Value: nullStringOf("Female"), ChurnRate: nullFloatOf(1)},
		{Feature: "gender", Value: sql.NullString{}, ChurnRate: sql.NullFloat64{}},
	})
	assert.Equal(t, "Churn rate by category", cat.Title)
	assert.Equal(t, []string{"feature", "value", "churn_rate"}, cat.Headers())
	assert.Equal(t, [][]string{{"gender", "Female", "1.0"}, {"gender", "", ""}}, cat.Rows)

	num := BuildNumericTable([]NumericInsight{
		{Feature: "tenure", ChurnLabel: nullStringOf("Yes"), Average: nullFloatOf(7.5)},
	})
	assert.Equal(t, "Numeric averages by churn label", num.Title)
	assert.Equal(t, []string{"feature", "churn_label", "average"}, num.Headers())
	assert.Equal(t, [][]string{{"tenure", "Yes", "7.5"}}, num.Rows)
}
