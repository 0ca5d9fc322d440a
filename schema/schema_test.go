package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/churn/engine"
)

func TestTelcoSchema(t *testing.T) {
	sch := Telco()

	assert.Len(t, sch.Categorical, 16)
	assert.Equal(t, []string{"tenure", "MonthlyCharges", "TotalCharges"}, sch.Numeric)
	assert.Equal(t, []string{"TotalCharges", "Churn"}, sch.Required())
	require.NoError(t, sch.Validate())

	ic := sch.InsightConfig()
	ic.Categorical[0] = "changed"
	assert.Equal(t, "gender", sch.Categorical[0], "InsightConfig must not alias the schema lists")
}

func TestCheckHeader(t *testing.T) {
	sch := Telco()

	require.NoError(t, sch.CheckHeader([]string{"customerID", "TotalCharges", "Churn"}))

	err := sch.CheckHeader([]string{"customerID", "Churn"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrSchema))

	var domainErr *engine.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "TotalCharges", domainErr.Column)

	err = sch.CheckHeader([]string{"TotalCharges"})
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Churn", domainErr.Column)
}

func TestLoadSchemaFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"name": "Bank churn",
		"labelColumn": "Exited",
		"positiveLabel": "1",
		"negativeLabel": "0",
		"categorical": ["Geography", "Gender"],
		"numeric": ["Balance"]
	}`), 0o644))

	sch, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Bank churn", sch.Name)
	assert.Equal(t, "Exited", sch.LabelColumn)
	assert.Equal(t, engine.DefaultIndicatorColumn, sch.IndicatorColumn)
	assert.Equal(t, []string{"Exited"}, sch.Required())
	assert.Equal(t, []string{"Geography", "Gender"}, sch.InsightConfig().Categorical)
}

func TestLoadSchemaErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, engine.ErrConfig))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"categorical": [`), 0o644))
	_, err = Load(bad)
	assert.True(t, errors.Is(err, engine.ErrConfig))

	same := filepath.Join(dir, "same.json")
	require.NoError(t, os.WriteFile(same, []byte(`{"positiveLabel": "No"}`), 0o644))
	_, err = Load(same)
	assert.True(t, errors.Is(err, engine.ErrConfig))

	blank := filepath.Join(dir, "blank.json")
	require.NoError(t, os.WriteFile(blank, []byte(`{"numeric": [" "]}`), 0o644))
	_, err = Load(blank)
	assert.True(t, errors.Is(err, engine.ErrConfig))
}
