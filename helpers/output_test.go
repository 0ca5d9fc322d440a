package helpers

import (
	"bytes"
	"database/sql"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/churn/engine"
)

func sampleInsights() *engine.Insights {
	return &engine.Insights{
		Categorical: []engine.CategoricalInsight{
			{Feature: "gender", Value: sql.NullString{String: "Female", Valid: true}, ChurnRate: sql.NullFloat64{Float64: 1, Valid: true}, Count: 1},
			{Feature: "gender", Value: sql.NullString{String: "Male", Valid: true}, ChurnRate: sql.NullFloat64{Float64: 0.5, Valid: true}, Count: 2},
			{Feature: "Contract", Value: sql.NullString{}, ChurnRate: sql.NullFloat64{}, Count: 3},
		},
		Numeric: []engine.NumericInsight{
			{Feature: "tenure", ChurnLabel: sql.NullString{String: "No", Valid: true}, Average: sql.NullFloat64{Float64: 20, Valid: true}, Count: 1},
			{Feature: "tenure", ChurnLabel: sql.NullString{String: "Yes", Valid: true}, Average: sql.NullFloat64{Float64: 7.5, Valid: true}, Count: 2},
			{Feature: "tenure", ChurnLabel: sql.NullString{}, Average: sql.NullFloat64{}, Count: 1},
		},
	}
}

// captureLog redirects the standard logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}

func TestWriteInsights(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "processed")
	logs := captureLog(t)

	w, err := WriteInsights(dir, sampleInsights())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Churn rate by category: 3 rows written to "+w.Categorical)
	assert.Contains(t, logs.String(), "Numeric averages by churn label: 3 rows written to "+w.Numeric)
	assert.Equal(t, filepath.Join(dir, CategoricalFile), w.Categorical)
	assert.Equal(t, filepath.Join(dir, NumericFile), w.Numeric)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{CategoricalFile, NumericFile}, names)

	cat, err := os.ReadFile(w.Categorical)
	require.NoError(t, err)
	assert.Equal(t, "feature,value,churn_rate\ngender,Female,1.0\ngender,Male,0.5\nContract,,\n", string(cat))

	num, err := os.ReadFile(w.Numeric)
	require.NoError(t, err)
	assert.Equal(t, "feature,churn_label,average\ntenure,No,20.0\ntenure,Yes,7.5\ntenure,,\n", string(num))
}

func TestWriteInsightsOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, CategoricalFile), []byte("stale content that is longer than the new file\n"), 0o644))

	_, err := WriteInsights(dir, &engine.Insights{})
	require.NoError(t, err)

	cat, err := os.ReadFile(filepath.Join(dir, CategoricalFile))
	require.NoError(t, err)
	assert.Equal(t, "feature,value,churn_rate\n", string(cat))
}

func TestWriteInsightsUnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := WriteInsights(filepath.Join(file, "out"), sampleInsights())
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrWrite))
}
