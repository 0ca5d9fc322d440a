package helpers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "exports", "churn.db")

	require.NoError(t, ExportSQLite(ctx, path, "run-1", "telco.csv", sampleInsights()))
	require.NoError(t, ExportSQLite(ctx, path, "run-2", "telco.csv", sampleInsights()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var runs int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 2, runs)

	var catRows int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categorical_churn_rates WHERE run_id = ?`, "run-2").Scan(&catRows))
	assert.Equal(t, 3, catRows)

	var (
		value sql.NullString
		rate  sql.NullFloat64
		count int
	)
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT value, churn_rate, customers FROM categorical_churn_rates WHERE run_id = ? AND position = 2`, "run-1",
	).Scan(&value, &rate, &count))
	assert.False(t, value.Valid, "missing category is stored as NULL")
	assert.False(t, rate.Valid)
	assert.Equal(t, 3, count)

	var avg sql.NullFloat64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT average FROM numeric_averages_by_churn WHERE run_id = ? AND churn_label = 'Yes'`, "run-1",
	).Scan(&avg))
	assert.Equal(t, sql.NullFloat64{Float64: 7.5, Valid: true}, avg)
}

func TestExportSQLiteDuplicateRunRollsBack(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "churn.db")

	require.NoError(t, ExportSQLite(ctx, path, "run-1", "telco.csv", sampleInsights()))
	require.Error(t, ExportSQLite(ctx, path, "run-1", "telco.csv", sampleInsights()))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM numeric_averages_by_churn`).Scan(&n))
	assert.Equal(t, 3, n)
}
