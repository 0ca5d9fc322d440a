package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spektr-org/churn/engine"
)

// ============================================================================
// SQLITE EXPORT — Optional sink for the insight tables
// ============================================================================
// Each run appends its rows tagged with a run id, so the database keeps a
// history across runs. NULL marks a missing value.
// ============================================================================

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS categorical_churn_rates (
	run_id     TEXT NOT NULL REFERENCES runs(run_id),
	position   INTEGER NOT NULL,
	feature    TEXT NOT NULL,
	value      TEXT,
	churn_rate REAL,
	customers  INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS numeric_averages_by_churn (
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	position    INTEGER NOT NULL,
	feature     TEXT NOT NULL,
	churn_label TEXT,
	average     REAL,
	customers   INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);`

// ExportSQLite stores ins in the SQLite database at path under runID.
func ExportSQLite(ctx context.Context, path, runID, source string, ins *engine.Insights) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return engine.WrapError(engine.KindWriteError, fmt.Sprintf("create directory for %s", path), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return engine.WrapError(engine.KindWriteError, "open sqlite", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return engine.WrapError(engine.KindWriteError, "create sqlite schema", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return engine.WrapError(engine.KindWriteError, "begin sqlite transaction", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, source, created_at) VALUES (?, ?, ?)`,
		runID, source, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return engine.WrapError(engine.KindWriteError, "insert run", err)
	}

	for i, r := range ins.Categorical {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categorical_churn_rates (run_id, position, feature, value, churn_rate, customers) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, r.Feature, r.Value, r.ChurnRate, r.Count,
		); err != nil {
			return engine.WrapError(engine.KindWriteError, "insert categorical row", err)
		}
	}

	for i, r := range ins.Numeric {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO numeric_averages_by_churn (run_id, position, feature, churn_label, average, customers) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, r.Feature, r.ChurnLabel, r.Average, r.Count,
		); err != nil {
			return engine.WrapError(engine.KindWriteError, "insert numeric row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return engine.WrapError(engine.KindWriteError, "commit sqlite transaction", err)
	}
	return nil
}
