package helpers

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spektr-org/churn/engine"
)

// ============================================================================
// CSV OUTPUT — Writes the two insight tables
// ============================================================================

// Fixed output file names.
const (
	CategoricalFile = "categorical_churn_rates.csv"
	NumericFile     = "numeric_averages_by_churn.csv"
)

// Written reports where the tables were persisted.
type Written struct {
	Dir         string
	Categorical string
	Numeric     string
}

// WriteInsights writes both tables into dir, creating it if needed.
// Existing files are replaced.
func WriteInsights(dir string, ins *engine.Insights) (*Written, error) {
	if ins == nil {
		return nil, engine.NewError(engine.KindWriteError, "no insights to write")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, engine.WrapError(engine.KindWriteError, fmt.Sprintf("create output directory %s", dir), err)
	}

	out := &Written{
		Dir:         dir,
		Categorical: filepath.Join(dir, CategoricalFile),
		Numeric:     filepath.Join(dir, NumericFile),
	}
	if err := WriteTableCSV(out.Categorical, engine.BuildCategoricalTable(ins.Categorical)); err != nil {
		return nil, err
	}
	if err := WriteTableCSV(out.Numeric, engine.BuildNumericTable(ins.Numeric)); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteTableCSV writes a header row followed by the table rows. No index column.
func WriteTableCSV(path string, table *engine.TableData) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return engine.WrapError(engine.KindWriteError, fmt.Sprintf("create %s", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = engine.WrapError(engine.KindWriteError, fmt.Sprintf("close %s", path), cerr)
		}
	}()

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Headers()); err != nil {
		return engine.WrapError(engine.KindWriteError, fmt.Sprintf("write %s", path), err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return engine.WrapError(engine.KindWriteError, fmt.Sprintf("write %s", path), err)
	}
	log.Printf("💾 %s: %d rows written to %s", table.Title, len(table.Rows), path)
	return nil
}
