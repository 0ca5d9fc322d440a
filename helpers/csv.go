package helpers

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/spektr-org/churn/engine"
	"github.com/spektr-org/churn/schema"
)

// ============================================================================
// CSV LOADER — Parses a churn CSV into an engine.Table
// ============================================================================
// The header is checked before any row is converted. Data rows are loaded
// as an all-string DataFrame so that no column is type-guessed. Cells
// matching a missing token are dropped from the record.
// Coerce columns become measures; the churn label becomes the 1/0 indicator.
// ============================================================================

// MissingTokens are cell values treated as missing.
var MissingTokens = []string{"", "NA", "N/A", "NaN", "nan", "NULL", "null", "#N/A", "<NA>", "None"}

// Load reads the CSV at path. Files ending in .gz or .zst are decompressed.
func Load(path string, sch schema.Config) (*engine.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		msg := "open input"
		if errors.Is(err, fs.ErrNotExist) {
			msg = "input file not found"
		}
		return nil, engine.WrapError(engine.KindReadError, msg, err)
	}
	defer f.Close()

	r, closeFn, err := decompress(f, path)
	if err != nil {
		return nil, engine.WrapError(engine.KindReadError, "open compressed input", err)
	}
	defer closeFn()

	return ParseCSV(r, sch)
}

// decompress picks a decoder from the file extension.
func decompress(r io.Reader, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, func() { zr.Close() }, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr.Close, nil
	default:
		return bufio.NewReader(r), func() {}, nil
	}
}

// ParseCSV parses CSV data whose first row is a header into a Table.
// A header with no data rows yields an empty Table.
func ParseCSV(r io.Reader, sch schema.Config) (*engine.Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, engine.WrapError(engine.KindReadError, "failed to read CSV", err)
	}
	if len(records) == 0 {
		return nil, engine.NewError(engine.KindReadError, "CSV has no header row")
	}

	header := dedupeHeader(records[0])
	if err := sch.CheckHeader(header); err != nil {
		return nil, err
	}
	records[0] = header

	columns := append([]string(nil), header...)
	if !contains(columns, sch.IndicatorColumn) {
		columns = append(columns, sch.IndicatorColumn)
	}
	if len(records) == 1 {
		return engine.NewTable(columns, nil), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		return nil, engine.WrapError(engine.KindReadError, "failed to read CSV", df.Err)
	}

	// Column-major copy of the frame: raw text plus missing mask.
	cells := make([][]string, len(header))
	missing := make([][]bool, len(header))
	for i, name := range header {
		col := df.Col(name)
		cells[i] = col.Records()
		missing[i] = col.IsNaN()
	}

	coerce := make(map[string]bool, len(sch.Coerce))
	for _, c := range sch.Coerce {
		coerce[c] = true
	}

	nrows := df.Nrow()
	rows := make([]engine.Record, 0, nrows)
	for row := 0; row < nrows; row++ {
		rec := engine.Record{
			Dimensions: make(map[string]string, len(header)+1),
			Measures:   make(map[string]float64, len(coerce)+1),
		}

		for c, name := range header {
			if missing[c][row] {
				continue
			}
			val := cells[c][row]
			rec.Dimensions[name] = val
			if coerce[name] {
				if f, ok := engine.ParseNumber(val); ok {
					rec.Measures[name] = f
				}
			}
		}

		deriveIndicator(&rec, sch)
		rows = append(rows, rec)
	}

	return engine.NewTable(columns, rows), nil
}

// deriveIndicator maps the churn label to 1/0. Any other label, including a
// missing one, leaves the indicator missing.
func deriveIndicator(rec *engine.Record, sch schema.Config) {
	delete(rec.Dimensions, sch.IndicatorColumn)
	delete(rec.Measures, sch.IndicatorColumn)

	switch label, ok := rec.Dimensions[sch.LabelColumn]; {
	case ok && label == sch.PositiveLabel:
		rec.Measures[sch.IndicatorColumn] = 1
		rec.Dimensions[sch.IndicatorColumn] = "1"
	case ok && label == sch.NegativeLabel:
		rec.Measures[sch.IndicatorColumn] = 0
		rec.Dimensions[sch.IndicatorColumn] = "0"
	}
}

// dedupeHeader keeps the first occurrence of a repeated column name and
// renames later ones to name.1, name.2, ... A blank name becomes "Unnamed: i".
func dedupeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	next := make(map[string]int)
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			next[h]++
			name = fmt.Sprintf("%s.%d", h, next[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
