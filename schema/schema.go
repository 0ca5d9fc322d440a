package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spektr-org/churn/engine"
)

// ============================================================================
// SCHEMA — Describes the churn dataset for the loader and insight generator
// ============================================================================
// Built in (Telco), loaded from JSON (-schema), or auto-discovered (-discover).
// ============================================================================

// Config describes the columns of a churn dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	LabelColumn     string `json:"labelColumn"`     // raw churn label, e.g. "Churn"
	PositiveLabel   string `json:"positiveLabel"`   // label mapped to 1
	NegativeLabel   string `json:"negativeLabel"`   // label mapped to 0
	IndicatorColumn string `json:"indicatorColumn"` // derived 1/0 column

	// Coerce lists text columns reinterpreted as numbers at load time.
	Coerce []string `json:"coerce,omitempty"`

	Categorical []string `json:"categorical"`
	Numeric     []string `json:"numeric"`

	// Auto-discovery metadata
	DiscoveredFrom string          `json:"discoveredFrom,omitempty"`
	SkippedColumns []SkippedColumn `json:"skippedColumns,omitempty"`
}

// SkippedColumn records why a column was excluded during auto-discovery.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Telco returns the schema of the IBM Telco customer churn dataset.
func Telco() Config {
	return Config{
		Name:            "Telco Customer Churn",
		Version:         "1.0",
		LabelColumn:     engine.DefaultLabelColumn,
		PositiveLabel:   engine.DefaultPositiveLabel,
		NegativeLabel:   engine.DefaultNegativeLabel,
		IndicatorColumn: engine.DefaultIndicatorColumn,
		Coerce:          []string{"TotalCharges"},
		Categorical: []string{
			"gender", "SeniorCitizen", "Partner", "Dependents", "PhoneService",
			"MultipleLines", "InternetService", "OnlineSecurity", "OnlineBackup",
			"DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies",
			"Contract", "PaperlessBilling", "PaymentMethod",
		},
		Numeric: []string{"tenure", "MonthlyCharges", "TotalCharges"},
	}
}

// Load reads a JSON schema file. Empty label fields fall back to Telco defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, engine.WrapError(engine.KindConfigError, "read schema file", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, engine.WrapError(engine.KindConfigError, "parse schema JSON", err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.LabelColumn == "" {
		c.LabelColumn = engine.DefaultLabelColumn
	}
	if c.PositiveLabel == "" {
		c.PositiveLabel = engine.DefaultPositiveLabel
	}
	if c.NegativeLabel == "" {
		c.NegativeLabel = engine.DefaultNegativeLabel
	}
	if c.IndicatorColumn == "" {
		c.IndicatorColumn = engine.DefaultIndicatorColumn
	}
}

// Validate checks the schema is internally consistent.
func (c Config) Validate() error {
	if c.PositiveLabel == c.NegativeLabel {
		return engine.NewError(engine.KindConfigError,
			fmt.Sprintf("positive and negative labels must differ, both are %q", c.PositiveLabel))
	}
	if c.IndicatorColumn == c.LabelColumn {
		return engine.NewError(engine.KindConfigError, "indicator column must differ from label column")
	}
	for _, col := range append(append([]string{}, c.Categorical...), c.Numeric...) {
		if strings.TrimSpace(col) == "" {
			return engine.NewError(engine.KindConfigError, "column names must not be blank")
		}
	}
	return nil
}

// Required returns the columns a source file must provide.
func (c Config) Required() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(cols ...string) {
		for _, col := range cols {
			if !seen[col] {
				seen[col] = true
				out = append(out, col)
			}
		}
	}
	add(c.Coerce...)
	add(c.LabelColumn)
	return out
}

// CheckHeader returns a schema error naming the first required column absent from header.
func (c Config) CheckHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	for _, col := range c.Required() {
		if !present[col] {
			return &engine.Error{
				Kind:    engine.KindSchemaError,
				Message: fmt.Sprintf("required column %q is missing", col),
				Column:  col,
			}
		}
	}
	return nil
}

// InsightConfig returns the column lists for engine.Generate.
func (c Config) InsightConfig() engine.InsightConfig {
	return engine.InsightConfig{
		Categorical: append([]string(nil), c.Categorical...),
		Numeric:     append([]string(nil), c.Numeric...),
	}
}

// EngineOptions returns the label and indicator options for the aggregators.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithLabelColumn(c.LabelColumn),
		engine.WithIndicatorColumn(c.IndicatorColumn),
		engine.WithLabels(c.PositiveLabel, c.NegativeLabel),
	}
}
