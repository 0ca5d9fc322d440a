package engine

// ============================================================================
// ENGINE OPTIONS — Functional options for the aggregators
// ============================================================================

// Option configures aggregator behavior via functional options pattern.
type Option func(*config)

type config struct {
	LabelColumn     string // raw churn label, grouping key of numeric insights
	IndicatorColumn string // derived 1/0 churn measure
	PositiveLabel   string
	NegativeLabel   string
	Filters         Filters
}

// WithLabelColumn sets the column holding the raw churn label.
func WithLabelColumn(column string) Option {
	return func(c *config) {
		c.LabelColumn = column
	}
}

// WithIndicatorColumn sets the measure holding the derived churn indicator.
func WithIndicatorColumn(column string) Option {
	return func(c *config) {
		c.IndicatorColumn = column
	}
}

// WithLabels sets the churned and retained label values.
func WithLabels(positive, negative string) Option {
	return func(c *config) {
		c.PositiveLabel = positive
		c.NegativeLabel = negative
	}
}

// WithFilters restricts Generate to rows matching filters.
func WithFilters(filters Filters) Option {
	return func(c *config) {
		c.Filters = filters
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		LabelColumn:     DefaultLabelColumn,
		IndicatorColumn: DefaultIndicatorColumn,
		PositiveLabel:   DefaultPositiveLabel,
		NegativeLabel:   DefaultNegativeLabel,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
