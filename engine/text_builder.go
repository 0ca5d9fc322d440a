package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// TEXT BUILDER — Human-readable run summary
// ============================================================================
// Picks the highest-churn category and the numeric feature whose churned and
// retained averages differ the most, relative to the retained average.
// ============================================================================

// Summary highlights the strongest signals in a set of insights.
type Summary struct {
	TopCategory *CategoricalInsight `json:"topCategory,omitempty"`
	Gap         *AverageGap         `json:"gap,omitempty"`
}

// AverageGap compares one numeric feature between churned and retained customers.
type AverageGap struct {
	Feature       string  `json:"feature"`
	Churned       float64 `json:"churned"`
	Retained      float64 `json:"retained"`
	ChangePercent float64 `json:"changePercent"`
}

// BuildSummary derives a Summary. Rows with missing values are ignored.
func BuildSummary(ins *Insights, opts ...Option) Summary {
	cfg := applyOptions(opts)
	var s Summary
	if ins == nil {
		return s
	}

	for i := range ins.Categorical {
		r := ins.Categorical[i]
		if !r.ChurnRate.Valid || !r.Value.Valid {
			continue
		}
		if s.TopCategory == nil || r.ChurnRate.Float64 > s.TopCategory.ChurnRate.Float64 {
			s.TopCategory = &ins.Categorical[i]
		}
	}

	churned := make(map[string]float64)
	retained := make(map[string]float64)
	var order []string
	for _, r := range ins.Numeric {
		if !r.ChurnLabel.Valid || !r.Average.Valid {
			continue
		}
		switch r.ChurnLabel.String {
		case cfg.PositiveLabel:
			churned[r.Feature] = r.Average.Float64
		case cfg.NegativeLabel:
			if _, seen := retained[r.Feature]; !seen {
				order = append(order, r.Feature)
			}
			retained[r.Feature] = r.Average.Float64
		}
	}

	for _, feature := range order {
		yes, ok := churned[feature]
		no := retained[feature]
		if !ok || no == 0 {
			continue
		}
		pct := (yes - no) / math.Abs(no) * 100
		if s.Gap == nil || math.Abs(pct) > math.Abs(s.Gap.ChangePercent) {
			s.Gap = &AverageGap{
				Feature:       feature,
				Churned:       RoundTo4(yes),
				Retained:      RoundTo4(no),
				ChangePercent: math.Round(pct*10) / 10,
			}
		}
	}
	return s
}

// Lines renders the summary as log-ready sentences.
func (s Summary) Lines() []string {
	var lines []string
	if s.TopCategory != nil {
		lines = append(lines, fmt.Sprintf("Highest churn: %s=%s (%.1f%% of %d customers)",
			s.TopCategory.Feature, s.TopCategory.Value.String,
			s.TopCategory.ChurnRate.Float64*100, s.TopCategory.Count))
	}
	if s.Gap != nil {
		direction := "higher"
		if s.Gap.ChangePercent < 0 {
			direction = "lower"
		}
		lines = append(lines, fmt.Sprintf("Largest gap: %s averages %s for churned vs %s for retained (%.1f%% %s)",
			s.Gap.Feature, FormatFloat(s.Gap.Churned), FormatFloat(s.Gap.Retained),
			math.Abs(s.Gap.ChangePercent), direction))
	}
	if len(lines) == 0 {
		lines = append(lines, "No churn signal in this dataset.")
	}
	return lines
}
