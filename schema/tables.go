package schema

import "fmt"

// GradeStep maps every score at or above Min to Label.
type GradeStep struct {
	Min   float64 `json:"min" mapstructure:"min"`
	Label string  `json:"label" mapstructure:"label"`
}

// GradeTable is an ordered list of descending score breakpoints with a floor label.
type GradeTable struct {
	Steps []GradeStep `json:"steps" mapstructure:"steps"`
	Floor string      `json:"floor" mapstructure:"floor"`
}

// Lookup returns the label of the first step whose Min is at or below score.
func (t GradeTable) Lookup(score float64) string {
	for _, s := range t.Steps {
		if score >= s.Min {
			return s.Label
		}
	}
	return t.Floor
}

// Validate checks that thresholds strictly decrease and every label is set.
func (t GradeTable) Validate() error {
	if t.Floor == "" {
		return fmt.Errorf("%w: floor label is empty", ErrInvalidRubricValue)
	}
	for i, s := range t.Steps {
		if s.Label == "" {
			return fmt.Errorf("%w: step %d has an empty label", ErrInvalidRubricValue, i)
		}
		if i > 0 && s.Min >= t.Steps[i-1].Min {
			return fmt.Errorf("%w: step %d min %.2f is not below %.2f", ErrNonMonotonicTable, i, s.Min, t.Steps[i-1].Min)
		}
	}
	return nil
}

// Labels returns every label from best to worst, floor included.
func (t GradeTable) Labels() []string {
	out := make([]string, 0, len(t.Steps)+1)
	for _, s := range t.Steps {
		out = append(out, s.Label)
	}
	return append(out, t.Floor)
}

// PercentileStep maps every score at or above Min to Percentile.
type PercentileStep struct {
	Min        float64 `json:"min" mapstructure:"min"`
	Percentile int     `json:"percentile" mapstructure:"percentile"`
}

// PercentileTable is an ordered list of descending breakpoints with a floor percentile.
type PercentileTable struct {
	Steps []PercentileStep `json:"steps" mapstructure:"steps"`
	Floor int              `json:"floor" mapstructure:"floor"`
}

// Lookup returns the percentile of the first step whose Min is at or below score.
func (t PercentileTable) Lookup(score float64) int {
	for _, s := range t.Steps {
		if score >= s.Min {
			return s.Percentile
		}
	}
	return t.Floor
}

// Validate checks that thresholds and percentiles both strictly decrease,
// which keeps Lookup non-decreasing in score.
func (t PercentileTable) Validate() error {
	for i, s := range t.Steps {
		if s.Percentile < 0 || s.Percentile > 100 {
			return fmt.Errorf("%w: percentile %d out of range", ErrInvalidRubricValue, s.Percentile)
		}
		if i == 0 {
			continue
		}
		prev := t.Steps[i-1]
		if s.Min >= prev.Min || s.Percentile >= prev.Percentile {
			return fmt.Errorf("%w: step %d (%.2f -> %d) does not descend from (%.2f -> %d)",
				ErrNonMonotonicTable, i, s.Min, s.Percentile, prev.Min, prev.Percentile)
		}
	}
	if n := len(t.Steps); n > 0 && t.Floor >= t.Steps[n-1].Percentile {
		return fmt.Errorf("%w: floor %d is not below %d", ErrNonMonotonicTable, t.Floor, t.Steps[n-1].Percentile)
	}
	return nil
}

// TierBound labels every count strictly greater than Above.
type TierBound struct {
	Above int  `json:"above" mapstructure:"above"`
	Label Tier `json:"label" mapstructure:"label"`
}

// TierTable buckets an evidence count into a coarse label.
type TierTable struct {
	Bounds  []TierBound `json:"bounds" mapstructure:"bounds"`
	Default Tier        `json:"default" mapstructure:"default"`
}

// Tier returns the label of the first bound the count exceeds.
func (t TierTable) Tier(count int) Tier {
	for _, b := range t.Bounds {
		if count > b.Above {
			return b.Label
		}
	}
	return t.Default
}

// Validate checks that bounds strictly decrease.
func (t TierTable) Validate() error {
	if t.Default == "" {
		return fmt.Errorf("%w: tier default is empty", ErrInvalidRubricValue)
	}
	for i := 1; i < len(t.Bounds); i++ {
		if t.Bounds[i].Above >= t.Bounds[i-1].Above {
			return fmt.Errorf("%w: tier bound %d is not below %d", ErrNonMonotonicTable, t.Bounds[i].Above, t.Bounds[i-1].Above)
		}
	}
	return nil
}

// DefaultGradeTable is the letter grade ladder.
func DefaultGradeTable() GradeTable {
	return GradeTable{
		Steps: []GradeStep{
			{Min: 90, Label: "A+"},
			{Min: 85, Label: "A"},
			{Min: 80, Label: "B+"},
			{Min: 75, Label: "B"},
			{Min: 70, Label: "C+"},
			{Min: 65, Label: "C"},
		},
		Floor: "D",
	}
}

// DefaultPercentileTable is the percentile ladder.
func DefaultPercentileTable() PercentileTable {
	return PercentileTable{
		Steps: []PercentileStep{
			{Min: 95, Percentile: 99},
			{Min: 90, Percentile: 95},
			{Min: 85, Percentile: 90},
			{Min: 80, Percentile: 80},
			{Min: 75, Percentile: 70},
			{Min: 70, Percentile: 60},
			{Min: 65, Percentile: 50},
			{Min: 60, Percentile: 40},
			{Min: 55, Percentile: 30},
		},
		Floor: 20,
	}
}

// DefaultReadinessTable labels overall readiness against a reference profile.
func DefaultReadinessTable() GradeTable {
	return GradeTable{
		Steps: []GradeStep{
			{Min: 90, Label: "top tier"},
			{Min: 80, Label: "competitive"},
			{Min: 70, Label: "borderline"},
			{Min: 60, Label: "stretch"},
		},
		Floor: "not ready",
	}
}

// DefaultEvidenceTiers buckets keyword evidence counts.
func DefaultEvidenceTiers() TierTable {
	return TierTable{
		Bounds:  []TierBound{{Above: 5, Label: TierHigh}, {Above: 2, Label: TierMedium}},
		Default: TierLow,
	}
}

// DefaultLeadershipTiers buckets leadership points.
func DefaultLeadershipTiers() TierTable {
	return TierTable{
		Bounds:  []TierBound{{Above: 10, Label: TierOutstanding}, {Above: 5, Label: TierStrong}},
		Default: TierAverage,
	}
}

// DefaultDepthTiers buckets the number of long activity descriptions.
func DefaultDepthTiers() TierTable {
	return TierTable{
		Bounds:  []TierBound{{Above: 5, Label: TierDeep}, {Above: 2, Label: TierModerate}},
		Default: TierShallow,
	}
}
