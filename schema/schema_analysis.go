package schema

// CriterionResult is the outcome of one sub-criterion.
type CriterionResult struct {
	Criterion Criterion             `json:"criterion"`           // Criterion tag
	Label     string                `json:"label"`               // Korean display name
	Score     float64               `json:"score"`               // Weighted mean of the sub-signals
	Signals   map[SignalKey]float64 `json:"signals"`             // Each sub-signal on a 0-100 scale
	Comment   string                `json:"comment"`             // Deterministic evaluation comment
	Questions []string              `json:"questions,omitempty"` // Standard questions this criterion answers
}

// CategoryResult is the outcome of one category. The composite is fixed at construction.
type CategoryResult struct {
	Category  Category          `json:"category"`
	Label     string            `json:"label"`
	Criteria  []CriterionResult `json:"criteria"`
	Composite float64           `json:"composite"`
}

// NewCategoryResult builds a category result and computes its composite score
// from the supplied criterion weights.
func NewCategoryResult(cat Category, criteria []CriterionResult, weights map[Criterion]float64) CategoryResult {
	composite := 0.0
	for _, c := range criteria {
		composite += c.Score * weights[c.Criterion]
	}
	return CategoryResult{
		Category:  cat,
		Label:     cat.Label(),
		Criteria:  criteria,
		Composite: composite,
	}
}

// Criterion returns the result of a single criterion.
func (c CategoryResult) Criterion(crit Criterion) (CriterionResult, bool) {
	for _, r := range c.Criteria {
		if r.Criterion == crit {
			return r, true
		}
	}
	return CriterionResult{}, false
}

// Overall is the final weighted score with its grade and percentile.
type Overall struct {
	Score      float64 `json:"score"`
	Grade      string  `json:"grade"`
	Percentile int     `json:"percentile"`
}

// QuantitativeSummary reports the raw quantitative sub-signals side by side.
type QuantitativeSummary struct {
	GradeScore    float64 `json:"grade_score"`
	AwardScore    float64 `json:"award_score"`
	ActivityScore float64 `json:"activity_score"`
	ReadingScore  float64 `json:"reading_score"`
}

// MajorRelevance summarizes major keyword evidence across narratives and activities.
type MajorRelevance struct {
	Score         float64  `json:"score"`
	EvidenceCount int      `json:"evidence_count"`
	Consistency   Tier     `json:"consistency"`
	Matched       []string `json:"matched"`
	Missing       []string `json:"missing"`
}

// Leadership summarizes leadership keywords in activity roles and descriptions.
type Leadership struct {
	Score     float64  `json:"score"`
	Level     Tier     `json:"level"`
	Questions []string `json:"questions,omitempty"`
}

// GrowthPattern summarizes how activities spread across years.
type GrowthPattern struct {
	Timeline         map[string]int `json:"timeline"` // Year bucket to activity count
	Consistency      Tier           `json:"consistency"`
	Progression      Tier           `json:"progression"`
	Depth            Tier           `json:"depth"`
	LongDescriptions int            `json:"long_descriptions"`
}

// Profile is the qualitative picture built alongside the criteria.
type Profile struct {
	Quantitative   QuantitativeSummary `json:"quantitative"`
	MajorRelevance MajorRelevance      `json:"major_relevance"`
	Leadership     Leadership          `json:"leadership"`
	Personality    map[string]int      `json:"personality"`
	Growth         GrowthPattern       `json:"growth"`
}

// StudentInfo identifies the student in a report.
type StudentInfo struct {
	Name        string `json:"name"`
	SchoolYear  string `json:"school_year"`
	TargetMajor string `json:"target_major"`
}

// StrengthSection explains the strongest category.
type StrengthSection struct {
	TopCategory Category `json:"top_category"`
	Items       []string `json:"items"`
	Evidence    []string `json:"evidence"`
	Utilization []string `json:"utilization"`
}

// WeaknessSection explains the weakest category.
type WeaknessSection struct {
	BottomCategory Category `json:"bottom_category"`
	Items          []string `json:"items"`
	Evidence       []string `json:"evidence"`
	Strategies     []string `json:"strategies"`
}

// MajorFitSection explains fit with the target major.
type MajorFitSection struct {
	Score     float64  `json:"score"`
	Evidence  []string `json:"evidence"`
	Gaps      []string `json:"gaps"`
	NextSteps []string `json:"next_steps"`
}

// Recommendation is a qualitative suggestion derived from the profile tiers.
type Recommendation struct {
	Category   Category `json:"category"`
	Priority   string   `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Details    []string `json:"details"`
}

// Report is the narrative part of an evaluation.
type Report struct {
	Student         StudentInfo      `json:"student"`
	Strengths       StrengthSection  `json:"strengths"`
	Weaknesses      WeaknessSection  `json:"weaknesses"`
	MajorFit        MajorFitSection  `json:"major_fit"`
	Recommendations []Recommendation `json:"recommendations"`
}

// PlanItem is one improvement plan entry for a category below the plan threshold.
type PlanItem struct {
	Category    Category `json:"category"`
	Label       string   `json:"label"`
	Priority    int      `json:"priority"`
	Score       float64  `json:"score"`
	Goal        string   `json:"goal"`
	Actions     []string `json:"actions"`
	Period      string   `json:"period"`
	Measurement string   `json:"measurement"`
}

// EvaluationResult is the complete evaluation of one record.
type EvaluationResult struct {
	Categories []CategoryResult `json:"categories"`
	Overall    Overall          `json:"overall"`
	Profile    Profile          `json:"profile"`
	Report     Report           `json:"report"`
	Plan       []PlanItem       `json:"plan"`
	Summary    string           `json:"summary"`
}

// Category returns the result of a single category.
func (r EvaluationResult) Category(cat Category) (CategoryResult, bool) {
	for _, c := range r.Categories {
		if c.Category == cat {
			return c, true
		}
	}
	return CategoryResult{}, false
}

// CompositeScores maps each category to its composite score.
func (r EvaluationResult) CompositeScores() map[Category]float64 {
	out := make(map[Category]float64, len(r.Categories))
	for _, c := range r.Categories {
		out[c.Category] = c.Composite
	}
	return out
}
