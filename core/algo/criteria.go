package algo

import (
	"slices"

	"github.com/huangsam/recordlens/schema"
)

// Per-unit multipliers that bring raw sub-signals onto the 0-100 scale.
const (
	relatedActivityPoints = 5.0
	longTextPoints        = 20.0
	explorationPoints     = 4.0
	volunteerPoints       = 10.0
)

// SignalContext carries what the criterion evaluators need besides the rubric.
type SignalContext struct {
	Record   schema.StudentRecord
	Rubric   *schema.RubricConfig
	Keywords []string // keyword set of the target major
	Profile  schema.Profile
}

// NewSignalContext resolves the major keywords and builds the qualitative profile.
func NewSignalContext(rec schema.StudentRecord, rubric *schema.RubricConfig) (SignalContext, error) {
	keywords, err := rubric.KeywordsFor(rec.TargetMajor)
	if err != nil {
		return SignalContext{}, err
	}
	return SignalContext{
		Record:   rec,
		Rubric:   rubric,
		Keywords: keywords,
		Profile:  BuildProfile(rec, rubric, keywords),
	}, nil
}

func (c SignalContext) text(key schema.SignalKey) float64 {
	rule, ok := c.Rubric.TextRules[key]
	if !ok {
		return 0
	}
	return EvidenceSignal(c.Record, rule)
}

// Signals computes every sub-signal of a criterion on the 0-100 scale.
// Quantitative grade signals are reported as computed and may leave that range
// for out-of-band grades.
func (c SignalContext) Signals(crit schema.Criterion) map[schema.SignalKey]float64 {
	rec := c.Record
	switch crit {
	case schema.AchievementCriterion:
		return map[schema.SignalKey]float64{
			schema.SignalOverallGrades: c.Profile.Quantitative.GradeScore,
			schema.SignalMajorSubjects: MajorSubjectScore(rec.Grades, c.Keywords),
			schema.SignalImprovement:   ImprovementTrend(rec.Grades),
		}
	case schema.AttitudeCriterion:
		return c.textSignals(crit)
	case schema.RelevanceCriterion:
		long := CountLongTexts(Texts(rec, schema.TeacherCommentSource, schema.SubjectDetailSource, schema.ActivitySource), c.Keywords, c.Rubric.LongTextRunes)
		return map[schema.SignalKey]float64{
			schema.SignalMajorKeywords: capScore(c.Profile.MajorRelevance.Score * c.Rubric.MajorKeywordScale),
			schema.SignalRelatedActs:   capScore(relatedActivityPoints * c.relatedActivityWeight()),
			schema.SignalUnderstanding: capScore(c.Profile.Quantitative.ReadingScore + longTextPoints*float64(long)),
		}
	case schema.ExplorationCriterion:
		return map[schema.SignalKey]float64{
			schema.SignalExploration:    capScore(explorationPoints * c.Profile.Quantitative.ActivityScore),
			schema.SignalCareerPlanning: c.text(schema.SignalCareerPlanning),
			schema.SignalExperience:     ExperienceQuality(c.Profile.Growth, len(rec.Activities)),
		}
	case schema.CooperationCriterion:
		return c.textSignals(crit)
	case schema.SharingCriterion:
		return map[schema.SignalKey]float64{
			schema.SignalVolunteering: capScore(volunteerPoints * c.volunteerWeight()),
			schema.SignalCaring:       c.text(schema.SignalCaring),
			schema.SignalContribution: c.text(schema.SignalContribution),
		}
	default:
		return map[schema.SignalKey]float64{}
	}
}

func (c SignalContext) textSignals(crit schema.Criterion) map[schema.SignalKey]float64 {
	out := make(map[schema.SignalKey]float64, len(schema.CriterionSignals[crit]))
	for _, key := range schema.CriterionSignals[crit] {
		out[key] = c.text(key)
	}
	return out
}

// relatedActivityWeight sums type weight times continuity over activities that mention the major.
func (c SignalContext) relatedActivityWeight() float64 {
	total := 0.0
	for _, a := range c.Record.Activities {
		if len(MatchedKeywords([]string{a.Name, a.Description}, c.Keywords)) > 0 {
			total += a.Type.Weight() * a.Continuity()
		}
	}
	return total
}

// volunteerWeight combines service activity weight and the number of service awards.
func (c SignalContext) volunteerWeight() float64 {
	total := 0.0
	for _, a := range c.Record.Activities {
		if a.Type == schema.ServiceActivity {
			total += a.Type.Weight() * a.Continuity()
		}
	}
	for _, a := range c.Record.Awards {
		if a.Level == schema.ServiceAward {
			total++
		}
	}
	return total
}

// EvaluateCriterion scores one criterion as the weighted mean of its sub-signals.
func EvaluateCriterion(c SignalContext, crit schema.Criterion) schema.CriterionResult {
	signals := c.Signals(crit)
	weights := c.Rubric.SignalWeights[crit]
	score := 0.0
	for _, key := range schema.CriterionSignals[crit] {
		score += signals[key] * weights[key]
	}
	return schema.CriterionResult{
		Criterion: crit,
		Label:     crit.Label(),
		Score:     score,
		Signals:   signals,
		Comment:   CriterionComment(crit, signals),
		Questions: slices.Clone(c.Rubric.Questions[crit]),
	}
}

// EvaluateCategories scores every category in enumeration order.
func EvaluateCategories(c SignalContext) []schema.CategoryResult {
	out := make([]schema.CategoryResult, 0, len(schema.AllCategories))
	for _, cat := range schema.AllCategories {
		criteria := make([]schema.CriterionResult, 0, len(schema.CategoryCriteria[cat]))
		for _, crit := range schema.CategoryCriteria[cat] {
			criteria = append(criteria, EvaluateCriterion(c, crit))
		}
		out = append(out, schema.NewCategoryResult(cat, criteria, c.Rubric.CriterionWeights))
	}
	return out
}
