package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRubric(t *testing.T) {
	rubric := DefaultRubric()
	require.NoError(t, rubric.Validate())
	assert.Equal(t, []string{"경영", "공학", "문학", "사회과학", "의학", "일반"}, rubric.Majors())
	assert.Equal(t, "일반", rubric.FallbackMajor)
	assert.InDelta(t, 0.4, rubric.CategoryWeights[AcademicCategory], 1e-9)
	assert.Equal(t, 70.0, rubric.PlanThreshold)

	// Each call returns an independent copy.
	other := DefaultRubric()
	other.CategoryWeights[AcademicCategory] = 0
	assert.InDelta(t, 0.4, rubric.CategoryWeights[AcademicCategory], 1e-9)
}

func TestNewRubricConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []RubricOption
		err  error
	}{
		{
			name: "category weights over one",
			opts: []RubricOption{WithCategoryWeights(map[Category]float64{
				AcademicCategory: 0.5, CareerCategory: 0.5, CommunityCategory: 0.5,
			})},
			err: ErrInvalidWeights,
		},
		{
			name: "negative category weight",
			opts: []RubricOption{WithCategoryWeights(map[Category]float64{
				AcademicCategory: 1.2, CareerCategory: -0.2, CommunityCategory: 0,
			})},
			err: ErrInvalidWeights,
		},
		{
			name: "criterion weights off within category",
			opts: []RubricOption{WithCriterionWeights(map[Criterion]float64{AchievementCriterion: 0.9})},
			err:  ErrInvalidWeights,
		},
		{
			name: "non-monotonic grade table",
			opts: []RubricOption{WithGradeTable(GradeTable{
				Steps: []GradeStep{{Min: 70, Label: "A"}, {Min: 80, Label: "B"}},
				Floor: "C",
			})},
			err: ErrNonMonotonicTable,
		},
		{
			name: "unknown fallback",
			opts: []RubricOption{WithFallbackMajor("천문학")},
			err:  ErrUnknownMajor,
		},
		{
			name: "no fallback",
			opts: []RubricOption{WithFallbackMajor("")},
			err:  ErrUnknownMajor,
		},
		{
			name: "empty keyword set",
			opts: []RubricOption{WithMajorKeywords("천문학", nil)},
			err:  ErrInvalidRubricValue,
		},
		{
			name: "plan threshold out of range",
			opts: []RubricOption{WithPlanThreshold(150)},
			err:  ErrInvalidRubricValue,
		},
		{
			name: "empty text rule",
			opts: []RubricOption{WithTextRule(SignalCuriosity, SignalRule{})},
			err:  ErrInvalidSignalRule,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rubric, err := NewRubricConfig(tt.opts...)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, rubric)
		})
	}

	t.Run("valid overrides", func(t *testing.T) {
		rubric, err := NewRubricConfig(
			WithCategoryWeights(map[Category]float64{AcademicCategory: 0.5, CareerCategory: 0.3, CommunityCategory: 0.2}),
			WithMajorKeywords("천문학", []string{"천체", "물리", "관측"}),
			WithPlanThreshold(60),
		)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, rubric.CategoryWeights[AcademicCategory], 1e-9)
		assert.Contains(t, rubric.Majors(), "천문학")
		assert.Equal(t, 60.0, rubric.PlanThreshold)
	})
}

func TestKeywordsFor(t *testing.T) {
	rubric := DefaultRubric()
	kw, err := rubric.KeywordsFor("의학")
	require.NoError(t, err)
	assert.Contains(t, kw, "생명과학")

	kw, err = rubric.KeywordsFor("천문학")
	require.NoError(t, err)
	assert.Equal(t, rubric.MajorKeywords["일반"], kw)

	withFallback, err := NewRubricConfig(WithFallbackMajor("공학"))
	require.NoError(t, err)
	kw, err = withFallback.KeywordsFor("천문학")
	require.NoError(t, err)
	assert.Equal(t, withFallback.MajorKeywords["공학"], kw)
}

func TestValidateRubricFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *RubricConfig)
		err    error
	}{
		{"missing text rule", func(r *RubricConfig) { delete(r.TextRules, SignalCaring) }, ErrInvalidSignalRule},
		{"strength threshold above 100", func(r *RubricConfig) { r.StrengthThreshold = 120 }, ErrInvalidRubricValue},
		{"negative weakness threshold", func(r *RubricConfig) { r.WeaknessThreshold = -1 }, ErrInvalidRubricValue},
		{"weakness above strength", func(r *RubricConfig) { r.WeaknessThreshold, r.StrengthThreshold = 85, 75 }, ErrInvalidRubricValue},
		{"fallback cleared", func(r *RubricConfig) { r.FallbackMajor = "" }, ErrUnknownMajor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rubric := DefaultRubric()
			tt.mutate(rubric)
			assert.ErrorIs(t, rubric.Validate(), tt.err)
		})
	}

	for _, key := range TextSignals {
		assert.Contains(t, DefaultRubric().TextRules, key)
	}
}
