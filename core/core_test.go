package core

import (
	"testing"

	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateSample(t *testing.T) {
	result, err := Evaluate(loadSample(t), schema.DefaultRubric())
	require.NoError(t, err)

	scores := result.CompositeScores()
	assert.InDelta(t, 82.0, scores[schema.AcademicCategory], 1e-6)
	assert.InDelta(t, 33.7667, scores[schema.CareerCategory], 1e-4)
	assert.InDelta(t, 0.0, scores[schema.CommunityCategory], 1e-9)

	assert.InDelta(t, 44.6183, result.Overall.Score, 1e-4)
	assert.Equal(t, "D", result.Overall.Grade)
	assert.Equal(t, 20, result.Overall.Percentile)
	assert.Equal(t, "D 수준의 학업 우수 학생, 공동체역량 영역 집중 보완 필요", result.Summary)

	require.Len(t, result.Plan, 2)
	assert.Equal(t, schema.CommunityCategory, result.Plan[0].Category)
	assert.Equal(t, 1, result.Plan[0].Priority)
	assert.Equal(t, schema.CareerCategory, result.Plan[1].Category)
	assert.Equal(t, 2, result.Plan[1].Priority)

	assert.Equal(t, "김학생", result.Report.Student.Name)
	assert.Equal(t, schema.AcademicCategory, result.Report.Strengths.TopCategory)
	assert.Equal(t, schema.CommunityCategory, result.Report.Weaknesses.BottomCategory)
	assert.InDelta(t, 7.0, result.Profile.MajorRelevance.Score, 1e-9)
}

func TestEvaluateIsDeterministic(t *testing.T) {
	rec := loadSample(t)
	rubric := schema.DefaultRubric()

	first, err := Evaluate(rec, rubric)
	require.NoError(t, err)
	second, err := Evaluate(rec, rubric)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, loadSample(t), rec, "record must not be modified")
	assert.Equal(t, schema.DefaultRubric(), rubric, "rubric must not be modified")
}

func TestEvaluateUnknownMajor(t *testing.T) {
	rec := loadSample(t)
	rec.TargetMajor = "천문학"

	rubric := schema.DefaultRubric()
	got, err := Evaluate(rec, rubric)
	require.NoError(t, err)
	assert.Equal(t, rubric.SuggestedActivities["일반"], got.Report.MajorFit.NextSteps)

	rubric.FallbackMajor = ""
	_, err = Evaluate(rec, rubric)
	assert.ErrorIs(t, err, schema.ErrUnknownMajor)
}

func TestEvaluateFallbackMajor(t *testing.T) {
	rubric, err := schema.NewRubricConfig(schema.WithFallbackMajor("의학"))
	require.NoError(t, err)

	rec := loadSample(t)
	rec.TargetMajor = "천문학"
	got, err := Evaluate(rec, rubric)
	require.NoError(t, err)

	want, err := Evaluate(loadSample(t), schema.DefaultRubric())
	require.NoError(t, err)

	assert.InDelta(t, want.Overall.Score, got.Overall.Score, 1e-9)
	assert.Equal(t, "천문학", got.Report.Student.TargetMajor)
	assert.Equal(t, rubric.SuggestedActivities["의학"], got.Report.MajorFit.NextSteps)
	require.NotEmpty(t, got.Plan)
	assert.Contains(t, got.Plan[len(got.Plan)-1].Actions, "천문학 관련 동아리 활동 지속")
}

func TestEvaluateNilRubric(t *testing.T) {
	_, err := Evaluate(loadSample(t), nil)
	assert.ErrorIs(t, err, schema.ErrInvalidRubricValue)
}

func TestEvaluateEmptyRecord(t *testing.T) {
	result, err := Evaluate(schema.StudentRecord{TargetMajor: "문학"}, schema.DefaultRubric())
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Overall.Score)
	assert.Equal(t, "D", result.Overall.Grade)
	assert.Equal(t, 20, result.Overall.Percentile)
	assert.Equal(t, "익명", result.Report.Student.Name)

	require.Len(t, result.Plan, 3)
	for i, cat := range schema.AllCategories {
		assert.Equal(t, cat, result.Plan[i].Category)
		assert.Equal(t, i+1, result.Plan[i].Priority)
	}
}

func TestEvaluateCustomWeights(t *testing.T) {
	rubric, err := schema.NewRubricConfig(schema.WithCategoryWeights(map[schema.Category]float64{
		schema.AcademicCategory:  1,
		schema.CareerCategory:    0,
		schema.CommunityCategory: 0,
	}))
	require.NoError(t, err)

	result, err := Evaluate(loadSample(t), rubric)
	require.NoError(t, err)
	assert.InDelta(t, 82.0, result.Overall.Score, 1e-6)
	assert.Equal(t, "B+", result.Overall.Grade)
	assert.Equal(t, 80, result.Overall.Percentile)
}

func TestCompareWithReferences(t *testing.T) {
	result, err := CompareWithReferences(loadSample(t), schema.DefaultRubric(), loadReferences(t))
	require.NoError(t, err)

	require.Len(t, result.Comparisons, 2)
	assert.Equal(t, "snu-med", result.Comparisons[0].ProfileID)
	assert.InDelta(t, 40.0, result.Comparisons[0].Similarity, 1e-9)
	assert.InDelta(t, 26.1667, result.Comparisons[0].Overall, 1e-4)
	assert.Equal(t, "not ready", result.Comparisons[0].Label)
	assert.InDelta(t, 64.0, result.Comparisons[1].Overall, 1e-9)
	assert.Equal(t, "stretch", result.Comparisons[1].Label)
	assert.Equal(t, "snu-med", result.MostSimilar)
	assert.Equal(t, "kaist-eng", result.MostReady)
}

func TestCompareWithReferencesErrors(t *testing.T) {
	rec := loadSample(t)

	_, err := CompareWithReferences(rec, schema.DefaultRubric(), nil)
	assert.ErrorIs(t, err, schema.ErrNoReferences)

	_, err = CompareWithReferences(rec, schema.DefaultRubric(), &schema.ReferenceProfileSet{})
	assert.ErrorIs(t, err, schema.ErrNoReferences)

	noFallback := schema.DefaultRubric()
	noFallback.FallbackMajor = ""
	rec.TargetMajor = "천문학"
	_, err = CompareWithReferences(rec, noFallback, loadReferences(t))
	assert.ErrorIs(t, err, schema.ErrUnknownMajor)
}

func BenchmarkEvaluate(b *testing.B) {
	rec := loadSample(b)
	rubric := schema.DefaultRubric()
	for b.Loop() {
		_, _ = Evaluate(rec, rubric)
	}
}
