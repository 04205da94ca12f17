package algo

import (
	"testing"

	"github.com/huangsam/recordlens/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func req(desc string, metric schema.MetricKey, minimum float64) schema.Requirement {
	return schema.Requirement{Description: desc, Metric: metric, Min: minimum}
}

func sampleReferences(t testing.TB) *schema.ReferenceProfileSet {
	t.Helper()
	profiles := []schema.ReferenceProfile{
		{
			ID:       "snu-med",
			College:  "서울대학교",
			Major:    "의예과",
			Keywords: []string{"생명과학", "화학", "의료봉사", "생명윤리"},
			Categories: map[schema.Category]schema.CategoryRequirements{
				schema.AcademicCategory: {
					Keywords:       []string{"생명과학", "화학"},
					Minimum:        req("핵심 교과 1.5등급 이내", schema.MetricGradeScore, 97.5),
					Differentiator: req("전공 교과 최상위 성취", schema.MetricMajorSubjectScore, 100),
				},
				schema.CareerCategory: {
					Keywords:       []string{"생명과학", "의료봉사", "병원체험"},
					Minimum:        req("전공 관련 근거 3건 이상", schema.MetricMajorEvidenceCount, 3),
					Differentiator: req("진로 활동 2년 이상", schema.MetricCareerActivityYears, 2),
				},
				schema.CommunityCategory: {
					Keywords:       []string{"봉사", "배려"},
					Minimum:        req("봉사 활동 1년 이상", schema.MetricServiceYears, 1),
					Differentiator: req("리더십 경험", schema.MetricLeadershipScore, 6),
				},
			},
		},
		{
			ID:       "kaist-eng",
			College:  "KAIST",
			Major:    "공학",
			Keywords: []string{"수학", "물리", "프로그래밍"},
			Categories: map[schema.Category]schema.CategoryRequirements{
				schema.AcademicCategory: {
					Keywords:       []string{"수학"},
					Minimum:        req("기본 성적", schema.MetricGradeScore, 0),
					Differentiator: req("활동 다수", schema.MetricActivityScore, 100),
				},
				schema.CareerCategory: {
					Keywords:       []string{"프로그래밍"},
					Minimum:        req("기본 성적", schema.MetricGradeScore, 0),
					Differentiator: req("활동 다수", schema.MetricActivityScore, 100),
				},
				schema.CommunityCategory: {
					Keywords:       []string{"협력"},
					Minimum:        req("기본 성적", schema.MetricGradeScore, 0),
					Differentiator: req("활동 다수", schema.MetricActivityScore, 100),
				},
			},
		},
	}
	set, err := schema.NewReferenceProfileSet(profiles, nil)
	require.NoError(t, err)
	return set
}

func runBenchmark(t testing.TB, refs *schema.ReferenceProfileSet) schema.BenchmarkResult {
	t.Helper()
	rubric := schema.DefaultRubric()
	keywords, err := rubric.KeywordsFor("의학")
	require.NoError(t, err)
	return Benchmark(sampleRecord(), rubric, keywords, refs)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"a"}, nil, 0},
		{"identical", []string{"a", "b"}, []string{"b", "a"}, 100},
		{"half overlap", []string{"a", "b"}, []string{"a", "b", "c", "d"}, 50},
		{"duplicates ignored", []string{"a", "a", "b"}, []string{"b"}, 50},
		{"disjoint", []string{"a"}, []string{"b"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Jaccard(tt.a, tt.b), 1e-9)
			assert.Equal(t, Jaccard(tt.a, tt.b), Jaccard(tt.b, tt.a), "similarity must be symmetric")
		})
	}
}

func TestCategoryReadinessOf(t *testing.T) {
	metrics := map[schema.MetricKey]float64{schema.MetricGradeScore: 90, schema.MetricAwardScore: 20}
	corpus := []string{"수학 탐구", "물리 실험"}
	rules := schema.CategoryRequirements{
		Keywords:       []string{"수학", "화학", "물리", "수학"},
		Minimum:        req("성적", schema.MetricGradeScore, 85),
		Differentiator: req("수상", schema.MetricAwardScore, 15),
	}

	r := CategoryReadinessOf(schema.AcademicCategory, rules, metrics, corpus)
	assert.True(t, r.MinimumMet)
	assert.True(t, r.DifferentiatorMet)
	assert.InDelta(t, 20.0/3, r.KeywordDensity, 1e-9)
	assert.InDelta(t, 96.6667, r.Score, 1e-4)

	metrics[schema.MetricGradeScore] = 80
	r = CategoryReadinessOf(schema.AcademicCategory, rules, metrics, corpus)
	assert.False(t, r.MinimumMet)
	assert.False(t, r.DifferentiatorMet, "differentiator needs the minimum")
	assert.InDelta(t, 6.6667, r.Score, 1e-4)

	metrics[schema.MetricGradeScore] = 90
	metrics[schema.MetricAwardScore] = 10
	r = CategoryReadinessOf(schema.AcademicCategory, rules, metrics, corpus)
	assert.True(t, r.MinimumMet)
	assert.False(t, r.DifferentiatorMet)
	assert.InDelta(t, 66.6667, r.Score, 1e-4)
}

func TestBenchmarkSample(t *testing.T) {
	res := runBenchmark(t, sampleReferences(t))

	assert.Equal(t, "의학", res.TargetMajor)
	assert.Equal(t, []string{"생명과학", "화학", "수학"}, res.RecordKeywords)
	require.Len(t, res.Comparisons, 2)

	med := res.Comparisons[0]
	assert.Equal(t, "snu-med", med.ProfileID)
	assert.InDelta(t, 40.0, med.Similarity, 1e-9)
	assert.Equal(t, []string{"생명과학", "화학"}, med.MatchedKeywords)
	assert.Equal(t, []string{"의료봉사", "생명윤리"}, med.MissingKeywords)
	assert.False(t, med.Categories[0].MinimumMet)
	assert.False(t, med.Categories[0].DifferentiatorMet)
	assert.InDelta(t, 10.0, med.Categories[0].Score, 1e-9)
	assert.InDelta(t, 63.3333, med.Categories[1].Score, 1e-4)
	assert.Equal(t, 0.0, med.Categories[2].Score)
	assert.InDelta(t, 26.1667, med.Overall, 1e-4)
	assert.Equal(t, "not ready", med.Label)
	assert.Equal(t, []string{
		"학업역량: 핵심 교과 1.5등급 이내",
		"진로역량: 진로 활동 2년 이상",
		"공동체역량: 봉사 활동 1년 이상",
		"공동체역량: 리더십 경험",
		"'의료봉사' 관련 경험 부족",
		"'생명윤리' 관련 경험 부족",
	}, med.Gaps)

	eng := res.Comparisons[1]
	assert.InDelta(t, 20.0, eng.Similarity, 1e-9)
	assert.InDelta(t, 64.0, eng.Overall, 1e-9)
	assert.Equal(t, "stretch", eng.Label)

	assert.Equal(t, "snu-med", res.MostSimilar)
	assert.Equal(t, "kaist-eng", res.MostReady)
}

func TestBenchmarkTieBreak(t *testing.T) {
	refs := sampleReferences(t)
	twin := refs.Profiles[0]
	twin.ID = "snu-med-twin"
	set, err := schema.NewReferenceProfileSet([]schema.ReferenceProfile{refs.Profiles[0], twin}, nil)
	require.NoError(t, err)

	res := runBenchmark(t, set)
	assert.Equal(t, res.Comparisons[0].Similarity, res.Comparisons[1].Similarity)
	assert.Equal(t, "snu-med", res.MostSimilar)
	assert.Equal(t, "snu-med", res.MostReady)
}

func TestBenchmarkDeterministic(t *testing.T) {
	refs := sampleReferences(t)
	assert.Equal(t, runBenchmark(t, refs), runBenchmark(t, refs))
}

func BenchmarkReferenceComparison(b *testing.B) {
	refs := sampleReferences(b)
	rubric := schema.DefaultRubric()
	rec := sampleRecord()
	keywords, _ := rubric.KeywordsFor(rec.TargetMajor)

	for b.Loop() {
		Benchmark(rec, rubric, keywords, refs)
	}
}
