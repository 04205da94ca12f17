package algo

import (
	"fmt"

	"github.com/huangsam/recordlens/schema"
)

// Readiness points per category.
const (
	minimumPoints        = 60.0
	differentiatorPoints = 30.0
	densityPoints        = 10.0
)

// dedupe drops empty and repeated entries while keeping first-occurrence order.
func dedupe(lists ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, list := range lists {
		for _, s := range list {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// Vocabulary is the union of every profile keyword and the target major keywords.
func Vocabulary(refs *schema.ReferenceProfileSet, majorKeywords []string) []string {
	lists := make([][]string, 0, len(refs.Profiles)*(len(schema.AllCategories)+1)+1)
	for _, p := range refs.Profiles {
		lists = append(lists, p.Keywords)
		for _, c := range schema.AllCategories {
			lists = append(lists, p.Categories[c].Keywords)
		}
	}
	lists = append(lists, majorKeywords)
	return dedupe(lists...)
}

// Jaccard returns the overlap of two keyword sets scaled to 0-100.
// Two empty sets have similarity 0.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}
	inter := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union) * 100
}

// RequirementMet checks a requirement against measured record metrics.
func RequirementMet(req schema.Requirement, metrics map[schema.MetricKey]float64) bool {
	return metrics[req.Metric] >= req.Min
}

// KeywordDensity is the share of distinct keywords found in the corpus, scaled to 0-10.
func KeywordDensity(corpus, keywords []string) float64 {
	kws := dedupe(keywords)
	if len(kws) == 0 {
		return 0
	}
	return float64(len(MatchedKeywords(corpus, kws))) / float64(len(kws)) * densityPoints
}

// CategoryReadinessOf scores one category against a reference requirement set.
// The differentiator only counts once the minimum is met.
func CategoryReadinessOf(cat schema.Category, req schema.CategoryRequirements, metrics map[schema.MetricKey]float64, corpus []string) schema.CategoryReadiness {
	minimum := RequirementMet(req.Minimum, metrics)
	out := schema.CategoryReadiness{
		Category:          cat,
		MinimumMet:        minimum,
		DifferentiatorMet: minimum && RequirementMet(req.Differentiator, metrics),
		KeywordDensity:    KeywordDensity(corpus, req.Keywords),
	}
	score := out.KeywordDensity
	if out.MinimumMet {
		score += minimumPoints
	}
	if out.DifferentiatorMet {
		score += differentiatorPoints
	}
	out.Score = capScore(score)
	return out
}

// recordSnapshot is what every profile comparison reads from the record.
type recordSnapshot struct {
	corpus   []string
	keywords []string
	metrics  map[schema.MetricKey]float64
}

// compareProfile compares a record snapshot with one reference profile.
func compareProfile(p schema.ReferenceProfile, snap recordSnapshot, weights map[schema.Category]float64, table schema.GradeTable) schema.ReferenceComparison {
	cmp := schema.ReferenceComparison{
		ProfileID:  p.ID,
		College:    p.College,
		Major:      p.Major,
		Similarity: Jaccard(snap.keywords, dedupe(p.Keywords)),
	}

	have := make(map[string]struct{}, len(snap.keywords))
	for _, kw := range snap.keywords {
		have[kw] = struct{}{}
	}
	for _, kw := range dedupe(p.Keywords) {
		if _, ok := have[kw]; ok {
			cmp.MatchedKeywords = append(cmp.MatchedKeywords, kw)
		} else {
			cmp.MissingKeywords = append(cmp.MissingKeywords, kw)
		}
	}

	for _, cat := range schema.AllCategories {
		req := p.Categories[cat]
		r := CategoryReadinessOf(cat, req, snap.metrics, snap.corpus)
		cmp.Categories = append(cmp.Categories, r)
		cmp.Overall += r.Score * weights[cat]
		if !r.MinimumMet {
			cmp.Gaps = append(cmp.Gaps, fmt.Sprintf("%s: %s", cat.Label(), req.Minimum.Description))
		}
		if !RequirementMet(req.Differentiator, snap.metrics) {
			cmp.Gaps = append(cmp.Gaps, fmt.Sprintf("%s: %s", cat.Label(), req.Differentiator.Description))
		}
	}
	for _, kw := range cmp.MissingKeywords {
		cmp.Gaps = append(cmp.Gaps, fmt.Sprintf("'%s' 관련 경험 부족", kw))
	}
	cmp.Label = table.Lookup(cmp.Overall)
	return cmp
}

// Benchmark compares a record with every reference profile, in profile order.
// MostSimilar and MostReady pick the first profile on ties.
func Benchmark(rec schema.StudentRecord, rubric *schema.RubricConfig, keywords []string, refs *schema.ReferenceProfileSet) schema.BenchmarkResult {
	corpus := Corpus(rec)
	snap := recordSnapshot{
		corpus:   corpus,
		keywords: MatchedKeywords(corpus, Vocabulary(refs, keywords)),
		metrics:  MeasureRecord(rec, rubric, keywords),
	}

	result := schema.BenchmarkResult{
		TargetMajor:    rec.TargetMajor,
		RecordKeywords: snap.keywords,
		Comparisons:    make([]schema.ReferenceComparison, 0, len(refs.Profiles)),
	}
	var bestSim, bestReady float64
	for i, p := range refs.Profiles {
		cmp := compareProfile(p, snap, rubric.CategoryWeights, refs.ReadinessTable)
		result.Comparisons = append(result.Comparisons, cmp)
		if i == 0 || cmp.Similarity > bestSim {
			bestSim, result.MostSimilar = cmp.Similarity, cmp.ProfileID
		}
		if i == 0 || cmp.Overall > bestReady {
			bestReady, result.MostReady = cmp.Overall, cmp.ProfileID
		}
	}
	return result
}
