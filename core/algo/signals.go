package algo

import (
	"slices"
	"strconv"

	"github.com/huangsam/recordlens/schema"
)

// otherYearBucket collects activities without a year.
const otherYearBucket = "other"

// MajorRelevanceOf scores major keyword evidence in subject details and activity descriptions.
func MajorRelevanceOf(rec schema.StudentRecord, rubric *schema.RubricConfig, keywords []string) schema.MajorRelevance {
	details := CountEvidence(Texts(rec, schema.SubjectDetailSource), keywords, rubric.MajorDetailPoints)
	acts := CountEvidence(Texts(rec, schema.ActivitySource), keywords, rubric.MajorActivityPoints)
	count := details.Count + acts.Count
	corpus := Corpus(rec)
	return schema.MajorRelevance{
		Score:         details.Score + acts.Score,
		EvidenceCount: count,
		Consistency:   rubric.EvidenceTiers.Tier(count),
		Matched:       MatchedKeywords(corpus, keywords),
		Missing:       MissingKeywords(corpus, keywords),
	}
}

// LeadershipOf scores leadership keywords in activity roles and descriptions.
func LeadershipOf(rec schema.StudentRecord, rubric *schema.RubricConfig) schema.Leadership {
	ev := CountEvidence(Texts(rec, schema.ActivityRoleSource, schema.ActivitySource), rubric.LeadershipKeywords, rubric.LeadershipPoints)
	return schema.Leadership{
		Score:     ev.Score,
		Level:     rubric.LeadershipTiers.Tier(int(ev.Score)),
		Questions: slices.Clone(rubric.LeadershipQuestions),
	}
}

// PersonalityOf counts trait keywords in teacher comments.
func PersonalityOf(rec schema.StudentRecord, traits []schema.TraitRule) map[string]int {
	out := make(map[string]int, len(traits))
	for _, t := range traits {
		out[t.Name] = CountEvidence(rec.TeacherComments, t.Keywords, 1).Count
	}
	return out
}

// GrowthOf buckets activities by year and labels how they spread.
func GrowthOf(rec schema.StudentRecord, rubric *schema.RubricConfig) schema.GrowthPattern {
	timeline := make(map[string]int)
	for _, a := range rec.Activities {
		bucket := otherYearBucket
		if a.Year > 0 {
			bucket = strconv.Itoa(a.Year)
		}
		timeline[bucket]++
	}

	consistency := schema.TierMedium
	if len(timeline) >= 2 {
		consistency = schema.TierHigh
	}

	long := CountLongTexts(Texts(rec, schema.ActivitySource), nil, rubric.LongTextRunes)
	return schema.GrowthPattern{
		Timeline:         timeline,
		Consistency:      consistency,
		Progression:      progression(rec.Activities),
		Depth:            rubric.DepthTiers.Tier(long),
		LongDescriptions: long,
	}
}

// progression is rising when some dated year has more activities than the dated year before it.
func progression(activities []schema.Activity) schema.Tier {
	counts := make(map[int]int)
	for _, a := range activities {
		if a.Year > 0 {
			counts[a.Year]++
		}
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	slices.Sort(years)
	for i := 1; i < len(years); i++ {
		if counts[years[i]] > counts[years[i-1]] {
			return schema.TierRising
		}
	}
	return schema.TierFlat
}

// ExperienceQuality turns a growth pattern into a 0-100 signal.
func ExperienceQuality(g schema.GrowthPattern, activityCount int) float64 {
	if activityCount == 0 {
		return 0
	}
	score := 0.0
	switch g.Consistency {
	case schema.TierHigh:
		score += 40
	case schema.TierMedium:
		score += 20
	}
	switch g.Progression {
	case schema.TierRising:
		score += 30
	case schema.TierFlat:
		score += 15
	}
	switch g.Depth {
	case schema.TierDeep:
		score += 30
	case schema.TierModerate:
		score += 20
	case schema.TierShallow:
		score += 10
	}
	return capScore(score)
}

// BuildProfile computes the qualitative profile of a record.
func BuildProfile(rec schema.StudentRecord, rubric *schema.RubricConfig, keywords []string) schema.Profile {
	return schema.Profile{
		Quantitative:   Quantitative(rec, rubric.CoreSubjects),
		MajorRelevance: MajorRelevanceOf(rec, rubric, keywords),
		Leadership:     LeadershipOf(rec, rubric),
		Personality:    PersonalityOf(rec, rubric.PersonalityTraits),
		Growth:         GrowthOf(rec, rubric),
	}
}

// yearsOf sums activity continuity over one activity type.
func yearsOf(activities []schema.Activity, typ schema.ActivityType) float64 {
	total := 0.0
	for _, a := range activities {
		if a.Type == typ {
			total += a.Continuity()
		}
	}
	return total
}

// MeasureRecord computes every metric a reference requirement may name.
func MeasureRecord(rec schema.StudentRecord, rubric *schema.RubricConfig, keywords []string) map[schema.MetricKey]float64 {
	narrative := Texts(rec, schema.TeacherCommentSource, schema.SubjectDetailSource, schema.ActivitySource)
	return map[schema.MetricKey]float64{
		schema.MetricGradeScore:          GradeScore(rec.Grades, rubric.CoreSubjects),
		schema.MetricMajorSubjectScore:   MajorSubjectScore(rec.Grades, keywords),
		schema.MetricAwardScore:          AwardScore(rec.Awards),
		schema.MetricActivityScore:       ActivityScore(rec.Activities),
		schema.MetricReadingScore:        ReadingScore(rec.Reading),
		schema.MetricMajorEvidenceCount:  float64(MajorRelevanceOf(rec, rubric, keywords).EvidenceCount),
		schema.MetricLeadershipScore:     LeadershipOf(rec, rubric).Score,
		schema.MetricServiceYears:        yearsOf(rec.Activities, schema.ServiceActivity),
		schema.MetricCareerActivityYears: yearsOf(rec.Activities, schema.CareerActivity),
		schema.MetricLongTextCount:       float64(CountLongTexts(narrative, keywords, rubric.LongTextRunes)),
	}
}
