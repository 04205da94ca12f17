package algo

import (
	"slices"
	"strings"

	"github.com/huangsam/recordlens/schema"
)

// gradePoints converts a 1-9 grade into points (1 -> 100, 2 -> 95, ...).
// Out-of-band grades are not clamped beyond the zero floor.
func gradePoints(grade int) float64 {
	return max(0, 105-float64(grade)*5)
}

// GradeScore averages grade points over the core subjects. No match yields 0.
func GradeScore(grades []schema.GradeEntry, coreSubjects []string) float64 {
	return averagePoints(grades, func(g schema.GradeEntry) bool {
		return slices.Contains(coreSubjects, g.Subject)
	})
}

// MajorSubjectScore averages grade points over subjects related to the major keywords.
// A subject is related when it contains a keyword or a keyword contains it.
func MajorSubjectScore(grades []schema.GradeEntry, majorKeywords []string) float64 {
	return averagePoints(grades, func(g schema.GradeEntry) bool {
		return subjectMatches(g.Subject, majorKeywords)
	})
}

func subjectMatches(subject string, keywords []string) bool {
	if subject == "" {
		return false
	}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(subject, kw) || strings.Contains(kw, subject) {
			return true
		}
	}
	return false
}

func averagePoints(grades []schema.GradeEntry, keep func(schema.GradeEntry) bool) float64 {
	total, n := 0.0, 0
	for _, g := range grades {
		if keep(g) {
			total += gradePoints(g.Grade)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// ImprovementTrend scores how grades moved from the first half of the list to the second.
//
// With fewer than two grades it returns 0. Otherwise early and late are the means of
// the first and last floor(n/2) grades (the middle one is skipped for odd n), and the
// score is clamp(gradePoints(late) + 10*(early-late), 0, 100). A stable record keeps
// its level score, every grade step gained adds 10 and every step lost removes 10.
func ImprovementTrend(grades []schema.GradeEntry) float64 {
	n := len(grades)
	if n < 2 {
		return 0
	}
	half := n / 2
	early := meanGrade(grades[:half])
	late := meanGrade(grades[n-half:])
	level := 105 - late*5
	return clamp(level+10*(early-late), 0, 100)
}

func meanGrade(grades []schema.GradeEntry) float64 {
	sum := 0
	for _, g := range grades {
		sum += g.Grade
	}
	return float64(sum) / float64(len(grades))
}

// AwardScore sums the level weights of all awards.
func AwardScore(awards []schema.Award) float64 {
	total := 0.0
	for _, a := range awards {
		total += a.Level.Weight()
	}
	return total
}

// ActivityScore sums type weight times continuity over all activities.
func ActivityScore(activities []schema.Activity) float64 {
	total := 0.0
	for _, a := range activities {
		total += a.Type.Weight() * a.Continuity()
	}
	return total
}

// ReadingScore is half a point per book plus 50 times the scholarly ratio.
func ReadingScore(reading []schema.ReadingEntry) float64 {
	if len(reading) == 0 {
		return 0
	}
	scholarly := 0
	for _, b := range reading {
		if b.Category.IsScholarly() {
			scholarly++
		}
	}
	n := float64(len(reading))
	return n*0.5 + float64(scholarly)/n*50
}

// Quantitative computes all quantitative sub-signals of a record.
func Quantitative(rec schema.StudentRecord, coreSubjects []string) schema.QuantitativeSummary {
	return schema.QuantitativeSummary{
		GradeScore:    GradeScore(rec.Grades, coreSubjects),
		AwardScore:    AwardScore(rec.Awards),
		ActivityScore: ActivityScore(rec.Activities),
		ReadingScore:  ReadingScore(rec.Reading),
	}
}
