// Package algo holds the pure scoring functions behind an evaluation.
package algo

import (
	"strings"
	"unicode/utf8"

	"github.com/huangsam/recordlens/schema"
)

// Evidence is the outcome of a keyword scan.
type Evidence struct {
	Score float64
	Count int
}

// CountEvidence counts every occurrence of every keyword across texts and
// scores perMatchWeight for each one. Empty keywords are ignored.
func CountEvidence(texts []string, keywords []string, perMatchWeight float64) Evidence {
	count := 0
	for _, text := range texts {
		if text == "" {
			continue
		}
		for _, kw := range keywords {
			if kw == "" {
				continue
			}
			count += strings.Count(text, kw)
		}
	}
	return Evidence{Score: float64(count) * perMatchWeight, Count: count}
}

// MatchedKeywords returns the keywords present in at least one text, in keyword order.
func MatchedKeywords(texts []string, keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		for _, text := range texts {
			if strings.Contains(text, kw) {
				out = append(out, kw)
				break
			}
		}
	}
	return out
}

// MissingKeywords returns the keywords absent from every text, in keyword order.
func MissingKeywords(texts []string, keywords []string) []string {
	matched := make(map[string]struct{})
	for _, kw := range MatchedKeywords(texts, keywords) {
		matched[kw] = struct{}{}
	}
	var out []string
	for _, kw := range keywords {
		if _, ok := matched[kw]; !ok && kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// EvidenceSignal applies a signal rule to a record and caps the result at 100.
func EvidenceSignal(rec schema.StudentRecord, rule schema.SignalRule) float64 {
	ev := CountEvidence(Texts(rec, rule.Sources...), rule.Keywords, rule.PerMatch)
	return capScore(ev.Score)
}

// Texts collects the free text of the requested sources, in source order.
func Texts(rec schema.StudentRecord, sources ...schema.TextSource) []string {
	var out []string
	for _, src := range sources {
		switch src {
		case schema.TeacherCommentSource:
			out = append(out, rec.TeacherComments...)
		case schema.SubjectDetailSource:
			for _, d := range rec.SubjectDetails {
				out = append(out, d.Content)
			}
		case schema.ActivitySource:
			for _, a := range rec.Activities {
				out = append(out, a.Description)
			}
		case schema.ActivityRoleSource:
			for _, a := range rec.Activities {
				out = append(out, a.Role)
			}
		}
	}
	return out
}

// Corpus collects every piece of text a record carries, names and titles included.
func Corpus(rec schema.StudentRecord) []string {
	out := Texts(rec, schema.TeacherCommentSource, schema.SubjectDetailSource, schema.ActivitySource, schema.ActivityRoleSource)
	for _, g := range rec.Grades {
		out = append(out, g.Subject)
	}
	for _, d := range rec.SubjectDetails {
		out = append(out, d.Subject)
	}
	for _, a := range rec.Activities {
		out = append(out, a.Name)
	}
	for _, a := range rec.Awards {
		out = append(out, a.Name)
	}
	for _, b := range rec.Reading {
		out = append(out, b.Title)
	}
	return out
}

// CountLongTexts counts texts longer than minRunes that mention any keyword.
// With no keywords every long text counts.
func CountLongTexts(texts []string, keywords []string, minRunes int) int {
	n := 0
	for _, t := range texts {
		if utf8.RuneCountInString(t) <= minRunes {
			continue
		}
		if len(keywords) == 0 || len(MatchedKeywords([]string{t}, keywords)) > 0 {
			n++
		}
	}
	return n
}

func capScore(v float64) float64 {
	return clamp(v, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
