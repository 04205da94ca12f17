package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(id, college, major string) ReferenceProfile {
	req := CategoryRequirements{
		Keywords:       []string{"탐구"},
		Minimum:        Requirement{Description: "내신 2.0 이내", Metric: MetricGradeScore, Min: 80},
		Differentiator: Requirement{Description: "장기 활동", Metric: MetricServiceYears, Min: 2},
	}
	return ReferenceProfile{
		ID:      id,
		College: college,
		Major:   major,
		Categories: map[Category]CategoryRequirements{
			AcademicCategory:  req,
			CareerCategory:    req,
			CommunityCategory: req,
		},
	}
}

func TestNewReferenceProfileSet(t *testing.T) {
	set, err := NewReferenceProfileSet([]ReferenceProfile{testProfile("snu-med", "서울대", "의예")}, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultReadinessTable(), set.ReadinessTable)

	missingCategory := testProfile("kaist-eng", "KAIST", "공학")
	delete(missingCategory.Categories, CommunityCategory)
	badMetric := testProfile("kaist-eng", "KAIST", "공학")
	req := badMetric.Categories[CareerCategory]
	req.Minimum.Metric = "gpa"
	badMetric.Categories[CareerCategory] = req

	tests := []struct {
		name     string
		profiles []ReferenceProfile
		table    *GradeTable
		err      error
	}{
		{"empty", nil, nil, ErrNoReferences},
		{"missing id", []ReferenceProfile{testProfile("", "서울대", "의예")}, nil, ErrInvalidReference},
		{"duplicate id", []ReferenceProfile{testProfile("a", "서울대", "의예"), testProfile("a", "KAIST", "공학")}, nil, ErrInvalidReference},
		{"missing category", []ReferenceProfile{missingCategory}, nil, ErrInvalidReference},
		{"unknown metric", []ReferenceProfile{badMetric}, nil, ErrInvalidReference},
		{"bad readiness table", []ReferenceProfile{testProfile("a", "서울대", "의예")}, &GradeTable{}, ErrInvalidRubricValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReferenceProfileSet(tt.profiles, tt.table)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReferenceProfileSetFilter(t *testing.T) {
	set, err := NewReferenceProfileSet([]ReferenceProfile{
		testProfile("snu-med", "서울대", "의예"),
		testProfile("kaist-eng", "KAIST", "공학"),
		testProfile("yonsei-biz", "연세대", "경영"),
	}, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		college  string
		major    string
		expected []string
	}{
		{"no filter", "", "", []string{"snu-med", "kaist-eng", "yonsei-biz"}},
		{"case-insensitive college", "kaist", "", []string{"kaist-eng"}},
		{"major substring", "", "의", []string{"snu-med"}},
		{"college and major", "연세", "경영", []string{"yonsei-biz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := set.Filter(tt.college, tt.major)
			require.NoError(t, err)
			ids := make([]string, 0, len(filtered.Profiles))
			for _, p := range filtered.Profiles {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	_, err = set.Filter("하버드", "")
	assert.ErrorIs(t, err, ErrNoReferences)
	assert.Len(t, set.Profiles, 3)
}
