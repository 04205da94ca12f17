package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAwardLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected AwardLevel
	}{
		{"전국대회", NationalAward},
		{"지역대회", RegionalAward},
		{"교내경시", SchoolAward},
		{"교내대회", SchoolAward},
		{"학술상", AcademicAward},
		{"봉사상", ServiceAward},
		{"기타", OtherAward},
		{" National ", NationalAward},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAwardLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ParseAwardLevel("올림픽")
	assert.ErrorContains(t, err, "unknown award level")
}

func TestParseActivityAndReading(t *testing.T) {
	for input, expected := range map[string]ActivityType{
		"동아리": ClubActivity, "동아리활동": ClubActivity, "자율활동": AutonomousActivity,
		"봉사": ServiceActivity, "봉사활동": ServiceActivity, "진로활동": CareerActivity,
	} {
		got, err := ParseActivityType(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}
	_, err := ParseActivityType("진로")
	assert.Error(t, err)

	for input, expected := range map[string]ReadingCategory{
		"전공관련": MajorReading, "전공": MajorReading, "학술": ScholarReading,
		"교양": GeneralReading, "일반": GeneralReading, "문학": LiteraryReading,
	} {
		got, err := ParseReadingCategory(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, got, input)
	}
	_, err = ParseReadingCategory("만화")
	assert.Error(t, err)
}

func TestEnumJSONDecoding(t *testing.T) {
	var award struct {
		Level AwardLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":"교내대회"}`), &award))
	assert.Equal(t, SchoolAward, award.Level)
	assert.Error(t, json.Unmarshal([]byte(`{"level":"교내"}`), &award))
}

func TestEnumWeights(t *testing.T) {
	assert.Equal(t, 10.0, NationalAward.Weight())
	assert.Equal(t, AwardLevelWeights[OtherAward], AwardLevel("unknown").Weight())
	assert.Equal(t, 4.0, CareerActivity.Weight())
	assert.Equal(t, DefaultActivityWeight, ActivityType("unknown").Weight())
	assert.True(t, MajorReading.IsScholarly())
	assert.True(t, ScholarReading.IsScholarly())
	assert.False(t, LiteraryReading.IsScholarly())
}

func TestGradeTable(t *testing.T) {
	table := DefaultGradeTable()
	tests := []struct {
		score    float64
		expected string
	}{
		{100, "A+"},
		{90, "A+"},
		{89.99, "A"},
		{65, "C"},
		{64.99, "D"},
		{44.6183, "D"},
		{0, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, table.Lookup(tt.score), "score %.4f", tt.score)
	}
	assert.Equal(t, []string{"A+", "A", "B+", "B", "C+", "C", "D"}, table.Labels())

	t.Run("validate", func(t *testing.T) {
		require.NoError(t, table.Validate())

		flat := GradeTable{Steps: []GradeStep{{Min: 80, Label: "A"}, {Min: 80, Label: "B"}}, Floor: "C"}
		assert.ErrorIs(t, flat.Validate(), ErrNonMonotonicTable)

		noFloor := GradeTable{Steps: []GradeStep{{Min: 80, Label: "A"}}}
		assert.ErrorIs(t, noFloor.Validate(), ErrInvalidRubricValue)

		noLabel := GradeTable{Steps: []GradeStep{{Min: 80}}, Floor: "C"}
		assert.ErrorIs(t, noLabel.Validate(), ErrInvalidRubricValue)
	})
}

func TestPercentileTable(t *testing.T) {
	table := DefaultPercentileTable()
	require.NoError(t, table.Validate())
	assert.Equal(t, 99, table.Lookup(95))
	assert.Equal(t, 95, table.Lookup(94.9))
	assert.Equal(t, 30, table.Lookup(55))
	assert.Equal(t, 20, table.Lookup(44.6183))

	tests := []struct {
		name  string
		table PercentileTable
		err   error
	}{
		{"out of range", PercentileTable{Steps: []PercentileStep{{Min: 90, Percentile: 101}}}, ErrInvalidRubricValue},
		{"percentile rises", PercentileTable{Steps: []PercentileStep{{Min: 90, Percentile: 50}, {Min: 80, Percentile: 60}}}, ErrNonMonotonicTable},
		{"floor too high", PercentileTable{Steps: []PercentileStep{{Min: 90, Percentile: 50}}, Floor: 50}, ErrNonMonotonicTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.table.Validate(), tt.err)
		})
	}
}

func TestTierTable(t *testing.T) {
	tiers := DefaultEvidenceTiers()
	assert.Equal(t, TierHigh, tiers.Tier(6))
	assert.Equal(t, TierMedium, tiers.Tier(5))
	assert.Equal(t, TierMedium, tiers.Tier(3))
	assert.Equal(t, TierLow, tiers.Tier(2))
	assert.Equal(t, TierOutstanding, DefaultLeadershipTiers().Tier(11))
	assert.Equal(t, TierShallow, DefaultDepthTiers().Tier(0))

	bad := TierTable{Bounds: []TierBound{{Above: 2, Label: TierMedium}, {Above: 5, Label: TierHigh}}, Default: TierLow}
	assert.ErrorIs(t, bad.Validate(), ErrNonMonotonicTable)
	assert.ErrorIs(t, TierTable{}.Validate(), ErrInvalidRubricValue)
}

func FuzzGradeTableLookup(f *testing.F) {
	f.Add(0.0)
	f.Add(64.99)
	f.Add(90.0)
	f.Add(150.0)
	table := DefaultGradeTable()
	labels := table.Labels()
	f.Fuzz(func(t *testing.T, score float64) {
		assert.Contains(t, labels, table.Lookup(score))
	})
}
