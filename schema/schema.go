// Package schema holds the record, rubric and result types shared across recordlens.
package schema

import (
	"fmt"
	"strings"
)

// AwardLevel is the normalized tier of an award.
type AwardLevel string

// ActivityType is the normalized kind of an extracurricular activity.
type ActivityType string

// ReadingCategory is the normalized category of a reading entry.
type ReadingCategory string

// Award levels.
const (
	NationalAward AwardLevel = "national" // 전국대회
	RegionalAward AwardLevel = "regional" // 지역대회
	SchoolAward   AwardLevel = "school"   // 교내경시
	AcademicAward AwardLevel = "academic" // 학술상
	ServiceAward  AwardLevel = "service"  // 봉사상
	OtherAward    AwardLevel = "other"    // 기타
)

// Activity types.
const (
	ClubActivity       ActivityType = "club"       // 동아리
	AutonomousActivity ActivityType = "autonomous" // 자율활동
	ServiceActivity    ActivityType = "service"    // 봉사활동
	CareerActivity     ActivityType = "career"     // 진로활동
)

// Reading categories.
const (
	MajorReading    ReadingCategory = "major"    // 전공관련
	ScholarReading  ReadingCategory = "academic" // 학술
	GeneralReading  ReadingCategory = "general"  // 교양
	LiteraryReading ReadingCategory = "literary" // 문학
)

// AwardLevelWeights maps each award level to its point value.
var AwardLevelWeights = map[AwardLevel]float64{
	NationalAward: 10,
	RegionalAward: 7,
	SchoolAward:   5,
	AcademicAward: 4,
	ServiceAward:  3,
	OtherAward:    2,
}

// ActivityTypeWeights maps each activity type to its weight.
var ActivityTypeWeights = map[ActivityType]float64{
	ClubActivity:       3,
	AutonomousActivity: 2,
	ServiceActivity:    2,
	CareerActivity:     4,
}

// DefaultActivityWeight applies to activity types missing from ActivityTypeWeights.
const DefaultActivityWeight = 1.0

var awardAliases = map[string]AwardLevel{
	"national": NationalAward, "전국대회": NationalAward,
	"regional": RegionalAward, "지역대회": RegionalAward,
	"school": SchoolAward, "교내경시": SchoolAward, "교내대회": SchoolAward,
	"academic": AcademicAward, "학술상": AcademicAward,
	"service": ServiceAward, "봉사상": ServiceAward,
	"other": OtherAward, "기타": OtherAward,
}

var activityAliases = map[string]ActivityType{
	"club": ClubActivity, "동아리": ClubActivity, "동아리활동": ClubActivity,
	"autonomous": AutonomousActivity, "자율활동": AutonomousActivity,
	"service": ServiceActivity, "봉사활동": ServiceActivity, "봉사": ServiceActivity,
	"career": CareerActivity, "진로활동": CareerActivity,
}

var readingAliases = map[string]ReadingCategory{
	"major": MajorReading, "전공관련": MajorReading, "전공": MajorReading,
	"academic": ScholarReading, "학술": ScholarReading,
	"general": GeneralReading, "교양": GeneralReading, "일반": GeneralReading,
	"literary": LiteraryReading, "문학": LiteraryReading,
}

// ParseAwardLevel normalizes an English tag or Korean label into an AwardLevel.
func ParseAwardLevel(s string) (AwardLevel, error) {
	if lvl, ok := awardAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl, nil
	}
	return "", fmt.Errorf("unknown award level %q", s)
}

// ParseActivityType normalizes an English tag or Korean label into an ActivityType.
func ParseActivityType(s string) (ActivityType, error) {
	if t, ok := activityAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown activity type %q", s)
}

// ParseReadingCategory normalizes an English tag or Korean label into a ReadingCategory.
func ParseReadingCategory(s string) (ReadingCategory, error) {
	if c, ok := readingAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown reading category %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *AwardLevel) UnmarshalText(b []byte) error {
	v, err := ParseAwardLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ActivityType) UnmarshalText(b []byte) error {
	v, err := ParseActivityType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ReadingCategory) UnmarshalText(b []byte) error {
	v, err := ParseReadingCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Weight returns the point value of the award level.
func (l AwardLevel) Weight() float64 {
	if w, ok := AwardLevelWeights[l]; ok {
		return w
	}
	return AwardLevelWeights[OtherAward]
}

// Weight returns the weight of the activity type.
func (t ActivityType) Weight() float64 {
	if w, ok := ActivityTypeWeights[t]; ok {
		return w
	}
	return DefaultActivityWeight
}

// IsScholarly reports whether the reading counts toward the major-related ratio.
func (c ReadingCategory) IsScholarly() bool {
	return c == MajorReading || c == ScholarReading
}

// StudentRecord is the academic record of one student.
type StudentRecord struct {
	Name            string          `json:"name,omitempty"`
	SchoolYear      string          `json:"school_year,omitempty"`
	TargetMajor     string          `json:"target_major" validate:"required"`
	Grades          []GradeEntry    `json:"grades" validate:"dive"`
	Awards          []Award         `json:"awards" validate:"dive"`
	Activities      []Activity      `json:"activities" validate:"dive"`
	Reading         []ReadingEntry  `json:"reading" validate:"dive"`
	SubjectDetails  []SubjectDetail `json:"subject_details" validate:"dive"`
	TeacherComments []string        `json:"teacher_comments"`
}

// GradeEntry is one subject grade on the 1 (best) to 9 (worst) scale.
type GradeEntry struct {
	Subject string `json:"subject" validate:"required"`
	Grade   int    `json:"grade" validate:"min=1,max=9"`
}

// Award is a single award.
type Award struct {
	Name  string     `json:"name"`
	Level AwardLevel `json:"level" validate:"required"`
	Year  int        `json:"year,omitempty" validate:"omitempty,min=1"`
}

// Activity is one extracurricular activity.
type Activity struct {
	Type        ActivityType `json:"type" validate:"required"`
	Name        string       `json:"name,omitempty"`
	Role        string       `json:"role,omitempty"`
	Description string       `json:"description"`
	Duration    *float64     `json:"duration,omitempty" validate:"omitempty,gte=0"` // years
	Year        int          `json:"year,omitempty" validate:"omitempty,min=1"`
}

// Continuity returns the activity duration in years, defaulting to 1 when absent.
func (a Activity) Continuity() float64 {
	if a.Duration == nil {
		return 1
	}
	return *a.Duration
}

// ReadingEntry is one book read.
type ReadingEntry struct {
	Title    string          `json:"title" validate:"required"`
	Author   string          `json:"author,omitempty"`
	Category ReadingCategory `json:"category" validate:"required"`
}

// SubjectDetail is the per-subject narrative written by a teacher.
type SubjectDetail struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}
