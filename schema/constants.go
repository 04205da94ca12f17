package schema

// Custom string types for type safety.
type (
	// Category is one of the three top-level evaluation categories.
	Category string

	// Criterion is one of the six sub-criteria, two per category.
	Criterion string

	// SignalKey names a single sub-signal inside a criterion.
	SignalKey string

	// MetricKey names a record measurement used by reference requirements.
	MetricKey string

	// TextSource names a free-text field of the record scanned for evidence.
	TextSource string

	// Tier is a coarse label produced from an evidence count.
	Tier string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for evaluation history.
	DatabaseBackend string
)

// Evaluation categories, in enumeration order.
const (
	AcademicCategory  Category = "academic"
	CareerCategory    Category = "career"
	CommunityCategory Category = "community"
)

// Sub-criteria keyed by category.
const (
	AchievementCriterion Criterion = "achievement" // 교과성취도
	AttitudeCriterion    Criterion = "attitude"    // 학업태도
	RelevanceCriterion   Criterion = "relevance"   // 전공적합성
	ExplorationCriterion Criterion = "exploration" // 진로탐색
	CooperationCriterion Criterion = "cooperation" // 협업능력
	SharingCriterion     Criterion = "sharing"     // 나눔배려
)

// Sub-signal keys.
const (
	SignalOverallGrades  SignalKey = "overall_grades"
	SignalMajorSubjects  SignalKey = "major_subjects"
	SignalImprovement    SignalKey = "improvement"
	SignalCuriosity      SignalKey = "curiosity"
	SignalParticipation  SignalKey = "participation"
	SignalPersistence    SignalKey = "persistence"
	SignalMajorKeywords  SignalKey = "major_keywords"
	SignalRelatedActs    SignalKey = "related_activities"
	SignalUnderstanding  SignalKey = "understanding_depth"
	SignalExploration    SignalKey = "exploration_effort"
	SignalCareerPlanning SignalKey = "career_planning"
	SignalExperience     SignalKey = "experience_quality"
	SignalTeamwork       SignalKey = "teamwork"
	SignalCommunication  SignalKey = "communication"
	SignalConflict       SignalKey = "conflict_resolution"
	SignalVolunteering   SignalKey = "volunteering"
	SignalCaring         SignalKey = "caring"
	SignalContribution   SignalKey = "contribution"
)

// Record measurements available to reference requirements.
const (
	MetricGradeScore          MetricKey = "grade_score"
	MetricMajorSubjectScore   MetricKey = "major_subject_score"
	MetricAwardScore          MetricKey = "award_score"
	MetricActivityScore       MetricKey = "activity_score"
	MetricReadingScore        MetricKey = "reading_score"
	MetricMajorEvidenceCount  MetricKey = "major_evidence_count"
	MetricLeadershipScore     MetricKey = "leadership_score"
	MetricServiceYears        MetricKey = "service_years"
	MetricCareerActivityYears MetricKey = "career_activity_years"
	MetricLongTextCount       MetricKey = "long_text_count"
)

// Free-text sources.
const (
	TeacherCommentSource TextSource = "teacher_comments"
	SubjectDetailSource  TextSource = "subject_details"
	ActivitySource       TextSource = "activity_descriptions"
	ActivityRoleSource   TextSource = "activity_roles"
)

// Common tier labels.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"

	TierOutstanding Tier = "outstanding"
	TierStrong      Tier = "strong"
	TierAverage     Tier = "average"

	TierDeep     Tier = "deep"
	TierModerate Tier = "moderate"
	TierShallow  Tier = "shallow"

	TierRising Tier = "rising"
	TierFlat   Tier = "flat"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllCategories lists categories in enumeration order. Tie-breaks follow this order.
var AllCategories = []Category{AcademicCategory, CareerCategory, CommunityCategory}

// CategoryCriteria lists the two criteria of each category, in evaluation order.
var CategoryCriteria = map[Category][]Criterion{
	AcademicCategory:  {AchievementCriterion, AttitudeCriterion},
	CareerCategory:    {RelevanceCriterion, ExplorationCriterion},
	CommunityCategory: {CooperationCriterion, SharingCriterion},
}

// CriterionSignals lists the sub-signals of each criterion, in tie-break order.
var CriterionSignals = map[Criterion][]SignalKey{
	AchievementCriterion: {SignalOverallGrades, SignalMajorSubjects, SignalImprovement},
	AttitudeCriterion:    {SignalCuriosity, SignalParticipation, SignalPersistence},
	RelevanceCriterion:   {SignalMajorKeywords, SignalRelatedActs, SignalUnderstanding},
	ExplorationCriterion: {SignalExploration, SignalCareerPlanning, SignalExperience},
	CooperationCriterion: {SignalTeamwork, SignalCommunication, SignalConflict},
	SharingCriterion:     {SignalVolunteering, SignalCaring, SignalContribution},
}

// TextSignals lists the sub-signals scored from keyword evidence. Each needs a text rule.
var TextSignals = []SignalKey{
	SignalCuriosity, SignalParticipation, SignalPersistence,
	SignalCareerPlanning,
	SignalTeamwork, SignalCommunication, SignalConflict,
	SignalCaring, SignalContribution,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidMetricKeys lists all metrics a reference requirement may name.
var ValidMetricKeys = map[MetricKey]struct{}{
	MetricGradeScore:          {},
	MetricMajorSubjectScore:   {},
	MetricAwardScore:          {},
	MetricActivityScore:       {},
	MetricReadingScore:        {},
	MetricMajorEvidenceCount:  {},
	MetricLeadershipScore:     {},
	MetricServiceYears:        {},
	MetricCareerActivityYears: {},
	MetricLongTextCount:       {},
}

// ValidTextSources lists all text sources a signal rule may scan.
var ValidTextSources = map[TextSource]struct{}{
	TeacherCommentSource: {},
	SubjectDetailSource:  {},
	ActivitySource:       {},
	ActivityRoleSource:   {},
}

// Label returns the Korean display name of the category.
func (c Category) Label() string {
	switch c {
	case AcademicCategory:
		return "학업역량"
	case CareerCategory:
		return "진로역량"
	case CommunityCategory:
		return "공동체역량"
	default:
		return string(c)
	}
}

// ShortLabel returns the category name without the 역량 suffix.
func (c Category) ShortLabel() string {
	switch c {
	case AcademicCategory:
		return "학업"
	case CareerCategory:
		return "진로"
	case CommunityCategory:
		return "공동체"
	default:
		return string(c)
	}
}

// Label returns the Korean display name of the criterion.
func (c Criterion) Label() string {
	switch c {
	case AchievementCriterion:
		return "교과성취도"
	case AttitudeCriterion:
		return "학업태도"
	case RelevanceCriterion:
		return "전공적합성"
	case ExplorationCriterion:
		return "진로탐색"
	case CooperationCriterion:
		return "협업능력"
	case SharingCriterion:
		return "나눔배려"
	default:
		return string(c)
	}
}

// Label returns the Korean display name of the sub-signal.
func (s SignalKey) Label() string {
	if l, ok := signalLabels[s]; ok {
		return l
	}
	return string(s)
}

var signalLabels = map[SignalKey]string{
	SignalOverallGrades:  "전체성적",
	SignalMajorSubjects:  "전공관련과목",
	SignalImprovement:    "성적향상도",
	SignalCuriosity:      "지적호기심",
	SignalParticipation:  "수업참여도",
	SignalPersistence:    "학습지속성",
	SignalMajorKeywords:  "전공키워드매칭",
	SignalRelatedActs:    "관련활동수행",
	SignalUnderstanding:  "이해깊이",
	SignalExploration:    "탐색노력",
	SignalCareerPlanning: "진로계획",
	SignalExperience:     "경험의질",
	SignalTeamwork:       "팀워크",
	SignalCommunication:  "의사소통",
	SignalConflict:       "갈등조정",
	SignalVolunteering:   "봉사활동",
	SignalCaring:         "배려",
	SignalContribution:   "공동체기여",
}
