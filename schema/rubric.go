package schema

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// WeightTolerance is the allowed distance of a weight sum from 1.0.
const WeightTolerance = 0.001

// SignalRule drives a keyword-evidence sub-signal.
type SignalRule struct {
	Keywords []string     `json:"keywords"`
	Sources  []TextSource `json:"sources"`
	PerMatch float64      `json:"per_match"`
}

// TraitRule names a personality trait and the keywords that evidence it.
type TraitRule struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

// RubricConfig is the full set of tunable scoring parameters.
// Build it with NewRubricConfig or DefaultRubric and treat it as read-only afterwards.
type RubricConfig struct {
	MajorKeywords map[string][]string `json:"major_keywords"`
	FallbackMajor string              `json:"fallback_major,omitempty"`
	CoreSubjects  []string            `json:"core_subjects"`

	CategoryWeights  map[Category]float64                `json:"category_weights"`
	CriterionWeights map[Criterion]float64               `json:"criterion_weights"`
	SignalWeights    map[Criterion]map[SignalKey]float64 `json:"signal_weights"`
	TextRules        map[SignalKey]SignalRule            `json:"text_rules"`

	MajorDetailPoints   float64 `json:"major_detail_points"`
	MajorActivityPoints float64 `json:"major_activity_points"`
	MajorKeywordScale   float64 `json:"major_keyword_scale"`
	LongTextRunes       int     `json:"long_text_runes"`

	LeadershipKeywords []string    `json:"leadership_keywords"`
	LeadershipPoints   float64     `json:"leadership_points"`
	PersonalityTraits  []TraitRule `json:"personality_traits"`

	GradeTable      GradeTable      `json:"grade_table"`
	PercentileTable PercentileTable `json:"percentile_table"`
	EvidenceTiers   TierTable       `json:"evidence_tiers"`
	LeadershipTiers TierTable       `json:"leadership_tiers"`
	DepthTiers      TierTable       `json:"depth_tiers"`

	PlanThreshold     float64 `json:"plan_threshold"`
	StrengthThreshold float64 `json:"strength_threshold"`
	WeaknessThreshold float64 `json:"weakness_threshold"`

	SuggestedActivities map[string][]string    `json:"suggested_activities"`
	Questions           map[Criterion][]string `json:"questions"`
	LeadershipQuestions []string               `json:"leadership_questions"`
}

// RubricOption overrides part of the default rubric.
type RubricOption func(*RubricConfig)

// WithCategoryWeights overrides the top-level category weights.
func WithCategoryWeights(w map[Category]float64) RubricOption {
	return func(r *RubricConfig) { maps.Copy(r.CategoryWeights, w) }
}

// WithCriterionWeights overrides intra-category criterion weights.
func WithCriterionWeights(w map[Criterion]float64) RubricOption {
	return func(r *RubricConfig) { maps.Copy(r.CriterionWeights, w) }
}

// WithSignalWeights replaces the sub-signal weights of one criterion.
func WithSignalWeights(c Criterion, w map[SignalKey]float64) RubricOption {
	return func(r *RubricConfig) { r.SignalWeights[c] = maps.Clone(w) }
}

// WithMajorKeywords adds or replaces the keyword set of a major.
func WithMajorKeywords(major string, keywords []string) RubricOption {
	return func(r *RubricConfig) { r.MajorKeywords[major] = slices.Clone(keywords) }
}

// WithFallbackMajor names the major whose keywords apply to unknown majors.
func WithFallbackMajor(major string) RubricOption {
	return func(r *RubricConfig) { r.FallbackMajor = major }
}

// WithGradeTable replaces the letter grade ladder.
func WithGradeTable(t GradeTable) RubricOption {
	return func(r *RubricConfig) { r.GradeTable = t }
}

// WithPercentileTable replaces the percentile ladder.
func WithPercentileTable(t PercentileTable) RubricOption {
	return func(r *RubricConfig) { r.PercentileTable = t }
}

// WithPlanThreshold sets the category score below which a plan item is produced.
func WithPlanThreshold(v float64) RubricOption {
	return func(r *RubricConfig) { r.PlanThreshold = v }
}

// WithTextRule replaces the rule of one keyword-evidence sub-signal.
func WithTextRule(key SignalKey, rule SignalRule) RubricOption {
	return func(r *RubricConfig) { r.TextRules[key] = rule }
}

// NewRubricConfig applies options over the default rubric and validates the result.
func NewRubricConfig(opts ...RubricOption) (*RubricConfig, error) {
	r := defaultRubric()
	for _, opt := range opts {
		opt(r)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// DefaultRubric returns the standard rubric.
func DefaultRubric() *RubricConfig {
	return defaultRubric()
}

// KeywordsFor returns the keyword set of a major, falling back when configured.
func (r *RubricConfig) KeywordsFor(major string) ([]string, error) {
	if kw, ok := r.MajorKeywords[major]; ok {
		return kw, nil
	}
	if r.FallbackMajor != "" {
		return r.MajorKeywords[r.FallbackMajor], nil
	}
	return nil, fmt.Errorf("%w: %q has no keyword set and no fallback is configured", ErrUnknownMajor, major)
}

// Majors returns the configured major names in sorted order.
func (r *RubricConfig) Majors() []string {
	return slices.Sorted(maps.Keys(r.MajorKeywords))
}

// Validate checks weights, tables and rules.
func (r *RubricConfig) Validate() error {
	if len(r.MajorKeywords) == 0 {
		return fmt.Errorf("%w: at least one major keyword set is required", ErrInvalidRubricValue)
	}
	for major, kw := range r.MajorKeywords {
		if len(kw) == 0 {
			return fmt.Errorf("%w: major %q has an empty keyword set", ErrInvalidRubricValue, major)
		}
	}
	if r.FallbackMajor == "" {
		return fmt.Errorf("%w: a fallback major is required for records with an unlisted target major", ErrUnknownMajor)
	}
	if _, ok := r.MajorKeywords[r.FallbackMajor]; !ok {
		return fmt.Errorf("%w: fallback %q is not a configured major", ErrUnknownMajor, r.FallbackMajor)
	}

	catSum := 0.0
	for _, c := range AllCategories {
		w, ok := r.CategoryWeights[c]
		if !ok || w < 0 {
			return fmt.Errorf("%w: category %s needs a non-negative weight", ErrInvalidWeights, c)
		}
		catSum += w

		critSum := 0.0
		for _, crit := range CategoryCriteria[c] {
			cw, ok := r.CriterionWeights[crit]
			if !ok || cw < 0 {
				return fmt.Errorf("%w: criterion %s needs a non-negative weight", ErrInvalidWeights, crit)
			}
			critSum += cw
			if err := r.validateSignalWeights(crit); err != nil {
				return err
			}
		}
		if !sumsToOne(critSum) {
			return fmt.Errorf("%w: criterion weights for category %s must sum to 1.0, got %.3f", ErrInvalidWeights, c, critSum)
		}
	}
	if !sumsToOne(catSum) {
		return fmt.Errorf("%w: category weights must sum to 1.0, got %.3f", ErrInvalidWeights, catSum)
	}

	for _, key := range TextSignals {
		if _, ok := r.TextRules[key]; !ok {
			return fmt.Errorf("%w: %s has no text rule", ErrInvalidSignalRule, key)
		}
	}
	for key, rule := range r.TextRules {
		if rule.PerMatch <= 0 || len(rule.Keywords) == 0 || len(rule.Sources) == 0 {
			return fmt.Errorf("%w: %s needs keywords, sources and a positive per-match weight", ErrInvalidSignalRule, key)
		}
		for _, src := range rule.Sources {
			if _, ok := ValidTextSources[src]; !ok {
				return fmt.Errorf("%w: %s has unknown source %q", ErrInvalidSignalRule, key, src)
			}
		}
	}

	if err := r.GradeTable.Validate(); err != nil {
		return fmt.Errorf("grade table: %w", err)
	}
	if err := r.PercentileTable.Validate(); err != nil {
		return fmt.Errorf("percentile table: %w", err)
	}
	for name, t := range map[string]TierTable{"evidence": r.EvidenceTiers, "leadership": r.LeadershipTiers, "depth": r.DepthTiers} {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("%s tiers: %w", name, err)
		}
	}

	for name, v := range map[string]float64{"plan": r.PlanThreshold, "strength": r.StrengthThreshold, "weakness": r.WeaknessThreshold} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s threshold must be between 0 and 100 (received %.2f)", ErrInvalidRubricValue, name, v)
		}
	}
	if r.WeaknessThreshold > r.StrengthThreshold {
		return fmt.Errorf("%w: weakness threshold %.2f is above strength threshold %.2f", ErrInvalidRubricValue, r.WeaknessThreshold, r.StrengthThreshold)
	}
	return nil
}

func (r *RubricConfig) validateSignalWeights(crit Criterion) error {
	weights := r.SignalWeights[crit]
	sum := 0.0
	for _, key := range CriterionSignals[crit] {
		w, ok := weights[key]
		if !ok || w < 0 {
			return fmt.Errorf("%w: signal %s of %s needs a non-negative weight", ErrInvalidWeights, key, crit)
		}
		sum += w
	}
	if len(weights) != len(CriterionSignals[crit]) {
		return fmt.Errorf("%w: criterion %s has unknown signal weights", ErrInvalidWeights, crit)
	}
	if !sumsToOne(sum) {
		return fmt.Errorf("%w: signal weights for %s must sum to 1.0, got %.3f", ErrInvalidWeights, crit, sum)
	}
	return nil
}

func sumsToOne(sum float64) bool {
	return math.Abs(sum-1.0) <= WeightTolerance
}

func equalThirds(c Criterion) map[SignalKey]float64 {
	out := make(map[SignalKey]float64, 3)
	for _, k := range CriterionSignals[c] {
		out[k] = 1.0 / 3.0
	}
	return out
}

func defaultRubric() *RubricConfig {
	narrative := []TextSource{TeacherCommentSource, SubjectDetailSource}
	everywhere := []TextSource{TeacherCommentSource, SubjectDetailSource, ActivitySource}
	social := []TextSource{TeacherCommentSource, ActivitySource, ActivityRoleSource}

	signalWeights := make(map[Criterion]map[SignalKey]float64, len(CriterionSignals))
	for c := range CriterionSignals {
		signalWeights[c] = equalThirds(c)
	}

	return &RubricConfig{
		MajorKeywords: map[string][]string{
			"의학":   {"생명과학", "화학", "물리", "해부학", "의료봉사", "생명윤리", "병원체험"},
			"공학":   {"수학", "물리", "화학", "프로그래밍", "로봇", "설계", "제작", "공학"},
			"경영":   {"경제", "경영", "리더십", "기업분석", "마케팅", "회계", "창업"},
			"문학":   {"국어", "문학", "독서", "글쓰기", "토론", "언어", "문화"},
			"사회과학": {"사회", "역사", "정치", "사회문제", "봉사", "시민의식"},
			"일반":   {"탐구", "독서", "발표", "토론", "보고서", "프로젝트"},
		},
		FallbackMajor: "일반",
		CoreSubjects:  []string{"국어", "수학", "영어", "과학", "사회"},
		CategoryWeights: map[Category]float64{
			AcademicCategory:  0.4,
			CareerCategory:    0.35,
			CommunityCategory: 0.25,
		},
		CriterionWeights: map[Criterion]float64{
			AchievementCriterion: 0.6,
			AttitudeCriterion:    0.4,
			RelevanceCriterion:   0.6,
			ExplorationCriterion: 0.4,
			CooperationCriterion: 0.5,
			SharingCriterion:     0.5,
		},
		SignalWeights: signalWeights,
		TextRules: map[SignalKey]SignalRule{
			SignalCuriosity:      {Keywords: []string{"호기심", "탐구", "흥미", "열정", "열의", "궁금", "심화"}, Sources: narrative, PerMatch: 20},
			SignalParticipation:  {Keywords: []string{"적극", "참여", "발표", "질문", "토의"}, Sources: narrative, PerMatch: 25},
			SignalPersistence:    {Keywords: []string{"성실", "꾸준", "끈기", "인내", "극복", "지속", "끝까지", "완주"}, Sources: everywhere, PerMatch: 20},
			SignalCareerPlanning: {Keywords: []string{"진로", "계획", "목표", "희망", "장래", "꿈"}, Sources: everywhere, PerMatch: 25},
			SignalTeamwork:       {Keywords: []string{"협력", "협동", "팀워크", "함께", "공동"}, Sources: social, PerMatch: 25},
			SignalCommunication:  {Keywords: []string{"소통", "토론", "발표", "경청", "대화", "설득"}, Sources: everywhere, PerMatch: 25},
			SignalConflict:       {Keywords: []string{"조정", "중재", "갈등", "조율", "화합", "수렴"}, Sources: social, PerMatch: 30},
			SignalCaring:         {Keywords: []string{"배려", "나눔", "공감", "도움", "친절", "존중"}, Sources: []TextSource{TeacherCommentSource, ActivitySource}, PerMatch: 25},
			SignalContribution:   {Keywords: []string{"기여", "공동체", "학급", "헌신", "봉사", "솔선"}, Sources: social, PerMatch: 20},
		},
		MajorDetailPoints:   3,
		MajorActivityPoints: 2,
		MajorKeywordScale:   5,
		LongTextRunes:       100,
		LeadershipKeywords:  []string{"회장", "부회장", "팀장", "리더", "주도", "기획", "조직"},
		LeadershipPoints:    2,
		PersonalityTraits: []TraitRule{
			{Name: "responsibility", Keywords: []string{"책임", "성실", "꾸준", "완주"}},
			{Name: "cooperation", Keywords: []string{"협력", "팀워크", "소통", "배려"}},
			{Name: "creativity", Keywords: []string{"창의", "독창", "새로운", "아이디어"}},
			{Name: "persistence", Keywords: []string{"끈기", "인내", "극복", "도전"}},
		},
		GradeTable:        DefaultGradeTable(),
		PercentileTable:   DefaultPercentileTable(),
		EvidenceTiers:     DefaultEvidenceTiers(),
		LeadershipTiers:   DefaultLeadershipTiers(),
		DepthTiers:        DefaultDepthTiers(),
		PlanThreshold:     70,
		StrengthThreshold: 80,
		WeaknessThreshold: 60,
		SuggestedActivities: map[string][]string{
			"의학":   {"의료봉사 활동 지속", "생명윤리 주제 토론 참여", "병원체험 프로그램 참여"},
			"공학":   {"프로그래밍 또는 로봇 프로젝트 수행", "공학 설계 대회 참가", "제작 과정 포트폴리오 정리"},
			"경영":   {"기업분석 보고서 작성", "창업 동아리 활동", "경제 도서 독서 토론"},
			"문학":   {"글쓰기 대회 참가", "문학 작품 독서 토론", "문화 비평문 작성"},
			"사회과학": {"사회문제 탐구 프로젝트", "시민의식 관련 봉사 활동", "역사 및 정치 도서 독서 토론"},
			"일반":   {"관심 분야 탐구 보고서 작성", "교과 연계 독서 활동", "진로 탐색 프로그램 참여"},
		},
		Questions: map[Criterion][]string{
			AchievementCriterion: {"교과 성적이 우수한가?", "전공 관련 교과목에서 좋은 성취를 보이는가?", "학업 성취의 향상도는 어떠한가?"},
			AttitudeCriterion:    {"학습에 대한 열의와 지적 호기심이 있는가?", "수업 시간에 적극적으로 참여하는가?", "어려운 과제도 끝까지 해결하려고 노력하는가?"},
			RelevanceCriterion:   {"전공 분야에 대한 관심과 이해도가 깊은가?", "전공과 관련된 활동을 지속적으로 해왔는가?", "전공 분야의 사회적 역할을 이해하고 있는가?"},
			ExplorationCriterion: {"진로 탐색을 위한 구체적 노력을 했는가?", "다양한 경험을 통해 진로를 확정해 나가는가?", "미래 계획이 구체적이고 실현 가능한가?"},
			CooperationCriterion: {"타인과 협력하여 과제를 수행할 수 있는가?", "갈등 상황에서 조정 역할을 할 수 있는가?", "공동체 구성원들과 원활히 소통하는가?", "다양한 배경의 사람들과 함께 활동할 수 있는가?"},
			SharingCriterion:     {"어려운 이웃을 위해 나눔을 실천하는가?", "공동체 발전을 위해 기여하려고 노력하는가?", "타인의 어려움에 공감하고 도움을 주는가?", "자신의 능력과 재능을 공동체를 위해 활용하는가?"},
		},
		LeadershipQuestions: []string{"공동체 안에서 리더십을 발휘하는가?", "구성원들의 의견을 수렴하고 조율할 수 있는가?", "어려운 상황에서 솔선수범하는 모습을 보이는가?", "팀의 목표 달성을 위해 헌신하는가?"},
	}
}
