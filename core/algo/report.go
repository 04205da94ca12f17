package algo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/huangsam/recordlens/schema"
)

// Student info defaults for blank record fields.
const (
	DefaultStudentName = "익명"
	DefaultSchoolYear  = "3학년"
	DefaultMajor       = "미정"
)

// Recommendation priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

type planTemplate struct {
	goal        string
	actions     []string // %s is replaced by the target major
	period      string
	measurement string
}

var planTemplates = map[schema.Category]planTemplate{
	schema.AcademicCategory: {
		goal:        "내신 성적 향상 및 학업 태도 개선",
		actions:     []string{"전공 관련 과목 성적 2등급 이내 유지", "세특에서 탐구 과정과 결과를 구체적으로 기록", "수업 시간 적극적 참여 및 질문하기"},
		period:      "1-2학기",
		measurement: "내신 성적 및 세특 내용 질적 평가",
	},
	schema.CareerCategory: {
		goal:        "전공 적합성 및 진로 탐색 활동 강화",
		actions:     []string{"%s 관련 동아리 활동 지속", "전공 관련 도서 월 2권 이상 독서", "관련 분야 전문가 인터뷰 또는 진로체험", "전공 관련 프로젝트 수행 및 포트폴리오 제작"},
		period:      "2-3학기",
		measurement: "관련 활동 횟수 및 깊이, 성과물 질적 평가",
	},
	schema.CommunityCategory: {
		goal:        "협업 능력 및 나눔 정신 함양",
		actions:     []string{"학급 임원 또는 동아리 리더 역할 수행", "팀 프로젝트에서 조정자 역할 담당", "정기적 봉사활동 참여 (월 1회 이상)", "교내외 나눔 활동 기획 및 실행"},
		period:      "1-2학기",
		measurement: "리더십 경험 횟수 및 봉사활동 시간",
	},
}

var utilization = map[schema.Category][]string{
	schema.AcademicCategory:  {"심화 탐구 보고서로 학업 역량을 구체화", "면접에서 탐구 과정 중심으로 설명"},
	schema.CareerCategory:    {"전공 연계 활동을 자기소개서 핵심 소재로 활용", "진로 탐색 과정의 일관성 강조"},
	schema.CommunityCategory: {"협업 및 리더십 경험을 면접 사례로 활용", "봉사 경험을 통한 성장 과정 서술"},
}

func actionsFor(cat schema.Category, major string) []string {
	tpl := planTemplates[cat]
	out := make([]string, len(tpl.actions))
	for i, a := range tpl.actions {
		if strings.Contains(a, "%s") {
			a = fmt.Sprintf(a, major)
		}
		out[i] = a
	}
	return out
}

// StudentInfoOf fills blank identity fields with their defaults.
func StudentInfoOf(rec schema.StudentRecord) schema.StudentInfo {
	info := schema.StudentInfo{Name: rec.Name, SchoolYear: rec.SchoolYear, TargetMajor: rec.TargetMajor}
	if info.Name == "" {
		info.Name = DefaultStudentName
	}
	if info.SchoolYear == "" {
		info.SchoolYear = DefaultSchoolYear
	}
	if info.TargetMajor == "" {
		info.TargetMajor = DefaultMajor
	}
	return info
}

// BuildPlan emits a plan item for every category below the plan threshold.
// Priority 1 goes to the lowest composite; ties keep enumeration order.
func BuildPlan(categories []schema.CategoryResult, rubric *schema.RubricConfig, major string) []schema.PlanItem {
	var below []schema.CategoryResult
	for _, c := range categories {
		if c.Composite < rubric.PlanThreshold {
			below = append(below, c)
		}
	}
	slices.SortStableFunc(below, func(a, b schema.CategoryResult) int {
		return cmp.Compare(a.Composite, b.Composite)
	})

	plan := make([]schema.PlanItem, 0, len(below))
	for i, c := range below {
		tpl := planTemplates[c.Category]
		plan = append(plan, schema.PlanItem{
			Category:    c.Category,
			Label:       c.Category.Label(),
			Priority:    i + 1,
			Score:       c.Composite,
			Goal:        tpl.goal,
			Actions:     actionsFor(c.Category, major),
			Period:      tpl.period,
			Measurement: tpl.measurement,
		})
	}
	return plan
}

func scoreLine(label string, score float64) string {
	return fmt.Sprintf("%s (%.1f점)", label, score)
}

func strengthSection(cat schema.CategoryResult, threshold float64) schema.StrengthSection {
	s := schema.StrengthSection{TopCategory: cat.Category, Utilization: slices.Clone(utilization[cat.Category])}
	for _, crit := range cat.Criteria {
		s.Items = append(s.Items, scoreLine(crit.Label, crit.Score))
		for _, key := range schema.CriterionSignals[crit.Criterion] {
			if v := crit.Signals[key]; v >= threshold {
				s.Evidence = append(s.Evidence, scoreLine(key.Label(), v))
			}
		}
	}
	return s
}

func weaknessSection(cat schema.CategoryResult, threshold float64, major string) schema.WeaknessSection {
	w := schema.WeaknessSection{BottomCategory: cat.Category, Strategies: actionsFor(cat.Category, major)}
	for _, crit := range cat.Criteria {
		if crit.Score < threshold {
			w.Items = append(w.Items, scoreLine(crit.Label, crit.Score))
		}
		for _, key := range schema.CriterionSignals[crit.Criterion] {
			if v := crit.Signals[key]; v < threshold {
				w.Evidence = append(w.Evidence, scoreLine(key.Label(), v))
			}
		}
	}
	return w
}

func majorFitSection(categories []schema.CategoryResult, profile schema.Profile, rubric *schema.RubricConfig, major string) schema.MajorFitSection {
	fit := schema.MajorFitSection{
		Evidence: slices.Clone(profile.MajorRelevance.Matched),
		Gaps:     slices.Clone(profile.MajorRelevance.Missing),
	}
	for _, c := range categories {
		if r, ok := c.Criterion(schema.RelevanceCriterion); ok {
			fit.Score = r.Score
		}
	}
	steps, ok := rubric.SuggestedActivities[major]
	if !ok {
		steps = rubric.SuggestedActivities[rubric.FallbackMajor]
	}
	fit.NextSteps = slices.Clone(steps)
	return fit
}

// Recommendations derives qualitative suggestions from the profile tiers.
func Recommendations(categories []schema.CategoryResult, profile schema.Profile, rubric *schema.RubricConfig) []schema.Recommendation {
	var out []schema.Recommendation
	for _, c := range categories {
		if c.Category == schema.AcademicCategory && c.Composite < rubric.PlanThreshold {
			out = append(out, schema.Recommendation{
				Category:   schema.AcademicCategory,
				Priority:   PriorityHigh,
				Suggestion: "내신 성적 향상과 전공 관련 심화 독서 필요",
				Details:    []string{"전공 관련 과목 집중 학습", "학술 도서 독서량 증가", "세특 내용 충실화"},
			})
		}
	}
	if profile.MajorRelevance.Consistency == schema.TierLow {
		out = append(out, schema.Recommendation{
			Category:   schema.CareerCategory,
			Priority:   PriorityHigh,
			Suggestion: "전공 적합성을 보여주는 활동 강화 필요",
			Details:    []string{"전공 관련 동아리 활동", "관련 분야 체험 활동", "진로 탐색 활동 확대"},
		})
	}
	if profile.Leadership.Level == schema.TierAverage {
		out = append(out, schema.Recommendation{
			Category:   schema.CommunityCategory,
			Priority:   PriorityMedium,
			Suggestion: "리더십 경험과 협력 활동 증대 필요",
			Details:    []string{"학급 임원 활동", "팀 프로젝트 주도", "봉사활동 확대"},
		})
	}
	return out
}

// BuildReport assembles the narrative sections from computed results.
func BuildReport(rec schema.StudentRecord, categories []schema.CategoryResult, profile schema.Profile, rubric *schema.RubricConfig) schema.Report {
	info := StudentInfoOf(rec)
	report := schema.Report{
		Student:         info,
		MajorFit:        majorFitSection(categories, profile, rubric, rec.TargetMajor),
		Recommendations: Recommendations(categories, profile, rubric),
	}
	if len(categories) == 0 {
		return report
	}
	top, bottom := TopCategory(categories), BottomCategory(categories)
	for _, c := range categories {
		if c.Category == top {
			report.Strengths = strengthSection(c, rubric.StrengthThreshold)
		}
		if c.Category == bottom {
			report.Weaknesses = weaknessSection(c, rubric.WeaknessThreshold, info.TargetMajor)
		}
	}
	return report
}

// Summary is the one-line verdict of an evaluation.
func Summary(overall schema.Overall, categories []schema.CategoryResult) string {
	if len(categories) == 0 {
		return ""
	}
	top, bottom := TopCategory(categories), BottomCategory(categories)
	return fmt.Sprintf("%s 수준의 %s 우수 학생, %s 영역 집중 보완 필요", overall.Grade, top.ShortLabel(), bottom.Label())
}
