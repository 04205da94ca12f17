package algo

import (
	"fmt"

	"github.com/huangsam/recordlens/schema"
)

// Signal levels that switch a comment from the mixed template to a uniform one.
const (
	excellentSignal  = 80.0
	foundationSignal = 40.0
)

type phrasePair struct {
	strong string
	weak   string
}

var signalPhrases = map[schema.SignalKey]phrasePair{
	schema.SignalOverallGrades:  {"전 교과에 걸쳐 안정적인 성취를 보입니다.", "전 교과 성적의 보완이 필요합니다."},
	schema.SignalMajorSubjects:  {"전공 관련 교과에서 높은 성취를 보입니다.", "전공 관련 교과의 성취를 높일 필요가 있습니다."},
	schema.SignalImprovement:    {"학기가 지날수록 성적이 꾸준히 향상되었습니다.", "성적 향상 추세를 만들어 갈 필요가 있습니다."},
	schema.SignalCuriosity:      {"지적 호기심과 탐구 의지가 뚜렷합니다.", "탐구 과정에서 호기심을 더 드러낼 필요가 있습니다."},
	schema.SignalParticipation:  {"수업에 적극적으로 참여하는 태도가 돋보입니다.", "수업 참여를 더 적극적으로 보여 줄 필요가 있습니다."},
	schema.SignalPersistence:    {"과제를 끝까지 해내는 성실함이 드러납니다.", "학습의 지속성을 보여 줄 기록이 부족합니다."},
	schema.SignalMajorKeywords:  {"기록 전반에서 전공에 대한 관심이 일관되게 나타납니다.", "전공 관련 기록을 보강할 필요가 있습니다."},
	schema.SignalRelatedActs:    {"전공과 연계된 활동을 꾸준히 수행했습니다.", "전공과 연계된 활동이 더 필요합니다."},
	schema.SignalUnderstanding:  {"독서와 심화 탐구로 전공 이해의 깊이를 보여 줍니다.", "전공 관련 독서와 심화 탐구가 더 필요합니다."},
	schema.SignalExploration:    {"다양한 활동을 통해 진로를 적극적으로 탐색했습니다.", "진로 탐색 활동의 폭을 넓힐 필요가 있습니다."},
	schema.SignalCareerPlanning: {"진로 목표와 계획이 구체적으로 드러납니다.", "진로 계획을 구체화할 필요가 있습니다."},
	schema.SignalExperience:     {"활동 경험이 지속적이고 깊이 있게 이어졌습니다.", "활동을 여러 해에 걸쳐 깊이 있게 이어갈 필요가 있습니다."},
	schema.SignalTeamwork:       {"협력하여 공동의 과제를 해결하는 모습이 돋보입니다.", "협업 경험을 더 쌓을 필요가 있습니다."},
	schema.SignalCommunication:  {"의사소통과 토론 역량이 뛰어납니다.", "의사소통 경험을 드러낼 기록이 부족합니다."},
	schema.SignalConflict:       {"갈등 상황을 조율하는 역할을 해냈습니다.", "갈등 조정 경험을 쌓을 필요가 있습니다."},
	schema.SignalVolunteering:   {"봉사 활동에 꾸준히 참여했습니다.", "봉사 활동 참여가 더 필요합니다."},
	schema.SignalCaring:         {"타인을 배려하고 공감하는 태도가 드러납니다.", "배려와 공감을 보여 줄 기록이 부족합니다."},
	schema.SignalContribution:   {"공동체 발전에 기여하려는 노력이 보입니다.", "공동체 기여 활동을 늘릴 필요가 있습니다."},
}

// CriterionComment picks a deterministic comment from the strongest and weakest signals.
// Ties go to the signal listed first for the criterion.
func CriterionComment(crit schema.Criterion, signals map[schema.SignalKey]float64) string {
	keys := schema.CriterionSignals[crit]
	if len(keys) == 0 {
		return ""
	}

	allHigh, allLow := true, true
	strongest, weakest := keys[0], keys[0]
	for _, k := range keys {
		v := signals[k]
		if v < excellentSignal {
			allHigh = false
		}
		if v >= foundationSignal {
			allLow = false
		}
		if v > signals[strongest] {
			strongest = k
		}
		if v < signals[weakest] {
			weakest = k
		}
	}

	switch {
	case allHigh:
		return fmt.Sprintf("%s 전반에서 탁월한 역량을 보입니다.", crit.Label())
	case allLow:
		return fmt.Sprintf("%s 전반의 기초를 다지는 노력이 필요합니다.", crit.Label())
	default:
		return signalPhrases[strongest].strong + " " + signalPhrases[weakest].weak
	}
}
