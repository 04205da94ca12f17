package algo

import (
	"github.com/huangsam/recordlens/schema"
)

func ptr[T any](v T) *T { return &v }

// sampleRecord is a medicine applicant with a narrow but deep biology profile.
func sampleRecord() schema.StudentRecord {
	return schema.StudentRecord{
		Name:        "김학생",
		SchoolYear:  "3학년",
		TargetMajor: "의학",
		Grades: []schema.GradeEntry{
			{Subject: "국어", Grade: 2},
			{Subject: "수학", Grade: 1},
			{Subject: "영어", Grade: 2},
			{Subject: "화학", Grade: 1},
			{Subject: "생명과학", Grade: 1},
		},
		Awards: []schema.Award{
			{Name: "과학탐구대회", Level: schema.SchoolAward, Year: 2022},
			{Name: "생명과학올림피아드", Level: schema.RegionalAward, Year: 2023},
		},
		Activities: []schema.Activity{
			{
				Type:        schema.ClubActivity,
				Name:        "생명과학연구반",
				Description: "3년간 지속적인 생명과학 실험 및 탐구 활동 수행. DNA 추출 실험, 세포 관찰 등 다양한 실험을 통해 생명과학에 대한 이해도를 높임.",
				Duration:    ptr(3.0),
				Year:        2022,
			},
		},
		Reading: []schema.ReadingEntry{
			{Title: "생명과학의 이해", Category: schema.MajorReading},
			{Title: "의학의 역사", Category: schema.MajorReading},
			{Title: "코스모스", Category: schema.GeneralReading},
		},
		SubjectDetails: []schema.SubjectDetail{
			{Subject: "생명과학", Content: "세포분열 과정에 대한 심화 탐구를 통해 생명현상의 신비로움을 이해하고, DNA 구조와 복제 과정을 실험으로 확인하며 생명과학에 대한 흥미를 높임."},
		},
		TeacherComments: []string{
			"성실하고 책임감 있는 학생으로 모든 활동에 적극적으로 참여함. 특히 생명과학 분야에 대한 열정이 뛰어나며 창의적인 사고력을 보임.",
		},
	}
}

func sampleContext() SignalContext {
	ctx, err := NewSignalContext(sampleRecord(), schema.DefaultRubric())
	if err != nil {
		panic(err)
	}
	return ctx
}
