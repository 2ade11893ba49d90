package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		accuracy  int
		questions int
		want      TopicStatus
	}{
		{"mastered", 92, 20, StatusMastered},
		{"high accuracy but too few questions", 95, 10, StatusStrong},
		{"strong lower bound", 75, 5, StatusStrong},
		{"improving lower bound", 50, 5, StatusImproving},
		{"just below improving", 49, 40, StatusWeak},
		{"zero", 0, 0, StatusWeak},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.accuracy, tc.questions))
		})
	}
}

func TestPriorityScore(t *testing.T) {
	// 0.45*80 + 0.35*10 + 0.20*15 = 36 + 3.5 + 3 = 42.5 -> 43
	assert.Equal(t, 43, priorityScore(20, 10, 5))

	// 搁置天数 30 天封顶
	assert.Equal(t, priorityScore(20, 30, 5), priorityScore(20, 200, 5))

	// 练习量超过基线不再加分
	assert.Equal(t, priorityScore(20, 10, 20), priorityScore(20, 10, 80))

	// 全部掌握且刚练过的知识点分数最低
	assert.Equal(t, 0, priorityScore(100, 0, 20))
}

func TestAnalyzeTopicsOrderingAndDays(t *testing.T) {
	records := []MasteryRecord{
		{Subject: "Physics", Topic: "Optics", Accuracy: 85, QuestionsAttempted: 30, LastPracticed: daysAgo(1)},
		{Subject: "Chemistry", Topic: "Organic", Accuracy: 30, QuestionsAttempted: 8, LastPracticed: daysAgo(12)},
		{Subject: "Biology", Topic: "Genetics", Accuracy: 55, QuestionsAttempted: 25, LastPracticed: nil},
	}

	insights := AnalyzeTopics(records, testNow)
	require.Len(t, insights, 3)

	// 降序排列
	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].PriorityScore, insights[i].PriorityScore)
	}
	assert.Equal(t, "Organic", insights[0].Topic)

	// 从未练习按 30 天处理
	for _, in := range insights {
		if in.Topic == "Genetics" {
			assert.Equal(t, neverPracticedDays, in.DaysSincePractice)
		}
	}

	// 未来时间戳不会出现负天数
	future := testNow.AddDate(0, 0, 3)
	out := AnalyzeTopics([]MasteryRecord{{Subject: "P", Topic: "T", Accuracy: 50, LastPracticed: &future}}, testNow)
	assert.Equal(t, 0, out[0].DaysSincePractice)
}

func TestAnalyzeTopicsStable(t *testing.T) {
	records := []MasteryRecord{
		{Subject: "A", Topic: "T1", Accuracy: 40, QuestionsAttempted: 10, LastPracticed: daysAgo(5)},
		{Subject: "B", Topic: "T2", Accuracy: 40, QuestionsAttempted: 10, LastPracticed: daysAgo(5)},
	}
	insights := AnalyzeTopics(records, testNow)
	assert.Equal(t, "T1", insights[0].Topic)
	assert.Equal(t, "T2", insights[1].Topic)
}
