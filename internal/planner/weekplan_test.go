package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWeekPlanShape(t *testing.T) {
	week := BuildWeekPlan(weekdayInsights(), AllocateTime(60), 240, testNow)
	require.Len(t, week, 7)

	// 连续 7 天，首日是今天
	assert.True(t, week[0].IsToday)
	for i := 1; i < 7; i++ {
		assert.False(t, week[i].IsToday)
		assert.Equal(t, testNow.AddDate(0, 0, i).Format("2006-01-02"), week[i].Date)
	}

	// 周六模考，周日休整
	assert.Equal(t, "Saturday", week[4].DayName)
	assert.Equal(t, TaskMockTest, week[4].Tasks[0].Type)
	assert.Equal(t, "Sunday", week[5].DayName)
	assert.True(t, week[5].IsRestDay)
}

func TestBuildWeekPlanRotation(t *testing.T) {
	week := BuildWeekPlan(weekdayInsights(), AllocateTime(60), 240, testNow)

	// 轮转让第二天的首个攻坚任务换成另一个薄弱知识点
	day0 := week[0].Tasks[0]
	day1 := week[1].Tasks[0]
	assert.Equal(t, TaskStudy, day0.Type)
	assert.Equal(t, TaskStudy, day1.Type)
	assert.NotEqual(t, day0.Topic, day1.Topic)
}

func TestRotate(t *testing.T) {
	group := []TopicInsight{{Topic: "A"}, {Topic: "B"}, {Topic: "C"}}
	assert.Equal(t, "A", rotate(group, 0)[0].Topic)
	assert.Equal(t, "B", rotate(group, 1)[0].Topic)
	assert.Equal(t, "A", rotate(group, 3)[0].Topic)
	assert.Empty(t, rotate(nil, 2))
}
