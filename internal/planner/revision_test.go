package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRevisionQueueFilters(t *testing.T) {
	insights := []TopicInsight{
		{Subject: "P", Topic: "Fresh", Accuracy: 60, DaysSincePractice: 1},
		{Subject: "P", Topic: "TooWeak", Accuracy: 20, DaysSincePractice: 10},
		{Subject: "P", Topic: "Due", Accuracy: 60, DaysSincePractice: 5},
		{Subject: "P", Topic: "Overdue", Accuracy: 40, DaysSincePractice: 12},
	}
	queue := BuildRevisionQueue(insights)
	require.Len(t, queue, 2)

	// 风险降序
	assert.Equal(t, "Overdue", queue[0].Topic)
	assert.Equal(t, UrgencyOverdue, queue[0].Urgency)
	assert.Equal(t, UrgencyDue, queue[1].Urgency)
}

func TestForgettingRiskBounds(t *testing.T) {
	for days := 0; days <= 60; days += 5 {
		for acc := 0; acc <= 100; acc += 10 {
			risk := forgettingRisk(days, acc)
			assert.GreaterOrEqual(t, risk, 0)
			assert.LessOrEqual(t, risk, 100)
		}
	}
	// 12 * (1 - 0.7*0.40) * 8 = 69.12 -> 69
	assert.Equal(t, 69, forgettingRisk(12, 40))
}

func TestBuildRevisionQueueLimit(t *testing.T) {
	insights := make([]TopicInsight, 0, 12)
	for i := 0; i < 12; i++ {
		insights = append(insights, TopicInsight{
			Subject: "C", Topic: fmt.Sprintf("T%d", i),
			Accuracy: 50, DaysSincePractice: 3 + i,
		})
	}
	queue := BuildRevisionQueue(insights)
	assert.Len(t, queue, revisionQueueLimit)
}

func TestUrgencyFor(t *testing.T) {
	assert.Equal(t, UrgencyUpcoming, urgencyFor(2))
	assert.Equal(t, UrgencyUpcoming, urgencyFor(3))
	assert.Equal(t, UrgencyDue, urgencyFor(4))
	assert.Equal(t, UrgencyDue, urgencyFor(7))
	assert.Equal(t, UrgencyOverdue, urgencyFor(8))
}
