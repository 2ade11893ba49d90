package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testNow (2026-03-10) 是周二；周日 2026-03-08，周六 2026-03-14
var (
	testSunday   = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	testSaturday = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
)

func weekdayInsights() []TopicInsight {
	return []TopicInsight{
		{Subject: "Chemistry", Topic: "Organic", Accuracy: 30, Status: StatusWeak, DaysSincePractice: 4, PriorityScore: 60},
		{Subject: "Chemistry", Topic: "Thermo", Accuracy: 40, Status: StatusWeak, DaysSincePractice: 2, PriorityScore: 50},
		{Subject: "Biology", Topic: "Genetics", Accuracy: 60, Status: StatusImproving, DaysSincePractice: 1, PriorityScore: 30},
		{Subject: "Biology", Topic: "Ecology", Accuracy: 55, Status: StatusImproving, DaysSincePractice: 6, PriorityScore: 28},
		{Subject: "Physics", Topic: "Optics", Accuracy: 80, Status: StatusStrong, DaysSincePractice: 3, PriorityScore: 10},
		{Subject: "Physics", Topic: "Waves", Accuracy: 85, Status: StatusStrong, DaysSincePractice: 4, PriorityScore: 8},
	}
}

func TestBuildDayPlanWeekday(t *testing.T) {
	plan := BuildDayPlan(weekdayInsights(), AllocateTime(60), 240, testNow, testNow)

	assert.True(t, plan.IsToday)
	assert.False(t, plan.IsRestDay)
	assert.Equal(t, "Tuesday", plan.DayName)
	assert.Equal(t, "Tue", plan.DayShort)

	bySlot := map[TimeSlot][]Task{}
	for _, task := range plan.Tasks {
		bySlot[task.TimeSlot] = append(bySlot[task.TimeSlot], task)
	}

	// 早上两个攻坚任务，薄弱的 45 分钟约 15 题
	require.Len(t, bySlot[SlotMorning], 2)
	assert.Equal(t, TaskStudy, bySlot[SlotMorning][0].Type)
	assert.Equal(t, "Organic", bySlot[SlotMorning][0].Topic)
	assert.Equal(t, 45, bySlot[SlotMorning][0].AllocatedMinutes)
	assert.Equal(t, 15, bySlot[SlotMorning][0].QuestionsTarget)
	assert.Equal(t, PriorityCritical, bySlot[SlotMorning][0].Priority)

	// 下午刷题，30 分钟约 10 题
	require.Len(t, bySlot[SlotAfternoon], 2)
	for _, task := range bySlot[SlotAfternoon] {
		assert.Equal(t, TaskPractice, task.Type)
		assert.Equal(t, 30, task.AllocatedMinutes)
		assert.Equal(t, 10, task.QuestionsTarget)
	}

	// 晚上复习按搁置天数从久到近，25 分钟约 8 题
	require.Len(t, bySlot[SlotEvening], 2)
	assert.Equal(t, "Waves", bySlot[SlotEvening][0].Topic)
	assert.Equal(t, "Optics", bySlot[SlotEvening][1].Topic)
	assert.Equal(t, 8, bySlot[SlotEvening][0].QuestionsTarget)

	// 每个任务都带题量目标
	for _, task := range plan.Tasks {
		assert.GreaterOrEqual(t, task.QuestionsTarget, 3, task.ID)
	}

	// 一天内一个知识点只排一次，ID 不重复，总时长不超预算
	seen := map[string]bool{}
	for _, task := range plan.Tasks {
		key := task.Subject + "|" + task.Topic
		assert.False(t, seen[key], key)
		seen[key] = true
	}
	ids := map[string]bool{}
	for _, task := range plan.Tasks {
		assert.False(t, ids[task.ID], task.ID)
		ids[task.ID] = true
	}
	assert.LessOrEqual(t, plan.TotalMinutes, 240)
}

func TestBuildDayPlanRestDay(t *testing.T) {
	plan := BuildDayPlan(weekdayInsights(), AllocateTime(60), 240, testSunday, testNow)

	assert.True(t, plan.IsRestDay)
	assert.False(t, plan.IsToday)
	require.Len(t, plan.Tasks, restRevisionMax)
	for _, task := range plan.Tasks {
		assert.Equal(t, TaskRevision, task.Type)
		assert.Equal(t, restRevisionMinutes, task.AllocatedMinutes)
	}
	// 只回顾优势知识点
	assert.Equal(t, "Optics", plan.Tasks[0].Topic)
	assert.Equal(t, "Waves", plan.Tasks[1].Topic)
}

func TestBuildDayPlanMockDay(t *testing.T) {
	insights := []TopicInsight{
		{Subject: "Chemistry", Topic: "Organic", Accuracy: 30, Status: StatusWeak, DaysSincePractice: 5, PriorityScore: 60},
		{Subject: "Chemistry", Topic: "Thermo", Accuracy: 40, Status: StatusWeak, DaysSincePractice: 2, PriorityScore: 50},
		{Subject: "Physics", Topic: "Optics", Accuracy: 80, Status: StatusStrong, DaysSincePractice: 6, PriorityScore: 10},
	}
	plan := BuildDayPlan(insights, AllocateTime(60), 120, testSaturday, testNow)

	require.NotEmpty(t, plan.Tasks)
	mock := plan.Tasks[0]
	assert.Equal(t, TaskMockTest, mock.Type)
	assert.Equal(t, "Chemistry", mock.Subject)
	assert.Equal(t, 48, mock.AllocatedMinutes)
	assert.Equal(t, 16, mock.QuestionsTarget)
	assert.Equal(t, PriorityCritical, mock.Priority)

	var practice, revision []Task
	for _, task := range plan.Tasks[1:] {
		switch task.Type {
		case TaskPractice:
			practice = append(practice, task)
		case TaskRevision:
			revision = append(revision, task)
		}
	}
	require.Len(t, practice, 2)
	for _, task := range practice {
		assert.Equal(t, 21, task.AllocatedMinutes)
	}
	require.Len(t, revision, 2)
	for _, task := range revision {
		assert.Equal(t, 15, task.AllocatedMinutes)
	}
	assert.Equal(t, 120, plan.TotalMinutes)
}

func TestBuildDayPlanNeverExceedsBudget(t *testing.T) {
	// 三段各自四舍五入时 110×{.25,.40,.35} 会凑出 28+44+39=111
	allocs := []TimeAllocation{AllocateTime(20), AllocateTime(10), AllocateTime(60)}
	budgets := []int{75, 110, 145, 200, 240}
	for _, alloc := range allocs {
		for _, budget := range budgets {
			plan := BuildDayPlan(weekdayInsights(), alloc, budget, testNow, testNow)
			assert.LessOrEqual(t, plan.TotalMinutes, budget,
				"alloc %+v budget %d", alloc, budget)
		}
	}
}

func TestBuildDayPlanEmptyInsights(t *testing.T) {
	plan := BuildDayPlan(nil, AllocateTime(60), 120, testNow, testNow)
	assert.Empty(t, plan.Tasks)
	assert.Zero(t, plan.TotalMinutes)

	mock := BuildDayPlan(nil, AllocateTime(60), 120, testSaturday, testNow)
	assert.Empty(t, mock.Tasks)
}

func TestTaskIDStability(t *testing.T) {
	insights := weekdayInsights()
	a := BuildDayPlan(insights, AllocateTime(60), 240, testNow, testNow)
	b := BuildDayPlan(insights, AllocateTime(60), 240, testNow, testNow)
	require.Equal(t, len(a.Tasks), len(b.Tasks))
	for i := range a.Tasks {
		assert.Equal(t, a.Tasks[i].ID, b.Tasks[i].ID)
	}

	assert.Equal(t, "2026-03-10|chemistry|organic|study", a.Tasks[0].ID)

	other := BuildDayPlan(insights, AllocateTime(60), 240, testNow.AddDate(0, 0, 1), testNow)
	assert.NotEqual(t, a.Tasks[0].ID, other.Tasks[0].ID)
}
