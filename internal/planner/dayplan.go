package planner

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// BuildDayPlan 为某一天生成任务列表。周日休整，周六模考，工作日按
// 早/午/晚三个时段分配学习、刷题、复习。任务只从已有知识点里挑，
// 池子为空就少排，绝不凭空造任务。
func BuildDayPlan(insights []TopicInsight, alloc TimeAllocation, budgetMinutes int, date, today time.Time) DayPlan {
	if budgetMinutes <= 0 {
		budgetMinutes = defaultBudgetMinutes
	}

	plan := DayPlan{
		Date:     date.Format("2006-01-02"),
		DayName:  date.Weekday().String(),
		DayShort: date.Weekday().String()[:3],
		IsToday:  sameDay(date, today),
		Tasks:    []Task{},
	}

	switch int(date.Weekday()) {
	case restWeekday:
		plan.IsRestDay = true
		plan.Tasks = restDayTasks(insights, plan.Date)
	case mockWeekday:
		plan.Tasks = mockDayTasks(insights, budgetMinutes, plan.Date)
	default:
		plan.Tasks = weekdayTasks(insights, alloc, budgetMinutes, plan.Date)
	}

	for _, t := range plan.Tasks {
		plan.TotalMinutes += t.AllocatedMinutes
	}
	return plan
}

// 休整日：最多两个 20 分钟的轻量回顾，只挑已经掌握得不错的
func restDayTasks(insights []TopicInsight, date string) []Task {
	tasks := []Task{}
	for _, in := range insights {
		if len(tasks) >= restRevisionMax {
			break
		}
		if in.Status != StatusStrong && in.Status != StatusMastered {
			continue
		}
		tasks = append(tasks, newTask(in, TaskRevision, SlotMorning, restRevisionMinutes, date,
			"Light review on your rest day - no pressure"))
	}
	return tasks
}

// 模考日：一场占 40% 时间的模考，再加最多两组刷题和两组复习
func mockDayTasks(insights []TopicInsight, budget int, date string) []Task {
	tasks := []Task{}
	if len(insights) == 0 {
		return tasks
	}

	subject := weakestSubject(insights)
	mock := Task{
		ID:               taskID(date, subject, "Mock Test", TaskMockTest),
		Subject:          subject,
		Topic:            "Mock Test",
		Type:             TaskMockTest,
		Priority:         PriorityCritical,
		Status:           TaskPending,
		TimeSlot:         SlotMorning,
		AllocatedMinutes: roundFraction(budget, mockTestFraction),
		QuestionsTarget:  questionsTarget(roundFraction(budget, mockTestFraction)),
		Reason:           "Weekly mock - build exam stamina and timing",
	}
	tasks = append(tasks, mock)

	var practicePool, revisionPool []TopicInsight
	for _, in := range insights {
		if in.Status == StatusWeak {
			practicePool = append(practicePool, in)
		}
		if in.DaysSincePractice >= mockRevisionMinDays {
			revisionPool = append(revisionPool, in)
		}
	}

	practiceBudget := roundFraction(budget, mockPracticeFraction)
	n := len(practicePool)
	if n > mockPracticeMax {
		n = mockPracticeMax
	}
	for i := 0; i < n; i++ {
		minutes := practiceBudget / n
		if minutes <= 0 {
			break
		}
		tasks = append(tasks, newTask(practicePool[i], TaskPractice, SlotAfternoon, minutes, date,
			practiceReason(practicePool[i])))
	}

	revisionBudget := budget - roundFraction(budget, mockTestFraction) - practiceBudget
	m := len(revisionPool)
	if m > mockRevisionMax {
		m = mockRevisionMax
	}
	for i := 0; i < m; i++ {
		minutes := revisionBudget / m
		if minutes <= 0 {
			break
		}
		tasks = append(tasks, newTask(revisionPool[i], TaskRevision, SlotEvening, minutes, date,
			revisionReason(revisionPool[i])))
	}
	return tasks
}

// 工作日：早上攻坚学习，下午刷题巩固，晚上复习防遗忘
func weekdayTasks(insights []TopicInsight, alloc TimeAllocation, budget int, date string) []Task {
	tasks := []Task{}
	scheduled := map[string]bool{}
	add := func(in TopicInsight, typ TaskType, slot TimeSlot, minutes int, reason string) {
		tasks = append(tasks, newTask(in, typ, slot, minutes, date, reason))
		scheduled[in.Subject+"|"+in.Topic] = true
	}

	// 早上：优先级排序已经把薄弱的放在前面，直接顺序取
	studyBudget := roundFraction(budget, alloc.Study)
	studyCount := 0
	for _, in := range insights {
		if studyCount >= morningStudyMax || studyBudget <= 0 {
			break
		}
		if in.Status == StatusStrong || in.Status == StatusMastered {
			continue
		}
		minutes := studyOtherMinutes
		if in.Status == StatusWeak {
			minutes = studyWeakMinutes
		}
		if minutes > studyBudget {
			minutes = studyBudget
		}
		add(in, TaskStudy, SlotMorning, minutes, studyReason(in))
		studyBudget -= minutes
		studyCount++
	}
	// 预算还宽裕就再加第三个
	if studyBudget >= morningExtraMin {
		for _, in := range insights {
			if in.Status == StatusStrong || in.Status == StatusMastered {
				continue
			}
			if scheduled[in.Subject+"|"+in.Topic] {
				continue
			}
			minutes := studyOtherMinutes
			if minutes > studyBudget {
				minutes = studyBudget
			}
			add(in, TaskStudy, SlotMorning, minutes, studyReason(in))
			break
		}
	}

	// 下午：中等和较强的知识点刷题巩固
	practiceBudget := roundFraction(budget, alloc.Practice)
	practiceCount := 0
	for _, in := range insights {
		if practiceCount >= afternoonMax || practiceBudget <= 0 {
			break
		}
		if in.Status != StatusImproving && in.Status != StatusStrong {
			continue
		}
		if scheduled[in.Subject+"|"+in.Topic] {
			continue
		}
		minutes := practiceMinutes
		if minutes > practiceBudget {
			minutes = practiceBudget
		}
		add(in, TaskPractice, SlotAfternoon, minutes, practiceReason(in))
		practiceBudget -= minutes
		practiceCount++
	}

	// 晚上：按搁置天数从久到近复习。时段预算取前两段的余数，
	// 三段各自四舍五入会凑出超过全天预算的总和
	revisionBudget := budget - roundFraction(budget, alloc.Study) - roundFraction(budget, alloc.Practice)
	if revisionBudget < 0 {
		revisionBudget = 0
	}
	revisionPool := []TopicInsight{}
	for _, in := range insights {
		if in.DaysSincePractice >= eveningMinDays && in.Accuracy > eveningMinAccuracy &&
			!scheduled[in.Subject+"|"+in.Topic] {
			revisionPool = append(revisionPool, in)
		}
	}
	sort.SliceStable(revisionPool, func(i, j int) bool {
		return revisionPool[i].DaysSincePractice > revisionPool[j].DaysSincePractice
	})
	revisionCount := 0
	for _, in := range revisionPool {
		if revisionCount >= eveningRevisionMax || revisionBudget <= 0 {
			break
		}
		minutes := revisionMinutes
		if minutes > revisionBudget {
			minutes = revisionBudget
		}
		add(in, TaskRevision, SlotEvening, minutes, revisionReason(in))
		revisionBudget -= minutes
		revisionCount++
	}
	// 睡前过一遍优势科目，保温
	if revisionBudget >= eveningExtraMin {
		for _, in := range insights {
			if in.Status != StatusStrong && in.Status != StatusMastered {
				continue
			}
			if scheduled[in.Subject+"|"+in.Topic] {
				continue
			}
			add(in, TaskRevision, SlotEvening, eveningExtraMin, "Quick pass to keep your strength sharp")
			break
		}
	}

	return tasks
}

func newTask(in TopicInsight, typ TaskType, slot TimeSlot, minutes int, date, reason string) Task {
	return Task{
		ID:               taskID(date, in.Subject, in.Topic, typ),
		Subject:          in.Subject,
		Chapter:          in.Chapter,
		Topic:            in.Topic,
		Type:             typ,
		Priority:         priorityFor(in.Status),
		Status:           TaskPending,
		TimeSlot:         slot,
		AllocatedMinutes: minutes,
		Accuracy:         in.Accuracy,
		QuestionsTarget:  questionsTarget(minutes),
		Reason:           reason,
	}
}

// taskID 由日期、科目、知识点和类型确定性生成，同一天重算得到同一个 ID
func taskID(date, subject, topic string, typ TaskType) string {
	raw := fmt.Sprintf("%s|%s|%s|%s", date, subject, topic, typ)
	return strings.ReplaceAll(strings.ToLower(raw), " ", "-")
}

func priorityFor(status TopicStatus) TaskPriority {
	switch status {
	case StatusWeak:
		return PriorityCritical
	case StatusImproving:
		return PriorityHigh
	case StatusStrong:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

func questionsTarget(minutes int) int {
	n := int(math.Round(float64(minutes) / minutesPerQuestion))
	if n < questionsMinTarget {
		return questionsMinTarget
	}
	return n
}

func studyReason(in TopicInsight) string {
	if in.Status == StatusWeak {
		return fmt.Sprintf("Only %d%% accuracy - needs focused practice", in.Accuracy)
	}
	return fmt.Sprintf("%d%% and climbing - push to 75%%+", in.Accuracy)
}

func practiceReason(in TopicInsight) string {
	if in.Status == StatusWeak {
		return fmt.Sprintf("Only %d%% accuracy - needs focused practice", in.Accuracy)
	}
	return fmt.Sprintf("Drill at %d%% to lock it in", in.Accuracy)
}

func revisionReason(in TopicInsight) string {
	return fmt.Sprintf("Last touched %d days ago - review before it fades", in.DaysSincePractice)
}

// weakestSubject 返回优先级总分最高的科目，作为模考主攻方向
func weakestSubject(insights []TopicInsight) string {
	sums := map[string]int{}
	order := []string{}
	for _, in := range insights {
		if _, ok := sums[in.Subject]; !ok {
			order = append(order, in.Subject)
		}
		sums[in.Subject] += in.PriorityScore
	}
	best := order[0]
	for _, s := range order[1:] {
		if sums[s] > sums[best] {
			best = s
		}
	}
	return best
}

func roundFraction(budget int, fraction float64) int {
	return int(math.Round(float64(budget) * fraction))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
