package planner

import "time"

// TopicStatus 知识点掌握状态
type TopicStatus string

const (
	StatusWeak      TopicStatus = "weak"
	StatusImproving TopicStatus = "improving"
	StatusStrong    TopicStatus = "strong"
	StatusMastered  TopicStatus = "mastered"
)

// TaskType 计划任务类型
type TaskType string

const (
	TaskStudy    TaskType = "study"
	TaskRevision TaskType = "revision"
	TaskPractice TaskType = "practice"
	TaskMockTest TaskType = "mock_test"
	TaskBreak    TaskType = "break"
)

// TaskPriority 任务优先级
type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// TaskStatus 任务完成状态
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
	TaskSkipped   TaskStatus = "skipped"
)

// TimeSlot 一天内的时段
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"
	SlotAfternoon TimeSlot = "afternoon"
	SlotEvening   TimeSlot = "evening"
)

// Urgency 复习紧迫程度
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyDue      Urgency = "due"
	UrgencyUpcoming Urgency = "upcoming"
)

// WinType 每周成就类型
type WinType string

const (
	WinMastered    WinType = "mastered"
	WinImproved    WinType = "improved"
	WinStreak      WinType = "streak"
	WinConsistency WinType = "consistency"
	WinMilestone   WinType = "milestone"
)

// MasteryRecord 调用方提供的单个知识点的原始掌握数据。
// LastPracticed 为空表示从未练习过。
type MasteryRecord struct {
	Subject            string
	Chapter            string
	Topic              string
	Accuracy           int
	QuestionsAttempted int
	LastPracticed      *time.Time
	StuckDays          int
}

// TopicInsight 单个知识点的分析结果，每次规划全量重算，不做原地修改
type TopicInsight struct {
	Subject            string      `json:"subject"`
	Chapter            string      `json:"chapter"`
	Topic              string      `json:"topic"`
	Accuracy           int         `json:"accuracy"`
	QuestionsAttempted int         `json:"questionsAttempted"`
	Status             TopicStatus `json:"status"`
	DaysSincePractice  int         `json:"daysSincePractice"`
	PriorityScore      int         `json:"priorityScore"`
	StuckDays          int         `json:"stuckDays"`
}

// TimeAllocation 学习时间在三种模式之间的分配比例，三项之和恒为 1.0
type TimeAllocation struct {
	Study    float64 `json:"study"`
	Revision float64 `json:"revision"`
	Practice float64 `json:"practice"`
}

// Task 一个可调度的学习任务。ID 由 (日期, 科目, 知识点, 类型) 确定性生成，
// 同一天重新生成计划会得到相同的 ID，外部记录的完成状态因此可以重新合并。
type Task struct {
	ID               string       `json:"id"`
	Subject          string       `json:"subject"`
	Chapter          string       `json:"chapter"`
	Topic            string       `json:"topic"`
	Type             TaskType     `json:"type"`
	Priority         TaskPriority `json:"priority"`
	Status           TaskStatus   `json:"status"`
	TimeSlot         TimeSlot     `json:"timeSlot"`
	AllocatedMinutes int          `json:"allocatedMinutes"`
	Accuracy         int          `json:"accuracy"`
	QuestionsTarget  int          `json:"questionsTarget"`
	Reason           string       `json:"reason"`
}

// DayPlan 一天的学习计划
type DayPlan struct {
	Date             string `json:"date"`
	DayName          string `json:"dayName"`
	DayShort         string `json:"dayShort"`
	IsToday          bool   `json:"isToday"`
	IsRestDay        bool   `json:"isRestDay"`
	Tasks            []Task `json:"tasks"`
	TotalMinutes     int    `json:"totalMinutes"`
	CompletedMinutes int    `json:"completedMinutes"`
}

// RevisionItem 复习队列中的一项
type RevisionItem struct {
	Subject        string  `json:"subject"`
	Chapter        string  `json:"chapter"`
	Topic          string  `json:"topic"`
	Accuracy       int     `json:"accuracy"`
	DaysSince      int     `json:"daysSince"`
	Urgency        Urgency `json:"urgency"`
	ForgettingRisk int     `json:"forgettingRisk"`
}

// WeeklyWin 生成的成就提示，每次加载重新推导，不作为持久状态
type WeeklyWin struct {
	Type   WinType `json:"type"`
	Title  string  `json:"title"`
	Detail string  `json:"detail"`
	Emoji  string  `json:"emoji"`
}

// SubjectBreakdown 按科目汇总的掌握情况
type SubjectBreakdown struct {
	Subject         string         `json:"subject"`
	AverageAccuracy int            `json:"averageAccuracy"`
	TopicCount      int            `json:"topicCount"`
	Mastered        int            `json:"mastered"`
	Strong          int            `json:"strong"`
	Improving       int            `json:"improving"`
	Weak            int            `json:"weak"`
	Topics          []TopicInsight `json:"topics"`
}

// Stats 聚合统计，每次规划全量重算，永远不是数据源
type Stats struct {
	Mastered        int `json:"mastered"`
	Strong          int `json:"strong"`
	Improving       int `json:"improving"`
	Weak            int `json:"weak"`
	AverageAccuracy int `json:"averageAccuracy"`
	Streak          int `json:"streak"`
	TodayTasks      int `json:"todayTasks"`
	TodayCompleted  int `json:"todayCompleted"`
	JourneyPercent  int `json:"journeyPercent"`
}
