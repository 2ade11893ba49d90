package planner

// 规则表集中在这里，调参时只改这一个文件。

// 掌握状态阈值
const (
	masteredMinAccuracy  = 90
	masteredMinQuestions = 15
	strongMinAccuracy    = 75
	improvingMinAccuracy = 50
)

// 优先级评分权重
const (
	weightAccuracyGap   = 0.45
	weightStaleness     = 0.35
	weightLowVolume     = 0.20
	stalenessCapDays    = 30
	lowVolumeBaseline   = 20
	neverPracticedDays  = 30
)

// 遗忘风险
const (
	revisionMinDaysSince = 2
	revisionMinAccuracy  = 20
	forgettingRetention  = 0.7
	forgettingScale      = 8.0
	revisionQueueLimit   = 8
	urgencyOverdueDays   = 7
	urgencyDueDays       = 3
)

// 每日计划
const (
	restWeekday         = 0 // 周日
	mockWeekday         = 6 // 周六
	restRevisionMinutes = 20
	restRevisionMax     = 2

	mockTestFraction     = 0.40
	mockPracticeFraction = 0.35
	mockPracticeMax      = 2
	mockRevisionMax      = 2
	mockRevisionMinDays  = 4

	morningStudyMax    = 2
	studyWeakMinutes   = 45
	studyOtherMinutes  = 35
	morningExtraMin    = 25
	afternoonMax       = 2
	practiceMinutes    = 30
	eveningRevisionMax = 2
	revisionMinutes    = 25
	eveningMinDays     = 3
	eveningMinAccuracy = 30
	eveningExtraMin    = 20

	questionsMinTarget   = 3
	minutesPerQuestion   = 3
	defaultBudgetMinutes = 120
)

// 考期分桶的时间分配
var allocationBuckets = []struct {
	minDays  int
	alloc    TimeAllocation
}{
	{180, TimeAllocation{Study: 0.65, Revision: 0.20, Practice: 0.15}},
	{90, TimeAllocation{Study: 0.55, Revision: 0.25, Practice: 0.20}},
	{45, TimeAllocation{Study: 0.40, Revision: 0.35, Practice: 0.25}},
	{15, TimeAllocation{Study: 0.25, Revision: 0.40, Practice: 0.35}},
	{-1 << 31, TimeAllocation{Study: 0.15, Revision: 0.40, Practice: 0.45}},
}

// 每周成就
const (
	maxWeeklyWins          = 4
	winStreakLong          = 7
	winStreakShort         = 3
	winConsistencyHigh     = 80
	winConsistencyMid      = 65
	winImprovedRecentDays  = 7
	milestoneLarge         = 1000
	milestoneMedium        = 500
	milestoneSmall         = 100
)

// 整体进度
const journeyTotalDays = 365
