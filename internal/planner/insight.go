package planner

import (
	"math"
	"sort"
	"time"
)

// AnalyzeTopics 把原始掌握数据转为带优先级的分析结果，按优先级降序返回。
// 排序是稳定的，输入顺序相同则输出顺序相同。
func AnalyzeTopics(records []MasteryRecord, now time.Time) []TopicInsight {
	insights := make([]TopicInsight, 0, len(records))
	for _, r := range records {
		days := daysSincePractice(r.LastPracticed, now)
		insights = append(insights, TopicInsight{
			Subject:            r.Subject,
			Chapter:            r.Chapter,
			Topic:              r.Topic,
			Accuracy:           r.Accuracy,
			QuestionsAttempted: r.QuestionsAttempted,
			Status:             classify(r.Accuracy, r.QuestionsAttempted),
			DaysSincePractice:  days,
			PriorityScore:      priorityScore(r.Accuracy, days, r.QuestionsAttempted),
			StuckDays:          r.StuckDays,
		})
	}
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].PriorityScore > insights[j].PriorityScore
	})
	return insights
}

func daysSincePractice(last *time.Time, now time.Time) int {
	if last == nil {
		return neverPracticedDays
	}
	days := int(now.Sub(*last).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func classify(accuracy, questions int) TopicStatus {
	switch {
	case accuracy >= masteredMinAccuracy && questions >= masteredMinQuestions:
		return StatusMastered
	case accuracy >= strongMinAccuracy:
		return StatusStrong
	case accuracy >= improvingMinAccuracy:
		return StatusImproving
	default:
		return StatusWeak
	}
}

// priorityScore 三个分量：准确率缺口、搁置天数(封顶30)、练习量不足(基线20题)
func priorityScore(accuracy, days, questions int) int {
	gap := weightAccuracyGap * float64(100-accuracy)
	stale := weightStaleness * math.Min(float64(days), stalenessCapDays)
	volume := weightLowVolume * math.Max(0, float64(lowVolumeBaseline-questions))
	return int(math.Round(gap + stale + volume))
}
