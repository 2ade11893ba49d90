package planner

import (
	"math"
	"sort"
)

// BuildRevisionQueue 从分析结果中筛出需要复习的知识点，按遗忘风险降序取前 8 个。
// 过滤条件：至少 2 天没碰过，且准确率高于 20%（更低的应该重学而不是复习）。
func BuildRevisionQueue(insights []TopicInsight) []RevisionItem {
	items := make([]RevisionItem, 0, len(insights))
	for _, in := range insights {
		if in.DaysSincePractice < revisionMinDaysSince || in.Accuracy <= revisionMinAccuracy {
			continue
		}
		items = append(items, RevisionItem{
			Subject:        in.Subject,
			Chapter:        in.Chapter,
			Topic:          in.Topic,
			Accuracy:       in.Accuracy,
			DaysSince:      in.DaysSincePractice,
			Urgency:        urgencyFor(in.DaysSincePractice),
			ForgettingRisk: forgettingRisk(in.DaysSincePractice, in.Accuracy),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ForgettingRisk > items[j].ForgettingRisk
	})
	if len(items) > revisionQueueLimit {
		items = items[:revisionQueueLimit]
	}
	return items
}

// forgettingRisk 简化的遗忘曲线：天数越多、掌握越弱，风险越高，封顶 100
func forgettingRisk(days, accuracy int) int {
	risk := float64(days) * (1 - forgettingRetention*float64(accuracy)/100) * forgettingScale
	return int(math.Min(100, math.Round(risk)))
}

func urgencyFor(days int) Urgency {
	switch {
	case days > urgencyOverdueDays:
		return UrgencyOverdue
	case days > urgencyDueDays:
		return UrgencyDue
	default:
		return UrgencyUpcoming
	}
}
