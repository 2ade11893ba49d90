package planner

import "time"

// BuildWeekPlan 从今天起生成连续 7 天的计划。每天把各掌握状态分组
// 轮转一个偏移量再拼回去，让一周内不同的知识点都有机会被排进来，
// 而不是每天都重复同样的前几个。
func BuildWeekPlan(insights []TopicInsight, alloc TimeAllocation, budgetMinutes int, today time.Time) []DayPlan {
	var weak, improving, solid []TopicInsight
	for _, in := range insights {
		switch in.Status {
		case StatusWeak:
			weak = append(weak, in)
		case StatusImproving:
			improving = append(improving, in)
		default:
			solid = append(solid, in)
		}
	}

	days := make([]DayPlan, 0, 7)
	for i := 0; i < 7; i++ {
		date := today.AddDate(0, 0, i)
		rotated := make([]TopicInsight, 0, len(insights))
		rotated = append(rotated, rotate(weak, i)...)
		rotated = append(rotated, rotate(improving, i)...)
		rotated = append(rotated, rotate(solid, i)...)
		days = append(days, BuildDayPlan(rotated, alloc, budgetMinutes, date, today))
	}
	return days
}

func rotate(group []TopicInsight, offset int) []TopicInsight {
	if len(group) == 0 {
		return group
	}
	k := offset % len(group)
	out := make([]TopicInsight, 0, len(group))
	out = append(out, group[k:]...)
	out = append(out, group[:k]...)
	return out
}
