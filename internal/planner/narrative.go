package planner

import (
	"fmt"
	"time"
)

// Narrative 生成首页顶部的一句话激励文案。规则从上到下取第一条命中的，
// 临近考试的紧迫感优先于打卡和准确率的表扬。
func Narrative(firstName string, daysToExam, streak, accuracy, weakCount int, now time.Time) string {
	name := firstName
	if name == "" {
		name = "there"
	}
	greet := salutation(now.Hour())

	var message string
	switch {
	case daysToExam <= 15:
		message = fmt.Sprintf("%d days to go. Every session counts now - stay sharp.", daysToExam)
	case daysToExam <= 30:
		message = fmt.Sprintf("%d days left. Time to shift into revision mode.", daysToExam)
	case streak >= 10:
		message = fmt.Sprintf("A %d-day streak is serious discipline. Keep it rolling.", streak)
	case streak >= 5:
		message = fmt.Sprintf("%d days in a row - momentum is on your side.", streak)
	case accuracy >= 80:
		message = fmt.Sprintf("Averaging %d%% - you're in great shape. Push the tough topics.", accuracy)
	case accuracy >= 60:
		message = fmt.Sprintf("Solid %d%% average. A few focused sessions will lift it higher.", accuracy)
	case weakCount > 5:
		message = fmt.Sprintf("%d topics need attention. Today's plan tackles the biggest ones first.", weakCount)
	case streak >= 1:
		message = "You showed up yesterday. Do it again today."
	default:
		message = "A fresh start. Your plan for today is ready."
	}

	return fmt.Sprintf("%s, %s! %s", greet, name, message)
}

func salutation(hour int) string {
	switch {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	case hour < 21:
		return "Good evening"
	default:
		return "Burning the midnight oil"
	}
}
