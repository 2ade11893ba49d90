package planner

import (
	"fmt"
	"math"
	"time"
)

// BuildSubjectBreakdowns 按科目聚合分析结果。科目顺序按首次出现排列，
// 科目内的知识点保持传入的优先级顺序。
func BuildSubjectBreakdowns(insights []TopicInsight) []SubjectBreakdown {
	index := map[string]int{}
	breakdowns := []SubjectBreakdown{}
	sums := []int{}

	for _, in := range insights {
		i, ok := index[in.Subject]
		if !ok {
			i = len(breakdowns)
			index[in.Subject] = i
			breakdowns = append(breakdowns, SubjectBreakdown{Subject: in.Subject})
			sums = append(sums, 0)
		}
		b := &breakdowns[i]
		b.TopicCount++
		b.Topics = append(b.Topics, in)
		sums[i] += in.Accuracy
		switch in.Status {
		case StatusMastered:
			b.Mastered++
		case StatusStrong:
			b.Strong++
		case StatusImproving:
			b.Improving++
		default:
			b.Weak++
		}
	}
	for i := range breakdowns {
		breakdowns[i].AverageAccuracy = roundDiv(sums[i], breakdowns[i].TopicCount)
	}
	return breakdowns
}

// BuildWeeklyWins 推导本周值得表扬的点，最多 4 条。顺序即展示顺序：
// 攻克 > 进步 > 连续打卡 > 刷题里程碑 > 完成率。
func BuildWeeklyWins(insights []TopicInsight, streak, totalQuestions, consistencyPercent int) []WeeklyWin {
	wins := []WeeklyWin{}

	for _, in := range insights {
		if in.Status == StatusMastered {
			wins = append(wins, WeeklyWin{
				Type:   WinMastered,
				Title:  "Topic mastered!",
				Detail: fmt.Sprintf("%s is at %d%% - it's yours now", in.Topic, in.Accuracy),
				Emoji:  "🏆",
			})
			break
		}
	}

	for _, in := range insights {
		if in.Status == StatusStrong && in.DaysSincePractice <= winImprovedRecentDays {
			wins = append(wins, WeeklyWin{
				Type:   WinImproved,
				Title:  "On the rise",
				Detail: fmt.Sprintf("%s climbed to %d%% this week", in.Topic, in.Accuracy),
				Emoji:  "📈",
			})
			break
		}
	}

	if streak >= winStreakLong {
		wins = append(wins, WeeklyWin{
			Type:   WinStreak,
			Title:  fmt.Sprintf("%d-day streak!", streak),
			Detail: "Consistency is your superpower",
			Emoji:  "🔥",
		})
	} else if streak >= winStreakShort {
		wins = append(wins, WeeklyWin{
			Type:   WinStreak,
			Title:  fmt.Sprintf("%d days strong!", streak),
			Detail: "Keep the momentum going",
			Emoji:  "🔥",
		})
	}

	for _, m := range []int{milestoneLarge, milestoneMedium, milestoneSmall} {
		if totalQuestions >= m {
			wins = append(wins, WeeklyWin{
				Type:   WinMilestone,
				Title:  fmt.Sprintf("%d+ questions solved", m),
				Detail: fmt.Sprintf("%d and counting", totalQuestions),
				Emoji:  "🎯",
			})
			break
		}
	}

	if consistencyPercent >= winConsistencyHigh {
		wins = append(wins, WeeklyWin{
			Type:   WinConsistency,
			Title:  "Locked in",
			Detail: fmt.Sprintf("%d%% of planned tasks done this week", consistencyPercent),
			Emoji:  "💪",
		})
	} else if consistencyPercent >= winConsistencyMid {
		wins = append(wins, WeeklyWin{
			Type:   WinConsistency,
			Title:  "Showing up",
			Detail: fmt.Sprintf("%d%% of planned tasks done this week", consistencyPercent),
			Emoji:  "💪",
		})
	}

	if len(wins) > maxWeeklyWins {
		wins = wins[:maxWeeklyWins]
	}
	return wins
}

// BuildStats 汇总面板数字。所有数字都是当场算出来的，不落库。
func BuildStats(insights []TopicInsight, streak int, signupDate, now time.Time, today DayPlan) Stats {
	s := Stats{Streak: streak}
	sum := 0
	for _, in := range insights {
		sum += in.Accuracy
		switch in.Status {
		case StatusMastered:
			s.Mastered++
		case StatusStrong:
			s.Strong++
		case StatusImproving:
			s.Improving++
		default:
			s.Weak++
		}
	}
	if len(insights) > 0 {
		s.AverageAccuracy = roundDiv(sum, len(insights))
	}

	s.TodayTasks = len(today.Tasks)
	for _, t := range today.Tasks {
		if t.Status == TaskCompleted {
			s.TodayCompleted++
		}
	}

	// 以报名满一年为 100% 的粗略进度，只用于前端展示
	elapsed := now.Sub(signupDate).Hours() / 24
	if elapsed < 0 {
		elapsed = 0
	}
	pct := int(math.Round(elapsed / journeyTotalDays * 100))
	if pct > 100 {
		pct = 100
	}
	s.JourneyPercent = pct
	return s
}

func roundDiv(sum, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
