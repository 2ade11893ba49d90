package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func atHour(h int) time.Time {
	return time.Date(2026, 3, 10, h, 0, 0, 0, time.UTC)
}

func TestNarrativePrecedence(t *testing.T) {
	cases := []struct {
		name       string
		daysToExam int
		streak     int
		accuracy   int
		weakCount  int
		contains   string
	}{
		{"exam crunch beats streak", 10, 20, 90, 0, "10 days to go"},
		{"revision mode window", 25, 20, 90, 0, "25 days left"},
		{"long streak", 100, 12, 90, 0, "12-day streak"},
		{"short streak", 100, 6, 90, 0, "6 days in a row"},
		{"high accuracy", 100, 2, 85, 0, "85%"},
		{"decent accuracy", 100, 0, 65, 0, "65%"},
		{"many weak topics", 100, 0, 40, 8, "8 topics need attention"},
		{"came back", 100, 1, 40, 2, "showed up yesterday"},
		{"fresh start", 100, 0, 40, 2, "fresh start"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Narrative("Asha", tc.daysToExam, tc.streak, tc.accuracy, tc.weakCount, atHour(9))
			assert.Contains(t, got, tc.contains)
			assert.Contains(t, got, "Asha")
		})
	}
}

func TestNarrativeSalutation(t *testing.T) {
	assert.Contains(t, Narrative("A", 100, 0, 0, 0, atHour(8)), "Good morning")
	assert.Contains(t, Narrative("A", 100, 0, 0, 0, atHour(13)), "Good afternoon")
	assert.Contains(t, Narrative("A", 100, 0, 0, 0, atHour(19)), "Good evening")
	assert.Contains(t, Narrative("A", 100, 0, 0, 0, atHour(23)), "midnight oil")
}

func TestNarrativeNameFallback(t *testing.T) {
	assert.Contains(t, Narrative("", 100, 0, 0, 0, atHour(9)), "there")
}
