package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateTime(t *testing.T) {
	cases := []struct {
		name       string
		daysToExam int
		want       TimeAllocation
	}{
		{"far out", 300, TimeAllocation{Study: 0.65, Revision: 0.20, Practice: 0.15}},
		{"bucket edge 181", 181, TimeAllocation{Study: 0.65, Revision: 0.20, Practice: 0.15}},
		{"bucket edge 180", 180, TimeAllocation{Study: 0.55, Revision: 0.25, Practice: 0.20}},
		{"mid range", 60, TimeAllocation{Study: 0.40, Revision: 0.35, Practice: 0.25}},
		{"final month", 20, TimeAllocation{Study: 0.25, Revision: 0.40, Practice: 0.35}},
		{"last stretch", 10, TimeAllocation{Study: 0.15, Revision: 0.40, Practice: 0.45}},
		{"exam day", 0, TimeAllocation{Study: 0.15, Revision: 0.40, Practice: 0.45}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AllocateTime(tc.daysToExam)
			assert.Equal(t, tc.want, got)
			assert.InDelta(t, 1.0, got.Study+got.Revision+got.Practice, 1e-9)
		})
	}
}
