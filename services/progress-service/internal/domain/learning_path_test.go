package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollupPath(t *testing.T) {
	done := ComputeState(CompletionInputs{CompletedHours: 10, ExpectedHours: 10})
	half := ComputeState(CompletionInputs{CompletedHours: 5, ExpectedHours: 10})
	idle := ComputeState(CompletionInputs{ExpectedHours: 20})
	quizLeft := ComputeState(CompletionInputs{CompletedHours: 10, ExpectedHours: 10, PendingQuestionCount: 1})

	tests := []struct {
		name    string
		courses []CompletionState
		want    PathState
	}{
		{
			name:    "empty path",
			courses: nil,
			want:    PathState{Status: StatusCompleted},
		},
		{
			name:    "nothing started",
			courses: []CompletionState{idle, idle},
			want:    PathState{ExpectedHours: 40, TotalCourses: 2, Status: StatusPending},
		},
		{
			name:    "one course done",
			courses: []CompletionState{done, idle},
			want:    PathState{CompletedHours: 10, ExpectedHours: 30, Percentage: 100.0 / 3, CompletedCourses: 1, TotalCourses: 2, Status: StatusActive},
		},
		{
			name:    "all content done, quiz pending",
			courses: []CompletionState{done, quizLeft},
			want:    PathState{CompletedHours: 20, ExpectedHours: 20, Percentage: 100, CompletedCourses: 1, TotalCourses: 2, Status: StatusActive},
		},
		{
			name:    "all done",
			courses: []CompletionState{done, done},
			want:    PathState{CompletedHours: 20, ExpectedHours: 20, Percentage: 100, CompletedCourses: 2, TotalCourses: 2, Status: StatusCompleted},
		},
		{
			name:    "partial progress",
			courses: []CompletionState{half},
			want:    PathState{CompletedHours: 5, ExpectedHours: 10, Percentage: 50, TotalCourses: 1, Status: StatusActive},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RollupPath(tt.courses)
			assert.InDelta(t, tt.want.Percentage, got.Percentage, 1e-9)
			got.Percentage = tt.want.Percentage
			assert.Equal(t, tt.want, got)
		})
	}
}
