package domain

// CompletionInputs - сырые величины, из которых выводится состояние записи на курс.
type CompletionInputs struct {
	CompletedHours       int
	ExpectedHours        int
	PendingQuestionCount int
}

// CompletionState - производное состояние записи на курс.
type CompletionState struct {
	EnrollmentID         uint    `json:"enrollment_id"`
	CompletedHours       int     `json:"completed_hours"`
	ExpectedHours        int     `json:"expected_hours"`
	Percentage           float64 `json:"percentage"`
	PendingQuestionCount int     `json:"pending_question_count"`
	Status               string  `json:"status"`
}

// ComputeState - единственное место, где из часов и вопросов получается статус.
func ComputeState(in CompletionInputs) CompletionState {
	return CompletionState{
		CompletedHours:       in.CompletedHours,
		ExpectedHours:        in.ExpectedHours,
		Percentage:           Percentage(in.CompletedHours, in.ExpectedHours),
		PendingQuestionCount: in.PendingQuestionCount,
		Status:               ComputeStatus(in.CompletedHours, in.ExpectedHours, in.PendingQuestionCount),
	}
}

// Percentage возвращает 0 для курса без контента.
func Percentage(completed, expected int) float64 {
	if expected <= 0 || completed <= 0 {
		return 0
	}
	if completed >= expected {
		return 100
	}
	return 100 * float64(completed) / float64(expected)
}

// ComputeStatus: Completed проверяется первым. Весь контент пройден, но вопросы
// остались - запись остаётся Active, пока не будут отвечены все вопросы.
func ComputeStatus(completed, expected, pending int) string {
	switch {
	case completed == expected && pending == 0:
		return StatusCompleted
	case completed > 0 && completed < expected:
		return StatusActive
	case completed > 0 && completed == expected:
		return StatusActive
	default:
		return StatusPending
	}
}
