package domain

import (
	"time"

	"gorm.io/datatypes"
)

// LearningPath - набор курсов, который назначается целиком.
// Ожидаемое время пути - сумма ожидаемого времени его курсов.
type LearningPath struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Entity string

	Courses []Course `gorm:"many2many:learning_path_courses;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LearningPathEnrollment - запись пользователя на путь, одна на пару (user, path).
// Status и CompletionPercentage - проекция свёртки, их пишет только движок.
type LearningPathEnrollment struct {
	ID                   uint      `gorm:"primaryKey"`
	UserID               uint      `gorm:"not null;uniqueIndex:idx_lp_enrollment_user_path"`
	LearningPathID       uint      `gorm:"not null;uniqueIndex:idx_lp_enrollment_user_path;index"`
	EnrollDate           time.Time `gorm:"not null"`
	DueDate              datatypes.Date
	Year                 int     `gorm:"index"`
	Status               string  `gorm:"default:'Pending'"`
	CompletionPercentage float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PathState - свёртка состояний курсов пути для одного пользователя.
type PathState struct {
	CompletedHours   int     `json:"completed_hours"`
	ExpectedHours    int     `json:"expected_hours"`
	Percentage       float64 `json:"completion_percentage"`
	CompletedCourses int     `json:"completed_courses"`
	TotalCourses     int     `json:"total_courses"`
	Status           string  `json:"status"`
}

// RollupPath сводит состояния курсов. Путь завершён, когда завершён каждый курс;
// начат, когда хоть один курс начат или завершён. Пустой путь, как и пустой курс,
// считается завершённым.
func RollupPath(courses []CompletionState) PathState {
	st := PathState{TotalCourses: len(courses)}
	started := false
	for _, c := range courses {
		st.CompletedHours += c.CompletedHours
		st.ExpectedHours += c.ExpectedHours
		switch c.Status {
		case StatusCompleted:
			st.CompletedCourses++
			started = true
		case StatusActive:
			started = true
		}
	}
	st.Percentage = Percentage(st.CompletedHours, st.ExpectedHours)

	switch {
	case st.CompletedCourses == st.TotalCourses:
		st.Status = StatusCompleted
	case started || st.CompletedHours > 0:
		st.Status = StatusActive
	default:
		st.Status = StatusPending
	}
	return st
}
