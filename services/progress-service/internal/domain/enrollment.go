package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "Pending"
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

// Enrollment - запись пользователя на курс, одна на пару (user, course).
// Status - проекция вычисленного состояния, выставляется только движком.
type Enrollment struct {
	ID         uint          `gorm:"primaryKey"`
	UserID     uint          `gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID   uint          `gorm:"not null;uniqueIndex:idx_enrollment_user_course;index"`
	EnrollDate time.Time     `gorm:"not null"`
	DueDate    datatypes.Date
	Year       int    `gorm:"index"`
	Status     string `gorm:"default:'Pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
