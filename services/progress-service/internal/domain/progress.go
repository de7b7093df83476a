package domain

import "time"

// Progress - отметка о прохождении контента. Нет записи - не пройден.
type Progress struct {
	ID           uint      `gorm:"primaryKey"`
	EnrollmentID uint      `gorm:"not null;uniqueIndex:idx_progress_enrollment_content"`
	ContentID    uint      `gorm:"not null;uniqueIndex:idx_progress_enrollment_content"`
	ChapterID    uint      `gorm:"index"`
	CompletedAt  time.Time `gorm:"not null"`
}

// QuizCompletion - одна попытка ответа. Таблица только дописывается.
type QuizCompletion struct {
	ID              uint      `gorm:"primaryKey"`
	QuestionID      uint      `gorm:"not null;uniqueIndex:idx_quiz_attempt"`
	EnrollmentID    uint      `gorm:"not null;uniqueIndex:idx_quiz_attempt;index"`
	AttemptNo       int       `gorm:"not null;uniqueIndex:idx_quiz_attempt"`
	CorrectAnswer   bool      `gorm:"not null"`
	Source          string    `gorm:"not null"`
	AttemptDatetime time.Time `gorm:"not null"`
}

// Certificate выдаётся один раз на пару (user, course).
type Certificate struct {
	ID                uint      `gorm:"primaryKey"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CourseID          uint      `gorm:"not null;uniqueIndex:idx_certificate_user_course"`
	CertificateNumber string    `gorm:"uniqueIndex;not null"`
	IssueDate         time.Time `gorm:"not null"`
}

func (Progress) TableName() string {
	return "progresses"
}
