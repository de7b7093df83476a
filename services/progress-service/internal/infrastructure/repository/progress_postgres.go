package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// MarkCompleted - идемпотентный upsert по (enrollment_id, content_id).
// Повторная отметка только обновляет completed_at, дубликатов не бывает:
// уникальный индекс здесь и есть точка контроля.
func (r *ProgressRepository) MarkCompleted(ctx context.Context, enrollmentID uint, ref *domain.ContentRef, at time.Time) error {
	item := &domain.Progress{
		EnrollmentID: enrollmentID,
		ContentID:    ref.ContentID,
		ChapterID:    ref.ChapterID,
		CompletedAt:  at,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "enrollment_id"}, {Name: "content_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed_at"}),
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// CompletedHours - сумма длительностей пройденного контента, который
// действительно принадлежит курсу записи.
func (r *ProgressRepository) CompletedHours(ctx context.Context, enrollmentID, courseID uint) (int, error) {
	var hours int
	err := r.db.WithContext(ctx).
		Table("progresses").
		Select("COALESCE(SUM(contents.expected_time_to_complete), 0)").
		Joins("JOIN contents ON contents.id = progresses.content_id").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id").
		Where("progresses.enrollment_id = ? AND chapters.course_id = ?", enrollmentID, courseID).
		Scan(&hours).Error
	if err != nil {
		return 0, fmt.Errorf("completed hours: %w", err)
	}
	return hours, nil
}

// RemainingContents - сколько единиц контента курса ещё не отмечено.
func (r *ProgressRepository) RemainingContents(ctx context.Context, enrollmentID, courseID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("contents").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id").
		Joins("LEFT JOIN progresses ON progresses.content_id = contents.id AND progresses.enrollment_id = ?", enrollmentID).
		Where("chapters.course_id = ? AND progresses.id IS NULL", courseID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("remaining contents: %w", err)
	}
	return int(count), nil
}

// PendingChapters - главы, в которых остался хотя бы один непройденный контент.
func (r *ProgressRepository) PendingChapters(ctx context.Context, enrollmentID, courseID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("contents").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id").
		Joins("LEFT JOIN progresses ON progresses.content_id = contents.id AND progresses.enrollment_id = ?", enrollmentID).
		Where("chapters.course_id = ? AND progresses.id IS NULL", courseID).
		Distinct("contents.chapter_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("pending chapters: %w", err)
	}
	return int(count), nil
}

// CompletedContentIDs - пройденный пользователем контент одной главы.
func (r *ProgressRepository) CompletedContentIDs(ctx context.Context, userID, chapterID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Table("progresses").
		Joins("JOIN enrollments ON enrollments.id = progresses.enrollment_id").
		Where("enrollments.user_id = ? AND progresses.chapter_id = ?", userID, chapterID).
		Order("progresses.content_id asc").
		Pluck("progresses.content_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("completed content ids: %w", err)
	}
	return ids, nil
}

// CategoryHours - часы в разрезе категории курса.
type CategoryHours struct {
	Category string
	Hours    int
}

// CompletedHoursByCategory - пройденные часы пользователя по всем его записям.
func (r *ProgressRepository) CompletedHoursByCategory(ctx context.Context, userID uint) ([]CategoryHours, error) {
	var rows []CategoryHours
	err := r.db.WithContext(ctx).
		Table("progresses").
		Select("courses.category AS category, COALESCE(SUM(contents.expected_time_to_complete), 0) AS hours").
		Joins("JOIN enrollments ON enrollments.id = progresses.enrollment_id").
		Joins("JOIN contents ON contents.id = progresses.content_id").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id AND chapters.course_id = enrollments.course_id").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.user_id = ?", userID).
		Group("courses.category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("completed hours by category: %w", err)
	}
	return rows, nil
}
