package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

func (r *EnrollmentRepository) GetByID(ctx context.Context, id uint) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return &e, nil
}

// GetForUpdate блокирует строку записи до конца транзакции, чтобы параллельные
// отметки одной записи видели прогресс друг друга. В sqlite блокировка не нужна:
// транзакции там и так сериализуются.
func (r *EnrollmentRepository) GetForUpdate(ctx context.Context, id uint) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("lock enrollment: %w", err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*domain.Enrollment, error) {
	var e domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("get enrollment: %w", err)
	}
	return &e, nil
}

// Create вставляет запись; если пара (user, course) уже есть, возвращает false.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(e)
	if result.Error != nil {
		return false, fmt.Errorf("create enrollment: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Enrollment, error) {
	var list []domain.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("enroll_date desc, id desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return list, nil
}

// SyncStatus записывает вычисленный статус. Сам по себе статус не меняется.
func (r *EnrollmentRepository) SyncStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("id = ? AND status <> ?", id, status).
		Update("status", status).Error
}

// EnrolledHoursByCategory - плановые часы всех курсов, на которые записан пользователь.
func (r *EnrollmentRepository) EnrolledHoursByCategory(ctx context.Context, userID uint) ([]CategoryHours, error) {
	var rows []CategoryHours
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("courses.category AS category, COALESCE(SUM(contents.expected_time_to_complete), 0) AS hours").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Joins("JOIN chapters ON chapters.course_id = courses.id").
		Joins("JOIN contents ON contents.chapter_id = chapters.id").
		Where("enrollments.user_id = ?", userID).
		Group("courses.category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("enrolled hours by category: %w", err)
	}
	return rows, nil
}

// CourseCounts - число записей на курс и число завершённых по проекции статуса.
func (r *EnrollmentRepository) CourseCounts(ctx context.Context, courseID uint) (enrolled, completed int64, err error) {
	var row struct {
		Enrolled  int64
		Completed int64
	}
	err = r.db.WithContext(ctx).
		Model(&domain.Enrollment{}).
		Select("COUNT(*) AS enrolled, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed", domain.StatusCompleted).
		Where("course_id = ?", courseID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("course enrollment counts: %w", err)
	}
	return row.Enrolled, row.Completed, nil
}
