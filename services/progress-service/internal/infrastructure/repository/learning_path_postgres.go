package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LearningPathRepository struct {
	db *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{db: db}
}

// Create сохраняет путь и связи на курсы. Сами курсы принадлежат каталогу
// и не перезаписываются.
func (r *LearningPathRepository) Create(ctx context.Context, p *domain.LearningPath) error {
	if err := r.db.WithContext(ctx).Omit("Courses.*").Create(p).Error; err != nil {
		return fmt.Errorf("create learning path: %w", err)
	}
	return nil
}

func (r *LearningPathRepository) GetByID(ctx context.Context, id uint) (*domain.LearningPath, error) {
	var p domain.LearningPath
	err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("courses.id") }).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLearningPathNotFound
		}
		return nil, fmt.Errorf("get learning path: %w", err)
	}
	return &p, nil
}

func (r *LearningPathRepository) List(ctx context.Context) ([]domain.LearningPath, error) {
	var list []domain.LearningPath
	err := r.db.WithContext(ctx).
		Preload("Courses", func(db *gorm.DB) *gorm.DB { return db.Order("courses.id") }).
		Order("id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list learning paths: %w", err)
	}
	return list, nil
}

// CourseIDs - курсы пути по возрастанию id.
func (r *LearningPathRepository) CourseIDs(ctx context.Context, pathID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Table("learning_path_courses").
		Where("learning_path_id = ?", pathID).
		Order("course_id").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("learning path courses: %w", err)
	}
	return ids, nil
}

// Enroll вставляет запись на путь. Если пользователь уже записан, обновляется
// только срок, и возвращается false.
func (r *LearningPathRepository) Enroll(ctx context.Context, e *domain.LearningPathEnrollment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "learning_path_id"}},
			DoNothing: true,
		}).
		Create(e)
	if result.Error != nil {
		return false, fmt.Errorf("create learning path enrollment: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).Model(&domain.LearningPathEnrollment{}).
		Where("user_id = ? AND learning_path_id = ?", e.UserID, e.LearningPathID).
		Update("due_date", e.DueDate).Error
	if err != nil {
		return false, fmt.Errorf("update learning path due date: %w", err)
	}
	return false, nil
}

func (r *LearningPathRepository) GetEnrollment(ctx context.Context, userID, pathID uint) (*domain.LearningPathEnrollment, error) {
	var e domain.LearningPathEnrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND learning_path_id = ?", userID, pathID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPathEnrollmentNotFound
		}
		return nil, fmt.Errorf("get learning path enrollment: %w", err)
	}
	return &e, nil
}

func (r *LearningPathRepository) ListEnrollments(ctx context.Context, userID uint) ([]domain.LearningPathEnrollment, error) {
	var list []domain.LearningPathEnrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("learning_path_id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list learning path enrollments: %w", err)
	}
	return list, nil
}

// LockEnrollmentsWithCourse блокирует записи пользователя на пути, в которые
// входит курс. Порядок по id пути один для всех транзакций.
func (r *LearningPathRepository) LockEnrollmentsWithCourse(ctx context.Context, userID, courseID uint) ([]domain.LearningPathEnrollment, error) {
	var list []domain.LearningPathEnrollment
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND learning_path_id IN (?)", userID,
			r.db.Session(&gorm.Session{NewDB: true}).
				Table("learning_path_courses").
				Select("learning_path_id").
				Where("course_id = ?", courseID),
		).
		Order("learning_path_id").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("lock learning path enrollments: %w", err)
	}
	return list, nil
}

// SyncProgress записывает проекцию свёртки пути.
func (r *LearningPathRepository) SyncProgress(ctx context.Context, id uint, st domain.PathState) error {
	return r.db.WithContext(ctx).Model(&domain.LearningPathEnrollment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                st.Status,
			"completion_percentage": st.Percentage,
		}).Error
}
