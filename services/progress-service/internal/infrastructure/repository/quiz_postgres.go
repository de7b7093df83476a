package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
)

type QuizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

func (r *QuizRepository) CountAttempts(ctx context.Context, questionID, enrollmentID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.QuizCompletion{}).
		Where("question_id = ? AND enrollment_id = ?", questionID, enrollmentID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return int(count), nil
}

// Create только дописывает. Коллизия attempt_no отдаётся как
// domain.ErrAttemptConflict, повтор делает вызывающий.
func (r *QuizRepository) Create(ctx context.Context, qc *domain.QuizCompletion) error {
	err := r.db.WithContext(ctx).Create(qc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrAttemptConflict
		}
		return fmt.Errorf("create quiz completion: %w", err)
	}
	return nil
}

func (r *QuizRepository) ListAttempts(ctx context.Context, questionID, enrollmentID uint) ([]domain.QuizCompletion, error) {
	var list []domain.QuizCompletion
	err := r.db.WithContext(ctx).
		Where("question_id = ? AND enrollment_id = ?", questionID, enrollmentID).
		Order("attempt_no asc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return list, nil
}

// PendingQuestions - вопросы курса (и его глав) без единого верного ответа в этой записи.
func (r *QuizRepository) PendingQuestions(ctx context.Context, enrollmentID, courseID uint) (int, error) {
	var count int64
	correct := r.db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.QuizCompletion{}).
		Select("question_id").
		Where("enrollment_id = ? AND correct_answer = ?", enrollmentID, true)

	err := courseQuestions(r.db.WithContext(ctx), courseID).
		Where("questions.id NOT IN (?)", correct).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("pending questions: %w", err)
	}
	return int(count), nil
}
