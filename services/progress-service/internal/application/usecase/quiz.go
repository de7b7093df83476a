package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"
)

// Сколько раз перевыбирать attempt_no при конкурентной вставке.
const maxAttemptRetries = 5

type QuizUseCase struct {
	store *repository.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewQuizUseCase(store *repository.Store, log *logger.Logger) *QuizUseCase {
	return &QuizUseCase{
		store: store,
		log:   log.With("component", "QuizUseCase"),
		now:   time.Now,
	}
}

type SubmitInput struct {
	QuestionID     uint   `validate:"required"`
	EnrollmentID   uint   `validate:"required"`
	SelectedOption string `validate:"required"`
	Source         string `validate:"required,max=64"`
}

// Submit дописывает новую попытку. Статус записи и сертификаты здесь не
// пересчитываются, для этого есть ProgressUseCase.CheckCompletion.
func (uc *QuizUseCase) Submit(ctx context.Context, actor domain.Actor, in SubmitInput) (*domain.QuizCompletion, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	q, err := uc.store.Catalog.GetQuestion(ctx, in.QuestionID)
	if err != nil {
		return nil, err
	}
	e, err := uc.store.Enrollments.GetByID(ctx, in.EnrollmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(e.UserID) {
		return nil, domain.ErrOwnershipMismatch
	}
	courseID, err := uc.store.Catalog.QuestionCourseID(ctx, q)
	if err != nil {
		return nil, err
	}
	if courseID != e.CourseID {
		return nil, domain.ErrOwnershipMismatch
	}

	for attempt := 0; attempt < maxAttemptRetries; attempt++ {
		var record *domain.QuizCompletion
		err = uc.store.Transaction(ctx, func(tx *repository.Store) error {
			prior, err := tx.Quizzes.CountAttempts(ctx, q.ID, e.ID)
			if err != nil {
				return err
			}
			record = &domain.QuizCompletion{
				QuestionID:      q.ID,
				EnrollmentID:    e.ID,
				AttemptNo:       prior + 1,
				CorrectAnswer:   in.SelectedOption == q.CorrectAnswer,
				Source:          in.Source,
				AttemptDatetime: uc.now(),
			}
			return tx.Quizzes.Create(ctx, record)
		})
		if err == nil {
			uc.log.Debug("quiz answer recorded",
				"question_id", q.ID,
				"enrollment_id", e.ID,
				"attempt_no", record.AttemptNo,
				"correct", record.CorrectAnswer,
			)
			return record, nil
		}
		if !errors.Is(err, domain.ErrAttemptConflict) {
			return nil, err
		}
		uc.log.Debug("attempt number taken, retrying", "question_id", q.ID, "enrollment_id", e.ID)
	}
	return nil, err
}

func (uc *QuizUseCase) ListAttempts(ctx context.Context, actor domain.Actor, questionID, enrollmentID uint) ([]domain.QuizCompletion, error) {
	e, err := uc.store.Enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(e.UserID) {
		return nil, domain.ErrOwnershipMismatch
	}
	return uc.store.Quizzes.ListAttempts(ctx, questionID, enrollmentID)
}
