package usecase

import (
	"context"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"

	"github.com/go-playground/validator/v10"
)

// ComplianceCache - кеш снимков compliance. Реализация в infrastructure/cache.
//
// Каждый Invalidate увеличивает поколение пользователя. Set принимает поколение,
// прочитанное до расчёта снимка, и молча ничего не пишет, если с тех пор
// был Invalidate: снимок, посчитанный до коммита, не переживает сброс.
type ComplianceCache interface {
	Get(ctx context.Context, userID uint) (*domain.ComplianceSnapshot, error)
	Generation(ctx context.Context, userID uint) (int64, error)
	Set(ctx context.Context, snap *domain.ComplianceSnapshot, gen int64) error
	Invalidate(ctx context.Context, userID uint) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, uint) (*domain.ComplianceSnapshot, error) { return nil, nil }
func (noopCache) Generation(context.Context, uint) (int64, error)               { return 0, nil }
func (noopCache) Set(context.Context, *domain.ComplianceSnapshot, int64) error  { return nil }
func (noopCache) Invalidate(context.Context, uint) error                        { return nil }

func cacheOrNoop(c ComplianceCache) ComplianceCache {
	if c == nil {
		return noopCache{}
	}
	return c
}

var validate = validator.New()

// evaluate пересчитывает состояние записи внутри переданного Store (обычно транзакции).
func evaluate(ctx context.Context, store *repository.Store, e *domain.Enrollment) (domain.CompletionState, error) {
	expected, err := store.Catalog.ExpectedHours(ctx, e.CourseID)
	if err != nil {
		return domain.CompletionState{}, err
	}
	completed, err := store.Progress.CompletedHours(ctx, e.ID, e.CourseID)
	if err != nil {
		return domain.CompletionState{}, err
	}
	pending, err := store.Quizzes.PendingQuestions(ctx, e.ID, e.CourseID)
	if err != nil {
		return domain.CompletionState{}, err
	}

	state := domain.ComputeState(domain.CompletionInputs{
		CompletedHours:       completed,
		ExpectedHours:        expected,
		PendingQuestionCount: pending,
	})
	state.EnrollmentID = e.ID
	return state, nil
}

// settle записывает проекцию статуса (записи и путей с этим курсом) и, если
// запись завершена, выдаёт сертификат. Возвращает true, только если сертификат
// создан именно этим вызовом.
func settle(ctx context.Context, store *repository.Store, e *domain.Enrollment, state domain.CompletionState, now time.Time) (bool, error) {
	if err := store.Enrollments.SyncStatus(ctx, e.ID, state.Status); err != nil {
		return false, err
	}
	if err := syncPaths(ctx, store, e.UserID, e.CourseID); err != nil {
		return false, err
	}
	if state.Status != domain.StatusCompleted {
		return false, nil
	}
	return store.Certificates.Issue(ctx, e.UserID, e.CourseID, now)
}
