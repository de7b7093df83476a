package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"

	"gorm.io/datatypes"
)

type ProgressUseCase struct {
	store   *repository.Store
	cache   ComplianceCache
	log     *logger.Logger
	dueDays int
	now     func() time.Time
}

func NewProgressUseCase(store *repository.Store, cache ComplianceCache, log *logger.Logger, dueDays int) *ProgressUseCase {
	return &ProgressUseCase{
		store:   store,
		cache:   cacheOrNoop(cache),
		log:     log.With("component", "ProgressUseCase"),
		dueDays: dueDays,
		now:     time.Now,
	}
}

type MarkDoneResult struct {
	EnrollmentID      uint    `json:"enrollment_id"`
	Status            string  `json:"status"`
	PendingQuizzes    int     `json:"pending_quizzes"`
	RemainingContents int     `json:"remaining_contents"`
	CompletedHours    int     `json:"completed_hours"`
	ExpectedHours     int     `json:"expected_hours"`
	Percentage        float64 `json:"percentage"`
	CertificateIssued bool    `json:"certificate_issued"`
	Message           string  `json:"message"`
}

// MarkDone отмечает контент пройденным и в той же транзакции решает вопрос
// о сертификате. Повторный вызов для того же контента ничего не удваивает.
func (uc *ProgressUseCase) MarkDone(ctx context.Context, actor domain.Actor, contentID, enrollmentID uint) (*MarkDoneResult, error) {
	ref, err := uc.store.Catalog.GetContentRef(ctx, contentID)
	if err != nil {
		return nil, err
	}

	var (
		res    MarkDoneResult
		userID uint
	)
	err = uc.store.Transaction(ctx, func(tx *repository.Store) error {
		e, err := tx.Enrollments.GetForUpdate(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if !actor.CanActFor(e.UserID) || ref.CourseID != e.CourseID {
			return domain.ErrOwnershipMismatch
		}
		userID = e.UserID

		now := uc.now()
		if err := tx.Progress.MarkCompleted(ctx, e.ID, ref, now); err != nil {
			return err
		}

		state, err := evaluate(ctx, tx, e)
		if err != nil {
			return err
		}
		remaining, err := tx.Progress.RemainingContents(ctx, e.ID, e.CourseID)
		if err != nil {
			return err
		}
		issued, err := settle(ctx, tx, e, state, now)
		if err != nil {
			return err
		}

		res = MarkDoneResult{
			EnrollmentID:      e.ID,
			Status:            state.Status,
			PendingQuizzes:    state.PendingQuestionCount,
			RemainingContents: remaining,
			CompletedHours:    state.CompletedHours,
			ExpectedHours:     state.ExpectedHours,
			Percentage:        state.Percentage,
			CertificateIssued: issued,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Часы пользователя изменились - снимок compliance больше не актуален
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn("failed to invalidate compliance cache", "user_id", userID, "error", err)
	}

	if res.Status == domain.StatusCompleted {
		res.Message = "Course is completed and certificate is issued"
	} else {
		res.Message = "Progress updated successfully"
	}
	uc.log.Debug("content marked as done",
		"content_id", contentID,
		"enrollment_id", enrollmentID,
		"status", res.Status,
		"certificate_issued", res.CertificateIssued,
	)
	return &res, nil
}

type CompletionCheckResult struct {
	domain.CompletionState
	CertificateIssued bool `json:"certificate_issued"`
}

// CheckCompletion - повторная проверка завершения после ответов на вопросы.
// Сама отправка ответа статус не трогает, сертификат выдаётся здесь.
func (uc *ProgressUseCase) CheckCompletion(ctx context.Context, actor domain.Actor, enrollmentID uint) (*CompletionCheckResult, error) {
	var res CompletionCheckResult
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		e, err := tx.Enrollments.GetForUpdate(ctx, enrollmentID)
		if err != nil {
			return err
		}
		if !actor.CanActFor(e.UserID) {
			return domain.ErrOwnershipMismatch
		}

		state, err := evaluate(ctx, tx, e)
		if err != nil {
			return err
		}
		issued, err := settle(ctx, tx, e, state, uc.now())
		if err != nil {
			return err
		}
		res = CompletionCheckResult{CompletionState: state, CertificateIssued: issued}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ComputeState - чистое чтение: ничего не пишет, даже проекцию статуса.
func (uc *ProgressUseCase) ComputeState(ctx context.Context, actor domain.Actor, enrollmentID uint) (*domain.CompletionState, error) {
	e, err := uc.store.Enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(e.UserID) {
		return nil, domain.ErrOwnershipMismatch
	}
	state, err := evaluate(ctx, uc.store, e)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

type EnrollmentDetail struct {
	domain.CompletionState
	UserID              uint      `json:"user_id"`
	CourseID            uint      `json:"course_id"`
	EnrollDate          time.Time `json:"enroll_date"`
	DueDate             time.Time `json:"due_date"`
	Year                int       `json:"year"`
	RemainingContents   int       `json:"remaining_contents"`
	PendingChapterCount int       `json:"pending_chapter_count"`
}

func (uc *ProgressUseCase) EnrollmentDetail(ctx context.Context, actor domain.Actor, enrollmentID uint) (*EnrollmentDetail, error) {
	e, err := uc.store.Enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActFor(e.UserID) {
		return nil, domain.ErrOwnershipMismatch
	}
	return uc.detail(ctx, e)
}

func (uc *ProgressUseCase) ListEnrollments(ctx context.Context, userID uint) ([]*EnrollmentDetail, error) {
	list, err := uc.store.Enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*EnrollmentDetail, 0, len(list))
	for i := range list {
		d, err := uc.detail(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (uc *ProgressUseCase) detail(ctx context.Context, e *domain.Enrollment) (*EnrollmentDetail, error) {
	state, err := evaluate(ctx, uc.store, e)
	if err != nil {
		return nil, err
	}
	remaining, err := uc.store.Progress.RemainingContents(ctx, e.ID, e.CourseID)
	if err != nil {
		return nil, err
	}
	chapters, err := uc.store.Progress.PendingChapters(ctx, e.ID, e.CourseID)
	if err != nil {
		return nil, err
	}
	return &EnrollmentDetail{
		CompletionState:     state,
		UserID:              e.UserID,
		CourseID:            e.CourseID,
		EnrollDate:          e.EnrollDate,
		DueDate:             time.Time(e.DueDate),
		Year:                e.Year,
		RemainingContents:   remaining,
		PendingChapterCount: chapters,
	}, nil
}

func (uc *ProgressUseCase) CompletedContentIDs(ctx context.Context, userID, chapterID uint) ([]uint, error) {
	return uc.store.Progress.CompletedContentIDs(ctx, userID, chapterID)
}

type EnrollResult struct {
	CourseID uint   `json:"course_id"`
	Enrolled []uint `json:"user_ids"`
	Skipped  []uint `json:"skipped_user_ids"`
	Message  string `json:"message"`
}

// Enroll записывает пользователей на одобренный курс, уже записанных пропускает.
func (uc *ProgressUseCase) Enroll(ctx context.Context, courseID uint, userIDs []uint) (*EnrollResult, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%w: user_ids is empty", domain.ErrInvalidArgument)
	}
	course, err := uc.store.Catalog.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.Status != domain.CourseStatusApproved {
		return nil, domain.ErrCourseNotApproved
	}

	res := &EnrollResult{CourseID: courseID, Enrolled: []uint{}, Skipped: []uint{}}
	now := uc.now()
	err = uc.store.Transaction(ctx, func(tx *repository.Store) error {
		for _, userID := range userIDs {
			e := &domain.Enrollment{
				UserID:     userID,
				CourseID:   courseID,
				EnrollDate: now,
				DueDate:    dueDate(now, uc.dueDays),
				Year:       now.Year(),
				Status:     domain.StatusPending,
			}
			created, err := tx.Enrollments.Create(ctx, e)
			if err != nil {
				return err
			}
			if created {
				res.Enrolled = append(res.Enrolled, userID)
			} else {
				res.Skipped = append(res.Skipped, userID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Плановые часы новых записей входят в снимок compliance
	for _, userID := range res.Enrolled {
		if err := uc.cache.Invalidate(ctx, userID); err != nil {
			uc.log.Warn("failed to invalidate compliance cache", "user_id", userID, "error", err)
		}
	}

	if len(res.Enrolled) == 0 {
		res.Message = "All users are already enrolled"
	} else {
		res.Message = "Users successfully enrolled"
	}
	uc.log.Info("users enrolled", "course_id", courseID, "enrolled", len(res.Enrolled), "skipped", len(res.Skipped))
	return res, nil
}

type CourseStats struct {
	CourseID               uint  `json:"course_id"`
	EnrolledStudentsCount  int64 `json:"enrolled_students_count"`
	CompletedStudentsCount int64 `json:"completed_students_count"`
}

// CourseStats считает записи на курс по сохранённой проекции статуса.
func (uc *ProgressUseCase) CourseStats(ctx context.Context, courseID uint) (*CourseStats, error) {
	if _, err := uc.store.Catalog.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	enrolled, completed, err := uc.store.Enrollments.CourseCounts(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return &CourseStats{CourseID: courseID, EnrolledStudentsCount: enrolled, CompletedStudentsCount: completed}, nil
}

func dueDate(from time.Time, days int) datatypes.Date {
	return datatypes.Date(from.AddDate(0, 0, days))
}
