package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"

	"gorm.io/datatypes"
)

type LearningPathUseCase struct {
	store   *repository.Store
	cache   ComplianceCache
	log     *logger.Logger
	dueDays int
	now     func() time.Time
}

func NewLearningPathUseCase(store *repository.Store, cache ComplianceCache, log *logger.Logger, dueDays int) *LearningPathUseCase {
	return &LearningPathUseCase{
		store:   store,
		cache:   cacheOrNoop(cache),
		log:     log.With("component", "LearningPathUseCase"),
		dueDays: dueDays,
		now:     time.Now,
	}
}

type LearningPathInput struct {
	Name      string `validate:"required"`
	Entity    string
	CourseIDs []uint `validate:"required,min=1,dive,gt=0"`
}

type LearningPathView struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Entity        string `json:"entity"`
	CourseIDs     []uint `json:"course_ids"`
	ExpectedHours int    `json:"expected_time_to_complete"`
}

// Create собирает путь из существующих курсов. Только для админа.
func (uc *LearningPathUseCase) Create(ctx context.Context, actor domain.Actor, in LearningPathInput) (*LearningPathView, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}

	p := &domain.LearningPath{Name: in.Name, Entity: in.Entity}
	seen := make(map[uint]bool, len(in.CourseIDs))
	for _, id := range in.CourseIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		course, err := uc.store.Catalog.GetCourse(ctx, id)
		if err != nil {
			return nil, err
		}
		p.Courses = append(p.Courses, *course)
	}

	if err := uc.store.LearningPaths.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.log.Info("learning path created", "learning_path_id", p.ID, "courses", len(p.Courses))
	return uc.view(ctx, p)
}

func (uc *LearningPathUseCase) Get(ctx context.Context, id uint) (*LearningPathView, error) {
	p, err := uc.store.LearningPaths.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, p)
}

func (uc *LearningPathUseCase) List(ctx context.Context) ([]*LearningPathView, error) {
	list, err := uc.store.LearningPaths.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*LearningPathView, 0, len(list))
	for i := range list {
		v, err := uc.view(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// view: ожидаемое время пути всегда пересчитывается из каталога.
func (uc *LearningPathUseCase) view(ctx context.Context, p *domain.LearningPath) (*LearningPathView, error) {
	v := &LearningPathView{ID: p.ID, Name: p.Name, Entity: p.Entity, CourseIDs: make([]uint, 0, len(p.Courses))}
	for _, c := range p.Courses {
		hours, err := uc.store.Catalog.ExpectedHours(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		v.CourseIDs = append(v.CourseIDs, c.ID)
		v.ExpectedHours += hours
	}
	return v, nil
}

type PathEnrollResult struct {
	LearningPathID    uint   `json:"learning_path_id"`
	Enrolled          []uint `json:"user_ids"`
	Updated           []uint `json:"updated_user_ids"`
	CourseEnrollments int    `json:"course_enrollments"`
	Message           string `json:"message"`
}

// EnrollUsers записывает пользователей на путь и на каждый его курс.
// Повторная запись на путь только обновляет срок; уже существующие записи
// на курсы не трогаются. Нулевой due означает срок по умолчанию.
func (uc *LearningPathUseCase) EnrollUsers(ctx context.Context, pathID uint, userIDs []uint, due time.Time) (*PathEnrollResult, error) {
	if len(userIDs) == 0 {
		return nil, fmt.Errorf("%w: user_ids is empty", domain.ErrInvalidArgument)
	}
	p, err := uc.store.LearningPaths.GetByID(ctx, pathID)
	if err != nil {
		return nil, err
	}
	for _, c := range p.Courses {
		if c.Status != domain.CourseStatusApproved {
			return nil, fmt.Errorf("%w: course %d", domain.ErrCourseNotApproved, c.ID)
		}
	}

	now := uc.now()
	deadline := dueDate(now, uc.dueDays)
	if !due.IsZero() {
		deadline = datatypes.Date(due)
	}

	res := &PathEnrollResult{LearningPathID: pathID, Enrolled: []uint{}, Updated: []uint{}}
	var touched []uint
	err = uc.store.Transaction(ctx, func(tx *repository.Store) error {
		for _, userID := range userIDs {
			created, err := tx.LearningPaths.Enroll(ctx, &domain.LearningPathEnrollment{
				UserID:         userID,
				LearningPathID: pathID,
				EnrollDate:     now,
				DueDate:        deadline,
				Year:           now.Year(),
				Status:         domain.StatusPending,
			})
			if err != nil {
				return err
			}
			if created {
				res.Enrolled = append(res.Enrolled, userID)
			} else {
				res.Updated = append(res.Updated, userID)
			}

			newCourses := 0
			for _, c := range p.Courses {
				ok, err := tx.Enrollments.Create(ctx, &domain.Enrollment{
					UserID:     userID,
					CourseID:   c.ID,
					EnrollDate: now,
					DueDate:    deadline,
					Year:       now.Year(),
					Status:     domain.StatusPending,
				})
				if err != nil {
					return err
				}
				if ok {
					newCourses++
				}
			}
			res.CourseEnrollments += newCourses
			if newCourses > 0 {
				touched = append(touched, userID)
			}

			// Курсы пути могли быть пройдены раньше записи на сам путь
			pe, err := tx.LearningPaths.GetEnrollment(ctx, userID, pathID)
			if err != nil {
				return err
			}
			st, _, err := pathRollup(ctx, tx, userID, pathID)
			if err != nil {
				return err
			}
			if err := tx.LearningPaths.SyncProgress(ctx, pe.ID, st); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, userID := range touched {
		if err := uc.cache.Invalidate(ctx, userID); err != nil {
			uc.log.Warn("failed to invalidate compliance cache", "user_id", userID, "error", err)
		}
	}

	if len(res.Enrolled) == 0 {
		res.Message = "Users already enrolled, due date updated"
	} else {
		res.Message = "Users and courses assigned successfully"
	}
	uc.log.Info("users enrolled to learning path",
		"learning_path_id", pathID,
		"enrolled", len(res.Enrolled),
		"updated", len(res.Updated),
		"course_enrollments", res.CourseEnrollments,
	)
	return res, nil
}

type CourseProgress struct {
	domain.CompletionState
	CourseID uint `json:"course_id"`
	Enrolled bool `json:"enrolled"`
}

type PathProgress struct {
	domain.PathState
	LearningPathID uint             `json:"learning_path_id"`
	Name           string           `json:"name"`
	UserID         uint             `json:"user_id"`
	EnrollDate     time.Time        `json:"enroll_date"`
	DueDate        time.Time        `json:"due_date"`
	Year           int              `json:"year"`
	Courses        []CourseProgress `json:"courses"`
}

// Progress - свёртка пути на текущий момент. Сохранённая проекция не читается.
func (uc *LearningPathUseCase) Progress(ctx context.Context, actor domain.Actor, userID, pathID uint) (*PathProgress, error) {
	if !actor.CanActFor(userID) {
		return nil, domain.ErrOwnershipMismatch
	}
	pe, err := uc.store.LearningPaths.GetEnrollment(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}
	return uc.progressOf(ctx, pe)
}

func (uc *LearningPathUseCase) ListEnrolled(ctx context.Context, userID uint) ([]*PathProgress, error) {
	list, err := uc.store.LearningPaths.ListEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*PathProgress, 0, len(list))
	for i := range list {
		pp, err := uc.progressOf(ctx, &list[i])
		if err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, nil
}

// ListCompleted - пути, у которых каждый курс завершён.
func (uc *LearningPathUseCase) ListCompleted(ctx context.Context, userID uint) ([]*PathProgress, error) {
	all, err := uc.ListEnrolled(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]*PathProgress, 0, len(all))
	for _, pp := range all {
		if pp.Status == domain.StatusCompleted {
			out = append(out, pp)
		}
	}
	return out, nil
}

func (uc *LearningPathUseCase) progressOf(ctx context.Context, pe *domain.LearningPathEnrollment) (*PathProgress, error) {
	p, err := uc.store.LearningPaths.GetByID(ctx, pe.LearningPathID)
	if err != nil {
		return nil, err
	}
	st, courses, err := pathRollup(ctx, uc.store, pe.UserID, pe.LearningPathID)
	if err != nil {
		return nil, err
	}
	return &PathProgress{
		PathState:      st,
		LearningPathID: p.ID,
		Name:           p.Name,
		UserID:         pe.UserID,
		EnrollDate:     pe.EnrollDate,
		DueDate:        time.Time(pe.DueDate),
		Year:           pe.Year,
		Courses:        courses,
	}, nil
}

// pathRollup считает свёртку пути внутри переданного Store. Курс без записи
// пользователя идёт с нулём пройденных часов и статусом Pending.
func pathRollup(ctx context.Context, store *repository.Store, userID, pathID uint) (domain.PathState, []CourseProgress, error) {
	courseIDs, err := store.LearningPaths.CourseIDs(ctx, pathID)
	if err != nil {
		return domain.PathState{}, nil, err
	}

	courses := make([]CourseProgress, 0, len(courseIDs))
	states := make([]domain.CompletionState, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		cp := CourseProgress{CourseID: courseID}
		e, err := store.Enrollments.GetByUserAndCourse(ctx, userID, courseID)
		switch {
		case errors.Is(err, domain.ErrEnrollmentNotFound):
			expected, err := store.Catalog.ExpectedHours(ctx, courseID)
			if err != nil {
				return domain.PathState{}, nil, err
			}
			cp.CompletionState = domain.CompletionState{ExpectedHours: expected, Status: domain.StatusPending}
		case err != nil:
			return domain.PathState{}, nil, err
		default:
			cp.Enrolled = true
			cp.CompletionState, err = evaluate(ctx, store, e)
			if err != nil {
				return domain.PathState{}, nil, err
			}
		}
		courses = append(courses, cp)
		states = append(states, cp.CompletionState)
	}
	return domain.RollupPath(states), courses, nil
}

// syncPaths обновляет проекцию всех путей пользователя, куда входит курс.
// Вызывается в транзакции, которая изменила состояние записи на этот курс.
func syncPaths(ctx context.Context, tx *repository.Store, userID, courseID uint) error {
	list, err := tx.LearningPaths.LockEnrollmentsWithCourse(ctx, userID, courseID)
	if err != nil {
		return err
	}
	for i := range list {
		st, _, err := pathRollup(ctx, tx, userID, list[i].LearningPathID)
		if err != nil {
			return err
		}
		if err := tx.LearningPaths.SyncProgress(ctx, list[i].ID, st); err != nil {
			return err
		}
	}
	return nil
}
