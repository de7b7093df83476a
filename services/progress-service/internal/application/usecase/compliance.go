package usecase

import (
	"context"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"
)

type ComplianceUseCase struct {
	store   *repository.Store
	cache   ComplianceCache
	targets domain.ComplianceTargets
	log     *logger.Logger
}

func NewComplianceUseCase(store *repository.Store, cache ComplianceCache, targets domain.ComplianceTargets, log *logger.Logger) *ComplianceUseCase {
	return &ComplianceUseCase{
		store:   store,
		cache:   cacheOrNoop(cache),
		targets: targets,
		log:     log.With("component", "ComplianceUseCase"),
	}
}

// Snapshot считает часы пользователя по категориям. Кеш только ускоряет чтение:
// любая ошибка кеша логируется, а снимок пересчитывается из БД.
func (uc *ComplianceUseCase) Snapshot(ctx context.Context, userID uint) (*domain.ComplianceSnapshot, error) {
	cached, err := uc.cache.Get(ctx, userID)
	if err != nil {
		uc.log.Warn("compliance cache read failed", "user_id", userID, "error", err)
	}
	if cached != nil && cached.Targets == uc.targets {
		return cached, nil
	}

	// Поколение читается до похода в БД, иначе сброс между чтением и записью потеряется
	gen, genErr := uc.cache.Generation(ctx, userID)
	if genErr != nil {
		uc.log.Warn("compliance cache generation read failed", "user_id", userID, "error", genErr)
	}

	snap, err := uc.compute(ctx, userID)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := uc.cache.Set(ctx, snap, gen); err != nil {
			uc.log.Warn("compliance cache write failed", "user_id", userID, "error", err)
		}
	}
	return snap, nil
}

func (uc *ComplianceUseCase) compute(ctx context.Context, userID uint) (*domain.ComplianceSnapshot, error) {
	completed, err := uc.store.Progress.CompletedHoursByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	external, err := uc.store.Certifications.ApprovedHoursByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	enrolled, err := uc.store.Enrollments.EnrolledHoursByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &domain.ComplianceSnapshot{UserID: userID, Targets: uc.targets}
	for _, row := range append(completed, external...) {
		switch row.Category {
		case domain.CategoryTechnical:
			snap.TechnicalHours += row.Hours
		case domain.CategoryNonTechnical:
			snap.NonTechnicalHours += row.Hours
		}
	}
	for _, row := range enrolled {
		switch row.Category {
		case domain.CategoryTechnical:
			snap.TotalTechEnrolledHours += row.Hours
		case domain.CategoryNonTechnical:
			snap.TotalNonTechEnrolledHours += row.Hours
		}
	}
	snap.Compliant = uc.targets.IsCompliant(snap.TechnicalHours, snap.NonTechnicalHours)
	return snap, nil
}

type DashboardStats struct {
	EnrolledCount      int     `json:"enrolled_count"`
	CompletedCount     int     `json:"completed_course_count"`
	ActiveCount        int     `json:"active_course_count"`
	PendingCount       int     `json:"pending_course_count"`
	CertificatesCount  int64   `json:"certificates_count"`
	MyProgress         float64 `json:"my_progress"`
	TotalLearningHours int     `json:"total_learning_hours"`
}

// Dashboard - сводка по всем записям пользователя. Статусы берутся из
// калькулятора, а не из сохранённой колонки. TotalLearningHours включает
// часы одобренных внешних сертификаций.
func (uc *ComplianceUseCase) Dashboard(ctx context.Context, userID uint) (*DashboardStats, error) {
	list, err := uc.store.Enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{EnrolledCount: len(list)}
	var percentSum float64
	for i := range list {
		state, err := evaluate(ctx, uc.store, &list[i])
		if err != nil {
			return nil, err
		}
		switch state.Status {
		case domain.StatusCompleted:
			stats.CompletedCount++
		case domain.StatusActive:
			stats.ActiveCount++
		default:
			stats.PendingCount++
		}
		percentSum += state.Percentage
		stats.TotalLearningHours += state.CompletedHours
	}
	if len(list) > 0 {
		stats.MyProgress = percentSum / float64(len(list))
	}

	// Одобренное внешнее обучение тоже часы обучения, в любой категории
	external, err := uc.store.Certifications.ApprovedHoursByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, row := range external {
		stats.TotalLearningHours += row.Hours
	}

	stats.CertificatesCount, err = uc.store.Certificates.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (uc *ComplianceUseCase) Certificates(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	return uc.store.Certificates.ListByUser(ctx, userID)
}
