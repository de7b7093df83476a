package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"
)

type CertificationUseCase struct {
	store *repository.Store
	cache ComplianceCache
	log   *logger.Logger
	now   func() time.Time
}

func NewCertificationUseCase(store *repository.Store, cache ComplianceCache, log *logger.Logger) *CertificationUseCase {
	return &CertificationUseCase{
		store: store,
		cache: cacheOrNoop(cache),
		log:   log.With("component", "CertificationUseCase"),
		now:   time.Now,
	}
}

type CertificationInput struct {
	CourseName          string    `validate:"required"`
	Category            string    `validate:"required"`
	DateOfCompletion    time.Time `validate:"required"`
	Hours               int       `validate:"gt=0"`
	CertificateProvider string    `validate:"required"`
	FileID              string
}

// Submit сохраняет внешнюю сертификацию на ревью. В compliance она не идёт,
// пока её не одобрят.
func (uc *CertificationUseCase) Submit(ctx context.Context, actor domain.Actor, in CertificationInput) (*domain.ExternalCertification, error) {
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err)
	}
	if !domain.ValidCategory(in.Category) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCategory, in.Category)
	}

	c := &domain.ExternalCertification{
		CourseName:          in.CourseName,
		Category:            in.Category,
		Status:              domain.CertificationPending,
		DateOfCompletion:    in.DateOfCompletion,
		Hours:               in.Hours,
		CertificateProvider: in.CertificateProvider,
		FileID:              in.FileID,
		UploadedByID:        actor.UserID,
	}
	if err := uc.store.Certifications.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *CertificationUseCase) ListByUser(ctx context.Context, userID uint) ([]*domain.ExternalCertification, error) {
	return uc.store.Certifications.ListByUser(ctx, userID)
}

func (uc *CertificationUseCase) Approve(ctx context.Context, actor domain.Actor, id uint) (*domain.ExternalCertification, error) {
	return uc.review(ctx, actor, id, domain.CertificationApproved)
}

func (uc *CertificationUseCase) Reject(ctx context.Context, actor domain.Actor, id uint) (*domain.ExternalCertification, error) {
	return uc.review(ctx, actor, id, domain.CertificationRejected)
}

// review: одобренную запись повторно не трогаем ни одобрением, ни отказом.
func (uc *CertificationUseCase) review(ctx context.Context, actor domain.Actor, id uint, status string) (*domain.ExternalCertification, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	if err := uc.store.Certifications.SetStatus(ctx, id, status, actor.UserID, uc.now()); err != nil {
		return nil, err
	}
	c, err := uc.store.Certifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Отказ часов не меняет, сбрасываем только после одобрения
	if c.IsApproved() {
		if err := uc.cache.Invalidate(ctx, c.UploadedByID); err != nil {
			uc.log.Warn("failed to invalidate compliance cache", "user_id", c.UploadedByID, "error", err)
		}
	}
	uc.log.Info("external certification reviewed", "certification_id", id, "status", status, "reviewer", actor.UserID)
	return c, nil
}
