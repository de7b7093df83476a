package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CertificateRepository struct {
	db *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Issue вставляет сертификат, если его ещё нет. Проверки перед вставкой нет:
// второй конкурентный INSERT отсекает уникальный индекс (user_id, course_id),
// и это означает "сертификат уже есть", а не ошибку.
func (r *CertificateRepository) Issue(ctx context.Context, userID, courseID uint, at time.Time) (bool, error) {
	cert := &domain.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: uuid.NewString(),
		IssueDate:         at,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(cert)
	if result.Error != nil {
		return false, fmt.Errorf("issue certificate: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *CertificateRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Certificate, error) {
	var list []domain.Certificate
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issue_date desc").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return list, nil
}

func (r *CertificateRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Certificate{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
