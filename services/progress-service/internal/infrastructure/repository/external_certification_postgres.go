package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExternalCertificationGorm struct {
	ID                  uint           `gorm:"primaryKey"`
	CourseName          string         `gorm:"not null"`
	Category            string         `gorm:"not null;index"`
	Status              string         `gorm:"not null;default:'pending'"`
	DateOfCompletion    datatypes.Date `gorm:"not null"`
	Hours               int            `gorm:"not null"`
	CertificateProvider string         `gorm:"not null"`
	FileID              string
	UploadedByID        uint `gorm:"not null;index"`
	ApprovedBy          *uint
	ApprovedDate        *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ExternalCertificationGorm) TableName() string {
	return "external_certifications"
}

func toGormCertification(c *domain.ExternalCertification) *ExternalCertificationGorm {
	return &ExternalCertificationGorm{
		ID:                  c.ID,
		CourseName:          c.CourseName,
		Category:            c.Category,
		Status:              c.Status,
		DateOfCompletion:    datatypes.Date(c.DateOfCompletion),
		Hours:               c.Hours,
		CertificateProvider: c.CertificateProvider,
		FileID:              c.FileID,
		UploadedByID:        c.UploadedByID,
		ApprovedBy:          c.ApprovedBy,
		ApprovedDate:        c.ApprovedDate,
		CreatedAt:           c.CreatedAt,
	}
}

func toDomainCertification(m *ExternalCertificationGorm) *domain.ExternalCertification {
	return &domain.ExternalCertification{
		ID:                  m.ID,
		CourseName:          m.CourseName,
		Category:            m.Category,
		Status:              m.Status,
		DateOfCompletion:    time.Time(m.DateOfCompletion),
		Hours:               m.Hours,
		CertificateProvider: m.CertificateProvider,
		FileID:              m.FileID,
		UploadedByID:        m.UploadedByID,
		ApprovedBy:          m.ApprovedBy,
		ApprovedDate:        m.ApprovedDate,
		CreatedAt:           m.CreatedAt,
	}
}

type ExternalCertificationRepository struct {
	db *gorm.DB
}

func NewExternalCertificationRepository(db *gorm.DB) *ExternalCertificationRepository {
	return &ExternalCertificationRepository{db: db}
}

func (r *ExternalCertificationRepository) Create(ctx context.Context, c *domain.ExternalCertification) error {
	model := toGormCertification(c)
	if model.Status == "" {
		model.Status = domain.CertificationPending
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("create external certification: %w", err)
	}

	c.ID = model.ID
	c.Status = model.Status
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *ExternalCertificationRepository) GetByID(ctx context.Context, id uint) (*domain.ExternalCertification, error) {
	var model ExternalCertificationGorm

	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCertificationNotFound
		}
		return nil, fmt.Errorf("get external certification: %w", err)
	}

	return toDomainCertification(&model), nil
}

func (r *ExternalCertificationRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.ExternalCertification, error) {
	var models []ExternalCertificationGorm
	err := r.db.WithContext(ctx).
		Where("uploaded_by_id = ?", userID).
		Order("id asc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list external certifications: %w", err)
	}

	list := make([]*domain.ExternalCertification, 0, len(models))
	for i := range models {
		list = append(list, toDomainCertification(&models[i]))
	}
	return list, nil
}

// SetStatus меняет статус, только если запись ещё не одобрена.
// Условие в WHERE закрывает гонку двух ревьюеров.
func (r *ExternalCertificationRepository) SetStatus(ctx context.Context, id uint, status string, reviewerID uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&ExternalCertificationGorm{}).
		Where("id = ? AND status NOT IN ?", id, domain.ApprovedStatuses()).
		Updates(map[string]interface{}{
			"status":        status,
			"approved_by":   reviewerID,
			"approved_date": at,
		})
	if result.Error != nil {
		return fmt.Errorf("update external certification: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrAlreadyApproved
	}
	return nil
}

// ApprovedHoursByCategory - часы одобренных внешних сертификаций пользователя.
func (r *ExternalCertificationRepository) ApprovedHoursByCategory(ctx context.Context, userID uint) ([]CategoryHours, error) {
	var rows []CategoryHours
	err := r.db.WithContext(ctx).
		Model(&ExternalCertificationGorm{}).
		Select("category, COALESCE(SUM(hours), 0) AS hours").
		Where("uploaded_by_id = ? AND status IN ?", userID, domain.ApprovedStatuses()).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("approved hours by category: %w", err)
	}
	return rows, nil
}
