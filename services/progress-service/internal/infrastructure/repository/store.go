package repository

import (
	"context"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
)

// Store собирает репозитории поверх одного *gorm.DB, обычного или транзакционного.
type Store struct {
	db *gorm.DB

	Catalog        *CatalogRepository
	Enrollments    *EnrollmentRepository
	Progress       *ProgressRepository
	Quizzes        *QuizRepository
	Certificates   *CertificateRepository
	Certifications *ExternalCertificationRepository
	LearningPaths  *LearningPathRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Catalog:        NewCatalogRepository(db),
		Enrollments:    NewEnrollmentRepository(db),
		Progress:       NewProgressRepository(db),
		Quizzes:        NewQuizRepository(db),
		Certificates:   NewCertificateRepository(db),
		Certifications: NewExternalCertificationRepository(db),
		LearningPaths:  NewLearningPathRepository(db),
	}
}

// Transaction выполняет fn в одной транзакции; ошибка из fn откатывает всё.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Course{},
		&domain.Chapter{},
		&domain.Content{},
		&domain.Question{},
		&domain.Enrollment{},
		&domain.Progress{},
		&domain.QuizCompletion{},
		&domain.Certificate{},
		&ExternalCertificationGorm{},
		&domain.LearningPath{},
		&domain.LearningPathEnrollment{},
	)
}
