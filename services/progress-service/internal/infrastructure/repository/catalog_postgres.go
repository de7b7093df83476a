package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
)

// CatalogRepository читает дерево Course -> Chapter -> Content и вопросы.
// Длительности не кешируются: правки каталога должны сразу отражаться в расчётах.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	return &course, nil
}

// GetContentRef возвращает контент вместе с id курса, к которому он относится.
func (r *CatalogRepository) GetContentRef(ctx context.Context, contentID uint) (*domain.ContentRef, error) {
	var ref domain.ContentRef
	result := r.db.WithContext(ctx).
		Table("contents").
		Select("contents.id AS content_id, contents.chapter_id, chapters.course_id, contents.expected_time_to_complete").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id").
		Where("contents.id = ?", contentID).
		Limit(1).
		Scan(&ref)
	if result.Error != nil {
		return nil, fmt.Errorf("get content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrContentNotFound
	}
	return &ref, nil
}

func (r *CatalogRepository) GetQuestion(ctx context.Context, id uint) (*domain.Question, error) {
	var q domain.Question
	err := r.db.WithContext(ctx).First(&q, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &q, nil
}

// QuestionCourseID - курс вопроса: напрямую или через главу.
func (r *CatalogRepository) QuestionCourseID(ctx context.Context, q *domain.Question) (uint, error) {
	if q.CourseID != nil {
		return *q.CourseID, nil
	}
	if q.ChapterID == nil {
		return 0, nil
	}
	var chapter domain.Chapter
	err := r.db.WithContext(ctx).Select("id", "course_id").First(&chapter, "id = ?", *q.ChapterID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get question chapter: %w", err)
	}
	return chapter.CourseID, nil
}

// ExpectedHours - сумма длительностей всего контента курса.
func (r *CatalogRepository) ExpectedHours(ctx context.Context, courseID uint) (int, error) {
	var hours int
	err := r.db.WithContext(ctx).
		Table("contents").
		Select("COALESCE(SUM(contents.expected_time_to_complete), 0)").
		Joins("JOIN chapters ON chapters.id = contents.chapter_id").
		Where("chapters.course_id = ?", courseID).
		Scan(&hours).Error
	if err != nil {
		return 0, fmt.Errorf("expected hours: %w", err)
	}
	return hours, nil
}

// courseQuestions - запрос вопросов курса, включая вопросы его глав.
func courseQuestions(db *gorm.DB, courseID uint) *gorm.DB {
	return db.Model(&domain.Question{}).
		Where("questions.course_id = ? OR questions.chapter_id IN (?)",
			courseID,
			db.Session(&gorm.Session{NewDB: true}).Model(&domain.Chapter{}).Select("id").Where("course_id = ?", courseID),
		)
}
