package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"gorm.io/gorm"
)

func SeedCourse(tb testing.TB, ctx context.Context, db *gorm.DB, category string) *domain.Course {
	tb.Helper()
	course := &domain.Course{
		Title:    "Course " + category,
		Category: category,
		Status:   domain.CourseStatusApproved,
	}
	if err := db.WithContext(ctx).Create(course).Error; err != nil {
		tb.Fatalf("SeedCourse: %v", err)
	}
	return course
}

func SeedChapter(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uint) *domain.Chapter {
	tb.Helper()
	chapter := &domain.Chapter{CourseID: courseID, Title: "Chapter"}
	if err := db.WithContext(ctx).Create(chapter).Error; err != nil {
		tb.Fatalf("SeedChapter: %v", err)
	}
	return chapter
}

func SeedContent(tb testing.TB, ctx context.Context, db *gorm.DB, chapterID uint, hours int) *domain.Content {
	tb.Helper()
	content := &domain.Content{
		ChapterID:              chapterID,
		Title:                  "Content",
		ContentType:            "video",
		ExpectedTimeToComplete: hours,
	}
	// Явный Select, иначе нулевая длительность заменится на default:5
	err := db.WithContext(ctx).
		Select("ChapterID", "Title", "ContentType", "ExpectedTimeToComplete").
		Create(content).Error
	if err != nil {
		tb.Fatalf("SeedContent: %v", err)
	}
	return content
}

func SeedCourseQuestion(tb testing.TB, ctx context.Context, db *gorm.DB, courseID uint, correct string) *domain.Question {
	tb.Helper()
	q := &domain.Question{
		CourseID:      &courseID,
		Question:      "2 + 2 = ?",
		OptionA:       "3",
		OptionB:       "4",
		OptionC:       "5",
		OptionD:       "22",
		CorrectAnswer: correct,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("SeedCourseQuestion: %v", err)
	}
	return q
}

func SeedChapterQuestion(tb testing.TB, ctx context.Context, db *gorm.DB, chapterID uint, correct string) *domain.Question {
	tb.Helper()
	q := &domain.Question{
		ChapterID:     &chapterID,
		Question:      "Pick one",
		OptionA:       "a",
		OptionB:       "b",
		OptionC:       "c",
		OptionD:       "d",
		CorrectAnswer: correct,
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		tb.Fatalf("SeedChapterQuestion: %v", err)
	}
	return q
}

func SeedEnrollment(tb testing.TB, ctx context.Context, db *gorm.DB, userID, courseID uint) *domain.Enrollment {
	tb.Helper()
	e := &domain.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrollDate: time.Now(),
		Year:       time.Now().Year(),
		Status:     domain.StatusPending,
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("SeedEnrollment: %v", err)
	}
	return e
}

// CourseFixture - курс с одной главой и контентом заданной длительности.
type CourseFixture struct {
	Course   *domain.Course
	Chapter  *domain.Chapter
	Contents []*domain.Content
}

func SeedCourseWithContents(tb testing.TB, ctx context.Context, db *gorm.DB, category string, hours ...int) *CourseFixture {
	tb.Helper()
	course := SeedCourse(tb, ctx, db, category)
	chapter := SeedChapter(tb, ctx, db, course.ID)
	f := &CourseFixture{Course: course, Chapter: chapter}
	for _, h := range hours {
		f.Contents = append(f.Contents, SeedContent(tb, ctx, db, chapter.ID, h))
	}
	return f
}
