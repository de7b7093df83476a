package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentRef(t *testing.T, store *repository.Store, id uint) *domain.ContentRef {
	t.Helper()
	ref, err := store.Catalog.GetContentRef(context.Background(), id)
	require.NoError(t, err)
	return ref
}

func TestCatalogHours(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 3, 2)
	second := testutil.SeedChapter(t, ctx, db, f.Course.ID)
	testutil.SeedContent(t, ctx, db, second.ID, 4)

	hours, err := store.Catalog.ExpectedHours(ctx, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, hours)

	empty := testutil.SeedCourse(t, ctx, db, domain.CategoryTechnical)
	hours, err = store.Catalog.ExpectedHours(ctx, empty.ID)
	require.NoError(t, err)
	assert.Zero(t, hours)
}

func TestCatalogNotFound(t *testing.T) {
	ctx := context.Background()
	store := repository.NewStore(testutil.DB(t))

	_, err := store.Catalog.GetContentRef(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrContentNotFound)

	_, err = store.Catalog.GetQuestion(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = store.Catalog.GetCourse(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrCourseNotFound)
}

func TestQuestionCourseID(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 1)
	byCourse := testutil.SeedCourseQuestion(t, ctx, db, f.Course.ID, "b")
	byChapter := testutil.SeedChapterQuestion(t, ctx, db, f.Chapter.ID, "a")

	id, err := store.Catalog.QuestionCourseID(ctx, byCourse)
	require.NoError(t, err)
	assert.Equal(t, f.Course.ID, id)

	id, err = store.Catalog.QuestionCourseID(ctx, byChapter)
	require.NoError(t, err)
	assert.Equal(t, f.Course.ID, id)
}

func TestProgressMarkCompletedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 3, 2)
	e := testutil.SeedEnrollment(t, ctx, db, 1, f.Course.ID)
	ref := contentRef(t, store, f.Contents[0].ID)

	first := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	second := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, store.Progress.MarkCompleted(ctx, e.ID, ref, first))
	require.NoError(t, store.Progress.MarkCompleted(ctx, e.ID, ref, second))

	count := testutil.Count(t, db, &domain.Progress{}, "enrollment_id = ?", e.ID)
	assert.Equal(t, int64(1), count)

	var row domain.Progress
	require.NoError(t, db.Where("enrollment_id = ?", e.ID).First(&row).Error)
	assert.True(t, row.CompletedAt.Equal(second), "completed_at must be refreshed")

	hours, err := store.Progress.CompletedHours(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, hours)

	remaining, err := store.Progress.RemainingContents(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
}

func TestPendingChaptersAndCompletedContentIDs(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 1, 1)
	other := testutil.SeedChapter(t, ctx, db, f.Course.ID)
	otherContent := testutil.SeedContent(t, ctx, db, other.ID, 2)
	e := testutil.SeedEnrollment(t, ctx, db, 5, f.Course.ID)

	pending, err := store.Progress.PendingChapters(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	require.NoError(t, store.Progress.MarkCompleted(ctx, e.ID, contentRef(t, store, otherContent.ID), time.Now()))
	require.NoError(t, store.Progress.MarkCompleted(ctx, e.ID, contentRef(t, store, f.Contents[1].ID), time.Now()))

	pending, err = store.Progress.PendingChapters(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	ids, err := store.Progress.CompletedContentIDs(ctx, 5, f.Chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.Contents[1].ID}, ids)

	ids, err = store.Progress.CompletedContentIDs(ctx, 6, f.Chapter.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPendingQuestionsCountsCourseAndChapterQuestions(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 1)
	q1 := testutil.SeedCourseQuestion(t, ctx, db, f.Course.ID, "b")
	q2 := testutil.SeedChapterQuestion(t, ctx, db, f.Chapter.ID, "a")
	unrelated := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 1)
	testutil.SeedCourseQuestion(t, ctx, db, unrelated.Course.ID, "c")

	e := testutil.SeedEnrollment(t, ctx, db, 1, f.Course.ID)

	pending, err := store.Quizzes.PendingQuestions(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	attempts := []domain.QuizCompletion{
		{QuestionID: q1.ID, EnrollmentID: e.ID, AttemptNo: 1, CorrectAnswer: false, Source: "course"},
		{QuestionID: q1.ID, EnrollmentID: e.ID, AttemptNo: 2, CorrectAnswer: true, Source: "course"},
		{QuestionID: q2.ID, EnrollmentID: e.ID, AttemptNo: 1, CorrectAnswer: false, Source: "chapter"},
	}
	for i := range attempts {
		attempts[i].AttemptDatetime = time.Now()
		require.NoError(t, store.Quizzes.Create(ctx, &attempts[i]))
	}

	pending, err = store.Quizzes.PendingQuestions(ctx, e.ID, f.Course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	n, err := store.Quizzes.CountAttempts(ctx, q1.ID, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestQuizAttemptNumberIsUnique(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	f := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 1)
	q := testutil.SeedCourseQuestion(t, ctx, db, f.Course.ID, "b")
	e := testutil.SeedEnrollment(t, ctx, db, 1, f.Course.ID)

	first := &domain.QuizCompletion{QuestionID: q.ID, EnrollmentID: e.ID, AttemptNo: 1, Source: "course", AttemptDatetime: time.Now()}
	require.NoError(t, store.Quizzes.Create(ctx, first))

	dup := &domain.QuizCompletion{QuestionID: q.ID, EnrollmentID: e.ID, AttemptNo: 1, Source: "course", AttemptDatetime: time.Now()}
	assert.ErrorIs(t, store.Quizzes.Create(ctx, dup), domain.ErrAttemptConflict)
}

func TestCertificateIssueOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	created, err := store.Certificates.Issue(ctx, 1, 10, time.Now())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.Certificates.Issue(ctx, 1, 10, time.Now())
	require.NoError(t, err)
	assert.False(t, created, "second insert must be swallowed by the unique index")

	count := testutil.Count(t, db, &domain.Certificate{}, "user_id = ? AND course_id = ?", 1, 10)
	assert.Equal(t, int64(1), count)

	list, err := store.Certificates.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEmpty(t, list[0].CertificateNumber)
}

func TestEnrollmentCreateSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)
	course := testutil.SeedCourse(t, ctx, db, domain.CategoryTechnical)

	e := &domain.Enrollment{UserID: 3, CourseID: course.ID, EnrollDate: time.Now(), Status: domain.StatusPending}
	created, err := store.Enrollments.Create(ctx, e)
	require.NoError(t, err)
	assert.True(t, created)

	again := &domain.Enrollment{UserID: 3, CourseID: course.ID, EnrollDate: time.Now(), Status: domain.StatusPending}
	created, err = store.Enrollments.Create(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := store.Enrollments.GetByUserAndCourse(ctx, 3, course.ID)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)

	_, err = store.Enrollments.GetByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrEnrollmentNotFound)

	require.NoError(t, store.Enrollments.SyncStatus(ctx, e.ID, domain.StatusActive))
	got, err = store.Enrollments.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, got.Status)
}

func TestHoursByCategory(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	tech := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryTechnical, 10, 20)
	soft := testutil.SeedCourseWithContents(t, ctx, db, domain.CategoryNonTechnical, 4)
	e1 := testutil.SeedEnrollment(t, ctx, db, 7, tech.Course.ID)
	testutil.SeedEnrollment(t, ctx, db, 7, soft.Course.ID)
	require.NoError(t, store.Progress.MarkCompleted(ctx, e1.ID, contentRef(t, store, tech.Contents[1].ID), time.Now()))

	completed, err := store.Progress.CompletedHoursByCategory(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []repository.CategoryHours{{Category: domain.CategoryTechnical, Hours: 20}}, completed)

	enrolled, err := store.Enrollments.EnrolledHoursByCategory(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []repository.CategoryHours{
		{Category: domain.CategoryTechnical, Hours: 30},
		{Category: domain.CategoryNonTechnical, Hours: 4},
	}, enrolled)
}

func TestExternalCertificationStatus(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	cert := &domain.ExternalCertification{
		CourseName:          "Kubernetes",
		Category:            domain.CategoryTechnical,
		DateOfCompletion:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Hours:               12,
		CertificateProvider: "CNCF",
		UploadedByID:        9,
	}
	require.NoError(t, store.Certifications.Create(ctx, cert))
	assert.Equal(t, domain.CertificationPending, cert.Status)

	legacy := &domain.ExternalCertification{
		CourseName:          "Old",
		Category:            domain.CategoryNonTechnical,
		Status:              "approve",
		DateOfCompletion:    time.Now(),
		Hours:               3,
		CertificateProvider: "HR",
		UploadedByID:        9,
	}
	require.NoError(t, store.Certifications.Create(ctx, legacy))

	hours, err := store.Certifications.ApprovedHoursByCategory(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, []repository.CategoryHours{{Category: domain.CategoryNonTechnical, Hours: 3}}, hours)

	require.NoError(t, store.Certifications.SetStatus(ctx, cert.ID, domain.CertificationApproved, 1, time.Now()))
	err = store.Certifications.SetStatus(ctx, cert.ID, domain.CertificationRejected, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	err = store.Certifications.SetStatus(ctx, 404, domain.CertificationApproved, 1, time.Now())
	assert.ErrorIs(t, err, domain.ErrCertificationNotFound)

	hours, err = store.Certifications.ApprovedHoursByCategory(ctx, 9)
	require.NoError(t, err)
	assert.ElementsMatch(t, []repository.CategoryHours{
		{Category: domain.CategoryTechnical, Hours: 12},
		{Category: domain.CategoryNonTechnical, Hours: 3},
	}, hours)

	got, err := store.Certifications.GetByID(ctx, cert.ID)
	require.NoError(t, err)
	assert.True(t, got.IsApproved())
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, uint(1), *got.ApprovedBy)
}

func TestStoreTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	store := repository.NewStore(db)

	err := store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Certificates.Issue(ctx, 2, 2, time.Now()); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	count := testutil.Count(t, db, &domain.Certificate{}, "user_id = ? AND course_id = ?", 2, 2)
	assert.Zero(t, count)
}
