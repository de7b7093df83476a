package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pathAdmin = domain.Actor{UserID: 100, Role: domain.RoleAdmin}

func TestLearningPathCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	a := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryTechnical, 3, 2)
	b := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryNonTechnical, 4)

	in := LearningPathInput{Name: "Backend", Entity: "EU", CourseIDs: []uint{a.Course.ID, b.Course.ID, a.Course.ID}}
	p, err := e.paths.Create(ctx, pathAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, []uint{a.Course.ID, b.Course.ID}, p.CourseIDs)
	assert.Equal(t, 9, p.ExpectedHours)

	got, err := e.paths.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Ожидаемое время не хранится: новый контент сразу в нём виден
	testutil.SeedContent(t, ctx, e.db, b.Chapter.ID, 6)
	list, err := e.paths.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 15, list[0].ExpectedHours)

	tests := []struct {
		name  string
		actor domain.Actor
		in    LearningPathInput
		want  error
	}{
		{"learner", learner(1), in, domain.ErrForbidden},
		{"no name", pathAdmin, LearningPathInput{CourseIDs: []uint{a.Course.ID}}, domain.ErrInvalidArgument},
		{"no courses", pathAdmin, LearningPathInput{Name: "Empty"}, domain.ErrInvalidArgument},
		{"unknown course", pathAdmin, LearningPathInput{Name: "Ghost", CourseIDs: []uint{9999}}, domain.ErrCourseNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.paths.Create(ctx, tt.actor, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = e.paths.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrLearningPathNotFound)
}

func TestLearningPathRollup(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	tech := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryTechnical, 5, 5)
	soft := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryNonTechnical, 4)
	q := testutil.SeedCourseQuestion(t, ctx, e.db, soft.Course.ID, "b")

	p, err := e.paths.Create(ctx, pathAdmin, LearningPathInput{Name: "Onboarding", CourseIDs: []uint{tech.Course.ID, soft.Course.ID}})
	require.NoError(t, err)

	res, err := e.paths.EnrollUsers(ctx, p.ID, []uint{1, 2}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, res.Enrolled)
	assert.Equal(t, 4, res.CourseEnrollments)
	assert.Equal(t, "Users and courses assigned successfully", res.Message)
	assert.Subset(t, e.cache.invalidated, []uint{1, 2})

	pp, err := e.paths.Progress(ctx, learner(1), 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, pp.Status)
	assert.Equal(t, 14, pp.ExpectedHours)
	assert.Equal(t, 2, pp.TotalCourses)
	require.Len(t, pp.Courses, 2)
	assert.True(t, pp.Courses[0].Enrolled)
	assert.True(t, pp.Courses[1].Enrolled)

	techEnrollment, err := e.store.Enrollments.GetByUserAndCourse(ctx, 1, tech.Course.ID)
	require.NoError(t, err)
	softEnrollment, err := e.store.Enrollments.GetByUserAndCourse(ctx, 1, soft.Course.ID)
	require.NoError(t, err)

	for _, c := range tech.Contents {
		_, err := e.progress.MarkDone(ctx, learner(1), c.ID, techEnrollment.ID)
		require.NoError(t, err)
	}

	stored, err := e.store.LearningPaths.GetEnrollment(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, stored.Status)
	assert.InDelta(t, 100.0*10/14, stored.CompletionPercentage, 1e-6)

	_, err = e.progress.MarkDone(ctx, learner(1), soft.Contents[0].ID, softEnrollment.ID)
	require.NoError(t, err)

	pp, err = e.paths.Progress(ctx, learner(1), 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, pp.Status, "open question keeps the path active")
	assert.InDelta(t, 100.0, pp.Percentage, 1e-9)
	assert.Equal(t, 1, pp.CompletedCourses)

	_, err = e.quiz.Submit(ctx, learner(1), SubmitInput{QuestionID: q.ID, EnrollmentID: softEnrollment.ID, SelectedOption: "b", Source: "course"})
	require.NoError(t, err)
	_, err = e.progress.CheckCompletion(ctx, learner(1), softEnrollment.ID)
	require.NoError(t, err)

	stored, err = e.store.LearningPaths.GetEnrollment(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	done, err := e.paths.ListCompleted(ctx, 1)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, "Onboarding", done[0].Name)
	assert.Equal(t, 2, done[0].CompletedCourses)

	done, err = e.paths.ListCompleted(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, done)

	enrolled, err := e.paths.ListEnrolled(ctx, 2)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, domain.StatusPending, enrolled[0].Status)

	_, err = e.paths.Progress(ctx, learner(2), 1, p.ID)
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
	_, err = e.paths.Progress(ctx, learner(3), 3, p.ID)
	assert.ErrorIs(t, err, domain.ErrPathEnrollmentNotFound)
}

func TestLearningPathReenrollUpdatesDueDate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	f := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryTechnical, 2)
	p, err := e.paths.Create(ctx, pathAdmin, LearningPathInput{Name: "Security", CourseIDs: []uint{f.Course.ID}})
	require.NoError(t, err)

	_, err = e.paths.EnrollUsers(ctx, p.ID, []uint{4}, time.Time{})
	require.NoError(t, err)

	e.cache.invalidated = nil
	due := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	res, err := e.paths.EnrollUsers(ctx, p.ID, []uint{4}, due)
	require.NoError(t, err)
	assert.Empty(t, res.Enrolled)
	assert.Equal(t, []uint{4}, res.Updated)
	assert.Zero(t, res.CourseEnrollments)
	assert.Empty(t, e.cache.invalidated, "no new course enrollments, compliance unchanged")

	pp, err := e.paths.Progress(ctx, learner(4), 4, p.ID)
	require.NoError(t, err)
	y, m, d := pp.DueDate.Date()
	assert.Equal(t, []int{2027, 1, 31}, []int{y, int(m), d})
}

func TestLearningPathEnrollPicksUpEarlierProgress(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	f := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryTechnical, 3)
	completeAll(t, e, 5, f)

	p, err := e.paths.Create(ctx, pathAdmin, LearningPathInput{Name: "Refresher", CourseIDs: []uint{f.Course.ID}})
	require.NoError(t, err)
	res, err := e.paths.EnrollUsers(ctx, p.ID, []uint{5}, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, res.CourseEnrollments)

	stored, err := e.store.LearningPaths.GetEnrollment(ctx, 5, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.InDelta(t, 100.0, stored.CompletionPercentage, 1e-9)
}

func TestLearningPathEnrollErrors(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	f := testutil.SeedCourseWithContents(t, ctx, e.db, domain.CategoryTechnical, 1)
	p, err := e.paths.Create(ctx, pathAdmin, LearningPathInput{Name: "Draft", CourseIDs: []uint{f.Course.ID}})
	require.NoError(t, err)

	_, err = e.paths.EnrollUsers(ctx, p.ID, nil, time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = e.paths.EnrollUsers(ctx, 9999, []uint{1}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrLearningPathNotFound)

	require.NoError(t, e.db.Model(f.Course).Update("status", domain.CourseStatusPending).Error)
	_, err = e.paths.EnrollUsers(ctx, p.ID, []uint{1}, time.Time{})
	assert.ErrorIs(t, err, domain.ErrCourseNotApproved)

	enrolled, err := e.paths.ListEnrolled(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, enrolled)
}
