package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCertification() CertificationInput {
	return CertificationInput{
		CourseName:          "Go in production",
		Category:            domain.CategoryTechnical,
		DateOfCompletion:    time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Hours:               8,
		CertificateProvider: "Coursera",
	}
}

func TestCertificationSubmitValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	tests := []struct {
		name   string
		mutate func(*CertificationInput)
		want   error
	}{
		{"unknown category", func(in *CertificationInput) { in.Category = "sports" }, domain.ErrInvalidCategory},
		{"no category", func(in *CertificationInput) { in.Category = "" }, domain.ErrInvalidArgument},
		{"zero hours", func(in *CertificationInput) { in.Hours = 0 }, domain.ErrInvalidArgument},
		{"no provider", func(in *CertificationInput) { in.CertificateProvider = "" }, domain.ErrInvalidArgument},
		{"no date", func(in *CertificationInput) { in.DateOfCompletion = time.Time{} }, domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCertification()
			tt.mutate(&in)
			_, err := e.certs.Submit(ctx, learner(1), in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	list, err := e.certs.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected input must not be stored")

	c, err := e.certs.Submit(ctx, learner(1), validCertification())
	require.NoError(t, err)
	assert.Equal(t, domain.CertificationPending, c.Status)
	assert.Equal(t, uint(1), c.UploadedByID)

	list, err = e.certs.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCertificationReview(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	admin := domain.Actor{UserID: 50, Role: domain.RoleAdmin}

	c, err := e.certs.Submit(ctx, learner(1), validCertification())
	require.NoError(t, err)

	_, err = e.certs.Approve(ctx, learner(1), c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	rejected, err := e.certs.Reject(ctx, admin, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CertificationRejected, rejected.Status)
	assert.False(t, rejected.IsApproved())
	assert.Empty(t, e.cache.invalidated, "rejection does not change approved hours")

	approved, err := e.certs.Approve(ctx, admin, c.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CertificationApproved, approved.Status)
	assert.True(t, approved.IsApproved())
	assert.Equal(t, []uint{1}, e.cache.invalidated)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, uint(50), *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedDate)

	_, err = e.certs.Approve(ctx, admin, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	_, err = e.certs.Reject(ctx, admin, c.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyApproved)

	_, err = e.certs.Approve(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrCertificationNotFound)
}
