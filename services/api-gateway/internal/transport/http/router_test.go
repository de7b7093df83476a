package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/middleware"
	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/security"
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const testSecret = "0123456789abcdef"

// fakeClient отвечает только на те методы, которые трогают тесты.
type fakeClient struct {
	progresspb.ProgressServiceClient
	err error

	markDone *progresspb.MarkDoneRequest
	enroll   *progresspb.EnrollRequest
	submit   *progresspb.SubmitCertificationRequest
	review   *progresspb.ReviewCertificationRequest
	user     *progresspb.UserRequest

	createPath *progresspb.CreateLearningPathRequest
	enrollPath *progresspb.EnrollLearningPathRequest
	pathQuery  *progresspb.LearningPathProgressRequest
	stats      *progresspb.CourseStatsRequest
}

func (f *fakeClient) MarkDone(_ context.Context, in *progresspb.MarkDoneRequest, _ ...grpc.CallOption) (*progresspb.MarkDoneResponse, error) {
	f.markDone = in
	if f.err != nil {
		return nil, f.err
	}
	return &progresspb.MarkDoneResponse{EnrollmentID: in.EnrollmentID, Status: "Active", Message: "Progress updated successfully"}, nil
}

func (f *fakeClient) Enroll(_ context.Context, in *progresspb.EnrollRequest, _ ...grpc.CallOption) (*progresspb.EnrollResponse, error) {
	f.enroll = in
	return &progresspb.EnrollResponse{CourseID: in.CourseID, Enrolled: in.UserIDs, Skipped: []uint{}}, nil
}

func (f *fakeClient) ComplianceSnapshot(_ context.Context, in *progresspb.UserRequest, _ ...grpc.CallOption) (*progresspb.ComplianceSnapshot, error) {
	f.user = in
	return &progresspb.ComplianceSnapshot{UserID: in.UserID, TechnicalHours: 60}, nil
}

func (f *fakeClient) SubmitCertification(_ context.Context, in *progresspb.SubmitCertificationRequest, _ ...grpc.CallOption) (*progresspb.Certification, error) {
	f.submit = in
	return &progresspb.Certification{ID: 1, Status: "pending"}, nil
}

func (f *fakeClient) ApproveCertification(_ context.Context, in *progresspb.ReviewCertificationRequest, _ ...grpc.CallOption) (*progresspb.Certification, error) {
	f.review = in
	return &progresspb.Certification{ID: in.CertificationID, Status: "approved"}, nil
}

func (f *fakeClient) CreateLearningPath(_ context.Context, in *progresspb.CreateLearningPathRequest, _ ...grpc.CallOption) (*progresspb.LearningPath, error) {
	f.createPath = in
	return &progresspb.LearningPath{ID: 1, Name: in.Name, CourseIDs: in.CourseIDs}, nil
}

func (f *fakeClient) EnrollLearningPath(_ context.Context, in *progresspb.EnrollLearningPathRequest, _ ...grpc.CallOption) (*progresspb.EnrollLearningPathResponse, error) {
	f.enrollPath = in
	return &progresspb.EnrollLearningPathResponse{LearningPathID: in.LearningPathID, Enrolled: in.UserIDs, Updated: []uint{}}, nil
}

func (f *fakeClient) LearningPathProgress(_ context.Context, in *progresspb.LearningPathProgressRequest, _ ...grpc.CallOption) (*progresspb.LearningPathProgress, error) {
	f.pathQuery = in
	return &progresspb.LearningPathProgress{LearningPathID: in.LearningPathID, UserID: in.UserID, Status: "Active"}, nil
}

func (f *fakeClient) ListCompletedLearningPaths(_ context.Context, in *progresspb.UserRequest, _ ...grpc.CallOption) (*progresspb.ListLearningPathProgressResponse, error) {
	f.user = in
	return &progresspb.ListLearningPathProgressResponse{LearningPaths: []progresspb.LearningPathProgress{{LearningPathID: 2, Status: "Completed"}}}, nil
}

func (f *fakeClient) CourseStats(_ context.Context, in *progresspb.CourseStatsRequest, _ ...grpc.CallOption) (*progresspb.CourseStats, error) {
	f.stats = in
	return &progresspb.CourseStats{CourseID: in.CourseID, EnrolledStudentsCount: 3, CompletedStudentsCount: 1}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeClient) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fc := &fakeClient{}
	r := NewRouter(RouterDeps{
		Client: fc,
		Tokens: security.NewTokenManager(testSecret),
	})
	return r, fc
}

func token(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := security.NewTokenManager(testSecret).Generate(security.Identity{UserID: userID, Role: role}, time.Minute)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(r http.Handler, method, path, auth string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequiresToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/compliance", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/v1/compliance", "Token abc", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/api/v1/compliance", "Bearer abc", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMarkDonePassesActor(t *testing.T) {
	r, fc := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/progress/mark-done", token(t, 5, "learner"), gin.H{"content_id": 11, "enrollment_id": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, fc.markDone)
	assert.Equal(t, progresspb.Actor{UserID: 5, Role: "learner"}, fc.markDone.Actor)
	assert.Equal(t, uint(11), fc.markDone.ContentID)
	assert.Equal(t, uint(3), fc.markDone.EnrollmentID)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	var body progresspb.MarkDoneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Active", body.Status)

	w = do(r, http.MethodPost, "/api/v1/progress/mark-done", token(t, 5, "learner"), gin.H{"content_id": 11})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{status.Error(codes.NotFound, "enrollment not found"), http.StatusNotFound},
		{status.Error(codes.PermissionDenied, "content/enrollment mismatch"), http.StatusForbidden},
		{status.Error(codes.InvalidArgument, "bad"), http.StatusBadRequest},
		{status.Error(codes.FailedPrecondition, "course is not approved"), http.StatusConflict},
		{status.Error(codes.Unavailable, "down"), http.StatusServiceUnavailable},
		{status.Error(codes.Internal, "boom"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r, fc := newTestRouter(t)
			fc.err = tt.err
			w := do(r, http.MethodPost, "/api/v1/progress/mark-done", token(t, 1, "learner"), gin.H{"content_id": 1, "enrollment_id": 1})
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestEnrollDefaultsToSelf(t *testing.T) {
	r, fc := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/courses/9/enroll", token(t, 4, "learner"), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []uint{4}, fc.enroll.UserIDs)
	assert.Equal(t, uint(9), fc.enroll.CourseID)

	w = do(r, http.MethodPost, "/api/v1/courses/abc/enroll", token(t, 4, "learner"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTargetUser(t *testing.T) {
	r, fc := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/compliance", token(t, 2, "learner"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(2), fc.user.UserID)

	w = do(r, http.MethodGet, "/api/v1/compliance?user_id=8", token(t, 1, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(8), fc.user.UserID)
	assert.Equal(t, "admin", fc.user.Actor.Role)

	w = do(r, http.MethodGet, "/api/v1/compliance?user_id=x", token(t, 1, "admin"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCertificationRoutes(t *testing.T) {
	r, fc := newTestRouter(t)
	valid := gin.H{
		"course_name":          "Go in production",
		"category":             "technical",
		"date_of_completion":   "2026-02-14",
		"hours":                8,
		"certificate_provider": "Coursera",
	}

	w := do(r, http.MethodPost, "/api/v1/certifications", token(t, 3, "learner"), valid)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), fc.submit.DateOfCompletion)

	bad := gin.H{}
	for k, v := range valid {
		bad[k] = v
	}
	bad["date_of_completion"] = "14.02.2026"
	w = do(r, http.MethodPost, "/api/v1/certifications", token(t, 3, "learner"), bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/admin/certifications/1/approve", token(t, 3, "learner"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, fc.review)

	w = do(r, http.MethodPost, "/api/v1/admin/certifications/1/approve", token(t, 99, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), fc.review.CertificationID)
	assert.Equal(t, uint(99), fc.review.Actor.UserID)
}

func TestLearningPathRoutes(t *testing.T) {
	r, fc := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/v1/admin/learning-paths", token(t, 3, "learner"), gin.H{"name": "Backend", "course_ids": []uint{1}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, fc.createPath)

	w = do(r, http.MethodPost, "/api/v1/admin/learning-paths", token(t, 99, "admin"), gin.H{"name": "Backend"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/v1/admin/learning-paths", token(t, 99, "admin"), gin.H{"name": "Backend", "course_ids": []uint{1, 2}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []uint{1, 2}, fc.createPath.CourseIDs)

	w = do(r, http.MethodPost, "/api/v1/learning-paths/7/enroll", token(t, 4, "learner"), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []uint{4}, fc.enrollPath.UserIDs)
	assert.Equal(t, uint(7), fc.enrollPath.LearningPathID)
	assert.True(t, fc.enrollPath.DueDate.IsZero())

	w = do(r, http.MethodPost, "/api/v1/learning-paths/7/enroll", token(t, 99, "admin"), gin.H{"user_ids": []uint{4, 5}, "due_date": "2026-12-31"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, []uint{4, 5}, fc.enrollPath.UserIDs)
	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), fc.enrollPath.DueDate)

	w = do(r, http.MethodPost, "/api/v1/learning-paths/7/enroll", token(t, 99, "admin"), gin.H{"due_date": "31.12.2026"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/v1/learning-paths/7/progress", token(t, 4, "learner"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), fc.pathQuery.UserID)
	assert.Equal(t, uint(7), fc.pathQuery.LearningPathID)

	w = do(r, http.MethodGet, "/api/v1/learning-paths/completed?user_id=4", token(t, 99, "admin"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), fc.user.UserID)
	var done []progresspb.LearningPathProgress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &done))
	require.Len(t, done, 1)
	assert.Equal(t, "Completed", done[0].Status)
}

func TestCourseStatsRoute(t *testing.T) {
	r, fc := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/v1/courses/12/stats", token(t, 4, "learner"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint(12), fc.stats.CourseID)

	var body progresspb.CourseStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.EnrolledStudentsCount)
	assert.Equal(t, int64(1), body.CompletedStudentsCount)
}
