package grpc_server

import (
	"context"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/application/usecase"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ProgressServer struct {
	progress   *usecase.ProgressUseCase
	quiz       *usecase.QuizUseCase
	compliance *usecase.ComplianceUseCase
	certs      *usecase.CertificationUseCase
	paths      *usecase.LearningPathUseCase
	log        *logger.Logger
}

func NewProgressServer(progress *usecase.ProgressUseCase, quiz *usecase.QuizUseCase, compliance *usecase.ComplianceUseCase, certs *usecase.CertificationUseCase, paths *usecase.LearningPathUseCase, log *logger.Logger) *ProgressServer {
	return &ProgressServer{
		progress:   progress,
		quiz:       quiz,
		compliance: compliance,
		certs:      certs,
		paths:      paths,
		log:        log.With("component", "ProgressServer"),
	}
}

// fail - единая точка выхода для ошибок use case. Причину Internal клиент
// не видит, поэтому она пишется в лог здесь.
func (s *ProgressServer) fail(err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		s.log.Error("request failed", "error", err)
	}
	return st
}

var _ progresspb.ProgressServiceServer = (*ProgressServer)(nil)

func actorOf(a progresspb.Actor) domain.Actor {
	return domain.Actor{UserID: a.UserID, Role: a.Role}
}

// allowUser проверяет чтения "по пользователю": чужие данные видит только админ.
func allowUser(a progresspb.Actor, userID uint) error {
	if userID == 0 {
		return status.Error(codes.InvalidArgument, "user_id is required")
	}
	if !actorOf(a).CanActFor(userID) {
		return status.Error(codes.PermissionDenied, "access to another user's data is denied")
	}
	return nil
}

func (s *ProgressServer) MarkDone(ctx context.Context, req *progresspb.MarkDoneRequest) (*progresspb.MarkDoneResponse, error) {
	if req.ContentID == 0 || req.EnrollmentID == 0 {
		return nil, status.Error(codes.InvalidArgument, "content_id and enrollment_id are required")
	}
	res, err := s.progress.MarkDone(ctx, actorOf(req.Actor), req.ContentID, req.EnrollmentID)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.MarkDoneResponse{
		EnrollmentID:      res.EnrollmentID,
		Status:            res.Status,
		PendingQuizzes:    res.PendingQuizzes,
		RemainingContents: res.RemainingContents,
		CompletedHours:    res.CompletedHours,
		ExpectedHours:     res.ExpectedHours,
		Percentage:        res.Percentage,
		CertificateIssued: res.CertificateIssued,
		Message:           res.Message,
	}, nil
}

func (s *ProgressServer) CheckCompletion(ctx context.Context, req *progresspb.EnrollmentRequest) (*progresspb.CheckCompletionResponse, error) {
	res, err := s.progress.CheckCompletion(ctx, actorOf(req.Actor), req.EnrollmentID)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.CheckCompletionResponse{
		CompletionState:   stateToPB(res.CompletionState),
		CertificateIssued: res.CertificateIssued,
	}, nil
}

func (s *ProgressServer) ComputeState(ctx context.Context, req *progresspb.EnrollmentRequest) (*progresspb.CompletionState, error) {
	st, err := s.progress.ComputeState(ctx, actorOf(req.Actor), req.EnrollmentID)
	if err != nil {
		return nil, s.fail(err)
	}
	state := stateToPB(*st)
	return &state, nil
}

func (s *ProgressServer) EnrollmentDetail(ctx context.Context, req *progresspb.EnrollmentRequest) (*progresspb.EnrollmentDetail, error) {
	d, err := s.progress.EnrollmentDetail(ctx, actorOf(req.Actor), req.EnrollmentID)
	if err != nil {
		return nil, s.fail(err)
	}
	out := detailToPB(d)
	return &out, nil
}

func (s *ProgressServer) ListEnrollments(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ListEnrollmentsResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.progress.ListEnrollments(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	resp := &progresspb.ListEnrollmentsResponse{Enrollments: make([]progresspb.EnrollmentDetail, 0, len(list))}
	for _, d := range list {
		resp.Enrollments = append(resp.Enrollments, detailToPB(d))
	}
	return resp, nil
}

func (s *ProgressServer) CompletedContentIDs(ctx context.Context, req *progresspb.CompletedContentRequest) (*progresspb.CompletedContentResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	ids, err := s.progress.CompletedContentIDs(ctx, req.UserID, req.ChapterID)
	if err != nil {
		return nil, s.fail(err)
	}
	if ids == nil {
		ids = []uint{}
	}
	return &progresspb.CompletedContentResponse{ContentIDs: ids}, nil
}

// allowEnroll: записать можно только себя, массовая запись - для админа.
func allowEnroll(a progresspb.Actor, userIDs []uint) error {
	actor := actorOf(a)
	if !actor.IsAdmin() && (len(userIDs) != 1 || userIDs[0] != actor.UserID) {
		return status.Error(codes.PermissionDenied, "only admin can enroll other users")
	}
	return nil
}

func (s *ProgressServer) Enroll(ctx context.Context, req *progresspb.EnrollRequest) (*progresspb.EnrollResponse, error) {
	if err := allowEnroll(req.Actor, req.UserIDs); err != nil {
		return nil, err
	}
	res, err := s.progress.Enroll(ctx, req.CourseID, req.UserIDs)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.EnrollResponse{
		CourseID: res.CourseID,
		Enrolled: res.Enrolled,
		Skipped:  res.Skipped,
		Message:  res.Message,
	}, nil
}

func (s *ProgressServer) SubmitAnswer(ctx context.Context, req *progresspb.SubmitAnswerRequest) (*progresspb.QuizAttempt, error) {
	rec, err := s.quiz.Submit(ctx, actorOf(req.Actor), usecase.SubmitInput{
		QuestionID:     req.QuestionID,
		EnrollmentID:   req.EnrollmentID,
		SelectedOption: req.SelectedOption,
		Source:         req.Source,
	})
	if err != nil {
		return nil, s.fail(err)
	}
	out := attemptToPB(*rec)
	return &out, nil
}

func (s *ProgressServer) ListAttempts(ctx context.Context, req *progresspb.ListAttemptsRequest) (*progresspb.ListAttemptsResponse, error) {
	list, err := s.quiz.ListAttempts(ctx, actorOf(req.Actor), req.QuestionID, req.EnrollmentID)
	if err != nil {
		return nil, s.fail(err)
	}
	resp := &progresspb.ListAttemptsResponse{Attempts: make([]progresspb.QuizAttempt, 0, len(list))}
	for _, rec := range list {
		resp.Attempts = append(resp.Attempts, attemptToPB(rec))
	}
	return resp, nil
}

func (s *ProgressServer) ComplianceSnapshot(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ComplianceSnapshot, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	snap, err := s.compliance.Snapshot(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.ComplianceSnapshot{
		UserID:                    snap.UserID,
		TechnicalHours:            snap.TechnicalHours,
		NonTechnicalHours:         snap.NonTechnicalHours,
		Compliant:                 snap.Compliant,
		TotalTechEnrolledHours:    snap.TotalTechEnrolledHours,
		TotalNonTechEnrolledHours: snap.TotalNonTechEnrolledHours,
		TechnicalTarget:           snap.Targets.Technical,
		NonTechnicalTarget:        snap.Targets.NonTechnical,
	}, nil
}

func (s *ProgressServer) Dashboard(ctx context.Context, req *progresspb.UserRequest) (*progresspb.DashboardStats, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	st, err := s.compliance.Dashboard(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.DashboardStats{
		EnrolledCount:      st.EnrolledCount,
		CompletedCount:     st.CompletedCount,
		ActiveCount:        st.ActiveCount,
		PendingCount:       st.PendingCount,
		CertificatesCount:  st.CertificatesCount,
		MyProgress:         st.MyProgress,
		TotalLearningHours: st.TotalLearningHours,
	}, nil
}

func (s *ProgressServer) ListCertificates(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ListCertificatesResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.compliance.Certificates(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	resp := &progresspb.ListCertificatesResponse{Certificates: make([]progresspb.Certificate, 0, len(list))}
	for _, c := range list {
		resp.Certificates = append(resp.Certificates, progresspb.Certificate{
			ID:                c.ID,
			UserID:            c.UserID,
			CourseID:          c.CourseID,
			CertificateNumber: c.CertificateNumber,
			IssueDate:         c.IssueDate,
		})
	}
	return resp, nil
}

func (s *ProgressServer) SubmitCertification(ctx context.Context, req *progresspb.SubmitCertificationRequest) (*progresspb.Certification, error) {
	c, err := s.certs.Submit(ctx, actorOf(req.Actor), usecase.CertificationInput{
		CourseName:          req.CourseName,
		Category:            req.Category,
		DateOfCompletion:    req.DateOfCompletion,
		Hours:               req.Hours,
		CertificateProvider: req.CertificateProvider,
		FileID:              req.FileID,
	})
	if err != nil {
		return nil, s.fail(err)
	}
	out := certificationToPB(c)
	return &out, nil
}

func (s *ProgressServer) ListCertifications(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ListCertificationsResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.certs.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	resp := &progresspb.ListCertificationsResponse{Certifications: make([]progresspb.Certification, 0, len(list))}
	for _, c := range list {
		resp.Certifications = append(resp.Certifications, certificationToPB(c))
	}
	return resp, nil
}

func (s *ProgressServer) ApproveCertification(ctx context.Context, req *progresspb.ReviewCertificationRequest) (*progresspb.Certification, error) {
	c, err := s.certs.Approve(ctx, actorOf(req.Actor), req.CertificationID)
	if err != nil {
		return nil, s.fail(err)
	}
	out := certificationToPB(c)
	return &out, nil
}

func (s *ProgressServer) RejectCertification(ctx context.Context, req *progresspb.ReviewCertificationRequest) (*progresspb.Certification, error) {
	c, err := s.certs.Reject(ctx, actorOf(req.Actor), req.CertificationID)
	if err != nil {
		return nil, s.fail(err)
	}
	out := certificationToPB(c)
	return &out, nil
}

func (s *ProgressServer) CourseStats(ctx context.Context, req *progresspb.CourseStatsRequest) (*progresspb.CourseStats, error) {
	st, err := s.progress.CourseStats(ctx, req.CourseID)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.CourseStats{
		CourseID:               st.CourseID,
		EnrolledStudentsCount:  st.EnrolledStudentsCount,
		CompletedStudentsCount: st.CompletedStudentsCount,
	}, nil
}

func (s *ProgressServer) CreateLearningPath(ctx context.Context, req *progresspb.CreateLearningPathRequest) (*progresspb.LearningPath, error) {
	p, err := s.paths.Create(ctx, actorOf(req.Actor), usecase.LearningPathInput{
		Name:      req.Name,
		Entity:    req.Entity,
		CourseIDs: req.CourseIDs,
	})
	if err != nil {
		return nil, s.fail(err)
	}
	out := pathToPB(p)
	return &out, nil
}

func (s *ProgressServer) GetLearningPath(ctx context.Context, req *progresspb.LearningPathRequest) (*progresspb.LearningPath, error) {
	p, err := s.paths.Get(ctx, req.LearningPathID)
	if err != nil {
		return nil, s.fail(err)
	}
	out := pathToPB(p)
	return &out, nil
}

func (s *ProgressServer) ListLearningPaths(ctx context.Context, _ *progresspb.ListLearningPathsRequest) (*progresspb.ListLearningPathsResponse, error) {
	list, err := s.paths.List(ctx)
	if err != nil {
		return nil, s.fail(err)
	}
	resp := &progresspb.ListLearningPathsResponse{LearningPaths: make([]progresspb.LearningPath, 0, len(list))}
	for _, p := range list {
		resp.LearningPaths = append(resp.LearningPaths, pathToPB(p))
	}
	return resp, nil
}

func (s *ProgressServer) EnrollLearningPath(ctx context.Context, req *progresspb.EnrollLearningPathRequest) (*progresspb.EnrollLearningPathResponse, error) {
	if err := allowEnroll(req.Actor, req.UserIDs); err != nil {
		return nil, err
	}
	res, err := s.paths.EnrollUsers(ctx, req.LearningPathID, req.UserIDs, req.DueDate)
	if err != nil {
		return nil, s.fail(err)
	}
	return &progresspb.EnrollLearningPathResponse{
		LearningPathID:    res.LearningPathID,
		Enrolled:          res.Enrolled,
		Updated:           res.Updated,
		CourseEnrollments: res.CourseEnrollments,
		Message:           res.Message,
	}, nil
}

func (s *ProgressServer) LearningPathProgress(ctx context.Context, req *progresspb.LearningPathProgressRequest) (*progresspb.LearningPathProgress, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	pp, err := s.paths.Progress(ctx, actorOf(req.Actor), req.UserID, req.LearningPathID)
	if err != nil {
		return nil, s.fail(err)
	}
	out := pathProgressToPB(pp)
	return &out, nil
}

func (s *ProgressServer) ListEnrolledLearningPaths(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ListLearningPathProgressResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.paths.ListEnrolled(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	return pathProgressListToPB(list), nil
}

func (s *ProgressServer) ListCompletedLearningPaths(ctx context.Context, req *progresspb.UserRequest) (*progresspb.ListLearningPathProgressResponse, error) {
	if err := allowUser(req.Actor, req.UserID); err != nil {
		return nil, err
	}
	list, err := s.paths.ListCompleted(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(err)
	}
	return pathProgressListToPB(list), nil
}
