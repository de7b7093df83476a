package progresspb

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "progress.ProgressService"

type ProgressServiceServer interface {
	MarkDone(context.Context, *MarkDoneRequest) (*MarkDoneResponse, error)
	CheckCompletion(context.Context, *EnrollmentRequest) (*CheckCompletionResponse, error)
	ComputeState(context.Context, *EnrollmentRequest) (*CompletionState, error)
	EnrollmentDetail(context.Context, *EnrollmentRequest) (*EnrollmentDetail, error)
	ListEnrollments(context.Context, *UserRequest) (*ListEnrollmentsResponse, error)
	CompletedContentIDs(context.Context, *CompletedContentRequest) (*CompletedContentResponse, error)
	Enroll(context.Context, *EnrollRequest) (*EnrollResponse, error)
	SubmitAnswer(context.Context, *SubmitAnswerRequest) (*QuizAttempt, error)
	ListAttempts(context.Context, *ListAttemptsRequest) (*ListAttemptsResponse, error)
	ComplianceSnapshot(context.Context, *UserRequest) (*ComplianceSnapshot, error)
	Dashboard(context.Context, *UserRequest) (*DashboardStats, error)
	ListCertificates(context.Context, *UserRequest) (*ListCertificatesResponse, error)
	SubmitCertification(context.Context, *SubmitCertificationRequest) (*Certification, error)
	ListCertifications(context.Context, *UserRequest) (*ListCertificationsResponse, error)
	ApproveCertification(context.Context, *ReviewCertificationRequest) (*Certification, error)
	RejectCertification(context.Context, *ReviewCertificationRequest) (*Certification, error)
	CourseStats(context.Context, *CourseStatsRequest) (*CourseStats, error)
	CreateLearningPath(context.Context, *CreateLearningPathRequest) (*LearningPath, error)
	GetLearningPath(context.Context, *LearningPathRequest) (*LearningPath, error)
	ListLearningPaths(context.Context, *ListLearningPathsRequest) (*ListLearningPathsResponse, error)
	EnrollLearningPath(context.Context, *EnrollLearningPathRequest) (*EnrollLearningPathResponse, error)
	LearningPathProgress(context.Context, *LearningPathProgressRequest) (*LearningPathProgress, error)
	ListEnrolledLearningPaths(context.Context, *UserRequest) (*ListLearningPathProgressResponse, error)
	ListCompletedLearningPaths(context.Context, *UserRequest) (*ListLearningPathProgressResponse, error)
}

type ProgressServiceClient interface {
	MarkDone(ctx context.Context, in *MarkDoneRequest, opts ...grpc.CallOption) (*MarkDoneResponse, error)
	CheckCompletion(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*CheckCompletionResponse, error)
	ComputeState(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*CompletionState, error)
	EnrollmentDetail(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*EnrollmentDetail, error)
	ListEnrollments(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListEnrollmentsResponse, error)
	CompletedContentIDs(ctx context.Context, in *CompletedContentRequest, opts ...grpc.CallOption) (*CompletedContentResponse, error)
	Enroll(ctx context.Context, in *EnrollRequest, opts ...grpc.CallOption) (*EnrollResponse, error)
	SubmitAnswer(ctx context.Context, in *SubmitAnswerRequest, opts ...grpc.CallOption) (*QuizAttempt, error)
	ListAttempts(ctx context.Context, in *ListAttemptsRequest, opts ...grpc.CallOption) (*ListAttemptsResponse, error)
	ComplianceSnapshot(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ComplianceSnapshot, error)
	Dashboard(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*DashboardStats, error)
	ListCertificates(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListCertificatesResponse, error)
	SubmitCertification(ctx context.Context, in *SubmitCertificationRequest, opts ...grpc.CallOption) (*Certification, error)
	ListCertifications(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListCertificationsResponse, error)
	ApproveCertification(ctx context.Context, in *ReviewCertificationRequest, opts ...grpc.CallOption) (*Certification, error)
	RejectCertification(ctx context.Context, in *ReviewCertificationRequest, opts ...grpc.CallOption) (*Certification, error)
	CourseStats(ctx context.Context, in *CourseStatsRequest, opts ...grpc.CallOption) (*CourseStats, error)
	CreateLearningPath(ctx context.Context, in *CreateLearningPathRequest, opts ...grpc.CallOption) (*LearningPath, error)
	GetLearningPath(ctx context.Context, in *LearningPathRequest, opts ...grpc.CallOption) (*LearningPath, error)
	ListLearningPaths(ctx context.Context, in *ListLearningPathsRequest, opts ...grpc.CallOption) (*ListLearningPathsResponse, error)
	EnrollLearningPath(ctx context.Context, in *EnrollLearningPathRequest, opts ...grpc.CallOption) (*EnrollLearningPathResponse, error)
	LearningPathProgress(ctx context.Context, in *LearningPathProgressRequest, opts ...grpc.CallOption) (*LearningPathProgress, error)
	ListEnrolledLearningPaths(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListLearningPathProgressResponse, error)
	ListCompletedLearningPaths(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListLearningPathProgressResponse, error)
}

var ProgressService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProgressServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("MarkDone", ProgressServiceServer.MarkDone),
		unary("CheckCompletion", ProgressServiceServer.CheckCompletion),
		unary("ComputeState", ProgressServiceServer.ComputeState),
		unary("EnrollmentDetail", ProgressServiceServer.EnrollmentDetail),
		unary("ListEnrollments", ProgressServiceServer.ListEnrollments),
		unary("CompletedContentIDs", ProgressServiceServer.CompletedContentIDs),
		unary("Enroll", ProgressServiceServer.Enroll),
		unary("SubmitAnswer", ProgressServiceServer.SubmitAnswer),
		unary("ListAttempts", ProgressServiceServer.ListAttempts),
		unary("ComplianceSnapshot", ProgressServiceServer.ComplianceSnapshot),
		unary("Dashboard", ProgressServiceServer.Dashboard),
		unary("ListCertificates", ProgressServiceServer.ListCertificates),
		unary("SubmitCertification", ProgressServiceServer.SubmitCertification),
		unary("ListCertifications", ProgressServiceServer.ListCertifications),
		unary("ApproveCertification", ProgressServiceServer.ApproveCertification),
		unary("RejectCertification", ProgressServiceServer.RejectCertification),
		unary("CourseStats", ProgressServiceServer.CourseStats),
		unary("CreateLearningPath", ProgressServiceServer.CreateLearningPath),
		unary("GetLearningPath", ProgressServiceServer.GetLearningPath),
		unary("ListLearningPaths", ProgressServiceServer.ListLearningPaths),
		unary("EnrollLearningPath", ProgressServiceServer.EnrollLearningPath),
		unary("LearningPathProgress", ProgressServiceServer.LearningPathProgress),
		unary("ListEnrolledLearningPaths", ProgressServiceServer.ListEnrolledLearningPaths),
		unary("ListCompletedLearningPaths", ProgressServiceServer.ListCompletedLearningPaths),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "progress",
}

func RegisterProgressServiceServer(s grpc.ServiceRegistrar, srv ProgressServiceServer) {
	s.RegisterService(&ProgressService_ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary собирает обработчик метода так же, как это делает protoc-gen-go-grpc.
func unary[Req, Resp any](name string, call func(ProgressServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ProgressServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ProgressServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

type progressServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProgressServiceClient(cc grpc.ClientConnInterface) ProgressServiceClient {
	return &progressServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, name string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(name), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *progressServiceClient) MarkDone(ctx context.Context, in *MarkDoneRequest, opts ...grpc.CallOption) (*MarkDoneResponse, error) {
	return invoke[MarkDoneResponse](ctx, c.cc, "MarkDone", in, opts)
}

func (c *progressServiceClient) CheckCompletion(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*CheckCompletionResponse, error) {
	return invoke[CheckCompletionResponse](ctx, c.cc, "CheckCompletion", in, opts)
}

func (c *progressServiceClient) ComputeState(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*CompletionState, error) {
	return invoke[CompletionState](ctx, c.cc, "ComputeState", in, opts)
}

func (c *progressServiceClient) EnrollmentDetail(ctx context.Context, in *EnrollmentRequest, opts ...grpc.CallOption) (*EnrollmentDetail, error) {
	return invoke[EnrollmentDetail](ctx, c.cc, "EnrollmentDetail", in, opts)
}

func (c *progressServiceClient) ListEnrollments(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListEnrollmentsResponse, error) {
	return invoke[ListEnrollmentsResponse](ctx, c.cc, "ListEnrollments", in, opts)
}

func (c *progressServiceClient) CompletedContentIDs(ctx context.Context, in *CompletedContentRequest, opts ...grpc.CallOption) (*CompletedContentResponse, error) {
	return invoke[CompletedContentResponse](ctx, c.cc, "CompletedContentIDs", in, opts)
}

func (c *progressServiceClient) Enroll(ctx context.Context, in *EnrollRequest, opts ...grpc.CallOption) (*EnrollResponse, error) {
	return invoke[EnrollResponse](ctx, c.cc, "Enroll", in, opts)
}

func (c *progressServiceClient) SubmitAnswer(ctx context.Context, in *SubmitAnswerRequest, opts ...grpc.CallOption) (*QuizAttempt, error) {
	return invoke[QuizAttempt](ctx, c.cc, "SubmitAnswer", in, opts)
}

func (c *progressServiceClient) ListAttempts(ctx context.Context, in *ListAttemptsRequest, opts ...grpc.CallOption) (*ListAttemptsResponse, error) {
	return invoke[ListAttemptsResponse](ctx, c.cc, "ListAttempts", in, opts)
}

func (c *progressServiceClient) ComplianceSnapshot(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ComplianceSnapshot, error) {
	return invoke[ComplianceSnapshot](ctx, c.cc, "ComplianceSnapshot", in, opts)
}

func (c *progressServiceClient) Dashboard(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*DashboardStats, error) {
	return invoke[DashboardStats](ctx, c.cc, "Dashboard", in, opts)
}

func (c *progressServiceClient) ListCertificates(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListCertificatesResponse, error) {
	return invoke[ListCertificatesResponse](ctx, c.cc, "ListCertificates", in, opts)
}

func (c *progressServiceClient) SubmitCertification(ctx context.Context, in *SubmitCertificationRequest, opts ...grpc.CallOption) (*Certification, error) {
	return invoke[Certification](ctx, c.cc, "SubmitCertification", in, opts)
}

func (c *progressServiceClient) ListCertifications(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListCertificationsResponse, error) {
	return invoke[ListCertificationsResponse](ctx, c.cc, "ListCertifications", in, opts)
}

func (c *progressServiceClient) ApproveCertification(ctx context.Context, in *ReviewCertificationRequest, opts ...grpc.CallOption) (*Certification, error) {
	return invoke[Certification](ctx, c.cc, "ApproveCertification", in, opts)
}

func (c *progressServiceClient) RejectCertification(ctx context.Context, in *ReviewCertificationRequest, opts ...grpc.CallOption) (*Certification, error) {
	return invoke[Certification](ctx, c.cc, "RejectCertification", in, opts)
}

func (c *progressServiceClient) CourseStats(ctx context.Context, in *CourseStatsRequest, opts ...grpc.CallOption) (*CourseStats, error) {
	return invoke[CourseStats](ctx, c.cc, "CourseStats", in, opts)
}

func (c *progressServiceClient) CreateLearningPath(ctx context.Context, in *CreateLearningPathRequest, opts ...grpc.CallOption) (*LearningPath, error) {
	return invoke[LearningPath](ctx, c.cc, "CreateLearningPath", in, opts)
}

func (c *progressServiceClient) GetLearningPath(ctx context.Context, in *LearningPathRequest, opts ...grpc.CallOption) (*LearningPath, error) {
	return invoke[LearningPath](ctx, c.cc, "GetLearningPath", in, opts)
}

func (c *progressServiceClient) ListLearningPaths(ctx context.Context, in *ListLearningPathsRequest, opts ...grpc.CallOption) (*ListLearningPathsResponse, error) {
	return invoke[ListLearningPathsResponse](ctx, c.cc, "ListLearningPaths", in, opts)
}

func (c *progressServiceClient) EnrollLearningPath(ctx context.Context, in *EnrollLearningPathRequest, opts ...grpc.CallOption) (*EnrollLearningPathResponse, error) {
	return invoke[EnrollLearningPathResponse](ctx, c.cc, "EnrollLearningPath", in, opts)
}

func (c *progressServiceClient) LearningPathProgress(ctx context.Context, in *LearningPathProgressRequest, opts ...grpc.CallOption) (*LearningPathProgress, error) {
	return invoke[LearningPathProgress](ctx, c.cc, "LearningPathProgress", in, opts)
}

func (c *progressServiceClient) ListEnrolledLearningPaths(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListLearningPathProgressResponse, error) {
	return invoke[ListLearningPathProgressResponse](ctx, c.cc, "ListEnrolledLearningPaths", in, opts)
}

func (c *progressServiceClient) ListCompletedLearningPaths(ctx context.Context, in *UserRequest, opts ...grpc.CallOption) (*ListLearningPathProgressResponse, error) {
	return invoke[ListLearningPathProgressResponse](ctx, c.cc, "ListCompletedLearningPaths", in, opts)
}
