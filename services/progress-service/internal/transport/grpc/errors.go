package grpc_server

import (
	"context"
	"errors"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus переводит доменные ошибки в gRPC-коды. Всё неизвестное - Internal,
// текст внутренней ошибки наружу не уходит.
func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrEnrollmentNotFound),
		errors.Is(err, domain.ErrContentNotFound),
		errors.Is(err, domain.ErrQuestionNotFound),
		errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrCertificationNotFound),
		errors.Is(err, domain.ErrLearningPathNotFound),
		errors.Is(err, domain.ErrPathEnrollmentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrOwnershipMismatch),
		errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrInvalidCategory):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrCourseNotApproved),
		errors.Is(err, domain.ErrAlreadyApproved):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrAttemptConflict):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// LoggingInterceptor пишет каждый вызов, клиентские ошибки - на уровне debug.
func LoggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	log = log.With("component", "grpc")
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		kv := []interface{}{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			log.Debug("rpc handled", kv...)
		case codes.Internal, codes.Unknown:
			log.Error("rpc failed", kv...)
		default:
			log.Debug("rpc rejected", append(kv, "error", err)...)
		}
		return resp, err
	}
}
