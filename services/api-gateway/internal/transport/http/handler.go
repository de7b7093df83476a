package handlers

import (
	"net/http"
	"strconv"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func actorFrom(c *gin.Context) progresspb.Actor {
	return progresspb.Actor{UserID: c.GetUint("userId"), Role: c.GetString("role")}
}

// targetUser - чьи данные читаем. По умолчанию свои, админ может передать ?user_id=.
// Чужой user_id от не-админа отклонит сервис прогресса.
func targetUser(c *gin.Context) (uint, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return c.GetUint("userId"), true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return 0, false
	}
	return uint(id), true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is required"})
		return 0, false
	}
	return uint(id), true
}

// writeError переводит gRPC-код сервиса прогресса в HTTP-статус.
func writeError(c *gin.Context, err error) {
	st, ok := status.FromError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	code := http.StatusInternalServerError
	msg := st.Message()
	switch st.Code() {
	case codes.InvalidArgument:
		code = http.StatusBadRequest
	case codes.NotFound:
		code = http.StatusNotFound
	case codes.PermissionDenied:
		code = http.StatusForbidden
	case codes.Unauthenticated:
		code = http.StatusUnauthorized
	case codes.FailedPrecondition, codes.Aborted, codes.AlreadyExists:
		code = http.StatusConflict
	case codes.Unavailable:
		code, msg = http.StatusServiceUnavailable, "progress service unavailable"
	case codes.DeadlineExceeded:
		code, msg = http.StatusGatewayTimeout, "progress service timeout"
	default:
		msg = "internal error"
	}
	c.JSON(code, gin.H{"error": msg})
}
