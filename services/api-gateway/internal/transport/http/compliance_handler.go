package handlers

import (
	"net/http"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct {
	client progresspb.ProgressServiceClient
}

func NewComplianceHandler(client progresspb.ProgressServiceClient) *ComplianceHandler {
	return &ComplianceHandler{client: client}
}

// GET /api/v1/compliance
func (h *ComplianceHandler) Snapshot(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ComplianceSnapshot(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/dashboard
func (h *ComplianceHandler) Dashboard(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.Dashboard(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/certificates
func (h *ComplianceHandler) Certificates(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ListCertificates(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Certificates)
}
