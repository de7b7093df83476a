package handlers

import (
	"net/http"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
)

type CertificationHandler struct {
	client progresspb.ProgressServiceClient
}

func NewCertificationHandler(client progresspb.ProgressServiceClient) *CertificationHandler {
	return &CertificationHandler{client: client}
}

type submitCertificationReq struct {
	CourseName          string `json:"course_name" binding:"required"`
	Category            string `json:"category" binding:"required,oneof=technical nonTechnical"`
	DateOfCompletion    string `json:"date_of_completion" binding:"required,datetime=2006-01-02"`
	Hours               int    `json:"hours" binding:"required,gt=0"`
	CertificateProvider string `json:"certificate_provider" binding:"required"`
	FileID              string `json:"file_id"`
}

// POST /api/v1/certifications
func (h *CertificationHandler) Submit(c *gin.Context) {
	var req submitCertificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// Формат уже проверен биндингом
	date, _ := time.Parse(time.DateOnly, req.DateOfCompletion)

	res, err := h.client.SubmitCertification(c, &progresspb.SubmitCertificationRequest{
		Actor:               actorFrom(c),
		CourseName:          req.CourseName,
		Category:            req.Category,
		DateOfCompletion:    date,
		Hours:               req.Hours,
		CertificateProvider: req.CertificateProvider,
		FileID:              req.FileID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/v1/certifications
func (h *CertificationHandler) List(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ListCertifications(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Certifications)
}

// POST /api/v1/admin/certifications/:id/approve
func (h *CertificationHandler) Approve(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.ApproveCertification(c, &progresspb.ReviewCertificationRequest{Actor: actorFrom(c), CertificationID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/admin/certifications/:id/reject
func (h *CertificationHandler) Reject(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.RejectCertification(c, &progresspb.ReviewCertificationRequest{Actor: actorFrom(c), CertificationID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
