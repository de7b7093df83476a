package handlers

import (
	"net/http"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	client progresspb.ProgressServiceClient
}

func NewProgressHandler(client progresspb.ProgressServiceClient) *ProgressHandler {
	return &ProgressHandler{client: client}
}

type markDoneReq struct {
	ContentID    uint `json:"content_id" binding:"required"`
	EnrollmentID uint `json:"enrollment_id" binding:"required"`
}

// POST /api/v1/progress/mark-done
func (h *ProgressHandler) MarkDone(c *gin.Context) {
	var req markDoneReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.client.MarkDone(c, &progresspb.MarkDoneRequest{
		Actor:        actorFrom(c),
		ContentID:    req.ContentID,
		EnrollmentID: req.EnrollmentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/v1/enrollments/:id/evaluate
func (h *ProgressHandler) Evaluate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.CheckCompletion(c, &progresspb.EnrollmentRequest{Actor: actorFrom(c), EnrollmentID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/enrollments/:id/state
func (h *ProgressHandler) State(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.ComputeState(c, &progresspb.EnrollmentRequest{Actor: actorFrom(c), EnrollmentID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/enrollments/:id
func (h *ProgressHandler) Detail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.EnrollmentDetail(c, &progresspb.EnrollmentRequest{Actor: actorFrom(c), EnrollmentID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/enrollments
func (h *ProgressHandler) List(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ListEnrollments(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Enrollments)
}

type enrollReq struct {
	UserIDs []uint `json:"user_ids"`
}

// POST /api/v1/courses/:id/enroll
// Без тела записывает текущего пользователя.
func (h *ProgressHandler) Enroll(c *gin.Context) {
	courseID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req enrollReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	actor := actorFrom(c)
	if len(req.UserIDs) == 0 {
		req.UserIDs = []uint{actor.UserID}
	}

	res, err := h.client.Enroll(c, &progresspb.EnrollRequest{Actor: actor, CourseID: courseID, UserIDs: req.UserIDs})
	if err != nil {
		writeError(c, err)
		return
	}
	code := http.StatusCreated
	if len(res.Enrolled) == 0 {
		code = http.StatusOK
	}
	c.JSON(code, res)
}

// GET /api/v1/courses/:id/stats
func (h *ProgressHandler) CourseStats(c *gin.Context) {
	courseID, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.CourseStats(c, &progresspb.CourseStatsRequest{Actor: actorFrom(c), CourseID: courseID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/chapters/:id/completed-contents
func (h *ProgressHandler) CompletedContents(c *gin.Context) {
	chapterID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.CompletedContentIDs(c, &progresspb.CompletedContentRequest{
		Actor:     actorFrom(c),
		UserID:    userID,
		ChapterID: chapterID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
