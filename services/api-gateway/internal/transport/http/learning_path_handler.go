package handlers

import (
	"net/http"
	"time"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
)

type LearningPathHandler struct {
	client progresspb.ProgressServiceClient
}

func NewLearningPathHandler(client progresspb.ProgressServiceClient) *LearningPathHandler {
	return &LearningPathHandler{client: client}
}

type createLearningPathReq struct {
	Name      string `json:"name" binding:"required"`
	Entity    string `json:"entity"`
	CourseIDs []uint `json:"course_ids" binding:"required,min=1"`
}

// POST /api/v1/admin/learning-paths
func (h *LearningPathHandler) Create(c *gin.Context) {
	var req createLearningPathReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.client.CreateLearningPath(c, &progresspb.CreateLearningPathRequest{
		Actor:     actorFrom(c),
		Name:      req.Name,
		Entity:    req.Entity,
		CourseIDs: req.CourseIDs,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/v1/learning-paths
func (h *LearningPathHandler) List(c *gin.Context) {
	res, err := h.client.ListLearningPaths(c, &progresspb.ListLearningPathsRequest{Actor: actorFrom(c)})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.LearningPaths)
}

// GET /api/v1/learning-paths/:id
func (h *LearningPathHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	res, err := h.client.GetLearningPath(c, &progresspb.LearningPathRequest{Actor: actorFrom(c), LearningPathID: id})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type enrollLearningPathReq struct {
	UserIDs []uint `json:"user_ids"`
	DueDate string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

// POST /api/v1/learning-paths/:id/enroll
// Без тела записывает текущего пользователя со сроком по умолчанию.
func (h *LearningPathHandler) Enroll(c *gin.Context) {
	pathID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req enrollLearningPathReq
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
	var due time.Time
	if req.DueDate != "" {
		due, _ = time.Parse(time.DateOnly, req.DueDate)
	}

	res, err := h.client.EnrollLearningPath(c, &progresspb.EnrollLearningPathRequest{
		Actor:          actor,
		LearningPathID: pathID,
		UserIDs:        req.UserIDs,
		DueDate:        due,
	})
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

// GET /api/v1/learning-paths/:id/progress
func (h *LearningPathHandler) Progress(c *gin.Context) {
	pathID, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.LearningPathProgress(c, &progresspb.LearningPathProgressRequest{
		Actor:          actorFrom(c),
		UserID:         userID,
		LearningPathID: pathID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/v1/learning-paths/enrolled
func (h *LearningPathHandler) Enrolled(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ListEnrolledLearningPaths(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.LearningPaths)
}

// GET /api/v1/learning-paths/completed
func (h *LearningPathHandler) Completed(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}
	res, err := h.client.ListCompletedLearningPaths(c, &progresspb.UserRequest{Actor: actorFrom(c), UserID: userID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.LearningPaths)
}
