package handlers

import (
	"net/http"

	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	client progresspb.ProgressServiceClient
}

func NewQuizHandler(client progresspb.ProgressServiceClient) *QuizHandler {
	return &QuizHandler{client: client}
}

type submitAnswerReq struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	EnrollmentID   uint   `json:"enrollment_id" binding:"required"`
	SelectedOption string `json:"selected_option" binding:"required"`
	Source         string `json:"source" binding:"required"`
}

// POST /api/v1/quiz/answers
// Статус записи не меняется, клиент после ответов вызывает /enrollments/:id/evaluate.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req submitAnswerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.client.SubmitAnswer(c, &progresspb.SubmitAnswerRequest{
		Actor:          actorFrom(c),
		QuestionID:     req.QuestionID,
		EnrollmentID:   req.EnrollmentID,
		SelectedOption: req.SelectedOption,
		Source:         req.Source,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/v1/quiz/attempts?question_id=&enrollment_id=
func (h *QuizHandler) Attempts(c *gin.Context) {
	questionID, ok := queryID(c, "question_id")
	if !ok {
		return
	}
	enrollmentID, ok := queryID(c, "enrollment_id")
	if !ok {
		return
	}

	res, err := h.client.ListAttempts(c, &progresspb.ListAttemptsRequest{
		Actor:        actorFrom(c),
		QuestionID:   questionID,
		EnrollmentID: enrollmentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Attempts)
}
