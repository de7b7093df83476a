package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/middleware"
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Client         progresspb.ProgressServiceClient
	Tokens         middleware.TokenValidator
	Limiter        *middleware.RateLimiter
	AllowedOrigins string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	config := cors.DefaultConfig()
	config.AllowOrigins = splitOrigins(deps.AllowedOrigins)
	config.AllowCredentials = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	progressHandler := NewProgressHandler(deps.Client)
	quizHandler := NewQuizHandler(deps.Client)
	complianceHandler := NewComplianceHandler(deps.Client)
	certificationHandler := NewCertificationHandler(deps.Client)
	learningPathHandler := NewLearningPathHandler(deps.Client)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(deps.Tokens))
	{
		api.POST("/progress/mark-done", deps.Limiter.Limit("mark_done", 120, time.Minute), progressHandler.MarkDone)

		enrollments := api.Group("/enrollments")
		{
			enrollments.GET("", progressHandler.List)
			enrollments.GET("/:id", progressHandler.Detail)
			enrollments.GET("/:id/state", progressHandler.State)
			enrollments.POST("/:id/evaluate", progressHandler.Evaluate)
		}
		api.POST("/courses/:id/enroll", progressHandler.Enroll)
		api.GET("/courses/:id/stats", progressHandler.CourseStats)
		api.GET("/chapters/:id/completed-contents", progressHandler.CompletedContents)

		quiz := api.Group("/quiz")
		{
			quiz.POST("/answers", deps.Limiter.Limit("quiz_answer", 60, time.Minute), quizHandler.Submit)
			quiz.GET("/attempts", quizHandler.Attempts)
		}

		api.GET("/compliance", complianceHandler.Snapshot)
		api.GET("/dashboard", complianceHandler.Dashboard)
		api.GET("/certificates", complianceHandler.Certificates)

		paths := api.Group("/learning-paths")
		{
			paths.GET("", learningPathHandler.List)
			paths.GET("/enrolled", learningPathHandler.Enrolled)
			paths.GET("/completed", learningPathHandler.Completed)
			paths.GET("/:id", learningPathHandler.Get)
			paths.GET("/:id/progress", learningPathHandler.Progress)
			paths.POST("/:id/enroll", learningPathHandler.Enroll)
		}

		api.POST("/certifications", deps.Limiter.Limit("certification", 10, time.Hour), certificationHandler.Submit)
		api.GET("/certifications", certificationHandler.List)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("/certifications/:id/approve", certificationHandler.Approve)
			admin.POST("/certifications/:id/reject", certificationHandler.Reject)
			admin.POST("/learning-paths", learningPathHandler.Create)
		}
	}

	return r
}

func splitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:3000"}
	}
	return out
}
