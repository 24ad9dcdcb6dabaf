package router

import (
	"net/http"

	"github.com/cuongbtq/resume-analyzer-be/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "resume-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)

	// POST /upload - submit a resume for analysis
	r.POST("/upload", jobHandler.UploadResume)

	jobs := r.Group("/jobs")
	{
		// GET /jobs - list jobs with filtering and pagination
		jobs.GET("", jobHandler.ListJobs)

		// GET /jobs/:job_id - poll job state and result
		jobs.GET("/:job_id", jobHandler.GetJob)
	}

	return r
}
