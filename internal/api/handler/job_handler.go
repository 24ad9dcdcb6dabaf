package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cuongbtq/resume-analyzer-be/internal/api/domain"
	"github.com/cuongbtq/resume-analyzer-be/internal/api/dto"
	"github.com/cuongbtq/resume-analyzer-be/internal/api/model"
	"github.com/cuongbtq/resume-analyzer-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadResume handles POST /upload
// Accepts a multipart resume upload and enqueues it for analysis
func (h *JobHandler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.logger.Error("Missing upload file", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "file is required",
		})
		return
	}

	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "file too large",
		})
		return
	}

	jobRole := c.PostForm("job_role")
	email := c.PostForm("email")

	jobID := uuid.New().String()
	now := time.Now()

	job := model.Job{
		JobID:     jobID,
		Name:      fileHeader.Filename,
		Status:    domain.JobStatusSaving,
		JobRole:   nullString(jobRole),
		Email:     nullString(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	// the record exists at saving before any disk write, so a crash
	// mid-upload leaves an inspectable row rather than an orphan file
	if err := h.storage.CreateJob(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job record",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job",
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open upload file",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store file",
		})
		return
	}
	defer src.Close()

	sourcePath, err := h.uploads.SaveSource(jobID, fileHeader.Filename, src)
	if err != nil {
		h.logger.Error("Failed to save upload file",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store file",
		})
		return
	}

	if err := h.storage.UpdateStatus(c.Request.Context(), jobID, domain.JobStatusQueued); err != nil {
		h.logger.Error("Failed to mark job queued",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to enqueue job",
		})
		return
	}

	msg, err := json.Marshal(gin.H{
		"job_id":      jobID,
		"source_path": sourcePath,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to enqueue job",
		})
		return
	}

	if err := h.rabbitClient.Publish(c.Request.Context(), msg, "application/json"); err != nil {
		h.logger.Error("Failed to publish job message",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to enqueue job",
		})
		return
	}

	h.logger.Info("Resume accepted",
		slog.String("job_id", jobID),
		slog.String("name", fileHeader.Filename),
		slog.Int64("size", fileHeader.Size),
		slog.Bool("has_role", jobRole != ""),
		slog.Bool("has_email", email != ""),
	)

	c.JSON(http.StatusAccepted, dto.UploadResponse{
		Status: domain.JobStatusQueued,
		JobID:  jobID,
	})
}

// GetJob handles GET /jobs/:job_id
// Retrieves the current state and, once available, the analysis result
func (h *JobHandler) GetJob(c *gin.Context) {
	jobID := c.Param("job_id")

	if _, err := uuid.Parse(jobID); err != nil {
		h.logger.Error("Invalid job_id format", slog.String("job_id", jobID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "job_id must be a valid UUID",
		})
		return
	}

	job, err := h.storage.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, dto.JobView{Found: false})
			return
		}
		h.logger.Error("Failed to get job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	c.JSON(http.StatusOK, toJobView(job))
}

// ListJobs handles GET /jobs
// Lists jobs with optional status filtering and cursor pagination
func (h *JobHandler) ListJobs(c *gin.Context) {
	var req dto.ListJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	filter := storage.JobFilter{
		Status:   req.Status,
		PageSize: req.PageSize,
		Cursor:   cursor,
	}

	jobs, err := h.storage.ListJobs(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	hasMore := len(jobs) > req.PageSize
	if hasMore {
		jobs = jobs[:req.PageSize]
	}

	jobResponse := make([]dto.JobView, len(jobs))
	for i := range jobs {
		jobResponse[i] = toJobView(&jobs[i])
	}

	var nextCursor string
	if hasMore {
		lastJob := jobs[len(jobs)-1]
		nextCursor = EncodeJobCursor(&storage.JobCursor{
			CreatedAt: lastJob.CreatedAt,
			JobID:     lastJob.JobID,
		})
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{
		Jobs:       jobResponse,
		NextCursor: nextCursor,
	})
}

func toJobView(job *model.Job) dto.JobView {
	view := dto.JobView{
		Found:     true,
		JobID:     job.JobID,
		Name:      job.Name,
		Status:    job.Status,
		Result:    job.Result,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}

	if job.JobRole.Valid {
		view.JobRole = job.JobRole.String
	}

	if job.EmailStatus.Valid {
		view.EmailStatus = job.EmailStatus.String
	}

	if job.PageCount.Valid {
		count := int(job.PageCount.Int64)
		view.PageCount = &count
	}

	return view
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
