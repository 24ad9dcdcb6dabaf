package handler

import (
	"log/slog"

	"github.com/cuongbtq/resume-analyzer-be/internal/api/storage"
	"github.com/cuongbtq/resume-analyzer-be/internal/uploads"
	"github.com/cuongbtq/resume-analyzer-be/shared/postgresql"
	"github.com/cuongbtq/resume-analyzer-be/shared/rabbitmq"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger         *slog.Logger
	DBClient       *postgresql.Client
	RabbitClient   *rabbitmq.Client
	Uploads        *uploads.Store
	MaxUploadBytes int64
}

// JobHandler handles resume upload and job query HTTP requests
type JobHandler struct {
	logger         *slog.Logger
	storage        *storage.Storage
	rabbitClient   *rabbitmq.Client
	uploads        *uploads.Store
	maxUploadBytes int64
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:         deps.Logger,
		storage:        storage.NewStorage(deps.DBClient),
		rabbitClient:   deps.RabbitClient,
		uploads:        deps.Uploads,
		maxUploadBytes: deps.MaxUploadBytes,
	}
}
