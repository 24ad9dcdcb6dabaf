package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongbtq/resume-analyzer-be/internal/analysis"
	"github.com/cuongbtq/resume-analyzer-be/internal/inference"
	"github.com/cuongbtq/resume-analyzer-be/internal/rasterize"
	"github.com/cuongbtq/resume-analyzer-be/internal/worker/domain"
)

// JobStore is the job-record persistence the pipeline writes through
type JobStore interface {
	GetJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	UpdateStatus(ctx context.Context, jobID string, status domain.Status) error
	SetConverted(ctx context.Context, jobID string, pageCount int) error
	SetResult(ctx context.Context, jobID string, result []byte) error
	SetEmailStatus(ctx context.Context, jobID, emailStatus string) error
	MarkFailed(ctx context.Context, jobID, stage, message string) error
}

// Rasterizer renders a source document into ordered page images
type Rasterizer interface {
	Render(ctx context.Context, sourcePath, destDir string) ([]string, error)
}

// Inferencer sends a prompt plus page images to a vision model
type Inferencer interface {
	Infer(ctx context.Context, prompt string, imagePaths []string) (string, error)
}

// Notifier delivers the analysis result to the submitter
type Notifier interface {
	Notify(recipient string, result analysis.Result, jobRole string) error
}

// Workspace is the job-scoped working storage for transient artifacts
type Workspace interface {
	PagesDir(jobID string) string
	Release(jobID string)
}

// Pipeline runs the multi-stage analysis for one dequeued job: load the
// record, rasterize, infer, parse, notify, and release working storage.
// It is the sole owner of the record's status transitions after intake.
type Pipeline struct {
	logger     *slog.Logger
	store      JobStore
	rasterizer Rasterizer
	inferencer Inferencer
	notifier   Notifier
	workspace  Workspace
	jobTimeout time.Duration
}

// PipelineConfig holds the pipeline's injected collaborators
type PipelineConfig struct {
	Logger     *slog.Logger
	Store      JobStore
	Rasterizer Rasterizer
	Inferencer Inferencer
	Notifier   Notifier
	Workspace  Workspace
	JobTimeout time.Duration
}

// NewPipeline creates a Pipeline
func NewPipeline(cfg *PipelineConfig) *Pipeline {
	return &Pipeline{
		logger:     cfg.Logger,
		store:      cfg.Store,
		rasterizer: cfg.Rasterizer,
		inferencer: cfg.Inferencer,
		notifier:   cfg.Notifier,
		workspace:  cfg.Workspace,
		jobTimeout: cfg.JobTimeout,
	}
}

// Run executes the pipeline for one delivery. The returned error drives
// the caller's ack/nack decision; a nil return means the job reached a
// terminal state.
func (p *Pipeline) Run(ctx context.Context, msg *domain.JobMessage) error {
	if p.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.jobTimeout)
		defer cancel()
	}

	log := p.logger.With(slog.String("job_id", msg.JobID))

	// Stage A: load the record and claim it as processing
	job, err := p.store.GetJobByID(ctx, msg.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			// no record means no notification channel to resolve;
			// abort quietly rather than surfacing a user-visible failure
			log.Error("Job record missing, aborting invocation")
			return err
		}
		return fmt.Errorf("failed to load job: %w", err)
	}

	// role and email are captured before any status write so later
	// stages see the values from submission time
	jobRole := job.JobRole
	email := job.Email

	if err := p.store.UpdateStatus(ctx, msg.JobID, domain.StatusProcessing); err != nil {
		return err
	}

	// working storage is released on every exit path from here on
	defer p.workspace.Release(msg.JobID)

	// Stage B: rasterize; a conversion failure degrades to an empty
	// page set so the job still reaches a terminal state
	pages, err := p.rasterizer.Render(ctx, msg.SourcePath, p.workspace.PagesDir(msg.JobID))
	if err != nil {
		log.Warn("Rasterization failed, continuing with empty page set",
			slog.Bool("conversion_error", errors.Is(err, rasterize.ErrConversion)),
			slog.Any("error", err),
		)
		pages = nil
	} else {
		log.Info("Document converted",
			slog.Int("pages", len(pages)),
		)
		if err := p.store.SetConverted(ctx, msg.JobID, len(pages)); err != nil {
			log.Error("Failed to record conversion", slog.Any("error", err))
		}
	}

	// Stage C: build the prompt and call the model
	raw, err := p.inferencer.Infer(ctx, analysis.BuildPrompt(jobRole), pages)
	if err != nil {
		log.Error("Inference failed",
			slog.Bool("inference_error", errors.Is(err, inference.ErrInference)),
			slog.Any("error", err),
		)
		if msg.Redelivered {
			// the queue already retried this job once; give up and
			// record the failure instead of leaving it at processing
			if markErr := p.store.MarkFailed(ctx, msg.JobID, domain.StageInference, err.Error()); markErr != nil {
				log.Error("Failed to mark job failed", slog.Any("error", markErr))
			}
		}
		return err
	}

	// Stage D: parse never fails; a parse miss degrades to a
	// summary-only result carrying the raw output
	result := analysis.Parse(raw)
	resultJSON, err := result.MarshalJSONB()
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := p.store.SetResult(ctx, msg.JobID, resultJSON); err != nil {
		return err
	}

	log.Info("Job completed",
		slog.Bool("structured", result.IsStructured()),
	)

	// Stage E: best-effort notification, outcome recorded as data
	p.notify(ctx, log, msg.JobID, email, result, jobRole)

	return nil
}

func (p *Pipeline) notify(ctx context.Context, log *slog.Logger, jobID, email string, result analysis.Result, jobRole string) {
	emailStatus := domain.EmailStatusNoRecipient

	if email != "" {
		if err := p.notifier.Notify(email, result, jobRole); err != nil {
			emailStatus = err.Error()
		} else {
			emailStatus = "sent to " + email
		}
	}

	if err := p.store.SetEmailStatus(ctx, jobID, emailStatus); err != nil {
		log.Error("Failed to record email status", slog.Any("error", err))
	}
}
