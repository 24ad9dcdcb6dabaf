package domain

import (
	"errors"
)

const (
	JobStatusSaving     = "saving"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusConverted  = "converted"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

var (
	ErrJobNotFound = errors.New("job not found")
)
