package domain

import "errors"

var (
	// ErrJobNotFound is returned when a job record cannot be found. The
	// pipeline treats it as a configuration fault: logged, never requeued.
	ErrJobNotFound = errors.New("job not found")
)
