package domain

// Status is the pipeline progress of a job. Transitions are monotonic
// forward on the success path; failed is reachable only once processing
// has begun, with detail carried in FailedStage/ErrorMessage rather than
// in the status text itself.
type Status string

const (
	StatusSaving     Status = "saving"
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusConverted  Status = "converted"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// rank orders the success path for the monotonic-forward check
var rank = map[Status]int{
	StatusSaving:     0,
	StatusQueued:     1,
	StatusProcessing: 2,
	StatusConverted:  3,
	StatusCompleted:  4,
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	if s == StatusFailed {
		return true
	}
	_, ok := rank[s]
	return ok
}

// IsTerminal reports whether a job in this status will never move again
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next respects the
// state machine: saving and queued only advance one step (a job must pass
// through queued and processing), processing and converted move strictly
// forward, and failed is reachable only once processing has begun.
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}

	if next == StatusFailed {
		return s == StatusProcessing || s == StatusConverted
	}

	from, okFrom := rank[s]
	to, okTo := rank[next]
	if !okFrom || !okTo {
		return false
	}

	// intake statuses may not skip ahead
	if s == StatusSaving || s == StatusQueued {
		return to == from+1
	}

	return to > from
}

// Pipeline stage names recorded with a failed status
const (
	StageLoad      = "load"
	StageRasterize = "rasterize"
	StageInference = "inference"
	StageParse     = "parse"
	StageNotify    = "notify"
)
