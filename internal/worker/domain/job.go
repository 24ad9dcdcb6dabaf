package domain

// Job is the worker's view of a job record
type Job struct {
	JobID       string
	Name        string
	Status      Status
	JobRole     string
	Email       string
	Result      []byte // serialized analysis result, nil until produced
	EmailStatus string
	PageCount   int
}

// JobMessage is one queued pipeline invocation
type JobMessage struct {
	JobID       string `json:"job_id"`
	SourcePath  string `json:"source_path"`
	DeliveryTag uint64 `json:"-"`
	Redelivered bool   `json:"-"`
}

// Email status markers recorded by the notification stage
const (
	EmailStatusNoRecipient = "no recipient"
)
