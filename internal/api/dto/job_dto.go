package dto

import "encoding/json"

type UploadResponse struct {
	Status string `json:"status"`
	JobID  string `json:"job_id"`
}

// JobView is the query-side shape of a job record. Optional columns are
// omitted until the pipeline populates them.
type JobView struct {
	Found       bool            `json:"found"`
	JobID       string          `json:"job_id,omitempty"`
	Name        string          `json:"name,omitempty"`
	Status      string          `json:"status,omitempty"`
	JobRole     string          `json:"job_role,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	EmailStatus string          `json:"email_status,omitempty"`
	PageCount   *int            `json:"page_count,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	UpdatedAt   string          `json:"updated_at,omitempty"`
}

type ListJobsRequest struct {
	Status   string `form:"status"`
	PageSize int    `form:"page_size"`
	Cursor   string `form:"cursor"`
}

type ListJobsResponse struct {
	Jobs       []JobView `json:"jobs"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
