package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

type Job struct {
	JobID       string          `db:"job_id"`
	Name        string          `db:"name"`
	Status      string          `db:"status"`
	JobRole     sql.NullString  `db:"job_role"`
	Email       sql.NullString  `db:"email"`
	Result      json.RawMessage `db:"result"`
	EmailStatus sql.NullString  `db:"email_status"`
	PageCount   sql.NullInt64   `db:"page_count"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
