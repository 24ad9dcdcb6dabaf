package handler

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cuongbtq/resume-analyzer-be/internal/api/storage"
)

// List cursors carry the keyset position of the last row seen, encoded
// as base64("<created_at unix nanos>|<job_id>") so clients treat them as
// opaque tokens.

// EncodeJobCursor renders a keyset position as an opaque page token
func EncodeJobCursor(cursor *storage.JobCursor) string {
	raw := strconv.FormatInt(cursor.CreatedAt.UnixNano(), 10) + "|" + cursor.JobID
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeJobCursor parses a page token back into a keyset position. An
// empty token means the first page and yields a nil cursor.
func DecodeJobCursor(token string) (*storage.JobCursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	nanosPart, jobID, ok := strings.Cut(string(raw), "|")
	if !ok || jobID == "" {
		return nil, fmt.Errorf("invalid cursor format")
	}

	nanos, err := strconv.ParseInt(nanosPart, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor timestamp: %w", err)
	}

	return &storage.JobCursor{
		CreatedAt: time.Unix(0, nanos),
		JobID:     jobID,
	}, nil
}
