package handler

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuongbtq/resume-analyzer-be/internal/api/storage"
)

func TestJobCursorRoundTrip(t *testing.T) {
	original := &storage.JobCursor{
		CreatedAt: time.Unix(0, 1756600000000000000),
		JobID:     "3f1d4a0e-9a55-4a28-bb6e-0c2f3f1a9d10",
	}

	decoded, err := DecodeJobCursor(EncodeJobCursor(original))
	require.NoError(t, err)

	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.Equal(t, original.JobID, decoded.JobID)
}

func TestDecodeJobCursor(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
		wantNil bool
	}{
		{
			name:    "empty token means first page",
			token:   "",
			wantNil: true,
		},
		{
			name:    "not base64",
			token:   "not-base64!!!",
			wantErr: true,
		},
		{
			name:    "missing separator",
			token:   base64.StdEncoding.EncodeToString([]byte("1756600000000000000")),
			wantErr: true,
		},
		{
			name:    "empty job id",
			token:   base64.StdEncoding.EncodeToString([]byte("1756600000000000000|")),
			wantErr: true,
		},
		{
			name:    "non-numeric timestamp",
			token:   base64.StdEncoding.EncodeToString([]byte("abc|job-1")),
			wantErr: true,
		},
		{
			name:    "timestamp with trailing garbage",
			token:   base64.StdEncoding.EncodeToString([]byte("123abc|job-1")),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, err := DecodeJobCursor(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, cursor)
			}
		})
	}
}
