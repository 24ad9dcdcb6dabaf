package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusSaving, StatusQueued, StatusProcessing, StatusConverted, StatusCompleted, StatusFailed} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, Status("").Valid())
	assert.False(t, Status("PENDING").Valid())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())

	for _, s := range []Status{StatusSaving, StatusQueued, StatusProcessing, StatusConverted} {
		assert.False(t, s.IsTerminal(), string(s))
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "saving to queued", from: StatusSaving, to: StatusQueued, want: true},
		{name: "queued to processing", from: StatusQueued, to: StatusProcessing, want: true},
		{name: "processing to converted", from: StatusProcessing, to: StatusConverted, want: true},
		{name: "converted to completed", from: StatusConverted, to: StatusCompleted, want: true},
		{name: "processing skips to completed when conversion degraded", from: StatusProcessing, to: StatusCompleted, want: true},
		{name: "no revisiting queued", from: StatusProcessing, to: StatusQueued, want: false},
		{name: "no self transition", from: StatusProcessing, to: StatusProcessing, want: false},
		{name: "saving cannot skip queued", from: StatusSaving, to: StatusProcessing, want: false},
		{name: "queued cannot skip processing", from: StatusQueued, to: StatusConverted, want: false},
		{name: "processing to failed", from: StatusProcessing, to: StatusFailed, want: true},
		{name: "converted to failed", from: StatusConverted, to: StatusFailed, want: true},
		{name: "queued cannot fail before processing", from: StatusQueued, to: StatusFailed, want: false},
		{name: "completed is absorbing", from: StatusCompleted, to: StatusFailed, want: false},
		{name: "failed is absorbing", from: StatusFailed, to: StatusCompleted, want: false},
		{name: "unknown target", from: StatusQueued, to: Status("archived"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
