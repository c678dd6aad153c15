package truesocks

import (
	"testing"
	"time"
)

func TestHistoryEntry_FormattedRemainingTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		remaining time.Duration
		want      string
	}{
		{"seconds only", 42 * time.Second, "42 Seconds"},
		{"minutes and seconds", 5*time.Minute + 30*time.Second, "5 Minutes 30 Seconds"},
		{"hours", 2*time.Hour + time.Minute + time.Second, "2 Hours 1 Minutes 1 Seconds"},
		{"expired", 0, "0 Seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &HistoryEntry{RemainingTime: tt.remaining}
			if got := e.FormattedRemainingTime(); got != tt.want {
				t.Errorf("FormattedRemainingTime() = %q, want %q", got, tt.want)
			}
		})
	}
}
