package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"under a minute", 59 * time.Second, ""},
		{"one minute", 90 * time.Second, "1 minute"},
		{"minutes", 12 * time.Minute, "12 minutes"},
		{"one hour", 61 * time.Minute, "1 hour"},
		{"hours", 5 * time.Hour, "5 hours"},
		{"one day", 25 * time.Hour, "1 day"},
		{"days", 72 * time.Hour, "3 days"},
		{"one month", 31 * 24 * time.Hour, "1 month"},
		{"months", 90 * 24 * time.Hour, "3 months"},
		{"thirteen months", 400 * 24 * time.Hour, "13 months"},
		{"one year", 365 * 24 * time.Hour, "1 year"},
		{"two years", 731 * 24 * time.Hour, "2 years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.elapsed))
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "1 day", FormatElapsed(time.Now().Add(-25*time.Hour)))
	assert.Equal(t, "", FormatElapsed(time.Now().Add(-30*time.Second)))
}
