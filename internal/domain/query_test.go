package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{"within bounds", 100, 100},
		{"at max", 5000, 5000},
		{"above max", 9999, 5000},
		{"zero takes max", 0, 5000},
		{"negative takes max", -5, 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClampLimit(tt.limit, 5000))
		})
	}
}

func TestDateRange_Clamp(t *testing.T) {
	now := time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)

	t.Run("zero start becomes now", func(t *testing.T) {
		r := DateRange{}.Clamp(now)
		assert.Equal(t, now, r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("end before start becomes start", func(t *testing.T) {
		r := DateRange{
			Start: now,
			End:   now.AddDate(0, 0, -3),
		}.Clamp(now)
		assert.Equal(t, now, r.End)
	})

	t.Run("wide range cut to feed maximum", func(t *testing.T) {
		r := DateRange{
			Start: now,
			End:   now.AddDate(0, 0, 30),
		}.Clamp(now)
		assert.Equal(t, now.AddDate(0, 0, MaxFeedRangeDays-1), r.End)
	})

	t.Run("valid range untouched", func(t *testing.T) {
		r := DateRange{
			Start: now,
			End:   now.AddDate(0, 0, 2),
		}
		assert.Equal(t, r, r.Clamp(now))
	})
}
