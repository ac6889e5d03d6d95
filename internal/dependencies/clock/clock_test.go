package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLaterUTCDay(t *testing.T) {
	base := time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"same instant", base, false},
		{"later same day", base.Add(20 * time.Minute), false},
		{"just past midnight", base.Add(31 * time.Minute), true},
		{"two days later", base.Add(48 * time.Hour), true},
		{"earlier day", base.Add(-24 * time.Hour), false},
		{"non-UTC zone same UTC day", base.In(time.FixedZone("east", 5*3600)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLaterUTCDay(tt.now, base))
		})
	}
}
