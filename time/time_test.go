package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShortDur(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"nanoseconds", 750 * time.Nanosecond, "750ns"},
		{"milliseconds rounded", 1500*time.Microsecond + 300*time.Nanosecond, "2ms"},
		{"seconds rounded to centis", 2*time.Second + 345*time.Millisecond, "2.35s"},
		{"whole minute", time.Minute, "1m"},
		{"minute and seconds", time.Minute + 12*time.Second + 418*time.Millisecond, "1m12s"},
		{"whole hour", 2 * time.Hour, "2h"},
		{"hour and minutes", time.Hour + 5*time.Minute, "1h5m"},
		{"negative", -3 * time.Second, "-3s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortDur(tt.in))
		})
	}
}

func TestSince(t *testing.T) {
	assert.NotEmpty(t, Since(time.Now().Add(-time.Second)))
}
