package time

import (
	"strings"
	"time"
)

// ShortDur shortens the string representation of d: "1m0s" becomes "1m",
// "2h0m0s" becomes "2h". Durations are rounded to precision first, based on
// their magnitude, so step timings read "1m12s" rather than "1m12.418230114s".
func ShortDur(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	d = d.Round(precision(d))
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

func precision(d time.Duration) time.Duration {
	if d < 0 {
		d = -d
	}
	switch {
	case d >= time.Minute:
		return time.Second
	case d >= time.Second:
		return 10 * time.Millisecond
	case d >= time.Millisecond:
		return time.Millisecond
	default:
		return 1
	}
}

// Since is ShortDur(time.Since(start)).
func Since(start time.Time) string {
	return ShortDur(time.Since(start))
}
