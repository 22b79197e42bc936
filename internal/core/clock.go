package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime parses "H:MM", "H:MMam" or "H:MMpm" (case-insensitive, minutes
// optional) into minutes since midnight.
//
// "-" and blank input return ErrNoTime: the day has no shift. Anything that
// does not yield a clock value between 00:00 and 23:59 returns ErrInvalidTime.
func ParseTime(text string) (int, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" || s == "-" {
		return 0, ErrNoTime
	}

	pm := strings.Contains(s, "pm")
	am := strings.Contains(s, "am")
	s = strings.NewReplacer("am", "", "pm", "").Replace(s)

	hourText, minuteText, _ := strings.Cut(s, ":")
	// A seconds field, if any, is ignored.
	minuteText, _, _ = strings.Cut(minuteText, ":")

	hour, err := strconv.Atoi(strings.TrimSpace(hourText))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
	}
	minute := 0
	if m := strings.TrimSpace(minuteText); m != "" {
		if minute, err = strconv.Atoi(m); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTime, text)
		}
	}

	if pm && hour != 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidTime, text)
	}
	return hour*60 + minute, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
