package core

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"8:00", 480},
		{"08:00", 480},
		{"17:30", 1050},
		{"2:30pm", 870},
		{"2:30 PM", 870},
		{"12:00pm", 720},
		{"12:15am", 15},
		{"9am", 540},
		{"7", 420},
		{"23:59", 1439},
		{"0:00", 0},
		{"08:00:45", 480},
	}
	for _, tc := range cases {
		got, err := ParseTime(tc.in)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseTimeNoTime(t *testing.T) {
	for _, in := range []string{"", "  ", "-", " - "} {
		if _, err := ParseTime(in); !errors.Is(err, ErrNoTime) {
			t.Fatalf("%q: expected ErrNoTime, got %v", in, err)
		}
	}
}

func TestParseTimeInvalid(t *testing.T) {
	// A missing hour is rejected rather than read as 0; "pm" alone is not noon.
	for _, in := range []string{"abc", "24:00", "12:60", "13pm", "x:30", "8:xx", "-3:00", "pm", "am", ":30", " PM "} {
		if _, err := ParseTime(in); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("%q: expected ErrInvalidTime, got %v", in, err)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(870); got != "14:30" {
		t.Fatalf("got %q", got)
	}
	if got := FormatClock(5); got != "00:05" {
		t.Fatalf("got %q", got)
	}
}
