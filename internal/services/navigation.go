package services

import (
	"time"

	"horas/internal/core"
)

// Selection is the month and week currently on display.
type Selection struct {
	Month     time.Month
	WeekIndex int
}

// InitialSelection starts at the current month when now falls in year and at
// January otherwise.
func InitialSelection(year int, now time.Time) Selection {
	if now.Year() == year {
		return Selection{Month: now.Month()}
	}
	return Selection{Month: time.January}
}

// NextMonth moves forward one month, wrapping December to January. The week
// selection resets.
func (s Selection) NextMonth() Selection {
	return Selection{Month: s.Month%12 + 1}
}

// PrevMonth moves back one month, wrapping January to December.
func (s Selection) PrevMonth() Selection {
	return Selection{Month: (s.Month+10)%12 + 1}
}

// NextWeek advances the week without leaving the month.
func (s Selection) NextWeek(year int) Selection {
	s.WeekIndex = ClampWeek(s.WeekIndex+1, s.weekCount(year))
	return s
}

// PrevWeek moves back one week, stopping at the first week of the month.
func (s Selection) PrevWeek(year int) Selection {
	s.WeekIndex = ClampWeek(s.WeekIndex-1, s.weekCount(year))
	return s
}

// Normalize fixes an out-of-range month or week index.
func (s Selection) Normalize(year int) Selection {
	if s.Month < time.January || s.Month > time.December {
		s.Month = time.January
	}
	s.WeekIndex = ClampWeek(s.WeekIndex, s.weekCount(year))
	return s
}

func (s Selection) weekCount(year int) int {
	return len(core.WeeksOverlappingMonth(year, s.Month))
}

// ClampWeek bounds index to [0, weeks-1], or 0 when there are no weeks.
func ClampWeek(index, weeks int) int {
	return max(0, min(index, weeks-1))
}
