package booking

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	DefaultStepMinutes = 30
)

// Times within a day are handled as minutes from midnight; bookings and
// business hours persist them as "HH:mm" strings.

func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// SlotStarts generates the candidate start times for one day: a fixed grid
// anchored at open, stepping by step, keeping only starts whose full duration
// fits before close. Empty when the duration exceeds the open window.
func SlotStarts(open, close, duration, step int) []int {
	if duration <= 0 || step <= 0 {
		return nil
	}

	var starts []int
	for t := open; t+duration <= close; t += step {
		starts = append(starts, t)
	}
	return starts
}

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur) and
// [bStart, bStart+bDur) intersect. Back-to-back intervals do not overlap.
func Overlaps(aStart, aDur, bStart, bDur int) bool {
	return aStart < bStart+bDur && bStart < aStart+aDur
}
