// Package scheduling holds the time arithmetic shared by availability windows
// and appointment booking: clock-string conversion, slot generation within a
// window, and the half-open interval overlap test.
package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"immoview/internal/pkg/errs"
)

var ErrInvalidClock = errs.New("invalid clock value, expected HH:MM")

const MinutesPerDay = 24 * 60

// MinutesFromClock parses an "HH:MM" string into a minute-of-day offset.
func MinutesFromClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, errs.Mark(errs.New(fmt.Sprintf("malformed clock %q", clock)), ErrInvalidClock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errs.Mark(err, ErrInvalidClock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errs.Mark(err, ErrInvalidClock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, errs.Mark(errs.New(fmt.Sprintf("clock %q out of range", clock)), ErrInvalidClock)
	}

	return hours*60 + minutes, nil
}

// ClockFromMinutes formats a minute-of-day offset as a zero-padded "HH:MM"
// string. No modulo is applied; callers must keep values within [0, 1439].
func ClockFromMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SlotBounds is one generated slot inside a window, as minute-of-day offsets.
type SlotBounds struct {
	StartMin int
	EndMin   int
}

func (s SlotBounds) StartClock() string { return ClockFromMinutes(s.StartMin) }
func (s SlotBounds) EndClock() string   { return ClockFromMinutes(s.EndMin) }

// SlotsInWindow slices [startMin, endMin) into consecutive slots of duration
// minutes. A trailing remainder shorter than one slot is dropped. Pure and
// deterministic; invalid inputs yield an empty slice.
func SlotsInWindow(startMin, endMin, duration int) []SlotBounds {
	if duration <= 0 {
		return nil
	}

	var slots []SlotBounds
	for cur := startMin; cur+duration <= endMin; cur += duration {
		slots = append(slots, SlotBounds{StartMin: cur, EndMin: cur + duration})
	}
	return slots
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. This is the single conflict rule used by both
// the slot generator and the booking conflict check.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// SlotTimes anchors a SlotBounds to a calendar date, producing absolute
// start/end timestamps in UTC for overlap checks against appointments.
func SlotTimes(date time.Time, s SlotBounds) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(s.StartMin) * time.Minute),
		day.Add(time.Duration(s.EndMin) * time.Minute)
}

// SameDate reports whether two timestamps fall on the same calendar date,
// compared in UTC.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
