// Package schedule implements the availability view-model: pure transforms
// that turn the raw class list into the date selector, the filtered and
// time-sorted class list with seats-remaining, and weekly recurrence
// expansion. The functions here hold no state and never fail; malformed
// input fields fall back to documented defaults.
package schedule

import (
	"sort"

	"github.com/aura-studio/class-booking/internal/model"
)

// defaultTime is substituted when a class has no start time.
const defaultTime = "00:00"

// DateBucket is one entry of the date selector: a calendar date plus the
// earliest class start time on that date, used as a secondary sort key in
// multi-day displays.
type DateBucket struct {
	Date         string `json:"date"`
	EarliestTime string `json:"earliest_time"`
}

// VisibleClass pairs a class with its computed availability.
type VisibleClass struct {
	Event          model.ClassEvent `json:"event"`
	SeatsRemaining int              `json:"seats_remaining"`
	Full           bool             `json:"full"`
}

// DeriveSelectableDates groups classes by calendar date and returns the
// distinct dates in ascending order. Classes without a date are ignored.
// Per date, the minimum start time is retained (missing times count as
// "00:00"). The result is deterministic for a given input; an empty input
// yields an empty result.
func DeriveSelectableDates(events []model.ClassEvent) []DateBucket {
	earliest := make(map[string]string)
	for _, e := range events {
		if e.Date.IsZero() {
			continue
		}
		key := e.Date.UTC().Format(model.DateLayout)
		t := padTime(e.Time)
		if cur, ok := earliest[key]; !ok || t < cur {
			earliest[key] = t
		}
	}

	buckets := make([]DateBucket, 0, len(earliest))
	for date, t := range earliest {
		buckets = append(buckets, DateBucket{Date: date, EarliestTime: t})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Date != buckets[j].Date {
			return buckets[i].Date < buckets[j].Date
		}
		return buckets[i].EarliestTime < buckets[j].EarliestTime
	})
	return buckets
}

// VisibleClasses returns the classes to offer for a selected date, sorted
// ascending by start time, each with its seats-remaining count. An empty
// selectedDate means no filter. SeatsRemaining is MaxSeats - Booked and is
// deliberately not clamped; a class with SeatsRemaining <= 0 is flagged Full
// and must not be offered for booking.
func VisibleClasses(events []model.ClassEvent, selectedDate string) []VisibleClass {
	filtered := make([]model.ClassEvent, 0, len(events))
	for _, e := range events {
		if selectedDate != "" {
			if e.Date.IsZero() || e.Date.UTC().Format(model.DateLayout) != selectedDate {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return padTime(filtered[i].Time) < padTime(filtered[j].Time)
	})

	visible := make([]VisibleClass, 0, len(filtered))
	for _, e := range filtered {
		visible = append(visible, VisibleClass{
			Event:          e,
			SeatsRemaining: e.SeatsRemaining(),
			Full:           e.IsFull(),
		})
	}
	return visible
}

// padTime normalizes an "H:MM" or "HH:MM" string to zero-padded form so that
// lexicographic comparison matches chronological order. Empty input becomes
// "00:00".
func padTime(t string) string {
	if t == "" {
		return defaultTime
	}
	for len(t) < 5 {
		t = "0" + t
	}
	return t
}
