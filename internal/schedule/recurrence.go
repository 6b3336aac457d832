package schedule

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/aura-studio/class-booking/internal/model"
)

// ExpandRecurrence turns one class-creation request into the sequence of
// requests it implies. Without the repeat-weekly flag the input is returned
// as the only element. With the flag set, the request is repeated every
// seven days for as long as the resulting date stays inside the month of the
// original date; only the date differs between the generated requests.
//
// The result always has at least one element and never crosses a month
// boundary. A request whose date cannot be parsed expands to itself.
func ExpandRecurrence(req model.CreateClassRequest) []model.CreateClassRequest {
	single := []model.CreateClassRequest{req}
	if !req.RepeatWeekly {
		return single
	}

	start, err := model.ParseDate(req.Date)
	if err != nil {
		return single
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.WEEKLY,
		Dtstart: start,
		Until:   endOfMonth(start),
	})
	if err != nil {
		return single
	}

	occurrences := rule.All()
	if len(occurrences) == 0 {
		return single
	}

	out := make([]model.CreateClassRequest, 0, len(occurrences))
	for _, occ := range occurrences {
		next := req
		next.Date = occ.Format(model.DateLayout)
		out = append(out, next)
	}
	return out
}

// endOfMonth returns midnight UTC on the last day of t's month, the
// inclusive upper bound for same-month weekly repeats.
func endOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
