package schedule

import (
	"reflect"
	"testing"

	"github.com/aura-studio/class-booking/internal/model"
)

func TestExpandRecurrence(t *testing.T) {
	t.Run("without repeat flag returns the request unchanged", func(t *testing.T) {
		req := model.CreateClassRequest{Title: "Yoga", Date: "2024-01-01", Time: "09:00"}

		out := ExpandRecurrence(req)
		if len(out) != 1 {
			t.Fatalf("expected 1 request, got %d", len(out))
		}
		if !reflect.DeepEqual(out[0], req) {
			t.Fatalf("request changed: %+v", out[0])
		}
	})

	t.Run("weekly repeats stay inside the month", func(t *testing.T) {
		req := model.CreateClassRequest{
			Title:        "Yoga",
			Date:         "2024-01-01",
			Time:         "09:00",
			MaxSeats:     10,
			RepeatWeekly: true,
		}

		out := ExpandRecurrence(req)
		want := []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}
		if len(out) != len(want) {
			t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
		}
		for i, r := range out {
			if r.Date != want[i] {
				t.Errorf("occurrence %d: date %s, want %s", i, r.Date, want[i])
			}
		}
	})

	t.Run("only the date differs between occurrences", func(t *testing.T) {
		req := model.CreateClassRequest{
			Title:        "Pilates",
			Date:         "2024-01-01",
			Time:         "18:30",
			Duration:     45,
			InstructorID: "abc",
			MaxSeats:     8,
			RepeatWeekly: true,
		}

		for _, r := range ExpandRecurrence(req) {
			r.Date = req.Date
			if !reflect.DeepEqual(r, req) {
				t.Fatalf("occurrence differs beyond date: %+v", r)
			}
		}
	})

	t.Run("start on the last day of the month yields one occurrence", func(t *testing.T) {
		req := model.CreateClassRequest{Date: "2024-01-31", RepeatWeekly: true}

		out := ExpandRecurrence(req)
		if len(out) != 1 {
			t.Fatalf("expected 1 occurrence, got %d", len(out))
		}
		if out[0].Date != "2024-01-31" {
			t.Fatalf("unexpected date %s", out[0].Date)
		}
	})

	t.Run("february repeats respect the short month", func(t *testing.T) {
		req := model.CreateClassRequest{Date: "2023-02-07", RepeatWeekly: true}

		out := ExpandRecurrence(req)
		want := []string{"2023-02-07", "2023-02-14", "2023-02-21", "2023-02-28"}
		if len(out) != len(want) {
			t.Fatalf("expected %d occurrences, got %d", len(want), len(out))
		}
		for i, r := range out {
			if r.Date != want[i] {
				t.Errorf("occurrence %d: date %s, want %s", i, r.Date, want[i])
			}
		}
	})

	t.Run("unparseable date expands to itself", func(t *testing.T) {
		req := model.CreateClassRequest{Date: "next tuesday", RepeatWeekly: true}

		out := ExpandRecurrence(req)
		if len(out) != 1 || out[0].Date != "next tuesday" {
			t.Fatalf("unexpected expansion: %+v", out)
		}
	})

	t.Run("expansion is deterministic", func(t *testing.T) {
		req := model.CreateClassRequest{Date: "2024-03-04", RepeatWeekly: true}

		first := ExpandRecurrence(req)
		second := ExpandRecurrence(req)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("expansions differ: %v vs %v", first, second)
		}
	})
}
