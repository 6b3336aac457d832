// Package calendar builds add-to-calendar artifacts for a confirmed booking:
// a Google Calendar deep link and a downloadable iCalendar payload. Both
// encode the same start/end instant and summary and are byte-identical for
// identical input; nothing here reads the clock.
package calendar

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	// stampLayout is the compact UTC timestamp format used by both outputs.
	stampLayout = "20060102T150405Z"

	defaultDuration = 60 * time.Minute

	// DefaultLocation is used when the studio location is not configured.
	DefaultLocation = "Studio Location"
	// DefaultContact is used when the studio contact number is not configured.
	DefaultContact = "+961 81 953 747"
)

// Entry carries the denormalized booking details needed to build calendar
// artifacts.
type Entry struct {
	BookingID      string
	Title          string
	InstructorName string
	Date           time.Time
	Time           string
	Duration       int
}

// Formatter renders calendar artifacts with a fixed studio location and
// contact line.
type Formatter struct {
	location string
	contact  string
}

// New constructs a Formatter. Empty arguments fall back to the package
// defaults.
func New(location, contact string) Formatter {
	if location == "" {
		location = DefaultLocation
	}
	if contact == "" {
		contact = DefaultContact
	}
	return Formatter{location: location, contact: contact}
}

// Window returns the event's start and end instants in UTC. The start time
// combines the entry date with its "HH:MM" time (missing or malformed times
// count as midnight); the end adds the duration, defaulting to 60 minutes
// when absent or non-positive.
func (f Formatter) Window(e Entry) (time.Time, time.Time) {
	d := e.Date.UTC()
	hour, minute := parseClock(e.Time)
	start := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)

	dur := time.Duration(e.Duration) * time.Minute
	if dur <= 0 {
		dur = defaultDuration
	}
	return start, start.Add(dur)
}

// GoogleLink returns a calendar.google.com render URL pre-filled with the
// booking's event details.
func (f Formatter) GoogleLink(e Entry) string {
	start, end := f.Window(e)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", f.summary(e))
	q.Set("dates", start.Format(stampLayout)+"/"+end.Format(stampLayout))
	q.Set("details", f.description(e))
	q.Set("location", f.location)

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}

// ICS returns a VCALENDAR payload for the booking, suitable for download as
// a .ics file.
func (f Formatter) ICS(e Entry) string {
	start, end := f.Window(e)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	// Serialize applies RFC 5545 text escaping; these take raw strings.
	ev := cal.AddEvent(e.BookingID)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(f.summary(e))
	ev.SetDescription(f.description(e))
	ev.SetLocation(f.location)

	return cal.Serialize()
}

func (f Formatter) summary(e Entry) string {
	return fmt.Sprintf("%s with %s", e.Title, e.InstructorName)
}

func (f Formatter) description(e Entry) string {
	return fmt.Sprintf("Your booking for %s with %s.\n\nFor any questions, contact us on WhatsApp: %s",
		e.Title, e.InstructorName, f.contact)
}

// parseClock reads a 24-hour "HH:MM" string. Anything unparseable counts as
// midnight.
func parseClock(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0
	}
	return hour, minute
}
