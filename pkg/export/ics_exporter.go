package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/noah-isme/course-compass/internal/models"
)

// ICSExporter serializes a calendar into an iCalendar document so users can
// subscribe from external calendar clients.
type ICSExporter struct{}

// NewICSExporter constructs an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

// Render produces an iCalendar payload. Event ids become VEVENT UIDs; the
// CourseKey travels as a category so grouped removal survives round-trips.
func (e *ICSExporter) Render(events []models.Event, calendarName string) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	if calendarName != "" {
		cal.SetName(calendarName)
	}

	now := time.Now().UTC()
	for _, ev := range events {
		if ev.ID == "" {
			return nil, fmt.Errorf("event %q has no id", ev.Title)
		}
		ve := cal.AddEvent(ev.ID)
		ve.SetDtStampTime(now)
		ve.SetSummary(ev.Title)
		if ev.AllDay {
			ve.SetAllDayStartAt(ev.Start)
			ve.SetAllDayEndAt(ev.End)
		} else {
			ve.SetStartAt(ev.Start)
			ve.SetEndAt(ev.End)
		}
		if ev.CourseKey != "" {
			ve.AddProperty(ical.ComponentPropertyCategories, ev.CourseKey)
		}
	}

	return []byte(cal.Serialize()), nil
}
