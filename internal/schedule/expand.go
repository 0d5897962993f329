package schedule

import (
	"time"

	"github.com/noah-isme/course-compass/internal/models"
)

// occurrenceID derives a per-occurrence identifier from the owning key and
// the occurrence start. Re-expanding the same selection reproduces the same
// ids; a different date range can never collide with a prior run.
func occurrenceID(courseKey, sectionCode string, start time.Time) string {
	id := courseKey
	if sectionCode != "" {
		id += "-" + sectionCode
	}
	return id + "-" + start.Format(time.RFC3339)
}

func occurrenceTitle(base, campus string) string {
	if campus != "" {
		return base + " (" + campus + ")"
	}
	return base
}

// ExpandMeetings projects a section's weekly meeting patterns onto every
// matching date in the inclusive [rangeStart, rangeEnd] range. Meetings
// with an unknown day or unparsable times are dropped silently; a section
// with no meetings yields no events, which the caller reports as an empty
// schedule rather than an error.
func ExpandMeetings(title, courseKey string, meetings []models.Meeting, rangeStart, rangeEnd time.Time) []models.Event {
	type pattern struct {
		weekday      time.Weekday
		startH, minS int
		endH, minE   int
		title        string
	}

	patterns := make([]pattern, 0, len(meetings))
	for _, m := range meetings {
		wd, ok := m.Day.Weekday()
		if !ok {
			continue
		}
		sh, sm, err := ParseHHMM(m.Start)
		if err != nil {
			continue
		}
		eh, em, err := ParseHHMM(m.End)
		if err != nil {
			continue
		}
		if eh*60+em < sh*60+sm {
			continue
		}
		patterns = append(patterns, pattern{
			weekday: wd,
			startH:  sh, minS: sm,
			endH: eh, minE: em,
			title: occurrenceTitle(title, m.Campus),
		})
	}
	if len(patterns) == 0 {
		return nil
	}

	start := dateOnly(rangeStart)
	end := dateOnly(rangeEnd)

	var events []models.Event
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		for _, p := range patterns {
			if d.Weekday() != p.weekday {
				continue
			}
			evStart := time.Date(d.Year(), d.Month(), d.Day(), p.startH, p.minS, 0, 0, time.Local)
			evEnd := time.Date(d.Year(), d.Month(), d.Day(), p.endH, p.minE, 0, 0, time.Local)
			events = append(events, models.Event{
				ID:        occurrenceID(courseKey, "", evStart),
				Title:     p.title,
				Start:     evStart,
				End:       evEnd,
				AllDay:    false,
				EventType: models.EventTypeCourse,
				CourseKey: courseKey,
			})
		}
	}
	return events
}

// ExpandOutline projects an outline's dated schedule items into concrete
// occurrences. Exam items never appear on the calendar. An item whose days
// or start cannot be parsed contributes nothing; its siblings still expand.
func ExpandOutline(outline models.Outline, courseKey string) []models.Event {
	prefix := outline.TitlePrefix()

	var events []models.Event
	for _, item := range outline.Items {
		events = append(events, expandOutlineItem(item, prefix, courseKey)...)
	}
	return events
}

func expandOutlineItem(item models.OutlineItem, titlePrefix, courseKey string) []models.Event {
	if item.IsExam {
		return nil
	}

	rangeStart, err := CombineDateTime(item.StartDate, item.StartTime)
	if err != nil {
		return nil
	}
	rangeEnd, err := CombineDateTime(item.EndDate, item.EndTime)
	if err != nil {
		return nil
	}

	// Duration is fixed from the first day and reused across the whole
	// range rather than recomputed per occurrence.
	var duration time.Duration
	if firstEnd, err := CombineDateTime(item.StartDate, item.EndTime); err == nil {
		duration = firstEnd.Sub(rangeStart)
	}
	if duration < 0 {
		return nil
	}

	weekdays := ParseDays(item.Days)
	if len(weekdays) == 0 {
		return nil
	}
	wanted := make(map[time.Weekday]struct{}, len(weekdays))
	for _, wd := range weekdays {
		wanted[wd] = struct{}{}
	}

	title := occurrenceTitle(titlePrefix, item.Campus)

	var events []models.Event
	for d := rangeStart; !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		if _, ok := wanted[d.Weekday()]; !ok {
			continue
		}
		events = append(events, models.Event{
			ID:        occurrenceID(courseKey, item.SectionCode, d),
			Title:     title,
			Start:     d,
			End:       d.Add(duration),
			AllDay:    false,
			EventType: models.EventTypeCourse,
			CourseKey: courseKey,
		})
	}
	return events
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
