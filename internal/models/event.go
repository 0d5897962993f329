package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EventType distinguishes expanded course occurrences from user-authored
// entries. Planner proposals carry no type, matching manual semantics.
type EventType string

const (
	EventTypeCourse EventType = "course"
	EventTypeManual EventType = "manual"
)

// Event is one dated calendar occurrence. Events expanded from a single
// section + date-range selection share a CourseKey so they can be removed
// as a group.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	AllDay    bool      `json:"allDay"`
	EventType EventType `json:"eventType,omitempty"`
	CourseKey string    `json:"courseKey,omitempty"`
}

// CourseKey builds the grouping key shared by every event expanded from one
// section selection. Segments are lower-cased and trimmed so key equality
// survives upstream casing differences.
func CourseKey(year, term, dept, course, section string) string {
	parts := []string{year, term, dept, course, section}
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "-")
}

// SameOccurrence reports whether two events describe the same real-world
// occurrence: equal title, start instant and end instant. IDs are
// deliberately excluded so independently generated duplicates collapse.
func (e Event) SameOccurrence(other Event) bool {
	return e.Title == other.Title && e.Start.Equal(other.Start) && e.End.Equal(other.End)
}

// FlexTime accepts the timestamp shapes found in persisted snapshots: an
// RFC3339 string, an epoch-seconds number or numeric string, or an object
// exposing epoch seconds (the shape document stores serialize to).
type FlexTime struct {
	time.Time
}

// UnmarshalJSON implements tolerant timestamp coercion.
func (t *FlexTime) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}

	if raw[0] == '{' {
		var obj struct {
			Seconds     int64 `json:"seconds"`
			Nanoseconds int64 `json:"nanoseconds"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("timestamp object: %w", err)
		}
		t.Time = time.Unix(obj.Seconds, obj.Nanoseconds).UTC()
		return nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t.Time = parsed
			return nil
		}
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			t.Time = time.Unix(secs, 0).UTC()
			return nil
		}
		return fmt.Errorf("unrecognized timestamp string %q", s)
	}

	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		sec := int64(secs)
		nsec := int64((secs - float64(sec)) * float64(time.Second))
		t.Time = time.Unix(sec, nsec).UTC()
		return nil
	}

	return fmt.Errorf("unrecognized timestamp value %s", raw)
}

// StoredEvent is the persisted snapshot shape of an Event. Timestamps are
// coerced through FlexTime on load.
type StoredEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Start     FlexTime  `json:"start"`
	End       FlexTime  `json:"end"`
	AllDay    bool      `json:"allDay"`
	EventType EventType `json:"eventType,omitempty"`
	CourseKey string    `json:"courseKey,omitempty"`
}

// Event converts the stored form back to the runtime shape.
func (s StoredEvent) Event() Event {
	return Event{
		ID:        s.ID,
		Title:     s.Title,
		Start:     s.Start.Time,
		End:       s.End.Time,
		AllDay:    s.AllDay,
		EventType: s.EventType,
		CourseKey: s.CourseKey,
	}
}
