package models

import "time"

// Day is the canonical two-letter weekday code shared by every provider.
type Day string

const (
	DayMo Day = "Mo"
	DayTu Day = "Tu"
	DayWe Day = "We"
	DayTh Day = "Th"
	DayFr Day = "Fr"
	DaySa Day = "Sa"
	DaySu Day = "Su"
)

var dayWeekdays = map[Day]time.Weekday{
	DayMo: time.Monday,
	DayTu: time.Tuesday,
	DayWe: time.Wednesday,
	DayTh: time.Thursday,
	DayFr: time.Friday,
	DaySa: time.Saturday,
	DaySu: time.Sunday,
}

// Weekday maps the code onto time.Weekday. The second return is false for
// codes outside Mo..Su; such meetings never produce calendar events.
func (d Day) Weekday() (time.Weekday, bool) {
	wd, ok := dayWeekdays[d]
	return wd, ok
}

// Modality classifies how a section is delivered.
type Modality string

const (
	ModalityInPerson Modality = "InPerson"
	ModalityOnline   Modality = "Online"
	ModalityHybrid   Modality = "Hybrid"
)

// Term is an academic term within one provider's scheme. The ID is opaque
// and stable per provider but not comparable across providers.
type Term struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Subject is a department/subject area, unique per (provider, term).
type Subject struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Course identity is (subject, code) within a term.
type Course struct {
	Subject string   `json:"subject"`
	Code    string   `json:"code"`
	Title   string   `json:"title"`
	Credits *float64 `json:"credits,omitempty"`
}

// Meeting is one recurring weekly meeting pattern owned by a Section.
type Meeting struct {
	Day    Day    `json:"day"`
	Start  string `json:"start"` // HH:MM, 24h
	End    string `json:"end"`   // HH:MM, 24h
	Room   string `json:"room,omitempty"`
	Campus string `json:"campus,omitempty"`
}

// Section identity is (subject, code, id) within a term.
type Section struct {
	ID         string    `json:"id"`
	Course     Course    `json:"course"`
	CRN        string    `json:"crn,omitempty"`
	Meetings   []Meeting `json:"meetings"`
	Instructor string    `json:"instructor,omitempty"`
	Capacity   *int      `json:"capacity,omitempty"`
	Enrolled   *int      `json:"enrolled,omitempty"`
	Modality   Modality  `json:"modality,omitempty"`
}
