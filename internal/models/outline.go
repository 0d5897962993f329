package models

// Outline is the detailed per-section schedule representation exposed by
// providers that publish explicit dated schedule items instead of weekly
// meeting patterns.
type Outline struct {
	Title   string        `json:"title"`
	Section string        `json:"section,omitempty"`
	Items   []OutlineItem `json:"items"`
}

// TitlePrefix is the display label occurrences expanded from this outline
// carry: "Title – Section" when a section label is present.
func (o Outline) TitlePrefix() string {
	if o.Section != "" {
		return o.Title + " – " + o.Section
	}
	return o.Title
}

// OutlineItem is one dated schedule block. Days is free text: single
// letters, two-letter codes or full names, delimited by space/slash/comma
// or concatenated ("MWF").
type OutlineItem struct {
	StartDate   string `json:"startDate"` // YYYY-MM-DD
	EndDate     string `json:"endDate"`
	StartTime   string `json:"startTime"` // HH:MM, 24h
	EndTime     string `json:"endTime"`
	Days        string `json:"days"`
	SectionCode string `json:"sectionCode,omitempty"`
	Campus      string `json:"campus,omitempty"`
	IsExam      bool   `json:"isExam"`
}
