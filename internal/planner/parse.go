package planner

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/schedule"
)

// ProposedRow is one planner-proposed schedule item in the shape the
// collaborator is asked to return.
type ProposedRow struct {
	Title   string `json:"title"`
	Weekday string `json:"weekday"`
	Start   string `json:"start"` // HH:MM
	End     string `json:"end"`
}

var (
	closedFence = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)\\s*```")
	openFence   = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*)$")
	kvPair      = regexp.MustCompile(`"(\w+)":\s*"([^"]+)"`)
)

// ExtractJSONBlock pulls the fenced json block out of a completion,
// preferring a properly closed fence and falling back to the tail of the
// text when the model ran out of tokens before closing it.
func ExtractJSONBlock(text string) (string, bool) {
	if m := closedFence.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := openFence.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

// StripJSONBlock removes the fenced json block, leaving the human-readable
// markdown portion of a completion.
func StripJSONBlock(text string) string {
	return strings.TrimSpace(closedFence.ReplaceAllString(text, ""))
}

// SloppyParse tolerantly extracts proposal rows from a possibly malformed
// JSON block: curly quotes are straightened and each line is scanned for
// "key": "value" pairs. Rows missing any of the four fields are dropped.
func SloppyParse(block string) []ProposedRow {
	replacer := strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
	cleaned := replacer.Replace(block)

	var rows []ProposedRow
	for _, line := range strings.FieldsFunc(cleaned, func(r rune) bool { return r == '\n' || r == '\r' }) {
		kv := map[string]string{}
		for _, m := range kvPair.FindAllStringSubmatch(line, -1) {
			kv[strings.ToLower(m[1])] = m[2]
		}
		row := ProposedRow{
			Title:   kv["title"],
			Weekday: kv["weekday"],
			Start:   kv["start"],
			End:     kv["end"],
		}
		if row.Title != "" && row.Weekday != "" && row.Start != "" && row.End != "" {
			rows = append(rows, row)
		}
	}
	return rows
}

// WeekStart returns the most recent Monday at midnight, the anchor for
// weekday-relative proposals.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// RowsToEvents converts proposal rows into concrete events within the
// week starting at weekStart (a Monday). Rows with an unknown weekday or
// unparsable times yield nothing; valid siblings still convert.
func RowsToEvents(rows []ProposedRow, weekStart time.Time) []models.Event {
	var events []models.Event
	for _, row := range rows {
		weekdays := schedule.ParseDays(row.Weekday)
		if len(weekdays) != 1 {
			continue
		}
		sh, sm, err := schedule.ParseHHMM(row.Start)
		if err != nil {
			continue
		}
		eh, em, err := schedule.ParseHHMM(row.End)
		if err != nil {
			continue
		}

		// Monday-anchored week: weekday offsets count from Monday.
		offset := (int(weekdays[0]) + 6) % 7
		day := weekStart.AddDate(0, 0, offset)
		start := time.Date(day.Year(), day.Month(), day.Day(), sh, sm, 0, 0, day.Location())
		end := time.Date(day.Year(), day.Month(), day.Day(), eh, em, 0, 0, day.Location())

		events = append(events, models.Event{
			ID:     start.Format(time.RFC3339) + "-" + uuid.NewString()[:8],
			Title:  row.Title,
			Start:  start,
			End:    end,
			AllDay: false,
		})
	}
	return events
}
