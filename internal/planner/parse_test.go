package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
)

const sampleReply = "Here is your week!\n\n" +
	"```json\n" +
	"[\n" +
	`{"title":"Gym","weekday":"Mon","start":"07:00","end":"08:00"},` + "\n" +
	`{"title":"Study","weekday":"Wed","start":"19:00","end":"21:00"}` + "\n" +
	"]\n" +
	"```"

func TestExtractJSONBlockClosedFence(t *testing.T) {
	block, ok := ExtractJSONBlock(sampleReply)
	require.True(t, ok)
	assert.Contains(t, block, `"title":"Gym"`)
	assert.NotContains(t, block, "```")
}

func TestExtractJSONBlockOpenFenceFallback(t *testing.T) {
	truncated := "Plan below.\n```json\n[{\"title\":\"Gym\",\"weekday\":\"Mon\",\"start\":\"07:00\",\"end\":\"08:00\"}"
	block, ok := ExtractJSONBlock(truncated)
	require.True(t, ok)
	assert.Contains(t, block, `"title":"Gym"`)
}

func TestExtractJSONBlockAbsent(t *testing.T) {
	_, ok := ExtractJSONBlock("no structured data here")
	assert.False(t, ok)
}

func TestStripJSONBlock(t *testing.T) {
	assert.Equal(t, "Here is your week!", StripJSONBlock(sampleReply))
}

func TestSloppyParse(t *testing.T) {
	rows := SloppyParse(`[
	{"title":"Gym","weekday":"Mon","start":"07:00","end":"08:00"},
	{"title":"Study","weekday":"Wed","start":"19:00","end":"21:00"}
	]`)
	require.Len(t, rows, 2)
	assert.Equal(t, ProposedRow{Title: "Gym", Weekday: "Mon", Start: "07:00", End: "08:00"}, rows[0])
	assert.Equal(t, "Study", rows[1].Title)
}

func TestSloppyParseCurlyQuotes(t *testing.T) {
	rows := SloppyParse(`{“title”:“Gym”,“weekday”:“Mon”,“start”:“07:00”,“end”:“08:00”}`)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gym", rows[0].Title)
}

func TestSloppyParseDropsIncompleteRows(t *testing.T) {
	rows := SloppyParse(`
	{"title":"No times","weekday":"Mon"}
	{"title":"Complete","weekday":"Tue","start":"10:00","end":"11:00"}
	`)
	require.Len(t, rows, 1)
	assert.Equal(t, "Complete", rows[0].Title)
}

func TestWeekStart(t *testing.T) {
	// 2025-09-03 is a Wednesday.
	wednesday := time.Date(2025, 9, 3, 15, 30, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local), WeekStart(wednesday))

	// A Monday anchors to itself.
	monday := time.Date(2025, 9, 1, 23, 59, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local), WeekStart(monday))

	// Sunday belongs to the week that started six days earlier.
	sunday := time.Date(2025, 9, 7, 8, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local), WeekStart(sunday))
}

func TestRowsToEvents(t *testing.T) {
	weekStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rows := []ProposedRow{
		{Title: "Gym", Weekday: "Mon", Start: "07:00", End: "08:00"},
		{Title: "Study", Weekday: "Sunday", Start: "19:00", End: "21:00"},
		{Title: "Bad day", Weekday: "someday", Start: "10:00", End: "11:00"},
		{Title: "Bad time", Weekday: "Tue", Start: "late", End: "later"},
	}

	events := RowsToEvents(rows, weekStart)
	require.Len(t, events, 2)

	assert.Equal(t, "Gym", events[0].Title)
	assert.Equal(t, time.Date(2025, 9, 1, 7, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, time.Date(2025, 9, 1, 8, 0, 0, 0, time.Local), events[0].End)
	assert.NotEmpty(t, events[0].ID)

	// Sunday lands at the end of the Monday-anchored week.
	assert.Equal(t, time.Date(2025, 9, 7, 19, 0, 0, 0, time.Local), events[1].Start)
}

func TestSummaryEmpty(t *testing.T) {
	assert.Equal(t, "The user has no events.", Summary(nil))
}

func TestSummaryGroupsAndSorts(t *testing.T) {
	events := []models.Event{
		{Title: "Late", Start: time.Date(2025, 9, 1, 19, 0, 0, 0, time.Local), End: time.Date(2025, 9, 1, 20, 0, 0, 0, time.Local)},
		{Title: "Early", Start: time.Date(2025, 9, 1, 8, 0, 0, 0, time.Local), End: time.Date(2025, 9, 1, 9, 0, 0, 0, time.Local)},
	}
	got := Summary(events)
	assert.Contains(t, got, "**Monday:**")
	assert.Less(t, strings.Index(got, "Early"), strings.Index(got, "Late"))
}

func TestPromptEmbedsSummaryAndRequest(t *testing.T) {
	got := Prompt("add three gym sessions", nil)
	assert.Contains(t, got, "The user has no events.")
	assert.Contains(t, got, "Now: add three gym sessions")
	assert.Contains(t, got, "```")
}
