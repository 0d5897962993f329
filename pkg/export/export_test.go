package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{
			ID:        "ev-1",
			Title:     "CMPT 120 (Burnaby)",
			Start:     time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC),
			End:       time.Date(2025, 9, 1, 11, 20, 0, 0, time.UTC),
			EventType: models.EventTypeCourse,
			CourseKey: "2025-fall-cmpt-120-d100",
		},
		{
			ID:        "ev-2",
			Title:     "Reading break",
			Start:     time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
			End:       time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
			AllDay:    true,
			EventType: models.EventTypeManual,
		},
	}
}

func TestEventsDataset(t *testing.T) {
	data := EventsDataset(sampleEvents())

	assert.Equal(t, []string{"Date", "Start", "End", "Title", "Type", "Course"}, data.Headers)
	require.Len(t, data.Rows, 2)

	assert.Equal(t, "2025-09-01 Mon", data.Rows[0]["Date"])
	assert.Equal(t, "10:30", data.Rows[0]["Start"])
	assert.Equal(t, "11:20", data.Rows[0]["End"])
	assert.Equal(t, "course", data.Rows[0]["Type"])
	assert.Equal(t, "2025-fall-cmpt-120-d100", data.Rows[0]["Course"])

	assert.Equal(t, "all day", data.Rows[1]["Start"])
	assert.Equal(t, "", data.Rows[1]["End"])
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(EventsDataset(sampleEvents()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Start,End,Title,Type,Course", lines[0])
	assert.Contains(t, lines[1], "CMPT 120 (Burnaby)")
	assert.Contains(t, lines[2], "all day")
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestICSExporterRender(t *testing.T) {
	out, err := NewICSExporter().Render(sampleEvents(), "Course Compass")
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "BEGIN:VCALENDAR")
	assert.Contains(t, doc, "METHOD:PUBLISH")
	assert.Contains(t, doc, "UID:ev-1")
	assert.Contains(t, doc, "SUMMARY:CMPT 120 (Burnaby)")
	assert.Contains(t, doc, "CATEGORIES:2025-fall-cmpt-120-d100")
	assert.Contains(t, doc, "UID:ev-2")
}

func TestICSExporterRejectsMissingID(t *testing.T) {
	events := sampleEvents()
	events[0].ID = ""
	_, err := NewICSExporter().Render(events, "")
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(EventsDataset(sampleEvents()), "Weekly schedule")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
