package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
)

func TestExpandMeetingsSingleWeek(t *testing.T) {
	meetings := []models.Meeting{
		{Day: models.DayMo, Start: "10:00", End: "11:20"},
	}
	// 2025-09-01 is a Monday.
	rangeStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 5, 0, 0, 0, 0, time.Local)

	events := ExpandMeetings("CMPT 120", "2025-fall-cmpt-120-d100", meetings, rangeStart, rangeEnd)
	require.Len(t, events, 1)
	assert.Equal(t, "CMPT 120", events[0].Title)
	assert.Equal(t, time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, time.Date(2025, 9, 1, 11, 20, 0, 0, time.Local), events[0].End)
	assert.Equal(t, models.EventTypeCourse, events[0].EventType)
	assert.Equal(t, "2025-fall-cmpt-120-d100", events[0].CourseKey)
	assert.NotEmpty(t, events[0].ID)
}

func TestExpandMeetingsTwoPatternsTwoWeeks(t *testing.T) {
	meetings := []models.Meeting{
		{Day: models.DayTu, Start: "14:00", End: "15:20"},
		{Day: models.DayTh, Start: "14:00", End: "15:20"},
	}
	rangeStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 12, 0, 0, 0, 0, time.Local)

	events := ExpandMeetings("MATH 100", "key", meetings, rangeStart, rangeEnd)
	require.Len(t, events, 4)
	assert.Equal(t, time.Date(2025, 9, 2, 14, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, time.Date(2025, 9, 4, 14, 0, 0, 0, time.Local), events[1].Start)
	assert.Equal(t, time.Date(2025, 9, 9, 14, 0, 0, 0, time.Local), events[2].Start)
	assert.Equal(t, time.Date(2025, 9, 11, 14, 0, 0, 0, time.Local), events[3].Start)
}

func TestExpandMeetingsRangeIsInclusive(t *testing.T) {
	meetings := []models.Meeting{
		{Day: models.DayFr, Start: "09:00", End: "10:00"},
	}
	// Both endpoints fall on Fridays.
	rangeStart := time.Date(2025, 9, 5, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 12, 0, 0, 0, 0, time.Local)

	events := ExpandMeetings("PHYS 101", "key", meetings, rangeStart, rangeEnd)
	require.Len(t, events, 2)
	assert.Equal(t, 5, events[0].Start.Day())
	assert.Equal(t, 12, events[1].Start.Day())
}

func TestExpandMeetingsDropsInvalidPatterns(t *testing.T) {
	meetings := []models.Meeting{
		{Day: models.Day("Xx"), Start: "10:00", End: "11:00"},
		{Day: models.DayMo, Start: "bad", End: "11:00"},
		{Day: models.DayMo, Start: "11:00", End: "10:00"},
	}
	rangeStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 30, 0, 0, 0, 0, time.Local)

	assert.Empty(t, ExpandMeetings("CHEM 121", "key", meetings, rangeStart, rangeEnd))
}

func TestExpandMeetingsNoMeetings(t *testing.T) {
	rangeStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 30, 0, 0, 0, 0, time.Local)
	assert.Empty(t, ExpandMeetings("CMPT 120", "key", nil, rangeStart, rangeEnd))
}

func TestExpandMeetingsCampusInTitle(t *testing.T) {
	meetings := []models.Meeting{
		{Day: models.DayMo, Start: "10:00", End: "11:00", Campus: "Burnaby"},
	}
	rangeStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	rangeEnd := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)

	events := ExpandMeetings("CMPT 120", "key", meetings, rangeStart, rangeEnd)
	require.Len(t, events, 1)
	assert.Equal(t, "CMPT 120 (Burnaby)", events[0].Title)
}

func TestExpandOutline(t *testing.T) {
	outline := models.Outline{
		Title:   "CMPT 225",
		Section: "D100",
		Items: []models.OutlineItem{
			{
				StartDate: "2025-09-02",
				EndDate:   "2025-09-11",
				StartTime: "14:00",
				EndTime:   "15:20",
				Days:      "TuTh",
			},
		},
	}

	events := ExpandOutline(outline, "2025-fall-cmpt-225-d100")
	require.Len(t, events, 4)
	for _, ev := range events {
		assert.Equal(t, "CMPT 225 – D100", ev.Title)
		assert.Equal(t, 80*time.Minute, ev.End.Sub(ev.Start))
		assert.Equal(t, "2025-fall-cmpt-225-d100", ev.CourseKey)
	}
	assert.Equal(t, time.Date(2025, 9, 2, 14, 0, 0, 0, time.Local), events[0].Start)
	assert.Equal(t, time.Date(2025, 9, 11, 14, 0, 0, 0, time.Local), events[3].Start)
}

func TestExpandOutlineSkipsExams(t *testing.T) {
	outline := models.Outline{
		Title: "CMPT 225",
		Items: []models.OutlineItem{
			{
				StartDate: "2025-12-08",
				EndDate:   "2025-12-08",
				StartTime: "08:30",
				EndTime:   "11:30",
				Days:      "Mo",
				IsExam:    true,
			},
		},
	}
	assert.Empty(t, ExpandOutline(outline, "key"))
}

func TestExpandOutlineSkipsUnparsableItems(t *testing.T) {
	outline := models.Outline{
		Title: "CMPT 225",
		Items: []models.OutlineItem{
			{StartDate: "", EndDate: "2025-12-01", StartTime: "10:00", EndTime: "11:00", Days: "Mo"},
			{StartDate: "2025-09-01", EndDate: "2025-09-05", StartTime: "10:00", EndTime: "11:00", Days: ""},
			{StartDate: "2025-09-01", EndDate: "2025-09-05", StartTime: "10:00", EndTime: "11:00", Days: "We"},
		},
	}

	// Only the last item survives: 2025-09-03 is the lone Wednesday.
	events := ExpandOutline(outline, "key")
	require.Len(t, events, 1)
	assert.Equal(t, time.Date(2025, 9, 3, 10, 0, 0, 0, time.Local), events[0].Start)
}
