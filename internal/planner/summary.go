package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/course-compass/internal/models"
)

// Summary renders the event collection as the human-readable per-weekday
// digest the planner prompt embeds, so proposals can route around what is
// already scheduled.
func Summary(events []models.Event) string {
	if len(events) == 0 {
		return "The user has no events."
	}

	byDay := make(map[time.Weekday][]models.Event)
	for _, ev := range events {
		wd := ev.Start.Weekday()
		byDay[wd] = append(byDay[wd], ev)
	}

	days := make([]time.Weekday, 0, len(byDay))
	for wd := range byDay {
		days = append(days, wd)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	var b strings.Builder
	for i, wd := range days {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "**%s:**", wd)
		slots := byDay[wd]
		sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
		for _, ev := range slots {
			fmt.Fprintf(&b, "\n• %s–%s %s",
				ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Title)
		}
	}
	return b.String()
}

// Prompt wraps the user's free-text request with output-format
// instructions and the current calendar digest.
func Prompt(userPrompt string, events []models.Event) string {
	return fmt.Sprintf(`Write a friendly Markdown schedule **first**.

THEN output a fenced `+"`json`"+` block that is VALID, COMPLETE, and closes with `+"```"+`.
Return **nothing after** that final fence.

The JSON must be an array of objects:
[ { "title":"…", "weekday":"Mon", "start":"HH:MM", "end":"HH:MM" } ]

Existing calendar:

%s

Now: %s`, Summary(events), strings.TrimSpace(userPrompt))
}
