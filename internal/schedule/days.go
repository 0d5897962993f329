// Package schedule turns recurring meeting patterns and dated outline
// items into concrete calendar occurrences.
package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/course-compass/internal/models"
)

// dayTokens maps every accepted day spelling onto a weekday. Single
// letters follow the registrar convention where T is Tuesday and R is
// Thursday.
var dayTokens = map[string]time.Weekday{
	"su": time.Sunday, "sun": time.Sunday, "sunday": time.Sunday,
	"m": time.Monday, "mo": time.Monday, "mon": time.Monday, "monday": time.Monday,
	"t": time.Tuesday, "tu": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"w": time.Wednesday, "we": time.Wednesday, "wed": time.Wednesday, "weds": time.Wednesday, "wednesday": time.Wednesday,
	"r": time.Thursday, "th": time.Thursday, "thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"f": time.Friday, "fr": time.Friday, "fri": time.Friday, "friday": time.Friday,
	"sa": time.Saturday, "sat": time.Saturday, "saturday": time.Saturday,
}

var weekdayCodes = map[time.Weekday]models.Day{
	time.Monday:    models.DayMo,
	time.Tuesday:   models.DayTu,
	time.Wednesday: models.DayWe,
	time.Thursday:  models.DayTh,
	time.Friday:    models.DayFr,
	time.Saturday:  models.DaySa,
	time.Sunday:    models.DaySu,
}

// NormalizeDay canonicalizes a single provider day spelling ("M", "Mon",
// "Monday", ...) into the two-letter code. The second return is false when
// the spelling is not recognized.
func NormalizeDay(s string) (models.Day, bool) {
	wd, ok := dayTokens[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", false
	}
	return weekdayCodes[wd], true
}

var (
	delimiters  = regexp.MustCompile(`[,/]+`)
	letterRun   = regexp.MustCompile(`[A-Za-z]{2,}`)
	letterToken = regexp.MustCompile(`[A-Za-z][a-z]?`)
	whitespace  = regexp.MustCompile(`\s`)
)

// ParseDays extracts the set of weekdays from a free-text days field.
// Tokens may be delimited by spaces, slashes or commas, or concatenated
// ("MWF", "TuTh") when the string carries no whitespace. Unknown tokens
// are ignored; the result is sorted and duplicate-free.
func ParseDays(daysStr string) []time.Weekday {
	if daysStr == "" {
		return nil
	}

	cleaned := strings.TrimSpace(delimiters.ReplaceAllString(daysStr, " "))
	set := make(map[time.Weekday]struct{})

	if !whitespace.MatchString(cleaned) && letterRun.MatchString(cleaned) {
		for _, tok := range letterToken.FindAllString(cleaned, -1) {
			if wd, ok := dayTokens[strings.ToLower(tok)]; ok {
				set[wd] = struct{}{}
			}
		}
	} else {
		for _, tok := range strings.Fields(cleaned) {
			if wd, ok := dayTokens[strings.ToLower(tok)]; ok {
				set[wd] = struct{}{}
			}
		}
	}

	out := make([]time.Weekday, 0, len(set))
	for wd := range set {
		out = append(out, wd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseHHMM parses a zero-padded or bare 24h clock string ("9:00",
// "14:30") into hour and minute.
func ParseHHMM(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[1] == ':' {
		s = "0" + s
	}
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", s)
	}
	return hour, minute, nil
}

// CombineDateTime builds a local timestamp from a calendar date string and
// an HH:MM time. An empty time means midnight.
func CombineDateTime(dateStr, timeStr string) (time.Time, error) {
	d, err := parseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	if timeStr == "" {
		timeStr = "00:00"
	}
	hour, minute, err := ParseHHMM(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.Local), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
