package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/schedule"
)

const sfuProviderName = "sfu"

// SFU adapts the course-outlines source that encodes the whole selection
// path as slash-joined query segments on a single endpoint: the base URL
// followed by "?year/term/dept/course/section", each depth returning the
// next selector's valid values.
type SFU struct {
	baseURL string
	client  *http.Client
	store   Store
	logger  *zap.Logger
}

// NewSFU constructs the adapter. Nil collaborators get safe defaults.
func NewSFU(baseURL string, client *http.Client, store Store, logger *zap.Logger) *SFU {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SFU{baseURL: baseURL, client: client, store: store, logger: logger}
}

// Name implements Provider.
func (s *SFU) Name() string { return sfuProviderName }

func (s *SFU) fetch(ctx context.Context, segments []string, dest interface{}) error {
	nonEmpty := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg != "" {
			nonEmpty = append(nonEmpty, seg)
		}
	}
	url := s.baseURL
	if len(nonEmpty) > 0 {
		url += "?" + strings.Join(nonEmpty, "/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sfu fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProviderHTTPError{
			Provider: sfuProviderName,
			Status:   resp.StatusCode,
			URL:      url,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("sfu decode %s: %w", url, err)
	}
	return nil
}

// ListYears implements Provider.
func (s *SFU) ListYears(ctx context.Context) ([]string, error) {
	return Fetch(ctx, s.store, "sfu:years", func(ctx context.Context) ([]string, error) {
		var items []labelItem
		if err := s.fetch(ctx, nil, &items); err != nil {
			return nil, err
		}
		years := make([]string, 0, len(items))
		for _, item := range items {
			if y := item.Code(); y != "" {
				years = append(years, y)
			}
		}
		return years, nil
	})
}

// ListTerms implements Provider. Term ids compose year and term name,
// e.g. "2025-fall".
func (s *SFU) ListTerms(ctx context.Context, year string) ([]models.Term, error) {
	year = normCode(year)
	key := "sfu:terms:" + year
	return Fetch(ctx, s.store, key, func(ctx context.Context) ([]models.Term, error) {
		var items []labelItem
		if err := s.fetch(ctx, []string{year}, &items); err != nil {
			return nil, err
		}
		terms := make([]models.Term, 0, len(items))
		for _, item := range items {
			name := item.Code()
			if name == "" {
				continue
			}
			terms = append(terms, models.Term{
				ID:   year + "-" + normText(name),
				Name: year + " " + strings.ToUpper(name),
			})
		}
		return terms, nil
	})
}

// splitTermID separates the composed "year-term" id back into its parts.
func splitTermID(termID string) (year, term string) {
	year, term, _ = strings.Cut(termID, "-")
	return year, term
}

// ListSubjects implements Provider.
func (s *SFU) ListSubjects(ctx context.Context, termID string) ([]models.Subject, error) {
	year, term := splitTermID(termID)
	key := fmt.Sprintf("sfu:subjects:%s:%s", year, term)
	return Fetch(ctx, s.store, key, func(ctx context.Context) ([]models.Subject, error) {
		var items []labelItem
		if err := s.fetch(ctx, []string{year, term}, &items); err != nil {
			return nil, err
		}
		subjects := make([]models.Subject, 0, len(items))
		for _, item := range items {
			code := item.Code()
			if code == "" {
				continue
			}
			subjects = append(subjects, models.Subject{Code: code, Name: item.Label()})
		}
		return subjects, nil
	})
}

// ListCourses implements Provider.
func (s *SFU) ListCourses(ctx context.Context, termID, subjectCode string) ([]models.Course, error) {
	year, term := splitTermID(termID)
	subjectCode = normCode(subjectCode)
	key := fmt.Sprintf("sfu:courses:%s:%s:%s", year, term, subjectCode)
	return Fetch(ctx, s.store, key, func(ctx context.Context) ([]models.Course, error) {
		var items []labelItem
		if err := s.fetch(ctx, []string{year, normText(term), normText(subjectCode)}, &items); err != nil {
			return nil, err
		}
		courses := make([]models.Course, 0, len(items))
		for _, item := range items {
			code := item.Code()
			if code == "" {
				continue
			}
			courses = append(courses, models.Course{
				Subject: subjectCode,
				Code:    code,
				Title:   item.Label(),
			})
		}
		return courses, nil
	})
}

type sfuScheduleItem struct {
	Day       flexString `json:"day"`
	StartTime flexString `json:"startTime"`
	Start     flexString `json:"start"`
	EndTime   flexString `json:"endTime"`
	End       flexString `json:"end"`
	Room      flexString `json:"room"`
}

type sfuSection struct {
	Section        flexString        `json:"section"`
	Value          flexString        `json:"value"`
	Text           flexString        `json:"text"`
	Title          flexString        `json:"title"`
	ClassNumber    flexString        `json:"classNumber"`
	CRN            flexString        `json:"crn"`
	DeliveryMethod flexString        `json:"deliveryMethod"`
	Campus         flexString        `json:"campus"`
	EnrollmentCap  flexInt           `json:"enrollmentCap"`
	Capacity       flexInt           `json:"capacity"`
	Enrollment     flexInt           `json:"enrollment"`
	Enrolled       flexInt           `json:"enrolled"`
	Instructor     json.RawMessage   `json:"instructor"`
	Time           []sfuScheduleItem `json:"time"`
	CourseSchedule []sfuScheduleItem `json:"courseSchedule"`
	Schedule       []sfuScheduleItem `json:"schedule"`
}

func (sec sfuSection) scheduleItems() []sfuScheduleItem {
	switch {
	case len(sec.Time) > 0:
		return sec.Time
	case len(sec.CourseSchedule) > 0:
		return sec.CourseSchedule
	default:
		return sec.Schedule
	}
}

// ListSections implements Provider.
func (s *SFU) ListSections(ctx context.Context, termID, subjectCode, courseCode string) ([]models.Section, error) {
	year, term := splitTermID(termID)
	subjectCode = normCode(subjectCode)
	courseCode = normCode(courseCode)
	key := fmt.Sprintf("sfu:sections:%s:%s:%s:%s", year, term, subjectCode, courseCode)
	return Fetch(ctx, s.store, key, func(ctx context.Context) ([]models.Section, error) {
		var raw []sfuSection
		if err := s.fetch(ctx, []string{year, normText(term), normText(subjectCode), courseCode}, &raw); err != nil {
			return nil, err
		}
		sections := make([]models.Section, 0, len(raw))
		for _, sec := range raw {
			sections = append(sections, s.mapSection(sec, subjectCode, courseCode))
		}
		return sections, nil
	})
}

func (s *SFU) mapSection(sec sfuSection, subjectCode, courseCode string) models.Section {
	items := sec.scheduleItems()
	meetings := make([]models.Meeting, 0, len(items))
	for _, m := range items {
		day := models.Day(m.Day.String())
		if normalized, ok := schedule.NormalizeDay(m.Day.String()); ok {
			day = normalized
		}
		meetings = append(meetings, models.Meeting{
			Day:    day,
			Start:  pick(m.StartTime.String(), m.Start.String()),
			End:    pick(m.EndTime.String(), m.End.String()),
			Room:   m.Room.String(),
			Campus: sec.Campus.String(),
		})
	}

	return models.Section{
		ID:     pick(sec.Section.String(), sec.Value.String(), sec.Text.String()),
		Course: models.Course{
			Subject: subjectCode,
			Code:    courseCode,
			Title:   pick(sec.Title.String(), subjectCode+" "+courseCode),
		},
		CRN:        pick(sec.ClassNumber.String(), sec.CRN.String()),
		Meetings:   meetings,
		Instructor: normalizeInstructor(sec.Instructor),
		Capacity:   firstInt(sec.EnrollmentCap, sec.Capacity),
		Enrolled:   firstInt(sec.Enrollment, sec.Enrolled),
		Modality:   parseModality(sec.DeliveryMethod.String()),
	}
}

func firstInt(candidates ...flexInt) *int {
	for _, c := range candidates {
		if c.value != nil {
			return c.value
		}
	}
	return nil
}

type sfuOutlineItem struct {
	StartDate   flexString `json:"startDate"`
	EndDate     flexString `json:"endDate"`
	StartTime   flexString `json:"startTime"`
	EndTime     flexString `json:"endTime"`
	Days        flexString `json:"days"`
	SectionCode flexString `json:"sectionCode"`
	Campus      flexString `json:"campus"`
	IsExam      flexBool   `json:"isExam"`
}

type sfuOutline struct {
	Info struct {
		Title   flexString `json:"title"`
		Section flexString `json:"section"`
	} `json:"info"`
	Title          flexString      `json:"title"`
	Section        flexString      `json:"section"`
	CourseSchedule json.RawMessage `json:"courseSchedule"`
	Schedule       json.RawMessage `json:"schedule"`
}

// outlineItems unwraps the schedule array, which arrives either directly
// or nested under a "sections" key.
func outlineItems(raw json.RawMessage) []sfuOutlineItem {
	if len(raw) == 0 {
		return nil
	}
	var items []sfuOutlineItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var wrapped struct {
		Sections []sfuOutlineItem `json:"sections"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.Sections
	}
	return nil
}

// Outline implements OutlineProvider: the five-segment detail endpoint
// returning explicit dated schedule items. Not cached: outlines change
// until publication and the call happens once per explicit user action.
func (s *SFU) Outline(ctx context.Context, year, term, dept, course, section string) (*models.Outline, error) {
	var raw sfuOutline
	segments := []string{normCode(year), normText(term), normText(dept), normCode(course), normText(section)}
	if err := s.fetch(ctx, segments, &raw); err != nil {
		return nil, err
	}

	items := outlineItems(raw.CourseSchedule)
	if len(items) == 0 {
		items = outlineItems(raw.Schedule)
	}

	outline := &models.Outline{
		Title:   pick(raw.Info.Title.String(), raw.Title.String(), "Course"),
		Section: pick(raw.Info.Section.String(), raw.Section.String()),
		Items:   make([]models.OutlineItem, 0, len(items)),
	}
	for _, item := range items {
		outline.Items = append(outline.Items, models.OutlineItem{
			StartDate:   item.StartDate.String(),
			EndDate:     item.EndDate.String(),
			StartTime:   item.StartTime.String(),
			EndTime:     item.EndTime.String(),
			Days:        item.Days.String(),
			SectionCode: item.SectionCode.String(),
			Campus:      item.Campus.String(),
			IsExam:      bool(item.IsExam),
		})
	}
	return outline, nil
}
