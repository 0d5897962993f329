package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-compass/internal/models"
	"github.com/noah-isme/course-compass/internal/schedule"
)

const ubcProviderName = "ubc"

// UBC adapts the REST sub-resource source (/terms, /terms/{id}/subjects,
// .../courses, .../sections). Direct access can be blocked by CORS-style
// gateways, so requests optionally go through a path-forwarding proxy
// whose URL ends with its query key (e.g. ".../ubcProxy?path=").
type UBC struct {
	baseURL  string
	proxyURL string
	client   *http.Client
	store    Store
	logger   *zap.Logger
}

// NewUBC constructs the adapter. When baseURL is empty the proxy is used.
func NewUBC(baseURL, proxyURL string, client *http.Client, store Store, logger *zap.Logger) *UBC {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UBC{baseURL: strings.TrimRight(baseURL, "/"), proxyURL: proxyURL, client: client, store: store, logger: logger}
}

// Name implements Provider.
func (u *UBC) Name() string { return ubcProviderName }

func (u *UBC) fetch(ctx context.Context, path string, dest interface{}) error {
	var target string
	if u.baseURL != "" {
		target = u.baseURL + "/" + path
	} else {
		target = u.proxyURL + url.QueryEscape(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ubc fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ProviderHTTPError{
			Provider: ubcProviderName,
			Status:   resp.StatusCode,
			URL:      target,
			Body:     strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("ubc decode %s: %w", target, err)
	}
	return nil
}

type ubcTerm struct {
	Code flexString `json:"code"`
	Name flexString `json:"name"`
}

func (u *UBC) fetchTerms(ctx context.Context) ([]ubcTerm, error) {
	return Fetch(ctx, u.store, "ubc:termlist", func(ctx context.Context) ([]ubcTerm, error) {
		var terms []ubcTerm
		if err := u.fetch(ctx, "terms", &terms); err != nil {
			return nil, err
		}
		return terms, nil
	})
}

// ListYears implements Provider: distinct leading four digits of the term
// codes, ascending.
func (u *UBC) ListYears(ctx context.Context) ([]string, error) {
	return Fetch(ctx, u.store, "ubc:years", func(ctx context.Context) ([]string, error) {
		terms, err := u.fetchTerms(ctx)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]struct{})
		var years []string
		for _, t := range terms {
			code := t.Code.String()
			if len(code) < 4 {
				continue
			}
			year := code[:4]
			if _, dup := seen[year]; dup {
				continue
			}
			seen[year] = struct{}{}
			years = append(years, year)
		}
		sort.Strings(years)
		return years, nil
	})
}

// ListTerms implements Provider: terms whose code starts with the year.
func (u *UBC) ListTerms(ctx context.Context, year string) ([]models.Term, error) {
	year = normCode(year)
	return Fetch(ctx, u.store, "ubc:terms:"+year, func(ctx context.Context) ([]models.Term, error) {
		terms, err := u.fetchTerms(ctx)
		if err != nil {
			return nil, err
		}
		var out []models.Term
		for _, t := range terms {
			code := t.Code.String()
			if !strings.HasPrefix(code, year) {
				continue
			}
			out = append(out, models.Term{ID: code, Name: pick(t.Name.String(), code)})
		}
		return out, nil
	})
}

// ListSubjects implements Provider.
func (u *UBC) ListSubjects(ctx context.Context, termID string) ([]models.Subject, error) {
	termID = normCode(termID)
	return Fetch(ctx, u.store, "ubc:subjects:"+termID, func(ctx context.Context) ([]models.Subject, error) {
		var raw []struct {
			Code flexString `json:"code"`
			Name flexString `json:"name"`
		}
		if err := u.fetch(ctx, "terms/"+termID+"/subjects", &raw); err != nil {
			return nil, err
		}
		subjects := make([]models.Subject, 0, len(raw))
		for _, s := range raw {
			code := s.Code.String()
			if code == "" {
				continue
			}
			subjects = append(subjects, models.Subject{Code: code, Name: pick(s.Name.String(), code)})
		}
		return subjects, nil
	})
}

// ListCourses implements Provider.
func (u *UBC) ListCourses(ctx context.Context, termID, subjectCode string) ([]models.Course, error) {
	termID = normCode(termID)
	subjectCode = normCode(subjectCode)
	key := fmt.Sprintf("ubc:courses:%s:%s", termID, subjectCode)
	return Fetch(ctx, u.store, key, func(ctx context.Context) ([]models.Course, error) {
		var raw []struct {
			Number  flexString `json:"number"`
			Title   flexString `json:"title"`
			Credits *float64   `json:"credits"`
		}
		path := fmt.Sprintf("terms/%s/subjects/%s/courses", termID, subjectCode)
		if err := u.fetch(ctx, path, &raw); err != nil {
			return nil, err
		}
		courses := make([]models.Course, 0, len(raw))
		for _, c := range raw {
			code := c.Number.String()
			if code == "" {
				continue
			}
			courses = append(courses, models.Course{
				Subject: subjectCode,
				Code:    code,
				Title:   c.Title.String(),
				Credits: c.Credits,
			})
		}
		return courses, nil
	})
}

type ubcMeeting struct {
	Day    flexString `json:"day"`
	Start  flexString `json:"start"`
	End    flexString `json:"end"`
	Room   flexString `json:"room"`
	Campus flexString `json:"campus"`
}

type ubcSection struct {
	ID         flexString      `json:"id"`
	Section    flexString      `json:"section"`
	CRN        flexString      `json:"crn"`
	Title      flexString      `json:"title"`
	Meetings   []ubcMeeting    `json:"meetings"`
	Schedule   []ubcMeeting    `json:"schedule"`
	Instructor json.RawMessage `json:"instructor"`
	Capacity   flexInt         `json:"capacity"`
	Enrolled   flexInt         `json:"enrolled"`
	Modality   flexString      `json:"modality"`
	Location   flexString      `json:"location"`
}

// ListSections implements Provider.
func (u *UBC) ListSections(ctx context.Context, termID, subjectCode, courseCode string) ([]models.Section, error) {
	termID = normCode(termID)
	subjectCode = normCode(subjectCode)
	courseCode = normCode(courseCode)
	key := fmt.Sprintf("ubc:sections:%s:%s:%s", termID, subjectCode, courseCode)
	return Fetch(ctx, u.store, key, func(ctx context.Context) ([]models.Section, error) {
		var raw []ubcSection
		path := fmt.Sprintf("terms/%s/subjects/%s/courses/%s/sections", termID, subjectCode, courseCode)
		if err := u.fetch(ctx, path, &raw); err != nil {
			return nil, err
		}
		sections := make([]models.Section, 0, len(raw))
		for _, sec := range raw {
			sections = append(sections, mapUBCSection(sec, subjectCode, courseCode))
		}
		return sections, nil
	})
}

func mapUBCSection(sec ubcSection, subjectCode, courseCode string) models.Section {
	items := sec.Meetings
	if len(items) == 0 {
		items = sec.Schedule
	}
	meetings := make([]models.Meeting, 0, len(items))
	for _, m := range items {
		day := models.Day(m.Day.String())
		if normalized, ok := schedule.NormalizeDay(m.Day.String()); ok {
			day = normalized
		}
		meetings = append(meetings, models.Meeting{
			Day:    day,
			Start:  m.Start.String(),
			End:    m.End.String(),
			Room:   m.Room.String(),
			Campus: m.Campus.String(),
		})
	}

	var modality models.Modality
	switch {
	case sec.Modality.String() != "":
		modality = models.Modality(sec.Modality.String())
	case strings.Contains(strings.ToLower(sec.Location.String()), "online"):
		modality = models.ModalityOnline
	}

	return models.Section{
		ID: pick(sec.Section.String(), sec.CRN.String(),
			fmt.Sprintf("%s-%s-%s", subjectCode, courseCode, sec.ID.String())),
		Course: models.Course{
			Subject: subjectCode,
			Code:    courseCode,
			Title:   pick(sec.Title.String(), subjectCode+" "+courseCode),
		},
		CRN:        sec.CRN.String(),
		Meetings:   meetings,
		Instructor: normalizeInstructor(sec.Instructor),
		Capacity:   firstInt(sec.Capacity),
		Enrolled:   firstInt(sec.Enrolled),
		Modality:   modality,
	}
}
