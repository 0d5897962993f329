package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-compass/internal/models"
)

const ubcTermsBody = `[
	{"code":"2024S","name":"2024 Summer"},
	{"code":"2025W1","name":"2025 Winter Term 1"},
	{"code":"2025W2","name":"2025 Winter Term 2"}
]`

func newUBCServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestUBCListYears(t *testing.T) {
	srv := newUBCServer(t, map[string]string{"/terms": ubcTermsBody})
	ubc := NewUBC(srv.URL, "", srv.Client(), NewMemoryStore(), nil)

	years, err := ubc.ListYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2024", "2025"}, years)
}

func TestUBCListTermsFiltersByYear(t *testing.T) {
	srv := newUBCServer(t, map[string]string{"/terms": ubcTermsBody})
	ubc := NewUBC(srv.URL, "", srv.Client(), NewMemoryStore(), nil)

	terms, err := ubc.ListTerms(context.Background(), "2025")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "2025W1", terms[0].ID)
	assert.Equal(t, "2025 Winter Term 1", terms[0].Name)
	assert.Equal(t, "2025W2", terms[1].ID)
}

func TestUBCListSubjects(t *testing.T) {
	srv := newUBCServer(t, map[string]string{
		"/terms/2025W1/subjects": `[{"code":"CPSC","name":"Computer Science"},{"code":"MATH"}]`,
	})
	ubc := NewUBC(srv.URL, "", srv.Client(), NewMemoryStore(), nil)

	subjects, err := ubc.ListSubjects(context.Background(), "2025W1")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "CPSC", subjects[0].Code)
	assert.Equal(t, "Computer Science", subjects[0].Name)
	assert.Equal(t, "MATH", subjects[1].Name)
}

func TestUBCListCourses(t *testing.T) {
	srv := newUBCServer(t, map[string]string{
		"/terms/2025W1/subjects/CPSC/courses": `[{"number":"110","title":"Computation, Programs, and Programming","credits":4}]`,
	})
	ubc := NewUBC(srv.URL, "", srv.Client(), NewMemoryStore(), nil)

	courses, err := ubc.ListCourses(context.Background(), "2025W1", "CPSC")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "110", courses[0].Code)
	assert.Equal(t, "CPSC", courses[0].Subject)
	require.NotNil(t, courses[0].Credits)
	assert.Equal(t, 4.0, *courses[0].Credits)
}

func TestUBCListSectionsMapping(t *testing.T) {
	srv := newUBCServer(t, map[string]string{
		"/terms/2025W1/subjects/CPSC/courses/110/sections": `[
			{
				"section":"101",
				"crn":"12345",
				"title":"Computation, Programs, and Programming",
				"instructor":"Jane Doe",
				"capacity":"200",
				"enrolled":180,
				"meetings":[{"day":"Tue","start":"09:30","end":"11:00","room":"DMP 110","campus":"Vancouver"}]
			},
			{
				"id":"999",
				"location":"Online - Zoom",
				"schedule":[{"day":"Th","start":"14:00","end":"15:30"}]
			}
		]`,
	})
	ubc := NewUBC(srv.URL, "", srv.Client(), NewMemoryStore(), nil)

	sections, err := ubc.ListSections(context.Background(), "2025W1", "CPSC", "110")
	require.NoError(t, err)
	require.Len(t, sections, 2)

	first := sections[0]
	assert.Equal(t, "101", first.ID)
	assert.Equal(t, "12345", first.CRN)
	assert.Equal(t, "Jane Doe", first.Instructor)
	require.NotNil(t, first.Capacity)
	assert.Equal(t, 200, *first.Capacity)
	require.Len(t, first.Meetings, 1)
	assert.Equal(t, models.DayTu, first.Meetings[0].Day)
	assert.Equal(t, "Vancouver", first.Meetings[0].Campus)

	second := sections[1]
	assert.Equal(t, "CPSC-110-999", second.ID)
	assert.Equal(t, models.ModalityOnline, second.Modality)
	require.Len(t, second.Meetings, 1)
	assert.Equal(t, models.DayTh, second.Meetings[0].Day)
}

func TestUBCProxyPathEncoding(t *testing.T) {
	var seenPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Query().Get("path")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(ubcTermsBody))
	}))
	defer srv.Close()

	ubc := NewUBC("", srv.URL+"/proxy?path=", srv.Client(), NewMemoryStore(), nil)
	_, err := ubc.ListYears(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "terms", seenPath)
}
