package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/noah-isme/course-compass/internal/models"
)

// Provider is the five-operation contract every institution adapter
// implements. Each operation returns canonical entities; ordering is not
// part of the contract.
type Provider interface {
	Name() string
	ListYears(ctx context.Context) ([]string, error)
	ListTerms(ctx context.Context, year string) ([]models.Term, error)
	ListSubjects(ctx context.Context, termID string) ([]models.Subject, error)
	ListCourses(ctx context.Context, termID, subjectCode string) ([]models.Course, error)
	ListSections(ctx context.Context, termID, subjectCode, courseCode string) ([]models.Section, error)
}

// OutlineProvider is implemented by providers that additionally publish a
// detailed per-section outline with explicit dated schedule items.
type OutlineProvider interface {
	Outline(ctx context.Context, year, term, dept, course, section string) (*models.Outline, error)
}

// ProviderHTTPError reports a non-success status from a catalog source,
// keeping the institution and status for actionable messages.
type ProviderHTTPError struct {
	Provider string
	Status   int
	URL      string
	Body     string
}

func (e *ProviderHTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s upstream returned %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s upstream returned %d", e.Provider, e.Status)
}

// Registry is an explicitly constructed name-to-adapter map. Exactly one
// provider is active per selection; there is no fallback or merging.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds a registry from the given adapters.
func NewRegistry(providers ...Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Resolve looks up an adapter by institution name.
func (r *Registry) Resolve(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names lists registered institutions in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
