package catalog

import (
	"strings"

	"vidya/backend/models"
)

// Store is the read-only course catalog. It is populated once by Load and
// never mutated afterwards, so lookups need no locking.
type Store struct {
	courses []models.Course
	byID    map[string]int
}

// Filter selects courses for listing. Zero value matches everything.
type Filter struct {
	Search string
	Level  models.Level
}

// Get returns the course with the given id.
func (s *Store) Get(id string) (models.Course, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Course{}, models.ErrCourseNotFound
	}
	return s.courses[i], nil
}

// List returns every course matching the filter, in catalog order. Matching
// is binary: a case-insensitive substring on title or description, and an
// exact level, each applied only when set.
func (s *Store) List(f Filter) []models.Course {
	out := make([]models.Course, 0, len(s.courses))
	q := strings.ToLower(strings.TrimSpace(f.Search))
	for _, c := range s.courses {
		if q != "" &&
			!strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		if f.Level != "" && c.Level != f.Level {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Len returns the number of courses in the catalog.
func (s *Store) Len() int {
	return len(s.courses)
}
