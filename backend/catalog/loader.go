package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"vidya/backend/models"
)

//go:embed seed/*.yaml
var seedFS embed.FS

// Load builds the catalog from course YAML files in dir, one course per
// document. With an empty dir the embedded seed catalog is used.
func Load(dir string) (*Store, error) {
	if dir == "" {
		return loadFS(seedFS, "seed")
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	return loadFS(os.DirFS(dir), ".")
}

func loadFS(fsys fs.FS, root string) (*Store, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Catalog order is file order; file names are prefixed to sort.
	sort.Strings(paths)

	s := &Store{byID: make(map[string]int)}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var course models.Course
		if err := yaml.Unmarshal(data, &course); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		if err := validateCourse(course); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if _, dup := s.byID[course.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate course id %q", filepath.Base(path), course.ID)
		}
		s.byID[course.ID] = len(s.courses)
		s.courses = append(s.courses, course)
	}
	return s, nil
}

// validateCourse enforces the structural invariants the rest of the system
// relies on: non-empty ids, lesson ids unique within the course, and every
// quiz question offering at least two options with a correct index in range.
func validateCourse(c models.Course) error {
	if c.ID == "" {
		return fmt.Errorf("course without id")
	}
	if c.Title == "" {
		return fmt.Errorf("course %q without title", c.ID)
	}
	if !c.Level.Valid() {
		return fmt.Errorf("course %q: unknown level %q", c.ID, c.Level)
	}
	seen := make(map[string]bool)
	for _, m := range c.Modules {
		if m.ID == "" {
			return fmt.Errorf("course %q: module without id", c.ID)
		}
		for _, l := range m.Lessons {
			if l.ID == "" {
				return fmt.Errorf("module %q: lesson without id", m.ID)
			}
			if seen[l.ID] {
				return fmt.Errorf("course %q: duplicate lesson id %q", c.ID, l.ID)
			}
			seen[l.ID] = true
			if l.Quiz == nil {
				continue
			}
			if len(l.Quiz.Questions) == 0 {
				return fmt.Errorf("lesson %q: quiz without questions", l.ID)
			}
			for _, q := range l.Quiz.Questions {
				if len(q.Options) < 2 {
					return fmt.Errorf("question %q: needs at least two options", q.ID)
				}
				if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
					return fmt.Errorf("question %q: correct answer index %d out of range", q.ID, q.CorrectAnswer)
				}
			}
		}
	}
	return nil
}
