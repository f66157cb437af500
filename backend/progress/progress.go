// Package progress derives view state from a course and a learner's progress
// record. Every function is a pure query: nothing here mutates the catalog or
// the progress, and a nil progress means "no interaction with this course yet".
package progress

import (
	"math"

	"vidya/backend/models"
)

// Flatten returns the course's lessons in document order: modules in course
// order, lessons in module order. This is the total order used for
// resumption and previous/next navigation.
func Flatten(course models.Course) []models.Lesson {
	var out []models.Lesson
	for _, m := range course.Modules {
		out = append(out, m.Lessons...)
	}
	return out
}

// TotalLessons counts the lessons across all modules. Always recomputed from
// the catalog tree so it cannot drift from the content.
func TotalLessons(course models.Course) int {
	n := 0
	for _, m := range course.Modules {
		n += len(m.Lessons)
	}
	return n
}

// FindLesson locates a lesson and its owning module by id.
func FindLesson(course models.Course, lessonID string) (models.Lesson, models.Module, bool) {
	for _, m := range course.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return l, m, true
			}
		}
	}
	return models.Lesson{}, models.Module{}, false
}

// CompletedCount counts the course's lessons present in p.Completed. Ids in
// the progress record that no longer exist in the course are ignored, so the
// count never exceeds the lesson total.
func CompletedCount(course models.Course, p *models.CourseProgress) int {
	if p == nil {
		return 0
	}
	n := 0
	for _, l := range Flatten(course) {
		if p.HasCompleted(l.ID) {
			n++
		}
	}
	return n
}

// CompletionPercent returns the rounded completion percentage in [0,100].
// A course with zero lessons is legal and reports 0.
func CompletionPercent(course models.Course, p *models.CourseProgress) int {
	total := TotalLessons(course)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(CompletedCount(course, p)) / float64(total) * 100))
}

// ResumeLesson returns the lesson a returning learner should be directed to.
//
// With no progress it is the first lesson in document order. Otherwise it is
// the lesson after the furthest completed lesson in document order, not the
// most recently completed one, which may be an earlier lesson revisited. When
// the furthest completed lesson is the last, the first still-uncompleted
// lesson is returned, and once everything is completed, the final lesson.
// ok is false only for a course with no lessons.
func ResumeLesson(course models.Course, p *models.CourseProgress) (models.Lesson, bool) {
	lessons := Flatten(course)
	if len(lessons) == 0 {
		return models.Lesson{}, false
	}
	if p == nil || len(p.Completed) == 0 {
		return lessons[0], true
	}

	furthest := -1
	for i, l := range lessons {
		if p.HasCompleted(l.ID) {
			furthest = i
		}
	}
	switch {
	case furthest < 0:
		// Progress references lessons no longer in the course.
		return lessons[0], true
	case furthest+1 < len(lessons):
		return lessons[furthest+1], true
	}
	for _, l := range lessons {
		if !p.HasCompleted(l.ID) {
			return l, true
		}
	}
	return lessons[len(lessons)-1], true
}

// AdjacentLessons returns the lessons before and after lessonID in document
// order. Either can be nil at the boundaries of the course.
func AdjacentLessons(course models.Course, lessonID string) (prev, next *models.Lesson, err error) {
	lessons := Flatten(course)
	for i := range lessons {
		if lessons[i].ID != lessonID {
			continue
		}
		if i > 0 {
			prev = &lessons[i-1]
		}
		if i+1 < len(lessons) {
			next = &lessons[i+1]
		}
		return prev, next, nil
	}
	return nil, nil, models.ErrLessonNotFound
}
