package models

import "time"

// Role is the registration role of a learner.
type Role string

const (
	RoleStudent   Role = "student"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleVolunteer
}

// User is the session identity. It exists in memory for the lifetime of a
// login and is persisted whole by the session store.
type User struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Email        string                     `json:"email"`
	Role         Role                       `json:"role"`
	PasswordHash string                     `json:"passwordHash,omitempty"`
	Progress     map[string]*CourseProgress `json:"progress"`
	CreatedAt    time.Time                  `json:"createdAt"`
}

// CourseProgress records one learner's traversal of one course.
//
// Completed keeps insertion order: the slice is append-only and duplicate
// completions are membership no-ops, so the furthest point reached can be
// derived without a separate timestamp per lesson.
type CourseProgress struct {
	Completed    []string       `json:"completed"`
	QuizScores   map[string]int `json:"quizScores"`
	LastAccessed time.Time      `json:"lastAccessed"`
}

// HasCompleted reports whether lessonID is already in the completed set.
func (p *CourseProgress) HasCompleted(lessonID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.Completed {
		if id == lessonID {
			return true
		}
	}
	return false
}
