// Package session owns the current learner identity and their per-course
// progress. Every mutation is written through to a local SQLite file as one
// whole-object record, so a restart reconstructs identical state. There is
// exactly one learner session per store; a mutex gives callers a strictly
// ordered, non-interleaved view of reads and writes.
package session

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vidya/backend/catalog"
	"vidya/backend/models"
	"vidya/backend/progress"
)

const minPasswordLen = 6

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// FieldErrors maps input field names to validation message keys. It wraps
// models.ErrInvalidInput so callers can match it with errors.Is.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, key := range e {
		parts = append(parts, field+": "+key)
	}
	return "invalid input (" + strings.Join(parts, ", ") + ")"
}

func (e FieldErrors) Unwrap() error { return models.ErrInvalidInput }

// RegisterInput is the registration form.
type RegisterInput struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Role            models.Role `json:"role"`
}

// LoginInput is the login form.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store holds the active session and persists it.
type Store struct {
	db      *gorm.DB
	catalog *catalog.Store
	log     *zap.Logger

	mu   sync.Mutex
	user *models.User
}

// NewStore migrates the session table and restores any persisted session so
// a returning learner picks up where they left off.
func NewStore(db *gorm.DB, cat *catalog.Store, log *zap.Logger) (*Store, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	s := &Store{db: db, catalog: cat, log: log}
	user, err := s.load()
	if err != nil {
		return nil, err
	}
	s.user = user
	return s, nil
}

// CurrentUser returns the active user, if any.
func (s *Store) CurrentUser() (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.user != nil
}

// Register validates the profile, creates a fresh identity with empty
// progress and makes it the active, persisted session. Validation failures
// are reported per field before any state changes.
func (s *Store) Register(in RegisterInput) (*models.User, error) {
	fields := FieldErrors{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name_required"
	}
	validateEmail(fields, in.Email)
	validatePassword(fields, in.Password)
	if in.Password != in.ConfirmPassword {
		fields["confirmPassword"] = "password_mismatch"
	}
	if !in.Role.Valid() {
		fields["role"] = "role_invalid"
	}
	if len(fields) > 0 {
		return nil, fields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: string(hash),
		Progress:     make(map[string]*models.CourseProgress),
		CreatedAt:    time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.persist()
	return user, nil
}

// Login constructs the session identity. Credentials are only checked for
// shape; there is no credential backing store. When a persisted session
// for the same email exists it is resumed, so progress survives restarts;
// otherwise an identity is derived from the email local part.
func (s *Store) Login(in LoginInput) (*models.User, error) {
	fields := FieldErrors{}
	validateEmail(fields, in.Email)
	validatePassword(fields, in.Password)
	if len(fields) > 0 {
		return nil, fields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, err := s.load(); err == nil && stored != nil && stored.Email == in.Email {
		s.user = stored
		s.persist()
		return stored, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Email
	if at := strings.Index(in.Email, "@"); at > 0 {
		name = in.Email[:at]
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        in.Email,
		Role:         models.RoleStudent,
		PasswordHash: string(hash),
		Progress:     make(map[string]*models.CourseProgress),
		CreatedAt:    time.Now(),
	}
	s.user = user
	s.persist()
	return user, nil
}

// Logout drops the in-memory session and removes the persisted copy.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.ErrNotLoggedIn
	}
	s.user = nil
	return s.remove()
}

// DeleteAccount removes the account locally: active session and persisted
// record are both discarded.
func (s *Store) DeleteAccount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.ErrNotLoggedIn
	}
	s.user = nil
	return s.remove()
}

// Progress returns the active user's progress for a course, nil when the
// course has not been touched yet.
func (s *Store) Progress(courseID string) *models.CourseProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return s.user.Progress[courseID]
}

// RecordLessonComplete marks a lesson as completed. Re-completing a lesson
// is a membership no-op that still bumps LastAccessed. The lesson must
// exist in the course's module tree.
func (s *Store) RecordLessonComplete(courseID, lessonID string) (*models.CourseProgress, error) {
	course, err := s.catalog.Get(courseID)
	if err != nil {
		return nil, err
	}
	if _, _, ok := progress.FindLesson(course, lessonID); !ok {
		return nil, models.ErrLessonNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, models.ErrNotLoggedIn
	}
	p := s.ensureProgress(courseID)
	if !p.HasCompleted(lessonID) {
		p.Completed = append(p.Completed, lessonID)
	}
	p.LastAccessed = time.Now()
	s.persist()
	return p, nil
}

// RecordQuizScore stores the final score of a quiz attempt against the
// lesson owning the quiz, overwriting any previous score.
func (s *Store) RecordQuizScore(courseID, lessonID string, score int) (*models.CourseProgress, error) {
	course, err := s.catalog.Get(courseID)
	if err != nil {
		return nil, err
	}
	lesson, _, ok := progress.FindLesson(course, lessonID)
	if !ok {
		return nil, models.ErrLessonNotFound
	}
	if lesson.Quiz == nil {
		return nil, models.ErrQuizNotFound
	}
	if score < 0 || score > 100 {
		return nil, models.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, models.ErrNotLoggedIn
	}
	p := s.ensureProgress(courseID)
	p.QuizScores[lessonID] = score
	p.LastAccessed = time.Now()
	s.persist()
	return p, nil
}

func (s *Store) ensureProgress(courseID string) *models.CourseProgress {
	if s.user.Progress == nil {
		s.user.Progress = make(map[string]*models.CourseProgress)
	}
	p, ok := s.user.Progress[courseID]
	if !ok {
		p = &models.CourseProgress{QuizScores: make(map[string]int)}
		s.user.Progress[courseID] = p
	}
	if p.QuizScores == nil {
		p.QuizScores = make(map[string]int)
	}
	return p
}

// persist writes the whole user under the fixed session key. The in-memory
// state stays authoritative: a failed write is retried once and then only
// logged, never allowed to break the session.
func (s *Store) persist() {
	data, err := json.Marshal(s.user)
	if err != nil {
		s.log.Error("session serialize failed", zap.Error(err))
		return
	}
	rec := Record{
		Key:           sessionKey,
		SchemaVersion: schemaVersion,
		Data:          data,
		UpdatedAt:     time.Now(),
	}
	save := func() error {
		return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	}
	if err := save(); err != nil {
		if err = save(); err != nil {
			s.log.Warn("session not persisted, state kept in memory only", zap.Error(err))
		}
	}
}

func (s *Store) load() (*models.User, error) {
	var rec Record
	err := s.db.First(&rec, "key = ?", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.SchemaVersion > schemaVersion {
		s.log.Warn("session record from newer schema, ignoring",
			zap.Int("version", rec.SchemaVersion))
		return nil, nil
	}
	// Version 0 payloads carry the same user JSON; the version tag is
	// stamped on the next persist.
	var user models.User
	if err := json.Unmarshal(rec.Data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) remove() error {
	return s.db.Delete(&Record{}, "key = ?", sessionKey).Error
}

func validateEmail(fields FieldErrors, email string) {
	switch {
	case email == "":
		fields["email"] = "email_required"
	case !emailRe.MatchString(email):
		fields["email"] = "email_invalid"
	}
}

func validatePassword(fields FieldErrors, password string) {
	switch {
	case password == "":
		fields["password"] = "password_required"
	case len(password) < minPasswordLen:
		fields["password"] = "password_length"
	}
}
