// Package quiz implements the state machine for a single quiz attempt.
//
// An attempt cycles InProgress -> AnswerSubmitted per question and ends in
// Completed with a final percentage score. The session knows nothing about
// prior attempts or about where its score is recorded; Advance hands the
// final score to the caller and the caller decides what to do with it.
package quiz

import (
	"math"

	"vidya/backend/models"
)

// Phase is the state of an attempt.
type Phase string

const (
	PhaseInProgress      Phase = "in_progress"
	PhaseAnswerSubmitted Phase = "answer_submitted"
	PhaseCompleted       Phase = "completed"
)

const noSelection = -1

// Session is one attempt at one quiz. Not safe for concurrent use; the
// session store serializes access to it.
type Session struct {
	quiz          models.Quiz
	phase         Phase
	questionIndex int
	correctCount  int
	selected      int
	lastCorrect   bool
	finalScore    int
}

// New starts an attempt at the given quiz in InProgress(0, 0).
func New(q models.Quiz) (*Session, error) {
	if len(q.Questions) == 0 {
		return nil, models.ErrInvalidInput
	}
	return &Session{quiz: q, phase: PhaseInProgress, selected: noSelection}, nil
}

// SelectOption records a tentative choice for the current question. Legal
// only while InProgress; re-selecting before submit replaces the choice.
func (s *Session) SelectOption(idx int) error {
	if s.phase != PhaseInProgress {
		return models.ErrIllegalTransition
	}
	if idx < 0 || idx >= len(s.quiz.Questions[s.questionIndex].Options) {
		return models.ErrInvalidInput
	}
	s.selected = idx
	return nil
}

// Submit grades the current selection against the question's correct index
// and moves to AnswerSubmitted. Rejected without a selection.
func (s *Session) Submit() error {
	if s.phase != PhaseInProgress || s.selected == noSelection {
		return models.ErrIllegalTransition
	}
	s.lastCorrect = s.selected == s.quiz.Questions[s.questionIndex].CorrectAnswer
	if s.lastCorrect {
		s.correctCount++
	}
	s.phase = PhaseAnswerSubmitted
	return nil
}

// Advance moves past a submitted answer. On the last question it computes
// the final score, transitions to Completed and returns (score, true);
// otherwise it returns to InProgress on the next question with the
// selection cleared.
func (s *Session) Advance() (score int, done bool, err error) {
	if s.phase != PhaseAnswerSubmitted {
		return 0, false, models.ErrIllegalTransition
	}
	if s.questionIndex == len(s.quiz.Questions)-1 {
		s.finalScore = int(math.Round(float64(s.correctCount) / float64(len(s.quiz.Questions)) * 100))
		s.phase = PhaseCompleted
		return s.finalScore, true, nil
	}
	s.questionIndex++
	s.selected = noSelection
	s.lastCorrect = false
	s.phase = PhaseInProgress
	return 0, false, nil
}

// Retry discards the completed attempt and starts over. Any score already
// emitted stays recorded wherever the caller put it.
func (s *Session) Retry() error {
	if s.phase != PhaseCompleted {
		return models.ErrIllegalTransition
	}
	s.phase = PhaseInProgress
	s.questionIndex = 0
	s.correctCount = 0
	s.selected = noSelection
	s.lastCorrect = false
	s.finalScore = 0
	return nil
}

// Phase returns the current state of the attempt.
func (s *Session) Phase() Phase { return s.phase }

// QuestionIndex returns the zero-based index of the current question.
func (s *Session) QuestionIndex() int { return s.questionIndex }

// CorrectCount returns the number of correctly answered questions so far.
func (s *Session) CorrectCount() int { return s.correctCount }

// TotalQuestions returns the number of questions in the quiz.
func (s *Session) TotalQuestions() int { return len(s.quiz.Questions) }

// SelectedOption returns the tentative choice and whether one exists.
func (s *Session) SelectedOption() (int, bool) {
	return s.selected, s.selected != noSelection
}

// LastCorrect reports whether the most recently submitted answer was
// correct. Meaningful only in AnswerSubmitted.
func (s *Session) LastCorrect() bool { return s.lastCorrect }

// FinalScore returns the score of a completed attempt.
func (s *Session) FinalScore() int { return s.finalScore }

// CurrentQuestion returns the question under consideration.
func (s *Session) CurrentQuestion() models.Question {
	return s.quiz.Questions[s.questionIndex]
}
