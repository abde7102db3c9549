package quiz

import (
	"errors"
	"fmt"
)

// Eligibility errors
var (
	ErrNoActiveQuiz   = errors.New("no active quiz")
	ErrAlreadyWon     = errors.New("already won this quiz")
	ErrAttemptedToday = errors.New("already attempted today")
	ErrQuizEmpty      = errors.New("quiz has no questions")
)

// Validation errors
var (
	ErrEmptyTitle        = errors.New("quiz title is empty")
	ErrEmptyQuestion     = errors.New("question text is empty")
	ErrInvalidOptionLine = errors.New("answer option must look like: text | да/нет")
	ErrTooFewOptions     = errors.New("at least 2 answer options are required")
	ErrNoCorrectOption   = errors.New("at least one answer option must be correct")
	ErrInvalidEmail      = errors.New("email must contain @ and .")
	ErrUnknownAnswer     = errors.New("answer does not belong to the current question")
)

// ErrCorrectAnswerMissing is returned when a question has no correct answer to score against
var ErrCorrectAnswerMissing = errors.New("correct answer not found")

// Lifecycle errors
var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrAnotherQuizActive = errors.New("another quiz is already active")
)

// ParseError describes why a bulk quiz definition was rejected
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}
