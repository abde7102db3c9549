package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/models"
	"github.com/korjavin/dailyquizbot/session"
)

// AuthoringMode selects how admins enter new quizzes
type AuthoringMode string

const (
	// AuthoringIncremental asks for the title, then each question and its options
	AuthoringIncremental AuthoringMode = "incremental"
	// AuthoringBulk accepts a whole quiz definition in one message
	AuthoringBulk AuthoringMode = "bulk"
)

// ParseAuthoringMode validates a configured authoring mode
func ParseAuthoringMode(s string) (AuthoringMode, error) {
	switch m := AuthoringMode(strings.ToLower(strings.TrimSpace(s))); m {
	case AuthoringIncremental, AuthoringBulk:
		return m, nil
	}
	return "", fmt.Errorf("unknown authoring mode %q", s)
}

// Status filters quiz listings
type Status int

const (
	StatusAll Status = iota
	StatusActive
	StatusInactive
)

const optionSeparator = "|"

// Authoring drives quiz creation and lifecycle management for admins
type Authoring struct {
	store    QuizStore
	mode     AuthoringMode
	duration time.Duration
	now      Clock
}

// NewAuthoring creates the authoring state machine. New quizzes run for duration.
func NewAuthoring(store QuizStore, mode AuthoringMode, duration time.Duration, now Clock) *Authoring {
	if now == nil {
		now = utcNow
	}
	return &Authoring{store: store, mode: mode, duration: duration, now: now}
}

// Mode returns the configured authoring mode
func (a *Authoring) Mode() AuthoringMode {
	return a.mode
}

// Begin returns the first state of the authoring flow
func (a *Authoring) Begin() session.State {
	if a.mode == AuthoringBulk {
		return session.AwaitingQuizBlock{}
	}
	return session.AwaitingQuizTitle{}
}

func (a *Authoring) newQuiz(title string) models.Quiz {
	start := a.now()
	return models.Quiz{
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(a.duration),
	}
}

// CreateQuiz stores an inactive quiz with no questions
func (a *Authoring) CreateQuiz(ctx context.Context, title string) (session.AwaitingQuestionText, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return session.AwaitingQuestionText{}, ErrEmptyTitle
	}

	id, err := a.store.CreateQuiz(ctx, a.newQuiz(title))
	if err != nil {
		return session.AwaitingQuestionText{}, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("Created quiz %d %q", id, title)
	return session.AwaitingQuestionText{QuizID: id}, nil
}

// BeginQuestion buffers the question text and starts collecting options
func (a *Authoring) BeginQuestion(st session.AwaitingQuestionText, text string) (session.AwaitingAnswerOptions, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return session.AwaitingAnswerOptions{}, ErrEmptyQuestion
	}
	return session.AwaitingAnswerOptions{QuizID: st.QuizID, QuestionText: text}, nil
}

// ParseOptionLine parses "<answer text> | <да|нет>"
func ParseOptionLine(line string) (models.Answer, error) {
	parts := strings.Split(line, optionSeparator)
	if len(parts) != 2 {
		return models.Answer{}, ErrInvalidOptionLine
	}

	text := strings.TrimSpace(parts[0])
	if text == "" {
		return models.Answer{}, ErrInvalidOptionLine
	}

	switch strings.ToLower(strings.TrimSpace(parts[1])) {
	case "да":
		return models.Answer{Text: text, IsCorrect: true}, nil
	case "нет":
		return models.Answer{Text: text}, nil
	}
	return models.Answer{}, ErrInvalidOptionLine
}

// AddOption appends one parsed option to the buffer
func (a *Authoring) AddOption(st session.AwaitingAnswerOptions, line string) (session.AwaitingAnswerOptions, error) {
	opt, err := ParseOptionLine(line)
	if err != nil {
		return st, err
	}
	return st.WithOption(opt), nil
}

// CompleteQuestion validates the buffered options and stores the question.
// On a validation error the state is returned unchanged.
func (a *Authoring) CompleteQuestion(ctx context.Context, st session.AwaitingAnswerOptions) (session.ConfirmingContinuation, error) {
	if len(st.Options) < 2 {
		return session.ConfirmingContinuation{}, ErrTooFewOptions
	}

	hasCorrect := false
	for _, o := range st.Options {
		if o.IsCorrect {
			hasCorrect = true
			break
		}
	}
	if !hasCorrect {
		return session.ConfirmingContinuation{}, ErrNoCorrectOption
	}

	questionID, err := a.store.AddQuestion(ctx, st.QuizID, models.QuestionDraft{
		Text:    st.QuestionText,
		Answers: st.Options,
	})
	if err != nil {
		return session.ConfirmingContinuation{}, fmt.Errorf("failed to save question: %w", err)
	}

	log.Printf("Added question %d with %d options to quiz %d", questionID, len(st.Options), st.QuizID)
	return session.ConfirmingContinuation{QuizID: st.QuizID}, nil
}

// CreateFromBlock parses a bulk quiz definition and stores it inactive
func (a *Authoring) CreateFromBlock(ctx context.Context, text string) (*models.Quiz, error) {
	draft, err := ParseQuizBlock(text)
	if err != nil {
		return nil, err
	}

	quiz := a.newQuiz(draft.Title)
	id, err := a.store.CreateQuizWithQuestions(ctx, quiz, draft.Questions)
	if err != nil {
		return nil, fmt.Errorf("failed to store quiz: %w", err)
	}

	quiz.ID = id
	quiz.QuestionCount = len(draft.Questions)
	log.Printf("Created quiz %d %q from block with %d questions", id, quiz.Title, quiz.QuestionCount)
	return &quiz, nil
}

// Get loads a quiz by ID
func (a *Authoring) Get(ctx context.Context, id int64) (*models.Quiz, error) {
	quiz, err := a.store.GetQuiz(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrQuizNotFound
	}
	return quiz, err
}

// List returns quizzes matching the status filter
func (a *Authoring) List(ctx context.Context, status Status) ([]models.Quiz, error) {
	switch status {
	case StatusActive:
		return a.store.ListQuizzesByStatus(ctx, true)
	case StatusInactive:
		return a.store.ListQuizzesByStatus(ctx, false)
	}
	return a.store.ListQuizzes(ctx)
}

// Activate makes a quiz available to users. Only one quiz may be active.
func (a *Authoring) Activate(ctx context.Context, id int64) error {
	quiz, err := a.Get(ctx, id)
	if err != nil {
		return err
	}
	if quiz.IsActive {
		return nil
	}
	if quiz.QuestionCount == 0 {
		return ErrQuizEmpty
	}

	active, err := a.store.ActiveQuiz(ctx)
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load active quiz: %w", err)
	case active.ID != id:
		return ErrAnotherQuizActive
	}

	if err := a.store.SetQuizActive(ctx, id, true); err != nil {
		return fmt.Errorf("failed to activate quiz %d: %w", id, err)
	}
	log.Printf("Activated quiz %d", id)
	return nil
}

// Deactivate hides a quiz from users
func (a *Authoring) Deactivate(ctx context.Context, id int64) error {
	err := a.store.SetQuizActive(ctx, id, false)
	if errors.Is(err, database.ErrNotFound) {
		return ErrQuizNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to deactivate quiz %d: %w", id, err)
	}
	log.Printf("Deactivated quiz %d", id)
	return nil
}

// Delete removes a quiz with its questions and answers
func (a *Authoring) Delete(ctx context.Context, id int64) error {
	err := a.store.DeleteQuiz(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return ErrQuizNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete quiz %d: %w", id, err)
	}
	log.Printf("Deleted quiz %d", id)
	return nil
}
