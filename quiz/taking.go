package quiz

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/models"
	"github.com/korjavin/dailyquizbot/session"
)

// Participant identifies the user taking a quiz
type Participant struct {
	UserID   int64
	Username string
}

// Result is the final score of an attempt
type Result struct {
	Correct  int
	Total    int
	IsWinner bool
}

// Taking drives a user through the questions of the active quiz
type Taking struct {
	store   Store
	checker AnswerChecker
	gate    *Gate
	now     Clock
}

// NewTaking creates the quiz-taking state machine
func NewTaking(store Store, checker AnswerChecker, now Clock) *Taking {
	if now == nil {
		now = utcNow
	}
	return &Taking{
		store:   store,
		checker: checker,
		gate:    NewGate(store, store, now),
		now:     now,
	}
}

// Mode returns the answer mode questions are presented in
func (t *Taking) Mode() AnswerMode {
	return t.checker.Mode()
}

// Start runs the eligibility gate and opens a new attempt.
// Rejections leave the store untouched.
func (t *Taking) Start(ctx context.Context, p Participant) (session.AnsweringQuestions, error) {
	quiz, err := t.gate.Check(ctx, p.UserID)
	if err != nil {
		return session.AnsweringQuestions{}, err
	}

	questions, err := t.store.QuestionsByQuiz(ctx, quiz.ID)
	if err != nil {
		return session.AnsweringQuestions{}, fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return session.AnsweringQuestions{}, ErrQuizEmpty
	}

	if err := t.store.EnsureUser(ctx, p.UserID, p.Username); err != nil {
		return session.AnsweringQuestions{}, fmt.Errorf("failed to save user: %w", err)
	}

	attemptID, err := t.store.CreateAttempt(ctx, models.UserAttempt{
		UserID:    p.UserID,
		QuizID:    quiz.ID,
		Timestamp: t.now(),
	})
	if err != nil {
		return session.AnsweringQuestions{}, fmt.Errorf("failed to create attempt: %w", err)
	}

	log.Printf("User %d started attempt %d for quiz %d (%d questions)", p.UserID, attemptID, quiz.ID, len(questions))

	return session.AnsweringQuestions{
		AttemptID: attemptID,
		QuizID:    quiz.ID,
		Questions: questions,
	}, nil
}

// Options returns the answers to show as buttons for a question
func (t *Taking) Options(ctx context.Context, question models.Question) ([]models.Answer, error) {
	answers, err := t.store.AnswersByQuestion(ctx, question.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers of question %d: %w", question.ID, err)
	}
	return answers, nil
}

// Answer scores the input against the current question, records the
// response and advances to the next question.
func (t *Taking) Answer(ctx context.Context, st session.AnsweringQuestions, input string) (session.AnsweringQuestions, Verdict, error) {
	question, ok := st.Current()
	if !ok {
		return st, Verdict{}, ErrUnknownAnswer
	}

	verdict, err := t.checker.CheckAnswer(ctx, question, input)
	if err != nil {
		return st, Verdict{}, err
	}

	if _, err := t.store.CreateResponse(ctx, models.UserResponse{
		AttemptID:        st.AttemptID,
		QuestionID:       question.ID,
		SelectedAnswerID: verdict.AnswerID,
		AnswerText:       verdict.Text,
	}); err != nil {
		return st, Verdict{}, fmt.Errorf("failed to save response: %w", err)
	}

	if verdict.Correct {
		st.Correct++
	}
	st.Index++
	return st, verdict, nil
}

// Finish stores the final score. Only a perfect score wins.
func (t *Taking) Finish(ctx context.Context, st session.AnsweringQuestions) (Result, error) {
	res := Result{
		Correct:  st.Correct,
		Total:    len(st.Questions),
		IsWinner: st.Correct == len(st.Questions),
	}

	if err := t.store.FinishAttempt(ctx, st.AttemptID, res.Correct, res.IsWinner); err != nil {
		return res, fmt.Errorf("failed to finish attempt %d: %w", st.AttemptID, err)
	}

	log.Printf("Attempt %d finished: %d/%d, winner=%v", st.AttemptID, res.Correct, res.Total, res.IsWinner)
	return res, nil
}

// SubmitEmail validates and stores the prize email of a winner
func (t *Taking) SubmitEmail(ctx context.Context, userID int64, raw string) (string, error) {
	email := strings.TrimSpace(raw)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "", ErrInvalidEmail
	}

	if err := t.store.SetUserEmail(ctx, userID, email); err != nil {
		return "", fmt.Errorf("failed to save email: %w", err)
	}
	return email, nil
}

// KnownEmail returns the email the participant left earlier, or "" if none
func (t *Taking) KnownEmail(ctx context.Context, userID int64) (string, error) {
	u, err := t.store.GetUser(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return u.Email, nil
}
