package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/models"
)

// Gate decides whether a user may start the active quiz now
type Gate struct {
	quizzes  QuizStore
	attempts AttemptStore
	now      Clock
}

// NewGate creates an eligibility gate
func NewGate(quizzes QuizStore, attempts AttemptStore, now Clock) *Gate {
	if now == nil {
		now = utcNow
	}
	return &Gate{quizzes: quizzes, attempts: attempts, now: now}
}

// Check returns the active quiz if the user is allowed to attempt it.
// It never writes to the store.
func (g *Gate) Check(ctx context.Context, userID int64) (*models.Quiz, error) {
	quiz, err := g.quizzes.ActiveQuiz(ctx)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoActiveQuiz
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active quiz: %w", err)
	}

	_, err = g.attempts.LatestWinningAttempt(ctx, userID, quiz.ID)
	if err == nil {
		return nil, ErrAlreadyWon
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("failed to load winning attempt: %w", err)
	}

	last, err := g.attempts.LatestAttempt(ctx, userID, quiz.ID)
	switch {
	case errors.Is(err, database.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load latest attempt: %w", err)
	case sameDay(last.Timestamp, g.now()):
		return nil, ErrAttemptedToday
	}

	return quiz, nil
}

// sameDay compares calendar dates in UTC
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
