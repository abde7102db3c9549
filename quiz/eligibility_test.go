package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/korjavin/dailyquizbot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateNoActiveQuiz(t *testing.T) {
	store := newMemStore()
	_, _ = store.CreateQuiz(context.Background(), models.Quiz{Title: "inactive"})

	_, err := NewGate(store, store, nil).Check(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoActiveQuiz)
}

func TestGateAlreadyWon(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	quizID := store.addActiveQuiz("q", 1)
	clock := &fixedClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}

	_, _ = store.CreateAttempt(ctx, models.UserAttempt{UserID: 1, QuizID: quizID, Timestamp: clock.t.AddDate(0, 0, -10), IsWinner: true})
	_, _ = store.CreateAttempt(ctx, models.UserAttempt{UserID: 1, QuizID: quizID, Timestamp: clock.t.AddDate(0, 0, -3)})

	gate := NewGate(store, store, clock.now)
	for i := 0; i < 3; i++ {
		_, err := gate.Check(ctx, 1)
		assert.ErrorIs(t, err, ErrAlreadyWon)
		clock.t = clock.t.AddDate(0, 0, 1)
	}
}

func TestGateOneAttemptPerDay(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	quizID := store.addActiveQuiz("q", 1)
	clock := &fixedClock{t: time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)}
	gate := NewGate(store, store, clock.now)

	_, _ = store.CreateAttempt(ctx, models.UserAttempt{UserID: 1, QuizID: quizID, Timestamp: time.Date(2024, 5, 1, 0, 1, 0, 0, time.UTC)})

	_, err := gate.Check(ctx, 1)
	assert.ErrorIs(t, err, ErrAttemptedToday)

	clock.t = time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	quiz, err := gate.Check(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, quizID, quiz.ID)

	// other users are not affected
	clock.t = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	_, err = gate.Check(ctx, 2)
	assert.NoError(t, err)
}

func TestGateAttemptsOfOtherQuizzesIgnored(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	old, _ := store.CreateQuiz(ctx, models.Quiz{Title: "old"})
	store.addActiveQuiz("new", 1)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, _ = store.CreateAttempt(ctx, models.UserAttempt{UserID: 1, QuizID: old, Timestamp: now, IsWinner: true})

	_, err := NewGate(store, store, func() time.Time { return now }).Check(ctx, 1)
	assert.NoError(t, err)
}

func TestSameDayUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	a := time.Date(2024, 5, 2, 2, 0, 0, 0, loc) // 2024-05-01 21:00 UTC
	b := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	assert.True(t, sameDay(a, b))
	assert.False(t, sameDay(b, b.Add(3*time.Hour)))
}
