package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/korjavin/dailyquizbot/models"
	"github.com/korjavin/dailyquizbot/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthoring(store *memStore, mode AuthoringMode) *Authoring {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return NewAuthoring(store, mode, 7*24*time.Hour, func() time.Time { return now })
}

func TestParseOptionLine(t *testing.T) {
	opt, err := ParseOptionLine("  4 | да ")
	require.NoError(t, err)
	assert.Equal(t, models.Answer{Text: "4", IsCorrect: true}, opt)

	opt, err = ParseOptionLine("5|НЕТ")
	require.NoError(t, err)
	assert.Equal(t, models.Answer{Text: "5"}, opt)

	for _, bad := range []string{"4", "4 | maybe", " | да", "a | b | да", ""} {
		_, err := ParseOptionLine(bad)
		assert.ErrorIs(t, err, ErrInvalidOptionLine, bad)
	}
}

func TestIncrementalAuthoringFlow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringIncremental)

	assert.Equal(t, session.AwaitingQuizTitle{}, a.Begin())

	waiting, err := a.CreateQuiz(ctx, " T ")
	require.NoError(t, err)
	quiz := store.quizzes[waiting.QuizID]
	assert.Equal(t, "T", quiz.Title)
	assert.False(t, quiz.IsActive)
	assert.Zero(t, quiz.QuestionCount)
	assert.Equal(t, 7*24*time.Hour, quiz.EndTime.Sub(quiz.StartTime))

	opts, err := a.BeginQuestion(waiting, "2+2=?")
	require.NoError(t, err)
	assert.Empty(t, opts.Options)

	opts, err = a.AddOption(opts, "4 | да")
	require.NoError(t, err)

	// one option is not enough; the state stays as it was
	_, err = a.CompleteQuestion(ctx, opts)
	assert.ErrorIs(t, err, ErrTooFewOptions)
	assert.Len(t, opts.Options, 1)

	bad, err := a.AddOption(opts, "garbage")
	assert.ErrorIs(t, err, ErrInvalidOptionLine)
	assert.Equal(t, opts, bad)

	opts, err = a.AddOption(opts, "5 | нет")
	require.NoError(t, err)

	confirm, err := a.CompleteQuestion(ctx, opts)
	require.NoError(t, err)
	assert.Equal(t, session.ConfirmingContinuation{QuizID: waiting.QuizID}, confirm)
	assert.Equal(t, 1, store.quizzes[waiting.QuizID].QuestionCount)

	questions, _ := store.QuestionsByQuiz(ctx, waiting.QuizID)
	require.Len(t, questions, 1)
	answers, _ := store.AnswersByQuestion(ctx, questions[0].ID)
	assert.Equal(t, []string{"4", "5"}, []string{answers[0].Text, answers[1].Text})
	assert.True(t, answers[0].IsCorrect)

	require.NoError(t, a.Activate(ctx, waiting.QuizID))
	assert.True(t, store.quizzes[waiting.QuizID].IsActive)
}

func TestCompleteQuestionNeedsCorrectOption(t *testing.T) {
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringIncremental)
	st := session.AwaitingAnswerOptions{QuizID: 1, QuestionText: "?"}.
		WithOption(models.Answer{Text: "a"}).
		WithOption(models.Answer{Text: "b"})

	_, err := a.CompleteQuestion(context.Background(), st)
	assert.ErrorIs(t, err, ErrNoCorrectOption)
	assert.Empty(t, store.questions)
}

func TestEmptyInputsRejected(t *testing.T) {
	a := newTestAuthoring(newMemStore(), AuthoringIncremental)

	_, err := a.CreateQuiz(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = a.BeginQuestion(session.AwaitingQuestionText{QuizID: 1}, "\n")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestActivateRules(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringIncremental)

	active := store.addActiveQuiz("live", 1)
	other, _ := store.CreateQuizWithQuestions(ctx, models.Quiz{Title: "next"}, []models.QuestionDraft{{Text: "q"}})
	empty, _ := store.CreateQuiz(ctx, models.Quiz{Title: "empty"})

	assert.ErrorIs(t, a.Activate(ctx, other), ErrAnotherQuizActive)
	assert.ErrorIs(t, a.Activate(ctx, empty), ErrQuizEmpty)
	assert.ErrorIs(t, a.Activate(ctx, 999), ErrQuizNotFound)
	assert.NoError(t, a.Activate(ctx, active))

	require.NoError(t, a.Deactivate(ctx, active))
	require.NoError(t, a.Activate(ctx, other))
	assert.True(t, store.quizzes[other].IsActive)
	assert.False(t, store.quizzes[active].IsActive)

	assert.ErrorIs(t, a.Deactivate(ctx, 999), ErrQuizNotFound)
}

func TestListByStatus(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringIncremental)
	live := store.addActiveQuiz("live", 1)
	idle, _ := store.CreateQuiz(ctx, models.Quiz{Title: "idle"})

	all, err := a.List(ctx, StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	act, err := a.List(ctx, StatusActive)
	require.NoError(t, err)
	require.Len(t, act, 1)
	assert.Equal(t, live, act[0].ID)

	inact, err := a.List(ctx, StatusInactive)
	require.NoError(t, err)
	require.Len(t, inact, 1)
	assert.Equal(t, idle, inact[0].ID)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringIncremental)
	keep := store.addActiveQuiz("keep", 1)
	drop := store.addActiveQuiz("drop", 3)

	require.NoError(t, a.Delete(ctx, drop))
	assert.NotContains(t, store.quizzes, drop)
	for _, q := range store.questions {
		assert.Equal(t, keep, q.QuizID)
	}
	assert.Len(t, store.answers, 2)

	assert.ErrorIs(t, a.Delete(ctx, drop), ErrQuizNotFound)
}

func TestCreateFromBlock(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	a := newTestAuthoring(store, AuthoringBulk)
	assert.Equal(t, session.AwaitingQuizBlock{}, a.Begin())

	quiz, err := a.CreateFromBlock(ctx, "Название квиза: Тест\nВопросы:\n1. Q1?\nОтвет: A1\n2. Q2?\nОтвет: A2")
	require.NoError(t, err)
	assert.Equal(t, "Тест", quiz.Title)
	assert.Equal(t, 2, quiz.QuestionCount)
	assert.False(t, store.quizzes[quiz.ID].IsActive)

	questions, _ := store.QuestionsByQuiz(ctx, quiz.ID)
	require.Len(t, questions, 2)
	for i, want := range []string{"A1", "A2"} {
		answers, _ := store.AnswersByQuestion(ctx, questions[i].ID)
		require.Len(t, answers, 1)
		assert.Equal(t, want, answers[0].Text)
		assert.True(t, answers[0].IsCorrect)
	}

	_, err = a.CreateFromBlock(ctx, "Вопросы:\n1. Q?")
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
	assert.Len(t, store.quizzes, 1)
}

func TestParseModes(t *testing.T) {
	m, err := ParseAuthoringMode(" Bulk ")
	require.NoError(t, err)
	assert.Equal(t, AuthoringBulk, m)
	_, err = ParseAuthoringMode("wizard")
	assert.Error(t, err)

	am, err := ParseAnswerMode("TEXT")
	require.NoError(t, err)
	assert.Equal(t, ModeText, am)
	_, err = ParseAnswerMode("")
	assert.Error(t, err)
}
