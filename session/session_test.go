package session

import (
	"sync"
	"testing"

	"github.com/korjavin/dailyquizbot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	k := Key{ChatID: 1, UserID: 1}
	assert.Equal(t, StepIdle, s.Step(k))

	s.Set(k, AwaitingQuestionText{QuizID: 7})
	st, ok := s.Get(k)
	require.True(t, ok)
	assert.Equal(t, AwaitingQuestionText{QuizID: 7}, st)
	assert.Equal(t, StepIdle, s.Step(Key{ChatID: 2, UserID: 2}))

	s.Set(k, ConfirmingContinuation{QuizID: 7})
	assert.Equal(t, StepConfirmingContinuation, s.Step(k))

	s.Clear(k)
	_, ok = s.Get(k)
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestStoreSeparatesGroupMembers(t *testing.T) {
	s := NewStore()
	alice := Key{ChatID: -100, UserID: 1}
	bob := Key{ChatID: -100, UserID: 2}

	s.Set(alice, AnsweringQuestions{AttemptID: 5})
	assert.Equal(t, StepAnsweringQuestions, s.Step(alice))
	assert.Equal(t, StepIdle, s.Step(bob))

	s.Clear(bob)
	assert.Equal(t, StepAnsweringQuestions, s.Step(alice))
	assert.Equal(t, 1, s.Len())
}

func TestWithOptionDoesNotShareBacking(t *testing.T) {
	base := AwaitingAnswerOptions{QuizID: 1, QuestionText: "2+2=?"}
	a := base.WithOption(models.Answer{Text: "4", IsCorrect: true})
	b := a.WithOption(models.Answer{Text: "5"})
	c := a.WithOption(models.Answer{Text: "6"})

	assert.Empty(t, base.Options)
	assert.Len(t, a.Options, 1)
	assert.Equal(t, "5", b.Options[1].Text)
	assert.Equal(t, "6", c.Options[1].Text)
}

func TestAnsweringQuestionsCurrent(t *testing.T) {
	st := AnsweringQuestions{Questions: []models.Question{{ID: 1}, {ID: 2}}}

	q, ok := st.Current()
	require.True(t, ok)
	assert.Equal(t, int64(1), q.ID)

	st.Index = 2
	assert.True(t, st.Done())
	_, ok = st.Current()
	assert.False(t, ok)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "waiting_for_email", WaitingForEmail{}.Step().String())
	assert.Equal(t, "idle", StepIdle.String())
	assert.Equal(t, "unknown", Step(99).String())
}

func TestStoreConcurrentChats(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := int64(0); i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			k := Key{ChatID: id, UserID: id}
			s.Set(k, WaitingForEmail{AttemptID: id})
			s.Step(k)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
