// Package session keeps the transient per-conversation state of the
// multi-step quiz flows. Each state is its own type carrying only the
// fields that step needs; a conversation without a state is idle.
package session

import (
	"sync"

	"github.com/korjavin/dailyquizbot/models"
)

// Step identifies the kind of a conversation state
type Step int

const (
	StepIdle Step = iota
	StepAwaitingQuizTitle
	StepAwaitingQuestionText
	StepAwaitingAnswerOptions
	StepConfirmingContinuation
	StepAwaitingQuizBlock
	StepConfirmingDelete
	StepAnsweringQuestions
	StepWaitingForEmail
)

var stepNames = map[Step]string{
	StepIdle:                   "idle",
	StepAwaitingQuizTitle:      "awaiting_quiz_title",
	StepAwaitingQuestionText:   "awaiting_question_text",
	StepAwaitingAnswerOptions:  "awaiting_answer_options",
	StepConfirmingContinuation: "confirming_continuation",
	StepAwaitingQuizBlock:      "awaiting_quiz_block",
	StepConfirmingDelete:       "confirming_delete",
	StepAnsweringQuestions:     "answering_questions",
	StepWaitingForEmail:        "waiting_for_email",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// State is one step of a conversation flow
type State interface {
	Step() Step
	isState()
}

// AwaitingQuizTitle waits for the title of a new quiz
type AwaitingQuizTitle struct{}

// AwaitingQuestionText waits for the text of the next question of QuizID
type AwaitingQuestionText struct {
	QuizID int64
}

// AwaitingAnswerOptions collects answer options until the admin sends /done
type AwaitingAnswerOptions struct {
	QuizID       int64
	QuestionText string
	Options      []models.Answer
}

// WithOption returns a copy of the state with one more option
func (s AwaitingAnswerOptions) WithOption(opt models.Answer) AwaitingAnswerOptions {
	options := make([]models.Answer, len(s.Options), len(s.Options)+1)
	copy(options, s.Options)
	s.Options = append(options, opt)
	return s
}

// ConfirmingContinuation asks whether to add another question or activate the quiz
type ConfirmingContinuation struct {
	QuizID int64
}

// AwaitingQuizBlock waits for a whole quiz definition in one message
type AwaitingQuizBlock struct{}

// ConfirmingDelete waits for the admin to confirm deleting QuizID
type ConfirmingDelete struct {
	QuizID int64
}

// AnsweringQuestions tracks a user going through the questions of an attempt
type AnsweringQuestions struct {
	AttemptID int64
	QuizID    int64
	Questions []models.Question
	Index     int
	Correct   int
}

// Done reports whether all questions have been answered
func (s AnsweringQuestions) Done() bool {
	return s.Index >= len(s.Questions)
}

// Current returns the question to be answered next
func (s AnsweringQuestions) Current() (models.Question, bool) {
	if s.Done() {
		return models.Question{}, false
	}
	return s.Questions[s.Index], true
}

// WaitingForEmail waits for a winner to leave a prize email
type WaitingForEmail struct {
	AttemptID int64
}

func (AwaitingQuizTitle) Step() Step      { return StepAwaitingQuizTitle }
func (AwaitingQuestionText) Step() Step   { return StepAwaitingQuestionText }
func (AwaitingAnswerOptions) Step() Step  { return StepAwaitingAnswerOptions }
func (ConfirmingContinuation) Step() Step { return StepConfirmingContinuation }
func (AwaitingQuizBlock) Step() Step      { return StepAwaitingQuizBlock }
func (ConfirmingDelete) Step() Step       { return StepConfirmingDelete }
func (AnsweringQuestions) Step() Step     { return StepAnsweringQuestions }
func (WaitingForEmail) Step() Step        { return StepWaitingForEmail }

func (AwaitingQuizTitle) isState()      {}
func (AwaitingQuestionText) isState()   {}
func (AwaitingAnswerOptions) isState()  {}
func (ConfirmingContinuation) isState() {}
func (AwaitingQuizBlock) isState()      {}
func (ConfirmingDelete) isState()       {}
func (AnsweringQuestions) isState()     {}
func (WaitingForEmail) isState()        {}

// Key identifies one participant in one chat. In private chats both IDs
// are equal; in groups every member has a separate conversation.
type Key struct {
	ChatID int64
	UserID int64
}

// Store holds the state of every conversation.
// Entries live until they are overwritten or cleared.
type Store struct {
	mu     sync.RWMutex
	states map[Key]State
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{states: make(map[Key]State)}
}

// Get returns the state of a conversation; ok is false when it is idle
func (s *Store) Get(key Key) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[key]
	return st, ok
}

// Step returns the current step of a conversation
func (s *Store) Step(key Key) Step {
	st, ok := s.Get(key)
	if !ok {
		return StepIdle
	}
	return st.Step()
}

// Set replaces the state of a conversation
func (s *Store) Set(key Key, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[key] = st
}

// Clear returns a conversation to idle
func (s *Store) Clear(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, key)
}

// Len returns the number of non-idle conversations
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
