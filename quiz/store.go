// Package quiz implements the quiz-taking and quiz-authoring state
// machines independently of the chat transport.
package quiz

import (
	"context"
	"time"

	"github.com/korjavin/dailyquizbot/models"
)

// AnswerLookup resolves stored answers for scoring
type AnswerLookup interface {
	GetAnswer(ctx context.Context, id int64) (*models.Answer, error)
	CorrectAnswer(ctx context.Context, questionID int64) (*models.Answer, error)
}

// QuizStore persists quizzes, questions and answers
type QuizStore interface {
	AnswerLookup
	CreateQuiz(ctx context.Context, quiz models.Quiz) (int64, error)
	CreateQuizWithQuestions(ctx context.Context, quiz models.Quiz, drafts []models.QuestionDraft) (int64, error)
	AddQuestion(ctx context.Context, quizID int64, draft models.QuestionDraft) (int64, error)
	GetQuiz(ctx context.Context, id int64) (*models.Quiz, error)
	ActiveQuiz(ctx context.Context) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]models.Quiz, error)
	ListQuizzesByStatus(ctx context.Context, active bool) ([]models.Quiz, error)
	SetQuizActive(ctx context.Context, id int64, active bool) error
	DeleteQuiz(ctx context.Context, id int64) error
	QuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error)
	AnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error)
}

// AttemptStore persists participants and their attempts
type AttemptStore interface {
	EnsureUser(ctx context.Context, id int64, username string) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SetUserEmail(ctx context.Context, id int64, email string) error
	CreateAttempt(ctx context.Context, attempt models.UserAttempt) (int64, error)
	LatestAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error)
	LatestWinningAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error)
	FinishAttempt(ctx context.Context, id int64, correctAnswers int, isWinner bool) error
	CreateResponse(ctx context.Context, response models.UserResponse) (int64, error)
}

// Store is everything the state machines read and write
type Store interface {
	QuizStore
	AttemptStore
}

// Clock returns the current time; tests replace it
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}
