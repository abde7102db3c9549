package models

import "time"

// Admin is a Telegram username allowed to manage quizzes.
// Username is stored normalized: lowercase, without the leading "@".
type Admin struct {
	ID       int64
	Username string
}

// User is a quiz participant, keyed by Telegram user ID
type User struct {
	ID       int64
	Username string
	Email    string
}

// Quiz is a set of questions that can be activated for users
type Quiz struct {
	ID            int64
	Title         string
	IsActive      bool
	StartTime     time.Time
	EndTime       time.Time
	QuestionCount int
}

// Question belongs to exactly one quiz
type Question struct {
	ID     int64
	QuizID int64
	Text   string
}

// Answer is one option of a question. Free-text questions carry a single
// correct answer holding the expected text.
type Answer struct {
	ID         int64
	QuestionID int64
	Text       string
	IsCorrect  bool
}

// UserAttempt is a single pass of a user through a quiz
type UserAttempt struct {
	ID             int64
	UserID         int64
	QuizID         int64
	Timestamp      time.Time
	CorrectAnswers int
	IsWinner       bool
}

// UserResponse records what a user answered to a question during an attempt.
// SelectedAnswerID is zero for free-text answers.
type UserResponse struct {
	ID               int64
	AttemptID        int64
	QuestionID       int64
	SelectedAnswerID int64
	AnswerText       string
}

// QuestionDraft is a question with its answers before it is stored
type QuestionDraft struct {
	Text    string
	Answers []Answer
}
