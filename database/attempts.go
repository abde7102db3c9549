package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/korjavin/dailyquizbot/models"
)

// CreateAttempt records the start of a quiz attempt
func (db *DB) CreateAttempt(ctx context.Context, a models.UserAttempt) (int64, error) {
	return db.insertReturningID(ctx, db.conn,
		"INSERT INTO user_attempts (user_id, quiz_id, attempt_time, correct_answers, is_winner) VALUES (?, ?, ?, ?, ?)",
		a.UserID, a.QuizID, a.Timestamp.Unix(), a.CorrectAnswers, a.IsWinner,
	)
}

// LatestAttempt returns the most recent attempt of a user for a quiz
func (db *DB) LatestAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error) {
	return db.latestAttempt(ctx,
		"SELECT id, user_id, quiz_id, attempt_time, correct_answers, is_winner FROM user_attempts "+
			"WHERE user_id = ? AND quiz_id = ? ORDER BY attempt_time DESC, id DESC LIMIT 1",
		userID, quizID,
	)
}

// LatestWinningAttempt returns the most recent winning attempt of a user for a quiz
func (db *DB) LatestWinningAttempt(ctx context.Context, userID, quizID int64) (*models.UserAttempt, error) {
	return db.latestAttempt(ctx,
		"SELECT id, user_id, quiz_id, attempt_time, correct_answers, is_winner FROM user_attempts "+
			"WHERE user_id = ? AND quiz_id = ? AND is_winner = ? ORDER BY attempt_time DESC, id DESC LIMIT 1",
		userID, quizID, true,
	)
}

func (db *DB) latestAttempt(ctx context.Context, query string, args ...any) (*models.UserAttempt, error) {
	var (
		a  models.UserAttempt
		ts int64
	)
	err := db.conn.QueryRowContext(ctx, db.rebind(query), args...).
		Scan(&a.ID, &a.UserID, &a.QuizID, &ts, &a.CorrectAnswers, &a.IsWinner)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	a.Timestamp = fromUnix(ts)
	return &a, nil
}

// FinishAttempt stores the final score of an attempt
func (db *DB) FinishAttempt(ctx context.Context, id int64, correctAnswers int, isWinner bool) error {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("UPDATE user_attempts SET correct_answers = ?, is_winner = ? WHERE id = ?"),
		correctAnswers, isWinner, id,
	)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// CreateResponse records the answer given to one question
func (db *DB) CreateResponse(ctx context.Context, r models.UserResponse) (int64, error) {
	return db.insertReturningID(ctx, db.conn,
		"INSERT INTO user_responses (attempt_id, question_id, selected_answer_id, answer_text) VALUES (?, ?, ?, ?)",
		r.AttemptID, r.QuestionID, r.SelectedAnswerID, r.AnswerText,
	)
}
