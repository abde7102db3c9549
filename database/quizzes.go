package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/korjavin/dailyquizbot/models"
)

const quizColumns = "id, title, is_active, start_time, end_time, question_count"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (models.Quiz, error) {
	var (
		q          models.Quiz
		start, end int64
	)
	if err := row.Scan(&q.ID, &q.Title, &q.IsActive, &start, &end, &q.QuestionCount); err != nil {
		return q, err
	}
	q.StartTime = fromUnix(start)
	q.EndTime = fromUnix(end)
	return q, nil
}

// CreateQuiz stores a new quiz and returns its ID
func (db *DB) CreateQuiz(ctx context.Context, quiz models.Quiz) (int64, error) {
	return db.createQuiz(ctx, db.conn, quiz)
}

func (db *DB) createQuiz(ctx context.Context, q queryer, quiz models.Quiz) (int64, error) {
	return db.insertReturningID(ctx, q,
		"INSERT INTO quizzes (title, is_active, start_time, end_time, question_count) VALUES (?, ?, ?, ?, ?)",
		quiz.Title, quiz.IsActive, quiz.StartTime.Unix(), quiz.EndTime.Unix(), quiz.QuestionCount,
	)
}

// GetQuiz retrieves a quiz by ID
func (db *DB) GetQuiz(ctx context.Context, id int64) (*models.Quiz, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind("SELECT "+quizColumns+" FROM quizzes WHERE id = ?"), id)
	q, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ActiveQuiz returns the active quiz with the lowest ID
func (db *DB) ActiveQuiz(ctx context.Context) (*models.Quiz, error) {
	row := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT "+quizColumns+" FROM quizzes WHERE is_active = ? ORDER BY id LIMIT 1"),
		true,
	)
	q, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuizzes returns all quizzes ordered by ID
func (db *DB) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return db.listQuizzes(ctx, "SELECT "+quizColumns+" FROM quizzes ORDER BY id")
}

// ListQuizzesByStatus returns active or inactive quizzes ordered by ID
func (db *DB) ListQuizzesByStatus(ctx context.Context, active bool) ([]models.Quiz, error) {
	return db.listQuizzes(ctx, "SELECT "+quizColumns+" FROM quizzes WHERE is_active = ? ORDER BY id", active)
}

func (db *DB) listQuizzes(ctx context.Context, query string, args ...any) ([]models.Quiz, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// SetQuizActive activates or deactivates a quiz
func (db *DB) SetQuizActive(ctx context.Context, id int64, active bool) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("UPDATE quizzes SET is_active = ? WHERE id = ?"), active, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// AddQuestion stores a question with its answers and bumps the quiz question count
func (db *DB) AddQuestion(ctx context.Context, quizID int64, draft models.QuestionDraft) (int64, error) {
	var questionID int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			db.rebind("UPDATE quizzes SET question_count = question_count + 1 WHERE id = ?"),
			quizID,
		)
		if err != nil {
			return err
		}
		if err := affectedOrNotFound(res); err != nil {
			return err
		}

		questionID, err = db.insertQuestion(ctx, tx, quizID, draft)
		return err
	})
	return questionID, err
}

// CreateQuizWithQuestions stores a complete quiz in one transaction
func (db *DB) CreateQuizWithQuestions(ctx context.Context, quiz models.Quiz, drafts []models.QuestionDraft) (int64, error) {
	var quizID int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		quiz.QuestionCount = len(drafts)
		var err error
		quizID, err = db.createQuiz(ctx, tx, quiz)
		if err != nil {
			return fmt.Errorf("failed to insert quiz: %w", err)
		}

		for i, d := range drafts {
			if _, err := db.insertQuestion(ctx, tx, quizID, d); err != nil {
				return fmt.Errorf("failed to insert question %d: %w", i+1, err)
			}
		}
		return nil
	})
	return quizID, err
}

func (db *DB) insertQuestion(ctx context.Context, q queryer, quizID int64, draft models.QuestionDraft) (int64, error) {
	questionID, err := db.insertReturningID(ctx, q,
		"INSERT INTO questions (quiz_id, text) VALUES (?, ?)",
		quizID, draft.Text,
	)
	if err != nil {
		return 0, err
	}

	for _, a := range draft.Answers {
		if _, err := db.insertReturningID(ctx, q,
			"INSERT INTO answers (question_id, text, is_correct) VALUES (?, ?, ?)",
			questionID, a.Text, a.IsCorrect,
		); err != nil {
			return 0, err
		}
	}
	return questionID, nil
}

// DeleteQuiz removes a quiz together with everything that refers to it.
// Children go first: responses, attempts, answers, questions, then the quiz.
func (db *DB) DeleteQuiz(ctx context.Context, id int64) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		statements := []string{
			"DELETE FROM user_responses WHERE attempt_id IN (SELECT id FROM user_attempts WHERE quiz_id = ?)",
			"DELETE FROM user_attempts WHERE quiz_id = ?",
			"DELETE FROM answers WHERE question_id IN (SELECT id FROM questions WHERE quiz_id = ?)",
			"DELETE FROM questions WHERE quiz_id = ?",
		}
		for _, stmt := range statements {
			if _, err := tx.ExecContext(ctx, db.rebind(stmt), id); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, db.rebind("DELETE FROM quizzes WHERE id = ?"), id)
		if err != nil {
			return err
		}
		return affectedOrNotFound(res)
	})
}

// QuestionsByQuiz returns the questions of a quiz in creation order
func (db *DB) QuestionsByQuiz(ctx context.Context, quizID int64) ([]models.Question, error) {
	rows, err := db.conn.QueryContext(ctx,
		db.rebind("SELECT id, quiz_id, text FROM questions WHERE quiz_id = ? ORDER BY id"),
		quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// AnswersByQuestion returns the answers of a question in creation order
func (db *DB) AnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	rows, err := db.conn.QueryContext(ctx,
		db.rebind("SELECT id, question_id, text, is_correct FROM answers WHERE question_id = ? ORDER BY id"),
		questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

// GetAnswer retrieves an answer by ID
func (db *DB) GetAnswer(ctx context.Context, id int64) (*models.Answer, error) {
	return db.getAnswer(ctx, "SELECT id, question_id, text, is_correct FROM answers WHERE id = ?", id)
}

// CorrectAnswer returns the first correct answer of a question
func (db *DB) CorrectAnswer(ctx context.Context, questionID int64) (*models.Answer, error) {
	return db.getAnswer(ctx,
		"SELECT id, question_id, text, is_correct FROM answers WHERE question_id = ? AND is_correct = ? ORDER BY id LIMIT 1",
		questionID, true,
	)
}

func (db *DB) getAnswer(ctx context.Context, query string, args ...any) (*models.Answer, error) {
	var a models.Answer
	err := db.conn.QueryRowContext(ctx, db.rebind(query), args...).Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
