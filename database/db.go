package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported database/sql driver names
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// DB handles all database operations
type DB struct {
	conn   *sql.DB
	driver string
}

// queryer is implemented by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open creates a new database connection and initializes tables
func Open(driver, dsn string) (*DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == DriverSQLite && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer; an in-memory database also lives
	// only as long as its one connection.
	if driver == DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, driver: driver}
	if err = db.createTables(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// createTables creates the necessary tables if they don't exist
func (db *DB) createTables(ctx context.Context) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.driver == DriverPostgres {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			id ` + serial + `,
			username TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY,
			username TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id ` + serial + `,
			title TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			start_time BIGINT NOT NULL,
			end_time BIGINT NOT NULL,
			question_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id ` + serial + `,
			quiz_id BIGINT NOT NULL REFERENCES quizzes(id),
			text TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			id ` + serial + `,
			question_id BIGINT NOT NULL REFERENCES questions(id),
			text TEXT NOT NULL,
			is_correct BOOLEAN NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_attempts (
			id ` + serial + `,
			user_id BIGINT NOT NULL REFERENCES users(id),
			quiz_id BIGINT NOT NULL REFERENCES quizzes(id),
			attempt_time BIGINT NOT NULL,
			correct_answers INTEGER NOT NULL DEFAULT 0,
			is_winner BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS user_responses (
			id ` + serial + `,
			attempt_id BIGINT NOT NULL REFERENCES user_attempts(id),
			question_id BIGINT NOT NULL REFERENCES questions(id),
			selected_answer_id BIGINT NOT NULL DEFAULT 0,
			answer_text TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_quiz ON user_attempts(user_id, quiz_id, attempt_time)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_quiz ON questions(quiz_id)`,
		`CREATE INDEX IF NOT EXISTS idx_answers_question ON answers(question_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// rebind rewrites "?" placeholders into the "$n" form postgres expects
func (db *DB) rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// withTx runs fn inside a transaction, rolling back on error
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// insertReturningID executes an INSERT ... RETURNING id statement
func (db *DB) insertReturningID(ctx context.Context, q queryer, query string, args ...any) (int64, error) {
	var id int64
	if err := q.QueryRowContext(ctx, db.rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func fromUnix(ts int64) time.Time {
	return time.Unix(ts, 0).UTC()
}

// affectedOrNotFound converts a zero-row update into ErrNotFound
func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
