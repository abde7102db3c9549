package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/korjavin/dailyquizbot/models"
)

// EnsureUser creates the user record if it does not exist yet
func (db *DB) EnsureUser(ctx context.Context, id int64, username string) error {
	_, err := db.conn.ExecContext(ctx,
		db.rebind("INSERT INTO users (id, username) VALUES (?, ?) ON CONFLICT (id) DO NOTHING"),
		id, username,
	)
	return err
}

// GetUser retrieves a user by Telegram ID
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT id, username, email FROM users WHERE id = ?"),
		id,
	).Scan(&u.ID, &u.Username, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUserEmail stores the prize email of a user
func (db *DB) SetUserEmail(ctx context.Context, id int64, email string) error {
	res, err := db.conn.ExecContext(ctx, db.rebind("UPDATE users SET email = ? WHERE id = ?"), email, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
