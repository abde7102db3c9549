package database

import (
	"context"

	"github.com/korjavin/dailyquizbot/models"
)

// CountAdmins returns the size of the admin set
func (db *DB) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n)
	return n, err
}

// AdminExists reports whether the normalized username is an admin
func (db *DB) AdminExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := db.conn.QueryRowContext(ctx,
		db.rebind("SELECT EXISTS (SELECT 1 FROM admins WHERE username = ?)"),
		username,
	).Scan(&exists)
	return exists, err
}

// AddAdmin inserts an admin, returning false if it was already present
func (db *DB) AddAdmin(ctx context.Context, username string) (bool, error) {
	res, err := db.conn.ExecContext(ctx,
		db.rebind("INSERT INTO admins (username) VALUES (?) ON CONFLICT (username) DO NOTHING"),
		username,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// RemoveAdmin deletes an admin, returning false if it did not exist
func (db *DB) RemoveAdmin(ctx context.Context, username string) (bool, error) {
	res, err := db.conn.ExecContext(ctx, db.rebind("DELETE FROM admins WHERE username = ?"), username)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListAdmins returns all admins ordered by username
func (db *DB) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	rows, err := db.conn.QueryContext(ctx, "SELECT id, username FROM admins ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Username); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}
