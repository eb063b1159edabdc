// Package auth keeps the users table: registration and login checks.
package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/yournote/internal/model"
)

// ErrMissingField is returned when a required registration field is blank.
var ErrMissingField = errors.New("username, password and email are required")

// Manager registers users and validates logins against a SQLite handle.
type Manager struct {
	db *sql.DB
}

// NewManager creates the users table on db if needed.
func NewManager(db *sql.DB) (*Manager, error) {
	m := &Manager{db: db}
	if err := m.migrate(); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	return m, nil
}

func (m *Manager) migrate() error {
	_, err := m.db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		username TEXT PRIMARY KEY,
		password TEXT NOT NULL,
		email    TEXT
	);`)
	return err
}

// HashPassword returns the hex SHA-256 digest stored in the password column.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register adds a user. It reports false when the username is taken.
func (m *Manager) Register(ctx context.Context, username, password, email string) (bool, error) {
	if strings.TrimSpace(username) == "" || password == "" || strings.TrimSpace(email) == "" {
		return false, ErrMissingField
	}

	res, err := m.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (username, password, email) VALUES (?, ?, ?)`,
		username, HashPassword(password), email,
	)
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ValidateLogin reports whether password matches the stored hash for
// username. Unknown users are not an error.
func (m *Manager) ValidateLogin(ctx context.Context, username, password string) (bool, error) {
	u, err := m.GetUser(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.PasswordHash == HashPassword(password), nil
}

// GetUser loads a user row. A missing user yields sql.ErrNoRows.
func (m *Manager) GetUser(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	var email sql.NullString
	err := m.db.QueryRowContext(ctx,
		`SELECT username, password, email FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.PasswordHash, &email)
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	return &u, nil
}
