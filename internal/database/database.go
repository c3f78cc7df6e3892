package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"whalink/internal/models"
	"whalink/internal/security"

	_ "github.com/mattn/go-sqlite3"
)

// authSlot is the fixed key the authenticated user record lives under.
// It is the only durable piece of state in the system; everything else
// resets with the process.
const authSlot = "wa_auth"

const schema = `
CREATE TABLE IF NOT EXISTS auth_state (
    slot TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Database is the durable store for the authenticated user record.
// The record is written atomically as a whole; there are no partial
// updates and no migrations beyond the initial schema.
type Database struct {
	db *sql.DB
}

func New(dbPath string) (*Database, error) {
	if err := security.ValidateFilePath(dbPath); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveUser replaces the stored user record wholesale.
func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user record: %w", err)
	}

	query := `
		INSERT INTO auth_state (slot, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := d.db.ExecContext(ctx, query, authSlot, string(payload)); err != nil {
		return fmt.Errorf("failed to save user record: %w", err)
	}

	return nil
}

// GetUser returns the stored user record, or nil if no user is logged in.
func (d *Database) GetUser(ctx context.Context) (*models.User, error) {
	var payload string
	query := `SELECT payload FROM auth_state WHERE slot = ?`

	err := d.db.QueryRowContext(ctx, query, authSlot).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(payload), &user); err != nil {
		return nil, fmt.Errorf("failed to decode user record: %w", err)
	}

	return &user, nil
}

// ClearUser removes the stored user record. Clearing an empty slot is
// a no-op.
func (d *Database) ClearUser(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM auth_state WHERE slot = ?`, authSlot); err != nil {
		return fmt.Errorf("failed to clear user record: %w", err)
	}
	return nil
}
