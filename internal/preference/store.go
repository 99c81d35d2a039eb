// Package preference persists the per-port enable flag of live reload.
package preference

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DefaultPort names pages served without an explicit port.
const DefaultPort = "default"

// Preference is one stored flag.
type Preference struct {
	Port      string
	Enabled   bool
	UpdatedAt time.Time
}

// Store keeps enable flags in a SQLite database.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewStore opens (creating if needed) the database at dbPath.
func NewStore(dbPath string, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "PreferenceStore").Logger()
	logger.Debug().Str("db_path", dbPath).Msg("Opening preference database")

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create preference database directory %s: %w", dir, err)
		}
	}

	dsn := dbPath
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dbPath, err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS preferences (
		port TEXT PRIMARY KEY,
		enabled INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	return nil
}

// Enabled returns the flag for port. Ports never written are disabled.
func (s *Store) Enabled(ctx context.Context, port string) (bool, error) {
	var enabled bool
	err := s.db.QueryRowContext(ctx, `SELECT enabled FROM preferences WHERE port = ?`, port).Scan(&enabled)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read preference for port %s: %w", port, err)
	}
	return enabled, nil
}

// SetEnabled stores the flag for port.
func (s *Store) SetEnabled(ctx context.Context, port string, enabled bool) error {
	return setEnabled(ctx, s.db, port, enabled)
}

// Toggle flips the flag for port and returns the new value.
func (s *Store) Toggle(ctx context.Context, port string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current bool
	err = tx.QueryRowContext(ctx, `SELECT enabled FROM preferences WHERE port = ?`, port).Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to read preference for port %s: %w", port, err)
	}

	if err := setEnabled(ctx, tx, port, !current); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit toggle for port %s: %w", port, err)
	}
	return !current, nil
}

// List returns every stored flag ordered by port.
func (s *Store) List(ctx context.Context) ([]Preference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT port, enabled, updated_at FROM preferences ORDER BY port`)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []Preference
	for rows.Next() {
		var p Preference
		if err := rows.Scan(&p.Port, &p.Enabled, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setEnabled(ctx context.Context, db execer, port string, enabled bool) error {
	query := `
	INSERT INTO preferences (port, enabled, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(port) DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, port, enabled, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store preference for port %s: %w", port, err)
	}
	return nil
}

// PortOf returns the port of pageURL, or DefaultPort when none is given.
func PortOf(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Port() == "" {
		return DefaultPort
	}
	return u.Port()
}
