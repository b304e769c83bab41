// Package storage records flushed frames of a game session into SQLite and
// reads them back for replay.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSessionNotFound is returned when no recording matches an ID.
var ErrSessionNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for recordings.
type Store struct {
	db *sql.DB
}

// Session describes one recorded game.
type Session struct {
	ID        string
	Label     string
	Width     int
	Height    int
	Gamma     float64
	StartedAt time.Time
	Frames    int
	Duration  time.Duration
}

// Frame is one flushed grid, row-major, at a time offset from the first
// frame of its session.
type Frame struct {
	Seq    int
	AtUS   int64
	Pixels []byte
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL DEFAULT '',
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			gamma REAL NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS frames (
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			at_us INTEGER NOT NULL,
			pixels BLOB NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateSession registers a new recording and returns its ID.
func (s *Store) CreateSession(label string, width, height int, gamma float64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, label, width, height, gamma) VALUES (?, ?, ?, ?, ?)",
		id, label, width, height, gamma,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create session: %w", err)
	}
	return id, nil
}

// AppendFrames stores a batch of frames in one transaction.
func (s *Store) AppendFrames(sessionID string, frames []Frame) error {
	if len(frames) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare("INSERT INTO frames (session_id, seq, at_us, pixels) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range frames {
		if _, err := stmt.Exec(sessionID, f.Seq, f.AtUS, f.Pixels); err != nil {
			return fmt.Errorf("storage: cannot save frame %d: %w", f.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit frames: %w", err)
	}
	return nil
}

const sessionColumns = `
	s.id, s.label, s.width, s.height, s.gamma, s.started_at,
	COUNT(f.seq), COALESCE(MAX(f.at_us), 0)`

// Sessions lists recordings, newest first.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT`+sessionColumns+`
		 FROM sessions s LEFT JOIN frames f ON f.session_id = s.id
		 GROUP BY s.id
		 ORDER BY s.started_at DESC, s.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// FindSession returns the recording whose ID equals or starts with idPrefix.
// An ambiguous prefix is an error.
func (s *Store) FindSession(idPrefix string) (Session, error) {
	if idPrefix == "" {
		return Session{}, ErrSessionNotFound
	}

	rows, err := s.db.Query(
		`SELECT`+sessionColumns+`
		 FROM sessions s LEFT JOIN frames f ON f.session_id = s.id
		 WHERE substr(s.id, 1, length(?)) = ?
		 GROUP BY s.id
		 LIMIT 2`,
		idPrefix, idPrefix,
	)
	if err != nil {
		return Session{}, fmt.Errorf("storage: cannot query session: %w", err)
	}
	defer rows.Close()

	var found []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return Session{}, err
		}
		found = append(found, sess)
	}
	if err := rows.Err(); err != nil {
		return Session{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, idPrefix)
	case 1:
		return found[0], nil
	default:
		return Session{}, fmt.Errorf("storage: ambiguous session prefix %q", idPrefix)
	}
}

// Frames returns every frame of a session in order.
func (s *Store) Frames(sessionID string) ([]Frame, error) {
	rows, err := s.db.Query(
		`SELECT seq, at_us, pixels FROM frames WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		if err := rows.Scan(&f.Seq, &f.AtUS, &f.Pixels); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return frames, nil
}

// DeleteSession removes a recording and its frames.
func (s *Store) DeleteSession(sessionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.Exec("DELETE FROM frames WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var sess Session
	var startedAt any
	var lastUS int64
	if err := row.Scan(
		&sess.ID,
		&sess.Label,
		&sess.Width,
		&sess.Height,
		&sess.Gamma,
		&startedAt,
		&sess.Frames,
		&lastUS,
	); err != nil {
		return Session{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := startedAt.(type) {
	case time.Time:
		sess.StartedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			sess.StartedAt = parsed
		}
	}
	sess.Duration = time.Duration(lastUS) * time.Microsecond
	return sess, nil
}
