package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/abacus/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driven"
)

// defaultFile is the database file name inside the abacus home directory.
const defaultFile = "sessions.db"

// Store is a SQLite-based session store.
type Store struct {
	db    *sql.DB
	path  string
	limit int
}

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// NewStore opens or creates the database at path.
// If path is empty, defaults to ~/.abacus/sessions.db.
// limit caps the number of stored sessions; zero means unlimited.
func NewStore(path string, limit int) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".abacus", defaultFile)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:    db,
		path:  path,
		limit: limit,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_sessions.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Save stores or updates a session.
// Adding a session beyond the limit fails with domain.ErrInvalidInput.
func (s *Store) Save(ctx context.Context, session domain.SessionState) error {
	if s.limit > 0 {
		full, err := s.full(ctx, session.ID)
		if err != nil {
			return err
		}
		if full {
			return domain.ErrInvalidInput
		}
	}

	kind, text := encodeError(session.Err)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, buffer, error_kind, error_text, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			buffer = excluded.buffer,
			error_kind = excluded.error_kind,
			error_text = excluded.error_text,
			updated_at = excluded.updated_at
	`, session.ID, session.Buffer, kind, text, session.CreatedAt.UTC(), session.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// full reports whether adding a new session with id would exceed the limit.
func (s *Store) full(ctx context.Context, id string) (bool, error) {
	var exists, count int
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM sessions WHERE id = ?),
			(SELECT COUNT(*) FROM sessions)
	`, id)
	if err := row.Scan(&exists, &count); err != nil {
		return false, fmt.Errorf("counting sessions: %w", err)
	}
	return exists == 0 && count >= s.limit, nil
}

// Get retrieves a session by ID.
func (s *Store) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, buffer, error_kind, error_text, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return session, nil
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// List returns all stored sessions, oldest first.
func (s *Store) List(ctx context.Context) ([]domain.SessionState, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, buffer, error_kind, error_text, created_at, updated_at
		FROM sessions ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.SessionState //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.SessionState, error) {
	var session domain.SessionState
	var kind int
	var text string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&session.ID, &session.Buffer, &kind, &text, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	session.Err = decodeError(kind, text)
	if createdAt.Valid {
		session.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		session.UpdatedAt = updatedAt.Time
	}
	return &session, nil
}

func encodeError(err *domain.EvalError) (int, string) {
	if err == nil {
		return int(domain.KindNone), ""
	}
	return int(err.Kind), err.Text
}

func decodeError(kind int, text string) *domain.EvalError {
	if domain.ErrorKind(kind) == domain.KindNone {
		return nil
	}
	return &domain.EvalError{Kind: domain.ErrorKind(kind), Text: text}
}
