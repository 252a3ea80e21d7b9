package progress

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS completed_levels (
	level        INTEGER PRIMARY KEY,
	completed_at INTEGER NOT NULL
)`

// SQLiteStore provides SQLite-backed persistence for level completions.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// Open opens the progress database at path, creating the schema if needed.
func Open(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// MarkCompleted records level as completed. Recording a level twice keeps
// the first completion time.
func (s *SQLiteStore) MarkCompleted(ctx context.Context, level int) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if err := validateLevel(level); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO completed_levels (level, completed_at) VALUES (?, ?)`,
		level, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("mark level %d completed: %w", level, err)
	}
	return nil
}

// Completed returns the completed levels in ascending order.
func (s *SQLiteStore) Completed(ctx context.Context) ([]int, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT level FROM completed_levels ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("list completed levels: %w", err)
	}
	defer rows.Close()

	levels := []int{}
	for rows.Next() {
		var l int
		if err := rows.Scan(&l); err != nil {
			return nil, fmt.Errorf("scan completed level: %w", err)
		}
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate completed levels: %w", err)
	}
	return levels, nil
}

// Clear forgets every completion.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM completed_levels`); err != nil {
		return fmt.Errorf("clear completed levels: %w", err)
	}
	return nil
}
