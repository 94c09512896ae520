package todo

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	priority TEXT NOT NULL DEFAULT 'medium',
	tags TEXT,
	file_path TEXT DEFAULT '',
	line INTEGER DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_todos_status ON todos(status);
CREATE INDEX IF NOT EXISTS idx_todos_priority ON todos(priority);
CREATE INDEX IF NOT EXISTS idx_todos_file ON todos(file_path);

CREATE VIRTUAL TABLE IF NOT EXISTS todos_fts USING fts5(id UNINDEXED, content, tags);
`

// Store is the local todo database backed by SQLite. All access goes
// through it; the MCP servers and the CLI share the same file.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Add(content string, priority Priority, tags []string, filePath string, line int) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content == "" {
		return nil, fmt.Errorf("content is required")
	}
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("invalid priority: %s", priority)
	}
	if tags == nil {
		tags = []string{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &Todo{
		ID:        uuid.NewString(),
		Content:   content,
		Priority:  priority,
		Tags:      tags,
		FilePath:  filePath,
		Line:      line,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO todos (id, content, priority, tags, file_path, line, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Content, string(t.Priority), string(tagsJSON), t.FilePath, t.Line, string(t.Status), now, now,
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	_, err = tx.Exec(
		"INSERT INTO todos_fts (id, content, tags) VALUES (?, ?, ?)",
		t.ID, t.Content, strings.Join(tags, " "),
	)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Store) Get(id string) (*Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, content, priority, tags, file_path, line, status, created_at, updated_at, completed_at
		 FROM todos WHERE id = ?`, id)

	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("todo not found: %s", id)
	}
	return t, err
}

func (s *Store) GetAll(filter Filter) ([]*Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, content, priority, tags, file_path, line, status, created_at, updated_at, completed_at
		FROM todos WHERE 1=1`
	var args []interface{}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	if filter.Priority != "" {
		query += " AND priority = ?"
		args = append(args, string(filter.Priority))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]*Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		if filter.Tag != "" && !hasTag(t.Tags, filter.Tag) {
			continue
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (s *Store) Update(id string, fields Fields) (*Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.updateLocked(id, fields)
}

func (s *Store) updateLocked(id string, fields Fields) (*Todo, error) {
	var sets []string
	var args []interface{}

	if fields.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *fields.Content)
	}
	if fields.Priority != nil {
		if !fields.Priority.Valid() {
			return nil, fmt.Errorf("invalid priority: %s", *fields.Priority)
		}
		sets = append(sets, "priority = ?")
		args = append(args, string(*fields.Priority))
	}
	if fields.Tags != nil {
		tagsJSON, err := json.Marshal(*fields.Tags)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "tags = ?")
		args = append(args, string(tagsJSON))
	}
	if fields.FilePath != nil {
		sets = append(sets, "file_path = ?")
		args = append(args, *fields.FilePath)
	}
	if fields.Line != nil {
		sets = append(sets, "line = ?")
		args = append(args, *fields.Line)
	}
	if fields.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*fields.Status))
		if *fields.Status == StatusDone {
			sets = append(sets, "completed_at = ?")
			args = append(args, time.Now().UTC())
		}
	}

	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id)

	result, err := s.db.Exec("UPDATE todos SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("todo not found: %s", id)
	}

	row := s.db.QueryRow(
		`SELECT id, content, priority, tags, file_path, line, status, created_at, updated_at, completed_at
		 FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		return nil, err
	}

	if fields.Content != nil || fields.Tags != nil {
		_, _ = s.db.Exec("DELETE FROM todos_fts WHERE id = ?", id)
		_, _ = s.db.Exec("INSERT INTO todos_fts (id, content, tags) VALUES (?, ?, ?)",
			t.ID, t.Content, strings.Join(t.Tags, " "))
	}

	return t, nil
}

func (s *Store) Complete(id string) (*Todo, error) {
	done := StatusDone
	return s.Update(id, Fields{Status: &done})
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("todo not found: %s", id)
	}

	_, _ = s.db.Exec("DELETE FROM todos_fts WHERE id = ?", id)
	return nil
}

// Search runs an FTS5 match and falls back to LIKE when the query trips
// FTS syntax (unbalanced quotes, leading operators and the like).
func (s *Store) Search(query string) ([]*Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT t.id, t.content, t.priority, t.tags, t.file_path, t.line, t.status, t.created_at, t.updated_at, t.completed_at
		 FROM todos t JOIN todos_fts f ON t.id = f.id
		 WHERE todos_fts MATCH ? ORDER BY rank`, query)
	if err != nil {
		like := "%" + query + "%"
		rows, err = s.db.Query(
			`SELECT id, content, priority, tags, file_path, line, status, created_at, updated_at, completed_at
			 FROM todos WHERE content LIKE ? OR tags LIKE ? ORDER BY created_at DESC`, like, like)
		if err != nil {
			return nil, err
		}
	}
	defer rows.Close()

	todos := make([]*Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}

	return todos, rows.Err()
}

func (s *Store) Stats() (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &Stats{ByPriority: map[string]int{}}

	rows, err := s.db.Query("SELECT status, priority, COUNT(*) FROM todos GROUP BY status, priority")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status, priority string
		var count int
		if err := rows.Scan(&status, &priority, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		if status == string(StatusDone) {
			stats.Done += count
		} else {
			stats.Pending += count
		}
		stats.ByPriority[priority] += count
	}

	return stats, rows.Err()
}

// FindAtLocation returns the pending todo matching (file, line, content),
// used by the scanner to avoid re-importing items it already created.
func (s *Store) FindAtLocation(filePath string, line int, content string) (*Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, content, priority, tags, file_path, line, status, created_at, updated_at, completed_at
		 FROM todos WHERE file_path = ? AND line = ? AND content = ?`,
		filePath, line, content)

	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return t, err
}

// DeleteByFile removes scanned todos for a file, keeping completed ones
// as history. The watcher calls this before re-importing a changed file.
func (s *Store) DeleteByFile(filePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT id FROM todos WHERE file_path = ? AND status = ?",
		filePath, string(StatusPending))
	if err != nil {
		return err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		if _, err := s.db.Exec("DELETE FROM todos WHERE id = ?", id); err != nil {
			return err
		}
		_, _ = s.db.Exec("DELETE FROM todos_fts WHERE id = ?", id)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTodo(row rowScanner) (*Todo, error) {
	t := &Todo{}
	var tagsJSON sql.NullString
	var completedAt sql.NullTime
	var priority, status string

	err := row.Scan(&t.ID, &t.Content, &priority, &tagsJSON, &t.FilePath, &t.Line,
		&status, &t.CreatedAt, &t.UpdatedAt, &completedAt)
	if err != nil {
		return nil, err
	}

	t.Priority = Priority(priority)
	t.Status = Status(status)

	t.Tags = []string{}
	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &t.Tags); err != nil {
			t.Tags = []string{}
		}
	}

	if completedAt.Valid {
		ts := completedAt.Time
		t.CompletedAt = &ts
	}

	return t, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
