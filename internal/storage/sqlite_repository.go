package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/drawerd/internal/model"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, priority, date, completed, created_at, notion_page_id
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		var task model.Task
		var completed int
		if err := rows.Scan(&task.ID, &task.Text, &task.Priority, &task.Date, &completed, &task.CreatedAt, &task.NotionPageID); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		task.Completed = completed == 1
		out = append(out, task)
	}
	return out, rows.Err()
}

// SaveTasks replaces the stored collection with the supplied one, preserving
// slice order. The replace runs in a single transaction so a failure leaves
// the previous snapshot intact.
func (r *SQLiteRepository) SaveTasks(ctx context.Context, tasks []model.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for i, task := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, text, priority, date, completed, created_at, notion_page_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			task.ID, task.Text, task.Priority, task.Date, boolInt(task.Completed), task.CreatedAt, task.NotionPageID, i,
		)
		if err != nil {
			return fmt.Errorf("insert task %d: %w", task.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) LoadNotes(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, content, tags, created_at, is_archived, is_pinned, notion_page_id
		FROM notes ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	defer rows.Close()

	out := make([]model.Note, 0)
	for rows.Next() {
		var note model.Note
		var tagsRaw string
		var archived, pinned int
		if err := rows.Scan(&note.ID, &note.Content, &tagsRaw, &note.CreatedAt, &archived, &pinned, &note.NotionPageID); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if err := json.Unmarshal([]byte(tagsRaw), &note.Tags); err != nil {
			return nil, fmt.Errorf("decode tags for note %s: %w", note.ID, err)
		}
		note.IsArchived = archived == 1
		note.IsPinned = pinned == 1
		out = append(out, note)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) SaveNotes(ctx context.Context, notes []model.Note) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save notes: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("clear notes: %w", err)
	}
	for i, note := range notes {
		tagsRaw, err := json.Marshal(note.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for note %s: %w", note.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO notes (id, content, tags, created_at, is_archived, is_pinned, notion_page_id, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			note.ID, note.Content, string(tagsRaw), note.CreatedAt, boolInt(note.IsArchived), boolInt(note.IsPinned), note.NotionPageID, i,
		)
		if err != nil {
			return fmt.Errorf("insert note %s: %w", note.ID, err)
		}
	}
	return tx.Commit()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
