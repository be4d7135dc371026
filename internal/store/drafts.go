package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"time"

	"craft-cli/internal/builder"
	"craft-cli/internal/model"

	_ "modernc.org/sqlite"
)

const draftsFileName = "drafts.sqlite"

// Store is the local draft cache. Autosave pushes to the remote store on a
// debounce, which leaves a window where a crash loses the latest edits; the
// builder also writes each snapshot here so `craft edit` can offer to resume.
type Store struct {
	Dir string
}

func DefaultStore() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

func (s Store) Ensure() error {
	return ensureDir(s.Dir)
}

func (s Store) draftsPath() string {
	return filepath.Join(s.Dir, draftsFileName)
}

// Draft is a builder document snapshot keyed by form id.
type Draft struct {
	FormID      string           `json:"formId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Questions   []model.Question `json:"questions"`
	SelectedID  string           `json:"selectedId,omitempty"`
	SavedAt     time.Time        `json:"savedAt"`
}

func DraftFromDocument(d *builder.Document, at time.Time) Draft {
	return Draft{
		FormID:      d.FormID,
		Title:       d.Title,
		Description: d.Description,
		Questions:   append([]model.Question{}, d.Questions...),
		SelectedID:  d.SelectedID,
		SavedAt:     at.UTC(),
	}
}

func (d Draft) Document() *builder.Document {
	doc := builder.FromForm(d.FormID, d.Title, d.Description, append([]model.Question{}, d.Questions...))
	doc.SelectedID = d.SelectedID
	return doc
}

func (s Store) SaveDraft(ctx context.Context, d Draft) error {
	if d.FormID == "" {
		return errors.New("draft missing form id")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO drafts (form_id, payload, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(form_id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, d.FormID, string(payload), d.SavedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// LoadDraft returns the draft for a form id; ok is false when none exists.
func (s Store) LoadDraft(ctx context.Context, formID string) (Draft, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return Draft{}, false, err
	}
	defer db.Close()

	var payload string
	err = db.QueryRowContext(ctx, `SELECT payload FROM drafts WHERE form_id = ?`, formID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Draft{}, false, nil
	}
	if err != nil {
		return Draft{}, false, err
	}
	var d Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return Draft{}, false, err
	}
	return d, true, nil
}

func (s Store) DeleteDraft(ctx context.Context, formID string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM drafts WHERE form_id = ?`, formID)
	return err
}

// ListDrafts returns all drafts, newest first.
func (s Store) ListDrafts(ctx context.Context) ([]Draft, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT payload FROM drafts ORDER BY saved_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Draft
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var d Draft
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.draftsPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when a CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS drafts (
			form_id  TEXT PRIMARY KEY,
			payload  TEXT NOT NULL,
			saved_at TEXT NOT NULL
		)
	`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
