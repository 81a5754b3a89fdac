package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*SQLiteStore)(nil)

// SQLiteStore persists recipes in a single sqlite table. The recipe and
// transcript are stored as JSON blobs; queryable provenance (owner,
// source URL) gets its own columns.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id          TEXT PRIMARY KEY,
	owner       TEXT NOT NULL,
	source_url  TEXT NOT NULL,
	platform    TEXT NOT NULL,
	recipe      TEXT NOT NULL,
	transcript  TEXT,
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recipes_owner ON recipes(owner);
CREATE INDEX IF NOT EXISTS idx_recipes_owner_url ON recipes(owner, source_url);
`

// NewSQLiteStore opens (and if needed initializes) a sqlite recipe store
// at path. Use ":memory:" for an ephemeral store.
func NewSQLiteStore(path string, log *logger.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Save persists a recipe, assigning an id and timestamp when absent.
func (s *SQLiteStore) Save(ctx context.Context, rec *domain.SavedRecipe) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	recipeJSON, err := json.Marshal(rec.Recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	var transcriptJSON []byte
	if rec.Transcript != nil {
		if transcriptJSON, err = json.Marshal(rec.Transcript); err != nil {
			return fmt.Errorf("marshal transcript: %w", err)
		}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO recipes (id, owner, source_url, platform, recipe, transcript, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Owner, rec.SourceURL, rec.SourcePlatform,
		string(recipeJSON), nullable(transcriptJSON), rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert recipe %s: %w", rec.ID, err)
	}
	s.log.Debug("saved recipe %s (owner=%s, url=%s)", rec.ID, rec.Owner, rec.SourceURL)
	return nil
}

// List returns an owner's recipes, newest first.
func (s *SQLiteStore) List(ctx context.Context, owner string) ([]*domain.SavedRecipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, source_url, platform, recipe, transcript, created_at
		FROM recipes WHERE owner = ? ORDER BY created_at DESC`, owner)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*domain.SavedRecipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns a recipe by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.SavedRecipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, source_url, platform, recipe, transcript, created_at
		FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

// Delete removes a recipe by id.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByURL returns an owner's recipe for a source URL, if any.
func (s *SQLiteStore) FindByURL(ctx context.Context, owner, url string) (*domain.SavedRecipe, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner, source_url, platform, recipe, transcript, created_at
		FROM recipes WHERE owner = ? AND source_url = ? ORDER BY created_at DESC LIMIT 1`,
		owner, url)
	rec, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*domain.SavedRecipe, error) {
	var (
		rec            domain.SavedRecipe
		recipeJSON     string
		transcriptJSON sql.NullString
		createdAt      string
	)
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.SourceURL, &rec.SourcePlatform,
		&recipeJSON, &transcriptJSON, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recipeJSON), &rec.Recipe); err != nil {
		return nil, fmt.Errorf("decode recipe %s: %w", rec.ID, err)
	}
	if transcriptJSON.Valid && transcriptJSON.String != "" {
		var t domain.Transcript
		if err := json.Unmarshal([]byte(transcriptJSON.String), &t); err != nil {
			return nil, fmt.Errorf("decode transcript for %s: %w", rec.ID, err)
		}
		rec.Transcript = &t
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
