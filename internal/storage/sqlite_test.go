package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hammamikhairi/cookclip/internal/domain"
	"github.com/hammamikhairi/cookclip/internal/logger"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:", logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteRoundTrip(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	amount := 2.0
	unit := "cups"
	rec := savedRecipe("alice", "https://youtu.be/abc12345678", "Bread")
	rec.Recipe.Ingredients = []domain.Ingredient{
		{Name: "flour", Amount: &amount, Unit: &unit, Source: domain.IngredientExplicit},
	}
	rec.Transcript = &domain.Transcript{
		VideoID: "abc12345678",
		Text:    "mix two cups of flour",
		Source:  domain.SourceCaptions,
	}

	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Recipe.Title != "Bread" || got.Owner != "alice" {
		t.Errorf("recipe = %+v", got)
	}
	if len(got.Recipe.Ingredients) != 1 || *got.Recipe.Ingredients[0].Amount != 2 {
		t.Errorf("ingredients = %+v", got.Recipe.Ingredients)
	}
	if got.Transcript == nil || got.Transcript.Source != domain.SourceCaptions {
		t.Errorf("transcript = %+v", got.Transcript)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at lost in round trip")
	}
}

func TestSQLiteNilTranscript(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	rec := savedRecipe("alice", "u1", "No Transcript")
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Transcript != nil {
		t.Errorf("transcript = %+v, want nil", got.Transcript)
	}
}

func TestSQLiteSaveIsUpsert(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	rec := savedRecipe("alice", "u1", "First Title")
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}
	rec.Recipe.Title = "Second Title"
	if err := store.Save(ctx, rec); err != nil {
		t.Fatal(err)
	}

	all, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d recipes after upsert, want 1", len(all))
	}
	if all[0].Recipe.Title != "Second Title" {
		t.Errorf("title = %q", all[0].Recipe.Title)
	}
}

func TestSQLiteNotFound(t *testing.T) {
	store := newTestSQLite(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get: %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete: %v, want ErrNotFound", err)
	}
	if _, err := store.FindByURL(ctx, "alice", "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("FindByURL: %v, want ErrNotFound", err)
	}
}
