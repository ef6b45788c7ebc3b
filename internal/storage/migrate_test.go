package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/sandeepkv93/goodbuddi/internal/model"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if err := repo.SaveDayPlan(t.Context(), model.DayPlan{
		DateKey:    "2026-02-09",
		Scratchpad: "• Roundtrip",
		Events:     []model.Event{{ID: "ev-rt-1", Title: "Roundtrip"}},
		UpdatedAt:  now,
	}); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}

	got, err := repo.GetDayPlan(t.Context(), "2026-02-09")
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if len(got.Events) != 1 || got.Events[0].Title != "Roundtrip" {
		t.Fatalf("unexpected plan after roundtrip: %#v", got)
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "open.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()

	book, err := repo.GetPhraseBook(t.Context())
	if err != nil {
		t.Fatalf("get phrases on fresh db: %v", err)
	}
	if len(book.Phrases) != len(model.DefaultPhrases) || book.Pinned != -1 {
		t.Fatalf("expected default phrases, got %+v", book)
	}
}
