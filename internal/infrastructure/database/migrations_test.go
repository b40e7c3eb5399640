package database

import (
	"context"
	"testing"
)

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		name        string
		wantVersion string
		wantUp      bool
		wantOK      bool
	}{
		{"20260501_120000_create_users.up.sql", "20260501_120000", true, true},
		{"20260501_120000_create_users.down.sql", "20260501_120000", false, true},
		{"20260601_080000_add_index.up.sql", "20260601_080000", true, true},
		{"README.md", "", false, false},
		{"create_users.sql", "", false, false},
		{"20260501.up.sql", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, isUp, ok := parseMigrationFilename(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if version != tt.wantVersion {
				t.Errorf("version = %q, want %q", version, tt.wantVersion)
			}
			if isUp != tt.wantUp {
				t.Errorf("isUp = %v, want %v", isUp, tt.wantUp)
			}
		})
	}
}

func TestExtractMigrationName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"20260501_120000_create_users.up.sql", "create_users"},
		{"20260501_120000_create_users.down.sql", "create_users"},
		{"odd.sql", "odd"},
	}

	for _, tt := range tests {
		if got := extractMigrationName(tt.filename); got != tt.want {
			t.Errorf("extractMigrationName(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestMigrationsTableLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.createMigrationsTable(ctx); err != nil {
		t.Fatalf("createMigrationsTable() error = %v", err)
	}

	applied, err := db.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("getAppliedMigrations() error = %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("applied = %d migrations on fresh database, want 0", len(applied))
	}

	m := Migration{
		Version: "20260501_120000",
		Name:    "create_things",
		UpSQL:   "CREATE TABLE things (id TEXT PRIMARY KEY)",
	}
	if err := db.applyMigration(ctx, m); err != nil {
		t.Fatalf("applyMigration() error = %v", err)
	}

	applied, err = db.getAppliedMigrations(ctx)
	if err != nil {
		t.Fatalf("getAppliedMigrations() error = %v", err)
	}
	if len(applied) != 1 || applied[0].Version != "20260501_120000" {
		t.Errorf("applied = %+v, want the single recorded migration", applied)
	}

	// The migrated table is usable
	if _, err := db.ExecContext(ctx, "INSERT INTO things (id) VALUES ('x')"); err != nil {
		t.Errorf("inserting into migrated table: %v", err)
	}
}
