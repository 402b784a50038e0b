package i18n_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/gurukulhq/gurukul/internal/i18n"
	"github.com/gurukulhq/gurukul/pkg/testsupport"
)

func sampleLocales() []*i18n.Locale {
	hindi := "हिन्दी"
	return []*i18n.Locale{
		{ID: uuid.New(), Code: "en", Display: "English", IsActive: true, IsDefault: true},
		{ID: uuid.New(), Code: "hi", Display: "Hindi", NativeName: &hindi, IsActive: true},
	}
}

func TestMemoryLocaleRepositorySeedIsIdempotent(t *testing.T) {
	repo := i18n.NewMemoryLocaleRepository()
	ctx := context.Background()

	if err := repo.Seed(ctx, sampleLocales()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	replacement := []*i18n.Locale{{ID: uuid.New(), Code: "EN", Display: "Replaced"}}
	if err := repo.Seed(ctx, replacement); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	got, err := repo.GetByCode(ctx, "EN")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if got.Display != "English" {
		t.Fatalf("expected existing row preserved, got %q", got.Display)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 locales, got %d", len(all))
	}
}

func TestMemoryLocaleRepositoryNotFound(t *testing.T) {
	repo := i18n.NewMemoryLocaleRepository()

	_, err := repo.GetByCode(context.Background(), "sa")
	var notFound *i18n.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestBunLocaleRepositorySeedAndLookup(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	ddl := `CREATE TABLE IF NOT EXISTS locales (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		native_name TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		is_default BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		deleted_at TIMESTAMP
	)`
	if _, err := sqlDB.ExecContext(ctx, ddl); err != nil {
		t.Fatalf("create table: %v", err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	repo := i18n.NewBunLocaleRepository(db)

	if err := repo.Seed(ctx, sampleLocales()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.Seed(ctx, sampleLocales()); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	got, err := repo.GetByCode(ctx, "hi")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if got.NativeName == nil || *got.NativeName != "हिन्दी" {
		t.Fatalf("native name = %v", got.NativeName)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 locales after reseed, got %d", len(all))
	}
}
