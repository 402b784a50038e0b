package migrations

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/gurukulhq/gurukul/pkg/testsupport"
)

func TestApplyRunsFilesOnceInOrder(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	fsys := fstest.MapFS{
		"sql/0002_seed.sql":   {Data: []byte("INSERT INTO widgets (name) VALUES ('one');")},
		"sql/0001_tables.sql": {Data: []byte("CREATE TABLE widgets (name TEXT NOT NULL);")},
	}

	ctx := context.Background()
	if err := Apply(ctx, sqlDB, fsys, "sql"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// second run is a no-op
	if err := Apply(ctx, sqlDB, fsys, "sql"); err != nil {
		t.Fatalf("re-apply: %v", err)
	}

	var count int
	if err := sqlDB.QueryRow("SELECT COUNT(1) FROM widgets").Scan(&count); err != nil {
		t.Fatalf("count widgets: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row got %d", count)
	}

	var applied int
	if err := sqlDB.QueryRow("SELECT COUNT(1) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied migrations got %d", applied)
	}
}

func TestApplyFailsOnBadSQL(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqlDB.Close()

	fsys := fstest.MapFS{
		"sql/0001_bad.sql": {Data: []byte("CREATE NONSENSE;")},
	}
	if err := Apply(context.Background(), sqlDB, fsys, "sql"); err == nil {
		t.Fatal("expected error for invalid SQL")
	}
}
