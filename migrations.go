package gurukul

import (
	"context"
	"database/sql"
	"embed"

	"github.com/gurukulhq/gurukul/internal/migrations"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for this package.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// ApplyMigrations runs the embedded schema migrations against sqlDB.
func ApplyMigrations(ctx context.Context, sqlDB *sql.DB) error {
	return migrations.Apply(ctx, sqlDB, migrationsFS, "data/sql/migrations")
}
