package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	env "github.com/caarlos0/env/v11"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/gurukulhq/gurukul"
	"github.com/gurukulhq/gurukul/internal/blog"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/schema"
)

type serverEnv struct {
	Addr         string `env:"GURUKUL_ADDR" envDefault:":8080"`
	DatabasePath string `env:"GURUKUL_DB" envDefault:"data/gurukul.db"`
	SiteBaseURL  string `env:"GURUKUL_SITE_URL" envDefault:"http://localhost:8080"`

	UploadDir string `env:"GURUKUL_UPLOAD_DIR" envDefault:"data/uploads"`
	UploadURL string `env:"GURUKUL_UPLOAD_URL" envDefault:"/media"`

	ContentDir string `env:"GURUKUL_CONTENT_DIR"`

	AuthSecret        string `env:"GURUKUL_AUTH_SECRET"`
	AdminEmail        string `env:"GURUKUL_ADMIN_EMAIL"`
	AdminPasswordHash string `env:"GURUKUL_ADMIN_PASSWORD_HASH"`

	OpenAIKey   string        `env:"GURUKUL_OPENAI_API_KEY"`
	OpenAIModel string        `env:"GURUKUL_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIURL   string        `env:"GURUKUL_OPENAI_BASE_URL"`
	GenTimeout  time.Duration `env:"GURUKUL_GENERATION_TIMEOUT" envDefault:"45s"`

	CacheEnabled bool          `env:"GURUKUL_CACHE" envDefault:"true"`
	CacheTTL     time.Duration `env:"GURUKUL_CACHE_TTL" envDefault:"5m"`

	Referrals bool `env:"GURUKUL_REFERRALS" envDefault:"true"`

	LogLevel  string `env:"GURUKUL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"GURUKUL_LOG_FORMAT" envDefault:"text"`
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("gurukul: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	cfg := buildConfig(envCfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sqlDB, dialect, err := openDatabase(envCfg.DatabasePath)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := gurukul.ApplyMigrations(ctx, sqlDB); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	bunDB := bun.NewDB(sqlDB, dialect)

	opts := []gurukul.Option{gurukul.WithDB(bunDB)}
	if envCfg.CacheEnabled {
		cacheCfg := repocache.DefaultConfig()
		if envCfg.CacheTTL > 0 {
			cacheCfg.TTL = envCfg.CacheTTL
		}
		cacheService, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("cache service: %w", err)
		}
		opts = append(opts, gurukul.WithCache(cacheService, repocache.NewDefaultKeySerializer()))
	}

	module, err := gurukul.New(cfg, opts...)
	if err != nil {
		return err
	}

	seed := gurukul.StandardLocales(cfg.DefaultLocale, cfg.Locales)
	if err := module.Locales().Seed(ctx, seed); err != nil {
		return fmt.Errorf("seed locales: %w", err)
	}

	if envCfg.ContentDir != "" {
		if err := importContent(ctx, module, envCfg.ContentDir); err != nil {
			return fmt.Errorf("import content: %w", err)
		}
	}

	mux := nethttp.NewServeMux()
	module.Mount(mux)
	if envCfg.UploadDir != "" {
		prefix := strings.TrimSuffix(envCfg.UploadURL, "/")
		if strings.HasPrefix(prefix, "/") {
			mux.Handle(prefix+"/", nethttp.StripPrefix(prefix+"/", nethttp.FileServer(nethttp.Dir(envCfg.UploadDir))))
		}
	}

	if err := module.Store().Refresh(ctx); err != nil {
		return fmt.Errorf("warm content store: %w", err)
	}

	server := &nethttp.Server{
		Addr:              envCfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		module.Logger().Info("listening", "addr", envCfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	module.Logger().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func buildConfig(envCfg serverEnv) gurukul.Config {
	cfg := gurukul.DefaultConfig()
	cfg.Site.BaseURL = envCfg.SiteBaseURL
	cfg.Storage.BaseDir = envCfg.UploadDir
	cfg.Storage.BaseURL = envCfg.UploadURL
	cfg.Cache.Enabled = envCfg.CacheEnabled
	cfg.Cache.DefaultTTL = envCfg.CacheTTL
	cfg.Features.Referrals = envCfg.Referrals
	cfg.Features.BlogImport = envCfg.ContentDir != ""
	cfg.Logging.Level = envCfg.LogLevel
	cfg.Logging.Format = envCfg.LogFormat

	cfg.Auth.Secret = envCfg.AuthSecret
	cfg.Auth.AdminEmail = envCfg.AdminEmail
	cfg.Auth.AdminPasswordHash = envCfg.AdminPasswordHash

	if envCfg.OpenAIKey != "" {
		cfg.Features.Generation = true
		cfg.Generator.APIKey = envCfg.OpenAIKey
		cfg.Generator.Model = envCfg.OpenAIModel
		cfg.Generator.BaseURL = envCfg.OpenAIURL
		cfg.Generator.Timeout = envCfg.GenTimeout
	}

	return cfg
}

// openDatabase accepts either a sqlite file path or a postgres:// DSN.
func openDatabase(target string) (*sql.DB, schema.Dialect, error) {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(target)))
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		return sqlDB, pgdialect.New(), nil
	}

	if dir := filepath.Dir(target); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", target)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return sqlDB, sqlitedialect.New(), nil
}

func importContent(ctx context.Context, module *gurukul.Module, dir string) error {
	importer := module.Importer()
	if importer == nil {
		return nil
	}

	var docs []*blog.Document
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		doc, err := blog.ParseDocument(source, info.ModTime())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}

	result, err := importer.ImportDocuments(ctx, docs)
	if err != nil {
		return err
	}
	module.Logger().Info("imported blog content",
		"created", result.Created,
		"updated", result.Updated,
		"skipped", result.Skipped,
	)
	return nil
}
