package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "CLAIMS_DB_DSN"

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection string")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if *dsn == "" {
		*dsn = os.Getenv(envDSN)
	}
	if *dsn == "" {
		*dsn = dsnFromEnv()
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		fatal(log, "failed to create migration source", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, *dsn)
	if err != nil {
		fatal(log, "failed to create migrator", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			fatal(log, "failed to get version", err)
		}
		log.Info("migration version", slog.Uint64("version", uint64(v)), slog.Bool("dirty", dirty))
	case forceSet:
		if err := m.Force(*force); err != nil {
			fatal(log, "failed to force version", err)
		}
		log.Info("forced version", slog.Int("version", *force))
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal(log, "failed to run up migrations", err)
		}
		log.Info("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal(log, "failed to run down migrations", err)
		}
		log.Info("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fatal(log, "failed to run migrations", err)
		}
		log.Info("applied migration steps", slog.Int("steps", *steps))
	default:
		fmt.Println("usage: migrate -dsn <connection-string> [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}

// dsnFromEnv builds a URL from the same POSTGRES_* variables the server reads.
func dsnFromEnv() string {
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return def
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		get("POSTGRES_USER", "postgres"),
		get("POSTGRES_PASSWORD", "postgres"),
		get("POSTGRES_HOST", "localhost"),
		get("POSTGRES_PORT", "5432"),
		get("POSTGRES_DB", "claims_db"),
		get("POSTGRES_SSL_MODE", "disable"),
	)
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
