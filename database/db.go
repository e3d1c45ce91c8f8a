package database

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"costconsole/backend/config"
	"costconsole/backend/logging"
	"costconsole/backend/migrations"
)

var DB *sqlx.DB

// Open connects to the configured database without touching the schema
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.DSN
	if cfg.Driver == "sqlite3" {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	maxConns := cfg.MaxOpenConns
	if maxConns <= 0 {
		maxConns = 5
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// sqliteDSN adds the connection parameters that handle concurrent writers
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_journal_mode=WAL&_busy_timeout=10000&_foreign_keys=on"
}

// InitDB opens the database, applies migrations and optionally seeds demo data
func InitDB(cfg config.DatabaseConfig) error {
	log := logging.L().Named("database")

	db, err := Open(cfg)
	if err != nil {
		return err
	}
	log.Info("Connected to database",
		zap.String("driver", cfg.Driver),
		zap.String("dsn", MaskPassword(cfg.DSN)))

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return err
	}
	if cfg.Seed {
		if err := migrations.SeedDemoData(db); err != nil {
			db.Close()
			return err
		}
	}

	DB = db
	return nil
}

// OpenMemory returns a migrated in-memory sqlite database. Every call gets its own database.
func OpenMemory(seed bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open memory database: %w", err)
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}
	if seed {
		if err := migrations.SeedDemoData(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	return db, nil
}
