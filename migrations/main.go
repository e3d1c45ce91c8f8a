package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"costconsole/backend/logging"
)

type migration struct {
	name string
	fn   func(*sqlx.DB) error
}

// all returns the migrations in the order they are applied
func all() []migration {
	return []migration{
		{"create_base_schema", CreateBaseSchema},
		{"add_ml_tables", AddMLTables},
		{"add_recommendation_tables", AddRecommendationTables},
		{"add_saved_filters", AddSavedFilters},
		{"add_integrations", AddIntegrations},
	}
}

// RunMigrations executes all migrations in the correct order
func RunMigrations(db *sqlx.DB) error {
	log := logging.L().Named("migrations")
	log.Info("Running migrations")

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			name TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range all() {
		var count int
		if err := db.Get(&count, db.Rebind("SELECT COUNT(*) FROM migrations WHERE name = ?"), m.name); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("Skipping already applied migration", zap.String("migration", m.name))
			continue
		}

		log.Info("Applying migration", zap.String("migration", m.name))
		if err := m.fn(db); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.name, err)
		}
		if _, err := db.Exec(db.Rebind("INSERT INTO migrations (name) VALUES (?)"), m.name); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}

	log.Info("All migrations completed successfully")
	return nil
}

// execAll runs statements one at a time; not every driver accepts several per Exec
func execAll(db *sqlx.DB, statements ...string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
