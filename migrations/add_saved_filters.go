package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AddSavedFilters adds per-user filter presets
func AddSavedFilters(db *sqlx.DB) error {
	err := execAll(db,
		`CREATE TABLE IF NOT EXISTS saved_filters (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			user_id TEXT NOT NULL,
			resource_type TEXT NOT NULL,
			filter_config TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_saved_filters_user ON saved_filters (user_id, resource_type)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create saved filters table: %w", err)
	}
	return nil
}
