package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AddRecommendationTables adds recommendation items and the per-type summary snapshot
func AddRecommendationTables(db *sqlx.DB) error {
	err := execAll(db,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			resource_id TEXT NOT NULL,
			resource_name TEXT NOT NULL,
			cloud_account_id TEXT NOT NULL REFERENCES cloud_accounts(id),
			region TEXT,
			pool_id TEXT REFERENCES pools(id),
			owner_id TEXT REFERENCES employees(id),
			saving DOUBLE PRECISION NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			detected_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_type ON recommendations (type, status)`,
		`CREATE TABLE IF NOT EXISTS recommendation_summaries (
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			saving DOUBLE PRECISION NOT NULL DEFAULT 0,
			refreshed_at TIMESTAMP NOT NULL,
			PRIMARY KEY (type, status)
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation tables: %w", err)
	}
	return nil
}
