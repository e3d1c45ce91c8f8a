package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AddIntegrations adds connected tools; secrets are stored encrypted
func AddIntegrations(db *sqlx.DB) error {
	err := execAll(db,
		`CREATE TABLE IF NOT EXISTS integrations (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL UNIQUE,
			base_url TEXT NOT NULL,
			issuer TEXT NOT NULL,
			encrypted_secret TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create integrations table: %w", err)
	}
	return nil
}
