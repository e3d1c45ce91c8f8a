package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// AddMLTables adds ML tasks and their runs
func AddMLTables(db *sqlx.DB) error {
	err := execAll(db,
		`CREATE TABLE IF NOT EXISTS ml_tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ml_runs (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			task_id TEXT NOT NULL REFERENCES ml_tasks(id),
			status TEXT NOT NULL,
			goals_met BOOLEAN NOT NULL DEFAULT FALSE,
			start_time TIMESTAMP NOT NULL,
			finish_time TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ml_runs_task ON ml_runs (task_id)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create ML tables: %w", err)
	}
	return nil
}
