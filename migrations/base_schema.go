package migrations

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateBaseSchema creates the organization and cost tables
func CreateBaseSchema(db *sqlx.DB) error {
	err := execAll(db,
		`CREATE TABLE IF NOT EXISTS pools (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			purpose TEXT NOT NULL DEFAULT 'budget',
			parent_id TEXT REFERENCES pools(id),
			budget_limit DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cloud_accounts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			resource_id TEXT NOT NULL,
			resource_name TEXT NOT NULL,
			pool_id TEXT REFERENCES pools(id),
			owner_id TEXT REFERENCES employees(id),
			cloud_account_id TEXT NOT NULL REFERENCES cloud_accounts(id),
			resource_type TEXT NOT NULL,
			resource_kind TEXT NOT NULL DEFAULT 'regular',
			region TEXT,
			service_name TEXT,
			tag TEXT,
			expense_date TEXT NOT NULL,
			cost DOUBLE PRECISION NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses (expense_date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_pool ON expenses (pool_id)`,
	)
	if err != nil {
		return fmt.Errorf("failed to create base schema: %w", err)
	}
	return nil
}
