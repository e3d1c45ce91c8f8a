package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"costconsole/backend/database"
	"costconsole/backend/filters"
	"costconsole/backend/logging"
)

type candidateLoader func(ctx context.Context, db *sqlx.DB) ([]filters.Item, error)

var candidateLoaders = map[string]candidateLoader{
	"pool":       queryLoader("SELECT id, name, purpose FROM pools"),
	"dataSource": queryLoader("SELECT id, name, type FROM cloud_accounts"),
	"owner": queryLoader(`SELECT DISTINCT x.owner_id AS id, e.name AS name
		FROM expenses x LEFT JOIN employees e ON e.id = x.owner_id`),
	"resourceType": queryLoader("SELECT DISTINCT resource_type AS name, resource_kind AS type FROM expenses"),
	"region": queryLoader(`SELECT x.region AS name, MIN(ca.type) AS cloud_type
		FROM expenses x JOIN cloud_accounts ca ON ca.id = x.cloud_account_id GROUP BY x.region`),
	"service": queryLoader(`SELECT x.service_name AS name, MIN(ca.type) AS cloud_type
		FROM expenses x JOIN cloud_accounts ca ON ca.id = x.cloud_account_id GROUP BY x.service_name`),
	"tag":                queryLoader("SELECT DISTINCT tag AS name FROM expenses"),
	"active":             booleanLoader,
	"recommendations":    booleanLoader,
	"constraintViolated": booleanLoader,
	"goalStatus":         booleanLoader,
	"runStatus":          queryLoader("SELECT DISTINCT status FROM ml_runs"),
	"task":               queryLoader("SELECT id, name FROM ml_tasks"),
}

func queryLoader(query string) candidateLoader {
	return func(ctx context.Context, db *sqlx.DB) ([]filters.Item, error) {
		rows, err := db.QueryxContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		items := []filters.Item{}
		for rows.Next() {
			row := map[string]any{}
			if err := rows.MapScan(row); err != nil {
				return nil, err
			}
			for k, v := range row {
				if b, ok := v.([]byte); ok {
					row[k] = string(b)
				}
			}
			items = append(items, filters.Item(row))
		}
		return items, rows.Err()
	}
}

func booleanLoader(context.Context, *sqlx.DB) ([]filters.Item, error) {
	return []filters.Item{{"value": true}, {"value": false}}, nil
}

// LoadFilterValues returns the sorted candidates of one filter. Rows failing
// the item schema are dropped and logged.
func LoadFilterValues(ctx context.Context, reg *filters.Registry, name string) ([]filters.Item, error) {
	def, err := reg.Get(name)
	if err != nil {
		return nil, err
	}
	load, ok := candidateLoaders[name]
	if !ok {
		return nil, fmt.Errorf("%w: no candidates for %s", ErrUnsupportedFilter, name)
	}

	items, err := load(ctx, database.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s candidates: %w", name, err)
	}

	valid := items[:0]
	for _, item := range items {
		if err := def.ValidateItem(item); err != nil {
			logging.L().Warn("Skipping filter candidate",
				zap.String("filter", name), zap.Any("item", item), zap.Error(err))
			continue
		}
		valid = append(valid, item)
	}
	return def.SortFilterValues(valid), nil
}

// LoadCandidates loads the candidates of the named filters concurrently, or of
// every filter in the registry when no name is given.
func LoadCandidates(ctx context.Context, reg *filters.Registry, names ...string) (filters.Candidates, error) {
	if len(names) == 0 {
		names = reg.Names()
	}

	results := make([][]filters.Item, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			items, err := LoadFilterValues(gctx, reg, name)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	candidates := make(filters.Candidates, len(names))
	for i, name := range names {
		candidates[name] = results[i]
	}
	return candidates, nil
}
