package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"costconsole/backend/database"
	"costconsole/backend/filters"
	"costconsole/backend/logging"
	"costconsole/backend/models"
	"costconsole/backend/recommendations"
)

var recommendationFilterColumns = filterColumns{
	"pool":       "pool_id",
	"owner":      "owner_id",
	"dataSource": "cloud_account_id",
	"region":     "region",
}

// GetRecommendations lists the active items of one recommendation type,
// highest saving first.
func GetRecommendations(ctx context.Context, typ string, applied filters.Applied) ([]models.Recommendation, error) {
	if _, err := recommendations.Default().Configure(typ); err != nil {
		return nil, err
	}

	db := database.DB
	w := &whereBuilder{}
	w.add("type = ?", typ)
	w.add("status = ?", recommendations.StatusActive)
	if err := applyFilters(ctx, db, w, applied, recommendationFilterColumns); err != nil {
		return nil, err
	}

	query, args, err := w.build(db, `SELECT id, type, resource_id, resource_name, cloud_account_id,
		region, pool_id, owner_id, saving, status, detected_at
		FROM recommendations`+w.String()+" ORDER BY saving DESC, resource_name")
	if err != nil {
		return nil, err
	}

	items := []models.Recommendation{}
	if err := db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	return items, nil
}

// RefreshRecommendationSummaries rebuilds the per type and status snapshot
func RefreshRecommendationSummaries(ctx context.Context) error {
	db := database.DB
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var results []recommendations.Result
	err = tx.SelectContext(ctx, &results, `
		SELECT type, status, COUNT(*) AS count, COALESCE(SUM(saving), 0) AS saving
		FROM recommendations
		GROUP BY type, status`)
	if err != nil {
		return fmt.Errorf("failed to aggregate recommendations: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recommendation_summaries"); err != nil {
		return fmt.Errorf("failed to clear recommendation summaries: %w", err)
	}
	now := time.Now().UTC()
	insert := tx.Rebind(`INSERT INTO recommendation_summaries (type, status, count, saving, refreshed_at)
		VALUES (?, ?, ?, ?, ?)`)
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, insert, r.Type, r.Status, r.Count, r.Saving, now); err != nil {
			return fmt.Errorf("failed to store summary of %s: %w", r.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendation summaries: %w", err)
	}
	logging.L().Debug("Recommendation summaries refreshed", zap.Int("rows", len(results)))
	return nil
}

// GetRecommendationSummaries returns the latest snapshot, leaving out types
// the registry does not describe
func GetRecommendationSummaries(ctx context.Context) ([]recommendations.Result, error) {
	var rows []recommendations.Result
	err := database.DB.SelectContext(ctx, &rows,
		"SELECT type, status, count, saving FROM recommendation_summaries ORDER BY type, status")
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation summaries: %w", err)
	}

	reg := recommendations.Default()
	results := make([]recommendations.Result, 0, len(rows))
	for _, r := range rows {
		if _, err := reg.Configure(r.Type); err != nil {
			logging.L().Warn("Skipping summary of undescribed recommendation type", zap.String("type", r.Type))
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// GroupRecommendationSummaries groups the snapshot by category or status
func GroupRecommendationSummaries(ctx context.Context, by string) ([]recommendations.Group, error) {
	results, err := GetRecommendationSummaries(ctx)
	if err != nil {
		return nil, err
	}
	return recommendations.Default().Group(results, by)
}
