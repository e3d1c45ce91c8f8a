package services

import (
	"context"
	"fmt"

	"costconsole/backend/database"
	"costconsole/backend/filters"
	"costconsole/backend/models"
	"costconsole/backend/runs"
)

// GetRuns lists ML runs started between two dates (YYYY-MM-DD, inclusive,
// empty for open) that match the applied run filters.
func GetRuns(ctx context.Context, startDate, endDate string, applied filters.Applied) ([]models.Run, error) {
	from, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if !to.IsZero() {
		// the end date covers the whole day
		to = to.AddDate(0, 0, 1).Add(-1)
	}
	for name := range applied {
		if name != "runStatus" && name != "task" && name != "goalStatus" {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)
		}
	}

	all := []models.Run{}
	err = database.DB.SelectContext(ctx, &all, `
		SELECT id, name, task_id, status, goals_met, start_time, finish_time
		FROM ml_runs
		ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	return runs.Apply(runs.FilterByDateRange(all, from, to), applied), nil
}

// GetRunsSummary summarizes the runs GetRuns would return
func GetRunsSummary(ctx context.Context, startDate, endDate string, applied filters.Applied) (models.RunSummary, error) {
	list, err := GetRuns(ctx, startDate, endDate, applied)
	if err != nil {
		return models.RunSummary{}, err
	}
	return runs.Summarize(list), nil
}
