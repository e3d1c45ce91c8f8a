// Package runs filters and summarizes ML runs already loaded for a task view.
package runs

import (
	"slices"
	"strconv"
	"time"

	"costconsole/backend/filters"
	"costconsole/backend/models"
)

// FilterByDateRange keeps the runs started within [from, to]. A zero bound is open.
func FilterByDateRange(runs []models.Run, from, to time.Time) []models.Run {
	out := make([]models.Run, 0, len(runs))
	for _, r := range runs {
		if !from.IsZero() && r.Start.Before(from) {
			continue
		}
		if !to.IsZero() && r.Start.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Apply keeps the runs matching the applied run status, goal status and task
// filters. Other applied filters do not concern runs and are ignored.
func Apply(runs []models.Run, applied filters.Applied) []models.Run {
	statuses := applied["runStatus"]
	tasks := applied["task"]
	goals := applied["goalStatus"]

	out := make([]models.Run, 0, len(runs))
	for _, r := range runs {
		if len(statuses) > 0 && !slices.Contains(statuses, r.Status) {
			continue
		}
		if len(tasks) > 0 && !slices.Contains(tasks, r.TaskID) {
			continue
		}
		if len(goals) > 0 && !slices.Contains(goals, strconv.FormatBool(r.GoalsMet)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize counts runs per status and averages the duration of finished runs.
func Summarize(runs []models.Run) models.RunSummary {
	s := models.RunSummary{Total: len(runs), ByStatus: map[string]int{}}
	var total time.Duration
	var finished int
	for _, r := range runs {
		s.ByStatus[r.Status]++
		if r.GoalsMet {
			s.GoalsMet++
		}
		if r.Finish != nil {
			total += r.Duration()
			finished++
		}
	}
	if finished > 0 {
		s.AverageDuration = (total / time.Duration(finished)).Seconds()
	}
	return s
}
