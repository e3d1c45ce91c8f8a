package models

import "time"

// Task is an ML task whose runs are tracked
type Task struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Run is one ML training run
type Run struct {
	ID       string     `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	TaskID   string     `json:"task_id" db:"task_id"`
	Status   string     `json:"status" db:"status"`
	GoalsMet bool       `json:"goals_met" db:"goals_met"`
	Start    time.Time  `json:"start" db:"start_time"`
	Finish   *time.Time `json:"finish,omitempty" db:"finish_time"`
}

// Duration returns the run duration, zero while it has not finished
func (r Run) Duration() time.Duration {
	if r.Finish == nil {
		return 0
	}
	return r.Finish.Sub(r.Start)
}

// RunSummary aggregates a set of runs
type RunSummary struct {
	Total           int            `json:"total"`
	ByStatus        map[string]int `json:"byStatus"`
	GoalsMet        int            `json:"goalsMet"`
	AverageDuration float64        `json:"averageDurationSeconds"`
}
