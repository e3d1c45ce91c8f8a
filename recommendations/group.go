package recommendations

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var ErrUnknownGrouping = errors.New("unknown grouping")

// Recommendation statuses.
const (
	StatusActive    = "active"
	StatusDismissed = "dismissed"
	StatusExcluded  = "excluded"
)

// Groupings accepted by Group.
const (
	GroupByCategory = "category"
	GroupByStatus   = "status"
)

// Result is the current outcome of one recommendation type.
type Result struct {
	Type   string  `json:"type" db:"type"`
	Count  int     `json:"count" db:"count"`
	Saving float64 `json:"saving" db:"saving"`
	Status string  `json:"status" db:"status"`
}

// Group aggregates results sharing a category or status.
type Group struct {
	Key    string   `json:"key"`
	Count  int      `json:"count"`
	Saving float64  `json:"saving"`
	Types  []string `json:"types"`
}

// Group aggregates results, ordering groups by saving descending then key.
// Types within a group are listed once, in order of first appearance.
func (r *Registry) Group(results []Result, by string) ([]Group, error) {
	if by != GroupByCategory && by != GroupByStatus {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGrouping, by)
	}

	index := map[string]int{}
	var groups []Group
	for _, res := range results {
		key := res.Status
		if by == GroupByCategory {
			d, err := r.Configure(res.Type)
			if err != nil {
				return nil, err
			}
			key = d.Category
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		g := &groups[i]
		g.Count += res.Count
		g.Saving += res.Saving
		if !slices.Contains(g.Types, res.Type) {
			g.Types = append(g.Types, res.Type)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Saving != groups[j].Saving {
			return groups[i].Saving > groups[j].Saving
		}
		return groups[i].Key < groups[j].Key
	})
	return groups, nil
}
