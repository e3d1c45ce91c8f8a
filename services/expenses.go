package services

import (
	"context"
	"fmt"
	"sort"

	"costconsole/backend/database"
	"costconsole/backend/filters"
	"costconsole/backend/models"
)

// expenseFilterColumns are the filters that restrict expenses
var expenseFilterColumns = filterColumns{
	"pool":         "pool_id",
	"owner":        "owner_id",
	"dataSource":   "cloud_account_id",
	"resourceType": "resource_type",
	"region":       "region",
	"service":      "service_name",
	"tag":          "tag",
}

// breakdowns maps a breakdownBy value to the grouped column and, for ids, the
// table holding their names
var breakdowns = map[string]struct {
	column    string
	nameTable string
}{
	"pool_id":          {"pool_id", "pools"},
	"owner_id":         {"owner_id", "employees"},
	"cloud_account_id": {"cloud_account_id", "cloud_accounts"},
	"resource_type":    {"resource_type", ""},
	"region":           {"region", ""},
	"service_name":     {"service_name", ""},
	"tag":              {"tag", ""},
}

// GetExpensesBreakdown sums expenses between two dates (inclusive, empty for
// open) grouped by the breakdownBy column, restricted by the applied filters.
func GetExpensesBreakdown(ctx context.Context, breakdownBy, startDate, endDate string, applied filters.Applied) (*models.Breakdown, error) {
	b, ok := breakdowns[breakdownBy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBreakdown, breakdownBy)
	}
	if _, err := ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := ParseDate(endDate); err != nil {
		return nil, err
	}

	db := database.DB
	w := &whereBuilder{}
	if startDate != "" {
		w.add("expense_date >= ?", startDate)
	}
	if endDate != "" {
		w.add("expense_date <= ?", endDate)
	}
	if err := applyFilters(ctx, db, w, applied, expenseFilterColumns); err != nil {
		return nil, err
	}

	query, args, err := w.build(db, "SELECT "+b.column+" AS breakdown_key, SUM(cost) AS total FROM expenses"+
		w.String()+" GROUP BY "+b.column)
	if err != nil {
		return nil, err
	}

	totals := []models.ExpenseTotal{}
	if err := db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}

	names := map[string]string{}
	if b.nameTable != "" {
		rows := []struct {
			ID   string `db:"id"`
			Name string `db:"name"`
		}{}
		if err := db.SelectContext(ctx, &rows, "SELECT id, name FROM "+b.nameTable); err != nil {
			return nil, fmt.Errorf("failed to load %s names: %w", b.nameTable, err)
		}
		for _, r := range rows {
			names[r.ID] = r.Name
		}
	}

	result := &models.Breakdown{BreakdownBy: breakdownBy, StartDate: startDate, EndDate: endDate, Totals: totals}
	for i := range totals {
		t := &totals[i]
		switch {
		case t.Key == nil:
			t.Name = filters.NotSetLabel
		case names[*t.Key] != "":
			t.Name = names[*t.Key]
		default:
			t.Name = *t.Key
		}
		result.Total += t.Total
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Name < totals[j].Name
	})
	return result, nil
}
