package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"costconsole/backend/filters"
	"costconsole/backend/models"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD query value; an empty value is the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return t, nil
}

// whereBuilder collects SQL conditions with ? placeholders
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

// in adds "column IN (values)", matching NULL rows when values hold the not-set value
func (w *whereBuilder) in(column string, values []string) {
	var ids []string
	withNull := false
	for _, v := range values {
		if v == filters.NotSetValue {
			withNull = true
			continue
		}
		ids = append(ids, v)
	}

	switch {
	case len(ids) == 0 && withNull:
		w.add(column + " IS NULL")
	case withNull:
		w.add("("+column+" IN (?) OR "+column+" IS NULL)", ids)
	case len(ids) > 0:
		w.add(column+" IN (?)", ids)
	}
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// build expands IN (?) lists and rebinds placeholders for the connection's driver
func (w *whereBuilder) build(db *sqlx.DB, query string) (string, []any, error) {
	q, args, err := sqlx.In(query, w.args...)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand query: %w", err)
	}
	return db.Rebind(q), args, nil
}

// filterColumns maps filter names to the column they restrict
type filterColumns map[string]string

// applyFilters adds a condition per applied filter. Pool selectors expand to
// their subtree; filters without a column are rejected.
func applyFilters(ctx context.Context, db *sqlx.DB, w *whereBuilder, applied filters.Applied, columns filterColumns) error {
	names := make([]string, 0, len(applied))
	for name := range applied {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		values := applied[name]
		if len(values) == 0 {
			continue
		}
		column, ok := columns[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnsupportedFilter, name)
		}

		switch name {
		case "pool":
			ids, err := expandPools(ctx, db, values)
			if err != nil {
				return err
			}
			w.in(column, ids)
		case "resourceType":
			var parts []string
			var args []any
			for _, v := range values {
				typeName, kind, ok := filters.ParseResourceTypeValue(v)
				if !ok {
					return fmt.Errorf("%w: resource type %q", filters.ErrSchemaMismatch, v)
				}
				parts = append(parts, "("+column+" = ? AND resource_kind = ?)")
				args = append(args, typeName, kind)
			}
			w.add("("+strings.Join(parts, " OR ")+")", args...)
		default:
			w.in(column, values)
		}
	}
	return nil
}

// expandPools resolves pool selectors to the pool ids they cover
func expandPools(ctx context.Context, db *sqlx.DB, values []string) ([]string, error) {
	var pools []models.Pool
	if err := db.SelectContext(ctx, &pools, "SELECT id, name, purpose, parent_id, budget_limit FROM pools"); err != nil {
		return nil, fmt.Errorf("failed to load pools: %w", err)
	}

	seen := map[string]bool{}
	var ids []string
	for _, v := range values {
		sel, err := filters.ParsePoolSelector(v)
		if err != nil {
			return nil, err
		}
		covered := []string{sel.ID}
		if sel.WithSubtree {
			covered = models.Descendants(pools, sel.ID)
		}
		for _, id := range covered {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
