package filters

import (
	"errors"
	"strings"
)

// SubtreeMarker is appended to a pool id to select the pool together with all
// of its descendants.
const SubtreeMarker = "*"

var ErrInvalidSelector = errors.New("invalid pool selector")

// PoolSelector is a parsed pool filter value: one pool, or one pool and its subtree.
type PoolSelector struct {
	ID          string
	WithSubtree bool
}

// ParsePoolSelector decodes the wire form of a pool filter value.
func ParsePoolSelector(value string) (PoolSelector, error) {
	id, subtree := strings.CutSuffix(value, SubtreeMarker)
	if id == "" || strings.HasSuffix(id, SubtreeMarker) {
		return PoolSelector{}, ErrInvalidSelector
	}
	return PoolSelector{ID: id, WithSubtree: subtree}, nil
}

// Single selects only the pool itself.
func Single(id string) PoolSelector {
	return PoolSelector{ID: id}
}

// WithSubtree selects the pool and its descendants.
func WithSubtree(id string) PoolSelector {
	return PoolSelector{ID: id, WithSubtree: true}
}

func (s PoolSelector) String() string {
	if s.WithSubtree {
		return s.ID + SubtreeMarker
	}
	return s.ID
}

func poolModifiers(applied string) Options {
	sel, err := ParsePoolSelector(applied)
	if err != nil {
		return Options{}
	}
	return Options{WithSubtree: sel.WithSubtree}
}

// findPool tries the applied value as a raw id first, then as a subtree selector.
func findPool(d *Definition, items []Item, applied string) (Item, bool) {
	if item, ok := findByValue(d, items, applied); ok {
		return item, true
	}
	sel, err := ParsePoolSelector(applied)
	if err != nil || !sel.WithSubtree {
		return nil, false
	}
	return findByValue(d, items, sel.ID)
}
