// Package filters describes the filterable fields of the console: how a candidate
// value is identified, rendered and matched against the values applied in a
// query string.
//
// Each field is a Definition, a capability record of functions kept in a Registry
// keyed by filter name. Generic consumers (the filter bar, the saved presets, the
// expenses breakdown) work against the Registry and never switch on filter type.
package filters

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrUnknownFilter        = errors.New("unknown filter")
	ErrIncompleteDefinition = errors.New("incomplete filter definition")
	ErrDuplicateFilter      = errors.New("duplicate filter")
)

// NotSetValue is the applied value selecting candidates with no value for the field.
const NotSetValue = "null"

// Item is one selectable candidate (filter value) as a JSON object.
type Item map[string]any

// String returns the field as a string, or "" when it is absent or null.
func (i Item) String(key string) string {
	v, ok := i[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// IsNull reports whether the field is absent or explicitly null.
func (i Item) IsNull(key string) bool {
	v, ok := i[key]
	return !ok || v == nil
}

// Displayed is the rich representation of a selected value. The UI draws Icon
// next to Label and renders Suffix as a caption.
type Displayed struct {
	Icon   string `json:"icon,omitempty"`
	Label  string `json:"label"`
	Suffix string `json:"suffix,omitempty"`
}

// Options are the modifiers carried by an applied value.
type Options struct {
	WithSubtree bool `json:"withSubtree,omitempty"`
}

// Definition is the per-field capability record.
//
// Value, Displayed and DisplayedString are required. Find, Less and Modifiers
// fall back to exact value matching, ascending order by name and no modifiers.
type Definition struct {
	Name                string        `json:"filterName" yaml:"name"`
	APIName             string        `json:"apiName" yaml:"api_name"`
	DisplayedName       string        `json:"displayedName" yaml:"displayed_name"`
	DisplayedNameString string        `json:"displayedNameString" yaml:"displayed_name_string"`
	Multiple            bool          `json:"multiple" yaml:"multiple"`
	ItemSchema          ItemSchema    `json:"filterItemSchema" yaml:"item_schema"`
	AppliedSchema       AppliedSchema `json:"appliedFilterSchema" yaml:"applied_schema"`

	Value           func(item Item) string                                         `json:"-" yaml:"-"`
	Displayed       func(item Item, opts Options) Displayed                        `json:"-" yaml:"-"`
	DisplayedString func(item Item, opts Options) string                           `json:"-" yaml:"-"`
	Find            func(d *Definition, items []Item, applied string) (Item, bool) `json:"-" yaml:"-"`
	Less            func(a, b Item) bool                                           `json:"-" yaml:"-"`
	Modifiers       func(applied string) Options                                   `json:"-" yaml:"-"`
}

// AppliedFilterItem is what the filter bar renders for one active value.
type AppliedFilterItem struct {
	Value                string    `json:"value"`
	DisplayedValue       Displayed `json:"displayedValue"`
	DisplayedValueString string    `json:"displayedValueString"`
	FilterItem           Item      `json:"filterItem"`
}

func (d *Definition) complete() error {
	var missing []string
	if d.Value == nil {
		missing = append(missing, "value")
	}
	if d.Displayed == nil {
		missing = append(missing, "displayed")
	}
	if d.DisplayedString == nil {
		missing = append(missing, "displayedString")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrIncompleteDefinition, d.Name, strings.Join(missing, ", "))
	}
	if d.Name == "" || d.APIName == "" {
		return fmt.Errorf("%w: name and api name are required", ErrIncompleteDefinition)
	}
	return nil
}

// GetValue returns the canonical identifier of a candidate.
func (d *Definition) GetValue(item Item) string {
	return d.Value(item)
}

func (d *Definition) GetDisplayedValue(item Item, opts Options) Displayed {
	return d.Displayed(item, opts)
}

func (d *Definition) GetDisplayedValueString(item Item, opts Options) string {
	return d.DisplayedString(item, opts)
}

// FindFilterValue resolves an applied value to the matching candidate. A stale
// value returns false; callers render nothing for it.
func (d *Definition) FindFilterValue(items []Item, applied string) (Item, bool) {
	if d.Find != nil {
		return d.Find(d, items, applied)
	}
	return findByValue(d, items, applied)
}

func findByValue(d *Definition, items []Item, applied string) (Item, bool) {
	for _, item := range items {
		if d.Value(item) == applied {
			return item, true
		}
	}
	return nil, false
}

// SortFilterValues returns the candidates in display order. The input is not modified.
func (d *Definition) SortFilterValues(items []Item) []Item {
	less := d.Less
	if less == nil {
		less = byName
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// ModifiersOf returns the modifiers encoded in an applied value.
func (d *Definition) ModifiersOf(applied string) Options {
	if d.Modifiers == nil {
		return Options{}
	}
	return d.Modifiers(applied)
}

// GetAppliedFilterItem assembles the chip for an applied value and its matched candidate.
func (d *Definition) GetAppliedFilterItem(applied string, matched Item) AppliedFilterItem {
	opts := d.ModifiersOf(applied)
	return AppliedFilterItem{
		Value:                applied,
		DisplayedValue:       d.Displayed(matched, opts),
		DisplayedValueString: d.DisplayedString(matched, opts),
		FilterItem:           matched,
	}
}

func byName(a, b Item) bool {
	an, bn := a.String("name"), b.String("name")
	if la, lb := strings.ToLower(an), strings.ToLower(bn); la != lb {
		return la < lb
	}
	return an < bn
}
