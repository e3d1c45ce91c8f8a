// Package recommendations holds the descriptors of the optimization
// recommendation types: the flags, message ids and table columns the shared
// recommendation card and table render for each type.
package recommendations

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownType       = errors.New("unknown recommendation type")
	ErrInvalidDescriptor = errors.New("invalid recommendation descriptor")
)

// Categories of recommendation types.
const (
	CategoryCost     = "cost"
	CategorySecurity = "security"
)

// SavingsColumn is the column every thresholded type exposes.
const SavingsColumn = "possibleMonthlySavings"

// Cell is the renderer the table uses for a column's values.
type Cell string

const (
	CellText     Cell = "text"
	CellResource Cell = "resource"
	CellRegion   Cell = "region"
	CellMoney    Cell = "money"
	CellSize     Cell = "size"
	CellDate     Cell = "date"
	CellCount    Cell = "count"
	CellCPU      Cell = "cpu"
	CellPool     Cell = "pool"
	CellOwner    Cell = "owner"
)

// Column is one table column of a recommendation table.
type Column struct {
	ID              string `json:"id"`
	HeaderMessageID string `json:"headerMessageId"`
	Accessor        string `json:"accessor"`
	Cell            Cell   `json:"cell"`
	Sortable        bool   `json:"sortable,omitempty"`
	DefaultSort     string `json:"defaultSort,omitempty"`
}

// Descriptor is the static configuration of one recommendation type.
type Descriptor struct {
	Type                 string `json:"type"`
	ModuleName           string `json:"moduleName"`
	Category             string `json:"category"`
	WithExclusions       bool   `json:"withExclusions"`
	WithThresholds       bool   `json:"withThresholds"`
	TitleMessageID       string `json:"titleMessageId"`
	DescriptionMessageID string `json:"descriptionMessageId"`
	EmptyMessageID       string `json:"emptyMessageId"`
	DismissMessageID     string `json:"dismissMessageId,omitempty"`

	columns func() []Column
}

// Columns returns a fresh copy of the column definitions.
func (d Descriptor) Columns() []Column {
	if d.columns == nil {
		return nil
	}
	return d.columns()
}

// Validate checks the conventions shared by every descriptor.
func Validate(d Descriptor) error {
	if d.Type == "" || d.ModuleName == "" {
		return fmt.Errorf("%w: type and module name are required", ErrInvalidDescriptor)
	}
	if !slices.Contains([]string{CategoryCost, CategorySecurity}, d.Category) {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidDescriptor, d.Type, d.Category)
	}
	cols := d.Columns()
	if len(cols) == 0 {
		return fmt.Errorf("%w: %s has no columns", ErrInvalidDescriptor, d.Type)
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.ID] {
			return fmt.Errorf("%w: %s repeats column %s", ErrInvalidDescriptor, d.Type, c.ID)
		}
		seen[c.ID] = true
	}
	if d.WithThresholds {
		i := slices.IndexFunc(cols, func(c Column) bool { return c.ID == SavingsColumn })
		if i < 0 || !cols[i].Sortable {
			return fmt.Errorf("%w: %s has thresholds but no sortable %s column", ErrInvalidDescriptor, d.Type, SavingsColumn)
		}
	}
	return nil
}
