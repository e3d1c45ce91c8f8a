package filters

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrSchemaMismatch is returned when a candidate or applied value does not fit
// the shape its definition declares.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Kind is the JSON kind of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
)

// Field is one required property of a candidate.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Nullable bool   `json:"nullable,omitempty" yaml:"nullable"`
}

// ItemSchema describes a valid candidate.
type ItemSchema struct {
	Required []Field `json:"required" yaml:"required"`
}

// AppliedSchema describes a valid applied value. Applied values always travel
// as query-string text, so Kind constrains how that text parses.
type AppliedSchema struct {
	Kind          Kind     `json:"kind" yaml:"kind"`
	Enum          []string `json:"enum,omitempty" yaml:"enum"`
	AllowNotSet   bool     `json:"allowNotSet,omitempty" yaml:"allow_not_set"`
	SubtreeSuffix bool     `json:"subtreeSuffix,omitempty" yaml:"subtree_suffix"`
}

// ValidateItem checks a candidate against the definition's item schema.
func (d *Definition) ValidateItem(item Item) error {
	if item == nil {
		return fmt.Errorf("%w: %s candidate is null", ErrSchemaMismatch, d.Name)
	}
	for _, f := range d.ItemSchema.Required {
		v, ok := item[f.Name]
		if !ok {
			return fmt.Errorf("%w: %s candidate lacks %q", ErrSchemaMismatch, d.Name, f.Name)
		}
		if v == nil {
			if f.Nullable {
				continue
			}
			return fmt.Errorf("%w: %s candidate has null %q", ErrSchemaMismatch, d.Name, f.Name)
		}
		if !f.Kind.matches(v) {
			return fmt.Errorf("%w: %s candidate field %q is %T, want %s", ErrSchemaMismatch, d.Name, f.Name, v, f.Kind)
		}
	}
	return nil
}

// ValidateApplied checks one applied value against the applied schema.
func (d *Definition) ValidateApplied(value string) error {
	s := d.AppliedSchema
	if value == NotSetValue && s.AllowNotSet {
		return nil
	}
	if s.SubtreeSuffix {
		sel, err := ParsePoolSelector(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrSchemaMismatch, d.Name, err)
		}
		value = sel.ID
	}
	if value == "" {
		return fmt.Errorf("%w: %s applied value is empty", ErrSchemaMismatch, d.Name)
	}
	switch s.Kind {
	case KindBoolean:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %s applied value %q is not a boolean", ErrSchemaMismatch, d.Name, value)
		}
	case KindNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: %s applied value %q is not a number", ErrSchemaMismatch, d.Name, value)
		}
	}
	if len(s.Enum) > 0 && !slices.Contains(s.Enum, value) {
		return fmt.Errorf("%w: %s applied value %q is not one of %v", ErrSchemaMismatch, d.Name, value, s.Enum)
	}
	return nil
}

func (k Kind) matches(v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindBoolean:
		_, ok := v.(bool)
		return ok
	case KindNumber:
		switch v.(type) {
		case float64, float32, int, int32, int64, uint, uint32, uint64:
			return true
		}
		return false
	default:
		return true
	}
}
