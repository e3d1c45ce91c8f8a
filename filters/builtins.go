package filters

import (
	"strconv"
	"strings"
)

// NotSetLabel is displayed for candidates whose identifier is null.
const NotSetLabel = "(not set)"

const (
	withSubPools    = "with sub-pools"
	resourceRegular = "regular"
)

var builtins = map[string]func(*Definition){
	"pool": func(d *Definition) {
		d.Value = field("id")
		d.Displayed = func(item Item, opts Options) Displayed {
			out := Displayed{Icon: item.String("purpose"), Label: item.String("name")}
			if opts.WithSubtree {
				out.Suffix = withSubPools
			}
			return out
		}
		d.DisplayedString = func(item Item, opts Options) string {
			if opts.WithSubtree {
				return item.String("name") + " (" + withSubPools + ")"
			}
			return item.String("name")
		}
		d.Find = findPool
		d.Modifiers = poolModifiers
	},
	"owner":      nullableNamed("id", "name", ""),
	"dataSource": typedNamed("id", "type"),
	"resourceType": func(d *Definition) {
		d.Value = func(item Item) string {
			return ResourceTypeValue(item.String("name"), item.String("type"))
		}
		d.Displayed = func(item Item, _ Options) Displayed {
			out := Displayed{Icon: item.String("type"), Label: item.String("name")}
			if t := item.String("type"); t != resourceRegular {
				out.Suffix = t
			}
			return out
		}
		d.DisplayedString = func(item Item, _ Options) string {
			if t := item.String("type"); t != resourceRegular {
				return item.String("name") + " (" + t + ")"
			}
			return item.String("name")
		}
		d.Less = func(a, b Item) bool {
			if a.String("name") != b.String("name") {
				return byName(a, b)
			}
			return a.String("type") < b.String("type")
		}
	},
	"region":             nullableNamed("name", "name", "cloud_type"),
	"service":            nullableNamed("name", "name", "cloud_type"),
	"tag":                nullableNamed("name", "name", ""),
	"active":             boolean("Active", "Not active"),
	"recommendations":    boolean("With recommendations", "Without recommendations"),
	"constraintViolated": boolean("Constraint violated", "Constraint not violated"),
	"runStatus": func(d *Definition) {
		d.Value = field("status")
		d.Displayed = func(item Item, _ Options) Displayed {
			s := item.String("status")
			return Displayed{Icon: s, Label: capitalize(s)}
		}
		d.DisplayedString = func(item Item, _ Options) string {
			return capitalize(item.String("status"))
		}
		d.Less = func(a, b Item) bool {
			return a.String("status") < b.String("status")
		}
	},
	"goalStatus": boolean("Goals met", "Goals not met"),
	"task":       typedNamed("id", ""),
}

// ResourceTypeValue encodes a resource type candidate as "name:type".
func ResourceTypeValue(name, kind string) string {
	return name + ":" + kind
}

// ParseResourceTypeValue splits a resource type applied value. The type is
// taken after the last colon since resource type names may contain colons.
func ParseResourceTypeValue(value string) (name, kind string, ok bool) {
	i := strings.LastIndex(value, ":")
	if i <= 0 || i == len(value)-1 {
		return "", "", false
	}
	return value[:i], value[i+1:], true
}

func field(key string) func(Item) string {
	return func(item Item) string {
		return item.String(key)
	}
}

// nullableNamed builds a definition whose candidates may carry a null identifier,
// selected with NotSetValue.
func nullableNamed(idKey, nameKey, iconKey string) func(*Definition) {
	return func(d *Definition) {
		d.Value = func(item Item) string {
			if item.IsNull(idKey) {
				return NotSetValue
			}
			return item.String(idKey)
		}
		label := func(item Item) string {
			if item.IsNull(idKey) {
				return NotSetLabel
			}
			return item.String(nameKey)
		}
		d.Displayed = func(item Item, _ Options) Displayed {
			out := Displayed{Label: label(item)}
			if iconKey != "" {
				out.Icon = item.String(iconKey)
			}
			return out
		}
		d.DisplayedString = func(item Item, _ Options) string {
			return label(item)
		}
		// not set sorts first
		d.Less = func(a, b Item) bool {
			an, bn := a.IsNull(idKey), b.IsNull(idKey)
			if an != bn {
				return an
			}
			ca, cb := Item{"name": a.String(nameKey)}, Item{"name": b.String(nameKey)}
			return byName(ca, cb)
		}
	}
}

func typedNamed(idKey, iconKey string) func(*Definition) {
	return func(d *Definition) {
		d.Value = field(idKey)
		d.Displayed = func(item Item, _ Options) Displayed {
			out := Displayed{Label: item.String("name")}
			if iconKey != "" {
				out.Icon = item.String(iconKey)
			}
			return out
		}
		d.DisplayedString = func(item Item, _ Options) string {
			return item.String("name")
		}
	}
}

func boolean(trueLabel, falseLabel string) func(*Definition) {
	return func(d *Definition) {
		d.Value = field("value")
		label := func(item Item) string {
			if v, err := strconv.ParseBool(item.String("value")); err == nil && v {
				return trueLabel
			}
			return falseLabel
		}
		d.Displayed = func(item Item, _ Options) Displayed {
			return Displayed{Label: label(item)}
		}
		d.DisplayedString = func(item Item, _ Options) string {
			return label(item)
		}
		// true first
		d.Less = func(a, b Item) bool {
			return a.String("value") == "true" && b.String("value") != "true"
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
