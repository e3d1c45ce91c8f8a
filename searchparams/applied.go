package searchparams

import (
	"fmt"

	"costconsole/backend/filters"
)

// FromApplied encodes applied filters under their api names. Unknown filter
// names are rejected.
func FromApplied(reg *filters.Registry, applied filters.Applied) (Params, error) {
	p := Params{}
	for name, vals := range applied {
		def, err := reg.Get(name)
		if err != nil {
			return nil, err
		}
		switch len(vals) {
		case 0:
		case 1:
			p[def.APIName] = vals[0]
		default:
			p[def.APIName] = append([]string(nil), vals...)
		}
	}
	return p, nil
}

// ToApplied extracts the applied filters from parameters. Keys that are not
// filter api names (tabs, date range, breakdown) are ignored; values failing
// the applied schema are an error.
func ToApplied(reg *filters.Registry, p Params) (filters.Applied, error) {
	applied := filters.Applied{}
	for key := range p {
		def, err := reg.ByAPIName(key)
		if err != nil {
			continue
		}
		vals := p.Strings(key)
		if len(vals) > 1 && !def.Multiple {
			return nil, fmt.Errorf("%w: %s accepts a single value", filters.ErrSchemaMismatch, def.Name)
		}
		for _, v := range vals {
			if err := def.ValidateApplied(v); err != nil {
				return nil, err
			}
		}
		if len(vals) > 0 {
			applied[def.Name] = vals
		}
	}
	return applied, nil
}
