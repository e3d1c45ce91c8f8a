// Package searchparams implements the query-string contract shared with the
// web console: how applied filters and view state are encoded in the URL and
// when two sets of parameters denote the same view.
package searchparams

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
)

// Params is a decoded query string. A value is nil (absent), a scalar or a
// slice of scalars.
type Params map[string]any

// values normalizes a parameter value. The second result is false when the
// value counts as absent.
func values(v any) ([]string, bool) {
	var out []string
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		return []string{t}, true
	case []string:
		out = append(out, t...)
	case []any:
		for _, e := range t {
			if e == nil {
				continue
			}
			out = append(out, scalar(e))
		}
	default:
		return []string{scalar(t)}, true
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// AreSearchParamsEqual reports whether two parameter sets select the same view.
// A scalar equals a one-element slice holding it, slices compare regardless of
// order, and a nil or empty value is the same as a missing key.
func AreSearchParamsEqual(a, b Params) bool {
	na, nb := normalize(a), normalize(b)
	if len(na) != len(nb) {
		return false
	}
	for key, av := range na {
		bv, ok := nb[key]
		if !ok || !slices.Equal(av, bv) {
			return false
		}
	}
	return true
}

func normalize(p Params) map[string][]string {
	out := make(map[string][]string, len(p))
	for key, v := range p {
		vals, ok := values(v)
		if !ok {
			continue
		}
		sort.Strings(vals)
		out[key] = vals
	}
	return out
}

// Encode renders the parameters as a query string with keys in sorted order
// and one repeated key per slice element.
func Encode(p Params) string {
	q := url.Values{}
	for key, v := range p {
		vals, ok := values(v)
		if !ok {
			continue
		}
		q[key] = vals
	}
	return q.Encode()
}

// Decode parses a query string. Keys occurring once decode to a string, keys
// occurring several times to a []string.
func Decode(query string) (Params, error) {
	q, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("failed to parse query string: %w", err)
	}
	return FromValues(q), nil
}

// FromValues converts parsed url.Values.
func FromValues(q url.Values) Params {
	p := make(Params, len(q))
	for key, vals := range q {
		switch len(vals) {
		case 0:
		case 1:
			p[key] = vals[0]
		default:
			p[key] = append([]string(nil), vals...)
		}
	}
	return p
}

// Strings returns the values of a key as a slice.
func (p Params) Strings(key string) []string {
	vals, _ := values(p[key])
	return vals
}

// Get returns the first value of a key.
func (p Params) Get(key string) string {
	vals, ok := values(p[key])
	if !ok {
		return ""
	}
	return vals[0]
}
