package filters

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalog []byte

// Registry is the lookup table of definitions keyed by filter name.
type Registry struct {
	defs  map[string]*Definition
	api   map[string]*Definition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		defs: make(map[string]*Definition),
		api:  make(map[string]*Definition),
	}
}

// Register adds a definition. Definitions lacking a required capability or
// reusing a name are rejected.
func (r *Registry) Register(def Definition) error {
	if err := def.complete(); err != nil {
		return err
	}
	if _, ok := r.defs[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateFilter, def.Name)
	}
	if _, ok := r.api[def.APIName]; ok {
		return fmt.Errorf("%w: api name %s", ErrDuplicateFilter, def.APIName)
	}
	d := def
	r.defs[d.Name] = &d
	r.api[d.APIName] = &d
	r.order = append(r.order, d.Name)
	return nil
}

func (r *Registry) Get(name string) (*Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
	}
	return d, nil
}

func (r *Registry) ByAPIName(apiName string) (*Definition, error) {
	d, ok := r.api[apiName]
	if !ok {
		return nil, fmt.Errorf("%w: api name %s", ErrUnknownFilter, apiName)
	}
	return d, nil
}

// Definitions returns the definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	out := make([]*Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

// Names returns the filter names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// LoadCatalog parses catalog metadata and binds each entry to its behaviour.
func LoadCatalog(data []byte, behaviours map[string]func(*Definition)) (*Registry, error) {
	var entries []Definition
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse filter catalog: %w", err)
	}

	reg := NewRegistry()
	for _, entry := range entries {
		bind, ok := behaviours[entry.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no behaviour for %s", ErrIncompleteDefinition, entry.Name)
		}
		bind(&entry)
		if err := reg.Register(entry); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in filters, built once.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := LoadCatalog(catalog, builtins)
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}
