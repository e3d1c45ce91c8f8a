package filters

// Applied holds the selected values per filter name.
type Applied map[string][]string

// Candidates holds the candidate lists per filter name. A nil list means the
// candidates are still loading.
type Candidates map[string][]Item

// AppliedFilter is one chip of the filter bar.
type AppliedFilter struct {
	Filter        string `json:"filterName"`
	APIName       string `json:"apiName"`
	DisplayedName string `json:"displayedName"`
	AppliedFilterItem
}

// Filters is the view of a registry over the candidate and applied data the
// caller currently holds. It is rebuilt whenever either input changes.
type Filters struct {
	registry   *Registry
	candidates Candidates
	applied    Applied
}

func New(registry *Registry, candidates Candidates, applied Applied) *Filters {
	return &Filters{registry: registry, candidates: candidates, applied: applied}
}

// Loading reports whether the candidates of a filter are not yet available.
func (f *Filters) Loading(name string) bool {
	items, ok := f.candidates[name]
	return !ok || items == nil
}

// Values returns the sorted candidates of a filter.
func (f *Filters) Values(name string) ([]Item, error) {
	def, err := f.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return def.SortFilterValues(f.candidates[name]), nil
}

// AppliedItems returns the chips for every applied value in registry order.
// Filters whose candidates are loading and stale values are left out.
func (f *Filters) AppliedItems() []AppliedFilter {
	var out []AppliedFilter
	for _, def := range f.registry.Definitions() {
		values := f.applied[def.Name]
		if len(values) == 0 || f.Loading(def.Name) {
			continue
		}
		items := f.candidates[def.Name]
		for _, value := range values {
			matched, ok := def.FindFilterValue(items, value)
			if !ok {
				continue
			}
			out = append(out, AppliedFilter{
				Filter:            def.Name,
				APIName:           def.APIName,
				DisplayedName:     def.DisplayedNameString,
				AppliedFilterItem: def.GetAppliedFilterItem(value, matched),
			})
		}
	}
	return out
}

// Stale returns the applied values that match no candidate, per filter.
func (f *Filters) Stale() Applied {
	stale := Applied{}
	for _, def := range f.registry.Definitions() {
		if f.Loading(def.Name) {
			continue
		}
		for _, value := range f.applied[def.Name] {
			if _, ok := def.FindFilterValue(f.candidates[def.Name], value); !ok {
				stale[def.Name] = append(stale[def.Name], value)
			}
		}
	}
	return stale
}
