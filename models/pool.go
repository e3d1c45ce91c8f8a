package models

// Pool is a node of the organization's budget hierarchy
type Pool struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Purpose  string  `json:"purpose" db:"purpose"`
	ParentID *string `json:"parent_id" db:"parent_id"`
	Limit    float64 `json:"limit" db:"budget_limit"`
}

// Employee owns resources and pools
type Employee struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CloudAccount is a connected data source
type CloudAccount struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`
}

// Descendants returns the ids of the pool and every pool below it
func Descendants(pools []Pool, rootID string) []string {
	children := make(map[string][]string)
	for _, p := range pools {
		if p.ParentID != nil {
			children[*p.ParentID] = append(children[*p.ParentID], p.ID)
		}
	}

	ids := []string{rootID}
	seen := map[string]bool{rootID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}
