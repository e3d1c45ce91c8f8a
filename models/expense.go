package models

// Expense is the cost of one resource on one day
type Expense struct {
	ID             string  `json:"id" db:"id"`
	ResourceID     string  `json:"resource_id" db:"resource_id"`
	ResourceName   string  `json:"resource_name" db:"resource_name"`
	PoolID         *string `json:"pool_id" db:"pool_id"`
	OwnerID        *string `json:"owner_id" db:"owner_id"`
	CloudAccountID string  `json:"cloud_account_id" db:"cloud_account_id"`
	ResourceType   string  `json:"resource_type" db:"resource_type"`
	ResourceKind   string  `json:"resource_kind" db:"resource_kind"` // regular, cluster or environment
	Region         *string `json:"region" db:"region"`
	ServiceName    *string `json:"service_name" db:"service_name"`
	Tag            *string `json:"tag" db:"tag"`
	Date           string  `json:"date" db:"expense_date"` // YYYY-MM-DD
	Cost           float64 `json:"cost" db:"cost"`
}

// ExpenseTotal is one row of an expenses breakdown
type ExpenseTotal struct {
	Key   *string `json:"key" db:"breakdown_key"`
	Name  string  `json:"name" db:"-"`
	Total float64 `json:"total" db:"total"`
}

// Breakdown is the cost explorer view for one breakdownBy value
type Breakdown struct {
	BreakdownBy string         `json:"breakdownBy"`
	StartDate   string         `json:"startDate,omitempty"`
	EndDate     string         `json:"endDate,omitempty"`
	Total       float64        `json:"total"`
	Totals      []ExpenseTotal `json:"totals"`
}
