package models

// Resource types a saved filter preset can belong to
const (
	ResourceExpenses        = "expenses"
	ResourceResources       = "resources"
	ResourceRecommendations = "recommendations"
	ResourceMLRuns          = "ml_runs"
)

// Pool purposes
const (
	PurposeBudget       = "budget"
	PurposeBusinessUnit = "business_unit"
	PurposeTeam         = "team"
	PurposeProject      = "project"
	PurposeCICD         = "cicd"
	PurposeMLOps        = "mlops"
	PurposeASAP         = "asset_pool"
)

// ML run statuses
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunAborted   = "aborted"
)

// Integration types
const (
	IntegrationJira = "jira"
)

// IsValidResourceType reports whether saved filters may be stored for the resource type
func IsValidResourceType(resourceType string) bool {
	switch resourceType {
	case ResourceExpenses, ResourceResources, ResourceRecommendations, ResourceMLRuns:
		return true
	}
	return false
}
