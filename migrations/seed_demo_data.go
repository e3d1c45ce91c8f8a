package migrations

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"costconsole/backend/logging"
	"costconsole/backend/models"
)

func ptr(s string) *string { return &s }

func day(d int, hour int) time.Time {
	return time.Date(2026, time.January, d, hour, 0, 0, 0, time.UTC)
}

// DemoPools is the pool tree seeded for development: Acme > {Eng > ML Platform, Sales}
var DemoPools = []models.Pool{
	{ID: "org", Name: "Acme", Purpose: models.PurposeBusinessUnit, Limit: 10000},
	{ID: "p1", Name: "Eng", Purpose: models.PurposeTeam, ParentID: ptr("org"), Limit: 5000},
	{ID: "p2", Name: "Sales", Purpose: models.PurposeTeam, ParentID: ptr("org"), Limit: 1000},
	{ID: "p3", Name: "ML Platform", Purpose: models.PurposeProject, ParentID: ptr("p1"), Limit: 2000},
}

var demoEmployees = []models.Employee{
	{ID: "e1", Name: "Alice"},
	{ID: "e2", Name: "Bob"},
}

var demoAccounts = []models.CloudAccount{
	{ID: "ca1", Name: "AWS Prod", Type: "aws_cnr"},
	{ID: "ca2", Name: "Azure Dev", Type: "azure_cnr"},
}

var demoExpenses = []models.Expense{
	{ID: "x1", ResourceID: "r1", ResourceName: "web-1", PoolID: ptr("p1"), OwnerID: ptr("e1"), CloudAccountID: "ca1",
		ResourceType: "Instance", ResourceKind: "regular", Region: ptr("us-east-1"), ServiceName: ptr("AmazonEC2"), Tag: ptr("env"), Date: "2026-01-01", Cost: 10},
	{ID: "x2", ResourceID: "r1", ResourceName: "web-1", PoolID: ptr("p1"), OwnerID: ptr("e1"), CloudAccountID: "ca1",
		ResourceType: "Instance", ResourceKind: "regular", Region: ptr("us-east-1"), ServiceName: ptr("AmazonEC2"), Tag: ptr("env"), Date: "2026-01-02", Cost: 10},
	{ID: "x3", ResourceID: "r2", ResourceName: "train-gpu", PoolID: ptr("p3"), OwnerID: ptr("e2"), CloudAccountID: "ca1",
		ResourceType: "Instance", ResourceKind: "regular", Region: ptr("us-east-1"), ServiceName: ptr("AmazonEC2"), Date: "2026-01-02", Cost: 30},
	{ID: "x4", ResourceID: "r3", ResourceName: "crm-db", PoolID: ptr("p2"), OwnerID: ptr("e2"), CloudAccountID: "ca2",
		ResourceType: "Database", ResourceKind: "regular", Region: ptr("westeurope"), ServiceName: ptr("Azure SQL"), Date: "2026-01-03", Cost: 25},
	{ID: "x5", ResourceID: "r4", ResourceName: "k8s", CloudAccountID: "ca2",
		ResourceType: "K8s", ResourceKind: "cluster", Date: "2026-01-03", Cost: 5},
}

var demoTasks = []models.Task{
	{ID: "t1", Name: "Churn model"},
	{ID: "t2", Name: "Forecast"},
}

var demoRuns = []models.Run{
	{ID: "run1", Name: "churn #1", TaskID: "t1", Status: models.RunCompleted, GoalsMet: true, Start: day(1, 10), Finish: timePtr(day(1, 11))},
	{ID: "run2", Name: "churn #2", TaskID: "t1", Status: models.RunFailed, Start: day(2, 10), Finish: timePtr(day(2, 10).Add(30 * time.Minute))},
	{ID: "run3", Name: "forecast #1", TaskID: "t2", Status: models.RunRunning, Start: day(3, 10)},
	{ID: "run4", Name: "forecast #2", TaskID: "t2", Status: models.RunCompleted, GoalsMet: true, Start: day(5, 8), Finish: timePtr(day(5, 10))},
}

var demoRecommendations = []models.Recommendation{
	{ID: "rc1", Type: "obsolete_images", ResourceID: "r1", ResourceName: "web-1", CloudAccountID: "ca1",
		Region: ptr("us-east-1"), PoolID: ptr("p1"), OwnerID: ptr("e1"), Saving: 12.5, Status: "active", DetectedAt: day(3, 0)},
	{ID: "rc2", Type: "obsolete_images", ResourceID: "r2", ResourceName: "train-gpu", CloudAccountID: "ca1",
		Region: ptr("us-east-1"), PoolID: ptr("p3"), OwnerID: ptr("e2"), Saving: 7.5, Status: "active", DetectedAt: day(3, 0)},
	{ID: "rc3", Type: "rightsizing_instances", ResourceID: "r2", ResourceName: "train-gpu", CloudAccountID: "ca1",
		Region: ptr("us-east-1"), PoolID: ptr("p3"), OwnerID: ptr("e2"), Saving: 40, Status: "active", DetectedAt: day(3, 0)},
	{ID: "rc4", Type: "insecure_security_groups", ResourceID: "r1", ResourceName: "web-1", CloudAccountID: "ca1",
		Region: ptr("us-east-1"), PoolID: ptr("p1"), OwnerID: ptr("e1"), Status: "active", DetectedAt: day(3, 0)},
	{ID: "rc5", Type: "obsolete_ips", ResourceID: "r3", ResourceName: "crm-db", CloudAccountID: "ca2",
		Region: ptr("westeurope"), PoolID: ptr("p2"), OwnerID: ptr("e2"), Saving: 3, Status: "dismissed", DetectedAt: day(3, 0)},
}

func timePtr(t time.Time) *time.Time { return &t }

// SeedDemoData fills an empty database with a small organization for development
// and tests. It does nothing when pools already exist.
func SeedDemoData(db *sqlx.DB) error {
	log := logging.L().Named("migrations")

	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM pools"); err != nil {
		return fmt.Errorf("failed to check pools: %w", err)
	}
	if count > 0 {
		log.Info("Skipping demo data seeding, pools already exist", zap.Int("pools", count))
		return nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserts := []struct {
		query string
		rows  any
	}{
		{`INSERT INTO pools (id, name, purpose, parent_id, budget_limit)
			VALUES (:id, :name, :purpose, :parent_id, :budget_limit)`, DemoPools},
		{`INSERT INTO employees (id, name) VALUES (:id, :name)`, demoEmployees},
		{`INSERT INTO cloud_accounts (id, name, type) VALUES (:id, :name, :type)`, demoAccounts},
		{`INSERT INTO expenses (id, resource_id, resource_name, pool_id, owner_id, cloud_account_id,
				resource_type, resource_kind, region, service_name, tag, expense_date, cost)
			VALUES (:id, :resource_id, :resource_name, :pool_id, :owner_id, :cloud_account_id,
				:resource_type, :resource_kind, :region, :service_name, :tag, :expense_date, :cost)`, demoExpenses},
		{`INSERT INTO ml_tasks (id, name) VALUES (:id, :name)`, demoTasks},
		{`INSERT INTO ml_runs (id, name, task_id, status, goals_met, start_time, finish_time)
			VALUES (:id, :name, :task_id, :status, :goals_met, :start_time, :finish_time)`, demoRuns},
		{`INSERT INTO recommendations (id, type, resource_id, resource_name, cloud_account_id,
				region, pool_id, owner_id, saving, status, detected_at)
			VALUES (:id, :type, :resource_id, :resource_name, :cloud_account_id,
				:region, :pool_id, :owner_id, :saving, :status, :detected_at)`, demoRecommendations},
	}
	for _, ins := range inserts {
		if _, err := tx.NamedExec(ins.query, ins.rows); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit demo data: %w", err)
	}
	log.Info("Demo data seeded")
	return nil
}
