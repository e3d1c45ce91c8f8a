package recommendations

import (
	"fmt"
	"sort"
	"strings"
)

func cost(typ, module string, thresholds bool, cols func() []Column) Descriptor {
	return describe(typ, module, CategoryCost, true, thresholds, cols)
}

func security(typ, module string, cols func() []Column) Descriptor {
	return describe(typ, module, CategorySecurity, true, false, cols)
}

func describe(typ, module, category string, exclusions, thresholds bool, cols func() []Column) Descriptor {
	key := strings.ToLower(module[:1]) + module[1:]
	return Descriptor{
		Type:                 typ,
		ModuleName:           module,
		Category:             category,
		WithExclusions:       exclusions,
		WithThresholds:       thresholds,
		TitleMessageID:       key + "Title",
		DescriptionMessageID: key + "Description",
		EmptyMessageID:       key + "Empty",
		DismissMessageID:     key + "Dismiss",
		columns:              cols,
	}
}

var builtins = []Descriptor{
	cost("volumes_not_attached_for_a_long_time", "VolumesNotAttachedForALongTime", true,
		costColumns(size(), date("lastSeenInAttachedState", "last_seen_in_attached_state"), money("costInDetachedState", "cost_in_detached_state"))),
	cost("obsolete_images", "ObsoleteImages", true,
		costColumns(date("lastUsed", "last_used"), count("snapshots", "snapshots_count"), money("savingsFromSnapshots", "saving"))),
	cost("obsolete_snapshots", "ObsoleteSnapshots", true,
		costColumns(date("lastUsed", "last_used"), date("firstSeen", "first_seen"), money("cost", "cost"))),
	cost("obsolete_snapshot_chains", "ObsoleteSnapshotChains", true,
		costColumns(date("lastUsed", "last_used"), count("snapshotsInChain", "snapshots_count"))),
	cost("obsolete_ips", "ObsoleteIps", true,
		costColumns(date("lastUsed", "last_used"), money("costNotActiveIp", "cost_not_active_ip"))),
	cost("short_living_instances", "ShortLivingInstances", true,
		costColumns(date("firstSeen", "first_seen"), date("lastSeen", "last_seen"), money("totalCost", "total_cost"))),
	cost("instances_for_shutdown", "InstancesForShutdown", true,
		costColumns(text("inactivityPeriods", "inactivity_periods"), money("monthlyCost", "monthly_cost"))),
	cost("instances_in_stopped_state_for_a_long_time", "InstancesInStoppedStateForALongTime", true,
		costColumns(date("lastSeenActive", "last_seen_active"), money("costInStoppedState", "cost_in_stopped_state"))),
	cost("rightsizing_instances", "RightsizingInstances", true,
		costColumns(text("currentSize", "flavor"), text("recommendedSize", "recommended_flavor"), cpu("cpuUsage", "cpu_usage"))),
	cost("rightsizing_rds", "RightsizingRds", true,
		costColumns(text("currentSize", "flavor"), text("recommendedSize", "recommended_flavor"), cpu("cpuUsage", "cpu_usage"))),
	cost("reserved_instances", "ReservedInstances", false,
		costColumns(text("size", "flavor"), date("firstSeen", "first_seen"), money("averageMonthlyOnDemandCost", "average_monthly_cost"))),
	cost("instance_subscription", "InstanceSubscription", false,
		costColumns(text("size", "flavor"), money("monthlyCost", "monthly_cost"), money("monthlySubscriptionCost", "subscription_cost"))),
	cost("instance_migration", "InstanceMigration", true,
		costColumns(text("recommendedRegion", "recommended_region"), money("currentCost", "current_cost"))),
	cost("instance_generation_upgrade", "InstanceGenerationUpgrade", true,
		costColumns(text("currentSize", "flavor"), text("recommendedSize", "recommended_flavor"))),
	cost("abandoned_instances", "AbandonedInstances", true,
		costColumns(cpu("averageCpu", "cpu_usage"), size(), money("monthlyCost", "monthly_cost"))),
	cost("abandoned_s3_buckets", "AbandonedS3Buckets", true,
		costColumns(count("getRequests", "get_request"), count("putRequests", "put_request"), money("monthlyCost", "monthly_cost"))),
	cost("abandoned_kinesis_streams", "AbandonedKinesisStreams", true,
		costColumns(count("shards", "shardhours_capacity"), money("monthlyCost", "cost"))),
	cost("cvos_opportunities", "CvosOpportunities", false,
		costColumns(text("size", "flavor"), text("recommendedSize", "recommended_flavor"))),
	security("insecure_security_groups", "InsecureSecurityGroups",
		securityColumns(text("securityGroup", "security_group_name"), text("insecurePorts", "insecure_ports"))),
	security("s3_public_buckets", "S3PublicBuckets",
		securityColumns(text("publicAccess", "is_public_policy"), text("publicAcl", "is_public_acls"))),
	security("inactive_users", "InactiveUsers",
		func() []Column {
			return []Column{text("userName", "user_name"), date("lastUsed", "last_used"), text("dataSource", "cloud_account_name")}
		}),
	security("inactive_console_users", "InactiveConsoleUsers",
		func() []Column {
			return []Column{text("userName", "user_name"), date("lastUsed", "last_used"), text("dataSource", "cloud_account_name")}
		}),
}

// Registry is the lookup table of descriptors keyed by type.
type Registry struct {
	byType map[string]Descriptor
}

// NewRegistry validates and indexes the given descriptors.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{byType: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if err := Validate(d); err != nil {
			return nil, err
		}
		if _, ok := r.byType[d.Type]; ok {
			return nil, fmt.Errorf("%w: duplicate type %s", ErrInvalidDescriptor, d.Type)
		}
		r.byType[d.Type] = d
	}
	return r, nil
}

var defaultRegistry = mustRegistry(builtins...)

func mustRegistry(descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns the registry of built-in recommendation types.
func Default() *Registry {
	return defaultRegistry
}

// Configure returns the descriptor of a type.
func (r *Registry) Configure(typ string) (Descriptor, error) {
	d, ok := r.byType[typ]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
	return d, nil
}

// ConfigureColumns returns the column spec of a type.
func (r *Registry) ConfigureColumns(typ string) ([]Column, error) {
	d, err := r.Configure(typ)
	if err != nil {
		return nil, err
	}
	return d.Columns(), nil
}

// All returns every descriptor ordered by type.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.byType))
	for _, d := range r.byType {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}
