package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/filters"
	"costconsole/backend/recommendations"
)

func TestGetRecommendations(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		typ      string
		applied  filters.Applied
		expected []string
	}{
		{"All of a type", "obsolete_images", nil, []string{"rc1", "rc2"}},
		{"Single pool", "obsolete_images", filters.Applied{"pool": {"p1"}}, []string{"rc1"}},
		{"Pool subtree", "obsolete_images", filters.Applied{"pool": {"p1*"}}, []string{"rc1", "rc2"}},
		{"Owner", "obsolete_images", filters.Applied{"owner": {"e2"}}, []string{"rc2"}},
		{"Dismissed items are hidden", "obsolete_ips", nil, []string{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := GetRecommendations(ctx, tc.typ, tc.applied)
			require.NoError(t, err)
			ids := []string{}
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}

	_, err := GetRecommendations(ctx, "unknown_type", nil)
	assert.ErrorIs(t, err, recommendations.ErrUnknownType)

	_, err = GetRecommendations(ctx, "obsolete_images", filters.Applied{"tag": {"env"}})
	assert.ErrorIs(t, err, ErrUnsupportedFilter)
}

func TestRecommendationSummaries(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	results, err := GetRecommendationSummaries(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	require.NoError(t, RefreshRecommendationSummaries(ctx))
	// refreshing twice replaces the snapshot
	require.NoError(t, RefreshRecommendationSummaries(ctx))

	results, err = GetRecommendationSummaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []recommendations.Result{
		{Type: "insecure_security_groups", Count: 1, Saving: 0, Status: "active"},
		{Type: "obsolete_images", Count: 2, Saving: 20, Status: "active"},
		{Type: "obsolete_ips", Count: 1, Saving: 3, Status: "dismissed"},
		{Type: "rightsizing_instances", Count: 1, Saving: 40, Status: "active"},
	}, results)

	byCategory, err := GroupRecommendationSummaries(ctx, recommendations.GroupByCategory)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, recommendations.CategoryCost, byCategory[0].Key)
	assert.Equal(t, 4, byCategory[0].Count)
	assert.InDelta(t, 63, byCategory[0].Saving, 1e-9)
	assert.Equal(t, recommendations.CategorySecurity, byCategory[1].Key)

	byStatus, err := GroupRecommendationSummaries(ctx, recommendations.GroupByStatus)
	require.NoError(t, err)
	require.Len(t, byStatus, 2)
	assert.Equal(t, "active", byStatus[0].Key)
	assert.Equal(t, 4, byStatus[0].Count)

	_, err = GroupRecommendationSummaries(ctx, "owner")
	assert.ErrorIs(t, err, recommendations.ErrUnknownGrouping)
}
