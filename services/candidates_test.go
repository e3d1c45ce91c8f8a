package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/filters"
)

func labels(def *filters.Definition, items []filters.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = def.GetDisplayedValueString(item, filters.Options{})
	}
	return out
}

func TestLoadFilterValues(t *testing.T) {
	setupTestDB(t)
	reg := filters.Default()
	ctx := context.Background()

	testCases := []struct {
		filter   string
		expected []string
	}{
		{"pool", []string{"Acme", "Eng", "ML Platform", "Sales"}},
		{"owner", []string{filters.NotSetLabel, "Alice", "Bob"}},
		{"dataSource", []string{"AWS Prod", "Azure Dev"}},
		{"region", []string{filters.NotSetLabel, "us-east-1", "westeurope"}},
		{"task", []string{"Churn model", "Forecast"}},
	}
	for _, tc := range testCases {
		t.Run(tc.filter, func(t *testing.T) {
			items, err := LoadFilterValues(ctx, reg, tc.filter)
			require.NoError(t, err)
			def, err := reg.Get(tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, labels(def, items))
		})
	}
}

func TestLoadFilterValuesUnknownFilter(t *testing.T) {
	setupTestDB(t)
	_, err := LoadFilterValues(context.Background(), filters.Default(), "nope")
	assert.ErrorIs(t, err, filters.ErrUnknownFilter)
}

func TestLoadCandidatesAll(t *testing.T) {
	setupTestDB(t)
	reg := filters.Default()

	candidates, err := LoadCandidates(context.Background(), reg)
	require.NoError(t, err)
	assert.Len(t, candidates, len(reg.Names()))
	for _, name := range reg.Names() {
		assert.NotNil(t, candidates[name], "candidates of %s should be loaded", name)
	}

	view := filters.New(reg, candidates, filters.Applied{
		"pool":         {"p1*"},
		"resourceType": {"K8s:cluster"},
		"region":       {"nowhere"},
	})
	chips := view.AppliedItems()
	require.Len(t, chips, 2)
	assert.Equal(t, "Eng (with sub-pools)", chips[0].DisplayedValueString)
	assert.Equal(t, "K8s (cluster)", chips[1].DisplayedValueString)
	assert.Equal(t, filters.Applied{"region": {"nowhere"}}, view.Stale())
}
