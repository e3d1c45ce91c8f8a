package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/config"
	"costconsole/backend/jira"
	"costconsole/backend/models"
)

func TestNewJiraClient(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	_, err := NewJiraClient(ctx, config.JiraConfig{})
	assert.ErrorIs(t, err, jira.ErrNotConfigured)

	client, err := NewJiraClient(ctx, config.JiraConfig{BaseURL: "http://jira.local", SharedSecret: "s"})
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = SaveIntegration(ctx, models.IntegrationJira, "http://stored.local", "stored", "stored-secret")
	require.NoError(t, err)

	client, err = NewJiraClient(ctx, config.JiraConfig{})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
