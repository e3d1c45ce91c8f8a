package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"costconsole/backend/models"
)

func TestIntegrationSecrets(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()

	_, err := GetIntegration(ctx, models.IntegrationJira)
	assert.ErrorIs(t, err, ErrNotFound)

	saved, err := SaveIntegration(ctx, models.IntegrationJira, "https://jira.example.com", "costconsole", "first-secret")
	require.NoError(t, err)
	assert.NotEqual(t, "first-secret", saved.EncryptedSecret)

	// saving again replaces the connection in place
	again, err := SaveIntegration(ctx, models.IntegrationJira, "https://jira2.example.com", "costconsole", "second-secret")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, "https://jira2.example.com", again.BaseURL)

	secret, err := GetIntegrationSecret(ctx, models.IntegrationJira)
	require.NoError(t, err)
	assert.Equal(t, "second-secret", secret)
}
