package services

import (
	"context"
	"errors"

	"costconsole/backend/config"
	"costconsole/backend/jira"
	"costconsole/backend/models"
)

// NewJiraClient builds a Jira client from the stored integration, falling back
// to the configured settings when none has been saved
func NewJiraClient(ctx context.Context, fallback config.JiraConfig) (*jira.Client, error) {
	integration, err := GetIntegration(ctx, models.IntegrationJira)
	if errors.Is(err, ErrNotFound) {
		return jira.NewClient(fallback)
	}
	if err != nil {
		return nil, err
	}

	secret, err := GetIntegrationSecret(ctx, models.IntegrationJira)
	if err != nil {
		return nil, err
	}

	cfg := fallback
	cfg.BaseURL = integration.BaseURL
	cfg.SharedSecret = secret
	if integration.Issuer != "" {
		cfg.Issuer = integration.Issuer
	}
	return jira.NewClient(cfg)
}
