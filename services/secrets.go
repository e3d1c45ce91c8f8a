package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"costconsole/backend/database"
	"costconsole/backend/models"
	"costconsole/backend/security"
)

// SaveIntegration stores the connection of an external tool, encrypting its shared secret
func SaveIntegration(ctx context.Context, typ, baseURL, issuer, secret string) (*models.Integration, error) {
	encrypted, err := security.Encrypt(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s secret: %w", typ, err)
	}

	now := time.Now().UTC()
	integration := &models.Integration{
		ID:              uuid.NewString(),
		Type:            typ,
		BaseURL:         baseURL,
		Issuer:          issuer,
		EncryptedSecret: encrypted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err = database.DB.NamedExecContext(ctx, `
		INSERT INTO integrations (id, type, base_url, issuer, encrypted_secret, created_at, updated_at)
		VALUES (:id, :type, :base_url, :issuer, :encrypted_secret, :created_at, :updated_at)
		ON CONFLICT (type) DO UPDATE SET
			base_url = excluded.base_url,
			issuer = excluded.issuer,
			encrypted_secret = excluded.encrypted_secret,
			updated_at = excluded.updated_at
	`, integration)
	if err != nil {
		return nil, fmt.Errorf("error storing %s integration: %w", typ, err)
	}

	return GetIntegration(ctx, typ)
}

// GetIntegration returns the stored integration of a type
func GetIntegration(ctx context.Context, typ string) (*models.Integration, error) {
	var integration models.Integration
	err := database.DB.GetContext(ctx, &integration, database.DB.Rebind(`
		SELECT id, type, base_url, issuer, encrypted_secret, created_at, updated_at
		FROM integrations WHERE type = ?
	`), typ)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s integration: %w", typ, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s integration: %w", typ, err)
	}
	return &integration, nil
}

// GetIntegrationSecret returns the decrypted shared secret of an integration
func GetIntegrationSecret(ctx context.Context, typ string) (string, error) {
	integration, err := GetIntegration(ctx, typ)
	if err != nil {
		return "", err
	}
	secret, err := security.Decrypt(integration.EncryptedSecret)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s secret: %w", typ, err)
	}
	return secret, nil
}
