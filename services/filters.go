package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"costconsole/backend/database"
	"costconsole/backend/filters"
	"costconsole/backend/models"
	"costconsole/backend/searchparams"
)

const savedFilterColumns = "id, name, user_id, resource_type, filter_config, is_default, created_at, updated_at"

// ValidateFilterConfig checks that a stored query string decodes and that every
// filter value in it passes its applied schema.
func ValidateFilterConfig(reg *filters.Registry, filterConfig string) error {
	params, err := searchparams.Decode(filterConfig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilterConfig, err)
	}
	if _, err := searchparams.ToApplied(reg, params); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFilterConfig, err)
	}
	return nil
}

// CreateSavedFilter creates a new saved filter
func CreateSavedFilter(ctx context.Context, userID string, req models.SavedFilterRequest) (*models.SavedFilter, error) {
	if !models.IsValidResourceType(req.ResourceType) {
		return nil, fmt.Errorf("%w: unknown resource type %q", ErrInvalidFilterConfig, req.ResourceType)
	}
	if err := ValidateFilterConfig(filters.Default(), req.FilterConfig); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	filter := &models.SavedFilter{
		ID:           uuid.NewString(),
		Name:         req.Name,
		UserID:       userID,
		ResourceType: req.ResourceType,
		FilterConfig: req.FilterConfig,
		IsDefault:    req.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := database.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Only one default per user and resource type
	if filter.IsDefault {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE saved_filters SET is_default = ?
			WHERE user_id = ? AND resource_type = ?
		`), false, userID, filter.ResourceType)
		if err != nil {
			return nil, fmt.Errorf("failed to update existing default filters: %w", err)
		}
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO saved_filters (id, name, user_id, resource_type, filter_config, is_default, created_at, updated_at)
		VALUES (:id, :name, :user_id, :resource_type, :filter_config, :is_default, :created_at, :updated_at)
	`, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saved filter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saved filter: %w", err)
	}
	return filter, nil
}

// GetSavedFilters retrieves the saved filters of a user for one resource type
func GetSavedFilters(ctx context.Context, userID, resourceType string) ([]models.SavedFilter, error) {
	saved := []models.SavedFilter{}
	err := database.DB.SelectContext(ctx, &saved, database.DB.Rebind(`
		SELECT `+savedFilterColumns+`
		FROM saved_filters
		WHERE user_id = ? AND resource_type = ?
		ORDER BY name
	`), userID, resourceType)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved filters: %w", err)
	}
	return saved, nil
}

// GetSavedFilterByID retrieves a saved filter by ID
func GetSavedFilterByID(ctx context.Context, id string) (*models.SavedFilter, error) {
	var filter models.SavedFilter
	err := database.DB.GetContext(ctx, &filter, database.DB.Rebind(`
		SELECT `+savedFilterColumns+` FROM saved_filters WHERE id = ?
	`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("saved filter %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query saved filter: %w", err)
	}
	return &filter, nil
}

// GetDefaultFilter retrieves the default filter for a user and resource type.
// It returns nil when the user has no default.
func GetDefaultFilter(ctx context.Context, userID, resourceType string) (*models.SavedFilter, error) {
	var filter models.SavedFilter
	err := database.DB.GetContext(ctx, &filter, database.DB.Rebind(`
		SELECT `+savedFilterColumns+`
		FROM saved_filters
		WHERE user_id = ? AND resource_type = ? AND is_default = ?
	`), userID, resourceType, true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query default filter: %w", err)
	}
	return &filter, nil
}

// UpdateSavedFilter updates the name, configuration and default flag of a saved filter
func UpdateSavedFilter(ctx context.Context, id string, req models.SavedFilterRequest) (*models.SavedFilter, error) {
	filter, err := GetSavedFilterByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateFilterConfig(filters.Default(), req.FilterConfig); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx, err := database.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if req.IsDefault {
		_, err = tx.ExecContext(ctx, tx.Rebind(`
			UPDATE saved_filters SET is_default = ?
			WHERE user_id = ? AND resource_type = ? AND id != ?
		`), false, filter.UserID, filter.ResourceType, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update existing default filters: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, tx.Rebind(`
		UPDATE saved_filters
		SET name = ?, filter_config = ?, is_default = ?, updated_at = ?
		WHERE id = ?
	`), req.Name, req.FilterConfig, req.IsDefault, now, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update saved filter: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saved filter: %w", err)
	}

	filter.Name = req.Name
	filter.FilterConfig = req.FilterConfig
	filter.IsDefault = req.IsDefault
	filter.UpdatedAt = now
	return filter, nil
}

// DeleteSavedFilter deletes a saved filter
func DeleteSavedFilter(ctx context.Context, id string) error {
	result, err := database.DB.ExecContext(ctx, database.DB.Rebind("DELETE FROM saved_filters WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete saved filter: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("saved filter %s: %w", id, ErrNotFound)
	}
	return nil
}
