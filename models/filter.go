package models

import "time"

// SavedFilter is a named filter preset for a specific resource type
type SavedFilter struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UserID       string    `json:"userId" db:"user_id"`
	ResourceType string    `json:"resourceType" db:"resource_type"`
	FilterConfig string    `json:"filterConfig" db:"filter_config"` // query string of applied filters
	IsDefault    bool      `json:"isDefault" db:"is_default"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// SavedFilterRequest is the body of create and update requests
type SavedFilterRequest struct {
	Name         string `json:"name"`
	ResourceType string `json:"resourceType"`
	FilterConfig string `json:"filterConfig"`
	IsDefault    bool   `json:"isDefault"`
}
