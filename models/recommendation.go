package models

import "time"

// Recommendation is one optimization found for one resource
type Recommendation struct {
	ID             string    `json:"id" db:"id"`
	Type           string    `json:"type" db:"type"`
	ResourceID     string    `json:"resource_id" db:"resource_id"`
	ResourceName   string    `json:"resource_name" db:"resource_name"`
	CloudAccountID string    `json:"cloud_account_id" db:"cloud_account_id"`
	Region         *string   `json:"region" db:"region"`
	PoolID         *string   `json:"pool_id" db:"pool_id"`
	OwnerID        *string   `json:"owner_id" db:"owner_id"`
	Saving         float64   `json:"saving" db:"saving"`
	Status         string    `json:"status" db:"status"`
	DetectedAt     time.Time `json:"detected_at" db:"detected_at"`
}
