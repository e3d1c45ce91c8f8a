package models

import "time"

// Integration is a connected external tool
type Integration struct {
	ID              string    `json:"id" db:"id"`
	Type            string    `json:"type" db:"type"`
	BaseURL         string    `json:"baseUrl" db:"base_url"`
	Issuer          string    `json:"issuer" db:"issuer"`
	EncryptedSecret string    `json:"-" db:"encrypted_secret"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
