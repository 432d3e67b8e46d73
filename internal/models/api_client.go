package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// APIClient is an OAuth2 client for machine integrations (POS terminals,
// back-office tooling). Secrets are stored as bcrypt hashes.
type APIClient struct {
	ID          string `gorm:"primaryKey"`
	Secret      string `gorm:"not null"`
	Name        string
	Domain      string
	UserID      string // owning user, for admin management
	Scopes      string // space-separated list of allowed scopes
	GrantTypes  string // space-separated list: "authorization_code client_credentials"
	RedirectURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (APIClient) TableName() string {
	return "api_clients"
}

// GetID implements oauth2.ClientInfo.
func (c *APIClient) GetID() string {
	return c.ID
}

// GetSecret implements oauth2.ClientInfo.
func (c *APIClient) GetSecret() string {
	return c.Secret
}

// GetDomain implements oauth2.ClientInfo.
func (c *APIClient) GetDomain() string {
	return c.Domain
}

// GetUserID implements oauth2.ClientInfo.
func (c *APIClient) GetUserID() string {
	return c.UserID
}

// IsPublic implements oauth2.ClientInfo.
func (c *APIClient) IsPublic() bool {
	return false
}

// VerifyPassword implements oauth2.ClientPasswordVerifier so the token
// endpoint can check plaintext secrets against the stored bcrypt hash.
func (c *APIClient) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(password)) == nil
}
