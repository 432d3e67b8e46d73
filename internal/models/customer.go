package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer holds the contact and delivery profile for a registered user.
// At most one Customer exists per user account.
type Customer struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	UserID           string    `json:"userId" gorm:"uniqueIndex;not null"`
	Name             string    `json:"name"`
	Telephone        string    `json:"telephone"`
	StreetAddress    string    `json:"streetAddress"`
	SecondaryAddress string    `json:"secondaryAddress"`
	City             string    `json:"city"`
	State            string    `json:"state"`
	ZipCode          string    `json:"zipCode"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
