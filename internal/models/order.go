package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order records a single placed order. An order links one user to one
// pizza (preset or custom) and is never mutated or deleted afterwards.
type Order struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	UserID   string    `json:"userId" gorm:"index;not null"`
	PizzaID  string    `json:"pizzaId" gorm:"not null"`
	PlacedAt time.Time `json:"placedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
