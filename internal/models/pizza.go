package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Toppings groups a pizza's toppings by dietary category.
type Toppings struct {
	Meats    []string `json:"meats"`
	NonMeats []string `json:"nonMeats"`
}

// Value serializes toppings to JSON for storage.
func (t Toppings) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan deserializes toppings from their stored JSON form.
func (t *Toppings) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported toppings column type %T", value)
	}
}

// Pizza represents a catalog entry. Preset pizzas are shop-defined and
// visible to everyone; custom pizzas are authored by exactly one customer
// and visible only to their owner. Pizzas are immutable after creation.
type Pizza struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Crust     string    `json:"crust"`
	Sauce     string    `json:"sauce"`
	Size      int       `json:"size"`
	Toppings  Toppings  `json:"toppings" gorm:"type:text"`
	Price     int       `json:"price"` // minor currency units
	Custom    bool      `json:"custom"`
	OwnerID   *string   `json:"ownerId,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a document identifier when one was not supplied.
func (p *Pizza) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	// OwnerID is present iff the pizza is custom.
	if p.Custom && (p.OwnerID == nil || *p.OwnerID == "") {
		return fmt.Errorf("custom pizza requires an owner")
	}
	if !p.Custom {
		p.OwnerID = nil
	}
	return nil
}
