package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a reusable shipping address saved for quick prefill of the
// invoice form. Records are created and deleted, never updated in place.
type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Label        string    `gorm:"size:255;not null" json:"label"`
	CustomerName *string   `gorm:"size:255" json:"customer_name,omitempty"`
	Address      string    `gorm:"type:text;not null" json:"address"`
	State        *string   `gorm:"size:100" json:"state,omitempty"`
	StateCode    *string   `gorm:"size:10" json:"state_code,omitempty"`
	GSTIN        *string   `gorm:"size:50" json:"gstin,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new address
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}
