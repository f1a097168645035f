package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Passkey is a shared secret that gates access to the tool. Only a bcrypt
// hash is kept at rest. This is an operator convenience, not a security
// boundary.
type Passkey struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	KeyHash   string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new passkey
func (p *Passkey) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Passkey model
func (Passkey) TableName() string {
	return "passkeys"
}
