package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company represents the tenant root; every other entity optionally scopes to
// one company.
type Company struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string      `json:"name" gorm:"type:varchar(255);not null"`
	Currency  string      `json:"currency" gorm:"type:varchar(3);not null;default:'USD'"`
	Timezone  string      `json:"timezone" gorm:"type:varchar(64);not null;default:'UTC'"`
	Country   string      `json:"country" gorm:"type:varchar(64)"`
	Settings  SettingsMap `json:"settings" gorm:"type:text"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
