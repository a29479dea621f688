package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a catalog item. Quantity is an on-hand counter, not a
// stock ledger.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	SKU         string          `json:"sku" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    string          `json:"category" gorm:"type:varchar(100)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(18,4)"`
	Cost        decimal.Decimal `json:"cost" gorm:"type:decimal(18,4)"`
	Quantity    int             `json:"quantity" gorm:"default:0"`
	Unit        string          `json:"unit" gorm:"type:varchar(20);not null;default:'pcs'"`
	IsActive    bool            `json:"is_active" gorm:"default:true"`
	CompanyID   *string         `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company     *Company        `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
