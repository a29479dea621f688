package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PartnerType classifies an external counterparty.
type PartnerType string

const (
	PartnerTypeCustomer PartnerType = "customer"
	PartnerTypeSupplier PartnerType = "supplier"
	PartnerTypeBoth     PartnerType = "both"
)

// Partner represents an external counterparty. The customer and supplier
// flags are independent; a partner may be either, both, or neither.
type Partner struct {
	ID         string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string      `json:"name" gorm:"type:varchar(255);index;not null"`
	Type       PartnerType `json:"type" gorm:"type:varchar(20)"`
	Email      string      `json:"email" gorm:"type:varchar(100)"`
	Phone      string      `json:"phone" gorm:"type:varchar(40)"`
	Address    string      `json:"address" gorm:"type:text"`
	City       string      `json:"city" gorm:"type:varchar(64)"`
	State      string      `json:"state" gorm:"type:varchar(64)"`
	Country    string      `json:"country" gorm:"type:varchar(64)"`
	PostalCode string      `json:"postal_code" gorm:"type:varchar(20)"`
	IsCustomer bool        `json:"is_customer" gorm:"default:false"`
	IsSupplier bool        `json:"is_supplier" gorm:"default:false"`
	TaxID      string      `json:"tax_id" gorm:"type:varchar(50)"`
	Website    string      `json:"website" gorm:"type:varchar(255)"`
	Notes      string      `json:"notes" gorm:"type:text"`
	CompanyID  *string     `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company    *Company    `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
