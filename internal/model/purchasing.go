package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PurchaseOrderStatus is the lifecycle state of a purchase order.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusConfirmed PurchaseOrderStatus = "confirmed"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrder represents an order placed with a supplier partner
type PurchaseOrder struct {
	ID                   string              `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber          string              `json:"order_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	OrderDate            *time.Time          `json:"order_date,omitempty"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date,omitempty"`
	Status               PurchaseOrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	Subtotal             decimal.Decimal     `json:"subtotal" gorm:"type:decimal(18,4)"`
	Tax                  decimal.Decimal     `json:"tax" gorm:"type:decimal(18,4)"`
	Total                decimal.Decimal     `json:"total" gorm:"type:decimal(18,4)"`
	CompanyID            *string             `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company              *Company            `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	SupplierID           string              `json:"supplier_id" gorm:"type:varchar(36);index;not null"`
	Supplier             *Partner            `json:"supplier,omitempty" gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
