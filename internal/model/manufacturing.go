package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductionOrderStatus is the lifecycle state of a production order.
type ProductionOrderStatus string

const (
	ProductionOrderStatusPlanned    ProductionOrderStatus = "planned"
	ProductionOrderStatusInProgress ProductionOrderStatus = "in_progress"
	ProductionOrderStatusDone       ProductionOrderStatus = "done"
	ProductionOrderStatusCancelled  ProductionOrderStatus = "cancelled"
)

// WorkCenter represents a manufacturing resource
type WorkCenter struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Capacity    float64   `json:"capacity" gorm:"default:0"`
	Efficiency  float64   `json:"efficiency" gorm:"default:1.0"`
	CompanyID   *string   `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company     *Company  `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (w *WorkCenter) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// ProductionOrder represents a manufacturing order for a product
type ProductionOrder struct {
	ID          string                `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderNumber string                `json:"order_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Quantity    int                   `json:"quantity" gorm:"not null;default:1"`
	Status      ProductionOrderStatus `json:"status" gorm:"type:varchar(20);not null;default:'planned'"`
	Priority    string                `json:"priority" gorm:"type:varchar(20);default:'normal'"`
	StartDate   *time.Time            `json:"start_date,omitempty"`
	EndDate     *time.Time            `json:"end_date,omitempty"`
	CompanyID   *string               `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company     *Company              `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	ProductID   string                `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Product     *Product              `json:"product,omitempty" gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (p *ProductionOrder) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// WorkOrder represents one operation of a production order executed on a
// work center.
type WorkOrder struct {
	ID                string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Description       string           `json:"description" gorm:"type:text"`
	Status            string           `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	PlannedHours      float64          `json:"planned_hours" gorm:"default:0"`
	ActualHours       float64          `json:"actual_hours" gorm:"default:0"`
	StartDate         *time.Time       `json:"start_date,omitempty"`
	EndDate           *time.Time       `json:"end_date,omitempty"`
	CompanyID         *string          `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company           *Company         `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	ProductionOrderID string           `json:"production_order_id" gorm:"type:varchar(36);index;not null"`
	ProductionOrder   *ProductionOrder `json:"production_order,omitempty" gorm:"foreignKey:ProductionOrderID;constraint:OnDelete:RESTRICT"`
	WorkCenterID      string           `json:"work_center_id" gorm:"type:varchar(36);index;not null"`
	WorkCenter        *WorkCenter      `json:"work_center,omitempty" gorm:"foreignKey:WorkCenterID;constraint:OnDelete:RESTRICT"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (w *WorkOrder) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
