package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusClosed    ProjectStatus = "closed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

// Project represents a customer or internal project
type Project struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Status      ProjectStatus   `json:"status" gorm:"type:varchar(20);not null;default:'planning'"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget" gorm:"type:decimal(18,4)"`
	CompanyID   *string         `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company     *Company        `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	ManagerID   *string         `json:"manager_id,omitempty" gorm:"type:varchar(36);index"`
	Manager     *User           `json:"manager,omitempty" gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT"`
	CustomerID  *string         `json:"customer_id,omitempty" gorm:"type:varchar(36);index"`
	Customer    *Partner        `json:"customer,omitempty" gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
