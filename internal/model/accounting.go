package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountType classifies a chart-of-accounts node.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// ChartOfAccount represents one node of the account tree. Parent references
// must form a forest; the store rejects cycles.
type ChartOfAccount struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Code      string          `json:"code" gorm:"type:varchar(20);uniqueIndex;not null"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Type      AccountType     `json:"type" gorm:"type:varchar(20);not null"`
	IsActive  bool            `json:"is_active" gorm:"default:true"`
	CompanyID *string         `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company   *Company        `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	ParentID  *string         `json:"parent_id,omitempty" gorm:"type:varchar(36);index"`
	Parent    *ChartOfAccount `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (c *ChartOfAccount) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Transaction represents a financial movement. ReferenceKind plus ReferenceID
// form a tagged pointer validated against the entity-kind registry; it is not
// a database foreign key.
type Transaction struct {
	ID                string            `json:"id" gorm:"primaryKey;type:varchar(36)"`
	TransactionNumber string            `json:"transaction_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Type              string            `json:"type" gorm:"type:varchar(30)"`
	Amount            decimal.Decimal   `json:"amount" gorm:"type:decimal(18,4)"`
	Date              *time.Time        `json:"date,omitempty"`
	CategoryID        *string           `json:"category_id,omitempty" gorm:"type:varchar(36)"`
	ReferenceKind     Kind              `json:"reference_kind,omitempty" gorm:"type:varchar(30)"`
	ReferenceID       string            `json:"reference_id,omitempty" gorm:"type:varchar(36)"`
	Status            TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CompanyID         *string           `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company           *Company          `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedByID       *string           `json:"created_by_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedBy         *User             `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
