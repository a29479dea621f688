package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RoleAdmin is the role tag that marks the administrative user.
const RoleAdmin = "admin"

// User represents the authentication principal
type User struct {
	ID        string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username  string      `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email     string      `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string      `json:"name" gorm:"type:varchar(255)"`
	Password  string      `json:"-" gorm:"type:varchar(255)"`
	IsActive  bool        `json:"is_active" gorm:"default:true"`
	Roles     StringList  `json:"roles" gorm:"type:text"`
	Settings  SettingsMap `json:"settings" gorm:"type:text"`
	CompanyID *string     `json:"company_id,omitempty" gorm:"type:varchar(36);index"`
	Company   *Company    `json:"company,omitempty" gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BeforeCreate assigns an opaque identifier when none was provided
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword hashes and stores the given clear-text password.
func (u *User) SetPassword(clear string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword verifies a clear-text password against the stored hash.
func (u *User) CheckPassword(clear string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(clear)) == nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Roles.Contains(RoleAdmin)
}
