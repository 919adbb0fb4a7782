package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account known to the API. Role holds the backend role string
// ("ROLE_CHEF", ...); clients map it to a simple role.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email     string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	FullName  string         `gorm:"size:255" json:"fullName,omitempty"`
	Password  string         `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed
	Role      string         `gorm:"size:50;not null;default:'ROLE_EMPLOYEE'" json:"role"`
}
