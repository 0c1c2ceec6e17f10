package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered user in the system
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"` // Never expose password in JSON
	EmailVerified     bool           `gorm:"default:false" json:"email_verified"`
	VerificationToken *string        `gorm:"index" json:"-"`
	ResetToken        *string        `gorm:"index" json:"-"`
	ResetTokenExpiry  *time.Time     `json:"-"`
	LastLoginAt       *time.Time     `json:"last_login_at,omitempty"`

	// Relationships
	Profile           *Profile           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	MedicalHistory    *MedicalHistory    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"medical_history,omitempty"`
	Detections        []DetectionHistory `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ChatMessages      []ChatMessage      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Medications       []Medication       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	HealthLogs        []HealthLog        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SimplifiedReports []SimplifiedReport `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist    []TokenBlacklist   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
