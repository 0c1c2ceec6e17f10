package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Medication is a user-managed medication entry with optional reminders
type Medication struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`

	Name      string     `gorm:"type:varchar(200);not null" json:"name"`
	Dosage    string     `gorm:"type:varchar(100)" json:"dosage"`
	Frequency string     `gorm:"type:varchar(100)" json:"frequency"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	// ReminderTimes is a JSON array of "HH:MM" strings
	ReminderTimes datatypes.JSON `gorm:"type:jsonb" json:"reminder_times,omitempty"`

	Notes       string `gorm:"type:text" json:"notes"`
	SideEffects string `gorm:"type:text" json:"side_effects"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Medication
func (Medication) TableName() string {
	return "medications"
}
