package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds demographic and biometric data for a user (one-to-one)
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`

	FirstName   string    `gorm:"type:varchar(100)" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100)" json:"last_name"`
	Gender      string    `gorm:"type:varchar(20)" json:"gender"`
	DateOfBirth time.Time `json:"date_of_birth"`

	// Age and BMI are derived at write time from DateOfBirth and Height/Weight.
	// Every writer must recompute them together with their source fields.
	Age    int     `json:"age"`
	Height float64 `json:"height"` // centimeters
	Weight float64 `json:"weight"` // kilograms
	BMI    float64 `json:"bmi"`

	Phone                 string `gorm:"type:varchar(20)" json:"phone"`
	Address               string `gorm:"type:text" json:"address"`
	City                  string `gorm:"type:varchar(100)" json:"city"`
	State                 string `gorm:"type:varchar(100)" json:"state"`
	Pincode               string `gorm:"type:varchar(10)" json:"pincode"`
	EmergencyContactName  string `gorm:"type:varchar(200)" json:"emergency_contact_name"`
	EmergencyContactPhone string `gorm:"type:varchar(20)" json:"emergency_contact_phone"`
	HealthGoal            string `gorm:"type:text" json:"health_goal"`
	ProfilePicture        string `gorm:"type:varchar(512)" json:"profile_picture"`
	ProfilePictureKey     string `gorm:"type:varchar(512)" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Profile
func (Profile) TableName() string {
	return "profiles"
}
