package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthLog is a dated vitals entry. BMI is derived from the logged weight
// and the profile height at write time.
type HealthLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`

	BloodPressureSystolic  *int     `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic,omitempty"`
	HeartRate              *int     `json:"heart_rate,omitempty"`
	BloodSugar             *float64 `json:"blood_sugar,omitempty"`
	Weight                 *float64 `json:"weight,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"`
	OxygenSaturation       *int     `json:"oxygen_saturation,omitempty"`
	BMI                    *float64 `json:"bmi,omitempty"`

	Notes   string         `gorm:"type:text" json:"notes"`
	LogDate datatypes.Date `gorm:"index;not null" json:"log_date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for HealthLog
func (HealthLog) TableName() string {
	return "health_logs"
}
