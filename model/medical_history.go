package model

import (
	"time"

	"gorm.io/gorm"
)

// Activity level values accepted by MedicalHistory.ActivityLevel
const (
	ActivitySedentary  = "SEDENTARY"
	ActivityLight      = "LIGHT"
	ActivityModerate   = "MODERATE"
	ActivityActive     = "ACTIVE"
	ActivityVeryActive = "VERY_ACTIVE"
)

// Sleep duration buckets accepted by MedicalHistory.SleepDuration
const (
	SleepLessThan5 = "LESS_THAN_5"
	Sleep5To7      = "FIVE_TO_SEVEN"
	Sleep7To9      = "SEVEN_TO_NINE"
	SleepMoreThan9 = "MORE_THAN_9"
)

// MedicalHistory stores chronic conditions and lifestyle factors (one-to-one)
type MedicalHistory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`

	// Chronic conditions
	Diabetes       bool `gorm:"default:false" json:"diabetes"`
	Hypertension   bool `gorm:"default:false" json:"hypertension"`
	HeartCondition bool `gorm:"default:false" json:"heart_condition"`
	Thyroid        bool `gorm:"default:false" json:"thyroid"`

	// Lifestyle
	Smoking       bool   `gorm:"default:false" json:"smoking"`
	Alcohol       bool   `gorm:"default:false" json:"alcohol"`
	ActivityLevel string `gorm:"type:varchar(20);default:'SEDENTARY'" json:"activity_level"`
	SleepDuration string `gorm:"type:varchar(20)" json:"sleep_duration"`

	// Family history
	FamilyDiabetes      bool `gorm:"default:false" json:"family_diabetes"`
	FamilyHypertension  bool `gorm:"default:false" json:"family_hypertension"`
	FamilyHeartDisease  bool `gorm:"default:false" json:"family_heart_disease"`
	FamilyCancer        bool `gorm:"default:false" json:"family_cancer"`
	FamilyKidneyDisease bool `gorm:"default:false" json:"family_kidney_disease"`

	Allergies       string `gorm:"type:text" json:"allergies"`
	CurrentSymptoms string `gorm:"type:text" json:"current_symptoms"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for MedicalHistory
func (MedicalHistory) TableName() string {
	return "medical_histories"
}
