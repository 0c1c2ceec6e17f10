package model

import (
	"time"

	"gorm.io/gorm"
)

// Risk levels assigned to detections and overall assessments
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Review status of a detection record
const (
	StatusPendingReview = "PENDING_REVIEW"
	StatusReviewed      = "REVIEWED"
)

// DetectionHistory records one classified scan upload. All fields except
// Status and UserNotes are immutable after creation.
type DetectionHistory struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`

	DetectionType    string `gorm:"type:varchar(50);index;not null" json:"detection_type"`
	ImageURL         string `gorm:"type:varchar(512)" json:"image_url"`
	ImageKey         string `gorm:"type:varchar(512)" json:"-"`
	OriginalFilename string `gorm:"type:varchar(255)" json:"original_filename"`
	ImageSize        int64  `json:"image_size"`

	Prediction    string        `gorm:"type:varchar(100)" json:"prediction"`
	Confidence    float64       `json:"confidence"`
	Probabilities Probabilities `gorm:"type:jsonb" json:"probabilities"`
	ModelVersion  string        `gorm:"type:varchar(100)" json:"model_version"`

	RiskLevel     string  `gorm:"type:varchar(20)" json:"risk_level"`
	RiskScore     float64 `json:"risk_score"`
	AISuggestions string  `gorm:"type:text" json:"ai_suggestions"`

	Status    string `gorm:"type:varchar(20);default:'PENDING_REVIEW'" json:"status"`
	UserNotes string `gorm:"type:text" json:"user_notes"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for DetectionHistory
func (DetectionHistory) TableName() string {
	return "detection_histories"
}
