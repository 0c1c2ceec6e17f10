package model

import (
	"time"

	"gorm.io/gorm"
)

// SimplifiedReport stores a medical report upload together with its
// extracted text and plain-language explanation
type SimplifiedReport struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`

	OriginalFileName string `gorm:"type:varchar(255)" json:"original_file_name"`
	FileType         string `gorm:"type:varchar(20)" json:"file_type"` // "pdf" or "image"
	ImageURL         string `gorm:"type:varchar(512)" json:"image_url,omitempty"`
	ImageKey         string `gorm:"type:varchar(512)" json:"-"`

	ExtractedText         string `gorm:"type:text" json:"extracted_text"`
	SimplifiedExplanation string `gorm:"type:text" json:"simplified_explanation"`
	AIModel               string `gorm:"type:varchar(100)" json:"ai_model"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for SimplifiedReport
func (SimplifiedReport) TableName() string {
	return "simplified_reports"
}
