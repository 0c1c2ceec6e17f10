package model

import (
	"time"

	"gorm.io/gorm"
)

// Chat message roles
const (
	RoleUser      = "USER"
	RoleAssistant = "ASSISTANT"
)

// ChatMessage is one turn of the health-assistant conversation. Messages are
// append-only; the only mutation is a per-user bulk delete.
type ChatMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`

	Role    string `gorm:"type:varchar(20);not null" json:"role"`
	Message string `gorm:"type:text;not null" json:"message"`

	// Context holds the patient snapshot the assistant answered with
	Context JSONMap `gorm:"type:jsonb" json:"context,omitempty"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ChatMessage
func (ChatMessage) TableName() string {
	return "chat_messages"
}
