package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate holds the message sent the day before an appointment.
// Placeholders: [ClientName], [Service], [Time].
type ReminderTemplate struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Message  string    `gorm:"type:text;not null"`
	IsActive bool      `gorm:"default:true"`
	gorm.Model
}
