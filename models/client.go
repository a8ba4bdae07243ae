package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name    string `gorm:"not null"`
	Email   string `gorm:"size:120"`
	Phone   string `gorm:"size:30"`
	Address string `gorm:"size:200"`
	Notes   string `gorm:"size:500"`

	gorm.Model
}

func (cl *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if cl.ID == uuid.Nil {
		cl.ID = uuid.New()
	}
	return
}
