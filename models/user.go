package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"agendapro-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null"`
	Phone    string

	BusinessName    string `gorm:"not null"`
	BusinessAddress string
	WorkingHours    JSONB `gorm:"type:jsonb;default:'{}'"`

	AppointmentReminders  bool `gorm:"default:true"`
	WhatsAppNotifications bool `gorm:"default:false"`
	SMSNotifications      bool `gorm:"default:false"`

	// Device-lock preferences, served to the client as one settings object.
	LockEnabled      bool   `gorm:"default:false"`
	PinHash          string `gorm:"default:''" json:"-"`
	PinAttempts      int    `gorm:"default:0" json:"-"`
	BiometricEnabled bool   `gorm:"default:false"`
	AutoLockMinutes  int    `gorm:"default:5"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = uuid.New()
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
