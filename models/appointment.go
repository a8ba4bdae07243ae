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

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

var AppointmentStatuses = []string{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentCompleted,
	AppointmentCancelled,
}

// CollaboratorList stores the ordered collaborator entries as jsonb.
type CollaboratorList []utils.CollaboratorShare

func (l CollaboratorList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(CollaboratorList{})
	}
	return json.Marshal(l)
}

func (l *CollaboratorList) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, l)
}

type Appointment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Date     string `gorm:"size:10;not null"` // YYYY-MM-DD
	Time     string `gorm:"size:5;not null"`  // HH:MM, 24-hour
	Location string

	ClientName  string     `gorm:"not null"`
	ClientID    *uuid.UUID `gorm:"type:uuid;index"`
	ServiceName string     `gorm:"not null"`

	PeopleCount int `gorm:"default:1"`

	QuotedAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Deposit      float64 `gorm:"type:decimal(10,2);default:0.0"`
	Bank         string

	Collaborators CollaboratorList `gorm:"type:jsonb;default:'[]'"`

	// Single-collaborator columns kept for readers that predate the list;
	// Collaborator mirrors entry 0, CollaboratorPayment holds the net cost.
	Collaborator        string
	CollaboratorPayment float64 `gorm:"type:decimal(10,2);default:0.0"`

	MyProfit float64 `gorm:"type:decimal(10,2);default:0.0"`

	Status   string `gorm:"type:varchar(20);default:'pending'"`
	Comments string `gorm:"size:500"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize is the single adapter between the legacy single-collaborator
// shape and the list, and the single recompute point for the derived money
// fields. It runs on every read and write so stored MyProfit and
// CollaboratorPayment are a cache of this computation, never an input.
func (a *Appointment) Normalize() {
	if t, ok := utils.ParseFlexible(a.Date); ok {
		a.Date = utils.CanonicalDate(t)
	}

	if len(a.Collaborators) == 0 && (a.Collaborator != "" || a.CollaboratorPayment != 0) {
		a.Collaborators = CollaboratorList{{
			Name:        a.Collaborator,
			Amount:      a.CollaboratorPayment,
			PaymentType: utils.CollaboratorPayment,
		}}
	}
	for i := range a.Collaborators {
		if a.Collaborators[i].PaymentType == "" {
			a.Collaborators[i].PaymentType = utils.CollaboratorPayment
		}
	}
	if len(a.Collaborators) > 0 {
		a.Collaborator = a.Collaborators[0].Name
	} else {
		a.Collaborator = ""
	}

	if a.PeopleCount < 1 {
		a.PeopleCount = 1
	}
	a.Status = utils.NormalizeEnum(a.Status, AppointmentPending, AppointmentStatuses...)

	a.CollaboratorPayment = utils.NetCollaboratorCost(a.Collaborators)
	a.MyProfit = utils.Profit(a.QuotedAmount, a.Collaborators)
}

// BalanceDue is the remainder after the deposit, never persisted.
func (a *Appointment) BalanceDue() float64 {
	return utils.BalanceDue(a.QuotedAmount, a.Deposit)
}

func (a *Appointment) BeforeSave(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Normalize()
	return
}

func (a *Appointment) AfterFind(tx *gorm.DB) (err error) {
	a.Normalize()
	return
}
