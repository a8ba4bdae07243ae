// models/invoice.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	InvoiceDraft     = "draft"
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

var InvoiceStatuses = []string{InvoiceDraft, InvoicePending, InvoicePaid, InvoiceCancelled}

const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentTransfer, PaymentOther}

type Invoice struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	// Display identifier, timestamp-suffixed; not guaranteed globally unique.
	Number string `gorm:"not null"`

	// Client snapshot at creation time.
	ClientID      *uuid.UUID `gorm:"type:uuid;index"`
	ClientName    string     `gorm:"not null"`
	ClientEmail   string
	ClientAddress string

	Date    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	DueDate *time.Time

	Status string `gorm:"type:varchar(10);default:'draft'"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	Subtotal   float64 `gorm:"type:decimal(10,2);default:0.0"`
	Tax        float64 `gorm:"type:decimal(10,2);default:0.0"`
	Discount   float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total      float64 `gorm:"type:decimal(10,2);default:0.0"`
	AmountPaid float64 `gorm:"type:decimal(10,2);default:0.0"`
	Balance    float64 `gorm:"type:decimal(10,2);default:0.0"`

	PaymentHistory []PaymentRecord `gorm:"foreignKey:InvoiceID"`

	Notes  string
	PaidAt *time.Time

	gorm.Model
}

type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null"`
	Quantity    int       `gorm:"default:1"`
	Price       float64   `gorm:"type:decimal(10,2);not null"`
	Tax         float64   `gorm:"type:decimal(10,2);default:0.0"`
	Total       float64   `gorm:"type:decimal(10,2);not null"`
}

// PaymentRecord rows are append-only; no handler updates or deletes them.
type PaymentRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	Method    string    `gorm:"type:varchar(10);default:'cash'"`
	Date      time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	Reference string
	Notes     string
	CreatedAt time.Time
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return
}

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// RecalculateTotals reapplies the invoice arithmetic after any mutation:
// each line total is price × quantity, total = subtotal + tax − discount,
// balance = total − amountPaid. Decimal-backed so cents stay exact.
func (inv *Invoice) RecalculateTotals() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		line := decimal.NewFromFloat(inv.Items[i].Price).
			Mul(decimal.NewFromInt(int64(inv.Items[i].Quantity))).
			Round(2)
		inv.Items[i].Total, _ = line.Float64()
		subtotal = subtotal.Add(line)
	}
	inv.Subtotal, _ = subtotal.Round(2).Float64()

	total := subtotal.
		Add(decimal.NewFromFloat(inv.Tax)).
		Sub(decimal.NewFromFloat(inv.Discount)).
		Round(2)
	inv.Total, _ = total.Float64()

	balance := total.Sub(decimal.NewFromFloat(inv.AmountPaid)).Round(2)
	inv.Balance, _ = balance.Float64()
}

// ApplyPayment records one payment against the invoice, idempotently per
// payment id. Callers must have validated 0 < amount ≤ balance before
// calling. The paid transition compares the new balance to zero in decimal,
// so a sequence of cent-valued payments that sums to the total always
// closes the invoice.
func (inv *Invoice) ApplyPayment(p PaymentRecord, now time.Time) {
	for _, prev := range inv.PaymentHistory {
		if prev.ID == p.ID {
			return // already recorded
		}
	}

	amount := decimal.NewFromFloat(p.Amount).Round(2)
	paid := decimal.NewFromFloat(inv.AmountPaid).Add(amount).Round(2)
	inv.AmountPaid, _ = paid.Float64()

	balance := decimal.NewFromFloat(inv.Total).Sub(paid).Round(2)
	inv.Balance, _ = balance.Float64()

	inv.PaymentHistory = append(inv.PaymentHistory, p)

	if balance.IsZero() {
		inv.Status = InvoicePaid
		t := now
		inv.PaidAt = &t
	}
}

// MarkPaid closes the invoice by explicit manual action.
func (inv *Invoice) MarkPaid(now time.Time) {
	inv.AmountPaid = inv.Total
	inv.Balance = 0
	inv.Status = InvoicePaid
	t := now
	inv.PaidAt = &t
}
