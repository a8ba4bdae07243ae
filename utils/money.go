// utils/money.go
package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// CollaboratorShare is one third-party entry on an appointment. PaymentType
// "payment" means money owed to the collaborator; "charge" means money
// collected from them. Entries written before charges existed have no
// PaymentType and are read as "payment".
type CollaboratorShare struct {
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"paymentType"`
}

const (
	CollaboratorPayment = "payment"
	CollaboratorCharge  = "charge"
)

func safeAmount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// BalanceDue returns the amount still owed after the deposit, never negative.
func BalanceDue(quoted, deposit float64) float64 {
	due := safeAmount(quoted).Sub(safeAmount(deposit))
	if due.IsNegative() {
		return 0
	}
	f, _ := due.Round(2).Float64()
	return f
}

// NetCollaboratorCost sums payments owed to collaborators minus charges
// collected from them. A negative result means the appointment nets a gain
// from its collaborators.
func NetCollaboratorCost(shares []CollaboratorShare) float64 {
	net := decimal.Zero
	for _, s := range shares {
		amt := safeAmount(s.Amount)
		if s.PaymentType == CollaboratorCharge {
			net = net.Sub(amt)
		} else {
			net = net.Add(amt)
		}
	}
	f, _ := net.Round(2).Float64()
	return f
}

// Profit is the quoted amount minus the net collaborator cost, clamped at 0.
func Profit(quoted float64, shares []CollaboratorShare) float64 {
	p := safeAmount(quoted).Sub(decimal.NewFromFloat(NetCollaboratorCost(shares)))
	if p.IsNegative() {
		return 0
	}
	f, _ := p.Round(2).Float64()
	return f
}
