package utils

import (
	"math"
	"testing"
)

func TestProfitNeverNegative(t *testing.T) {
	shares := []CollaboratorShare{
		{Name: "Ana", Amount: 500, PaymentType: CollaboratorPayment},
	}
	if got := Profit(100, shares); got != 0 {
		t.Fatalf("Profit(100, payment 500) = %v, want 0", got)
	}
}

func TestProfitPaymentReducesChargeIncreases(t *testing.T) {
	payment := []CollaboratorShare{
		{Name: "Ana", Amount: 100, PaymentType: CollaboratorPayment},
	}
	if got := Profit(500, payment); got != 400 {
		t.Fatalf("Profit(500, payment 100) = %v, want 400", got)
	}

	charge := []CollaboratorShare{
		{Name: "Ana", Amount: 100, PaymentType: CollaboratorCharge},
	}
	if got := Profit(500, charge); got != 600 {
		t.Fatalf("Profit(500, charge 100) = %v, want 600", got)
	}
}

func TestNetCollaboratorCostMixedEntries(t *testing.T) {
	shares := []CollaboratorShare{
		{Name: "Ana", Amount: 150, PaymentType: CollaboratorPayment},
		{Name: "Bruno", Amount: 50, PaymentType: CollaboratorCharge},
		{Name: "Caro", Amount: 25}, // no type, defaults to payment
	}
	if got := NetCollaboratorCost(shares); got != 125 {
		t.Fatalf("NetCollaboratorCost = %v, want 125", got)
	}
}

func TestNetCollaboratorCostCanGoNegative(t *testing.T) {
	shares := []CollaboratorShare{
		{Name: "Ana", Amount: 200, PaymentType: CollaboratorCharge},
	}
	if got := NetCollaboratorCost(shares); got != -200 {
		t.Fatalf("NetCollaboratorCost = %v, want -200", got)
	}
}

func TestBalanceDue(t *testing.T) {
	if got := BalanceDue(1000, 300); got != 700 {
		t.Fatalf("BalanceDue(1000, 300) = %v, want 700", got)
	}
	if got := BalanceDue(300, 1000); got != 0 {
		t.Fatalf("BalanceDue(300, 1000) = %v, want 0", got)
	}
}

func TestNonFiniteAmountsTreatedAsZero(t *testing.T) {
	if got := BalanceDue(math.NaN(), 100); got != 0 {
		t.Fatalf("BalanceDue(NaN, 100) = %v, want 0", got)
	}
	shares := []CollaboratorShare{
		{Name: "Ana", Amount: math.Inf(1), PaymentType: CollaboratorPayment},
	}
	if got := Profit(500, shares); got != 500 {
		t.Fatalf("Profit(500, Inf payment) = %v, want 500", got)
	}
}
