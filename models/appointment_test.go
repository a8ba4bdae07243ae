package models

import (
	"testing"

	"agendapro-backend/utils"
)

func TestNormalizeAdoptsLegacyColumns(t *testing.T) {
	a := Appointment{
		Date:                "2025-02-10",
		QuotedAmount:        1000,
		Collaborator:        "Ana",
		CollaboratorPayment: 200,
	}
	a.Normalize()

	if len(a.Collaborators) != 1 {
		t.Fatalf("got %d collaborators, want 1", len(a.Collaborators))
	}
	entry := a.Collaborators[0]
	if entry.Name != "Ana" || entry.Amount != 200 || entry.PaymentType != utils.CollaboratorPayment {
		t.Fatalf("adopted entry = %+v", entry)
	}
	if a.MyProfit != 800 {
		t.Fatalf("MyProfit = %v, want 800", a.MyProfit)
	}
}

func TestNormalizeMirrorsListIntoLegacyColumns(t *testing.T) {
	a := Appointment{
		Date:         "2025-02-10",
		QuotedAmount: 1000,
		Collaborators: CollaboratorList{
			{Name: "Bruno", Amount: 150, PaymentType: utils.CollaboratorPayment},
			{Name: "Caro", Amount: 50, PaymentType: utils.CollaboratorCharge},
		},
	}
	a.Normalize()

	if a.Collaborator != "Bruno" {
		t.Fatalf("legacy name = %q, want Bruno", a.Collaborator)
	}
	if a.CollaboratorPayment != 100 {
		t.Fatalf("legacy payment = %v, want net 100", a.CollaboratorPayment)
	}
	if a.MyProfit != 900 {
		t.Fatalf("MyProfit = %v, want 900", a.MyProfit)
	}
}

func TestNormalizeRecomputesStaleDerivedFields(t *testing.T) {
	a := Appointment{
		Date:         "2025-02-10",
		QuotedAmount: 500,
		Collaborators: CollaboratorList{
			{Name: "Ana", Amount: 100, PaymentType: utils.CollaboratorPayment},
		},
		// Stale cached values written by an older client
		MyProfit:            9999,
		CollaboratorPayment: -5,
	}
	a.Normalize()

	if a.MyProfit != 400 {
		t.Fatalf("MyProfit = %v, want 400", a.MyProfit)
	}
	if a.CollaboratorPayment != 100 {
		t.Fatalf("CollaboratorPayment = %v, want 100", a.CollaboratorPayment)
	}
}

func TestNormalizeDefaultsMissingPaymentType(t *testing.T) {
	a := Appointment{
		Date:          "2025-02-10",
		Collaborators: CollaboratorList{{Name: "Ana", Amount: 50}},
	}
	a.Normalize()
	if a.Collaborators[0].PaymentType != utils.CollaboratorPayment {
		t.Fatalf("PaymentType = %q, want payment", a.Collaborators[0].PaymentType)
	}
}

func TestNormalizeCanonicalizesSerialDate(t *testing.T) {
	a := Appointment{Date: "45000"}
	a.Normalize()
	if a.Date != "2023-03-15" {
		t.Fatalf("Date = %s, want 2023-03-15", a.Date)
	}
}

func TestNormalizeStatusAndPeopleCount(t *testing.T) {
	a := Appointment{Date: "2025-02-10", Status: "agendado", PeopleCount: 0}
	a.Normalize()
	if a.Status != AppointmentPending {
		t.Fatalf("Status = %s, want pending", a.Status)
	}
	if a.PeopleCount != 1 {
		t.Fatalf("PeopleCount = %d, want 1", a.PeopleCount)
	}
}

func TestBalanceDue(t *testing.T) {
	a := Appointment{QuotedAmount: 1500, Deposit: 500}
	if got := a.BalanceDue(); got != 1000 {
		t.Fatalf("BalanceDue = %v, want 1000", got)
	}
	a.Deposit = 2000
	if got := a.BalanceDue(); got != 0 {
		t.Fatalf("overpaid BalanceDue = %v, want 0", got)
	}
}
