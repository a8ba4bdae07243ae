package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testInvoice() Invoice {
	inv := Invoice{
		ID:     uuid.New(),
		Number: "INV-20250210-ABC123",
		Status: InvoicePending,
		Items: []InvoiceItem{
			{Description: "Sesión", Quantity: 2, Price: 300},
			{Description: "Impresiones", Quantity: 1, Price: 400},
		},
	}
	inv.RecalculateTotals()
	return inv
}

func TestRecalculateTotals(t *testing.T) {
	inv := testInvoice()
	if inv.Subtotal != 1000 {
		t.Fatalf("Subtotal = %v, want 1000", inv.Subtotal)
	}
	if inv.Total != 1000 {
		t.Fatalf("Total = %v, want 1000", inv.Total)
	}
	if inv.Items[0].Total != 600 {
		t.Fatalf("line total = %v, want 600", inv.Items[0].Total)
	}
	if inv.Balance != 1000 {
		t.Fatalf("Balance = %v, want 1000", inv.Balance)
	}
}

func TestRecalculateTotalsWithTaxAndDiscount(t *testing.T) {
	inv := testInvoice()
	inv.Tax = 160
	inv.Discount = 60
	inv.RecalculateTotals()
	if inv.Total != 1100 {
		t.Fatalf("Total = %v, want 1100", inv.Total)
	}
}

func TestApplyPartialPayment(t *testing.T) {
	inv := testInvoice()
	now := time.Now()

	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 400, Method: PaymentCash}, now)

	if inv.AmountPaid != 400 {
		t.Fatalf("AmountPaid = %v, want 400", inv.AmountPaid)
	}
	if inv.Balance != 600 {
		t.Fatalf("Balance = %v, want 600", inv.Balance)
	}
	if inv.Status != InvoicePending {
		t.Fatalf("partial payment changed status to %s", inv.Status)
	}
	if inv.PaidAt != nil {
		t.Fatal("PaidAt set on a partial payment")
	}
}

func TestApplyFinalPaymentClosesInvoice(t *testing.T) {
	inv := testInvoice()
	now := time.Now()

	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 400}, now)
	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 600}, now)

	if inv.Balance != 0 {
		t.Fatalf("Balance = %v, want 0", inv.Balance)
	}
	if inv.Status != InvoicePaid {
		t.Fatalf("Status = %s, want paid", inv.Status)
	}
	if inv.PaidAt == nil {
		t.Fatal("PaidAt not set")
	}
}

func TestApplyPaymentIdempotentPerID(t *testing.T) {
	inv := testInvoice()
	now := time.Now()
	p := PaymentRecord{ID: uuid.New(), Amount: 400}

	inv.ApplyPayment(p, now)
	inv.ApplyPayment(p, now)

	if inv.AmountPaid != 400 {
		t.Fatalf("replayed payment applied twice: AmountPaid = %v", inv.AmountPaid)
	}
	if len(inv.PaymentHistory) != 1 {
		t.Fatalf("payment history has %d entries, want 1", len(inv.PaymentHistory))
	}
}

func TestCentValuedPaymentsCloseExactly(t *testing.T) {
	inv := Invoice{
		ID:     uuid.New(),
		Status: InvoicePending,
		Items:  []InvoiceItem{{Description: "Servicio", Quantity: 3, Price: 33.33}},
	}
	inv.RecalculateTotals()
	now := time.Now()

	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 33.33}, now)
	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 33.33}, now)
	inv.ApplyPayment(PaymentRecord{ID: uuid.New(), Amount: 33.33}, now)

	if inv.Balance != 0 {
		t.Fatalf("Balance = %v, want exactly 0", inv.Balance)
	}
	if inv.Status != InvoicePaid {
		t.Fatalf("Status = %s, want paid", inv.Status)
	}
}

func TestMarkPaid(t *testing.T) {
	inv := testInvoice()
	now := time.Now()

	inv.MarkPaid(now)

	if inv.Balance != 0 || inv.AmountPaid != inv.Total {
		t.Fatalf("MarkPaid left balance %v, paid %v", inv.Balance, inv.AmountPaid)
	}
	if inv.Status != InvoicePaid || inv.PaidAt == nil {
		t.Fatalf("MarkPaid status %s, paidAt %v", inv.Status, inv.PaidAt)
	}
}
