package controllers

import (
	"testing"

	"agendapro-backend/config"
)

func TestPinLocked(t *testing.T) {
	orig := config.Security
	defer func() { config.Security = orig }()

	config.Security.MaxPinAttempts = 5
	if pinLocked(4) {
		t.Fatal("locked before the budget is spent")
	}
	if !pinLocked(5) {
		t.Fatal("not locked at the attempt limit")
	}
	if !pinLocked(6) {
		t.Fatal("not locked past the attempt limit")
	}

	// A budget of 0 disables the lockout
	config.Security.MaxPinAttempts = 0
	if pinLocked(100) {
		t.Fatal("lockout active with a zero budget")
	}
}
