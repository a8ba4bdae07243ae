package config

import (
	"os"
	"strconv"
)

// SecurityState holds the app-wide device-lock policy. It is loaded once at
// startup; per-account preferences on the User row override it.
type SecurityState struct {
	LockAvailable          bool
	DefaultAutoLockMinutes int
	MaxPinAttempts         int
}

var Security SecurityState

func LoadSecurityState() {
	Security = SecurityState{
		LockAvailable:          os.Getenv("LOCK_DISABLED") != "true",
		DefaultAutoLockMinutes: envInt("LOCK_AUTO_MINUTES", 5),
		MaxPinAttempts:         envInt("LOCK_MAX_PIN_ATTEMPTS", 5),
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
