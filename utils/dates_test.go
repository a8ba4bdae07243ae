package utils

import (
	"testing"
	"time"
)

func TestSerialRoundTrip(t *testing.T) {
	d := FromSerial(45000)
	if got := CanonicalDate(d); got != "2023-03-15" {
		t.Fatalf("FromSerial(45000) = %s, want 2023-03-15", got)
	}
	if got := ToSerial(d); got != 45000 {
		t.Fatalf("ToSerial(FromSerial(45000)) = %d, want 45000", got)
	}
}

func TestSerialRoundTripNonUTCZone(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC-6", -6*3600)
	defer func() { time.Local = orig }()

	d, ok := ParseFlexible("45000")
	if !ok {
		t.Fatal("ParseFlexible(\"45000\") failed")
	}
	if got := CanonicalDate(d); got != "2023-03-15" {
		t.Fatalf("serial in UTC-6 = %s, want 2023-03-15", got)
	}
	if got := ToSerial(d); got != 45000 {
		t.Fatalf("ToSerial(FromSerial(45000)) in UTC-6 = %d, want 45000", got)
	}

	// A bare date parsed as local midnight maps to the same serial
	bare, ok := ParseFlexible("2023-03-15")
	if !ok {
		t.Fatal("ParseFlexible(\"2023-03-15\") failed")
	}
	if got := ToSerial(bare); got != 45000 {
		t.Fatalf("ToSerial(local midnight) = %d, want 45000", got)
	}

	if got := FromSerial(45000.5).Hour(); got != 12 {
		t.Fatalf("FromSerial(45000.5).Hour() in UTC-6 = %d, want 12", got)
	}
}

func TestSerialFractionCarriesTimeOfDay(t *testing.T) {
	d := FromSerial(45000.5)
	if d.Hour() != 12 {
		t.Fatalf("FromSerial(45000.5).Hour() = %d, want 12", d.Hour())
	}
	if got := ToSerial(d); got != 45000 {
		t.Fatalf("ToSerial truncates to whole days, got %d, want 45000", got)
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 3, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(start, end); got != 2 {
		t.Fatalf("DaysBetween = %d, want 2", got)
	}
}

func TestParseFlexibleNumericSerial(t *testing.T) {
	d, ok := ParseFlexible("45000")
	if !ok {
		t.Fatal("ParseFlexible(\"45000\") failed")
	}
	if got := CanonicalDate(d); got != "2023-03-15" {
		t.Fatalf("ParseFlexible(\"45000\") = %s, want 2023-03-15", got)
	}
}

func TestParseFlexibleBareDateIsLocalMidnight(t *testing.T) {
	d, ok := ParseFlexible("2024-06-01")
	if !ok {
		t.Fatal("ParseFlexible(\"2024-06-01\") failed")
	}
	want := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.Local)
	if !d.Equal(want) {
		t.Fatalf("got %v, want %v", d, want)
	}
}

func TestParseFlexibleWithTimeComponent(t *testing.T) {
	for _, s := range []string{
		"2024-06-01T10:30",
		"2024-06-01T10:30:00",
	} {
		d, ok := ParseFlexible(s)
		if !ok {
			t.Fatalf("ParseFlexible(%q) failed", s)
		}
		if CanonicalDate(d) != "2024-06-01" || d.Hour() != 10 || d.Minute() != 30 {
			t.Fatalf("ParseFlexible(%q) = %v", s, d)
		}
	}
}

func TestParseFlexibleRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "   ", "mañana", "01/06/2024", "2024-13-01"} {
		if _, ok := ParseFlexible(s); ok {
			t.Fatalf("ParseFlexible(%q) unexpectedly succeeded", s)
		}
	}
}
