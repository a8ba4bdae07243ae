package services

import (
	"strings"
	"testing"

	"agendapro-backend/models"

	"github.com/google/uuid"
)

func normalize(records [][]string) []ImportRow {
	return NewImportService(nil).NormalizeRows(records)
}

func TestNormalizeRowsMissingClient(t *testing.T) {
	rows := normalize([][]string{
		{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO"},
		{"2025-02-10", "14:30", "", "Sesión fotográfica"},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	found := false
	for _, e := range rows[0].Errors {
		if strings.Contains(e, "Cliente") {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors %v do not mention Cliente", rows[0].Errors)
	}
	if ValidCount(rows) != 0 {
		t.Fatalf("row with errors counted as valid")
	}
}

func TestNormalizeRowsNegativeAmountClampedWithError(t *testing.T) {
	rows := normalize([][]string{
		{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO", "MONTO COTIZACION"},
		{"2025-02-10", "10:00", "Ana", "Retrato", "1500"},
		{"2025-02-11", "11:00", "Bruno", "Evento", "-200"},
		{"2025-02-12", "12:00", "Caro", "Boda", "3000"},
	})
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if got := ValidCount(rows); got != 2 {
		t.Fatalf("ValidCount = %d, want 2", got)
	}
	bad := rows[1]
	if len(bad.Errors) != 1 || !strings.Contains(bad.Errors[0], "-200") {
		t.Fatalf("row 2 errors: %v", bad.Errors)
	}
	if bad.Draft.QuotedAmount != 0 {
		t.Fatalf("negative amount not clamped to 0: %v", bad.Draft.QuotedAmount)
	}
	// The other fields of the bad row still resolved
	if bad.Draft.ClientName != "Bruno" || bad.Draft.Date != "2025-02-11" {
		t.Fatalf("bad row lost unrelated fields: %+v", bad.Draft)
	}
}

func TestNormalizeRowsHeaderAliasesCaseInsensitive(t *testing.T) {
	rows := normalize([][]string{
		{"Fecha", "hora", "cliente", "servicio"},
		{"2025-02-10", "14:30", "Ana", "Retrato"},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	r := rows[0]
	if len(r.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors)
	}
	if r.Draft.ClientName != "Ana" || r.Draft.Time != "14:30" || r.Draft.ServiceName != "Retrato" {
		t.Fatalf("aliases did not resolve: %+v", r.Draft)
	}
}

func TestNormalizeRowsSerialDateCell(t *testing.T) {
	rows := normalize([][]string{
		{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO"},
		{"45000", "09:00", "Ana", "Retrato"},
	})
	if rows[0].Draft.Date != "2023-03-15" {
		t.Fatalf("serial date = %s, want 2023-03-15", rows[0].Draft.Date)
	}
}

func TestNormalizeRowsUnknownStatusFallsBack(t *testing.T) {
	rows := normalize([][]string{
		{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO", "STATUS"},
		{"2025-02-10", "09:00", "Ana", "Retrato", "agendado"},
		{"2025-02-11", "10:00", "Bruno", "Evento", "CONFIRMED"},
	})
	if rows[0].Draft.Status != models.AppointmentPending {
		t.Fatalf("unknown status = %s, want pending", rows[0].Draft.Status)
	}
	if rows[1].Draft.Status != models.AppointmentConfirmed {
		t.Fatalf("uppercase status = %s, want confirmed", rows[1].Draft.Status)
	}
	// Status fallback is silent
	if len(rows[0].Errors) != 0 {
		t.Fatalf("status fallback produced errors: %v", rows[0].Errors)
	}
}

func TestNormalizeRowsHeaderOnly(t *testing.T) {
	rows := normalize([][]string{{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO"}})
	if rows != nil {
		t.Fatalf("header-only file produced rows: %v", rows)
	}
}

func TestParseUploadCSV(t *testing.T) {
	csv := "FECHA,HORARIO,CLIENTE,TIPO DE SERVICIO\n2025-02-10,14:30,Ana,Retrato\n"
	records, err := NewImportService(nil).ParseUpload(strings.NewReader(csv), ".csv")
	if err != nil {
		t.Fatalf("ParseUpload: %v", err)
	}
	if len(records) != 2 || records[1][2] != "Ana" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestBulkCreateCountsSkippedRows(t *testing.T) {
	rows := normalize([][]string{
		{"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO"},
		{"2025-02-10", "10:00", "", "Retrato"},
		{"", "11:00", "Bruno", "Evento"},
	})
	if ValidCount(rows) != 0 {
		t.Fatalf("expected no valid rows, got %d", ValidCount(rows))
	}

	created, skipped, err := NewImportService(nil).BulkCreate(uuid.New(), rows)
	if err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}
	if created != 0 || skipped != 2 {
		t.Fatalf("created %d, skipped %d, want 0 and 2", created, skipped)
	}
}

func TestParseUploadRejectsUnknownExtension(t *testing.T) {
	if _, err := NewImportService(nil).ParseUpload(strings.NewReader("x"), ".pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
