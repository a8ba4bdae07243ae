package services

import (
	"testing"
	"time"

	"agendapro-backend/models"
)

func TestBuildAgendaWorkbookIncludesPorCobrarWhenOwed(t *testing.T) {
	appointments := []models.Appointment{
		{
			Date: "2025-02-10", Time: "10:00", ClientName: "Ana",
			ServiceName: "Retrato", Status: models.AppointmentPending,
			PeopleCount: 1, QuotedAmount: 1500, Deposit: 500,
		},
		{
			Date: "2025-02-11", Time: "12:00", ClientName: "Bruno",
			ServiceName: "Evento", Status: models.AppointmentCompleted,
			PeopleCount: 3, QuotedAmount: 3000, Deposit: 1000,
		},
	}

	f, err := BuildAgendaWorkbook(appointments)
	if err != nil {
		t.Fatalf("BuildAgendaWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Agenda")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	header := rows[0]
	col := -1
	for i, h := range header {
		if h == "Por Cobrar" {
			col = i
		}
	}
	if col == -1 {
		t.Fatalf("Por Cobrar column missing: %v", header)
	}

	// Pending row shows the outstanding amount
	if rows[1][col] != "1000" {
		t.Fatalf("pending row Por Cobrar = %q, want 1000", rows[1][col])
	}
	// Completed row leaves the cell empty
	if col < len(rows[2]) && rows[2][col] != "" {
		t.Fatalf("completed row Por Cobrar = %q, want empty", rows[2][col])
	}
}

func TestBuildAgendaWorkbookOmitsPorCobrarWhenNothingOwed(t *testing.T) {
	appointments := []models.Appointment{
		{
			Date: "2025-02-11", Time: "12:00", ClientName: "Bruno",
			ServiceName: "Evento", Status: models.AppointmentCompleted,
			PeopleCount: 1, QuotedAmount: 3000, Deposit: 1000,
		},
		{
			Date: "2025-02-12", Time: "09:00", ClientName: "Caro",
			ServiceName: "Boda", Status: models.AppointmentPending,
			PeopleCount: 2, QuotedAmount: 2000, Deposit: 2000,
		},
	}

	f, err := BuildAgendaWorkbook(appointments)
	if err != nil {
		t.Fatalf("BuildAgendaWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Agenda")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	for _, h := range rows[0] {
		if h == "Por Cobrar" {
			t.Fatalf("Por Cobrar present with nothing owed: %v", rows[0])
		}
	}
}

func TestStatusLabels(t *testing.T) {
	if got := statusLabel(models.AppointmentConfirmed); got != "Confirmada" {
		t.Fatalf("statusLabel(confirmed) = %q", got)
	}
	// Unknown statuses pass through untranslated
	if got := statusLabel("weird"); got != "weird" {
		t.Fatalf("statusLabel(weird) = %q", got)
	}
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2025, time.March, 2, 15, 4, 0, 0, time.Local)
	if got := ExportFileName(now); got != "agenda_2025-03-02.xlsx" {
		t.Fatalf("ExportFileName = %q", got)
	}
}

func TestBuildImportTemplate(t *testing.T) {
	f, err := BuildImportTemplate()
	if err != nil {
		t.Fatalf("BuildImportTemplate: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Plantilla")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus example", len(rows))
	}
	if rows[0][0] != "FECHA" || rows[0][2] != "CLIENTE" {
		t.Fatalf("unexpected headers: %v", rows[0])
	}

	// The example row must round-trip through the import normalizer
	parsed := normalize(rows)
	if len(parsed) != 1 || len(parsed[0].Errors) != 0 {
		t.Fatalf("template example row does not import cleanly: %+v", parsed)
	}
}
