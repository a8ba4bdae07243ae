// services/export_service.go
package services

import (
	"time"

	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/xuri/excelize/v2"
)

const agendaSheet = "Agenda"

var appointmentStatusLabels = map[string]string{
	models.AppointmentPending:   "Pendiente",
	models.AppointmentConfirmed: "Confirmada",
	models.AppointmentCompleted: "Completada",
	models.AppointmentCancelled: "Cancelada",
}

func statusLabel(status string) string {
	if label, ok := appointmentStatusLabels[status]; ok {
		return label
	}
	return status
}

// ExportFileName returns the download name for an agenda export.
func ExportFileName(now time.Time) string {
	return "agenda_" + utils.CanonicalDate(now) + ".xlsx"
}

// porCobrar is the outstanding amount shown in exports, only meaningful
// while the appointment can still be collected.
func porCobrar(a models.Appointment) float64 {
	if a.Status != models.AppointmentPending && a.Status != models.AppointmentConfirmed {
		return 0
	}
	return a.BalanceDue()
}

// BuildAgendaWorkbook renders one row per appointment, in the order given
// (callers pass the filtered, sorted list the user is looking at). The
// "Por Cobrar" column is present only when at least one row has a positive
// balance due with a pending or confirmed status; spreadsheets downstream
// key on that conditional column set.
func BuildAgendaWorkbook(appointments []models.Appointment) (*excelize.File, error) {
	includePorCobrar := false
	for _, a := range appointments {
		if porCobrar(a) > 0 {
			includePorCobrar = true
			break
		}
	}

	headers := []string{
		"Fecha", "Hora", "Cliente", "Servicio", "Estado",
		"Personas", "Ubicación", "Monto Cotizado", "Abono",
	}
	if includePorCobrar {
		headers = append(headers, "Por Cobrar")
	}
	headers = append(headers,
		"Mi Ganancia", "Pago Colaborador", "Colaborador",
		"Banco", "Comentarios", "Creado", "Actualizado",
	)

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", agendaSheet); err != nil {
		return nil, err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(agendaSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, a := range appointments {
		values := []interface{}{
			a.Date, a.Time, a.ClientName, a.ServiceName, statusLabel(a.Status),
			a.PeopleCount, a.Location, a.QuotedAmount, a.Deposit,
		}
		if includePorCobrar {
			if v := porCobrar(a); v > 0 {
				values = append(values, v)
			} else {
				values = append(values, "")
			}
		}
		values = append(values,
			a.MyProfit, a.CollaboratorPayment, a.Collaborator,
			a.Bank, a.Comments,
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.UpdatedAt.Format("2006-01-02 15:04"),
		)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(agendaSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// BuildImportTemplate returns a single-example-row workbook with the
// canonical uppercase headers, for users to fill in.
func BuildImportTemplate() (*excelize.File, error) {
	headers := []string{
		"FECHA", "HORARIO", "CLIENTE", "TIPO DE SERVICIO", "LUGAR",
		"CANT. PERSONAS", "MONTO COTIZACION", "COMENTARIOS", "STATUS",
	}
	example := []interface{}{
		"2025-01-15", "14:30", "Juan Pérez", "Sesión fotográfica",
		"Estudio Centro", 2, 1500, "Confirmar lugar un día antes", "pending",
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Plantilla"); err != nil {
		return nil, err
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Plantilla", cell, h); err != nil {
			return nil, err
		}
	}
	for col, v := range example {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue("Plantilla", cell, v); err != nil {
			return nil, err
		}
	}
	return f, nil
}
