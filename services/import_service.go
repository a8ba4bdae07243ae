// services/import_service.go
package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Header fallbacks per logical field, tried in priority order. The first
// column present with a non-empty cell wins; a second pass retries each
// alias case-insensitively for files with rewritten headers.
var importHeaderAliases = map[string][]string{
	"date":                {"FECHA", "fecha", "date"},
	"time":                {"HORARIO", "hora", "time"},
	"client":              {"CLIENTE", "cliente", "client"},
	"service":             {"TIPO DE SERVICIO", "servicio", "service"},
	"location":            {"LUGAR", "ubicacion", "location"},
	"peopleCount":         {"CANT. PERSONAS", "personas", "peopleCount"},
	"quotedAmount":        {"MONTO COTIZACION", "monto", "quotedAmount"},
	"comments":            {"COMENTARIOS", "comentarios", "comments"},
	"status":              {"STATUS", "estatus", "status"},
	"bank":                {"BANCO", "banco", "bank"},
	"collaborator":        {"COLABORADOR", "colaborador", "collaborator"},
	"collaboratorPayment": {"PAGO COLABORADOR", "pago colaborador", "collaboratorPayment"},
	"myProfit":            {"MI GANANCIA", "ganancia", "myProfit"},
}

// ImportRow is one normalized spreadsheet row. Rows with errors are still
// returned with whatever data resolved, so the review screen can show them;
// only error-free rows are eligible for BulkCreate.
type ImportRow struct {
	Draft    models.Appointment `json:"data"`
	Errors   []string           `json:"errors"`
	RowIndex int                `json:"rowIndex"` // 1-based data row
}

type ImportService struct {
	db *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{db: db}
}

// ParseUpload reads an uploaded spreadsheet into raw rows. A file that
// cannot be parsed fails here as a whole; row-level problems are left to
// NormalizeRows.
func (s *ImportService) ParseUpload(r io.Reader, ext string) ([][]string, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		return reader.ReadAll()
	case ".xlsx", ".xls":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		rows, err := f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, errors.New("unsupported file type")
}

type headerIndex map[string]int

func buildHeaderIndex(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return idx
}

func (idx headerIndex) resolve(row []string, field string) string {
	for _, alias := range importHeaderAliases[field] {
		if i, ok := idx[alias]; ok && i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	for _, alias := range importHeaderAliases[field] {
		for h, i := range idx {
			if strings.EqualFold(h, alias) && i < len(row) {
				if v := strings.TrimSpace(row[i]); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// NormalizeRows maps raw spreadsheet rows (header row first) into
// appointment drafts with per-row errors. A bad cell never aborts the
// batch: the error is collected and the remaining fields keep resolving.
func (s *ImportService) NormalizeRows(records [][]string) []ImportRow {
	if len(records) < 2 {
		return nil
	}
	idx := buildHeaderIndex(records[0])

	out := make([]ImportRow, 0, len(records)-1)
	for n, row := range records[1:] {
		r := ImportRow{RowIndex: n + 1}
		draft := models.Appointment{
			PeopleCount: 1,
			Status:      models.AppointmentPending,
		}

		if v := idx.resolve(row, "date"); v == "" {
			r.Errors = append(r.Errors, "Fecha es requerida")
		} else if t, ok := utils.ParseFlexible(v); ok {
			draft.Date = utils.CanonicalDate(t)
		} else {
			r.Errors = append(r.Errors, "Fecha inválida: "+v)
		}

		if v := idx.resolve(row, "time"); v == "" {
			r.Errors = append(r.Errors, "Horario es requerido")
		} else {
			draft.Time = v
		}

		if v := idx.resolve(row, "client"); v == "" {
			r.Errors = append(r.Errors, "Cliente es requerido")
		} else {
			draft.ClientName = v
		}

		if v := idx.resolve(row, "service"); v == "" {
			r.Errors = append(r.Errors, "Servicio es requerido")
		} else {
			draft.ServiceName = v
		}

		draft.Location = idx.resolve(row, "location")
		draft.Comments = idx.resolve(row, "comments")
		draft.Bank = idx.resolve(row, "bank")
		draft.Collaborator = idx.resolve(row, "collaborator")
		// Unrecognized statuses silently fall back to pending.
		draft.Status = utils.NormalizeEnum(
			idx.resolve(row, "status"), models.AppointmentPending, models.AppointmentStatuses...)

		if v := idx.resolve(row, "peopleCount"); v != "" {
			if count, err := strconv.Atoi(v); err != nil || count < 1 {
				r.Errors = append(r.Errors, "Cant. personas inválida: "+v)
			} else {
				draft.PeopleCount = count
			}
		}

		draft.QuotedAmount = parseAmount(&r.Errors, "Monto cotización", idx.resolve(row, "quotedAmount"))
		draft.CollaboratorPayment = parseAmount(&r.Errors, "Pago colaborador", idx.resolve(row, "collaboratorPayment"))
		draft.MyProfit = parseAmount(&r.Errors, "Mi ganancia", idx.resolve(row, "myProfit"))

		r.Draft = draft
		out = append(out, r)
	}
	return out
}

// parseAmount coerces a money cell to a non-negative number, clamping to 0
// and recording an error when it does not parse.
func parseAmount(errs *[]string, label, value string) float64 {
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil || f < 0 {
		*errs = append(*errs, label+" inválido: "+value)
		return 0
	}
	return f
}

// ValidCount reports how many rows are eligible for import.
func ValidCount(rows []ImportRow) int {
	n := 0
	for _, r := range rows {
		if len(r.Errors) == 0 {
			n++
		}
	}
	return n
}

// BulkCreate inserts the error-free rows one by one in file order and
// reports how many were created vs skipped.
func (s *ImportService) BulkCreate(userID uuid.UUID, rows []ImportRow) (created, skipped int, err error) {
	for _, row := range rows {
		if len(row.Errors) > 0 {
			skipped++
			continue
		}
		appt := row.Draft
		appt.UserID = userID
		if err := s.db.Create(&appt).Error; err != nil {
			return created, skipped, fmt.Errorf("fila %d: %w", row.RowIndex, err)
		}
		created++
	}
	return created, skipped, nil
}
