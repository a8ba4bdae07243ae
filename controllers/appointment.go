// controllers/appointment.go
package controllers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/services"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateAppointmentInput defines the expected JSON structure for creating an appointment
type CreateAppointmentInput struct {
	Date         string                    `json:"date" binding:"required"`
	Time         string                    `json:"time" binding:"required"`
	Location     string                    `json:"location"`
	ClientName   string                    `json:"clientName" binding:"required"`
	ClientID     *uuid.UUID                `json:"clientId"`
	ServiceName  string                    `json:"serviceName" binding:"required"`
	PeopleCount  int                       `json:"peopleCount" binding:"omitempty,min=1"`
	QuotedAmount float64                   `json:"quotedAmount" binding:"min=0"`
	Deposit      float64                   `json:"deposit" binding:"min=0"`
	Bank         string                    `json:"bank"`
	Collaborator []utils.CollaboratorShare `json:"collaborators"`
	Status       string                    `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Comments     string                    `json:"comments" binding:"max=500"`
}

// UpdateAppointmentInput defines the expected JSON structure for updating an appointment
type UpdateAppointmentInput struct {
	Date         *string                    `json:"date"`
	Time         *string                    `json:"time"`
	Location     *string                    `json:"location"`
	ClientName   *string                    `json:"clientName"`
	ClientID     *uuid.UUID                 `json:"clientId"`
	ServiceName  *string                    `json:"serviceName"`
	PeopleCount  *int                       `json:"peopleCount" binding:"omitempty,min=1"`
	QuotedAmount *float64                   `json:"quotedAmount" binding:"omitempty,min=0"`
	Deposit      *float64                   `json:"deposit" binding:"omitempty,min=0"`
	Bank         *string                    `json:"bank"`
	Collaborator *[]utils.CollaboratorShare `json:"collaborators"`
	Status       *string                    `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
	Comments     *string                    `json:"comments" binding:"omitempty,max=500"`
}

// CreateAppointment creates a new appointment for the account
func CreateAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, parsed := utils.ParseFlexible(input.Date); !parsed {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
		return
	}
	if !utils.ValidateClockTime(input.Time) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format, expected HH:MM")
		return
	}

	if input.ClientID != nil {
		var client models.Client
		if err := config.DB.Where("user_id = ? AND id = ?", userID, *input.ClientID).
			First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	appt := models.Appointment{
		UserID:        userID,
		Date:          input.Date,
		Time:          input.Time,
		Location:      input.Location,
		ClientName:    input.ClientName,
		ClientID:      input.ClientID,
		ServiceName:   input.ServiceName,
		PeopleCount:   input.PeopleCount,
		QuotedAmount:  input.QuotedAmount,
		Deposit:       input.Deposit,
		Bank:          input.Bank,
		Collaborators: models.CollaboratorList(input.Collaborator),
		Status:        input.Status,
		Comments:      input.Comments,
	}

	// Derived money fields and legacy mirror are set in BeforeSave
	if err := config.DB.Create(&appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, appt)
}

// appointmentQuery applies the shared list semantics: text search over
// client/service/status, status filter, inclusive date range (rows whose
// date does not parse are dropped from range filters), then field sort
// with empty values last. Pagination is left to the caller.
func appointmentQuery(c *gin.Context, appointments []models.Appointment) []models.Appointment {
	search := c.Query("search")
	status := c.Query("status")
	from, fromOK := utils.ParseFlexible(c.Query("from"))
	to, toOK := utils.ParseFlexible(c.Query("to"))

	filtered := utils.Filter(appointments, func(a models.Appointment) bool {
		if !utils.MatchText(search, a.ClientName, a.ServiceName, a.Status) {
			return false
		}
		if !utils.MatchStatus(status, a.Status) {
			return false
		}
		if fromOK || toOK {
			d, parsed := utils.ParseFlexible(a.Date)
			if !parsed {
				return false
			}
			if fromOK && d.Before(utils.BeginningOfDay(from)) {
				return false
			}
			if toOK && d.After(utils.BeginningOfDay(to).Add(24*time.Hour-time.Nanosecond)) {
				return false
			}
		}
		return true
	})

	dir := utils.SortDir(c.DefaultQuery("sortDir", string(utils.SortAsc)))
	sortBy := c.DefaultQuery("sortBy", "date")
	return utils.SortBy(filtered, dir, appointmentSortKey(sortBy))
}

func appointmentSortKey(field string) func(models.Appointment) (any, bool) {
	return func(a models.Appointment) (any, bool) {
		switch field {
		case "time":
			return a.Time, a.Time != ""
		case "client":
			return a.ClientName, a.ClientName != ""
		case "service":
			return a.ServiceName, a.ServiceName != ""
		case "status":
			return a.Status, a.Status != ""
		case "quotedAmount":
			return a.QuotedAmount, true
		case "createdAt":
			return a.CreatedAt, true
		default: // date
			return a.Date, a.Date != ""
		}
	}
}

// GetAppointments lists appointments with search, filters, sort and paging
func GetAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Where("user_id = ?", userID).Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	filtered := appointmentQuery(c, appointments)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(utils.DefaultPageSize)))
	c.JSON(http.StatusOK, utils.Paginate(filtered, page, perPage))
}

// GetAppointment retrieves a specific appointment by ID
func GetAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var appt models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userID, apptUUID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}

// UpdateAppointment updates an existing appointment
func UpdateAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appt models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userID, apptUUID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Date != nil {
		if _, parsed := utils.ParseFlexible(*input.Date); !parsed {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format")
			return
		}
		appt.Date = *input.Date
	}
	if input.Time != nil {
		if !utils.ValidateClockTime(*input.Time) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid time format, expected HH:MM")
			return
		}
		appt.Time = *input.Time
	}
	if input.Location != nil {
		appt.Location = *input.Location
	}
	if input.ClientName != nil {
		appt.ClientName = *input.ClientName
	}
	if input.ClientID != nil {
		appt.ClientID = input.ClientID
	}
	if input.ServiceName != nil {
		appt.ServiceName = *input.ServiceName
	}
	if input.PeopleCount != nil {
		appt.PeopleCount = *input.PeopleCount
	}
	if input.QuotedAmount != nil {
		appt.QuotedAmount = *input.QuotedAmount
	}
	if input.Deposit != nil {
		appt.Deposit = *input.Deposit
	}
	if input.Bank != nil {
		appt.Bank = *input.Bank
	}
	if input.Collaborator != nil {
		appt.Collaborators = models.CollaboratorList(*input.Collaborator)
		// Force the legacy mirror to resync from the new list
		appt.Collaborator = ""
		appt.CollaboratorPayment = 0
	}
	if input.Status != nil {
		appt.Status = *input.Status
	}
	if input.Comments != nil {
		appt.Comments = *input.Comments
	}

	// Derived fields are recomputed in BeforeSave; stored values are never trusted
	if err := config.DB.Save(&appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appt)
}

// UpdateAppointmentStatusInput defines the inline status change payload
type UpdateAppointmentStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed completed cancelled"`
}

// UpdateAppointmentStatus changes only the status of an appointment
func UpdateAppointmentStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var appt models.Appointment
	if err := config.DB.Where("user_id = ? AND id = ?", userID, apptUUID).
		First(&appt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	appt.Status = input.Status
	if err := config.DB.Save(&appt).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appt)
}

// DeleteAppointment removes an appointment permanently
func DeleteAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	apptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, apptUUID).
		Delete(&models.Appointment{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Appointment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}

// ExportAppointments streams the visible (filtered) agenda as an xlsx file
func ExportAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var appointments []models.Appointment
	if err := config.DB.Where("user_id = ?", userID).Find(&appointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointments")
		return
	}

	// Same filters as the list screen, no paging: export what the user sees
	filtered := appointmentQuery(c, appointments)

	f, err := services.BuildAgendaWorkbook(filtered)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build export file")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFileName(time.Now())+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write export file")
		return
	}
}

// ImportAppointments parses an uploaded spreadsheet and returns the per-row
// review. With form field commit=true the error-free rows are persisted.
func ImportAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext != ".xlsx" && ext != ".xls" && ext != ".csv" {
		utils.RespondWithError(c, http.StatusBadRequest, "Unsupported file type, expected .xlsx, .xls or .csv")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to open file")
		return
	}
	defer file.Close()

	importer := services.NewImportService(config.DB)
	records, err := importer.ParseUpload(file, ext)
	if err != nil {
		// Whole-file failure: nothing row-level happened
		utils.RespondWithError(c, http.StatusBadRequest, "No se pudo leer el archivo")
		return
	}

	rows := importer.NormalizeRows(records)
	validCount := services.ValidCount(rows)
	response := gin.H{
		"rows":       rows,
		"validCount": validCount,
		"errorCount": len(rows) - validCount,
	}

	if c.PostForm("commit") != "true" {
		c.JSON(http.StatusOK, response)
		return
	}

	if validCount == 0 {
		response["message"] = "El archivo no contiene filas válidas"
		c.JSON(http.StatusOK, response)
		return
	}

	created, skipped, err := importer.BulkCreate(userID, rows)
	if err != nil {
		// Rows before the failure are already inserted; report how far we got
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to import appointments",
			"created": created,
			"skipped": skipped,
		})
		return
	}
	response["created"] = created
	response["skipped"] = skipped
	c.JSON(http.StatusOK, response)
}

// DownloadImportTemplate streams the example import spreadsheet
func DownloadImportTemplate(c *gin.Context) {
	f, err := services.BuildImportTemplate()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build template")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="plantilla_agenda.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to write template")
		return
	}
}
