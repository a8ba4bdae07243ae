// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceItemInput defines the structure for an invoice line
type InvoiceItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Tax         float64 `json:"tax" binding:"min=0"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	ClientID *uuid.UUID         `json:"clientId"`
	Date     *time.Time         `json:"date"`
	DueDate  *time.Time         `json:"dueDate"`
	Items    []InvoiceItemInput `json:"items" binding:"required,min=1,dive"`
	Tax      float64            `json:"tax" binding:"min=0"`
	Discount float64            `json:"discount" binding:"min=0"`
	Status   string             `json:"status" binding:"omitempty,oneof=draft pending paid cancelled"`
	Notes    string             `json:"notes"`

	// Snapshot fields, used when no clientId is given
	ClientName    string `json:"clientName"`
	ClientEmail   string `json:"clientEmail"`
	ClientAddress string `json:"clientAddress"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	ClientID *uuid.UUID          `json:"clientId"`
	Date     *time.Time          `json:"date"`
	DueDate  *time.Time          `json:"dueDate"`
	Items    *[]InvoiceItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Tax      *float64            `json:"tax" binding:"omitempty,min=0"`
	Discount *float64            `json:"discount" binding:"omitempty,min=0"`
	Status   *string             `json:"status" binding:"omitempty,oneof=draft pending paid cancelled"`
	Notes    *string             `json:"notes"`
}

// RecordPaymentInput defines the payload for registering a payment
type RecordPaymentInput struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"omitempty,oneof=cash card transfer other"`
	Reference string  `json:"reference"`
	Notes     string  `json:"notes"`
}

func buildInvoiceItems(inputs []InvoiceItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.InvoiceItem{
			ID:          uuid.New(),
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
			Tax:         in.Tax,
		})
	}
	return items
}

// snapshotClient copies the client's contact data onto the invoice so the
// document stays stable if the client record changes later
func snapshotClient(invoice *models.Invoice, userID uuid.UUID, clientID uuid.UUID) (int, string) {
	var client models.Client
	if err := config.DB.Where("user_id = ? AND id = ?", userID, clientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusBadRequest, "Client not found"
		}
		return http.StatusInternalServerError, "Database error"
	}
	invoice.ClientID = &client.ID
	invoice.ClientName = client.Name
	invoice.ClientEmail = client.Email
	invoice.ClientAddress = client.Address
	return 0, ""
}

// CreateInvoice creates a new invoice for the account
func CreateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice := models.Invoice{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          time.Now(),
		Status:        input.Status,
		Tax:           input.Tax,
		Discount:      input.Discount,
		Notes:         input.Notes,
		ClientName:    input.ClientName,
		ClientEmail:   input.ClientEmail,
		ClientAddress: input.ClientAddress,
		Items:         buildInvoiceItems(input.Items),
	}
	if invoice.Status == "" {
		invoice.Status = models.InvoiceDraft
	}
	if input.Date != nil {
		invoice.Date = *input.Date
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}

	if input.ClientID != nil {
		if code, msg := snapshotClient(&invoice, userID, *input.ClientID); code != 0 {
			utils.RespondWithError(c, code, msg)
			return
		}
	}

	invoice.Number = "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
	invoice.RecalculateTotals()

	if err := config.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists invoices with search, status filter, sort and paging
func GetInvoices(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := config.DB.Preload("Items").Preload("PaymentHistory").
		Where("user_id = ?", userID).
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	search := c.Query("search")
	status := c.Query("status")
	filtered := utils.Filter(invoices, func(inv models.Invoice) bool {
		return utils.MatchText(search, inv.Number, inv.ClientName, inv.ClientEmail) &&
			utils.MatchStatus(status, inv.Status)
	})

	dir := utils.SortDir(c.DefaultQuery("sortDir", string(utils.SortDesc)))
	sortBy := c.DefaultQuery("sortBy", "date")
	filtered = utils.SortBy(filtered, dir, func(inv models.Invoice) (any, bool) {
		switch sortBy {
		case "number":
			return inv.Number, inv.Number != ""
		case "client":
			return inv.ClientName, inv.ClientName != ""
		case "total":
			return inv.Total, true
		case "balance":
			return inv.Balance, true
		case "status":
			return inv.Status, inv.Status != ""
		default:
			return inv.Date, true
		}
	})

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(utils.DefaultPageSize)))
	c.JSON(http.StatusOK, utils.Paginate(filtered, page, perPage))
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("PaymentHistory").
		Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice and recomputes its totals
func UpdateInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Preload("Items").Preload("PaymentHistory").
		Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.ClientID != nil {
		if code, msg := snapshotClient(&invoice, userID, *input.ClientID); code != 0 {
			tx.Rollback()
			utils.RespondWithError(c, code, msg)
			return
		}
	}
	if input.Date != nil {
		invoice.Date = *input.Date
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if input.Items != nil {
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}
		items := buildInvoiceItems(*input.Items)
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		invoice.Items = items
	}
	if input.Tax != nil {
		invoice.Tax = *input.Tax
	}
	if input.Discount != nil {
		invoice.Discount = *input.Discount
	}
	if input.Status != nil {
		invoice.Status = *input.Status
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	invoice.RecalculateTotals()

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// RecordInvoicePayment registers a payment against an invoice. The balance
// and status transition are handled by the model.
func RecordInvoicePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("PaymentHistory").
		Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.Status == models.InvoiceCancelled {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot record a payment on a cancelled invoice")
		return
	}
	if input.Amount > invoice.Balance {
		utils.RespondWithError(c, http.StatusBadRequest, "Payment exceeds outstanding balance")
		return
	}

	method := input.Method
	if method == "" {
		method = models.PaymentCash
	}
	payment := models.PaymentRecord{
		ID:        uuid.New(),
		InvoiceID: invoice.ID,
		Amount:    input.Amount,
		Method:    method,
		Reference: input.Reference,
		Notes:     input.Notes,
		Date:      time.Now(),
	}

	invoice.ApplyPayment(payment, time.Now())

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	if err := tx.Omit("Items", "PaymentHistory").Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// MarkInvoicePaid settles an invoice regardless of recorded payments
func MarkInvoicePaid(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Items").Preload("PaymentHistory").
		Where("user_id = ? AND id = ?", userID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	invoice.MarkPaid(time.Now())

	if err := config.DB.Omit("Items", "PaymentHistory").Save(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice
func DeleteInvoice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userID, invoiceUUID).
		Delete(&models.Invoice{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
