package controllers

import (
	"net/http"
	"time"

	"agendapro-backend/config"
	"agendapro-backend/models"
	"agendapro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview aggregates the home screen numbers: counts, this
// month's revenue, today's and upcoming appointments, money still owed on
// the agenda and low stock alerts.
func GetDashboardOverview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	now := time.Now()
	today := utils.CanonicalDate(now)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Total clients
	var totalClients int64
	config.DB.Model(&models.Client{}).Where("user_id = ?", userID).Count(&totalClients)

	// This month's invoiced revenue (paid amounts only)
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND date >= ? AND status <> ?", userID, firstOfMonth, models.InvoiceCancelled).
		Select("COALESCE(SUM(amount_paid), 0)").Scan(&monthlyRevenue)

	// Invoices still carrying a balance
	var pendingInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("user_id = ? AND status = ?", userID, models.InvoicePending).
		Count(&pendingInvoices)

	// Agenda rows for today and the coming week
	var appointments []models.Appointment
	config.DB.Where("user_id = ? AND status IN ?", userID,
		[]string{models.AppointmentPending, models.AppointmentConfirmed}).
		Find(&appointments)

	var todayAppointments []models.Appointment
	var upcomingAppointments []models.Appointment
	var pendingCollection float64
	weekFromNow := utils.BeginningOfDay(now).Add(7 * 24 * time.Hour)

	for _, a := range appointments {
		pendingCollection += a.BalanceDue()

		d, parsed := utils.ParseFlexible(a.Date)
		if !parsed {
			continue
		}
		switch {
		case a.Date == today:
			todayAppointments = append(todayAppointments, a)
		case d.After(now) && d.Before(weekFromNow):
			upcomingAppointments = append(upcomingAppointments, a)
		}
	}

	todayAppointments = utils.SortBy(todayAppointments, utils.SortAsc,
		func(a models.Appointment) (any, bool) { return a.Time, a.Time != "" })
	upcomingAppointments = utils.SortBy(upcomingAppointments, utils.SortAsc,
		func(a models.Appointment) (any, bool) { return a.Date + " " + a.Time, true })
	if len(upcomingAppointments) > 10 {
		upcomingAppointments = upcomingAppointments[:10]
	}

	// Low stock alerts
	var storables []models.CatalogItem
	config.DB.Where("user_id = ? AND type = ?", userID, models.CatalogStorable).Find(&storables)
	lowStock := utils.Filter(storables, func(it models.CatalogItem) bool {
		return it.LowStock()
	})

	// This month's profit from completed appointments
	var monthlyProfit float64
	var completed []models.Appointment
	config.DB.Where("user_id = ? AND status = ?", userID, models.AppointmentCompleted).
		Find(&completed)
	for _, a := range completed {
		d, parsed := utils.ParseFlexible(a.Date)
		if parsed && !d.Before(firstOfMonth) {
			monthlyProfit += a.MyProfit
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalClients":         totalClients,
		"monthlyRevenue":       monthlyRevenue,
		"monthlyProfit":        monthlyProfit,
		"pendingInvoices":      pendingInvoices,
		"pendingCollection":    pendingCollection,
		"todayAppointments":    todayAppointments,
		"upcomingAppointments": upcomingAppointments,
		"lowStockItems":        lowStock,
	})
}
