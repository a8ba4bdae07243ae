package routes

import (
	"os"
	"strings"

	"agendapro-backend/config"
	"agendapro-backend/controllers"
	"agendapro-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func allowedOrigins() []string {
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		return strings.Split(env, ",")
	}
	return []string{"http://localhost:3000"}
}

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := allowedOrigins()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Client routes
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		// Catalog routes
		catalog := api.Group("/catalog")
		{
			catalog.POST("", controllers.CreateCatalogItem)
			catalog.GET("", controllers.GetCatalogItems)
			catalog.GET("/low-stock", controllers.GetLowStockItems)
			catalog.GET("/:id", controllers.GetCatalogItem)
			catalog.PUT("/:id", controllers.UpdateCatalogItem)
			catalog.DELETE("/:id", controllers.DeleteCatalogItem)
		}

		// Appointment routes
		appointments := api.Group("/appointments")
		{
			appointments.POST("", controllers.CreateAppointment)
			appointments.GET("", controllers.GetAppointments)
			appointments.GET("/export", controllers.ExportAppointments)
			appointments.POST("/import", controllers.ImportAppointments)
			appointments.GET("/import/template", controllers.DownloadImportTemplate)
			appointments.GET("/:id", controllers.GetAppointment)
			appointments.PUT("/:id", controllers.UpdateAppointment)
			appointments.PATCH("/:id/status", controllers.UpdateAppointmentStatus)
			appointments.DELETE("/:id", controllers.DeleteAppointment)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("", controllers.CreateInvoice)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id", controllers.UpdateInvoice)
			invoices.POST("/:id/payments", controllers.RecordInvoicePayment)
			invoices.POST("/:id/mark-paid", controllers.MarkInvoicePaid)
			invoices.DELETE("/:id", controllers.DeleteInvoice)
		}

		// Dashboard routes
		api.GET("/dashboard", controllers.GetDashboardOverview)

		// Settings routes
		settings := api.Group("/settings")
		{
			settings.GET("/profile", controllers.GetProfile)
			settings.PUT("/profile", controllers.UpdateProfile)
			settings.PUT("/notifications", controllers.UpdateNotificationSettings)
			settings.GET("/reminder-template", controllers.GetReminderTemplate)
			settings.PUT("/reminder-template", controllers.UpdateReminderTemplate)
			settings.GET("/security", controllers.GetSecuritySettings)
			settings.PUT("/security", controllers.UpdateSecuritySettings)
			settings.POST("/security/pin", controllers.SetPin)
			settings.POST("/security/pin/verify", controllers.VerifyPin)
		}
	}

	return r
}
