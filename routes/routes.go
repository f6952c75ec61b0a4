package routes

import (
	"net/http"

	"caterflow-backend/config"
	"caterflow-backend/controllers"
	"caterflow-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers carries the controllers that hold collaborators.
type Handlers struct {
	Tokens    *utils.TokenManager
	Auth      *controllers.AuthController
	Documents *controllers.DocumentController
	Contracts *controllers.ContractController
	Dashboard *controllers.DashboardController
	Tracker   *controllers.TrackerController
	Reminders *controllers.ReminderController
}

func SetupRouter(cfg config.CORSConfig, logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestLogger(logger))
	r.Use(config.Recovery(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/update-password", h.Tokens.PasswordUpdateMiddleware(), h.Auth.UpdatePassword)

		session := auth.Group("", h.Tokens.AuthMiddleware())
		session.GET("/me", controllers.Me)

		profile := session.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
			profile.GET("/reminder-template", controllers.GetReminderTemplate)
			profile.PUT("/reminder-template", controllers.UpdateReminderTemplate)
		}
	}

	// Contract signing links are opened by clients without an account.
	public := r.Group("/public")
	{
		public.GET("/sign/:id", controllers.GetProposal)
		public.POST("/sign/:id", controllers.SignProposal)
	}

	api := r.Group("/api")
	api.Use(h.Tokens.AuthMiddleware())
	{
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)

			customers.GET("/:id/pipeline", controllers.GetPipeline)
			customers.PUT("/:id/status", controllers.UpdateCustomerStatus)
			customers.PATCH("/:id/pricing", controllers.UpdatePricing)

			customers.PUT("/:id/payment-plan", controllers.ResizePaymentPlan)
			customers.PATCH("/:id/payment-plan/:index", controllers.UpdateInstallment)
			customers.GET("/:id/payment-summary", controllers.GetPaymentSummary)

			customers.POST("/:id/menu", controllers.AddCustomerMenuItem)
			customers.DELETE("/:id/menu/:category/:name", controllers.RemoveCustomerMenuItem)

			customers.POST("/:id/timeline", controllers.AddTimelineEntry)
			customers.PUT("/:id/timeline/:index", controllers.UpdateTimelineEntry)
			customers.DELETE("/:id/timeline/:index", controllers.DeleteTimelineEntry)

			customers.POST("/:id/contract", h.Contracts.UploadContract)
			customers.GET("/:id/contract-link", h.Contracts.GetContractLink)

			customers.GET("/:id/documents/:kind", h.Documents.GetDocument)
		}

		api.POST("/documents/:kind/preview", h.Documents.PreviewDocument)

		// Menu catalog
		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/options", controllers.GetMenuOptions)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		api.GET("/dashboard", h.Dashboard.GetDashboardOverview)
		api.GET("/analytics", controllers.GetAnalytics)
		api.GET("/invoices", controllers.GetInvoices)
		api.GET("/calendar", controllers.GetCalendar)

		tracker := api.Group("/tracker")
		{
			tracker.GET("", h.Tracker.GetTracker)
			tracker.POST("/leads", h.Tracker.CreateLead)
			tracker.PUT("/leads/:id", h.Tracker.UpdateLead)
			tracker.PUT("/leads/:id/status", controllers.UpdateCustomerStatus)
		}

		reminders := api.Group("/reminders")
		{
			reminders.POST("/send", h.Reminders.SendReminders)
			reminders.GET("/logs", controllers.GetReminderLogs)
		}
	}

	return r
}
