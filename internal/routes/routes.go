package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/serenity-aesthetics/salon-api/internal/audit"
	"github.com/serenity-aesthetics/salon-api/internal/cache"
	"github.com/serenity-aesthetics/salon-api/internal/config"
	"github.com/serenity-aesthetics/salon-api/internal/handlers"
	infraRepo "github.com/serenity-aesthetics/salon-api/internal/infra/repository"
	"github.com/serenity-aesthetics/salon-api/internal/middleware"
	"github.com/serenity-aesthetics/salon-api/internal/notify"
	ucBooking "github.com/serenity-aesthetics/salon-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	catalogCache := cache.New(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	mailer := notify.NewSMTPMailer(cfg)
	notifier := notify.NewDispatcher(mailer)

	// ======================================================
	// USE CASES (BOOKING)
	// ======================================================
	listServicesUC := ucBooking.NewListServices(bookingRepo)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
	)

	confirmUC := ucBooking.NewConfirmAppointment(
		bookingRepo,
		auditDispatcher,
	)

	declineUC := ucBooking.NewDeclineAppointment(
		bookingRepo,
		auditDispatcher,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListAppointmentsByDate(
		bookingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		listServicesUC,
		availabilityUC,
		createBookingUC,
		catalogCache,
	)

	authHandler := handlers.NewAuthHandler(db, cfg)
	salonHandler := handlers.NewSalonHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, catalogCache)
	scheduleHandler := handlers.NewScheduleHandler(db)
	clientHandler := handlers.NewClientHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		listByDateUC,
		confirmUC,
		declineUC,
		cancelUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC BOOKING FLOW
		// ------------------------------
		api.GET("/services", publicHandler.ListServices)
		api.GET("/book/availability", publicHandler.Availability)
		api.POST("/book", publicHandler.CreateBooking)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", authHandler.Me)

			admin.GET("/salon", salonHandler.Get)
			admin.PATCH("/salon", salonHandler.Update)

			admin.GET("/clients", clientHandler.List)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)

			admin.GET("/schedule", scheduleHandler.Get)
			admin.PUT("/schedule", scheduleHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			admin.PATCH("/appointments/:id/decline", appointmentHandler.Decline)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
