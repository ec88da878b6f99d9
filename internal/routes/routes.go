package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/AgendaPlusBR/scheduling-api/internal/audit"
	"github.com/AgendaPlusBR/scheduling-api/internal/cache"
	"github.com/AgendaPlusBR/scheduling-api/internal/config"
	"github.com/AgendaPlusBR/scheduling-api/internal/handlers"
	infraRepo "github.com/AgendaPlusBR/scheduling-api/internal/infra/repository"
	"github.com/AgendaPlusBR/scheduling-api/internal/middleware"
	ucSchedule "github.com/AgendaPlusBR/scheduling-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	availabilityCache := cache.NewAvailability(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — AGENDAMENTOS
	// ======================================================
	findSlotsUC := ucSchedule.NewFindSlots(scheduleRepo, availabilityCache)

	generalAvailabilityUC := ucSchedule.NewGeneralAvailability(scheduleRepo)

	createAppointmentUC := ucSchedule.NewCreateAppointment(
		scheduleRepo,
		availabilityCache,
		auditDispatcher,
	)

	updateAppointmentUC := ucSchedule.NewUpdateAppointment(
		scheduleRepo,
		availabilityCache,
		auditDispatcher,
	)

	removeAppointmentUC := ucSchedule.NewRemoveAppointment(
		scheduleRepo,
		availabilityCache,
		auditDispatcher,
	)

	listAgendaUC := ucSchedule.NewListAgenda(scheduleRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	companyHandler := handlers.NewCompanyHandler(db)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db, availabilityCache)
	blockedPeriodsHandler := handlers.NewBlockedPeriodsHandler(db, availabilityCache)

	availabilityHandler := handlers.NewAvailabilityHandler(
		db,
		findSlotsUC,
		generalAvailabilityUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		updateAppointmentUC,
		removeAppointmentUC,
		listAgendaUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		findSlotsUC,
		generalAvailabilityUC,
		createAppointmentUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/professionals", publicHandler.ListProfessionals)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/days", publicHandler.AvailableDays)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/company", companyHandler.GetMeCompany)
			secured.PATCH("/me/company", companyHandler.UpdateMeCompany)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.GET("/me/services/:id", serviceHandler.Get)
			secured.PUT("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)
			secured.POST("/me/services/offer", serviceHandler.Offer)
			secured.DELETE("/me/services/offer/:id", serviceHandler.Unoffer)

			secured.GET("/me/business-hours", businessHoursHandler.Get)
			secured.PUT("/me/business-hours", businessHoursHandler.Update)

			secured.GET("/me/blocked-periods", blockedPeriodsHandler.List)
			secured.POST("/me/blocked-periods", blockedPeriodsHandler.Create)
			secured.DELETE("/me/blocked-periods/:id", blockedPeriodsHandler.Delete)

			// ------------------------------
			// DISPONIBILIDADE
			// ------------------------------
			secured.GET("/me/availability/slots", availabilityHandler.Slots)
			secured.GET("/me/availability/general", availabilityHandler.General)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.Agenda)
			secured.GET("/me/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
