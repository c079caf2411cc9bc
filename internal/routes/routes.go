package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/navalha-app/agenda-api/internal/audit"
	"github.com/navalha-app/agenda-api/internal/config"
	"github.com/navalha-app/agenda-api/internal/handlers"
	infraRepo "github.com/navalha-app/agenda-api/internal/infra/repository"
	"github.com/navalha-app/agenda-api/internal/lock"
	"github.com/navalha-app/agenda-api/internal/middleware"
	ucBooking "github.com/navalha-app/agenda-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var locker lock.Locker
	if cfg.RedisUrl != "" {
		redisLocker, err := lock.NewRedisLocker(cfg.RedisUrl)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = redisLocker
	} else {
		locker = lock.NewMemoryLocker()
	}

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		scheduleRepo,
		cfg,
		locker,
		auditDispatcher,
	)

	createChatBookingUC := ucBooking.NewCreateChatBooking(
		scheduleRepo,
		cfg,
		locker,
		auditDispatcher,
	)

	listByDateUC := ucBooking.NewListByDate(scheduleRepo, cfg)

	changeStatusUC := ucBooking.NewChangeStatus(
		scheduleRepo,
		cfg,
		auditDispatcher,
	)

	freeSlotsUC := ucBooking.NewGetFreeSlots(scheduleRepo, cfg)
	freeBarbersUC := ucBooking.NewGetFreeBarbers(scheduleRepo, cfg)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	barberHandler := handlers.NewBarberHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		listByDateUC,
		changeStatusUC,
		freeBarbersUC,
	)

	webhookHandler := handlers.NewWebhookHandler(
		createChatBookingUC,
		freeSlotsUC,
	)

	// ======================================================
	// 🤖 WEBHOOK (bot do canal de chat)
	// ======================================================
	webhook := r.Group("/webhook/sendbot")
	webhook.Use(middleware.WebhookSecret(cfg))
	{
		webhook.POST("/agendamento", webhookHandler.CreateBooking)
		webhook.POST("/horarios-disponiveis", webhookHandler.ListFreeSlots)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.Me)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.GET("/agendamentos", appointmentHandler.ListByDate)
			secured.POST("/agendamentos", appointmentHandler.Create)
			secured.PATCH("/agendamentos/:id", appointmentHandler.ChangeStatus)
			secured.GET("/agendamentos/barbeiros-disponiveis", appointmentHandler.FreeBarbers)

			// ------------------------------
			// CADASTROS
			// ------------------------------
			secured.GET("/servicos", serviceHandler.List)
			secured.GET("/clientes", clientHandler.List)

			admin := secured.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/barbeiros", barberHandler.List)
				admin.POST("/barbeiros", barberHandler.Create)
				admin.PATCH("/barbeiros/:id", barberHandler.Update)

				admin.POST("/servicos", serviceHandler.Create)
				admin.PATCH("/servicos/:id", serviceHandler.Update)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
