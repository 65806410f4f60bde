package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/AmberStudioApps/studio-booking/internal/audit"
	"github.com/AmberStudioApps/studio-booking/internal/cache"
	"github.com/AmberStudioApps/studio-booking/internal/config"
	"github.com/AmberStudioApps/studio-booking/internal/handlers"
	"github.com/AmberStudioApps/studio-booking/internal/infra/repository"
	"github.com/AmberStudioApps/studio-booking/internal/middleware"
	"github.com/AmberStudioApps/studio-booking/internal/payments"
	ucBooking "github.com/AmberStudioApps/studio-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	// shared infra
	repo := repository.NewBookingGormRepository(db)
	auditor := audit.NewDispatcher(audit.New(db))
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	dedup := cache.NewEventDeduper(rdb)

	// use cases
	availability := ucBooking.NewGetAvailability(repo, cfg.SlotStepMinutes)
	create := ucBooking.NewCreateBooking(repo, gateway, auditor, cfg.PublicBaseURL)
	confirm := ucBooking.NewConfirmPayment(repo, auditor)
	expire := ucBooking.NewExpirePayment(repo, auditor)
	cancel := ucBooking.NewCancelBooking(repo, auditor)
	complete := ucBooking.NewCompleteBooking(repo, auditor)
	listByDate := ucBooking.NewListBookingsByDate(repo)
	listByMonth := ucBooking.NewListBookingsByMonth(repo)

	// handlers
	public := handlers.NewPublicHandler(db, availability, create)
	webhook := handlers.NewWebhookHandler(gateway, confirm, expire, dedup)
	auth := handlers.NewAuthHandler(db, cfg)
	adminBookings := handlers.NewAdminBookingHandler(listByDate, listByMonth, cancel, complete)
	services := handlers.NewServiceHandler(db, auditor)
	hours := handlers.NewHoursHandler(db, auditor)
	auditLogs := handlers.NewAuditLogsHandler(db)

	api := r.Group("/api")
	{
		api.GET("/services", public.ListServices)
		api.GET("/availability", public.Availability)
		api.POST("/bookings", public.CreateBooking)
		api.GET("/bookings/:id", public.GetBooking)

		api.POST("/payment/webhook", webhook.HandleStripe)

		api.POST("/admin/login", auth.Login)

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg))
		{
			admin.GET("/me", auth.Me)

			admin.GET("/bookings", adminBookings.ListByDate)
			admin.GET("/bookings/month", adminBookings.ListByMonth)
			admin.PATCH("/bookings/:id/cancel", adminBookings.Cancel)
			admin.PATCH("/bookings/:id/complete", adminBookings.Complete)

			admin.GET("/services", services.List)
			admin.POST("/services", services.Create)
			admin.PATCH("/services/:id", services.Update)

			admin.GET("/business-hours", hours.Get)
			admin.PUT("/business-hours", hours.Update)

			admin.GET("/audit-logs", auditLogs.List)
		}
	}
}
