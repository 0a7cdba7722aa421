package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ceylonstyle/salon-backend/internal/audit"
	"github.com/ceylonstyle/salon-backend/internal/config"
	"github.com/ceylonstyle/salon-backend/internal/handlers"
	infraRepo "github.com/ceylonstyle/salon-backend/internal/infra/repository"
	"github.com/ceylonstyle/salon-backend/internal/middleware"
	"github.com/ceylonstyle/salon-backend/internal/models"
	"github.com/ceylonstyle/salon-backend/internal/notify"
	"github.com/ceylonstyle/salon-backend/internal/payments"
	"github.com/ceylonstyle/salon-backend/internal/storage"
	tryonproc "github.com/ceylonstyle/salon-backend/internal/tryon"
	ucBooking "github.com/ceylonstyle/salon-backend/internal/usecase/booking"
	ucTryOn "github.com/ceylonstyle/salon-backend/internal/usecase/tryon"
)

// Deps carries the process-wide singletons main wires up.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Storage  *storage.Client
	Notifier *notify.Notifier
	Gateway  payments.Gateway
	TryOns   *tryonproc.Processor
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(deps.DB)
	tryonRepo := infraRepo.NewTryOnGormRepository(deps.DB)

	auditLogger := audit.New(deps.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher, deps.Notifier)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher, deps.Notifier)
	rescheduleBookingUC := ucBooking.NewRescheduleBooking(bookingRepo, auditDispatcher, deps.Notifier)
	updateBookingStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, auditDispatcher, deps.Notifier)
	availableSlotsUC := ucBooking.NewGetAvailableSlots(bookingRepo)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	getBookingUC := ucBooking.NewGetBooking(bookingRepo)

	// ======================================================
	// USE CASES — TRY-ON
	// ======================================================
	createTryOnUC := ucTryOn.NewCreateTryOn(tryonRepo, deps.TryOns)
	shareTryOnUC := ucTryOn.NewShareTryOn(tryonRepo)
	viewSharedTryOnUC := ucTryOn.NewViewSharedTryOn(tryonRepo)
	listSessionsUC := ucTryOn.NewListSessions(tryonRepo)
	getSessionUC := ucTryOn.NewGetSession(tryonRepo)
	saveSessionUC := ucTryOn.NewSaveSession(tryonRepo)
	listHairstylesUC := ucTryOn.NewListHairstyles(tryonRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(deps.DB, cfg)
	meHandler := handlers.NewMeHandler(deps.DB)
	salonHandler := handlers.NewSalonHandler(deps.DB, auditDispatcher, deps.Notifier)
	serviceHandler := handlers.NewServiceHandler(deps.DB)
	staffHandler := handlers.NewStaffHandler(deps.DB)

	bookingHandler := handlers.NewBookingHandler(
		deps.DB,
		createBookingUC,
		cancelBookingUC,
		rescheduleBookingUC,
		updateBookingStatusUC,
		availableSlotsUC,
		listBookingsUC,
		getBookingUC,
	)

	tryonHandler := handlers.NewTryOnHandler(
		cfg,
		deps.Storage,
		createTryOnUC,
		shareTryOnUC,
		viewSharedTryOnUC,
		listSessionsUC,
		getSessionUC,
		saveSessionUC,
		listHairstylesUC,
	)

	reviewHandler := handlers.NewReviewHandler(deps.DB)
	paymentHandler := handlers.NewPaymentHandler(deps.DB, deps.Gateway)
	promotionHandler := handlers.NewPromotionHandler(deps.DB)
	subscriptionHandler := handlers.NewSubscriptionHandler(deps.DB, deps.Gateway)
	notificationHandler := handlers.NewNotificationHandler(deps.DB)
	portfolioHandler := handlers.NewPortfolioHandler(deps.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)

	authLimit := middleware.RateLimit(deps.Redis, 10, time.Minute)
	tryonLimit := middleware.RateLimit(deps.Redis, 20, time.Minute)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(authLimit)
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/create-admin", authHandler.CreateAdmin)
		}

		// ------------------------------
		// PUBLIC CATALOG
		// ------------------------------
		api.GET("/salons", salonHandler.List)
		api.GET("/nearby-salons", salonHandler.Nearby)
		api.GET("/public/:slug", salonHandler.GetBySlug)
		api.GET("/salons/:id", salonHandler.Get)
		api.GET("/salons/:id/services", serviceHandler.ListForSalon)
		api.GET("/salons/:id/staff", staffHandler.ListForSalon)
		api.GET("/salons/:id/slots", bookingHandler.GetSlots)
		api.GET("/salons/:id/reviews", reviewHandler.ListForSalon)
		api.GET("/salons/:id/promotions", promotionHandler.ListForSalon)
		api.GET("/salons/:id/portfolio", portfolioHandler.ListForSalon)

		api.GET("/reviews/:id", reviewHandler.Get)

		api.GET("/hairstyles", tryonHandler.ListHairstyles)
		api.GET("/share/:token", tryonHandler.ViewShared)
		api.GET("/promotions/validate", promotionHandler.Validate)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PUT("/me", meHandler.Update)

			// -------- Bookings --------
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/bookings/:id/reschedule", bookingHandler.Reschedule)
			secured.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

			// -------- Try-on --------
			secured.POST("/ai-tryon", tryonLimit, tryonHandler.Create)
			secured.GET("/ai-tryon", tryonHandler.List)
			secured.GET("/ai-tryon/:id", tryonHandler.Get)
			secured.POST("/ai-tryon/:id/save", tryonHandler.Save)
			secured.POST("/ai-tryon/:id/share", tryonHandler.Share)
			secured.POST("/uploads", tryonHandler.Upload)
			secured.POST("/uploads/presign", tryonHandler.Presign)

			// -------- Reviews --------
			secured.POST("/reviews", reviewHandler.Create)
			secured.POST("/reviews/:id/helpful", reviewHandler.MarkHelpful)

			// -------- Payments --------
			secured.POST("/payments/booking", paymentHandler.PayBooking)
			secured.POST("/payments/credits", paymentHandler.PurchaseCredits)
			secured.GET("/payments", paymentHandler.ListMine)

			// -------- Subscriptions --------
			secured.POST("/subscriptions", subscriptionHandler.Subscribe)
			secured.GET("/subscriptions/me", subscriptionHandler.GetMine)
			secured.PATCH("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

			// -------- Notifications --------
			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)

			// -------- Portfolio --------
			secured.POST("/portfolio/:id/like", portfolioHandler.Like)

			// -------- Salon owner --------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRole(models.RoleSalonOwner, models.RoleAdmin))
			{
				owner.POST("/salons", salonHandler.Create)
				owner.PUT("/salons/me", salonHandler.Update)
				owner.DELETE("/salons/me", salonHandler.Delete)
				owner.PUT("/salons/me/hours", salonHandler.UpsertHours)

				owner.POST("/services", serviceHandler.Create)
				owner.PUT("/services/:id", serviceHandler.Update)
				owner.DELETE("/services/:id", serviceHandler.Delete)

				owner.POST("/staff", staffHandler.Create)
				owner.PUT("/staff/:id", staffHandler.Update)
				owner.DELETE("/staff/:id", staffHandler.Delete)

				owner.POST("/reviews/:id/respond", reviewHandler.Respond)

				owner.GET("/promotions", promotionHandler.ListMine)
				owner.POST("/promotions", promotionHandler.Create)
				owner.PATCH("/promotions/:id/deactivate", promotionHandler.Deactivate)

				owner.POST("/portfolio", portfolioHandler.Create)
				owner.DELETE("/portfolio/:id", portfolioHandler.Delete)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}

			// -------- Admin --------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.PATCH("/salons/:id/verify", salonHandler.Verify)
				admin.PATCH("/payments/:transaction_id/status", paymentHandler.UpdateStatus)
			}
		}
	}
}
