package routes

import (
	"coolie-booking/constants"
	adminController "coolie-booking/controllers/admin"
	"coolie-booking/controllers/auth"
	"coolie-booking/controllers/booking"
	"coolie-booking/controllers/coolie"
	notificationController "coolie-booking/controllers/notification"
	"coolie-booking/logger"
	"coolie-booking/middleware"
	"coolie-booking/repository"
	bookingService "coolie-booking/services/booking"
	"coolie-booking/services/matching"
	"coolie-booking/services/notification"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	dispatcher := notification.NewDispatcher(db)

	coolieRepo := repository.NewCoolieRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	matcher := matching.NewEngine(coolieRepo)
	bookingSvc := bookingService.NewService(bookingRepo, coolieRepo, matcher, dispatcher)

	authController := auth.NewAuthController(db)
	bookingController := booking.NewBookingController(bookingSvc, bookingRepo, coolieRepo)
	coolieController := coolie.NewCoolieController(coolieRepo)
	adminCtrl := adminController.NewAdminController(db, coolieRepo, bookingRepo, dispatcher)
	notificationCtrl := notificationController.NewNotificationController(db)

	// Start the background workers
	go asyncLogger.ProcessLog()
	go dispatcher.ProcessEvents()

	app.Use(middleware.RequestLogger(asyncLogger))

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "coolie-booking",
			"status":  "ok",
		})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth").Use(middleware.Authenticate())
	authGroup.Get("/profile", authController.Profile)

	/*=============================================================================
	| Coolie Routes
	===============================================================================*/
	coolieGroup := api.Group("/coolies").Use(middleware.Authenticate())

	coolieGroup.Post("/register", middleware.RequireRoles(
		constants.RoleCoolie,
	), coolieController.Register)

	coolieGroup.Get("/", coolieController.Index)
	coolieGroup.Get("/available", coolieController.Available)

	coolieGroup.Put("/availability", middleware.RequireRoles(
		constants.RoleCoolie,
	), coolieController.UpdateAvailability)

	coolieGroup.Get("/:id", coolieController.Show)
	coolieGroup.Put("/:id", middleware.RequireRoles(
		constants.RoleCoolie, constants.RoleAdmin,
	), coolieController.Update)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings").Use(middleware.Authenticate())

	bookingGroup.Post("/", middleware.RequireRoles(
		constants.RolePassenger,
	), bookingController.Store)

	bookingGroup.Get("/", bookingController.Index)
	bookingGroup.Get("/:id", bookingController.Show)
	bookingGroup.Get("/:id/history", bookingController.History)
	bookingGroup.Put("/:id/status", bookingController.UpdateStatus)

	bookingGroup.Post("/:id/rate", middleware.RequireRoles(
		constants.RolePassenger,
	), bookingController.Rate)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	notificationGroup := api.Group("/notifications").Use(middleware.Authenticate())
	notificationGroup.Get("/", notificationCtrl.Index)
	notificationGroup.Put("/read-all", notificationCtrl.MarkAllRead)
	notificationGroup.Put("/:id/read", notificationCtrl.MarkRead)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin").Use(middleware.Authenticate()).Use(middleware.RequireRoles(
		constants.RoleAdmin,
	))
	adminGroup.Get("/coolies/pending", adminCtrl.PendingCoolies)
	adminGroup.Put("/coolies/:id/approval", adminCtrl.Approve)
	adminGroup.Get("/stats", adminCtrl.Stats)
	adminGroup.Get("/users", adminCtrl.Users)
}
