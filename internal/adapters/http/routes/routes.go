package routes

import (
	"time"

	"tripway/internal/adapters/http/handlers"
	"tripway/internal/adapters/http/middleware"
	"tripway/internal/adapters/persistence/repositories"
	"tripway/internal/config"
	"tripway/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application. The returned cron
// service is started by main after the HTTP surface is wired.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.CronService {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	hotelRepo := repositories.NewHotelRepository(db)
	routeRepo := repositories.NewRouteRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	companyService := services.NewCompanyService(companyRepo)
	hotelService := services.NewHotelService(hotelRepo)
	routeService := services.NewRouteService(routeRepo, companyRepo)
	roomService := services.NewRoomService(roomRepo, hotelRepo)
	bookingService := services.NewBookingService(bookingRepo, routeRepo, roomRepo, companyRepo, hotelRepo)
	mailerService := services.NewMailerService(cfg.SMTP)
	reminderService := services.NewReminderService(reminderRepo, routeRepo, companyRepo, userRepo, mailerService)
	dashboardService := services.NewDashboardService(db)
	cronService := services.NewCronService(reminderService, cfg.Reminder.CronSpec)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	hotelHandler := handlers.NewHotelHandler(hotelService)
	routeHandler := handlers.NewRouteHandler(routeService)
	roomHandler := handlers.NewRoomHandler(roomService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, companyService, hotelService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg, userRepo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", middleware.AuthRateLimiter(), authHandler.RefreshToken)
	authRoutes.Post("/logout", auth, authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)

	// User management routes (Admin only, plus own-profile update)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth)
	userRoutes.Put("/me", userHandler.UpdateProfile)
	userRoutes.Get("/", middleware.RequirePolicy("users.list"), userHandler.ListUsers)
	userRoutes.Get("/:id", middleware.RequirePolicy("users.manage"), userHandler.GetUser)
	userRoutes.Patch("/:id/active", middleware.RequirePolicy("users.manage"), userHandler.SetActive)
	userRoutes.Delete("/:id", middleware.RequirePolicy("users.manage"), userHandler.DeleteUser)

	// Travel company routes (reads public, writes role-gated)
	companyRoutes := apiV1.Group("/companies")
	companyRoutes.Get("/", middleware.CacheControl(5*time.Minute), companyHandler.ListCompanies)
	companyRoutes.Get("/:id", companyHandler.GetCompany)
	companyRoutes.Post("/", auth, middleware.RequirePolicy("companies.create"), companyHandler.CreateCompany)
	companyRoutes.Put("/:id", auth, middleware.RequirePolicy("companies.manage"), companyHandler.UpdateCompany)
	companyRoutes.Delete("/:id", auth, middleware.RequirePolicy("companies.manage"), companyHandler.DeleteCompany)

	// Hotel routes (reads public, writes role-gated)
	hotelRoutes := apiV1.Group("/hotels")
	hotelRoutes.Get("/", middleware.CacheControl(5*time.Minute), hotelHandler.ListHotels)
	hotelRoutes.Get("/:id", hotelHandler.GetHotel)
	hotelRoutes.Get("/:hotelId/rooms", roomHandler.ListRooms)
	hotelRoutes.Post("/", auth, middleware.RequirePolicy("hotels.create"), hotelHandler.CreateHotel)
	hotelRoutes.Put("/:id", auth, middleware.RequirePolicy("hotels.manage"), hotelHandler.UpdateHotel)
	hotelRoutes.Delete("/:id", auth, middleware.RequirePolicy("hotels.manage"), hotelHandler.DeleteHotel)

	// Route & seat routes (reads public, writes role-gated)
	routeRoutes := apiV1.Group("/routes")
	routeRoutes.Get("/", middleware.CacheControl(time.Minute), routeHandler.ListRoutes)
	routeRoutes.Get("/:id", routeHandler.GetRoute)
	routeRoutes.Get("/:id/seats", routeHandler.ListSeats)
	routeRoutes.Post("/", auth, middleware.RequirePolicy("routes.manage"), routeHandler.CreateRoute)
	routeRoutes.Put("/:id", auth, middleware.RequirePolicy("routes.manage"), routeHandler.UpdateRoute)
	routeRoutes.Delete("/:id", auth, middleware.RequirePolicy("routes.manage"), routeHandler.DeleteRoute)
	routeRoutes.Post("/:id/seats", auth, middleware.RequirePolicy("routes.manage"), routeHandler.AddSeat)
	routeRoutes.Get("/:routeId/reminders", auth, middleware.RequirePolicy("reminders.manage"), reminderHandler.ListReminders)
	routeRoutes.Get("/:routeId/reminders/recipients", auth, middleware.RequirePolicy("reminders.manage"), reminderHandler.PreviewRecipients)

	// Room routes (single-room reads public, writes role-gated)
	roomRoutes := apiV1.Group("/rooms")
	roomRoutes.Get("/:id", roomHandler.GetRoom)
	roomRoutes.Post("/", auth, middleware.RequirePolicy("rooms.manage"), roomHandler.CreateRoom)
	roomRoutes.Put("/:id", auth, middleware.RequirePolicy("rooms.manage"), roomHandler.UpdateRoom)
	roomRoutes.Delete("/:id", auth, middleware.RequirePolicy("rooms.manage"), roomHandler.DeleteRoom)

	// Booking routes (authenticated)
	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Use(auth)
	bookingRoutes.Post("/seats", middleware.RequirePolicy("bookings.create"), bookingHandler.BookSeat)
	bookingRoutes.Post("/rooms", middleware.RequirePolicy("bookings.create"), bookingHandler.BookRoom)
	bookingRoutes.Get("/me", bookingHandler.ListMyBookings)
	bookingRoutes.Get("/", middleware.RequirePolicy("bookings.list"), bookingHandler.ListBookings)
	bookingRoutes.Get("/:id", middleware.RequirePolicy("bookings.manage"), bookingHandler.GetBooking)
	bookingRoutes.Patch("/:id/status", middleware.RequirePolicy("bookings.manage"), bookingHandler.UpdateStatus)
	bookingRoutes.Post("/:id/cancel", middleware.RequirePolicy("bookings.manage"), bookingHandler.CancelBooking)
	bookingRoutes.Delete("/:id", middleware.RequirePolicy("bookings.manage"), bookingHandler.DeleteBooking)

	// Reminder routes (company owner or Admin)
	reminderRoutes := apiV1.Group("/reminders")
	reminderRoutes.Use(auth)
	reminderRoutes.Use(middleware.RequirePolicy("reminders.manage"))
	reminderRoutes.Post("/", reminderHandler.CreateReminder)
	reminderRoutes.Get("/:id", reminderHandler.GetReminder)
	reminderRoutes.Put("/:id", reminderHandler.UpdateReminder)
	reminderRoutes.Delete("/:id", reminderHandler.DeleteReminder)
	reminderRoutes.Post("/dispatch", middleware.AdminOnly(), reminderHandler.DispatchDue)

	// Dashboard routes
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(auth)
	dashboardRoutes.Get("/admin", middleware.RequirePolicy("dashboard.admin"), dashboardHandler.AdminDashboard)
	dashboardRoutes.Get("/company", middleware.RequirePolicy("dashboard.company"), dashboardHandler.CompanyDashboard)
	dashboardRoutes.Get("/hotel", middleware.RequirePolicy("dashboard.hotel"), dashboardHandler.HotelDashboard)

	return cronService
}
