package routes

import (
	"time"

	"smarthealth/internal/adapters/http/handlers"
	"smarthealth/internal/adapters/http/middleware"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/config"
	"smarthealth/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Services holds the service layer shared with background jobs in main
type Services struct {
	Appointments *services.AppointmentService
}

// Setup configures all routes for the application and returns the service
// layer so main can hand it to the scheduler.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Services {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	hub := services.NewLiveHub()
	notifier := services.NewNotifierService(notificationRepo)
	authService := services.NewAuthService(userRepo, cfg)
	patientService := services.NewPatientService(patientRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	doctorService := services.NewDoctorService(doctorRepo, departmentRepo)
	tokenService := services.NewTokenService(tokenRepo, departmentRepo, patientRepo, notifier, hub)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo, departmentRepo, notifier)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService)
	departmentHandler := handlers.NewDepartmentHandler(departmentService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	displayHandler := handlers.NewDisplayHandler(tokenService, hub)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (login is public, stricter rate limit)
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/register", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), authHandler.Register)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Public display routes for waiting-room screens
	displayRoutes := apiV1.Group("/display")
	displayRoutes.Get("/now-serving", middleware.NoCacheHeaders(), displayHandler.NowServing)
	displayRoutes.Get("/board", middleware.NoCacheHeaders(), displayHandler.Board)
	displayRoutes.Get("/events", displayHandler.Events)

	// Public reference data
	apiV1.Get("/departments", middleware.CacheControl(5*time.Minute), departmentHandler.ListDepartments)
	apiV1.Get("/departments/:id", departmentHandler.GetDepartment)
	apiV1.Get("/doctors", middleware.CacheControl(5*time.Minute), doctorHandler.ListDoctors)
	apiV1.Get("/doctors/:id", doctorHandler.GetDoctor)
	apiV1.Get("/doctors/:id/shifts", doctorHandler.ListShifts)

	// Department administration (admin only)
	apiV1.Post("/departments", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), departmentHandler.CreateDepartment)
	apiV1.Patch("/departments/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), departmentHandler.UpdateDepartment)

	// Doctor administration (admin only)
	apiV1.Post("/doctors", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), doctorHandler.CreateDoctor)
	apiV1.Patch("/doctors/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), doctorHandler.UpdateDoctor)
	apiV1.Post("/doctors/:id/shifts", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), doctorHandler.AddShift)

	// Patient routes (staff)
	patientRoutes := apiV1.Group("/patients")
	patientRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOnly())
	patientRoutes.Post("/", patientHandler.RegisterPatient)
	patientRoutes.Get("/", patientHandler.ListPatients)
	patientRoutes.Get("/:id", patientHandler.GetPatient)

	// Queue token routes (staff)
	tokenRoutes := apiV1.Group("/tokens")
	tokenRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOnly())
	tokenRoutes.Post("/", tokenHandler.IssueToken)
	tokenRoutes.Get("/", tokenHandler.ListTokens)
	tokenRoutes.Get("/next", tokenHandler.NextToken)
	tokenRoutes.Get("/:id", tokenHandler.GetToken)
	tokenRoutes.Patch("/:id/call", tokenHandler.CallToken)
	tokenRoutes.Patch("/:id/serve", tokenHandler.ServeToken)
	tokenRoutes.Patch("/:id/skip", tokenHandler.SkipToken)
	tokenRoutes.Patch("/:id/complete", tokenHandler.CompleteToken)
	tokenRoutes.Delete("/:id", tokenHandler.CancelToken)

	// Appointment routes (staff)
	appointmentRoutes := apiV1.Group("/appointments")
	appointmentRoutes.Use(middleware.AuthMiddleware(cfg), middleware.StaffOnly())
	appointmentRoutes.Post("/", appointmentHandler.CreateAppointment)
	appointmentRoutes.Get("/", appointmentHandler.ListAppointments)
	appointmentRoutes.Get("/:id", appointmentHandler.GetAppointment)
	appointmentRoutes.Patch("/:id", appointmentHandler.UpdateAppointment)
	appointmentRoutes.Delete("/:id", appointmentHandler.DeleteAppointment)

	// Notification routes (staff)
	apiV1.Get("/notifications", middleware.AuthMiddleware(cfg), middleware.StaffOnly(), notificationHandler.ListNotifications)

	return &Services{
		Appointments: appointmentService,
	}
}
