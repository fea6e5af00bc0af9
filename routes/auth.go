package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/controllers"
	"github.com/healix-care/healix-backend/middleware"
)

// SetupAuthRoutes configures registration and authentication routes
func SetupAuthRoutes(app *fiber.App) {
	accounts := app.Group("/api/accounts")

	// Public routes
	accounts.Post("/login", controllers.Login)
	accounts.Post("/register/patient", controllers.RegisterPatient)
	accounts.Post("/register/doctor", controllers.RegisterDoctor)
	accounts.Post("/register/admin", controllers.RegisterAdmin)
	accounts.Post("/refresh", controllers.RefreshToken)
	accounts.Get("/verify-email/:token", controllers.VerifyEmail)
	accounts.Get("/doctor/approval-status/:email", controllers.DoctorApprovalStatus)

	// Protected routes
	accounts.Get("/me", middleware.Protected(), controllers.Me)
}
