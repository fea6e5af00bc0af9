package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/controllers"
	"github.com/healix-care/healix-backend/controllers/doctor"
	"github.com/healix-care/healix-backend/controllers/patient"
	"github.com/healix-care/healix-backend/middleware"
	"github.com/healix-care/healix-backend/models"
)

// SetupDoctorRoutes configures doctor search, profile and availability
// routes, plus the admin approval endpoints.
func SetupDoctorRoutes(app *fiber.App) {
	accounts := app.Group("/api/accounts")

	// Public search surface
	accounts.Get("/doctors/search", patient.SearchDoctors)
	accounts.Get("/doctor/:id<int>", patient.GetDoctor)

	// Doctor self-service
	doctorGroup := accounts.Group("/doctor", middleware.Protected(), middleware.RequireRole(models.RoleDoctor))
	doctorGroup.Get("/profile", doctor.GetProfile)
	doctorGroup.Post("/profile", doctor.UpdateProfile)
	doctorGroup.Get("/availability", doctor.ListAvailability)
	doctorGroup.Post("/availability", doctor.CreateAvailability)
	doctorGroup.Delete("/availability/:id", doctor.DeleteAvailability)

	// Patient self-service
	patientGroup := accounts.Group("/patient", middleware.Protected(), middleware.RequireRole(models.RolePatient))
	patientGroup.Get("/profile", patient.GetProfile)
	patientGroup.Post("/profile", patient.UpdateProfile)

	// Admin approval gate
	adminGroup := accounts.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))
	adminGroup.Get("/doctors/pending", controllers.ListPendingDoctors)
	adminGroup.Patch("/doctors/:id/approve", controllers.ApproveDoctor)
}
