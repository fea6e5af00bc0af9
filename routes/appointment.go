package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/controllers"
	"github.com/healix-care/healix-backend/controllers/doctor"
	"github.com/healix-care/healix-backend/controllers/patient"
	"github.com/healix-care/healix-backend/middleware"
	"github.com/healix-care/healix-backend/models"
)

// SetupAppointmentRoutes configures all appointment lifecycle routes
func SetupAppointmentRoutes(app *fiber.App) {
	appointments := app.Group("/api/accounts/appointments")

	// Derived slot availability is public so patients can browse
	// before logging in.
	appointments.Get("/availability/:doctor_id/:date", patient.Availability)

	appointments.Post("/create",
		middleware.Protected(), middleware.RequireRole(models.RolePatient), patient.CreateAppointment)
	appointments.Get("/schedule",
		middleware.Protected(), middleware.RequireRole(models.RolePatient), patient.Schedule)
	appointments.Get("/doctor-schedule",
		middleware.Protected(), middleware.RequireRole(models.RoleDoctor), doctor.Schedule)

	appointments.Patch("/confirm/:id",
		middleware.Protected(), middleware.RequireRole(models.RoleDoctor), doctor.Confirm)
	appointments.Patch("/:id/postpone",
		middleware.Protected(), middleware.RequireRole(models.RoleDoctor), doctor.Postpone)

	// Cancel and delete are open to either party; ownership is checked
	// in the controller.
	appointments.Patch("/:id/cancel", middleware.Protected(), controllers.CancelAppointment)
	appointments.Delete("/:id/delete", middleware.Protected(), controllers.DeleteAppointment)
}
