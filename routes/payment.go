package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/controllers"
	"github.com/healix-care/healix-backend/middleware"
)

// SetupPaymentRoutes configures the payment stub and chat URL routes
func SetupPaymentRoutes(app *fiber.App) {
	payments := app.Group("/api/payments")
	payments.Get("/methods", controllers.ListPaymentMethods)
	payments.Post("/process", middleware.Protected(), controllers.ProcessPayment)

	chat := app.Group("/api/chat")
	chat.Get("/room/:id", middleware.Protected(), controllers.ChatRoom)
}
