package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/healix-care/healix-backend/cache"
	"github.com/healix-care/healix-backend/cron"
	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	cache.Init()
	cron.StartCronJobs()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Healix API"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPaymentRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
