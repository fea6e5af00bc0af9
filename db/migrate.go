package db

import (
	"log"

	"github.com/healix-care/healix-backend/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.DoctorProfile{},
		&models.PatientProfile{},
		&models.AvailabilitySlot{},
		&models.Appointment{},
		&models.PaymentMethod{},
		&models.PaymentTransaction{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedPaymentMethods()
	log.Println("Migrations applied")
}

// seedPaymentMethods fills the payment method catalog on first run.
func seedPaymentMethods() {
	methods := []models.PaymentMethod{
		{Name: "Visa / Mastercard", Type: "cards", Description: "Pay with a credit or debit card"},
		{Name: "PayPal", Type: "digital_wallets", Description: "Pay with your PayPal balance"},
	}
	for _, m := range methods {
		var existing models.PaymentMethod
		if DB.Where("name = ?", m.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&m)
		}
	}
}
