package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// ListPaymentMethods returns the payment method catalog.
func ListPaymentMethods(c *fiber.Ctx) error {
	var methods []models.PaymentMethod
	if err := db.DB.Find(&methods).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch payment methods", err)
	}
	return utils.Success(c, fiber.StatusOK, "Payment methods fetched", methods)
}

// ProcessPayment simulates charging a payment method. There is no
// gateway behind this endpoint; the transaction is recorded and
// immediately marked successful.
func ProcessPayment(c *fiber.Ctx) error {
	input := struct {
		PaymentMethodID uint    `json:"payment_method_id"`
		Amount          float64 `json:"amount"`
		AppointmentID   *uint   `json:"appointment_id"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.Amount <= 0 {
		return utils.FailValidation(c, "Invalid payment request",
			map[string]string{"amount": "amount must be positive"})
	}

	var method models.PaymentMethod
	if err := db.DB.First(&method, input.PaymentMethodID).Error; err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid payment method")
	}

	tx := models.PaymentTransaction{
		Reference:       uuid.NewString(),
		PaymentMethodID: method.ID,
		AppointmentID:   input.AppointmentID,
		Amount:          input.Amount,
		Status:          models.TxPending,
	}
	if err := db.DB.Create(&tx).Error; err != nil {
		return utils.FailInternal(c, "Failed to record transaction", err)
	}

	tx.Status = models.TxSuccess
	if err := db.DB.Save(&tx).Error; err != nil {
		return utils.FailInternal(c, "Failed to update transaction", err)
	}

	return utils.Success(c, fiber.StatusOK, "Payment successful", fiber.Map{
		"transaction_id": tx.ID,
		"reference":      tx.Reference,
	})
}
