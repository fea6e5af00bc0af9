package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/cache"
	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

const dateLayout = "2006-01-02"

// loadAppointment fetches an appointment with both parties attached.
func loadAppointment(c *fiber.Ctx) (*models.Appointment, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid appointment ID")
	}
	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("DoctorProfile.User").First(&appointment, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Appointment not found")
	}
	return &appointment, nil
}

// CancelAppointment cancels a booking. Either the patient or the
// owning doctor may cancel; the other party gets notified with the
// cancellation message.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appointment, err := loadAppointment(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return utils.Fail(c, fe.Code, fe.Message)
	}

	if !appointment.IsParty(userID) {
		return utils.Fail(c, fiber.StatusForbidden, "You are not a party to this appointment")
	}

	input := struct {
		CancellationMessage string `json:"cancellation_message"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.CancellationMessage == "" {
		return utils.FailValidation(c, "Invalid cancel request",
			map[string]string{"cancellation_message": "a cancellation message is required"})
	}

	appointment.Reason = input.CancellationMessage
	if err := appointment.UpdateStatus(db.DB, models.StatusCancelled); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	cache.InvalidateAvailability(appointment.DoctorProfileID, appointment.AppointmentDate.Format(dateLayout))

	// Notify whichever party did not make the call.
	body := fmt.Sprintf(`<p>The appointment on %s at %s has been cancelled.</p>
		<p><strong>Message:</strong> %s</p>`,
		appointment.AppointmentDate.Format(dateLayout), appointment.StartTime, input.CancellationMessage)
	if userID == appointment.PatientID {
		utils.NotifyEmail(appointment.DoctorProfile.User.Email, "Appointment cancelled", body)
	} else {
		utils.NotifyEmail(appointment.Patient.Email, "Appointment cancelled", body)
	}

	appointment.Patient.Password = ""
	appointment.DoctorProfile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Appointment cancelled", appointment)
}

// DeleteAppointment permanently removes a cancelled appointment.
// Deleting anything still live is rejected.
func DeleteAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appointment, err := loadAppointment(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return utils.Fail(c, fe.Code, fe.Message)
	}

	if !appointment.IsParty(userID) {
		return utils.Fail(c, fiber.StatusForbidden, "You are not a party to this appointment")
	}

	if appointment.Status != models.StatusCancelled {
		return utils.Fail(c, fiber.StatusBadRequest, "Only cancelled appointments can be deleted")
	}

	if err := db.DB.Unscoped().Delete(appointment).Error; err != nil {
		return utils.FailInternal(c, "Failed to delete appointment", err)
	}

	return utils.Success(c, fiber.StatusOK, "Appointment deleted", nil)
}
