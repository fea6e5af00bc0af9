package doctor

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/healix-care/healix-backend/cache"
	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// Schedule returns the logged-in doctor's appointments, soonest first.
func Schedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	query := db.DB.Preload("Patient").
		Where("doctor_profile_id = ?", profile.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", models.AppointmentStatus(status))
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date asc, start_time asc").Find(&appointments).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch appointments", err)
	}

	for i := range appointments {
		appointments[i].Patient.Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Schedule fetched", appointments)
}

// Confirm moves a pending appointment to confirmed. Only the owning
// doctor may confirm, and only from pending.
func Confirm(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid appointment ID")
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("DoctorProfile.User").First(&appointment, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}

	if appointment.DoctorProfile.UserID != userID {
		return utils.Fail(c, fiber.StatusForbidden, "You can only confirm your own appointments")
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusConfirmed); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	utils.NotifyEmail(appointment.Patient.Email, "Appointment confirmed",
		fmt.Sprintf(`<p>Dear %s,</p>
		<p>Dr. %s has confirmed your appointment.</p>
		<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
		</ul>`,
			appointment.Patient.FullName(), appointment.DoctorProfile.User.LastName,
			appointment.AppointmentDate.Format(dateLayout), appointment.StartTime, appointment.EndTime))

	appointment.Patient.Password = ""
	appointment.DoctorProfile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Appointment confirmed", appointment)
}

type postponeInput struct {
	AppointmentDate string `json:"appointment_date"` // "YYYY-MM-DD"
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	PostponeReason  string `json:"postpone_reason"`
}

// Postpone moves an appointment to a new date and time. The new slot
// is conflict-checked against the doctor's other live bookings inside
// the same transaction that rewrites the schedule fields.
func Postpone(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid appointment ID")
	}

	input := new(postponeInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	fields := map[string]string{}
	newDate, err := time.Parse(dateLayout, input.AppointmentDate)
	if err != nil {
		fields["appointment_date"] = "date is required, use YYYY-MM-DD"
	}
	if _, err := utils.ParseClock(input.StartTime); err != nil {
		fields["start_time"] = err.Error()
	}
	if _, err := utils.ParseClock(input.EndTime); err != nil {
		fields["end_time"] = err.Error()
	}
	if input.PostponeReason == "" {
		fields["postpone_reason"] = "a reason is required when postponing"
	}
	if len(fields) > 0 {
		return utils.FailValidation(c, "Invalid postpone request", fields)
	}

	var appointment models.Appointment
	if err := db.DB.Preload("Patient").Preload("DoctorProfile.User").First(&appointment, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Appointment not found")
	}

	if appointment.DoctorProfile.UserID != userID {
		return utils.Fail(c, fiber.StatusForbidden, "You can only postpone your own appointments")
	}

	if !models.CanTransition(appointment.Status, models.StatusPostponed) {
		return utils.Fail(c, fiber.StatusBadRequest,
			fmt.Sprintf("cannot postpone a %s appointment", appointment.Status))
	}

	oldDate := appointment.AppointmentDate.Format(dateLayout)

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		taken, err := models.SlotTaken(tx, appointment.DoctorProfileID, newDate, input.StartTime, input.EndTime, appointment.ID)
		if err != nil {
			return err
		}
		if taken {
			return fiber.NewError(fiber.StatusBadRequest, "The new time slot is already booked")
		}

		appointment.AppointmentDate = newDate
		appointment.StartTime = input.StartTime
		appointment.EndTime = input.EndTime
		appointment.Reason = input.PostponeReason
		appointment.Status = models.StatusPostponed
		return tx.Save(&appointment).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		return utils.FailInternal(c, "Failed to postpone appointment", err)
	}

	cache.InvalidateAvailability(appointment.DoctorProfileID, oldDate)
	cache.InvalidateAvailability(appointment.DoctorProfileID, input.AppointmentDate)

	utils.NotifyEmail(appointment.Patient.Email, "Appointment postponed",
		fmt.Sprintf(`<p>Dear %s,</p>
		<p>Dr. %s has postponed your appointment.</p>
		<ul>
			<li><strong>New date:</strong> %s</li>
			<li><strong>New time:</strong> %s - %s</li>
			<li><strong>Reason:</strong> %s</li>
		</ul>`,
			appointment.Patient.FullName(), appointment.DoctorProfile.User.LastName,
			input.AppointmentDate, input.StartTime, input.EndTime, input.PostponeReason))

	appointment.Patient.Password = ""
	appointment.DoctorProfile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Appointment postponed", appointment)
}
