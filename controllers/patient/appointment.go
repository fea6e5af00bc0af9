package patient

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

// CreateAppointment books a slot with a doctor. The duplicate-tuple
// check and the insert run in one transaction so two requests for the
// same slot cannot both succeed.
func CreateAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	input := struct {
		Doctor          uint   `json:"doctor" form:"doctor"`
		AppointmentDate string `json:"appointment_date" form:"appointment_date"`
		StartTime       string `json:"start_time" form:"start_time"`
		EndTime         string `json:"end_time" form:"end_time"`
		Reason          string `json:"reason" form:"reason"`
		Notes           string `json:"notes" form:"notes"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	fields := map[string]string{}
	if input.Doctor == 0 {
		fields["doctor"] = "doctor is required"
	}
	date, err := time.Parse(dateLayout, input.AppointmentDate)
	if err != nil {
		fields["appointment_date"] = "date is required, use YYYY-MM-DD"
	}
	if _, err := utils.ParseClock(input.StartTime); err != nil {
		fields["start_time"] = err.Error()
	}
	if _, err := utils.ParseClock(input.EndTime); err != nil {
		fields["end_time"] = err.Error()
	}
	if len(fields) > 0 {
		return utils.FailValidation(c, "Invalid appointment request", fields)
	}

	var doctor models.DoctorProfile
	if err := db.DB.Preload("User").
		Where("id = ? AND is_approved = ?", input.Doctor, true).
		First(&doctor).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor not found")
	}

	appointment := models.Appointment{
		PatientID:       userID,
		DoctorProfileID: doctor.ID,
		AppointmentDate: date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Reason:          input.Reason,
		Notes:           input.Notes,
		Status:          models.StatusPending,
	}

	// Optional supporting document (referral, lab report).
	if file, err := c.FormFile("document"); err == nil {
		f, err := file.Open()
		if err == nil {
			defer f.Close()
			url, err := utils.UploadToCloudinary(f, fmt.Sprintf("appointment_%d_%d", userID, time.Now().Unix()), "appointment-documents")
			if err != nil {
				return utils.FailInternal(c, "Failed to upload document", err)
			}
			appointment.DocumentURL = url
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		taken, err := models.SlotTaken(tx, doctor.ID, date, input.StartTime, input.EndTime, 0)
		if err != nil {
			return err
		}
		if taken {
			return fiber.NewError(fiber.StatusBadRequest, "This slot is already booked")
		}
		return tx.Create(&appointment).Error
	})
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		return utils.FailInternal(c, "Failed to create appointment", err)
	}

	cache.InvalidateAvailability(doctor.ID, input.AppointmentDate)

	var patient models.User
	if err := db.DB.First(&patient, userID).Error; err == nil {
		details := fmt.Sprintf(`<ul>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>`, input.AppointmentDate, input.StartTime, input.EndTime, appointment.Status)

		utils.NotifyEmail(patient.Email, "Appointment request received",
			fmt.Sprintf("<p>Dear %s,</p><p>Your appointment with Dr. %s has been requested.</p>%s",
				patient.FullName(), doctor.User.LastName, details))
		utils.NotifyEmail(doctor.User.Email, "New appointment request",
			fmt.Sprintf("<p>Dear Dr. %s,</p><p>%s has requested an appointment.</p>%s",
				doctor.User.LastName, patient.FullName(), details))
	}

	return utils.Success(c, fiber.StatusCreated, "Appointment created", appointment)
}

// Schedule returns the logged-in patient's appointments.
func Schedule(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var appointments []models.Appointment
	if err := db.DB.Preload("DoctorProfile.User").
		Where("patient_id = ?", userID).
		Order("appointment_date asc, start_time asc").
		Find(&appointments).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch appointments", err)
	}

	for i := range appointments {
		appointments[i].DoctorProfile.User.Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Schedule fetched", appointments)
}
