package doctor

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/cache"
	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

const dateLayout = "2006-01-02"

// ListAvailability returns the doctor's own live availability slots.
func ListAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	var slots []models.AvailabilitySlot
	if err := db.DB.
		Where("doctor_profile_id = ? AND is_deleted = ?", profile.ID, false).
		Order("date asc, start_time asc").
		Find(&slots).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch availability", err)
	}

	return utils.Success(c, fiber.StatusOK, "Availability fetched", slots)
}

type availabilityInput struct {
	Date      string `json:"date"` // "YYYY-MM-DD"
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Clinic    string `json:"clinic"`
}

// CreateAvailability declares a new bookable window. No two live slots
// for the same doctor may share a date and start time.
func CreateAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	input := new(availabilityInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	fields := map[string]string{}
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		fields["date"] = "date is required, use YYYY-MM-DD"
	}
	start, err := utils.ParseClock(input.StartTime)
	if err != nil {
		fields["start_time"] = err.Error()
	}
	end, err := utils.ParseClock(input.EndTime)
	if err != nil {
		fields["end_time"] = err.Error()
	}
	if len(fields) == 0 && !start.Before(end) {
		fields["end_time"] = "end time must be after start time"
	}
	if len(fields) > 0 {
		return utils.FailValidation(c, "Invalid availability slot", fields)
	}

	slot := models.AvailabilitySlot{
		DoctorProfileID: profile.ID,
		Date:            date,
		StartTime:       input.StartTime,
		EndTime:         input.EndTime,
		Clinic:          input.Clinic,
	}

	dup, err := slot.HasDuplicate(db.DB)
	if err != nil {
		return utils.FailInternal(c, "Failed to check for duplicate slots", err)
	}
	if dup {
		return utils.Fail(c, fiber.StatusBadRequest, "A slot with this date and start time already exists")
	}

	if err := db.DB.Create(&slot).Error; err != nil {
		return utils.FailInternal(c, "Failed to create availability slot", err)
	}

	return utils.Success(c, fiber.StatusCreated, "Availability slot created", slot)
}

// DeleteAvailability soft-deletes one of the doctor's own slots.
func DeleteAvailability(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid slot ID")
	}

	var slot models.AvailabilitySlot
	if err := db.DB.First(&slot, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Availability slot not found")
	}
	if slot.DoctorProfileID != profile.ID {
		return utils.Fail(c, fiber.StatusForbidden, "You can only delete your own slots")
	}

	slot.IsDeleted = true
	if err := db.DB.Save(&slot).Error; err != nil {
		return utils.FailInternal(c, "Failed to delete availability slot", err)
	}

	cache.InvalidateAvailability(profile.ID, slot.Date.Format(dateLayout))
	return utils.Success(c, fiber.StatusOK, "Availability slot deleted", nil)
}
