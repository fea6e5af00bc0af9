package patient

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// GetProfile returns the logged-in patient's own profile.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.PatientProfile
	if err := db.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Patient profile not found")
	}

	profile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile fetched", profile)
}

// UpdateProfile updates the patient's phone number and medical history.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var profile models.PatientProfile
	if err := db.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Patient profile not found")
	}

	input := struct {
		PhoneNumber    string `json:"phone_number"`
		MedicalHistory string `json:"medical_history"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	if input.PhoneNumber != "" {
		profile.PhoneNumber = input.PhoneNumber
	}
	if input.MedicalHistory != "" {
		profile.MedicalHistory = input.MedicalHistory
	}

	if err := db.DB.Save(&profile).Error; err != nil {
		return utils.FailInternal(c, "Failed to update profile", err)
	}

	return utils.Success(c, fiber.StatusOK, "Profile updated", profile)
}
