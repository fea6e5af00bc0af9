package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// ListPendingDoctors returns doctor profiles awaiting approval.
func ListPendingDoctors(c *fiber.Ctx) error {
	var profiles []models.DoctorProfile
	if err := db.DB.Preload("User").Where("is_approved = ?", false).Find(&profiles).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch pending doctors", err)
	}
	for i := range profiles {
		profiles[i].User.Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Pending doctors fetched", profiles)
}

// ApproveDoctor flips the approval gate for a doctor profile, making
// it visible in public search, and notifies the doctor.
func ApproveDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid doctor profile ID")
	}

	var profile models.DoctorProfile
	if err := db.DB.Preload("User").First(&profile, id).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	profile.IsApproved = true
	if err := db.DB.Save(&profile).Error; err != nil {
		return utils.FailInternal(c, "Failed to approve doctor", err)
	}

	utils.NotifyEmail(profile.User.Email, "Your Healix profile has been approved",
		fmt.Sprintf("<p>Dear Dr. %s,</p><p>Your profile has been approved. Patients can now find you in search and book appointments.</p>", profile.User.LastName))

	profile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Doctor approved", profile)
}
