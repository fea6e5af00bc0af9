package doctor

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// profileFor loads the doctor profile owned by the given user.
func profileFor(userID uint) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	if err := db.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfile returns the logged-in doctor's own profile.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	profile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile fetched", profile)
}

type profileInput struct {
	Specialty        string  `json:"specialty" form:"specialty"`
	OfficeAddress    string  `json:"office_address" form:"office_address"`
	OfficeNumber     string  `json:"office_number" form:"office_number"`
	OfficeHoursStart string  `json:"office_hours_start" form:"office_hours_start"`
	OfficeHoursEnd   string  `json:"office_hours_end" form:"office_hours_end"`
	ConsultationFee  float64 `json:"consultation_fee" form:"consultation_fee"`
	Bio              string  `json:"bio" form:"bio"`
	YearsExperience  int     `json:"years_experience" form:"years_experience"`
}

// UpdateProfile updates the doctor's own profile fields. A profile
// picture can ride along as a multipart file.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	profile, err := profileFor(userID)
	if err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	input := new(profileInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Failed to parse request body")
	}

	if input.OfficeHoursStart != "" {
		if _, err := utils.ParseClock(input.OfficeHoursStart); err != nil {
			return utils.FailValidation(c, "Invalid office hours", map[string]string{"office_hours_start": err.Error()})
		}
		profile.OfficeHoursStart = input.OfficeHoursStart
	}
	if input.OfficeHoursEnd != "" {
		if _, err := utils.ParseClock(input.OfficeHoursEnd); err != nil {
			return utils.FailValidation(c, "Invalid office hours", map[string]string{"office_hours_end": err.Error()})
		}
		profile.OfficeHoursEnd = input.OfficeHoursEnd
	}
	if input.Specialty != "" {
		profile.Specialty = input.Specialty
	}
	if input.OfficeAddress != "" {
		profile.OfficeAddress = input.OfficeAddress
	}
	if input.OfficeNumber != "" {
		profile.OfficeNumber = input.OfficeNumber
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.ConsultationFee > 0 {
		profile.ConsultationFee = input.ConsultationFee
	}
	if input.YearsExperience > 0 {
		profile.YearsExperience = input.YearsExperience
	}

	if file, err := c.FormFile("profile_picture"); err == nil {
		f, err := file.Open()
		if err == nil {
			defer f.Close()
			url, err := utils.UploadToCloudinary(f, fmt.Sprintf("doctor_%d", profile.ID), "profile-pictures")
			if err != nil {
				return utils.FailInternal(c, "Failed to upload profile picture", err)
			}
			profile.ProfilePictureURL = url
		}
	}

	if err := db.DB.Save(profile).Error; err != nil {
		return utils.FailInternal(c, "Failed to update profile", err)
	}

	profile.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile updated", profile)
}
