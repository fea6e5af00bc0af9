package controllers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

type registerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"birth_date"` // "YYYY-MM-DD"

	// Patient fields
	PhoneNumber    string `json:"phone_number"`
	MedicalHistory string `json:"medical_history"`
}

func validateRegister(input *registerInput) map[string]string {
	fields := map[string]string{}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	} else if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if input.FirstName == "" {
		fields["first_name"] = "first name is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// createUser hashes the password and inserts the base user row.
func createUser(input *registerInput, role models.UserRole) (*models.User, error) {
	var existing models.User
	if db.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return nil, fiber.NewError(fiber.StatusConflict, "User with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Username:          input.Username,
		Email:             input.Email,
		Password:          string(hashed),
		Role:              role,
		VerificationToken: uuid.NewString(),
	}
	if user.Username == "" {
		user.Username = input.Email
	}
	if input.BirthDate != "" {
		if bd, err := time.Parse("2006-01-02", input.BirthDate); err == nil {
			user.BirthDate = &bd
		}
	}

	if err := db.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func verificationLink(token string) string {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8000"
	}
	return fmt.Sprintf("%s/api/accounts/verify-email/%s", base, token)
}

// VerifyEmail marks the account verified when the emailed token
// matches, and burns the token.
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return utils.Fail(c, fiber.StatusNotFound, "Invalid verification token")
	}

	var user models.User
	if err := db.DB.Where("verification_token = ?", token).First(&user).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Invalid verification token")
	}

	user.IsVerified = true
	user.VerificationToken = ""
	if err := db.DB.Save(&user).Error; err != nil {
		return utils.FailInternal(c, "Failed to verify email", err)
	}

	return utils.Success(c, fiber.StatusOK, "Email verified", nil)
}

// RegisterPatient creates a patient account with its profile.
func RegisterPatient(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if fields := validateRegister(input); fields != nil {
		return utils.FailValidation(c, "Missing or invalid fields", fields)
	}

	user, err := createUser(input, models.RolePatient)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		return utils.FailInternal(c, "Failed to create user", err)
	}

	profile := models.PatientProfile{
		UserID:         user.ID,
		PhoneNumber:    input.PhoneNumber,
		MedicalHistory: input.MedicalHistory,
	}
	if err := db.DB.Create(&profile).Error; err != nil {
		return utils.FailInternal(c, "Failed to create patient profile", err)
	}

	utils.NotifyEmail(user.Email, "Welcome to Healix",
		fmt.Sprintf(`<p>Dear %s,</p>
		<p>Your patient account has been created. You can now search for doctors and book appointments.</p>
		<p><a href="%s">Verify your email address</a></p>`,
			user.FullName(), verificationLink(user.VerificationToken)))

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "Patient registered successfully", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// RegisterDoctor creates a doctor account from a multipart form, so the
// license and certificate scans can ride along with the text fields.
// The profile starts unapproved and stays out of search until an admin
// approves it.
func RegisterDoctor(c *fiber.Ctx) error {
	input := &registerInput{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		Password:  c.FormValue("password"),
		BirthDate: c.FormValue("birth_date"),
	}
	if fields := validateRegister(input); fields != nil {
		return utils.FailValidation(c, "Missing or invalid fields", fields)
	}

	user, err := createUser(input, models.RoleDoctor)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		return utils.FailInternal(c, "Failed to create user", err)
	}

	profile := models.DoctorProfile{
		UserID:        user.ID,
		Specialty:     c.FormValue("specialty"),
		OfficeAddress: c.FormValue("office_address"),
		OfficeNumber:  c.FormValue("office_number"),
		IsApproved:    false,
	}

	if file, err := c.FormFile("medical_license"); err == nil {
		url, err := uploadFormFile(file, fmt.Sprintf("license_%d", user.ID), "doctor-documents")
		if err != nil {
			log.Printf("Failed to upload medical license for user %d: %v", user.ID, err)
		} else {
			profile.MedicalLicenseURL = url
		}
	}
	if file, err := c.FormFile("phd_certificate"); err == nil {
		url, err := uploadFormFile(file, fmt.Sprintf("certificate_%d", user.ID), "doctor-documents")
		if err != nil {
			log.Printf("Failed to upload PhD certificate for user %d: %v", user.ID, err)
		} else {
			profile.PhdCertificateURL = url
		}
	}

	if err := db.DB.Create(&profile).Error; err != nil {
		return utils.FailInternal(c, "Failed to create doctor profile", err)
	}

	utils.NotifyEmail(user.Email, "Healix registration received",
		fmt.Sprintf(`<p>Dear Dr. %s,</p>
		<p>Your registration is under review. You will be notified once your profile is approved.</p>
		<p><a href="%s">Verify your email address</a></p>`,
			user.LastName, verificationLink(user.VerificationToken)))

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "Doctor registered successfully, pending approval", fiber.Map{
		"user":    user,
		"profile": profile,
	})
}

// RegisterAdmin creates an admin account.
func RegisterAdmin(c *fiber.Ctx) error {
	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if fields := validateRegister(input); fields != nil {
		return utils.FailValidation(c, "Missing or invalid fields", fields)
	}

	user, err := createUser(input, models.RoleAdmin)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return utils.Fail(c, fe.Code, fe.Message)
		}
		return utils.FailInternal(c, "Failed to create user", err)
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusCreated, "Admin registered successfully", fiber.Map{"user": user})
}

// Login handles authentication for every role.
func Login(c *fiber.Ctx) error {
	type loginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	access, err := utils.GenerateAccessToken(&user)
	if err != nil {
		return utils.FailInternal(c, "Failed to generate token", err)
	}
	refresh, err := utils.GenerateRefreshToken(&user)
	if err != nil {
		return utils.FailInternal(c, "Failed to generate refresh token", err)
	}

	return utils.Success(c, fiber.StatusOK, "Login successful", fiber.Map{
		"access":  access,
		"refresh": refresh,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
			"role":     user.Role,
		},
	})
}

// RefreshToken mints a new access token from a valid refresh token.
func RefreshToken(c *fiber.Ctx) error {
	type refreshInput struct {
		Refresh string `json:"refresh"`
	}

	input := new(refreshInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	claims, err := utils.ParseToken(input.Refresh)
	if err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	// Access tokens share the signing key; only refresh tokens may
	// mint new ones.
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	var user models.User
	if err := db.DB.First(&user, uint(id)).Error; err != nil {
		return utils.Fail(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	access, err := utils.GenerateAccessToken(&user)
	if err != nil {
		return utils.FailInternal(c, "Failed to generate token", err)
	}

	return utils.Success(c, fiber.StatusOK, "Token refreshed", fiber.Map{"access": access})
}

// Me returns the profile of the logged-in user.
func Me(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.Preload("DoctorProfile").Preload("PatientProfile").First(&user, userID).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "User not found")
	}

	user.Password = ""
	return utils.Success(c, fiber.StatusOK, "Profile fetched", user)
}

// DoctorApprovalStatus lets an unauthenticated doctor poll whether the
// admin has approved their registration yet.
func DoctorApprovalStatus(c *fiber.Ctx) error {
	email := c.Params("email")

	var user models.User
	if db.DB.Where("email = ? AND role = ?", email, models.RoleDoctor).First(&user).RowsAffected == 0 {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor not found")
	}

	var profile models.DoctorProfile
	if err := db.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor profile not found")
	}

	status := "pending"
	if profile.IsApproved {
		status = "approved"
	}
	return utils.Success(c, fiber.StatusOK, "Approval status fetched", fiber.Map{"status": status})
}
