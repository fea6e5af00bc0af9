package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/routes"
)

// setupApp wires the full route surface against a real database. Tests
// skip when DATABASE_URL is not set.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	_ = godotenv.Load("../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	gormDB, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	db.DB = gormDB
	db.Migrate()

	app := fiber.New()
	routes.SetupAuthRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAppointmentRoutes(app)
	routes.SetupPaymentRoutes(app)
	return app
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(res.Body).Decode(&env))
	return res.StatusCode, env
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/accounts/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, "login should succeed: %s", env.Message)

	var data struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Access)
	return data.Access
}

func registerPatient(t *testing.T, app *fiber.App) (token, email string) {
	t.Helper()
	email = fmt.Sprintf("patient-%s@test.com", uuid.NewString()[:8])
	status, env := doJSON(t, app, http.MethodPost, "/api/accounts/register/patient", "", map[string]string{
		"first_name":   "Test",
		"last_name":    "Patient",
		"email":        email,
		"password":     "testpass123",
		"phone_number": "555-0101",
	})
	require.Equal(t, http.StatusCreated, status, "register patient: %s", env.Message)
	return login(t, app, email, "testpass123"), email
}

// registerDoctor creates a doctor account and, when approve is set,
// flips the approval gate directly in the database the way the admin
// screen would.
func registerDoctor(t *testing.T, app *fiber.App, lastName string, approve bool) (token string, profileID uint) {
	t.Helper()
	email := fmt.Sprintf("doctor-%s@test.com", uuid.NewString()[:8])

	form := url.Values{}
	form.Set("first_name", "Test")
	form.Set("last_name", lastName)
	form.Set("email", email)
	form.Set("password", "testpass123")
	form.Set("specialty", "Cardiology")
	form.Set("office_address", "12 Clinic Street")

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/register/doctor", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res.Body.Close()

	var user models.User
	require.NoError(t, db.DB.Where("email = ?", email).First(&user).Error)
	var profile models.DoctorProfile
	require.NoError(t, db.DB.Where("user_id = ?", user.ID).First(&profile).Error)

	if approve {
		require.NoError(t, db.DB.Model(&profile).Update("is_approved", true).Error)
	}

	return login(t, app, email, "testpass123"), profile.ID
}

func createAppointment(t *testing.T, app *fiber.App, patientToken string, doctorID uint, date, start, end string) uint {
	t.Helper()
	status, env := doJSON(t, app, http.MethodPost, "/api/accounts/appointments/create", patientToken, map[string]interface{}{
		"doctor":           doctorID,
		"appointment_date": date,
		"start_time":       start,
		"end_time":         end,
		"reason":           "checkup",
	})
	require.Equal(t, http.StatusCreated, status, "create appointment: %s", env.Message)

	var appt struct {
		ID     uint   `json:"ID"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &appt))
	require.Equal(t, "pending", appt.Status)
	return appt.ID
}

func TestAppointmentLifecycle(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	doctorToken, doctorID := registerDoctor(t, app, "Lifecycle", true)

	apptID := createAppointment(t, app, patientToken, doctorID, "2025-03-10", "09:00", "10:00")

	// Same tuple again is rejected.
	status, env := doJSON(t, app, http.MethodPost, "/api/accounts/appointments/create", patientToken, map[string]interface{}{
		"doctor":           doctorID,
		"appointment_date": "2025-03-10",
		"start_time":       "09:00",
		"end_time":         "10:00",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "already booked")

	// Doctor confirms.
	status, env = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/confirm/%d", apptID), doctorToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.NotContains(t, string(env.Data), `"password":`,
		"stored hashes must not serialize into responses")

	var confirmed models.Appointment
	require.NoError(t, db.DB.First(&confirmed, apptID).Error)
	assert.Equal(t, models.StatusConfirmed, confirmed.Status)

	// Re-confirming a confirmed appointment is rejected.
	status, _ = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/confirm/%d", apptID), doctorToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Patient cancels with a message.
	status, env = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/%d/cancel", apptID), patientToken, map[string]string{
			"cancellation_message": "can't attend",
		})
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, string(env.Data), `"password":`)

	var cancelled models.Appointment
	require.NoError(t, db.DB.First(&cancelled, apptID).Error)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, "can't attend", cancelled.Reason)

	// Either party may delete once cancelled.
	status, _ = doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/accounts/appointments/%d/delete", apptID), doctorToken, nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	db.DB.Model(&models.Appointment{}).Where("id = ?", apptID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestConfirmRequiresOwningDoctor(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	_, doctorID := registerDoctor(t, app, "Owner", true)
	otherToken, _ := registerDoctor(t, app, "Other", true)

	apptID := createAppointment(t, app, patientToken, doctorID, "2025-03-11", "10:00", "11:00")

	status, _ := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/confirm/%d", apptID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Patients cannot confirm at all.
	status, _ = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/confirm/%d", apptID), patientToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestCancelThirdPartyForbidden(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	strangerToken, _ := registerPatient(t, app)
	_, doctorID := registerDoctor(t, app, "Cancelled", true)

	apptID := createAppointment(t, app, patientToken, doctorID, "2025-03-12", "11:00", "12:00")

	status, _ := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/%d/cancel", apptID), strangerToken, map[string]string{
			"cancellation_message": "nope",
		})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDeleteRequiresCancelledStatus(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	_, doctorID := registerDoctor(t, app, "Deleter", true)

	apptID := createAppointment(t, app, patientToken, doctorID, "2025-03-13", "09:00", "10:00")

	status, env := doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/accounts/appointments/%d/delete", apptID), patientToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "cancelled")
}

func TestSearchExcludesUnapprovedDoctors(t *testing.T) {
	app := setupApp(t)

	lastName := fmt.Sprintf("Hidden%s", uuid.NewString()[:6])
	_, profileID := registerDoctor(t, app, lastName, false)

	status, env := doJSON(t, app, http.MethodGet,
		"/api/accounts/doctors/search?name="+lastName, "", nil)
	require.Equal(t, http.StatusOK, status)

	var results []models.DoctorProfile
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Empty(t, results, "unapproved doctors must not appear in search")

	// Approval makes the same doctor visible.
	require.NoError(t, db.DB.Model(&models.DoctorProfile{}).
		Where("id = ?", profileID).Update("is_approved", true).Error)

	status, env = doJSON(t, app, http.MethodGet,
		"/api/accounts/doctors/search?name="+lastName, "", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
}

func TestDerivedAvailabilityMasksBookedSlot(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	_, doctorID := registerDoctor(t, app, "Slots", true)

	createAppointment(t, app, patientToken, doctorID, "2025-03-14", "09:00", "10:00")

	status, env := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/accounts/appointments/availability/%d/2025-03-14", doctorID), "", nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Slots []struct {
			StartTime string `json:"start_time"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Slots)

	for _, s := range data.Slots {
		if s.StartTime == "09:00" {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available)
		}
	}
}

func TestPostponeConflictRejected(t *testing.T) {
	app := setupApp(t)

	patientToken, _ := registerPatient(t, app)
	doctorToken, doctorID := registerDoctor(t, app, "Mover", true)

	first := createAppointment(t, app, patientToken, doctorID, "2025-03-15", "09:00", "10:00")
	_ = createAppointment(t, app, patientToken, doctorID, "2025-03-15", "10:00", "11:00")

	// Moving the first on top of the second is rejected.
	status, _ := doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/%d/postpone", first), doctorToken, map[string]string{
			"appointment_date": "2025-03-15",
			"start_time":       "10:00",
			"end_time":         "11:00",
			"postpone_reason":  "double booked",
		})
	assert.Equal(t, http.StatusBadRequest, status)

	// A free slot works and stores the reason.
	status, _ = doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/accounts/appointments/%d/postpone", first), doctorToken, map[string]string{
			"appointment_date": "2025-03-16",
			"start_time":       "09:00",
			"end_time":         "10:00",
			"postpone_reason":  "emergency surgery",
		})
	require.Equal(t, http.StatusOK, status)

	var moved models.Appointment
	require.NoError(t, db.DB.First(&moved, first).Error)
	assert.Equal(t, models.StatusPostponed, moved.Status)
	assert.Equal(t, "emergency surgery", moved.Reason)
	assert.Equal(t, "09:00", moved.StartTime)
}

func TestRefreshTokenFlow(t *testing.T) {
	app := setupApp(t)

	_, email := registerPatient(t, app)

	status, env := doJSON(t, app, http.MethodPost, "/api/accounts/login", "", map[string]string{
		"email":    email,
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	status, env = doJSON(t, app, http.MethodPost, "/api/accounts/refresh", "", map[string]string{
		"refresh": data.Refresh,
	})
	require.Equal(t, http.StatusOK, status)

	var refreshed struct {
		Access string `json:"access"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &refreshed))
	assert.NotEmpty(t, refreshed.Access)

	// An access token is not a refresh token, even though both carry
	// the same signature.
	status, _ = doJSON(t, app, http.MethodPost, "/api/accounts/refresh", "", map[string]string{
		"refresh": data.Access,
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestVerifyEmailFlow(t *testing.T) {
	app := setupApp(t)

	_, email := registerPatient(t, app)

	var user models.User
	require.NoError(t, db.DB.Where("email = ?", email).First(&user).Error)
	require.NotEmpty(t, user.VerificationToken)
	require.False(t, user.IsVerified)

	status, _ := doJSON(t, app, http.MethodGet,
		"/api/accounts/verify-email/"+user.VerificationToken, "", nil)
	require.Equal(t, http.StatusOK, status)

	require.NoError(t, db.DB.First(&user, user.ID).Error)
	assert.True(t, user.IsVerified)
	assert.Empty(t, user.VerificationToken, "the token is single-use")

	// A burnt or made-up token is rejected.
	status, _ = doJSON(t, app, http.MethodGet,
		"/api/accounts/verify-email/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
