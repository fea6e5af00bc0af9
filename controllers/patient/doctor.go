package patient

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/cache"
	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

const dateLayout = "2006-01-02"

// NameFilter is the SQL fragment and arguments produced from a free
// text name query. One token matches either name; two tokens anchor
// first and last name.
type NameFilter struct {
	Clause string
	Args   []interface{}
}

// ParseNameFilter splits a name query on whitespace and builds the
// matching condition against users.first_name / users.last_name.
func ParseNameFilter(name string) *NameFilter {
	tokens := strings.Fields(name)
	switch len(tokens) {
	case 0:
		return nil
	case 1:
		pattern := "%" + tokens[0] + "%"
		return &NameFilter{
			Clause: "(users.first_name ILIKE ? OR users.last_name ILIKE ?)",
			Args:   []interface{}{pattern, pattern},
		}
	default:
		return &NameFilter{
			Clause: "(users.first_name ILIKE ? AND users.last_name ILIKE ?)",
			Args:   []interface{}{tokens[0] + "%", tokens[1] + "%"},
		}
	}
}

// sortColumn maps the public sort keys onto queryable columns.
func sortColumn(sortBy string) string {
	switch sortBy {
	case "experience":
		return "doctor_profiles.years_experience"
	case "rating":
		return "doctor_profiles.rating"
	case "fee":
		return "doctor_profiles.consultation_fee"
	default:
		return "users.last_name"
	}
}

// SearchDoctors filters approved doctors by name, specialty, address,
// experience and rating ranges. Unapproved profiles never appear,
// whatever the filter combination.
func SearchDoctors(c *fiber.Ctx) error {
	query := db.DB.Model(&models.DoctorProfile{}).
		Preload("User").
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("doctor_profiles.is_approved = ?", true)

	if nf := ParseNameFilter(c.Query("name")); nf != nil {
		query = query.Where(nf.Clause, nf.Args...)
	}
	if specialty := c.Query("specialty"); specialty != "" {
		query = query.Where("doctor_profiles.specialty ILIKE ?", "%"+specialty+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("doctor_profiles.office_address ILIKE ?", "%"+location+"%")
	}
	if min := c.QueryInt("min_experience", -1); min >= 0 {
		query = query.Where("doctor_profiles.years_experience >= ?", min)
	}
	if max := c.QueryInt("max_experience", -1); max >= 0 {
		query = query.Where("doctor_profiles.years_experience <= ?", max)
	}
	if min := c.QueryFloat("min_rating", -1); min >= 0 {
		query = query.Where("doctor_profiles.rating >= ?", min)
	}
	if max := c.QueryFloat("max_rating", -1); max >= 0 {
		query = query.Where("doctor_profiles.rating <= ?", max)
	}

	order := sortColumn(c.Query("sort_by"))
	if c.Query("sort_order") == "desc" {
		order += " desc"
	} else {
		order += " asc"
	}

	var doctors []models.DoctorProfile
	if err := query.Order(order).Find(&doctors).Error; err != nil {
		return utils.FailInternal(c, "Failed to search doctors", err)
	}

	for i := range doctors {
		doctors[i].User.Password = ""
	}
	return utils.Success(c, fiber.StatusOK, "Doctors fetched", doctors)
}

// GetDoctor returns one approved doctor's public profile.
func GetDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid doctor ID")
	}

	var doctor models.DoctorProfile
	if err := db.DB.Preload("User").
		Where("id = ? AND is_approved = ?", id, true).
		First(&doctor).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor not found")
	}

	doctor.User.Password = ""
	return utils.Success(c, fiber.StatusOK, "Doctor fetched", doctor)
}

// Availability derives the bookable 1-hour slots for a doctor on a
// date by walking their office hours and masking out slots already
// taken by pending or confirmed appointments. The result is cached.
func Availability(c *fiber.Ctx) error {
	doctorID, err := c.ParamsInt("doctor_id")
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid doctor ID")
	}
	dateStr := c.Params("date")
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
	}

	var doctor models.DoctorProfile
	if err := db.DB.Where("id = ? AND is_approved = ?", doctorID, true).First(&doctor).Error; err != nil {
		return utils.Fail(c, fiber.StatusNotFound, "Doctor not found")
	}

	if cached := cache.GetAvailability(doctor.ID, dateStr); cached != "" {
		var slots []utils.Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return utils.Success(c, fiber.StatusOK, "Availability fetched", fiber.Map{
				"doctor_id": doctor.ID,
				"date":      dateStr,
				"slots":     slots,
			})
		}
	}

	var appointments []models.Appointment
	if err := db.DB.
		Where("doctor_profile_id = ? AND appointment_date = ?", doctor.ID, date).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Find(&appointments).Error; err != nil {
		return utils.FailInternal(c, "Failed to fetch appointments", err)
	}

	booked := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		booked[a.StartTime] = true
	}

	slots, err := utils.DeriveSlots(doctor.OfficeHoursStart, doctor.OfficeHoursEnd, booked)
	if err != nil {
		return utils.FailInternal(c, "Failed to derive slots", err)
	}

	if payload, err := json.Marshal(slots); err == nil {
		cache.SetAvailability(doctor.ID, dateStr, string(payload))
	}

	return utils.Success(c, fiber.StatusOK, "Availability fetched", fiber.Map{
		"doctor_id": doctor.ID,
		"date":      dateStr,
		"slots":     slots,
	})
}
