package models

import (
	"time"

	"gorm.io/gorm"
)

// AvailabilitySlot is a doctor-declared bookable window at a clinic.
// Slots are soft-deleted via IsDeleted so past bookings keep their
// reference. Distinct from the derived office-hours slots returned by
// the availability endpoint.
type AvailabilitySlot struct {
	gorm.Model
	DoctorProfileID uint          `json:"doctor_profile_id"`
	DoctorProfile   DoctorProfile `json:"doctor_profile" gorm:"foreignKey:DoctorProfileID"`
	Date            time.Time     `json:"date"`
	StartTime       string        `json:"start_time"` // "HH:MM" 24h
	EndTime         string        `json:"end_time"`
	Clinic          string        `json:"clinic"`
	IsDeleted       bool          `json:"is_deleted" gorm:"default:false"`
}

// HasDuplicate reports whether another live slot for the same doctor
// already starts at the same date and time.
func (s *AvailabilitySlot) HasDuplicate(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&AvailabilitySlot{}).
		Where("doctor_profile_id = ? AND date = ? AND start_time = ? AND is_deleted = ?",
			s.DoctorProfileID, s.Date, s.StartTime, false).
		Where("id != ?", s.ID).
		Count(&count).Error
	return count > 0, err
}
