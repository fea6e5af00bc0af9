package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusPostponed AppointmentStatus = "postponed"
)

// Appointment ties one patient to one doctor profile for a single
// date and time window.
type Appointment struct {
	gorm.Model
	PatientID       uint              `json:"patient_id"`
	Patient         User              `json:"patient" gorm:"foreignKey:PatientID"`
	DoctorProfileID uint              `json:"doctor_profile_id"`
	DoctorProfile   DoctorProfile     `json:"doctor_profile" gorm:"foreignKey:DoctorProfileID"`
	AppointmentDate time.Time         `json:"appointment_date"`
	StartTime       string            `json:"start_time"` // "HH:MM" 24h
	EndTime         string            `json:"end_time"`
	Status          AppointmentStatus `json:"status"`
	Reason          string            `json:"reason"`
	Notes           string            `json:"notes"`
	DocumentURL     string            `json:"document_url"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving from the current status to
// newStatus is a legal lifecycle step. Cancelled is terminal; a
// postponed appointment can only be re-postponed or cancelled.
func CanTransition(from, to AppointmentStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusPostponed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusPostponed || to == StatusCancelled
	case StatusPostponed:
		return to == StatusPostponed || to == StatusCancelled
	default:
		return false
	}
}

// UpdateStatus validates and persists a lifecycle transition.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !CanTransition(a.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}
	a.Status = newStatus
	return tx.Save(a).Error
}

// IsParty reports whether the given user is the patient or the doctor
// on this appointment. The DoctorProfile association must be loaded.
func (a *Appointment) IsParty(userID uint) bool {
	return a.PatientID == userID || a.DoctorProfile.UserID == userID
}

// SlotTaken reports whether the doctor already has a pending or
// confirmed appointment for the exact (date, start, end) tuple,
// excluding the appointment itself. Callers run this inside a
// transaction so the check and the write see the same state.
func SlotTaken(tx *gorm.DB, doctorProfileID uint, date time.Time, start, end string, excludeID uint) (bool, error) {
	var count int64
	q := tx.Model(&Appointment{}).
		Where("doctor_profile_id = ? AND appointment_date = ? AND start_time = ? AND end_time = ?",
			doctorProfileID, date, start, end).
		Where("status IN ?", []AppointmentStatus{StatusPending, StatusConfirmed})
	if excludeID != 0 {
		q = q.Where("id != ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
