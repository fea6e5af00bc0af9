package models

import (
	"gorm.io/gorm"
)

// DoctorProfile extends a User with role=doctor. A doctor only shows up
// in public search once an admin flips IsApproved.
type DoctorProfile struct {
	gorm.Model
	UserID            uint    `json:"user_id" gorm:"uniqueIndex"`
	User              User    `json:"user" gorm:"foreignKey:UserID"`
	Specialty         string  `json:"specialty"`
	OfficeAddress     string  `json:"office_address"`
	OfficeNumber      string  `json:"office_number"`
	OfficeHoursStart  string  `json:"office_hours_start" gorm:"default:09:00"` // "HH:MM" 24h
	OfficeHoursEnd    string  `json:"office_hours_end" gorm:"default:17:00"`
	ConsultationFee   float64 `json:"consultation_fee"`
	Bio               string  `json:"bio"`
	YearsExperience   int     `json:"years_experience"`
	Rating            float64 `json:"rating" gorm:"type:decimal(2,1);default:0"`
	IsApproved        bool    `json:"is_approved" gorm:"default:false"`
	MedicalLicenseURL string  `json:"medical_license_url"`
	PhdCertificateURL string  `json:"phd_certificate_url"`
	ProfilePictureURL string  `json:"profile_picture_url"`
}

type PatientProfile struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"uniqueIndex"`
	User           User   `json:"user" gorm:"foreignKey:UserID"`
	PhoneNumber    string `json:"phone_number"`
	MedicalHistory string `json:"medical_history"`
}
