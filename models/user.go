package models

import (
	"time"
)

type UserRole string

const (
	RolePatient UserRole = "patient"
	RoleDoctor  UserRole = "doctor"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Username          string          `json:"username" gorm:"unique"`
	Email             string          `json:"email" gorm:"unique"`
	Password          string          `json:"password,omitempty"`
	Role              UserRole        `json:"role" gorm:"default:patient"`
	IsVerified        bool            `json:"is_verified"`
	VerificationToken string          `json:"-"`
	BirthDate         *time.Time      `json:"birth_date,omitempty"`
	DoctorProfile     *DoctorProfile  `json:"doctor_profile,omitempty" gorm:"foreignKey:UserID"`
	PatientProfile    *PatientProfile `json:"patient_profile,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FullName joins first and last name for emails and search responses.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
