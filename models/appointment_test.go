package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to postponed", StatusPending, StatusPostponed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"confirmed to postponed", StatusConfirmed, StatusPostponed, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to confirmed", StatusConfirmed, StatusConfirmed, false},
		{"cancelled to confirmed", StatusCancelled, StatusConfirmed, false},
		{"cancelled to postponed", StatusCancelled, StatusPostponed, false},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, false},
		{"postponed to postponed", StatusPostponed, StatusPostponed, true},
		{"postponed to cancelled", StatusPostponed, StatusCancelled, true},
		{"postponed to confirmed", StatusPostponed, StatusConfirmed, false},
		{"pending to pending", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsParty(t *testing.T) {
	appointment := Appointment{
		PatientID:     7,
		DoctorProfile: DoctorProfile{UserID: 12},
	}

	assert.True(t, appointment.IsParty(7), "patient is a party")
	assert.True(t, appointment.IsParty(12), "doctor is a party")
	assert.False(t, appointment.IsParty(99), "third parties are not")
}
