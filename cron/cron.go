package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/healix-care/healix-backend/db"
	"github.com/healix-care/healix-backend/models"
	"github.com/healix-care/healix-backend/utils"
)

// StartCronJobs starts the scheduler for appointment reminders
func StartCronJobs() {
	c := cron.New()
	// Run every minute to catch appointments starting in the next hour
	_, err := c.AddFunc("* * * * *", sendAppointmentReminders)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron job scheduler started for appointment reminders")
}

// sendAppointmentReminders emails patients whose confirmed appointment
// starts roughly one hour from now.
func sendAppointmentReminders() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowStart := now.Add(55 * time.Minute).Format("15:04")
	windowEnd := now.Add(65 * time.Minute).Format("15:04")

	var appointments []models.Appointment
	err := db.DB.Preload("Patient").Preload("DoctorProfile.User").
		Where("status = ? AND appointment_date = ?", models.StatusConfirmed, today).
		Where("start_time >= ? AND start_time <= ?", windowStart, windowEnd).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		body := fmt.Sprintf(`<p>Dear %s,</p>
		<p>This is a reminder for your appointment in one hour.</p>
		<ul>
			<li><strong>Doctor:</strong> Dr. %s</li>
			<li><strong>Time:</strong> %s - %s</li>
			<li><strong>Address:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>`,
			appointment.Patient.FullName(),
			appointment.DoctorProfile.User.LastName,
			appointment.StartTime, appointment.EndTime,
			appointment.DoctorProfile.OfficeAddress)

		utils.NotifyEmail(appointment.Patient.Email, "Appointment reminder", body)
	}
}
