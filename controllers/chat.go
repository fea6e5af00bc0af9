package controllers

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/healix-care/healix-backend/utils"
)

// ChatRoom hands out the video-call URL for an appointment. The call
// itself is hosted elsewhere; this only builds the room link for a
// party to the appointment.
func ChatRoom(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	appointment, err := loadAppointment(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return utils.Fail(c, fe.Code, fe.Message)
	}

	if !appointment.IsParty(userID) {
		return utils.Fail(c, fiber.StatusForbidden, "You are not a party to this appointment")
	}

	base := os.Getenv("CHAT_BASE_URL")
	if base == "" {
		base = "https://meet.healix.care"
	}

	return utils.Success(c, fiber.StatusOK, "Chat room fetched", fiber.Map{
		"room_url": fmt.Sprintf("%s/room/appointment-%d", base, appointment.ID),
	})
}
