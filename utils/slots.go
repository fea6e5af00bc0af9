package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// Slot is one derived 1-hour candidate inside a doctor's office hours.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// ParseClock parses a "HH:MM" 24h wall-clock string.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	return t, nil
}

// DeriveSlots walks 1-hour increments from the doctor's office-hours
// start to end, marking each slot unavailable when its start time
// appears in booked. A trailing window shorter than an hour is dropped.
func DeriveSlots(officeStart, officeEnd string, booked map[string]bool) ([]Slot, error) {
	start, err := ParseClock(officeStart)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(officeEnd)
	if err != nil {
		return nil, err
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("office hours start %s is not before end %s", officeStart, officeEnd)
	}

	var slots []Slot
	for cur := start; !cur.Add(time.Hour).After(end); cur = cur.Add(time.Hour) {
		from := cur.Format(clockLayout)
		slots = append(slots, Slot{
			StartTime: from,
			EndTime:   cur.Add(time.Hour).Format(clockLayout),
			Available: !booked[from],
		})
	}
	return slots, nil
}
