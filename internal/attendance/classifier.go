package attendance

import (
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/models"
)

// Classify maps a check-in time to "present" or "late". A check-in is late
// once the wall clock passes shiftStartHour:graceMinutes; exactly at the
// grace boundary still counts as present.
func Classify(t time.Time, shiftStartHour, graceMinutes int) string {
	if t.Hour() > shiftStartHour {
		return models.StatusLate
	}
	if t.Hour() == shiftStartHour && t.Minute() > graceMinutes {
		return models.StatusLate
	}
	return models.StatusPresent
}
