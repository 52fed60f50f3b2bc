package attendance

import (
	"math"
	"time"
)

// Policy holds the thresholds the status resolver applies. Values are
// injected so callers and tests can supply their own.
type Policy struct {
	// LateEntryThreshold is a wall-clock time of day. Check-ins strictly
	// after it are short days.
	LateEntryThreshold time.Duration
	// FullDayHoursThreshold is the minimum worked hours for a full day.
	FullDayHoursThreshold float64
	// HalfDayHoursThreshold is carried in configuration for reporting
	// but no resolver rule currently reads it.
	HalfDayHoursThreshold float64
}

// DefaultPolicy mirrors the standard company policy: late entry after
// 11:00, full day at 9 hours.
func DefaultPolicy() Policy {
	return Policy{
		LateEntryThreshold:    11 * time.Hour,
		FullDayHoursThreshold: 9.0,
		HalfDayHoursThreshold: 4.5,
	}
}

// CheckInStatus resolves the status assigned at check-in. The boundary is
// exclusive: checking in at exactly the threshold still counts as present.
func (p Policy) CheckInStatus(checkIn time.Time) Status {
	if timeOfDay(checkIn) > p.LateEntryThreshold {
		return StatusHalfDay
	}
	return StatusPresent
}

// CheckOutStatus resolves the final status and worked hours at check-out.
// It replaces whatever status was assigned at check-in.
func (p Policy) CheckOutStatus(checkIn time.Time, checkOut time.Time) (Status, float64) {
	hours := round2(checkOut.Sub(checkIn).Hours())
	if hours >= p.FullDayHoursThreshold {
		return StatusFullDay, hours
	}
	return StatusHalfDay, hours
}

func timeOfDay(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
