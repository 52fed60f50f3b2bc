package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2025, 6, 16, hour, min, sec, 0, time.UTC)
}

func TestCheckInStatusBoundary(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, StatusPresent, policy.CheckInStatus(at(9, 50, 0)))
	assert.Equal(t, StatusPresent, policy.CheckInStatus(at(11, 0, 0)), "exactly 11:00:00 is on time")
	assert.Equal(t, StatusHalfDay, policy.CheckInStatus(at(11, 0, 1)))
	assert.Equal(t, StatusHalfDay, policy.CheckInStatus(at(11, 30, 0)))
}

func TestCheckInNeverLate(t *testing.T) {
	policy := DefaultPolicy()

	for hour := 0; hour < 24; hour++ {
		status := policy.CheckInStatus(at(hour, 0, 1))
		assert.NotEqual(t, StatusLate, status)
	}
}

func TestCheckOutStatusBoundary(t *testing.T) {
	policy := DefaultPolicy()

	checkIn := at(9, 0, 0)

	status, hours := policy.CheckOutStatus(checkIn, checkIn.Add(9*time.Hour))
	assert.Equal(t, StatusFullDay, status)
	assert.Equal(t, 9.0, hours)

	status, hours = policy.CheckOutStatus(checkIn, checkIn.Add(8*time.Hour+59*time.Minute+24*time.Second))
	assert.Equal(t, StatusHalfDay, status)
	assert.Equal(t, 8.99, hours)
}

func TestCheckOutOverwritesCheckInStatus(t *testing.T) {
	policy := DefaultPolicy()

	// A late arrival that still works long enough ends the day full-day.
	checkIn := at(11, 30, 0)
	assert.Equal(t, StatusHalfDay, policy.CheckInStatus(checkIn))

	status, hours := policy.CheckOutStatus(checkIn, checkIn.Add(9*time.Hour+30*time.Minute))
	assert.Equal(t, StatusFullDay, status)
	assert.Equal(t, 9.5, hours)

	// An on-time arrival that leaves early ends the day half-day.
	checkIn = at(9, 50, 0)
	assert.Equal(t, StatusPresent, policy.CheckInStatus(checkIn))

	status, hours = policy.CheckOutStatus(checkIn, at(18, 20, 0))
	assert.Equal(t, StatusHalfDay, status)
	assert.Equal(t, 8.5, hours)
}

func TestTotalHoursRounding(t *testing.T) {
	policy := DefaultPolicy()

	checkIn := at(9, 0, 0)
	_, hours := policy.CheckOutStatus(checkIn, checkIn.Add(7*time.Hour+20*time.Minute))
	assert.Equal(t, 7.33, hours)
}
