package attendance

import "errors"

var (
	ErrAlreadyCheckedIn   = errors.New("already checked in for today")
	ErrAlreadyCheckedOut  = errors.New("already checked out for today")
	ErrNoCheckInRecord    = errors.New("no check-in record found for today")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
