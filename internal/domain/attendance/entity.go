package attendance

import "time"

// Status is the resolved state of an attendance record.
type Status string

const (
	StatusPresent      Status = "present"
	StatusLate         Status = "late"
	StatusHalfDay      Status = "half-day"
	StatusFullDay      Status = "full-day"
	StatusAbsent       Status = "absent"
	StatusWorkFromHome Status = "work-from-home"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusFullDay, StatusAbsent, StatusWorkFromHome:
		return true
	}
	return false
}

type Attendance struct {
	ID           string
	EmployeeID   string
	CompanyID    string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       Status
	TotalHours   *float64
	Location     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
