package attendance

import (
	"time"

	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Location *string `json:"location"`
}

type CheckOutRequest struct {
	Location *string `json:"location"`
}

type ListAttendanceRequest struct {
	EmployeeID string
	StartDate  string
	EndDate    string
}

func (r ListAttendanceRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.StartDate) {
		if _, ok := validator.IsValidDate(r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if !validator.IsEmpty(r.EndDate) {
		if _, ok := validator.IsValidDate(r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	return errs
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	Date         string     `json:"date"`
	CheckInTime  *time.Time `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
	Status       Status     `json:"status"`
	TotalHours   *float64   `json:"total_hours"`
	Location     *string    `json:"location,omitempty"`
}
