package leave

import (
	"time"

	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	LeaveType Type    `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    *string `json:"reason"`
}

func (r SubmitRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !r.LeaveType.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave_type is invalid"})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date is required"})
	} else if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date is required"})
	} else if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}

	return errs
}

type RejectRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

func (r RejectRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RejectionReason) {
		errs = append(errs, validator.ValidationError{Field: "rejection_reason", Message: "rejection_reason is required"})
	}

	return errs
}

type ListRequestsFilter struct {
	EmployeeID string
	Status     string
}

type RequestResponse struct {
	ID              string        `json:"id"`
	EmployeeID      string        `json:"employee_id"`
	LeaveType       Type          `json:"leave_type"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	TotalDays       int           `json:"total_days"`
	Status          RequestStatus `json:"status"`
	Reason          *string       `json:"reason,omitempty"`
	ApprovedBy      *string       `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

type TypeBalanceResponse struct {
	Total     int `json:"total"`
	Used      int `json:"used"`
	Available int `json:"available"`
}

type BalanceResponse struct {
	EmployeeID string              `json:"employee_id"`
	Year       int                 `json:"year"`
	Sick       TypeBalanceResponse `json:"sick"`
	Casual     TypeBalanceResponse `json:"casual"`
	Earned     TypeBalanceResponse `json:"earned"`
	Maternity  TypeBalanceResponse `json:"maternity"`
	Paternity  TypeBalanceResponse `json:"paternity"`
}
