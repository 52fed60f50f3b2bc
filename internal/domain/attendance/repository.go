package attendance

import (
	"context"
	"time"
)

type ListFilter struct {
	EmployeeID string
	CompanyID  string
	StartDate  *time.Time
	EndDate    *time.Time
}

type Repository interface {
	// Create inserts a new record. The store enforces uniqueness on
	// (employee_id, date); a duplicate insert returns ErrAlreadyCheckedIn.
	Create(ctx context.Context, a *Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, companyID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
}
