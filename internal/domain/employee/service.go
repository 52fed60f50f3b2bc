package employee

import "context"

type Service interface {
	// Create adds an employee profile to the caller's company. The target
	// user is looked up (or invited) by email.
	Create(ctx context.Context, req CreateEmployeeRequest) (*EmployeeResponse, error)
	Get(ctx context.Context, id string) (*EmployeeResponse, error)
	// GetMe returns the calling user's own employee profile.
	GetMe(ctx context.Context) (*EmployeeResponse, error)
	// List returns the company's employees, optionally filtered to one
	// manager's reports.
	List(ctx context.Context, managerID string) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*EmployeeResponse, error)
}
