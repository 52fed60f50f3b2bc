package employee

import (
	"time"

	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Email      string  `json:"email"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	ManagerID  *string `json:"manager_id"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	JoinedAt   string  `json:"joined_at"`
}

func (r CreateEmployeeRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email is invalid"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	}
	if !validator.IsEmpty(r.JoinedAt) {
		if _, ok := validator.IsValidDate(r.JoinedAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "joined_at", Message: "joined_at must be in YYYY-MM-DD format"})
		}
	}

	return errs
}

type UpdateEmployeeRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	ManagerID  *string `json:"manager_id"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	CompanyID  string    `json:"company_id"`
	ManagerID  *string   `json:"manager_id,omitempty"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Department *string   `json:"department,omitempty"`
	Position   *string   `json:"position,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}
