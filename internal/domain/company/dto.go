package company

import (
	"time"

	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type CreateCompanyRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

func (r CreateCompanyRequest) Validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsEmpty(r.Timezone) {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "timezone is invalid"})
		}
	}

	return errs
}

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}
