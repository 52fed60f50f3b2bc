package company

import "errors"

var (
	ErrCompanyNotFound      = errors.New("company not found")
	ErrUserAlreadyInCompany = errors.New("user already belongs to a company")
)
