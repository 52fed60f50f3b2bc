package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeAlreadyExists  = errors.New("employee already exists for this user")
	ErrManagerNotFound        = errors.New("manager not found")
	ErrCannotManageThemselves = errors.New("employee cannot be their own manager")
)
