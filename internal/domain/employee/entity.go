package employee

import "time"

type Employee struct {
	ID         string
	UserID     string
	CompanyID  string
	ManagerID  *string
	FirstName  string
	LastName   string
	Email      string
	Department *string
	Position   *string
	JoinedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
