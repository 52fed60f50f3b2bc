package user

import "time"

// Role determines what a user is allowed to do inside their company.
type Role string

const (
	// RoleOwner is the user who created the company.
	RoleOwner Role = "owner"
	// RoleManager can review and decide leave requests of their reports.
	RoleManager Role = "manager"
	// RoleEmployee is a regular member of a company.
	RoleEmployee Role = "employee"
	// RolePending is a user without a company yet.
	RolePending Role = "pending"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleEmployee, RolePending:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	GoogleID     *string
	Role         Role
	CompanyID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RefreshToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (t RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
