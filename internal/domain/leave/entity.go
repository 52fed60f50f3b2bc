package leave

import "time"

// Type is a leave category. All types except unpaid are debited against a
// yearly balance.
type Type string

const (
	TypeSick      Type = "sick"
	TypeCasual    Type = "casual"
	TypeEarned    Type = "earned"
	TypeMaternity Type = "maternity"
	TypePaternity Type = "paternity"
	TypeUnpaid    Type = "unpaid"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeSick, TypeCasual, TypeEarned, TypeMaternity, TypePaternity, TypeUnpaid:
		return true
	}
	return false
}

// BalanceTracked reports whether the type is debited against a balance.
func (t Type) BalanceTracked() bool {
	switch t {
	case TypeSick, TypeCasual, TypeEarned, TypeMaternity, TypePaternity:
		return true
	case TypeUnpaid:
		return false
	}
	return false
}

// TrackedTypes lists the balance-tracked leave types.
func TrackedTypes() []Type {
	return []Type{TypeSick, TypeCasual, TypeEarned, TypeMaternity, TypePaternity}
}

// RequestStatus is the lifecycle state of a leave request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

type Request struct {
	ID              string
	EmployeeID      string
	CompanyID       string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	TotalDays       int
	Status          RequestStatus
	Reason          *string
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TypeBalance is the allotment and consumption of one leave type.
type TypeBalance struct {
	Total int
	Used  int
}

func (b TypeBalance) Available() int {
	return b.Total - b.Used
}

// Balance holds one employee's yearly allotments per leave type.
type Balance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Year       int
	Sick       TypeBalance
	Casual     TypeBalance
	Earned     TypeBalance
	Maternity  TypeBalance
	Paternity  TypeBalance
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ForType returns the balance counters for a tracked type. Unpaid leave
// has no counters and reports ok=false.
func (b *Balance) ForType(t Type) (TypeBalance, bool) {
	switch t {
	case TypeSick:
		return b.Sick, true
	case TypeCasual:
		return b.Casual, true
	case TypeEarned:
		return b.Earned, true
	case TypeMaternity:
		return b.Maternity, true
	case TypePaternity:
		return b.Paternity, true
	case TypeUnpaid:
		return TypeBalance{}, false
	}
	return TypeBalance{}, false
}

// DefaultAllotment is the yearly allotment granted when a balance row is
// created lazily on first use.
type DefaultAllotment struct {
	Sick      int
	Casual    int
	Earned    int
	Maternity int
	Paternity int
}
