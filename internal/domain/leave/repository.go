package leave

import "context"

type RequestRepository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id string, companyID string) (*Request, error)
	Update(ctx context.Context, r *Request) error
	List(ctx context.Context, companyID string, filter ListRequestsFilter) ([]Request, error)
}

type BalanceRepository interface {
	Create(ctx context.Context, b *Balance) error
	GetByEmployeeAndYear(ctx context.Context, employeeID string, companyID string, year int) (*Balance, error)
	// AdjustUsed applies a relative delta to one type's used counter in a
	// single atomic statement. Delta may be negative.
	AdjustUsed(ctx context.Context, id string, leaveType Type, delta int) error
}
