package employee

import "context"

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id string) (*Employee, error)
	GetByUserID(ctx context.Context, userID string) (*Employee, error)
	ListByCompany(ctx context.Context, companyID string) ([]Employee, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
	Update(ctx context.Context, e *Employee) error
}
