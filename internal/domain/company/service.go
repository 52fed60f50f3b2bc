package company

import "context"

type Service interface {
	// Create creates a company and promotes the calling user to owner.
	Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
	Get(ctx context.Context) (*CompanyResponse, error)
	Update(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error)
}
