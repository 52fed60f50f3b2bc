package company

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhive/hrms-backend-go/internal/domain/company"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
	"github.com/staffhive/hrms-backend-go/internal/repository/postgresql"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.Repository
	userRepo     user.Repository
	employeeRepo employee.Repository
}

func NewCompanyService(db *database.DB, repo company.Repository, userRepo user.Repository, employeeRepo employee.Repository) company.Service {
	return &CompanyServiceImpl{
		db:           db,
		Repository:   repo,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

// Create implements company.Service. The creating user becomes the owner
// and gets an employee profile in one transaction.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (*company.CompanyResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	userData, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if userData.CompanyID != nil {
		return nil, company.ErrUserAlreadyInCompany
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	newCompany := &company.Company{
		ID:       uuid.New().String(),
		Name:     req.Name,
		Timezone: timezone,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.Repository.Create(txCtx, newCompany); err != nil {
			return err
		}

		userData.CompanyID = &newCompany.ID
		userData.Role = user.RoleOwner
		if err := s.userRepo.Update(txCtx, userData); err != nil {
			return err
		}

		return s.employeeRepo.Create(txCtx, &employee.Employee{
			ID:        uuid.New().String(),
			UserID:    userData.ID,
			CompanyID: newCompany.ID,
			FirstName: userData.Email,
			Email:     userData.Email,
			JoinedAt:  time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return mapCompanyToResponse(newCompany), nil
}

// Get implements company.Service.
func (s *CompanyServiceImpl) Get(ctx context.Context) (*company.CompanyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.Repository.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	return mapCompanyToResponse(c), nil
}

// Update implements company.Service.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.CreateCompanyRequest) (*company.CompanyResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.Repository.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	c.Name = req.Name
	if req.Timezone != "" {
		c.Timezone = req.Timezone
	}

	if err := s.Repository.Update(ctx, c); err != nil {
		return nil, err
	}

	return mapCompanyToResponse(c), nil
}

func userIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func mapCompanyToResponse(c *company.Company) *company.CompanyResponse {
	return &company.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
	}
}
