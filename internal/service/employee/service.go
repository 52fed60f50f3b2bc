package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
	"github.com/staffhive/hrms-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.Repository
	userRepo user.Repository
}

func NewEmployeeService(db *database.DB, repo employee.Repository, userRepo user.Repository) employee.Service {
	return &EmployeeServiceImpl{
		db:         db,
		Repository: repo,
		userRepo:   userRepo,
	}
}

// Create implements employee.Service. The target user account is created
// with a pending password if the email is unknown.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (*employee.EmployeeResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.ManagerID != nil {
		manager, err := s.Repository.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, employee.ErrManagerNotFound
		}
		if manager.CompanyID != companyID {
			return nil, employee.ErrManagerNotFound
		}
	}

	joinedAt := time.Now()
	if req.JoinedAt != "" {
		joinedAt, _ = validator.IsValidDate(req.JoinedAt)
	}

	var created *employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		userData, err := s.userRepo.GetByEmail(txCtx, req.Email)
		if err != nil {
			if !errors.Is(err, user.ErrUserNotFound) {
				return err
			}
			userData = &user.User{
				ID:        uuid.New().String(),
				Email:     req.Email,
				Role:      user.RoleEmployee,
				CompanyID: &companyID,
			}
			if err := s.userRepo.Create(txCtx, userData); err != nil {
				return err
			}
		} else {
			if userData.CompanyID != nil && *userData.CompanyID != companyID {
				return employee.ErrEmployeeAlreadyExists
			}
			userData.CompanyID = &companyID
			if userData.Role == user.RolePending {
				userData.Role = user.RoleEmployee
			}
			if err := s.userRepo.Update(txCtx, userData); err != nil {
				return err
			}
		}

		created = &employee.Employee{
			ID:         uuid.New().String(),
			UserID:     userData.ID,
			CompanyID:  companyID,
			ManagerID:  req.ManagerID,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Department: req.Department,
			Position:   req.Position,
			JoinedAt:   joinedAt,
		}
		return s.Repository.Create(txCtx, created)
	})
	if err != nil {
		return nil, err
	}

	return mapEmployeeToResponse(created), nil
}

// Get implements employee.Service.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (*employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	e, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CompanyID != companyID {
		return nil, employee.ErrEmployeeNotFound
	}

	return mapEmployeeToResponse(e), nil
}

// GetMe implements employee.Service.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context) (*employee.EmployeeResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	e, err := s.Repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return mapEmployeeToResponse(e), nil
}

// List implements employee.Service.
func (s *EmployeeServiceImpl) List(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var employees []employee.Employee
	if managerID != "" {
		employees, err = s.Repository.ListByManager(ctx, managerID)
	} else {
		employees, err = s.Repository.ListByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for i := range employees {
		if employees[i].CompanyID != companyID {
			continue
		}
		responses = append(responses, *mapEmployeeToResponse(&employees[i]))
	}

	return responses, nil
}

// Update implements employee.Service.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (*employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	e, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.CompanyID != companyID {
		return nil, employee.ErrEmployeeNotFound
	}

	if req.ManagerID != nil {
		if *req.ManagerID == e.ID {
			return nil, employee.ErrCannotManageThemselves
		}
		manager, err := s.Repository.GetByID(ctx, *req.ManagerID)
		if err != nil || manager.CompanyID != companyID {
			return nil, employee.ErrManagerNotFound
		}
		e.ManagerID = req.ManagerID
	}
	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Department != nil {
		e.Department = req.Department
	}
	if req.Position != nil {
		e.Position = req.Position
	}

	if err := s.Repository.Update(ctx, e); err != nil {
		return nil, err
	}

	return mapEmployeeToResponse(e), nil
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

func mapEmployeeToResponse(e *employee.Employee) *employee.EmployeeResponse {
	return &employee.EmployeeResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		CompanyID:  e.CompanyID,
		ManagerID:  e.ManagerID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Department: e.Department,
		Position:   e.Position,
		JoinedAt:   e.JoinedAt,
	}
}
