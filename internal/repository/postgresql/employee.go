package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
)

const employeeColumns = `
	id, user_id, company_id, manager_id, first_name, last_name, email,
	department, position, joined_at, created_at, updated_at
`

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, user_id, company_id, manager_id, first_name, last_name, email, department, position, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.UserID, e.CompanyID, e.ManagerID, e.FirstName, e.LastName,
		e.Email, e.Department, e.Position, e.JoinedAt,
	).Scan(&e.CreatedAt, &e.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmployeeAlreadyExists
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	return r.getBy(ctx, "id = $1", id)
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	return r.getBy(ctx, "user_id = $1", userID)
}

func (r *employeeRepository) getBy(ctx context.Context, where string, arg any) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` LIMIT 1`

	var e employee.Employee
	err := q.QueryRow(ctx, query, arg).Scan(
		&e.ID, &e.UserID, &e.CompanyID, &e.ManagerID, &e.FirstName, &e.LastName,
		&e.Email, &e.Department, &e.Position, &e.JoinedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return &e, nil
}

func (r *employeeRepository) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.list(ctx, "company_id = $1", companyID)
}

func (r *employeeRepository) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return r.list(ctx, "manager_id = $1", managerID)
}

func (r *employeeRepository) list(ctx context.Context, where string, arg any) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where + ` ORDER BY first_name, last_name`

	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CompanyID, &e.ManagerID, &e.FirstName, &e.LastName,
			&e.Email, &e.Department, &e.Position, &e.JoinedAt, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET manager_id = $2, first_name = $3, last_name = $4, department = $5, position = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		e.ID, e.ManagerID, e.FirstName, e.LastName, e.Department, e.Position,
	).Scan(&e.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}
