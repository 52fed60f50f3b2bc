package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/staffhive/hrms-backend-go/internal/domain/leave"
	"github.com/staffhive/hrms-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

func (r *leaveBalanceRepository) Create(ctx context.Context, b *leave.Balance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (
			id, employee_id, company_id, year,
			sick_total, sick_used, casual_total, casual_used,
			earned_total, earned_used, maternity_total, maternity_used,
			paternity_total, paternity_used
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, year) DO NOTHING
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		b.ID, b.EmployeeID, b.CompanyID, b.Year,
		b.Sick.Total, b.Sick.Used, b.Casual.Total, b.Casual.Used,
		b.Earned.Total, b.Earned.Used, b.Maternity.Total, b.Maternity.Used,
		b.Paternity.Total, b.Paternity.Used,
	).Scan(&b.CreatedAt, &b.UpdatedAt)

	if err != nil {
		// A concurrent creator won the insert; the caller re-reads.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to create leave balance: %w", err)
	}

	return nil
}

func (r *leaveBalanceRepository) GetByEmployeeAndYear(ctx context.Context, employeeID string, companyID string, year int) (*leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, year,
			   sick_total, sick_used, casual_total, casual_used,
			   earned_total, earned_used, maternity_total, maternity_used,
			   paternity_total, paternity_used, created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND company_id = $2 AND year = $3
		LIMIT 1
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, companyID, year).Scan(
		&b.ID, &b.EmployeeID, &b.CompanyID, &b.Year,
		&b.Sick.Total, &b.Sick.Used, &b.Casual.Total, &b.Casual.Used,
		&b.Earned.Total, &b.Earned.Used, &b.Maternity.Total, &b.Maternity.Used,
		&b.Paternity.Total, &b.Paternity.Used, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrBalanceNotFound
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return &b, nil
}

// AdjustUsed applies the delta in a single UPDATE so concurrent approvals
// and cancellations never lose an update.
func (r *leaveBalanceRepository) AdjustUsed(ctx context.Context, id string, leaveType leave.Type, delta int) error {
	column, ok := usedColumn(leaveType)
	if !ok {
		return fmt.Errorf("leave type %q has no balance column", leaveType)
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE leave_balances
		SET %s = %s + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`, column, column)

	var updatedID string
	err := q.QueryRow(ctx, query, id, delta).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrBalanceNotFound
		}
		return fmt.Errorf("failed to adjust leave balance: %w", err)
	}

	return nil
}

func usedColumn(t leave.Type) (string, bool) {
	switch t {
	case leave.TypeSick:
		return "sick_used", true
	case leave.TypeCasual:
		return "casual_used", true
	case leave.TypeEarned:
		return "earned_used", true
	case leave.TypeMaternity:
		return "maternity_used", true
	case leave.TypePaternity:
		return "paternity_used", true
	case leave.TypeUnpaid:
		return "", false
	}
	return "", false
}
