package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffhive/hrms-backend-go/internal/domain/attendance"
	"github.com/staffhive/hrms-backend-go/internal/domain/company"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.Repository
	companyRepo company.Repository
	policy      attendance.Policy

	now func() time.Time
}

func NewAttendanceService(repo attendance.Repository, companyRepo company.Repository, policy attendance.Policy) attendance.Service {
	return &AttendanceServiceImpl{
		Repository:  repo,
		companyRepo: companyRepo,
		policy:      policy,
		now:         time.Now,
	}
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (*attendance.AttendanceResponse, error) {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	nowLocal, err := s.localNow(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, companyID, dateOf(nowLocal)); err == nil {
		return nil, attendance.ErrAlreadyCheckedIn
	}

	checkIn := nowLocal
	record := &attendance.Attendance{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		Date:        dateOf(nowLocal),
		CheckInTime: &checkIn,
		Status:      s.policy.CheckInStatus(nowLocal),
		Location:    req.Location,
	}

	if err := s.Repository.Create(ctx, record); err != nil {
		return nil, err
	}

	return mapAttendanceToResponse(record), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (*attendance.AttendanceResponse, error) {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	nowLocal, err := s.localNow(ctx, companyID)
	if err != nil {
		return nil, err
	}

	record, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, companyID, dateOf(nowLocal))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNoCheckInRecord
		}
		return nil, err
	}
	if record.CheckOutTime != nil {
		return nil, attendance.ErrAlreadyCheckedOut
	}
	if record.CheckInTime == nil {
		return nil, attendance.ErrNoCheckInRecord
	}

	status, hours := s.policy.CheckOutStatus(*record.CheckInTime, nowLocal)

	checkOut := nowLocal
	record.CheckOutTime = &checkOut
	record.Status = status
	record.TotalHours = &hours

	if err := s.Repository.Update(ctx, record); err != nil {
		return nil, err
	}

	return mapAttendanceToResponse(record), nil
}

// GetToday implements attendance.Service.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	nowLocal, err := s.localNow(ctx, companyID)
	if err != nil {
		return nil, err
	}

	record, err := s.Repository.GetByEmployeeAndDate(ctx, employeeID, companyID, dateOf(nowLocal))
	if err != nil {
		return nil, err
	}

	return mapAttendanceToResponse(record), nil
}

// List implements attendance.Service.
func (s *AttendanceServiceImpl) List(ctx context.Context, req attendance.ListAttendanceRequest) ([]attendance.AttendanceResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	filter := attendance.ListFilter{CompanyID: companyID}

	// Regular employees only see their own records.
	if role == user.RoleEmployee {
		filter.EmployeeID = employeeID
	} else if req.EmployeeID != "" {
		filter.EmployeeID = req.EmployeeID
	}

	if req.StartDate != "" {
		start, _ := validator.IsValidDate(req.StartDate)
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, _ := validator.IsValidDate(req.EndDate)
		filter.EndDate = &end
	}

	records, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.AttendanceResponse, len(records))
	for i := range records {
		responses[i] = *mapAttendanceToResponse(&records[i])
	}

	return responses, nil
}

// localNow returns the current time in the company's configured timezone.
func (s *AttendanceServiceImpl) localNow(ctx context.Context, companyID string) (time.Time, error) {
	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return time.Time{}, err
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		loc = time.UTC
	}

	return s.now().In(loc), nil
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func claimsFromContext(ctx context.Context) (companyID string, employeeID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)

	return companyID, employeeID, user.Role(roleStr), nil
}

func mapAttendanceToResponse(a *attendance.Attendance) *attendance.AttendanceResponse {
	return &attendance.AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		Date:         a.Date.Format("2006-01-02"),
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		Status:       a.Status,
		TotalHours:   a.TotalHours,
		Location:     a.Location,
	}
}
