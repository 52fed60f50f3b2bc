package leave

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/domain/leave"
	"github.com/staffhive/hrms-backend-go/internal/domain/notification"
	"github.com/staffhive/hrms-backend-go/internal/domain/user"
	"github.com/staffhive/hrms-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.RequestRepository
	leave.BalanceRepository
	employeeRepo employee.Repository
	notifier     notification.Service
	allotment    leave.DefaultAllotment

	now func() time.Time
}

func NewLeaveService(
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	employeeRepo employee.Repository,
	notifier notification.Service,
	allotment leave.DefaultAllotment,
) leave.Service {
	return &LeaveServiceImpl{
		RequestRepository: requestRepo,
		BalanceRepository: balanceRepo,
		employeeRepo:      employeeRepo,
		notifier:          notifier,
		allotment:         allotment,
		now:               time.Now,
	}
}

// Submit implements leave.Service.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (*leave.RequestResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	if endDate.Before(startDate) {
		return nil, leave.ErrInvalidDateRange
	}
	totalDays := inclusiveDayCount(startDate, endDate)

	// The balance row is always the current calendar year's, even for
	// requests dated into another year.
	balance, err := s.getOrCreateBalance(ctx, employeeID, companyID, s.now().Year())
	if err != nil {
		return nil, err
	}

	if req.LeaveType.BalanceTracked() {
		typeBalance, _ := balance.ForType(req.LeaveType)
		if totalDays > typeBalance.Available() {
			return nil, &leave.InsufficientBalanceError{
				Type:      req.LeaveType,
				Available: typeBalance.Available(),
			}
		}
	}

	request := &leave.Request{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Type:       req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		TotalDays:  totalDays,
		Status:     leave.StatusPending,
		Reason:     req.Reason,
	}

	if err := s.RequestRepository.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notifyManager(ctx, request)

	return mapRequestToResponse(request), nil
}

// Approve implements leave.Service.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID string) (*leave.RequestResponse, error) {
	companyID, approverID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return nil, err
	}
	if request.Status != leave.StatusPending {
		return nil, leave.ErrRequestNotPending
	}

	now := s.now()
	request.Status = leave.StatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now

	if err := s.RequestRepository.Update(ctx, request); err != nil {
		return nil, err
	}

	// The debit lands on the current year's balance row. This is a second
	// independent write after the status update.
	if request.Type.BalanceTracked() {
		balance, err := s.getOrCreateBalance(ctx, request.EmployeeID, companyID, now.Year())
		if err != nil {
			return nil, err
		}
		if err := s.BalanceRepository.AdjustUsed(ctx, balance.ID, request.Type, request.TotalDays); err != nil {
			return nil, err
		}
	}

	s.notifyEmployee(ctx, request, notification.KindLeaveApproved,
		"Leave Request Approved",
		fmt.Sprintf("Your %d-day %s leave request has been approved", request.TotalDays, request.Type))

	return mapRequestToResponse(request), nil
}

// Reject implements leave.Service.
func (s *LeaveServiceImpl) Reject(ctx context.Context, requestID string, req leave.RejectRequest) (*leave.RequestResponse, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, errs
	}

	companyID, approverID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return nil, err
	}
	if request.Status != leave.StatusPending {
		return nil, leave.ErrRequestNotPending
	}

	now := s.now()
	request.Status = leave.StatusRejected
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	request.RejectionReason = &req.RejectionReason

	if err := s.RequestRepository.Update(ctx, request); err != nil {
		return nil, err
	}

	s.notifyEmployee(ctx, request, notification.KindLeaveRejected,
		"Leave Request Rejected",
		fmt.Sprintf("Your %s leave request was rejected: %s", request.Type, req.RejectionReason))

	return mapRequestToResponse(request), nil
}

// Cancel implements leave.Service.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID string) (*leave.RequestResponse, error) {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return nil, err
	}
	if request.EmployeeID != employeeID {
		return nil, leave.ErrRequestNotOwned
	}

	switch request.Status {
	case leave.StatusCancelled:
		return nil, leave.ErrAlreadyCancelled
	case leave.StatusRejected:
		return nil, leave.ErrRequestNotCancellable
	case leave.StatusPending, leave.StatusApproved:
	default:
		return nil, leave.ErrRequestNotCancellable
	}

	wasApproved := request.Status == leave.StatusApproved
	request.Status = leave.StatusCancelled

	if err := s.RequestRepository.Update(ctx, request); err != nil {
		return nil, err
	}

	// An approved request had its days debited; credit them back once.
	if wasApproved && request.Type.BalanceTracked() {
		balance, err := s.getOrCreateBalance(ctx, request.EmployeeID, companyID, s.now().Year())
		if err != nil {
			return nil, err
		}
		if err := s.BalanceRepository.AdjustUsed(ctx, balance.ID, request.Type, -request.TotalDays); err != nil {
			return nil, err
		}
	}

	s.notifyManager(ctx, request)

	return mapRequestToResponse(request), nil
}

// Get implements leave.Service.
func (s *LeaveServiceImpl) Get(ctx context.Context, requestID string) (*leave.RequestResponse, error) {
	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	request, err := s.RequestRepository.GetByID(ctx, requestID, companyID)
	if err != nil {
		return nil, err
	}
	if role == user.RoleEmployee && request.EmployeeID != employeeID {
		return nil, leave.ErrRequestNotFound
	}

	return mapRequestToResponse(request), nil
}

// List implements leave.Service.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListRequestsFilter) ([]leave.RequestResponse, error) {
	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if role == user.RoleEmployee {
		filter.EmployeeID = employeeID
	}

	requests, err := s.RequestRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.RequestResponse, len(requests))
	for i := range requests {
		responses[i] = *mapRequestToResponse(&requests[i])
	}

	return responses, nil
}

// GetBalance implements leave.Service.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context) (*leave.BalanceResponse, error) {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	balance, err := s.getOrCreateBalance(ctx, employeeID, companyID, s.now().Year())
	if err != nil {
		return nil, err
	}

	return mapBalanceToResponse(balance), nil
}

// getOrCreateBalance lazily creates the year's balance row with the default
// allotment. A concurrent creator winning the insert is handled by the
// re-read after a conflict.
func (s *LeaveServiceImpl) getOrCreateBalance(ctx context.Context, employeeID string, companyID string, year int) (*leave.Balance, error) {
	balance, err := s.BalanceRepository.GetByEmployeeAndYear(ctx, employeeID, companyID, year)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, leave.ErrBalanceNotFound) {
		return nil, err
	}

	fresh := &leave.Balance{
		ID:         uuid.New().String(),
		EmployeeID: employeeID,
		CompanyID:  companyID,
		Year:       year,
		Sick:       leave.TypeBalance{Total: s.allotment.Sick},
		Casual:     leave.TypeBalance{Total: s.allotment.Casual},
		Earned:     leave.TypeBalance{Total: s.allotment.Earned},
		Maternity:  leave.TypeBalance{Total: s.allotment.Maternity},
		Paternity:  leave.TypeBalance{Total: s.allotment.Paternity},
	}
	if err := s.BalanceRepository.Create(ctx, fresh); err != nil {
		return nil, err
	}

	return s.BalanceRepository.GetByEmployeeAndYear(ctx, employeeID, companyID, year)
}

// notifyManager queues a notification for the requesting employee's manager.
// Failures are logged and dropped.
func (s *LeaveServiceImpl) notifyManager(ctx context.Context, request *leave.Request) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil || emp.ManagerID == nil {
		return
	}
	manager, err := s.employeeRepo.GetByID(ctx, *emp.ManagerID)
	if err != nil {
		return
	}

	kind := notification.KindLeaveSubmitted
	title := "New Leave Request"
	message := fmt.Sprintf("%s requested %d days of %s leave from %s to %s",
		emp.FullName(), request.TotalDays, request.Type,
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))

	if request.Status == leave.StatusCancelled {
		kind = notification.KindLeaveCancelled
		title = "Leave Request Cancelled"
		message = fmt.Sprintf("%s cancelled their %s leave request", emp.FullName(), request.Type)
	}

	related := request.ID
	err = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		UserID:        manager.UserID,
		CompanyID:     request.CompanyID,
		Kind:          kind,
		Title:         title,
		Message:       message,
		RelatedEntity: &related,
	})
	if err != nil {
		log.Printf("[LeaveService] Failed to queue notification: %v", err)
	}
}

func (s *LeaveServiceImpl) notifyEmployee(ctx context.Context, request *leave.Request, kind notification.Kind, title string, message string) {
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		return
	}

	related := request.ID
	err = s.notifier.Queue(ctx, notification.CreateNotificationRequest{
		UserID:        emp.UserID,
		CompanyID:     request.CompanyID,
		Kind:          kind,
		Title:         title,
		Message:       message,
		RelatedEntity: &related,
	})
	if err != nil {
		log.Printf("[LeaveService] Failed to queue notification: %v", err)
	}
}

// inclusiveDayCount counts calendar days between two dates including both
// endpoints.
func inclusiveDayCount(start time.Time, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
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

func mapRequestToResponse(r *leave.Request) *leave.RequestResponse {
	return &leave.RequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       r.Type,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		TotalDays:       r.TotalDays,
		Status:          r.Status,
		Reason:          r.Reason,
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}

func mapBalanceToResponse(b *leave.Balance) *leave.BalanceResponse {
	toResp := func(tb leave.TypeBalance) leave.TypeBalanceResponse {
		return leave.TypeBalanceResponse{Total: tb.Total, Used: tb.Used, Available: tb.Available()}
	}
	return &leave.BalanceResponse{
		EmployeeID: b.EmployeeID,
		Year:       b.Year,
		Sick:       toResp(b.Sick),
		Casual:     toResp(b.Casual),
		Earned:     toResp(b.Earned),
		Maternity:  toResp(b.Maternity),
		Paternity:  toResp(b.Paternity),
	}
}
