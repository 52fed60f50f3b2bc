package leave

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffhive/hrms-backend-go/internal/domain/employee"
	"github.com/staffhive/hrms-backend-go/internal/domain/leave"
	"github.com/staffhive/hrms-backend-go/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRequestRepo struct {
	requests map[string]*leave.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, r *leave.Request) error {
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string, companyID string) (*leave.Request, error) {
	if r, ok := f.requests[id]; ok && r.CompanyID == companyID {
		cp := *r
		return &cp, nil
	}
	return nil, leave.ErrRequestNotFound
}

func (f *fakeRequestRepo) Update(ctx context.Context, r *leave.Request) error {
	if _, ok := f.requests[r.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, companyID string, filter leave.ListRequestsFilter) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.CompanyID != companyID {
			continue
		}
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

type fakeBalanceRepo struct {
	balances map[string]*leave.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.Balance)}
}

func (f *fakeBalanceRepo) Create(ctx context.Context, b *leave.Balance) error {
	for _, existing := range f.balances {
		if existing.EmployeeID == b.EmployeeID && existing.Year == b.Year {
			return nil
		}
	}
	cp := *b
	f.balances[b.ID] = &cp
	return nil
}

func (f *fakeBalanceRepo) GetByEmployeeAndYear(ctx context.Context, employeeID string, companyID string, year int) (*leave.Balance, error) {
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.CompanyID == companyID && b.Year == year {
			cp := *b
			return &cp, nil
		}
	}
	return nil, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) AdjustUsed(ctx context.Context, id string, leaveType leave.Type, delta int) error {
	b, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	switch leaveType {
	case leave.TypeSick:
		b.Sick.Used += delta
	case leave.TypeCasual:
		b.Casual.Used += delta
	case leave.TypeEarned:
		b.Earned.Used += delta
	case leave.TypeMaternity:
		b.Maternity.Used += delta
	case leave.TypePaternity:
		b.Paternity.Used += delta
	}
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (*employee.Employee, error) {
	for _, e := range f.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) List(ctx context.Context, userID string, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}

func (f *fakeNotifier) UnreadCount(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

func (f *fakeNotifier) MarkRead(ctx context.Context, userID string, notificationID string) error {
	return nil
}

func (f *fakeNotifier) MarkAllRead(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeNotifier) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	return nil, func() {}
}

func (f *fakeNotifier) Stop() {}

const (
	testCompanyID  = "comp-1"
	testEmployeeID = "emp-1"
	testManagerID  = "emp-mgr"
)

func contextFor(t *testing.T, employeeID string, role string) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-" + employeeID,
		"company_id":  testCompanyID,
		"employee_id": employeeID,
		"role":        role,
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

type testEnv struct {
	svc      *LeaveServiceImpl
	requests *fakeRequestRepo
	balances *fakeBalanceRepo
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	requests := newFakeRequestRepo()
	balances := newFakeBalanceRepo()
	notifier := &fakeNotifier{}

	managerID := testManagerID
	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		testEmployeeID: {
			ID: testEmployeeID, UserID: "user-" + testEmployeeID, CompanyID: testCompanyID,
			ManagerID: &managerID, FirstName: "Jordan", LastName: "Lee",
		},
		testManagerID: {
			ID: testManagerID, UserID: "user-" + testManagerID, CompanyID: testCompanyID,
			FirstName: "Sam", LastName: "Reed",
		},
	}}

	allotment := leave.DefaultAllotment{Sick: 10, Casual: 8, Earned: 15, Maternity: 90, Paternity: 15}
	svc := NewLeaveService(requests, balances, employees, notifier, allotment).(*LeaveServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC) }

	return &testEnv{svc: svc, requests: requests, balances: balances, notifier: notifier}
}

func (e *testEnv) seedBalance(t *testing.T, used int) *leave.Balance {
	t.Helper()

	b := &leave.Balance{
		ID:         uuid.New().String(),
		EmployeeID: testEmployeeID,
		CompanyID:  testCompanyID,
		Year:       2025,
		Sick:       leave.TypeBalance{Total: 10},
		Casual:     leave.TypeBalance{Total: 8, Used: used},
		Earned:     leave.TypeBalance{Total: 15},
		Maternity:  leave.TypeBalance{Total: 90},
		Paternity:  leave.TypeBalance{Total: 15},
	}
	require.NoError(t, e.balances.Create(context.Background(), b))
	return b
}

func submitDays(t *testing.T, e *testEnv, days int) *leave.RequestResponse {
	t.Helper()

	ctx := contextFor(t, testEmployeeID, "employee")
	end := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days-1)
	resp, err := e.svc.Submit(ctx, leave.SubmitRequest{
		LeaveType: leave.TypeCasual,
		StartDate: "2025-06-20",
		EndDate:   end.Format("2006-01-02"),
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitInvalidDateRange(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)
	ctx := contextFor(t, testEmployeeID, "employee")

	_, err := e.svc.Submit(ctx, leave.SubmitRequest{
		LeaveType: leave.TypeCasual,
		StartDate: "2025-06-20",
		EndDate:   "2025-06-19",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
	assert.Empty(t, e.requests.requests)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)
	ctx := contextFor(t, testEmployeeID, "employee")

	_, err := e.svc.Submit(ctx, leave.SubmitRequest{
		LeaveType: leave.TypeCasual,
		StartDate: "2025-06-20",
		EndDate:   "2025-06-22",
	})

	var insufficient *leave.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Insufficient casual leave balance. Available: 2 days", insufficient.Error())

	// No request was created and the balance is untouched.
	assert.Empty(t, e.requests.requests)
	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used)
}

func TestSubmitDoesNotDebitBalance(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)

	resp := submitDays(t, e, 2)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 2, resp.TotalDays)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used, "submission must not debit the balance")
}

func TestSubmitNotifiesManager(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)

	submitDays(t, e, 1)

	require.Len(t, e.notifier.queued, 1)
	assert.Equal(t, "user-"+testManagerID, e.notifier.queued[0].UserID)
	assert.Equal(t, notification.KindLeaveSubmitted, e.notifier.queued[0].Kind)
}

func TestSubmitUnpaidSkipsBalanceCheck(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 8)
	ctx := contextFor(t, testEmployeeID, "employee")

	resp, err := e.svc.Submit(ctx, leave.SubmitRequest{
		LeaveType: leave.TypeUnpaid,
		StartDate: "2025-06-20",
		EndDate:   "2025-07-20",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
}

func TestSubmitCreatesBalanceLazily(t *testing.T) {
	e := newTestEnv(t)

	resp := submitDays(t, e, 2)
	assert.Equal(t, leave.StatusPending, resp.Status)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Casual.Total)
	assert.Equal(t, 0, b.Casual.Used)
}

func TestApproveDebitsBalance(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)
	resp := submitDays(t, e, 2)

	mgrCtx := contextFor(t, testManagerID, "manager")
	approved, err := e.svc.Approve(mgrCtx, resp.ID)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, testManagerID, *approved.ApprovedBy)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Casual.Used)
}

func TestApproveNonPendingFails(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)
	resp := submitDays(t, e, 1)

	mgrCtx := contextFor(t, testManagerID, "manager")
	_, err := e.svc.Approve(mgrCtx, resp.ID)
	require.NoError(t, err)

	_, err = e.svc.Approve(mgrCtx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotPending)
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)
	resp := submitDays(t, e, 2)

	mgrCtx := contextFor(t, testManagerID, "manager")
	rejected, err := e.svc.Reject(mgrCtx, resp.ID, leave.RejectRequest{RejectionReason: "team is understaffed"})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used)
}

func TestCancelPendingLeavesBalanceUntouched(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)
	resp := submitDays(t, e, 2)

	ctx := contextFor(t, testEmployeeID, "employee")
	cancelled, err := e.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used)
}

func TestCancelApprovedReversesDebitOnce(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)
	resp := submitDays(t, e, 2)

	mgrCtx := contextFor(t, testManagerID, "manager")
	_, err := e.svc.Approve(mgrCtx, resp.ID)
	require.NoError(t, err)

	b, err := e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	require.Equal(t, 8, b.Casual.Used)

	ctx := contextFor(t, testEmployeeID, "employee")
	cancelled, err := e.svc.Cancel(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, cancelled.Status)

	b, err = e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used)

	// A second cancel fails and must not credit again.
	_, err = e.svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrAlreadyCancelled)

	b, err = e.balances.GetByEmployeeAndYear(context.Background(), testEmployeeID, testCompanyID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Casual.Used)
}

func TestCancelSomeoneElsesRequestFails(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)
	resp := submitDays(t, e, 1)

	otherCtx := contextFor(t, "emp-2", "employee")
	_, err := e.svc.Cancel(otherCtx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotOwned)
}

func TestTerminalStatesAreClosed(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)
	resp := submitDays(t, e, 1)

	mgrCtx := contextFor(t, testManagerID, "manager")
	_, err := e.svc.Reject(mgrCtx, resp.ID, leave.RejectRequest{RejectionReason: "no"})
	require.NoError(t, err)

	// Nothing moves a rejected request.
	_, err = e.svc.Approve(mgrCtx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotPending)
	_, err = e.svc.Reject(mgrCtx, resp.ID, leave.RejectRequest{RejectionReason: "again"})
	assert.ErrorIs(t, err, leave.ErrRequestNotPending)

	ctx := contextFor(t, testEmployeeID, "employee")
	_, err = e.svc.Cancel(ctx, resp.ID)
	assert.ErrorIs(t, err, leave.ErrRequestNotCancellable)
}

func TestSubmitApproveCancelRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 6)

	resp := submitDays(t, e, 2)

	mgrCtx := contextFor(t, testManagerID, "manager")
	_, err := e.svc.Approve(mgrCtx, resp.ID)
	require.NoError(t, err)

	balance, err := e.svc.GetBalance(contextFor(t, testEmployeeID, "employee"))
	require.NoError(t, err)
	assert.Equal(t, 8, balance.Casual.Used)
	assert.Equal(t, 0, balance.Casual.Available)

	_, err = e.svc.Cancel(contextFor(t, testEmployeeID, "employee"), resp.ID)
	require.NoError(t, err)

	balance, err = e.svc.GetBalance(contextFor(t, testEmployeeID, "employee"))
	require.NoError(t, err)
	assert.Equal(t, 6, balance.Casual.Used)
	assert.Equal(t, 2, balance.Casual.Available)
}

func TestListScopedToEmployeeForRegularRole(t *testing.T) {
	e := newTestEnv(t)
	e.seedBalance(t, 0)
	submitDays(t, e, 1)

	require.NoError(t, e.requests.Create(context.Background(), &leave.Request{
		ID: uuid.New().String(), EmployeeID: "emp-2", CompanyID: testCompanyID,
		Type: leave.TypeSick, Status: leave.StatusPending, TotalDays: 1,
	}))

	list, err := e.svc.List(contextFor(t, testEmployeeID, "employee"), leave.ListRequestsFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, testEmployeeID, list[0].EmployeeID)

	list, err = e.svc.List(contextFor(t, testManagerID, "manager"), leave.ListRequestsFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
