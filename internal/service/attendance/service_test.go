package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/staffhive/hrms-backend-go/internal/domain/attendance"
	"github.com/staffhive/hrms-backend-go/internal/domain/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	k := f.key(a.EmployeeID, a.Date)
	if _, exists := f.records[k]; exists {
		return attendance.ErrAlreadyCheckedIn
	}
	cp := *a
	f.records[k] = &cp
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, companyID string, date time.Time) (*attendance.Attendance, error) {
	if a, ok := f.records[f.key(employeeID, date)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	k := f.key(a.EmployeeID, a.Date)
	if _, ok := f.records[k]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	cp := *a
	f.records[k] = &cp
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.CompanyID != filter.CompanyID {
			continue
		}
		if filter.EmployeeID != "" && a.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

type fakeCompanyRepo struct {
	companies map[string]*company.Company
}

func (f *fakeCompanyRepo) Create(ctx context.Context, c *company.Company) error {
	f.companies[c.ID] = c
	return nil
}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*company.Company, error) {
	if c, ok := f.companies[id]; ok {
		return c, nil
	}
	return nil, company.ErrCompanyNotFound
}

func (f *fakeCompanyRepo) Update(ctx context.Context, c *company.Company) error {
	f.companies[c.ID] = c
	return nil
}

const (
	testCompanyID  = "comp-1"
	testEmployeeID = "emp-1"
)

func authedContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":     uuid.New().String(),
		"company_id":  testCompanyID,
		"employee_id": testEmployeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()

	repo := newFakeAttendanceRepo()
	companies := &fakeCompanyRepo{companies: map[string]*company.Company{
		testCompanyID: {ID: testCompanyID, Name: "Acme", Timezone: "UTC"},
	}}

	svc := NewAttendanceService(repo, companies, attendance.DefaultPolicy()).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }

	return svc, repo
}

func TestCheckInOnTime(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 9, 50, 0, 0, time.UTC))
	ctx := authedContext(t)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "2025-06-16", resp.Date)
	assert.Nil(t, resp.CheckOutTime)
	assert.Nil(t, resp.TotalHours)
}

func TestCheckInAfterThreshold(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 11, 0, 1, 0, time.UTC))
	ctx := authedContext(t)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
}

func TestDoubleCheckInFails(t *testing.T) {
	svc, repo := newTestService(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	assert.Len(t, repo.records, 1)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC))
	ctx := authedContext(t)

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoCheckInRecord)
}

func TestDoubleCheckOutFails(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Date(2025, 6, 16, 18, 0, 0, 0, time.UTC) }
	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestFullWorkingDay(t *testing.T) {
	// Check in at 09:50, out at 18:20, 8.5 hours worked.
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 9, 50, 0, 0, time.UTC))
	ctx := authedContext(t)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)

	svc.now = func() time.Time { return time.Date(2025, 6, 16, 18, 20, 0, 0, time.UTC) }
	resp, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, 8.5, *resp.TotalHours)
}

func TestLateCheckInUpgradedAtCheckOut(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 11, 30, 0, 0, time.UTC))
	ctx := authedContext(t)

	resp, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)

	svc.now = func() time.Time { return time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC) }
	resp, err = svc.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusFullDay, resp.Status)
	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, 9.5, *resp.TotalHours)
}

func TestGetTodayReturnsRecord(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t)

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	resp, err := svc.GetToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
}

func TestListScopedToEmployeeForRegularRole(t *testing.T) {
	svc, repo := newTestService(t, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC))
	ctx := authedContext(t)

	otherCheckIn := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(context.Background(), &attendance.Attendance{
		ID:          uuid.New().String(),
		EmployeeID:  "emp-2",
		CompanyID:   testCompanyID,
		Date:        time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		CheckInTime: &otherCheckIn,
		Status:      attendance.StatusPresent,
	}))

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	records, err := svc.List(ctx, attendance.ListAttendanceRequest{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testEmployeeID, records[0].EmployeeID)
}
