package attendance

import "context"

type Service interface {
	// CheckIn creates today's attendance record for the calling employee.
	CheckIn(ctx context.Context, req CheckInRequest) (*AttendanceResponse, error)
	// CheckOut completes today's attendance record and resolves the final
	// status from the worked hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (*AttendanceResponse, error)
	// GetToday returns the calling employee's record for today, if any.
	GetToday(ctx context.Context) (*AttendanceResponse, error)
	// List returns attendance records in the caller's company. Regular
	// employees only see their own.
	List(ctx context.Context, req ListAttendanceRequest) ([]AttendanceResponse, error)
}
