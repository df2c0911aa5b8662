package attendance

import (
	"context"
	"io"
)

// AttendanceService builds the monthly attendance grid for a company.
type AttendanceService interface {
	// GetMonthlyView returns every (user, date) row of the month with aggregate stats
	GetMonthlyView(ctx context.Context, req MonthlyViewRequest) (MonthlyViewResponse, error)

	// ExportMonthly writes the same rows as GetMonthlyView in the requested format
	ExportMonthly(ctx context.Context, req MonthlyViewRequest, format ExportFormat, w io.Writer) error
}
