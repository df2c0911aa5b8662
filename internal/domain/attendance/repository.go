package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
)

// RecordRepository reads persisted attendance records.
// All methods include companyID to prevent cross-company data access.
type RecordRepository interface {
	// ListByDateRange returns every record of the company with start <= work_date <= end.
	// Form data is decoded against schema; a nil schema keeps values as strings.
	ListByDateRange(ctx context.Context, companyID string, start, end time.Time, schema formdata.Schema) ([]Record, error)
}
