package attendance

import "errors"

// Attendance domain errors
var (
	ErrInvalidMonth           = errors.New("month must be in YYYY-MM format")
	ErrUnsupportedExport      = errors.New("unsupported export format")
	ErrCompanyClaimMissing    = errors.New("company_id claim is missing or invalid")
	ErrStatusEvaluationFailed = errors.New("dynamic status evaluation failed")
)
