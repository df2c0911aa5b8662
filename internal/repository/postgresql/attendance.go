package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.RecordRepository {
	return &attendanceRepository{db: db}
}

// ListByDateRange implements attendance.RecordRepository.
func (a *attendanceRepository) ListByDateRange(ctx context.Context, companyID string, start, end time.Time, schema formdata.Schema) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, company_id, user_id, work_date, clock_records,
			   late_minutes, early_leave_minutes, overtime_minutes,
			   status, approved_by, description, form_data,
			   created_at, updated_at
		FROM attendance_records
		WHERE company_id = $1
		  AND work_date BETWEEN $2 AND $3
		  AND deleted_at IS NULL
		ORDER BY work_date ASC, created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var (
			rec          attendance.Record
			clockRecords []byte
			formData     []byte
		)
		err := rows.Scan(
			&rec.ID, &rec.CompanyID, &rec.UserID, &rec.WorkDate, &clockRecords,
			&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes,
			&rec.Status, &rec.ApprovedBy, &rec.Description, &formData,
			&rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}

		rec.ClockRecords = decodeClockRecords(rec.ID, clockRecords)
		rec.FormData = decodeFormData(rec.ID, formData, schema)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// decodeClockRecords treats a malformed clock_records column as a day without sessions.
func decodeClockRecords(recordID string, data []byte) []attendance.ClockSession {
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	var sessions []attendance.ClockSession
	if err := json.Unmarshal(data, &sessions); err != nil {
		slog.Warn("Malformed clock_records, treating as empty", "record_id", recordID, "error", err)
		return nil
	}
	return sessions
}

// decodeFormData keeps whatever converts cleanly. Schema violations are logged only,
// the record is still shown.
func decodeFormData(recordID string, data []byte, schema formdata.Schema) formdata.Values {
	values, err := formdata.DecodeJSON(data, schema)
	if err != nil {
		slog.Warn("Form data does not match company schema", "record_id", recordID, "error", err)
		if values == nil {
			values = formdata.Values{}
		}
	}
	if err := schema.Validate(values); err != nil {
		slog.Warn("Form data is incomplete", "record_id", recordID, "error", err)
	}
	return values
}
