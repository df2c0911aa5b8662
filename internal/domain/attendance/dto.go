package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// MONTHLY VIEW DTOs
// ========================================

type MonthlyViewRequest struct {
	Month   string  `json:"month"` // YYYY-MM
	UserID  *string `json:"user_id,omitempty"`
	GroupID *string `json:"group_id,omitempty"`
	Search  *string `json:"search,omitempty"` // name or code, case-insensitive
	Status  *string `json:"status,omitempty"` // effective status code or "holiday"

	// Parsed by Validate
	PeriodStart time.Time `json:"-"`
}

func (r *MonthlyViewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month is required",
		})
	} else if start, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	} else {
		r.PeriodStart = start
	}

	if r.UserID != nil && !validator.IsValidUUID(*r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id must be a valid UUID",
		})
	}

	if r.GroupID != nil && !validator.IsValidUUID(*r.GroupID) {
		errs = append(errs, validator.ValidationError{
			Field:   "group_id",
			Message: "group_id must be a valid UUID",
		})
	}

	if r.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*r.Status))
		if status == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must not be blank",
			})
		}
		r.Status = &status
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// PeriodEnd is the last calendar day of the requested month.
func (r *MonthlyViewRequest) PeriodEnd() time.Time {
	return r.PeriodStart.AddDate(0, 1, -1)
}

type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(s)) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportXLSX:
		return ExportXLSX, nil
	}
	return "", ErrUnsupportedExport
}

// ContentType is the MIME type written by the export handler.
func (f ExportFormat) ContentType() string {
	if f == ExportXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

type SessionResponse struct {
	InTime        *string         `json:"in_time,omitempty"`
	OutTime       *string         `json:"out_time,omitempty"`
	WorkedMinutes int             `json:"worked_minutes"`
	Breaks        []BreakResponse `json:"breaks"`
}

type BreakResponse struct {
	BreakStart string  `json:"break_start"`
	BreakEnd   *string `json:"break_end,omitempty"`
}

type DayResponse struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	UserName          string            `json:"user_name"`
	UserCode          string            `json:"user_code"`
	WorkDate          string            `json:"work_date"`
	Weekday           string            `json:"weekday"`
	Sessions          []SessionResponse `json:"sessions"`
	WorkedMinutes     int               `json:"worked_minutes"`
	BreakMinutes      int               `json:"break_minutes"`
	LateMinutes       int               `json:"late_minutes"`
	EarlyLeaveMinutes int               `json:"early_leave_minutes"`
	OvertimeMinutes   int               `json:"overtime_minutes"`
	Status            string            `json:"status"`
	DynamicStatus     *string           `json:"dynamic_status,omitempty"`
	DisplayLabel      string            `json:"display_label"`
	DisplayName       string            `json:"display_name"`
	TextColor         *string           `json:"text_color,omitempty"`
	BackgroundColor   *string           `json:"background_color,omitempty"`
	Synthesized       bool              `json:"synthesized"`
	Editable          bool              `json:"editable"`
	ApprovedBy        *string           `json:"approved_by,omitempty"`
	Description       *string           `json:"description,omitempty"`
	FormData          formdata.Values   `json:"form_data,omitempty"`
}

type MonthlyViewResponse struct {
	Month       string         `json:"month"`
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	Stats       AggregateStats `json:"stats"`
	Days        []DayResponse  `json:"days"`
}
