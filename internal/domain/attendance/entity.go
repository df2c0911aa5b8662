package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
)

// Status codes produced by the fallback classifier and the day synthesizer.
const (
	StatusAbsent  = "absent"
	StatusNormal  = "normal"
	StatusHoliday = "holiday" // display-only, never stored
)

// SynthesizedIDPrefix marks placeholder rows that have no persisted record.
const SynthesizedIDPrefix = "absent-"

// BreakInterval is a pause inside a clock session. BreakEnd is nil while the break is ongoing.
type BreakInterval struct {
	BreakStart time.Time  `json:"break_start"`
	BreakEnd   *time.Time `json:"break_end,omitempty"`
}

// ClockSession is one continuous work stretch. InTime is nil before clock-in,
// OutTime is nil while the employee is still working.
type ClockSession struct {
	InTime  *time.Time      `json:"in_time,omitempty"`
	OutTime *time.Time      `json:"out_time,omitempty"`
	Breaks  []BreakInterval `json:"breaks,omitempty"`
}

// Record is a persisted attendance row as read from the attendance_records table.
type Record struct {
	ID                string
	CompanyID         string
	UserID            string
	WorkDate          time.Time
	ClockRecords      []ClockSession
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	Status            string
	ApprovedBy        *string
	Description       *string
	FormData          formdata.Values
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Day is one (user, calendar date) row of a reporting period, either backed by a
// Record or synthesized as a placeholder.
type Day struct {
	ID                string
	UserID            string
	UserName          string
	UserCode          string
	GroupID           *string
	WorkDate          time.Time
	Sessions          []ClockSession
	LateMinutes       int
	EarlyLeaveMinutes int
	OvertimeMinutes   int
	Status            string
	DynamicStatus     *string
	Synthesized       bool
	ApprovedBy        *string
	Description       *string
	FormData          formdata.Values
	CreatedAt         time.Time
}

// EffectiveStatus returns the dynamic status when present, the stored status otherwise.
func (d Day) EffectiveStatus() string {
	if d.DynamicStatus != nil && *d.DynamicStatus != "" {
		return *d.DynamicStatus
	}
	return d.Status
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.WorkDate.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// AggregateStats summarises a filtered set of days.
type AggregateStats struct {
	TotalRecords     int     `json:"total_records"`
	ActualWorkDays   int     `json:"actual_work_days"`
	LateRecords      int     `json:"late_records"`
	AvgOvertimeHours float64 `json:"avg_overtime_hours"`
	AttendanceRate   int     `json:"attendance_rate"`
}
