package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, attendance.AggregateStats{}, Aggregate(nil))
}

func TestAggregate_AttendanceRate(t *testing.T) {
	// Ten distinct dates, one of which carries an absent row
	var days []attendance.Day
	for d := 1; d <= 10; d++ {
		workDate := date(2024, time.March, d)
		status := attendance.StatusNormal
		var sessions []attendance.ClockSession
		if d == 4 {
			status = attendance.StatusAbsent
		} else {
			sessions = []attendance.ClockSession{session(workDate, 8, 0, 17, 0)}
		}
		days = append(days, attendance.Day{WorkDate: workDate, Status: status, Sessions: sessions})
	}

	stats := Aggregate(days)

	assert.Equal(t, 10, stats.TotalRecords)
	assert.Equal(t, 9, stats.ActualWorkDays)
	assert.Equal(t, 90, stats.AttendanceRate)
}

func TestAggregate_CountsDistinctWorkDates(t *testing.T) {
	feb1 := date(2024, time.February, 1)
	days := []attendance.Day{
		{WorkDate: feb1, UserName: "Alice", Sessions: []attendance.ClockSession{session(feb1, 8, 0, 12, 0)}},
		{WorkDate: feb1, UserName: "Bob", Sessions: []attendance.ClockSession{session(feb1, 13, 0, 17, 0)}},
	}

	stats := Aggregate(days)

	assert.Equal(t, 2, stats.TotalRecords)
	assert.Equal(t, 1, stats.ActualWorkDays)
	assert.Equal(t, 100, stats.AttendanceRate)
}

func TestAggregate_LateAndOvertime(t *testing.T) {
	feb1 := date(2024, time.February, 1)
	days := []attendance.Day{
		{WorkDate: feb1, LateMinutes: 12, OvertimeMinutes: 90},
		{WorkDate: feb1, LateMinutes: 0, OvertimeMinutes: 30},
		{WorkDate: feb1, LateMinutes: 1, OvertimeMinutes: 0},
	}

	stats := Aggregate(days)

	assert.Equal(t, 2, stats.LateRecords)
	// 120 minutes over 3 rows is 0.666 hours
	assert.Equal(t, 0.7, stats.AvgOvertimeHours)
}

func TestAggregate_DynamicAbsentCounts(t *testing.T) {
	feb1 := date(2024, time.February, 1)
	feb2 := date(2024, time.February, 2)
	days := []attendance.Day{
		{WorkDate: feb1, Status: attendance.StatusNormal, DynamicStatus: strPtr(attendance.StatusAbsent)},
		{WorkDate: feb2, Status: attendance.StatusAbsent, DynamicStatus: strPtr("sick")},
	}

	stats := Aggregate(days)

	assert.Equal(t, 50, stats.AttendanceRate)
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 0, AttendanceRate(0, 0))
	assert.Equal(t, 100, AttendanceRate(29, 0))
	assert.Equal(t, 0, AttendanceRate(3, 3))
	assert.Equal(t, 67, AttendanceRate(3, 1))
}
