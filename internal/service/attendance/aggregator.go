package attendance

import (
	"math"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// Aggregate reduces resolved days into summary counters. It never fails: an empty
// input yields zero stats.
func Aggregate(days []attendance.Day) attendance.AggregateStats {
	stats := attendance.AggregateStats{TotalRecords: len(days)}
	if len(days) == 0 {
		return stats
	}

	workDates := make(map[string]struct{})
	allDates := make(map[string]struct{})
	absentDates := make(map[string]struct{})
	overtimeMinutes := 0

	for _, day := range days {
		date := day.WorkDate.Format(dateLayout)
		allDates[date] = struct{}{}

		if NormalizeDay(day.Sessions).HasActivity {
			workDates[date] = struct{}{}
		}
		if day.LateMinutes > 0 {
			stats.LateRecords++
		}
		if day.EffectiveStatus() == attendance.StatusAbsent {
			absentDates[date] = struct{}{}
		}
		overtimeMinutes += day.OvertimeMinutes
	}

	stats.ActualWorkDays = len(workDates)
	stats.AvgOvertimeHours = math.Round(float64(overtimeMinutes)/float64(len(days))/60*10) / 10
	stats.AttendanceRate = AttendanceRate(len(allDates), len(absentDates))

	return stats
}

// AttendanceRate is the rounded percentage of distinct dates not classified absent.
func AttendanceRate(totalDates, absentDates int) int {
	if totalDates == 0 {
		return 0
	}
	return int(math.Round(float64(totalDates-absentDates) / float64(totalDates) * 100))
}
