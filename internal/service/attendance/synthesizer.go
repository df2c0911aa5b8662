package attendance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const dateLayout = "2006-01-02"

// MonthDays enumerates every calendar date of the month starting at periodStart.
func MonthDays(periodStart time.Time) []time.Time {
	first := time.Date(periodStart.Year(), periodStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	days := make([]time.Time, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// SyntheticID is the sentinel id of a placeholder row.
func SyntheticID(userID string, date time.Time) string {
	return fmt.Sprintf("%s%s-%s", attendance.SynthesizedIDPrefix, userID, date.Format(dateLayout))
}

// IsSyntheticID reports whether id was produced by SyntheticID.
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, attendance.SynthesizedIDPrefix)
}

// SynthesizeMonth produces one row per real record and one placeholder per
// (employee, date) pair without a record. The result is not sorted.
func SynthesizeMonth(periodStart time.Time, roster []employee.Employee, records []attendance.Record) []attendance.Day {
	type key struct {
		userID string
		date   string
	}
	byKey := make(map[key][]attendance.Record, len(records))
	for _, rec := range records {
		k := key{userID: rec.UserID, date: rec.WorkDate.Format(dateLayout)}
		byKey[k] = append(byKey[k], rec)
	}

	dates := MonthDays(periodStart)
	days := make([]attendance.Day, 0, len(dates)*len(roster))

	for _, date := range dates {
		for _, emp := range roster {
			matches := byKey[key{userID: emp.ID, date: date.Format(dateLayout)}]
			if len(matches) == 0 {
				days = append(days, placeholderDay(emp, date))
				continue
			}
			for _, rec := range matches {
				days = append(days, recordDay(emp, date, rec))
			}
		}
	}

	return days
}

func placeholderDay(emp employee.Employee, date time.Time) attendance.Day {
	day := attendance.Day{
		ID:          SyntheticID(emp.ID, date),
		UserID:      emp.ID,
		UserName:    emp.Name,
		UserCode:    emp.Code,
		GroupID:     emp.GroupID,
		WorkDate:    date,
		Status:      attendance.StatusAbsent,
		Synthesized: true,
	}
	if day.IsWeekend() {
		day.Status = attendance.StatusNormal
	}
	return day
}

func recordDay(emp employee.Employee, date time.Time, rec attendance.Record) attendance.Day {
	return attendance.Day{
		ID:                rec.ID,
		UserID:            emp.ID,
		UserName:          emp.Name,
		UserCode:          emp.Code,
		GroupID:           emp.GroupID,
		WorkDate:          date,
		Sessions:          rec.ClockRecords,
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		OvertimeMinutes:   rec.OvertimeMinutes,
		Status:            rec.Status,
		ApprovedBy:        rec.ApprovedBy,
		Description:       rec.Description,
		FormData:          rec.FormData,
		CreatedAt:         rec.CreatedAt,
	}
}

// SortDays orders rows by work date, then employee name (collated for locale),
// then first clock-in (rows with one first), then creation time descending.
func SortDays(days []attendance.Day, locale string) {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	col := collate.New(tag)

	sort.SliceStable(days, func(i, j int) bool {
		a, b := days[i], days[j]

		if !a.WorkDate.Equal(b.WorkDate) {
			return a.WorkDate.Before(b.WorkDate)
		}

		if c := col.CompareString(a.UserName, b.UserName); c != 0 {
			return c < 0
		}

		inA, inB := FirstClockIn(a.Sessions), FirstClockIn(b.Sessions)
		switch {
		case inA != nil && inB != nil && !inA.Equal(*inB):
			return inA.Before(*inB)
		case inA != nil && inB == nil:
			return true
		case inA == nil && inB != nil:
			return false
		}

		return a.CreatedAt.After(b.CreatedAt)
	})
}
