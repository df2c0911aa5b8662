package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// DaySummary is the normalized view of a day's clock sessions.
type DaySummary struct {
	WorkedMinutes int
	BreakMinutes  int
	HasActivity   bool // at least one session has an in-time
	OpenSessions  int  // sessions without a completed in/out pair
}

// BreakMinutes sums completed breaks of a session. Ongoing breaks count as zero.
func BreakMinutes(session attendance.ClockSession) int {
	total := 0
	for _, br := range session.Breaks {
		if br.BreakEnd == nil || br.BreakEnd.Before(br.BreakStart) {
			continue
		}
		total += minutesBetween(br.BreakStart, *br.BreakEnd)
	}
	return total
}

// WorkedMinutes is out-in minus completed breaks. A session still in progress is zero.
func WorkedMinutes(session attendance.ClockSession) int {
	if session.InTime == nil || session.OutTime == nil || session.OutTime.Before(*session.InTime) {
		return 0
	}
	worked := minutesBetween(*session.InTime, *session.OutTime) - BreakMinutes(session)
	if worked < 0 {
		return 0
	}
	return worked
}

// NormalizeDay sums worked and break minutes across all sessions of a day.
func NormalizeDay(sessions []attendance.ClockSession) DaySummary {
	var s DaySummary
	for _, session := range sessions {
		s.WorkedMinutes += WorkedMinutes(session)
		s.BreakMinutes += BreakMinutes(session)
		if session.InTime != nil {
			s.HasActivity = true
		}
		if session.InTime == nil || session.OutTime == nil {
			s.OpenSessions++
		}
	}
	return s
}

// FirstClockIn returns the in-time of the first session, nil when absent.
func FirstClockIn(sessions []attendance.ClockSession) *time.Time {
	if len(sessions) == 0 {
		return nil
	}
	return sessions[0].InTime
}

// LastClockOut returns the latest out-time across sessions.
func LastClockOut(sessions []attendance.ClockSession) *time.Time {
	var last *time.Time
	for _, session := range sessions {
		if session.OutTime == nil {
			continue
		}
		if last == nil || session.OutTime.After(*last) {
			last = session.OutTime
		}
	}
	return last
}

func minutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}
