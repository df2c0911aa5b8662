package attendance

import (
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/fixtures"
)

// Classify is the fallback status of a day derived from its sessions alone.
func Classify(sessions []attendance.ClockSession) string {
	if len(sessions) == 0 {
		return attendance.StatusAbsent
	}
	// A day with a session still in progress has no separate state: it is normal
	// exactly like a completed one.
	return attendance.StatusNormal
}

// DisplayLabel applies the weekend presentation override to an effective status.
func DisplayLabel(day attendance.Day, status string) string {
	if !day.IsWeekend() {
		return status
	}
	if status == attendance.StatusAbsent {
		return attendance.StatusHoliday
	}
	if day.Synthesized && len(day.Sessions) == 0 {
		return attendance.StatusHoliday
	}
	return status
}

var defaultRules = fixtures.DefaultStatusRules()

// Label is the presentation of a status code.
type Label struct {
	Name            string
	TextColor       *string
	BackgroundColor *string
}

// LookupLabel resolves a status code to its company-configured name and colors,
// then to the built-in defaults. Unknown codes are shown as-is.
func LookupLabel(rules statusrule.Rules, code string) Label {
	rule, ok := rules.ByCode(code)
	if !ok {
		rule, ok = defaultRules.ByCode(code)
	}
	if !ok {
		return Label{Name: code}
	}
	return Label{
		Name:            rule.Name,
		TextColor:       rule.TextColor,
		BackgroundColor: rule.BackgroundColor,
	}
}
