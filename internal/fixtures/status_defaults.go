package fixtures

import "github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"

func strPtr(s string) *string { return &s }

// DefaultStatusRules are the labels shown for built-in status codes when a company
// has not configured a rule with the same code.
func DefaultStatusRules() statusrule.Rules {
	return statusrule.Rules{
		{
			Code:            "normal",
			Name:            "Normal",
			TextColor:       strPtr("#1E7B34"),
			BackgroundColor: strPtr("#DCF5E3"),
			SortOrder:       1,
		},
		{
			Code:            "absent",
			Name:            "Absent",
			TextColor:       strPtr("#B42318"),
			BackgroundColor: strPtr("#FEE4E2"),
			SortOrder:       2,
		},
		{
			Code:            "holiday",
			Name:            "Holiday",
			TextColor:       strPtr("#475467"),
			BackgroundColor: strPtr("#F2F4F7"),
			SortOrder:       3,
		},
	}
}
