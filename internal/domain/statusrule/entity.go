package statusrule

// StatusRule is a company-configured attendance status. It is used for label lookup;
// matching a record against rules happens in the Evaluator.
type StatusRule struct {
	ID              string
	CompanyID       string
	Code            string
	Name            string
	TextColor       *string
	BackgroundColor *string
	IsRequired      bool
	SortOrder       int
}

// Rules is the rule set of one company.
type Rules []StatusRule

// ByCode returns the rule with the given status code.
func (r Rules) ByCode(code string) (StatusRule, bool) {
	for _, rule := range r {
		if rule.Code == code {
			return rule, true
		}
	}
	return StatusRule{}, false
}
