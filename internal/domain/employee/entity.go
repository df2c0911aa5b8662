package employee

// Employee is a roster entry as seen by the attendance grid.
type Employee struct {
	ID        string
	CompanyID string
	Name      string
	Code      string
	GroupID   *string
}

// Group is a company-defined team used to filter the roster.
type Group struct {
	ID        string
	CompanyID string
	Name      string
}
