package employee

import "context"

// EmployeeRepository reads the company roster.
type EmployeeRepository interface {
	// ListActiveByCompanyID returns employees that are not soft-deleted
	ListActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// ListGroups returns every group of the company
	ListGroups(ctx context.Context, companyID string) ([]Group, error)
}
