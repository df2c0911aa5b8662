package statusrule

import "context"

// Provider returns the current rule set of a company, possibly from a cache.
type Provider interface {
	Rules(ctx context.Context, companyID string) (Rules, error)
}
