package statusrule

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
)

// StatusRuleRepository reads company status rules.
type StatusRuleRepository interface {
	ListByCompanyID(ctx context.Context, companyID string) (Rules, error)
}

// Evaluator computes the dynamic status of persisted records against company rules
// in one call. The result is keyed by record id; records without a matching rule are
// left out.
type Evaluator interface {
	Evaluate(ctx context.Context, records []attendance.Record, rules Rules) (map[string]string, error)
}
