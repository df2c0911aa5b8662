package attendance

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
)

// StatusResolver resolves the status of a day in two stages: the company rule
// evaluator first, then the fallback classifier.
type StatusResolver struct {
	evaluator statusrule.Evaluator
}

func NewStatusResolver(evaluator statusrule.Evaluator) *StatusResolver {
	return &StatusResolver{evaluator: evaluator}
}

// ResolveAll fills Status and DynamicStatus of every day. The records backing real
// days are evaluated in a single call; a failure is logged and every day falls back
// to the classifier. Placeholder rows keep their synthesized status, and companies
// without rules skip the evaluator.
func (r *StatusResolver) ResolveAll(ctx context.Context, days []attendance.Day, records []attendance.Record, rules statusrule.Rules) []attendance.Day {
	statuses := r.evaluate(ctx, days, records, rules)

	resolved := make([]attendance.Day, 0, len(days))
	for _, day := range days {
		day.DynamicStatus = nil
		if day.Synthesized {
			resolved = append(resolved, day)
			continue
		}

		day.Status = Classify(day.Sessions)
		if status, ok := statuses[day.ID]; ok {
			day.DynamicStatus = &status
		}
		resolved = append(resolved, day)
	}
	return resolved
}

func (r *StatusResolver) evaluate(ctx context.Context, days []attendance.Day, records []attendance.Record, rules statusrule.Rules) map[string]string {
	if r.evaluator == nil || len(rules) == 0 {
		return nil
	}

	byID := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byID[rec.ID] = rec
	}

	pending := make([]attendance.Record, 0, len(records))
	for _, day := range days {
		if day.Synthesized {
			continue
		}
		if rec, ok := byID[day.ID]; ok {
			pending = append(pending, rec)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	statuses, err := r.evaluator.Evaluate(ctx, pending, rules)
	if err != nil {
		slog.Warn("Dynamic status evaluation failed, using fallback classifier",
			"records", len(pending),
			"error", err)
		return nil
	}
	return statuses
}
