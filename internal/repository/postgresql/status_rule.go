package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type statusRuleRepository struct {
	db *database.DB
}

func NewStatusRuleRepository(db *database.DB) statusrule.StatusRuleRepository {
	return &statusRuleRepository{db: db}
}

// ListByCompanyID implements statusrule.StatusRuleRepository.
func (r *statusRuleRepository) ListByCompanyID(ctx context.Context, companyID string) (statusrule.Rules, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, text_color, background_color, is_required, sort_order
		FROM attendance_status_rules
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY sort_order ASC, code ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status rules: %w", err)
	}
	defer rows.Close()

	var rules statusrule.Rules
	for rows.Next() {
		var rule statusrule.StatusRule
		err := rows.Scan(
			&rule.ID, &rule.CompanyID, &rule.Code, &rule.Name,
			&rule.TextColor, &rule.BackgroundColor, &rule.IsRequired, &rule.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status rules: %w", err)
	}

	return rules, nil
}

type statusEvaluator struct {
	db *database.DB
}

// NewStatusEvaluator evaluates rules inside the database, where they are stored.
func NewStatusEvaluator(db *database.DB) statusrule.Evaluator {
	return &statusEvaluator{db: db}
}

// Evaluate implements statusrule.Evaluator.
func (e *statusEvaluator) Evaluate(ctx context.Context, records []attendance.Record, _ statusrule.Rules) (map[string]string, error) {
	statuses := make(map[string]string)
	if len(records) == 0 {
		return statuses, nil
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}

	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, get_dynamic_attendance_status(id)
		FROM unnest($1::uuid[]) AS id
	`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrStatusEvaluationFailed, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     string
			status *string
		)
		if err := rows.Scan(&id, &status); err != nil {
			return nil, fmt.Errorf("%w: %w", attendance.ErrStatusEvaluationFailed, err)
		}
		if status != nil && *status != "" {
			statuses[id] = *status
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", attendance.ErrStatusEvaluationFailed, err)
	}

	return statuses, nil
}
