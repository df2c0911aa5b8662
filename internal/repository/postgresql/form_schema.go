package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type formSchemaRepository struct {
	db *database.DB
}

func NewFormSchemaRepository(db *database.DB) formdata.SchemaRepository {
	return &formSchemaRepository{db: db}
}

// GetSchema implements formdata.SchemaRepository.
func (r *formSchemaRepository) GetSchema(ctx context.Context, companyID string) (formdata.Schema, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT name, label, kind, is_required, position
		FROM company_form_fields
		WHERE company_id = $1 AND deleted_at IS NULL
		ORDER BY position ASC, name ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query form fields: %w", err)
	}
	defer rows.Close()

	schema := formdata.Schema{}
	for rows.Next() {
		var (
			f    formdata.Field
			kind string
		)
		if err := rows.Scan(&f.Name, &f.Label, &kind, &f.Required, &f.Position); err != nil {
			return nil, fmt.Errorf("failed to scan form field: %w", err)
		}
		var known bool
		if f.Kind, known = formdata.ParseKind(kind); !known {
			slog.Warn("Unknown form field kind, treating as string", "company_id", companyID, "field", f.Name, "kind", kind)
		}
		schema = append(schema, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate form fields: %w", err)
	}

	return schema, nil
}
