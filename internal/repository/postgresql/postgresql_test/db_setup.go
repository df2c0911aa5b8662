package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
)

// errRollback aborts the test transaction after assertions ran.
var errRollback = errors.New("rollback test transaction")

// TestDatabaseSetup holds the connection used by repository tests.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL. Tests are skipped when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	return &TestDatabaseSetup{DB: db}
}

// schemaStatements create session-local tables that shadow the real ones.
var schemaStatements = []string{
	`CREATE TEMP TABLE attendance_records (
		id text PRIMARY KEY,
		company_id text NOT NULL,
		user_id text NOT NULL,
		work_date date NOT NULL,
		clock_records jsonb,
		late_minutes int NOT NULL DEFAULT 0,
		early_leave_minutes int NOT NULL DEFAULT 0,
		overtime_minutes int NOT NULL DEFAULT 0,
		status text NOT NULL,
		approved_by text,
		description text,
		form_data jsonb,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		deleted_at timestamptz
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE employees (
		id text PRIMARY KEY,
		company_id text NOT NULL,
		full_name text NOT NULL,
		employee_code text NOT NULL,
		group_id text,
		deleted_at timestamptz
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE employee_groups (
		id text PRIMARY KEY,
		company_id text NOT NULL,
		name text NOT NULL,
		deleted_at timestamptz
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE attendance_status_rules (
		id text PRIMARY KEY,
		company_id text NOT NULL,
		code text NOT NULL,
		name text NOT NULL,
		text_color text,
		background_color text,
		is_required boolean NOT NULL DEFAULT false,
		sort_order int NOT NULL DEFAULT 0,
		deleted_at timestamptz
	) ON COMMIT DROP`,
	`CREATE TEMP TABLE company_form_fields (
		name text NOT NULL,
		label text NOT NULL,
		kind text NOT NULL,
		is_required boolean NOT NULL DEFAULT false,
		position int NOT NULL DEFAULT 0,
		company_id text NOT NULL,
		deleted_at timestamptz
	) ON COMMIT DROP`,
}

// WithSeededTx runs fn inside a transaction that has the schema and the given seed
// statements applied. The transaction is always rolled back.
func (s *TestDatabaseSetup) WithSeededTx(t *testing.T, seed []string, fn func(ctx context.Context)) {
	t.Helper()

	err := postgresql.WithTransaction(context.Background(), s.DB, func(ctx context.Context) error {
		q := postgresql.GetQuerier(ctx, s.DB)
		for _, stmt := range append(schemaStatements, seed...) {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("exec %q: %w", stmt, err)
			}
		}
		fn(ctx)
		return errRollback
	})
	if !errors.Is(err, errRollback) {
		t.Fatalf("test transaction failed: %v", err)
	}
}
