package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "0190a4b2-1111-7000-8000-000000000001"
	aliceID       = "0190a4b2-2222-7000-8000-000000000001"
	bobID         = "0190a4b2-2222-7000-8000-000000000002"
	engGroupID    = "0190a4b2-3333-7000-8000-000000000001"
)

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour, minute int) *time.Time {
	t := time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
	return &t
}

// session builds a clock session on the given day from "hh:mm" style hours.
func session(day time.Time, inH, inM, outH, outM int) attendance.ClockSession {
	return attendance.ClockSession{
		InTime:  at(day.Year(), day.Month(), day.Day(), inH, inM),
		OutTime: at(day.Year(), day.Month(), day.Day(), outH, outM),
	}
}

func withBreak(s attendance.ClockSession, startH, startM, endH, endM int) attendance.ClockSession {
	day := *s.InTime
	s.Breaks = append(s.Breaks, attendance.BreakInterval{
		BreakStart: *at(day.Year(), day.Month(), day.Day(), startH, startM),
		BreakEnd:   at(day.Year(), day.Month(), day.Day(), endH, endM),
	})
	return s
}

func testRoster() []employee.Employee {
	return []employee.Employee{
		{ID: bobID, CompanyID: testCompanyID, Name: "Bob", Code: "E002"},
		{ID: aliceID, CompanyID: testCompanyID, Name: "Alice", Code: "E001", GroupID: strPtr(engGroupID)},
	}
}

func contextWithCompany(t *testing.T, companyID string) context.Context {
	t.Helper()
	token := jwt.New()
	require.NoError(t, token.Set("company_id", companyID))
	require.NoError(t, token.Set("type", "access"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== FAKES =====

type fakeRecordRepository struct {
	records   []attendance.Record
	err       error
	companyID string
	start     time.Time
	end       time.Time
}

func (f *fakeRecordRepository) ListByDateRange(_ context.Context, companyID string, start, end time.Time, _ formdata.Schema) ([]attendance.Record, error) {
	f.companyID, f.start, f.end = companyID, start, end
	return f.records, f.err
}

type fakeEmployeeRepository struct {
	employees []employee.Employee
	groups    []employee.Group
	err       error
}

func (f *fakeEmployeeRepository) ListActiveByCompanyID(context.Context, string) ([]employee.Employee, error) {
	return f.employees, f.err
}

func (f *fakeEmployeeRepository) ListGroups(context.Context, string) ([]employee.Group, error) {
	return f.groups, f.err
}

type fakeSchemaRepository struct {
	schema formdata.Schema
}

func (f *fakeSchemaRepository) GetSchema(context.Context, string) (formdata.Schema, error) {
	return f.schema, nil
}

type fakeRuleProvider struct {
	rules statusrule.Rules
}

func (f *fakeRuleProvider) Rules(context.Context, string) (statusrule.Rules, error) {
	return f.rules, nil
}

// fakeEvaluator returns the statuses mapped to the given record ids.
type fakeEvaluator struct {
	statuses  map[string]string
	err       error
	calls     int
	evaluated []string
}

func (f *fakeEvaluator) Evaluate(_ context.Context, records []attendance.Record, _ statusrule.Rules) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := make(map[string]string)
	for _, rec := range records {
		f.evaluated = append(f.evaluated, rec.ID)
		if s, ok := f.statuses[rec.ID]; ok {
			result[rec.ID] = s
		}
	}
	return result, nil
}

var errEvaluatorDown = errors.New("evaluator unavailable")
