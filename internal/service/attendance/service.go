package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/statusrule"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	attendance.RecordRepository
	employee.EmployeeRepository
	formdata.SchemaRepository
	ruleProvider statusrule.Provider
	resolver     *StatusResolver
	locale       string
	location     *time.Location
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	schemaRepo formdata.SchemaRepository,
	ruleProvider statusrule.Provider,
	evaluator statusrule.Evaluator,
	locale string,
	location *time.Location,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
		SchemaRepository:   schemaRepo,
		ruleProvider:       ruleProvider,
		resolver:           NewStatusResolver(evaluator),
		locale:             locale,
		location:           location,
	}
}

// getCompanyIDFromContext extracts company_id from JWT claims
func (s *AttendanceServiceImpl) getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", attendance.ErrCompanyClaimMissing
	}

	return companyID, nil
}

// monthlyView is the resolved, filtered and sorted grid of one month.
type monthlyView struct {
	days   []attendance.Day
	stats  attendance.AggregateStats
	rules  statusrule.Rules
	schema formdata.Schema
}

func (s *AttendanceServiceImpl) buildMonthlyView(ctx context.Context, req *attendance.MonthlyViewRequest) (monthlyView, error) {
	if err := req.Validate(); err != nil {
		return monthlyView{}, err
	}

	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return monthlyView{}, err
	}

	var (
		roster []employee.Employee
		groups []employee.Group
		rules  statusrule.Rules
		schema formdata.Schema
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.EmployeeRepository.ListActiveByCompanyID(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if req.GroupID == nil {
			return nil
		}
		var err error
		groups, err = s.EmployeeRepository.ListGroups(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rules, err = s.ruleProvider.Rules(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to get status rules: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		schema, err = s.SchemaRepository.GetSchema(gctx, companyID)
		if err != nil {
			return fmt.Errorf("failed to get form schema: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return monthlyView{}, err
	}

	if req.GroupID != nil && !groupExists(groups, *req.GroupID) {
		return monthlyView{}, employee.ErrGroupNotFound
	}
	if req.UserID != nil && !employeeExists(roster, *req.UserID) {
		return monthlyView{}, employee.ErrEmployeeNotFound
	}

	records, err := s.RecordRepository.ListByDateRange(ctx, companyID, req.PeriodStart, req.PeriodEnd(), schema)
	if err != nil {
		return monthlyView{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	days := SynthesizeMonth(req.PeriodStart, filterRoster(roster, req), records)
	days = s.resolver.ResolveAll(ctx, days, records, rules)
	days = filterByStatus(days, req.Status)
	SortDays(days, s.locale)

	return monthlyView{
		days:   days,
		stats:  Aggregate(days),
		rules:  rules,
		schema: schema,
	}, nil
}

// GetMonthlyView implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlyView(ctx context.Context, req attendance.MonthlyViewRequest) (attendance.MonthlyViewResponse, error) {
	view, err := s.buildMonthlyView(ctx, &req)
	if err != nil {
		return attendance.MonthlyViewResponse{}, err
	}

	responses := make([]attendance.DayResponse, 0, len(view.days))
	for _, day := range view.days {
		responses = append(responses, s.mapDayToResponse(day, view.rules))
	}

	return attendance.MonthlyViewResponse{
		Month:       req.PeriodStart.Format("2006-01"),
		PeriodStart: req.PeriodStart.Format(dateLayout),
		PeriodEnd:   req.PeriodEnd().Format(dateLayout),
		Stats:       view.stats,
		Days:        responses,
	}, nil
}

func groupExists(groups []employee.Group, id string) bool {
	for _, g := range groups {
		if g.ID == id {
			return true
		}
	}
	return false
}

func employeeExists(roster []employee.Employee, id string) bool {
	for _, emp := range roster {
		if emp.ID == id {
			return true
		}
	}
	return false
}

// filterRoster applies the employee-level filters before synthesis so that
// placeholders are only generated for employees that will be shown.
func filterRoster(roster []employee.Employee, req *attendance.MonthlyViewRequest) []employee.Employee {
	var search string
	if req.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*req.Search))
	}

	filtered := make([]employee.Employee, 0, len(roster))
	for _, emp := range roster {
		if req.UserID != nil && emp.ID != *req.UserID {
			continue
		}
		if req.GroupID != nil && (emp.GroupID == nil || *emp.GroupID != *req.GroupID) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(emp.Name), search) &&
			!strings.Contains(strings.ToLower(emp.Code), search) {
			continue
		}
		filtered = append(filtered, emp)
	}
	return filtered
}

func filterByStatus(days []attendance.Day, status *string) []attendance.Day {
	if status == nil || *status == "" {
		return days
	}

	filtered := make([]attendance.Day, 0, len(days))
	for _, day := range days {
		effective := day.EffectiveStatus()
		if effective == *status || DisplayLabel(day, effective) == *status {
			filtered = append(filtered, day)
		}
	}
	return filtered
}

func (s *AttendanceServiceImpl) formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.location).Format(time.RFC3339)
	return &formatted
}

// mapDayToResponse converts a resolved Day to DayResponse
func (s *AttendanceServiceImpl) mapDayToResponse(day attendance.Day, rules statusrule.Rules) attendance.DayResponse {
	summary := NormalizeDay(day.Sessions)
	effective := day.EffectiveStatus()
	display := DisplayLabel(day, effective)
	label := LookupLabel(rules, display)

	sessions := make([]attendance.SessionResponse, 0, len(day.Sessions))
	for _, session := range day.Sessions {
		breaks := make([]attendance.BreakResponse, 0, len(session.Breaks))
		for _, br := range session.Breaks {
			start := br.BreakStart
			breaks = append(breaks, attendance.BreakResponse{
				BreakStart: *s.formatTime(&start),
				BreakEnd:   s.formatTime(br.BreakEnd),
			})
		}
		sessions = append(sessions, attendance.SessionResponse{
			InTime:        s.formatTime(session.InTime),
			OutTime:       s.formatTime(session.OutTime),
			WorkedMinutes: WorkedMinutes(session),
			Breaks:        breaks,
		})
	}

	return attendance.DayResponse{
		ID:                day.ID,
		UserID:            day.UserID,
		UserName:          day.UserName,
		UserCode:          day.UserCode,
		WorkDate:          day.WorkDate.Format(dateLayout),
		Weekday:           day.WorkDate.Weekday().String(),
		Sessions:          sessions,
		WorkedMinutes:     summary.WorkedMinutes,
		BreakMinutes:      summary.BreakMinutes,
		LateMinutes:       day.LateMinutes,
		EarlyLeaveMinutes: day.EarlyLeaveMinutes,
		OvertimeMinutes:   day.OvertimeMinutes,
		Status:            day.Status,
		DynamicStatus:     day.DynamicStatus,
		DisplayLabel:      display,
		DisplayName:       label.Name,
		TextColor:         label.TextColor,
		BackgroundColor:   label.BackgroundColor,
		Synthesized:       day.Synthesized,
		Editable:          !IsSyntheticID(day.ID),
		ApprovedBy:        day.ApprovedBy,
		Description:       day.Description,
		FormData:          day.FormData,
	}
}
