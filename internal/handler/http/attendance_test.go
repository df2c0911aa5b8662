package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestCompanyID = "0190a4b2-1111-7000-8000-000000000001"
)

type fakeAttendanceService struct {
	lastReq    attendance.MonthlyViewRequest
	lastFormat attendance.ExportFormat
	view       attendance.MonthlyViewResponse
	export     string
	err        error
}

func (f *fakeAttendanceService) GetMonthlyView(_ context.Context, req attendance.MonthlyViewRequest) (attendance.MonthlyViewResponse, error) {
	f.lastReq = req
	return f.view, f.err
}

func (f *fakeAttendanceService) ExportMonthly(_ context.Context, req attendance.MonthlyViewRequest, format attendance.ExportFormat, w io.Writer) error {
	f.lastReq = req
	f.lastFormat = format
	if f.err != nil {
		return f.err
	}
	_, err := io.WriteString(w, f.export)
	return err
}

func newTestRouter(svc attendance.AttendanceService) (*chi.Mux, jwt.Service) {
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(logger, []string{"http://localhost:3000"}, jwtSvc, NewAttendanceHandler(svc)), jwtSvc
}

func bearer(t *testing.T, jwtSvc jwt.Service, companyID *string) string {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken(jwt.AccessClaims{
		UserID:    "0190a4b2-9999-7000-8000-000000000001",
		Email:     "owner@example.com",
		CompanyID: companyID,
		Role:      "owner",
	})
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(router http.Handler, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

// ===== HANDLER TESTS =====

// Test MonthlyView - Success
func TestAttendanceHandler_MonthlyView_Success(t *testing.T) {
	companyID := handlerTestCompanyID
	svc := &fakeAttendanceService{view: attendance.MonthlyViewResponse{
		Month: "2024-02",
		Stats: attendance.AggregateStats{TotalRecords: 1, AttendanceRate: 100},
		Days:  []attendance.DayResponse{{ID: "rec-1", UserName: "Alice", DisplayLabel: "normal"}},
	}}
	router, jwtSvc := newTestRouter(svc)

	// Act
	rec := doRequest(router, "/api/v1/attendance/monthly?month=2024-02&search=ali&status=late&group_id=g-1", bearer(t, jwtSvc, &companyID))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2024-02", data["month"])
	stats := data["stats"].(map[string]any)
	assert.Equal(t, float64(100), stats["attendance_rate"])

	assert.Equal(t, "2024-02", svc.lastReq.Month)
	require.NotNil(t, svc.lastReq.Search)
	assert.Equal(t, "ali", *svc.lastReq.Search)
	require.NotNil(t, svc.lastReq.Status)
	assert.Equal(t, "late", *svc.lastReq.Status)
	require.NotNil(t, svc.lastReq.GroupID)
	assert.Nil(t, svc.lastReq.UserID)
}

// Test MonthlyView - authentication
func TestAttendanceHandler_MonthlyView_Auth(t *testing.T) {
	svc := &fakeAttendanceService{}
	router, jwtSvc := newTestRouter(svc)

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(router, "/api/v1/attendance/monthly?month=2024-02", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token from another issuer", func(t *testing.T) {
		companyID := handlerTestCompanyID
		other := jwt.NewJWTService("another-secret", time.Hour)

		rec := doRequest(router, "/api/v1/attendance/monthly?month=2024-02", bearer(t, other, &companyID))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user without company", func(t *testing.T) {
		rec := doRequest(router, "/api/v1/attendance/monthly?month=2024-02", bearer(t, jwtSvc, nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, "FORBIDDEN", resp.Error.Code)
	})
}

// Test MonthlyView - error mapping
func TestAttendanceHandler_MonthlyView_Errors(t *testing.T) {
	companyID := handlerTestCompanyID

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{
			name:     "validation",
			err:      validator.ValidationErrors{{Field: "month", Message: "month is required"}},
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "VALIDATION_ERROR",
		},
		{
			name:     "unknown group",
			err:      employee.ErrGroupNotFound,
			wantCode: http.StatusNotFound,
			wantErr:  "NOT_FOUND",
		},
		{
			name:     "unexpected",
			err:      errors.New("connection refused"),
			wantCode: http.StatusInternalServerError,
			wantErr:  "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, jwtSvc := newTestRouter(&fakeAttendanceService{err: tt.err})

			rec := doRequest(router, "/api/v1/attendance/monthly", bearer(t, jwtSvc, &companyID))

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
		})
	}
}

// Test ExportMonthly - CSV download
func TestAttendanceHandler_ExportMonthly_CSV(t *testing.T) {
	companyID := handlerTestCompanyID
	svc := &fakeAttendanceService{export: "Date,Weekday\n2024-02-01,Thursday\n"}
	router, jwtSvc := newTestRouter(svc)

	rec := doRequest(router, "/api/v1/attendance/monthly/export?month=2024-02", bearer(t, jwtSvc, &companyID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.ExportCSV, svc.lastFormat)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance_2024-02.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, svc.export, rec.Body.String())
}

// Test ExportMonthly - failures
func TestAttendanceHandler_ExportMonthly_Errors(t *testing.T) {
	companyID := handlerTestCompanyID

	t.Run("unsupported format", func(t *testing.T) {
		svc := &fakeAttendanceService{}
		router, jwtSvc := newTestRouter(svc)

		rec := doRequest(router, "/api/v1/attendance/monthly/export?month=2024-02&format=pdf", bearer(t, jwtSvc, &companyID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.lastFormat)
	})

	t.Run("service error is not sent as attachment", func(t *testing.T) {
		router, jwtSvc := newTestRouter(&fakeAttendanceService{err: attendance.ErrCompanyClaimMissing})

		rec := doRequest(router, "/api/v1/attendance/monthly/export?month=2024-02&format=xlsx", bearer(t, jwtSvc, &companyID))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Empty(t, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}

func TestRouter_Heartbeat(t *testing.T) {
	router, _ := newTestRouter(&fakeAttendanceService{})

	rec := doRequest(router, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}
