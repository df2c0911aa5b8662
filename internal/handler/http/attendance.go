package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	MonthlyView(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

func parseMonthlyViewRequest(r *http.Request) attendance.MonthlyViewRequest {
	query := r.URL.Query()
	req := attendance.MonthlyViewRequest{
		Month: query.Get("month"),
	}

	if userID := query.Get("user_id"); userID != "" {
		req.UserID = &userID
	}

	if groupID := query.Get("group_id"); groupID != "" {
		req.GroupID = &groupID
	}

	if search := query.Get("search"); search != "" {
		req.Search = &search
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	return req
}

// MonthlyView implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyView(w http.ResponseWriter, r *http.Request) {
	req := parseMonthlyViewRequest(r)

	result, err := h.attendanceService.GetMonthlyView(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	format, err := attendance.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := parseMonthlyViewRequest(r)

	// Buffered so that a failure halfway through still produces a JSON error.
	var buf bytes.Buffer
	if err := h.attendanceService.ExportMonthly(r.Context(), req, format, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s.%s", req.Month, format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write export", "format", format, "error", err)
	}
}
