package attendance

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/formdata"
	"github.com/xuri/excelize/v2"
)

const (
	exportTimeLayout  = "15:04"
	detailSheetName   = "Attendance"
	summarySheetName  = "Summary"
	headerFillColor   = "#4472C4"
	headerFontColor   = "#FFFFFF"
	defaultColumnSize = 16
)

var baseExportColumns = []string{
	"Date",
	"Weekday",
	"Employee Code",
	"Employee Name",
	"First In",
	"Last Out",
	"Worked Minutes",
	"Break Minutes",
	"Late Minutes",
	"Early Leave Minutes",
	"Overtime Minutes",
	"Status",
	"Status Name",
}

// ExportMonthly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthly(ctx context.Context, req attendance.MonthlyViewRequest, format attendance.ExportFormat, w io.Writer) error {
	if format != attendance.ExportCSV && format != attendance.ExportXLSX {
		return attendance.ErrUnsupportedExport
	}

	view, err := s.buildMonthlyView(ctx, &req)
	if err != nil {
		return err
	}

	fields := orderedFields(view.schema)
	header := exportHeader(fields)
	rows := make([][]string, 0, len(view.days))
	for _, day := range view.days {
		rows = append(rows, s.exportRow(day, view, fields))
	}

	if format == attendance.ExportXLSX {
		return writeXLSX(w, req.PeriodStart, header, rows, view.stats)
	}
	return writeCSV(w, header, rows)
}

func orderedFields(schema formdata.Schema) formdata.Schema {
	fields := make(formdata.Schema, len(schema))
	copy(fields, schema)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Position < fields[j].Position
	})
	return fields
}

func exportHeader(fields formdata.Schema) []string {
	header := make([]string, 0, len(baseExportColumns)+len(fields))
	header = append(header, baseExportColumns...)
	for _, f := range fields {
		if f.Label != "" {
			header = append(header, f.Label)
		} else {
			header = append(header, f.Name)
		}
	}
	return header
}

func (s *AttendanceServiceImpl) exportRow(day attendance.Day, view monthlyView, fields formdata.Schema) []string {
	summary := NormalizeDay(day.Sessions)
	effective := day.EffectiveStatus()
	display := DisplayLabel(day, effective)

	row := []string{
		day.WorkDate.Format(dateLayout),
		day.WorkDate.Weekday().String(),
		day.UserCode,
		day.UserName,
		s.clockText(FirstClockIn(day.Sessions)),
		s.clockText(LastClockOut(day.Sessions)),
		strconv.Itoa(summary.WorkedMinutes),
		strconv.Itoa(summary.BreakMinutes),
		strconv.Itoa(day.LateMinutes),
		strconv.Itoa(day.EarlyLeaveMinutes),
		strconv.Itoa(day.OvertimeMinutes),
		display,
		LookupLabel(view.rules, display).Name,
	}

	for _, f := range fields {
		if v, ok := day.FormData[f.Name]; ok {
			row = append(row, v.Text())
		} else {
			row = append(row, "")
		}
	}
	return row
}

func (s *AttendanceServiceImpl) clockText(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(s.location).Format(exportTimeLayout)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, month time.Time, header []string, rows [][]string, stats attendance.AggregateStats) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", detailSheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFontColor},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := setRow(f, detailSheetName, 1, header); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to resolve column name: %w", err)
	}
	if err := f.SetCellStyle(detailSheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(detailSheetName, "A", lastCol, defaultColumnSize); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetPanes(detailSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	for i, row := range rows {
		if err := setRow(f, detailSheetName, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheetName); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]any{
		{"Month", month.Format("January 2006")},
		{"Total Records", stats.TotalRecords},
		{"Actual Work Days", stats.ActualWorkDays},
		{"Late Records", stats.LateRecords},
		{"Average Overtime Hours", stats.AvgOvertimeHours},
		{"Attendance Rate (%)", stats.AttendanceRate},
	}
	if err := f.SetSheetRow(summarySheetName, "A1", &[]any{"Metric", "Value"}); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	if err := f.SetCellStyle(summarySheetName, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("failed to style summary header: %w", err)
	}
	for i, item := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to resolve summary cell: %w", err)
		}
		if err := f.SetSheetRow(summarySheetName, cell, &item); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	if err := f.SetColWidth(summarySheetName, "A", "A", 25); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
