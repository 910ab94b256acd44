package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/securefront/workforce-backend-go/internal/domain/report"
	"github.com/securefront/workforce-backend-go/internal/pkg/timeutil"
	"github.com/xuri/excelize/v2"
)

const (
	exportTimeLayout = "02-01-2006 15:04"
	timesheetSheet   = "Timesheet"

	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var timesheetColumns = []string{
	"Employee Name", "Employee Code", "Site",
	"Date", "Shift Start", "Shift End",
	"Clock In", "Clock Out",
	"Scheduled Hours", "Break Minutes",
	"Hours Worked", "Overtime Hours", "Status", "Remarks",
}

// ExportTimesheet implements report.ReportService.
func (s *ReportServiceImpl) ExportTimesheet(ctx context.Context, filter report.TimesheetFilter, format report.ExportFormat) (report.ExportFile, error) {
	if format != report.ExportCSV && format != report.ExportXLSX {
		return report.ExportFile{}, report.ErrUnsupportedFormat
	}
	if err := filter.Validate(); err != nil {
		return report.ExportFile{}, err
	}
	rows, err := s.timesheetRows(ctx, filter)
	if err != nil {
		return report.ExportFile{}, err
	}

	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, timesheetRecord(row))
	}

	filename := fmt.Sprintf("timesheet_%s_to_%s.%s", filter.StartDate, filter.EndDate, format)
	if format == report.ExportCSV {
		data, err := writeCSV(records)
		if err != nil {
			return report.ExportFile{}, err
		}
		return report.ExportFile{Filename: filename, ContentType: contentTypeCSV, Data: data}, nil
	}

	data, err := writeXLSX(rows)
	if err != nil {
		return report.ExportFile{}, err
	}
	return report.ExportFile{Filename: filename, ContentType: contentTypeXLSX, Data: data}, nil
}

func timesheetRecord(row report.TimesheetRow) []string {
	return []string{
		row.EmployeeName,
		row.EmployeeCode,
		row.SiteName,
		timeutil.DateOf(row.ShiftStart),
		formatExportTime(&row.ShiftStart),
		formatExportTime(&row.ShiftEnd),
		formatExportTime(row.ClockIn),
		formatExportTime(row.ClockOut),
		formatNumber(row.ScheduledHours),
		formatNumber(row.BreakMinutes),
		formatNumber(row.HoursWorked),
		formatNumber(row.OvertimeHours),
		string(row.Status),
		row.Remarks,
	}
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(timesheetColumns); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write timesheet csv: %w", err)
	}
	return buf.Bytes(), nil
}

// writeXLSX keeps numeric columns numeric so the sheet can be summed.
func writeXLSX(rows []report.TimesheetRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", timesheetSheet)

	for i, header := range timesheetColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(timesheetSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		values := []any{
			row.EmployeeName,
			row.EmployeeCode,
			row.SiteName,
			timeutil.DateOf(row.ShiftStart),
			formatExportTime(&row.ShiftStart),
			formatExportTime(&row.ShiftEnd),
			formatExportTime(row.ClockIn),
			formatExportTime(row.ClockOut),
			row.ScheduledHours,
			row.BreakMinutes,
			row.HoursWorked,
			row.OvertimeHours,
			string(row.Status),
			row.Remarks,
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(timesheetSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	f.SetColWidth(timesheetSheet, "A", "C", 24)
	f.SetColWidth(timesheetSheet, "D", "H", 18)
	f.SetColWidth(timesheetSheet, "I", "L", 14)
	f.SetColWidth(timesheetSheet, "M", "N", 20)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write timesheet xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func formatExportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(exportTimeLayout)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
