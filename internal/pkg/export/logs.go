// Package export writes attendance logs as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hris-console/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-console/internal/domain/listing"
	"github.com/xuri/excelize/v2"
)

const (
	LogSheet    = "Attendance Logs"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var logColumnWidths = []float64{6, 16, 24, 22, 16, 16, 12, 12, 32}

// WriteLogs writes entries as an .xlsx workbook to w: a bold header row followed by one row per entry.
func WriteLogs(w io.Writer, entries []attendance.LogEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), LogSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DFEBF6"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sw, err := f.NewStreamWriter(LogSheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	for i, width := range logColumnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	headers := listing.Headers(listing.CollectionAttendanceLogs)
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = excelize.Cell{Value: h, StyleID: headerStyle}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, entry := range entries {
		cells := listing.LogCells(entry)
		row := make([]interface{}, 0, len(cells)+1)
		row = append(row, i+1)
		for _, c := range cells {
			row = append(row, c)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// LogFileName names an export after its filter, e.g. attendance-logs-2024-01-10-dept-2.xlsx.
func LogFileName(filter attendance.LogFilter) string {
	name := "attendance-logs"
	if filter.Date != "" {
		name += "-" + filter.Date
	}
	if filter.DepartmentID != "" {
		name += "-dept-" + filter.DepartmentID
	}
	return name + ".xlsx"
}
