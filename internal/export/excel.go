package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

const sheetName = "Relatório Diário"

// Excel renders the daily report as a single-sheet XLSX workbook and returns
// the file bytes, ready to be streamed as an attachment.
func Excel(report domain.DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() before WriteToBuffer — it needs the file open.

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("export.Excel: new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("export.Excel: delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1E293B"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export.Excel: header style: %w", err)
	}
	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E2E8F0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("export.Excel: section style: %w", err)
	}

	row := 1
	if err := setRow(f, row, []string{fmt.Sprintf("%s - %s", titlePrefix, report.Date)}); err != nil {
		return nil, err
	}
	row += 2

	row, err = writeTable(f, row, sectionStyle, headerStyle, sectionVisitors, visitorHeaders, visitorCells(report.Visitors))
	if err != nil {
		return nil, err
	}
	row, err = writeTable(f, row, sectionStyle, headerStyle, sectionFleet, fleetHeaders, fleetCells(report.Fleet))
	if err != nil {
		return nil, err
	}
	row, err = writeTable(f, row, sectionStyle, headerStyle, sectionSchedules, scheduleHeaders, scheduleCells(report.Schedules))
	if err != nil {
		return nil, err
	}

	if err := setStyledRow(f, row, sectionStyle, []string{sectionNotes}); err != nil {
		return nil, err
	}
	row++
	if err := setRow(f, row, []string{observationText(report)}); err != nil {
		return nil, err
	}
	row += 2
	if err := setRow(f, row, []string{labelPorter, porterText(report)}); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(sheetName, "A", "G", 22); err != nil {
		return nil, fmt.Errorf("export.Excel: col width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export.Excel: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("export.Excel: close: %w", err)
	}
	return buf.Bytes(), nil
}

// writeTable writes a section label, a styled header row, and the data rows.
// It returns the next free row, leaving one blank row after the table.
func writeTable(f *excelize.File, row int, sectionStyle, headerStyle int, section string, headers []string, rows [][]string) (int, error) {
	if err := setStyledRow(f, row, sectionStyle, []string{section}); err != nil {
		return 0, err
	}
	row++
	if err := setStyledRow(f, row, headerStyle, headers); err != nil {
		return 0, err
	}
	row++
	for _, cells := range rows {
		if err := setRow(f, row, cells); err != nil {
			return 0, err
		}
		row++
	}
	return row + 1, nil
}

func setRow(f *excelize.File, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export.Excel: cell name: %w", err)
	}
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("export.Excel: set row %d: %w", row, err)
	}
	return nil
}

func setStyledRow(f *excelize.File, row int, style int, cells []string) error {
	if err := setRow(f, row, cells); err != nil {
		return err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("export.Excel: cell name: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(cells), 1), row)
	if err != nil {
		return fmt.Errorf("export.Excel: cell name: %w", err)
	}
	if err := f.SetCellStyle(sheetName, first, last, style); err != nil {
		return fmt.Errorf("export.Excel: style row %d: %w", row, err)
	}
	return nil
}

func visitorCells(visitors []domain.Visitor) [][]string {
	rows := make([][]string, len(visitors))
	for i, v := range visitors {
		rows[i] = visitorRow(v)
	}
	return rows
}

func fleetCells(trips []domain.FleetTrip) [][]string {
	rows := make([][]string, len(trips))
	for i, t := range trips {
		rows[i] = fleetRow(t)
	}
	return rows
}

func scheduleCells(schedules []domain.Schedule) [][]string {
	rows := make([][]string, len(schedules))
	for i, s := range schedules {
		rows[i] = scheduleRow(s)
	}
	return rows
}
