package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// PDF renders the daily report as a landscape A4 document and returns the
// file bytes, ready to be streamed as an attachment.
func PDF(report domain.DailyReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).
		WithRightMargin(10).
		WithTopMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, fmt.Sprintf("%s - %s", titlePrefix, report.Date), props.Text{
		Size:  14,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))

	addTable(m, sectionVisitors, visitorHeaders, visitorCells(report.Visitors), "Nenhum visitante registrado")
	addTable(m, sectionFleet, fleetHeaders, fleetCells(report.Fleet), "Nenhum registro")
	addTable(m, sectionSchedules, scheduleHeaders, scheduleCells(report.Schedules), "Nenhum agendamento")

	m.AddRow(10, text.NewCol(12, sectionNotes, props.Text{Size: 11, Style: fontstyle.Bold}))
	m.AddRow(8, text.NewCol(12, observationText(report), props.Text{Size: 9}))
	m.AddRow(8, text.NewCol(12, fmt.Sprintf("%s %s", labelPorter, porterText(report)), props.Text{
		Size:  9,
		Style: fontstyle.Bold,
	}))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("export.PDF: generate: %w", err)
	}
	return doc.GetBytes(), nil
}

// addTable appends a section heading, a bold header row, and one row per
// record. Empty sections get a single placeholder row so the document never
// shows a heading followed by nothing.
func addTable(m core.Maroto, section string, headers []string, rows [][]string, placeholder string) {
	m.AddRow(10, text.NewCol(12, section, props.Text{Size: 11, Style: fontstyle.Bold}))
	m.AddRows(headerRow(headers))

	if len(rows) == 0 {
		m.AddRow(6, text.NewCol(12, placeholder, props.Text{Size: 8}))
		return
	}
	for _, cells := range rows {
		m.AddRows(dataRow(len(headers), cells))
	}
}

// headerRow builds a bold row with equal-width columns.
func headerRow(headers []string) core.Row {
	cols := make([]core.Col, len(headers))
	for i, h := range headers {
		cols[i] = text.NewCol(colSpan(len(headers)), h, props.Text{Size: 8, Style: fontstyle.Bold})
	}
	return row.New(6).Add(cols...)
}

// dataRow builds a plain row with equal-width columns, padding short rows.
func dataRow(width int, cells []string) core.Row {
	cols := make([]core.Col, 0, width)
	for i := 0; i < width; i++ {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		if value == "" {
			cols = append(cols, col.New(colSpan(width)))
			continue
		}
		cols = append(cols, text.NewCol(colSpan(width), value, props.Text{Size: 8}))
	}
	return row.New(5).Add(cols...)
}

// colSpan spreads maroto's 12-column grid across n columns.
func colSpan(n int) int {
	if n == 0 {
		return 12
	}
	return 12 / n
}
