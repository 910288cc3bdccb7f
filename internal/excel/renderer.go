// Package excel renders the aggregated views into the styled report
// workbook.
package excel

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
)

const (
	fillDetail = "E2EFDA"
	fillTotal  = "FFF2CC"

	percentRed   = "FF204E"
	percentAmber = "E8751A"
	percentGreen = "4CCD99"

	nominalFmt = "#,##0.00,,_)jt;(#,##0.00,,)jt"
	percentFmt = "0.0%"
)

// styleSet holds the per-workbook style ids. Styles are created once per
// file; excelize style ids are file-scoped.
type styleSet struct {
	title        int
	field        int
	bandTitle    int
	subBandFirst int
	subBandMid   int
	subBandLast  int

	labelDetail int
	labelTotal  int

	nominalDetail int
	nominalTotal  int

	// percent styles indexed by [highlight][threshold band].
	percent [2][3]int
}

// Renderer writes one workbook for a report date.
type Renderer struct {
	f      *excelize.File
	styles styleSet
	date   domain.ReportDate
}

func NewRenderer(date domain.ReportDate) (*Renderer, error) {
	r := &Renderer{f: excelize.NewFile(), date: date}
	if err := r.buildStyles(); err != nil {
		r.f.Close()
		return nil, err
	}
	return r, nil
}

func boolPtr(b bool) *bool       { return &b }
func floatPtr(f float64) *float64 { return &f }

func borders(left, right, top, bottom int) []excelize.Border {
	return []excelize.Border{
		{Type: "left", Style: left, Color: "000000"},
		{Type: "right", Style: right, Color: "000000"},
		{Type: "top", Style: top, Color: "000000"},
		{Type: "bottom", Style: bottom, Color: "000000"},
	}
}

func (r *Renderer) buildStyles() error {
	var err error

	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	r.styles.title, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"000000"}, Pattern: 1},
		Alignment: center,
		Border:    borders(1, 1, 1, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to build title style: %w", err)
	}

	r.styles.field, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
		Border:    borders(1, 1, 1, 1),
	})
	if err != nil {
		return fmt.Errorf("failed to build field style: %w", err)
	}

	// Band titles keep a hair bottom border against their sub labels; the
	// sub labels use hair inner verticals with thin outer edges.
	r.styles.bandTitle, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: center,
		Border:    borders(1, 1, 1, 7),
	})
	if err != nil {
		return fmt.Errorf("failed to build band title style: %w", err)
	}

	subBand := func(left, right int) (int, error) {
		return r.f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: center,
			Border:    borders(left, right, 7, 1),
		})
	}
	if r.styles.subBandFirst, err = subBand(1, 7); err != nil {
		return fmt.Errorf("failed to build sub band style: %w", err)
	}
	if r.styles.subBandMid, err = subBand(7, 7); err != nil {
		return fmt.Errorf("failed to build sub band style: %w", err)
	}
	if r.styles.subBandLast, err = subBand(7, 1); err != nil {
		return fmt.Errorf("failed to build sub band style: %w", err)
	}

	r.styles.labelDetail, err = r.f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillDetail}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to build label style: %w", err)
	}

	r.styles.labelTotal, err = r.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{fillTotal}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to build total label style: %w", err)
	}

	nominal := nominalFmt
	r.styles.nominalDetail, err = r.f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Color: []string{fillDetail}, Pattern: 1},
		CustomNumFmt: &nominal,
	})
	if err != nil {
		return fmt.Errorf("failed to build nominal style: %w", err)
	}
	r.styles.nominalTotal, err = r.f.NewStyle(&excelize.Style{
		Fill:         excelize.Fill{Type: "pattern", Color: []string{fillTotal}, Pattern: 1},
		CustomNumFmt: &nominal,
	})
	if err != nil {
		return fmt.Errorf("failed to build nominal style: %w", err)
	}

	percent := percentFmt
	fills := [2]string{fillDetail, fillTotal}
	colors := [3]string{percentRed, percentAmber, percentGreen}
	for hi, fill := range fills {
		for ci, color := range colors {
			r.styles.percent[hi][ci], err = r.f.NewStyle(&excelize.Style{
				Font:         &excelize.Font{Bold: true, Color: color},
				Fill:         excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
				CustomNumFmt: &percent,
			})
			if err != nil {
				return fmt.Errorf("failed to build percent style: %w", err)
			}
		}
	}
	return nil
}

// percentStyle picks the threshold-colored percent style: red at or below
// 50%, amber at or below 100%, green above.
func (r *Renderer) percentStyle(value float64, highlight bool) int {
	hi := 0
	if highlight {
		hi = 1
	}
	switch {
	case value <= 0.5:
		return r.styles.percent[hi][0]
	case value <= 1:
		return r.styles.percent[hi][1]
	default:
		return r.styles.percent[hi][2]
	}
}

// AddView renders one view into a named worksheet.
func (r *Renderer) AddView(sheet string, view *domain.View) error {
	if _, err := r.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", sheet, err)
	}

	layout := NewLayout(view.Kind)
	if err := r.writeHeader(sheet, layout, view.Kind); err != nil {
		return err
	}

	lastRow, err := r.writeRows(sheet, layout, view)
	if err != nil {
		return err
	}
	return r.applyGeometry(sheet, layout, lastRow)
}

func (r *Renderer) writeHeader(sheet string, layout Layout, kind domain.ViewKind) error {
	title, err := kind.Title(r.date)
	if err != nil {
		return err
	}

	from, to := layout.TitleRange()
	if err := r.f.MergeCell(sheet, from, to); err != nil {
		return fmt.Errorf("failed to merge title range: %w", err)
	}
	if err := r.f.SetCellValue(sheet, from, title); err != nil {
		return err
	}
	if err := r.f.SetCellStyle(sheet, from, to, r.styles.title); err != nil {
		return err
	}

	fieldLabels := []string{"No.", "Store Code", "Location"}
	if kind.Grouped() {
		fieldLabels = []string{kind.FieldLabel()}
	}
	for i, label := range fieldLabels {
		from, to := layout.FieldRange(i)
		if err := r.f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("failed to merge field header: %w", err)
		}
		if err := r.f.SetCellValue(sheet, from, label); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(sheet, from, to, r.styles.field); err != nil {
			return err
		}
	}

	col := layout.DataStart
	for _, b := range headerBands {
		from := cellName(col, bandRow)
		to := cellName(col+len(b.subs)-1, bandRow)
		if err := r.f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("failed to merge header band: %w", err)
		}
		if err := r.f.SetCellValue(sheet, from, b.title); err != nil {
			return err
		}
		if err := r.f.SetCellStyle(sheet, from, to, r.styles.bandTitle); err != nil {
			return err
		}

		for i, sub := range b.subs {
			style := r.styles.subBandMid
			if i == 0 {
				style = r.styles.subBandFirst
			} else if i == len(b.subs)-1 {
				style = r.styles.subBandLast
			}
			cell := cellName(col+i, subBandRow)
			if err := r.f.SetCellValue(sheet, cell, sub); err != nil {
				return err
			}
			if err := r.f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
		col += len(b.subs)
	}
	return nil
}

// writeMeasures writes the 13 projected cells of one row.
func (r *Renderer) writeMeasures(sheet string, layout Layout, row int, cells [domain.MeasureCount]float64, highlight bool) error {
	nominal := r.styles.nominalDetail
	if highlight {
		nominal = r.styles.nominalTotal
	}
	for i, value := range cells {
		col := layout.DataStart + i
		cell := cellName(col, row)
		if err := r.f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
		style := nominal
		if layout.PercentCol(col) {
			style = r.percentStyle(value, highlight)
		}
		if err := r.f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// writeTotal writes a total row: the label merged across the label columns
// with the total or detail fill, then the measures.
func (r *Renderer) writeTotal(sheet string, layout Layout, row int, total domain.TotalRow) error {
	labelStyle := r.styles.labelDetail
	if total.Highlight {
		labelStyle = r.styles.labelTotal
	}

	from := cellName(1, row)
	to := cellName(layout.LabelCols, row)
	if layout.LabelCols > 1 {
		if err := r.f.MergeCell(sheet, from, to); err != nil {
			return fmt.Errorf("failed to merge total label: %w", err)
		}
	}
	if err := r.f.SetCellValue(sheet, from, total.Label); err != nil {
		return err
	}
	if err := r.f.SetCellStyle(sheet, from, to, labelStyle); err != nil {
		return err
	}
	return r.writeMeasures(sheet, layout, row, total.Cells, total.Highlight)
}

func (r *Renderer) writeRows(sheet string, layout Layout, view *domain.View) (int, error) {
	row := dataStartRow
	for _, sect := range view.Sects {
		for _, detail := range sect.Rows {
			if view.Kind.Grouped() {
				cell := cellName(1, row)
				if err := r.f.SetCellValue(sheet, cell, detail.Category); err != nil {
					return 0, err
				}
				if err := r.f.SetCellStyle(sheet, cell, cell, r.styles.labelDetail); err != nil {
					return 0, err
				}
			} else {
				for col, value := range map[int]any{1: detail.No, 2: detail.Code, 3: detail.Name} {
					cell := cellName(col, row)
					if err := r.f.SetCellValue(sheet, cell, value); err != nil {
						return 0, err
					}
					if err := r.f.SetCellStyle(sheet, cell, cell, r.styles.labelDetail); err != nil {
						return 0, err
					}
				}
			}
			if err := r.writeMeasures(sheet, layout, row, detail.Cells, false); err != nil {
				return 0, err
			}
			row++
		}
		if sect.Subtotal != nil {
			if err := r.writeTotal(sheet, layout, row, *sect.Subtotal); err != nil {
				return 0, err
			}
			row++
		}
	}
	for _, total := range view.Totals {
		if err := r.writeTotal(sheet, layout, row, total); err != nil {
			return 0, err
		}
		row++
	}
	return row - 1, nil
}

// applyGeometry sets widths, the frozen pane, the zoom and the hidden
// ranges beyond the data extent.
func (r *Renderer) applyGeometry(sheet string, layout Layout, lastRow int) error {
	if layout.LabelCols == 1 {
		if err := r.f.SetColWidth(sheet, "A", "A", 29); err != nil {
			return err
		}
	} else {
		for col, width := range map[string]float64{"A": 4.57, "B": 13.14, "C": 51} {
			if err := r.f.SetColWidth(sheet, col, col, width); err != nil {
				return err
			}
		}
	}
	if err := r.f.SetColWidth(sheet, colName(layout.DataStart), colName(layout.LastCol), dataColWidth); err != nil {
		return err
	}

	if err := r.f.SetPanes(sheet, layout.FreezePane()); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}
	if err := r.f.SetSheetView(sheet, 0, &excelize.ViewOptions{
		ShowGridLines: boolPtr(false),
		ZoomScale:     floatPtr(80),
	}); err != nil {
		return fmt.Errorf("failed to set sheet view: %w", err)
	}

	if err := r.f.SetColVisible(sheet, colName(layout.HiddenStart())+":XFD", false); err != nil {
		return fmt.Errorf("failed to hide unused columns: %w", err)
	}

	// Hide rows beyond the data extent the way the upstream report does:
	// default all rows to zero height, then restore the used ones.
	if err := r.f.SetSheetProps(sheet, &excelize.SheetPropsOptions{ZeroHeight: boolPtr(true)}); err != nil {
		return fmt.Errorf("failed to hide unused rows: %w", err)
	}
	for row := 1; row <= lastRow; row++ {
		if err := r.f.SetRowHeight(sheet, row, 15); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to path, replacing any existing file.
func (r *Renderer) Save(path string) error {
	// Drop the implicit default sheet so the workbook holds exactly the
	// requested worksheets in order.
	if err := r.f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	r.f.SetActiveSheet(0)

	if err := r.f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return r.f.Close()
}

// WriteWorkbook renders the views present in the sheet-name mapping, in
// view order, into a workbook at path.
func WriteWorkbook(path string, views map[domain.ViewKind]*domain.View, date domain.ReportDate, sheetNames map[domain.ViewKind]string) error {
	r, err := NewRenderer(date)
	if err != nil {
		return err
	}

	for _, kind := range domain.ViewOrder {
		name, ok := sheetNames[kind]
		if !ok {
			continue
		}
		view, ok := views[kind]
		if !ok {
			continue
		}
		log.Debug().Str("sheet", name).Int("rows", view.RowCount()).Msg("excel: rendering worksheet")
		if err := r.AddView(name, view); err != nil {
			r.f.Close()
			return err
		}
	}
	return r.Save(path)
}
