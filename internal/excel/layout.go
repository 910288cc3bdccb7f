package excel

import (
	"github.com/xuri/excelize/v2"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
)

// Sheet geometry shared by every view: three header rows, data from row 4.
const (
	titleRow     = 1
	bandRow      = 2
	subBandRow   = 3
	dataStartRow = 4

	dataColWidth = 15.57
)

// Layout derives every worksheet offset from the view kind and the fixed
// measure block width, so the header band and the data columns can never
// drift apart.
type Layout struct {
	// LabelCols is the number of leading label columns: one category
	// column for grouped views, No./Store Code/Location for store lists.
	LabelCols int
	// DataStart is the 1-based column where the 13 measure cells begin.
	DataStart int
	// LastCol is the 1-based last data column.
	LastCol int
	// percent flags the 1-based columns rendered as percentages.
	percent map[int]bool
}

func NewLayout(kind domain.ViewKind) Layout {
	labelCols := 3
	if kind.Grouped() {
		labelCols = 1
	}

	l := Layout{
		LabelCols: labelCols,
		DataStart: labelCols + 1,
		LastCol:   labelCols + domain.MeasureCount,
		percent:   make(map[int]bool, len(domain.PercentOffsets)),
	}
	for _, off := range domain.PercentOffsets {
		l.percent[labelCols+off+1] = true
	}
	return l
}

// PercentCol reports whether the 1-based column renders as a percentage.
func (l Layout) PercentCol(col int) bool {
	return l.percent[col]
}

// HiddenStart is the 1-based first column beyond the data extent.
func (l Layout) HiddenStart() int {
	return l.LastCol + 1
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// TitleRange is the merged range of the worksheet title.
func (l Layout) TitleRange() (string, string) {
	return cellName(1, titleRow), cellName(l.LastCol, titleRow)
}

// FieldRange is the merged two-row range of the i-th label column header.
func (l Layout) FieldRange(i int) (string, string) {
	return cellName(i+1, bandRow), cellName(i+1, subBandRow)
}

// band is one top-level header group with its sub labels.
type band struct {
	title string
	subs  []string
}

var headerBands = []band{
	{title: "Daily", subs: []string{"Sales", "Target", "Achieve"}},
	{title: "Week to Date", subs: []string{"Sales", "Target", "Achieve", "LY Sales", "%LY"}},
	{title: "Month to Date", subs: []string{"Sales", "Target", "Achieve", "LY Sales", "%LY"}},
}

// FreezePane describes the frozen header band and label columns.
func (l Layout) FreezePane() *excelize.Panes {
	return &excelize.Panes{
		Freeze:      true,
		XSplit:      l.LabelCols,
		YSplit:      subBandRow,
		TopLeftCell: cellName(l.DataStart, dataStartRow),
		ActivePane:  "bottomRight",
	}
}
