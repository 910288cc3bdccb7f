package domain

import "fmt"

// ViewKind identifies one of the six aggregated views rendered into the
// workbook.
type ViewKind string

const (
	ViewSBU    ViewKind = "sbu"
	ViewArea   ViewKind = "area"
	ViewCNC    ViewKind = "cnc"
	ViewODD    ViewKind = "odd"
	ViewFisik  ViewKind = "fisik"
	ViewBazaar ViewKind = "bazaar"
)

// ViewOrder is the order views appear in the workbook and the run log.
var ViewOrder = []ViewKind{ViewSBU, ViewArea, ViewCNC, ViewODD, ViewFisik, ViewBazaar}

// Grouped reports whether the view groups stores by a category column, as
// opposed to listing individual stores.
func (k ViewKind) Grouped() bool {
	switch k {
	case ViewSBU, ViewArea, ViewCNC:
		return true
	default:
		return false
	}
}

// FieldLabel is the merged header label above the category column of a
// grouped view.
func (k ViewKind) FieldLabel() string {
	switch k {
	case ViewSBU:
		return "Retail SBU"
	case ViewArea:
		return "Stores Area"
	case ViewCNC:
		return "Comp/Non Comp Stores"
	default:
		return ""
	}
}

// Title is the merged worksheet title for the view on a given report date.
func (k ViewKind) Title(date ReportDate) (string, error) {
	switch k {
	case ViewSBU:
		return fmt.Sprintf("NATIONAL SALES BY SBU %s [NON-PPN]", date.TitleDate()), nil
	case ViewArea:
		return fmt.Sprintf("NATIONAL SALES BY AREA %s [NON-PPN]", date.TitleDate()), nil
	case ViewCNC:
		return fmt.Sprintf("NATIONAL SALES BY COMP STORES %s [NON-PPN]", date.TitleDate()), nil
	case ViewODD:
		return fmt.Sprintf("OUR DAILY DOSE NATIONAL SALES %s [NON-PPN]", date.TitleDate()), nil
	case ViewFisik:
		return fmt.Sprintf("FISIK NATIONAL SALES %s [NON-PPN]", date.TitleDate()), nil
	case ViewBazaar:
		return fmt.Sprintf("BAZAAR NATIONAL SALES %s [NON-PPN]", date.TitleDate()), nil
	default:
		return "", fmt.Errorf("unrecognized view kind %q", string(k))
	}
}

// DetailRow is one projected data row of a view. Grouped views fill
// Category; store-list views fill No, Code and Name.
type DetailRow struct {
	Category string
	No       int
	Code     string
	Name     string
	Cells    [MeasureCount]float64
}

// TotalRow is a synthetic aggregate row appended to a view. Highlight marks
// the three cross-brand totals (comp, non-comp, all stores) which render
// with their own fill.
type TotalRow struct {
	Label     string
	Highlight bool
	Cells     [MeasureCount]float64
}

// Section is a run of detail rows optionally closed by a subtotal. Most
// views have a single section; the Fisik view has one per sub-brand.
type Section struct {
	Rows     []DetailRow
	Subtotal *TotalRow
}

// View is an aggregated report view: ordered detail sections plus the
// trailing total rows. The renderer linearizes sections and totals; no code
// distinguishes totals from details by their label text.
type View struct {
	Kind   ViewKind
	Sects  []Section
	Totals []TotalRow
}

// Empty reports whether the view carries no detail rows at all.
func (v *View) Empty() bool {
	for _, s := range v.Sects {
		if len(s.Rows) > 0 {
			return false
		}
	}
	return true
}

// RowCount is the number of rows the view renders, totals included.
func (v *View) RowCount() int {
	n := len(v.Totals)
	for _, s := range v.Sects {
		n += len(s.Rows)
		if s.Subtotal != nil {
			n++
		}
	}
	return n
}

// Details returns the detail rows across all sections in render order.
func (v *View) Details() []DetailRow {
	var rows []DetailRow
	for _, s := range v.Sects {
		rows = append(rows, s.Rows...)
	}
	return rows
}

// Cross-brand total labels.
const (
	CompTotalLabel    = "COMP STORES TOTAL"
	NonCompTotalLabel = "NON COMP STORES TOTAL"
	StoresTotalLabel  = "STORES TOTAL"
)
