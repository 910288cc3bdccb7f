package domain

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ReportDate is the reporting cutoff. All date windows (daily, WTD, MTD and
// their last-year variants) are derived from it on the SQL side.
type ReportDate struct {
	time.Time
}

func NewReportDate(t time.Time) ReportDate {
	return ReportDate{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseReportDate parses an ISO YYYY-MM-DD date string.
func ParseReportDate(s string) (ReportDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return ReportDate{}, fmt.Errorf("invalid report date %q: %w", s, err)
	}
	return NewReportDate(t), nil
}

// SQL renders the date the way the extract queries inline it.
func (d ReportDate) SQL() string {
	return d.Format("2006-01-02")
}

// FileSuffix renders the date for the workbook filename, e.g. "31_Jan_2024".
func (d ReportDate) FileSuffix() string {
	return d.Format("02_Jan_2006")
}

// TitleDate renders the date for worksheet titles, e.g. "31 JANUARY 2024".
func (d ReportDate) TitleDate() string {
	return strings.ToUpper(d.Format("02 January 2006"))
}

// Brand is the strategic business unit a store code maps to.
type Brand int

const (
	BrandODD Brand = iota
	BrandFisik
	BrandBazaar
	BrandOthers
)

func (b Brand) String() string {
	switch b {
	case BrandODD:
		return "Our Daily Dose"
	case BrandFisik:
		return "Fisik"
	case BrandBazaar:
		return "Bazaar"
	default:
		return "Others"
	}
}

// brandPrefixes is the closed prefix-to-brand lookup. Adding a sub-brand is a
// data change here, not a logic change elsewhere.
var brandPrefixes = map[string]Brand{
	"OD": BrandODD,
	"FS": BrandFisik,
	"FF": BrandFisik,
	"FO": BrandFisik,
	"BZ": BrandBazaar,
}

// BrandOf classifies a store code by its two-character prefix.
func BrandOf(code string) Brand {
	if len(code) < 2 {
		return BrandOthers
	}
	if b, ok := brandPrefixes[code[:2]]; ok {
		return b
	}
	return BrandOthers
}

// SBULabel returns the SBU bucket used by the SBU view. Codes outside the
// known prefixes fall into the Bazaar bucket there, matching the upstream
// report.
func SBULabel(code string) string {
	b := BrandOf(code)
	if b == BrandOthers {
		return BrandBazaar.String()
	}
	return b.String()
}

// CNCLabel returns the comp/non-comp bucket for a store. Comp-ness is the
// presence of a last-year MTD sales figure; Bazaar has no comp split.
func CNCLabel(code string, comp bool) string {
	switch BrandOf(code) {
	case BrandODD:
		if comp {
			return "Comp Stores ODD"
		}
		return "Non Comp Stores ODD"
	case BrandFisik:
		if comp {
			return "Comp Stores Fisik"
		}
		return "Non Comp Stores Fisik"
	case BrandBazaar:
		return "Bazaar Stores"
	default:
		if comp {
			return "Comp Stores Others"
		}
		return "Non Comp Store Others"
	}
}

// StoreRow is one store in the main table: the inner join of the sales and
// target extracts for the report date. The two LY sales columns keep their
// NULL-ness because absence of MTD LY sales is what classifies a store as
// non-comp.
type StoreRow struct {
	Code        string
	Name        string
	DailySales  float64
	DailyTarget float64
	WTDSales    float64
	WTDTarget   float64
	WTDLYSales  sql.NullFloat64
	MTDSales    float64
	MTDTarget   float64
	MTDLYSales  sql.NullFloat64
}

// Comp reports whether the store is a comparable store.
func (r StoreRow) Comp() bool {
	return r.MTDLYSales.Valid
}

// Sums returns the eight raw measures with missing LY values as zero.
func (r StoreRow) Sums() Sums {
	return Sums{
		DailySales:  r.DailySales,
		DailyTarget: r.DailyTarget,
		WTDSales:    r.WTDSales,
		WTDTarget:   r.WTDTarget,
		WTDLYSales:  r.WTDLYSales.Float64,
		MTDSales:    r.MTDSales,
		MTDTarget:   r.MTDTarget,
		MTDLYSales:  r.MTDLYSales.Float64,
	}
}

// MainTable is the joined per-store table every view derives from. Store
// codes are unique within it.
type MainTable struct {
	Rows []StoreRow
}

// Sums holds the eight summable measures of a row or a group of rows.
type Sums struct {
	DailySales  float64
	DailyTarget float64
	WTDSales    float64
	WTDTarget   float64
	WTDLYSales  float64
	MTDSales    float64
	MTDTarget   float64
	MTDLYSales  float64
}

// Add accumulates another set of sums.
func (s *Sums) Add(o Sums) {
	s.DailySales += o.DailySales
	s.DailyTarget += o.DailyTarget
	s.WTDSales += o.WTDSales
	s.WTDTarget += o.WTDTarget
	s.WTDLYSales += o.WTDLYSales
	s.MTDSales += o.MTDSales
	s.MTDTarget += o.MTDTarget
	s.MTDLYSales += o.MTDLYSales
}

// Offsets of the five percentage cells within the fixed 13-column measure
// sequence: Daily Ach., WTD Ach., WTD LY Ach., MTD Ach., MTD LY Ach.
var PercentOffsets = [5]int{2, 5, 7, 10, 12}

// MeasureCount is the width of the fixed measure block every view projects
// into.
const MeasureCount = 13

// ratio divides sales by a target-like denominator with a zero guard so no
// NaN or Inf ever reaches a view.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Project lays the sums out in the fixed 13-column order with achievement
// ratios interleaved: Daily Sales, Daily Target, Daily Ach., WTD Sales, WTD
// Target, WTD Ach., WTD LY Sales, WTD LY Ach., MTD Sales, MTD Target, MTD
// Ach., MTD LY Sales, MTD LY Ach.
func (s Sums) Project() [MeasureCount]float64 {
	return [MeasureCount]float64{
		s.DailySales,
		s.DailyTarget,
		ratio(s.DailySales, s.DailyTarget),
		s.WTDSales,
		s.WTDTarget,
		ratio(s.WTDSales, s.WTDTarget),
		s.WTDLYSales,
		ratio(s.WTDSales, s.WTDLYSales),
		s.MTDSales,
		s.MTDTarget,
		ratio(s.MTDSales, s.MTDTarget),
		s.MTDLYSales,
		ratio(s.MTDSales, s.MTDLYSales),
	}
}
