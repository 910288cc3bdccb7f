package pipeline

import (
	"database/sql"
	"testing"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/repository/postgres"
)

func f(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func str(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

// fixture: two ODD stores (one comp, one non-comp), one Fisik sport store and
// one Bazaar store that carries no area assignment.
func fixtureExtracts() ([]postgres.SalesRow, []postgres.TargetRow, map[string]string) {
	sales := []postgres.SalesRow{
		{Code: "BZ007", Name: str("BAZAAR 007"), DailySales: f(50), WTDSales: f(100), MTDSales: f(200)},
		{Code: "FS010", Name: str("FISIK SPORT SENAYAN"), DailySales: f(300), WTDSales: f(900), WTDLYSales: f(800), MTDSales: f(2000), MTDLYSales: f(1500)},
		{Code: "OD001", Name: str("ODD KEMANG"), DailySales: f(100), WTDSales: f(400), WTDLYSales: f(350), MTDSales: f(1000), MTDLYSales: f(900)},
		{Code: "OD002", Name: str("ODD BANDUNG"), DailySales: f(80), WTDSales: f(240), MTDSales: f(700)},
	}
	targets := []postgres.TargetRow{
		{Code: "BZ007", DailyTarget: 40, WTDTarget: 90, MTDTarget: 180},
		{Code: "FS010", DailyTarget: 280, WTDTarget: 850, MTDTarget: 1900},
		{Code: "OD001", DailyTarget: 120, WTDTarget: 420, MTDTarget: 1100},
		{Code: "OD002", DailyTarget: 100, WTDTarget: 300, MTDTarget: 800},
	}
	areas := map[string]string{
		"FS010": "Jakarta",
		"OD001": "Jakarta",
		"OD002": "Jawa Barat",
	}
	return sales, targets, areas
}

func TestBuildMainTableInnerJoin(t *testing.T) {
	t.Parallel()

	sales, targets, _ := fixtureExtracts()
	sales = append(sales, postgres.SalesRow{Code: "XX001", DailySales: f(10)})
	targets = append(targets, postgres.TargetRow{Code: "YY001", DailyTarget: 10})

	mt := BuildMainTable(sales, targets)
	if len(mt.Rows) != 4 {
		t.Fatalf("main table has %d rows, want 4", len(mt.Rows))
	}
	for _, r := range mt.Rows {
		if r.Code == "XX001" || r.Code == "YY001" {
			t.Fatalf("one-sided store %s survived the join", r.Code)
		}
	}

	if mt.Rows[2].Code != "OD001" {
		t.Fatalf("row order should follow the sales extract, got %s at index 2", mt.Rows[2].Code)
	}
	od1 := mt.Rows[2]
	if !od1.Comp() {
		t.Fatal("OD001 has MTD LY sales and should be comp")
	}
	if od1.DailyTarget != 120 {
		t.Fatalf("OD001 joined target = %v, want 120", od1.DailyTarget)
	}
}

func TestSBUViewGroupsAndTotals(t *testing.T) {
	t.Parallel()

	sales, targets, _ := fixtureExtracts()
	view := SBUView(BuildMainTable(sales, targets))

	details := view.Details()
	if len(details) != 3 {
		t.Fatalf("SBU view has %d groups, want 3", len(details))
	}
	// Alphabetical group order.
	if details[0].Category != "Bazaar" || details[1].Category != "Fisik" || details[2].Category != "Our Daily Dose" {
		t.Fatalf("group order = %s, %s, %s", details[0].Category, details[1].Category, details[2].Category)
	}

	odd := details[2]
	if odd.Cells[0] != 180 {
		t.Fatalf("ODD daily sales = %v, want 180", odd.Cells[0])
	}
	if odd.Cells[1] != 220 {
		t.Fatalf("ODD daily target = %v, want 220", odd.Cells[1])
	}

	if len(view.Totals) != 3 {
		t.Fatalf("SBU view has %d totals, want 3", len(view.Totals))
	}
	comp, nonComp, all := view.Totals[0], view.Totals[1], view.Totals[2]
	if comp.Label != domain.CompTotalLabel || nonComp.Label != domain.NonCompTotalLabel || all.Label != domain.StoresTotalLabel {
		t.Fatalf("total labels = %q, %q, %q", comp.Label, nonComp.Label, all.Label)
	}
	if !comp.Highlight || !all.Highlight {
		t.Fatal("cross totals should be highlighted")
	}
	// Comp scope is OD001 + FS010; non-comp is OD002 + BZ007.
	if comp.Cells[0] != 400 {
		t.Fatalf("comp daily sales = %v, want 400", comp.Cells[0])
	}
	if nonComp.Cells[0] != 130 {
		t.Fatalf("non-comp daily sales = %v, want 130", nonComp.Cells[0])
	}
	if all.Cells[0] != 530 {
		t.Fatalf("stores total daily sales = %v, want 530", all.Cells[0])
	}
}

func TestAreaViewDropsUnassignedButKeepsTotals(t *testing.T) {
	t.Parallel()

	sales, targets, areas := fixtureExtracts()
	view := AreaView(BuildMainTable(sales, targets), areas)

	details := view.Details()
	if len(details) != 2 {
		t.Fatalf("area view has %d groups, want 2", len(details))
	}
	if details[0].Category != "Jakarta" || details[1].Category != "Jawa Barat" {
		t.Fatalf("area order = %s, %s", details[0].Category, details[1].Category)
	}
	// BZ007 has no area so only OD001+FS010 land in Jakarta.
	if details[0].Cells[0] != 400 {
		t.Fatalf("Jakarta daily sales = %v, want 400", details[0].Cells[0])
	}

	// The unassigned store still contributes to the cross totals.
	if got := view.Totals[2].Cells[0]; got != 530 {
		t.Fatalf("area stores total daily sales = %v, want 530", got)
	}
}

func TestCNCViewBuckets(t *testing.T) {
	t.Parallel()

	sales, targets, _ := fixtureExtracts()
	view := CNCView(BuildMainTable(sales, targets))

	got := map[string]float64{}
	for _, d := range view.Details() {
		got[d.Category] = d.Cells[0]
	}
	want := map[string]float64{
		"Bazaar Stores":       50,
		"Comp Stores Fisik":   300,
		"Comp Stores ODD":     100,
		"Non Comp Stores ODD": 80,
	}
	if len(got) != len(want) {
		t.Fatalf("CNC buckets = %v, want %v", got, want)
	}
	for label, daily := range want {
		if got[label] != daily {
			t.Fatalf("CNC bucket %q daily sales = %v, want %v", label, got[label], daily)
		}
	}
}

func TestBrandViewFisikPartitions(t *testing.T) {
	t.Parallel()

	sales := []postgres.SalesRow{
		{Code: "FF001", Name: str("FOOTBALL A"), DailySales: f(10)},
		{Code: "FO001", Name: str("OUTLET A"), DailySales: f(20)},
		{Code: "FS001", Name: str("SPORT A"), DailySales: f(30)},
		{Code: "FS002", Name: str("SPORT B"), DailySales: f(40), MTDLYSales: f(5)},
		{Code: "OD001", Name: str("ODD A"), DailySales: f(99)},
	}
	var targets []postgres.TargetRow
	for _, s := range sales {
		targets = append(targets, postgres.TargetRow{Code: s.Code, DailyTarget: 1})
	}

	view, err := BrandView(BuildMainTable(sales, targets), domain.ViewFisik)
	if err != nil {
		t.Fatalf("BrandView: %v", err)
	}

	if len(view.Sects) != 3 {
		t.Fatalf("fisik view has %d sections, want 3", len(view.Sects))
	}
	sport, football, outlet := view.Sects[0], view.Sects[1], view.Sects[2]

	if sport.Subtotal == nil || sport.Subtotal.Label != "FISIK SPORT TOTAL" {
		t.Fatalf("sport subtotal = %+v", sport.Subtotal)
	}
	if sport.Subtotal.Cells[0] != 70 {
		t.Fatalf("sport subtotal daily sales = %v, want 70", sport.Subtotal.Cells[0])
	}
	if football.Subtotal == nil || football.Subtotal.Label != "FISIK FOOTBALL TOTAL" {
		t.Fatalf("football subtotal = %+v", football.Subtotal)
	}
	if outlet.Subtotal == nil || outlet.Subtotal.Label != "FACTORY OUTLET TOTAL" {
		t.Fatalf("outlet subtotal = %+v", outlet.Subtotal)
	}

	// Numbering restarts within each partition.
	if sport.Rows[0].No != 1 || sport.Rows[1].No != 2 {
		t.Fatalf("sport numbering = %d, %d", sport.Rows[0].No, sport.Rows[1].No)
	}
	if football.Rows[0].No != 1 || outlet.Rows[0].No != 1 {
		t.Fatalf("partition numbering should restart at 1")
	}

	// Totals are scoped to fisik rows only: the ODD store stays out.
	if got := view.Totals[2].Cells[0]; got != 100 {
		t.Fatalf("fisik stores total daily sales = %v, want 100", got)
	}
	if got := view.Totals[0].Cells[0]; got != 40 {
		t.Fatalf("fisik comp total daily sales = %v, want 40", got)
	}
}

func TestBrandViewODDAndBazaar(t *testing.T) {
	t.Parallel()

	sales, targets, _ := fixtureExtracts()
	mt := BuildMainTable(sales, targets)

	odd, err := BrandView(mt, domain.ViewODD)
	if err != nil {
		t.Fatalf("BrandView(odd): %v", err)
	}
	if len(odd.Sects) != 1 || len(odd.Sects[0].Rows) != 2 {
		t.Fatalf("odd view sections = %+v", odd.Sects)
	}
	if odd.Sects[0].Subtotal != nil {
		t.Fatal("single-partition view should carry no subtotal")
	}
	if odd.Sects[0].Rows[0].Code != "OD001" || odd.Sects[0].Rows[0].No != 1 {
		t.Fatalf("first odd row = %+v", odd.Sects[0].Rows[0])
	}

	bazaar, err := BrandView(mt, domain.ViewBazaar)
	if err != nil {
		t.Fatalf("BrandView(bazaar): %v", err)
	}
	if got := bazaar.Totals[2].Cells[0]; got != 50 {
		t.Fatalf("bazaar stores total daily sales = %v, want 50", got)
	}
}

func TestBrandViewRejectsGroupedKind(t *testing.T) {
	t.Parallel()

	if _, err := BrandView(domain.MainTable{}, domain.ViewSBU); err == nil {
		t.Fatal("BrandView should reject a grouped view kind")
	}
}

func TestBuildViewsEmptyExtracts(t *testing.T) {
	t.Parallel()

	views, err := BuildViews(domain.MainTable{}, nil)
	if err != nil {
		t.Fatalf("BuildViews on empty table: %v", err)
	}
	if len(views) != 6 {
		t.Fatalf("BuildViews returned %d views, want 6", len(views))
	}
	for kind, v := range views {
		if !v.Empty() {
			t.Fatalf("view %s should be empty", kind)
		}
		if len(v.Totals) != 0 {
			t.Fatalf("empty view %s should carry no totals", kind)
		}
	}
}

func TestBuildViewsKeys(t *testing.T) {
	t.Parallel()

	sales, targets, areas := fixtureExtracts()
	views, err := BuildViews(BuildMainTable(sales, targets), areas)
	if err != nil {
		t.Fatalf("BuildViews: %v", err)
	}
	for _, kind := range domain.ViewOrder {
		if views[kind] == nil {
			t.Fatalf("BuildViews missing %s", kind)
		}
	}
}
