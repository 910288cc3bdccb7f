package email

import (
	"strings"
	"testing"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
)

func digestViews() map[domain.ViewKind]*domain.View {
	cells := func(daily, mtd float64) [domain.MeasureCount]float64 {
		var c [domain.MeasureCount]float64
		c[0] = daily
		c[1] = daily * 2
		c[2] = 0.5
		c[8] = mtd
		c[9] = mtd * 2
		c[10] = 0.5
		c[11] = mtd / 2
		c[12] = 2
		return c
	}

	grouped := func(kind domain.ViewKind, rows ...domain.DetailRow) *domain.View {
		return &domain.View{Kind: kind, Sects: []domain.Section{{Rows: rows}}}
	}

	return map[domain.ViewKind]*domain.View{
		domain.ViewSBU: grouped(domain.ViewSBU,
			domain.DetailRow{Category: "Our Daily Dose", Cells: cells(1500000, 45000000)},
			domain.DetailRow{Category: "Fisik", Cells: cells(0, 0)},
		),
		domain.ViewArea: grouped(domain.ViewArea,
			domain.DetailRow{Category: "Jakarta", Cells: cells(2000000, 60000000)},
		),
		domain.ViewCNC: grouped(domain.ViewCNC,
			domain.DetailRow{Category: "Comp Stores ODD", Cells: cells(750000, 20000000)},
		),
	}
}

func digestDate(t *testing.T) domain.ReportDate {
	t.Helper()
	d, err := domain.ParseReportDate("2024-01-31")
	if err != nil {
		t.Fatalf("ParseReportDate: %v", err)
	}
	return d
}

func TestBody(t *testing.T) {
	t.Parallel()

	body, err := Body(digestViews(), digestDate(t))
	if err != nil {
		t.Fatalf("Body: %v", err)
	}

	for _, fragment := range []string{
		"31 January 2024",
		"Daily Sales",
		"Month to Date Sales",
		"Strategic Business Unit",
		"Area",
		"Comp Stores Type",
		"Our Daily Dose",
		"Jakarta",
		"Comp Stores ODD",
		"Rp1.500.000",
		"Rp45.000.000",
		"Last Year Sales",
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("body missing %q", fragment)
		}
	}
}

func TestBodyDropsAllZeroRows(t *testing.T) {
	t.Parallel()

	body, err := Body(digestViews(), digestDate(t))
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	if strings.Contains(body, "Fisik") {
		t.Fatal("all-zero Fisik row should be dropped from the digest")
	}
}

func TestBodyPercentColors(t *testing.T) {
	t.Parallel()

	body, err := Body(digestViews(), digestDate(t))
	if err != nil {
		t.Fatalf("Body: %v", err)
	}
	// 50% achievement is in the red band, 200% LY in the green band.
	if !strings.Contains(body, digestRed) {
		t.Fatal("body missing red percent color")
	}
	if !strings.Contains(body, digestGreen) {
		t.Fatal("body missing green percent color")
	}
}

func TestBodyMissingView(t *testing.T) {
	t.Parallel()

	views := digestViews()
	delete(views, domain.ViewArea)
	if _, err := Body(views, digestDate(t)); err == nil {
		t.Fatal("missing area view should fail")
	}
}

func TestBodyRejectsStoreListView(t *testing.T) {
	t.Parallel()

	views := digestViews()
	views[domain.ViewCNC] = &domain.View{Kind: domain.ViewODD}
	if _, err := Body(views, digestDate(t)); err == nil {
		t.Fatal("store-list view in a digest slot should fail")
	}
}

func TestPercentColorBands(t *testing.T) {
	t.Parallel()

	if got := percentColor(0.5); got != digestRed {
		t.Fatalf("percentColor(0.5) = %s, want red", got)
	}
	if got := percentColor(0.51); got != digestAmber {
		t.Fatalf("percentColor(0.51) = %s, want amber", got)
	}
	if got := percentColor(1.01); got != digestGreen {
		t.Fatalf("percentColor(1.01) = %s, want green", got)
	}
}

func TestRupiahFormatting(t *testing.T) {
	t.Parallel()

	if got := rupiah(1500000); got != "Rp1.500.000" {
		t.Fatalf("rupiah(1500000) = %q", got)
	}
	if got := rupiah(0); got != "Rp0" {
		t.Fatalf("rupiah(0) = %q", got)
	}
}

func TestPercentFormatting(t *testing.T) {
	t.Parallel()

	if got := percent(0.5); got != "50.00%" {
		t.Fatalf("percent(0.5) = %q", got)
	}
	if got := percent(1.234); got != "123.40%" {
		t.Fatalf("percent(1.234) = %q", got)
	}
}
