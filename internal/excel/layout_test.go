package excel

import (
	"testing"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
)

func TestNewLayoutGrouped(t *testing.T) {
	t.Parallel()

	l := NewLayout(domain.ViewSBU)
	if l.LabelCols != 1 {
		t.Fatalf("LabelCols = %d, want 1", l.LabelCols)
	}
	if l.DataStart != 2 {
		t.Fatalf("DataStart = %d, want 2", l.DataStart)
	}
	if l.LastCol != 14 {
		t.Fatalf("LastCol = %d, want 14", l.LastCol)
	}
	if l.HiddenStart() != 15 {
		t.Fatalf("HiddenStart() = %d, want 15", l.HiddenStart())
	}

	// Percentage columns sit at label width + offset + 1.
	for _, col := range []int{4, 7, 9, 12, 14} {
		if !l.PercentCol(col) {
			t.Fatalf("column %d should be a percent column", col)
		}
	}
	for _, col := range []int{1, 2, 3, 5, 6, 8, 10, 11, 13} {
		if l.PercentCol(col) {
			t.Fatalf("column %d should not be a percent column", col)
		}
	}
}

func TestNewLayoutStoreList(t *testing.T) {
	t.Parallel()

	l := NewLayout(domain.ViewFisik)
	if l.LabelCols != 3 {
		t.Fatalf("LabelCols = %d, want 3", l.LabelCols)
	}
	if l.DataStart != 4 {
		t.Fatalf("DataStart = %d, want 4", l.DataStart)
	}
	if l.LastCol != 16 {
		t.Fatalf("LastCol = %d, want 16", l.LastCol)
	}
	for _, col := range []int{6, 9, 11, 14, 16} {
		if !l.PercentCol(col) {
			t.Fatalf("column %d should be a percent column", col)
		}
	}
}

func TestLayoutRanges(t *testing.T) {
	t.Parallel()

	grouped := NewLayout(domain.ViewArea)
	from, to := grouped.TitleRange()
	if from != "A1" || to != "N1" {
		t.Fatalf("grouped title range = %s:%s, want A1:N1", from, to)
	}
	from, to = grouped.FieldRange(0)
	if from != "A2" || to != "A3" {
		t.Fatalf("grouped field range = %s:%s, want A2:A3", from, to)
	}

	list := NewLayout(domain.ViewODD)
	from, to = list.TitleRange()
	if from != "A1" || to != "P1" {
		t.Fatalf("store-list title range = %s:%s, want A1:P1", from, to)
	}
	from, to = list.FieldRange(2)
	if from != "C2" || to != "C3" {
		t.Fatalf("third field range = %s:%s, want C2:C3", from, to)
	}
}

func TestFreezePane(t *testing.T) {
	t.Parallel()

	p := NewLayout(domain.ViewBazaar).FreezePane()
	if !p.Freeze {
		t.Fatal("pane should freeze")
	}
	if p.XSplit != 3 || p.YSplit != 3 {
		t.Fatalf("splits = %d,%d, want 3,3", p.XSplit, p.YSplit)
	}
	if p.TopLeftCell != "D4" {
		t.Fatalf("TopLeftCell = %s, want D4", p.TopLeftCell)
	}
}

func TestHeaderBandsCoverMeasureBlock(t *testing.T) {
	t.Parallel()

	n := 0
	for _, b := range headerBands {
		n += len(b.subs)
	}
	if n != domain.MeasureCount {
		t.Fatalf("header bands cover %d columns, want %d", n, domain.MeasureCount)
	}
}
