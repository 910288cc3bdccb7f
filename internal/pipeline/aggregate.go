// Package pipeline turns the raw extracts into the six aggregated report
// views. All grouping, total-row and percentage logic of the report lives
// here; rendering knows nothing about how rows were derived.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/repository/postgres"
)

// BuildMainTable inner-joins the sales and target extracts on store code. A
// store must appear in both extracts to be reportable; rows present on only
// one side are dropped. Row order follows the sales extract, which the
// source orders by store code.
func BuildMainTable(sales []postgres.SalesRow, targets []postgres.TargetRow) domain.MainTable {
	targetByCode := make(map[string]postgres.TargetRow, len(targets))
	for _, t := range targets {
		targetByCode[t.Code] = t
	}

	rows := make([]domain.StoreRow, 0, len(sales))
	for _, s := range sales {
		t, ok := targetByCode[s.Code]
		if !ok {
			continue
		}
		rows = append(rows, domain.StoreRow{
			Code:        s.Code,
			Name:        s.Name.String,
			DailySales:  s.DailySales.Float64,
			DailyTarget: t.DailyTarget,
			WTDSales:    s.WTDSales.Float64,
			WTDTarget:   t.WTDTarget,
			WTDLYSales:  s.WTDLYSales,
			MTDSales:    s.MTDSales.Float64,
			MTDTarget:   t.MTDTarget,
			MTDLYSales:  s.MTDLYSales,
		})
	}
	return domain.MainTable{Rows: rows}
}

// crossTotals builds the three comp / non-comp / all-stores total rows over
// the given row scope. Comp rows are exactly those with an MTD LY sales
// figure present.
func crossTotals(rows []domain.StoreRow) []domain.TotalRow {
	var comp, nonComp, all domain.Sums
	for _, r := range rows {
		s := r.Sums()
		all.Add(s)
		if r.Comp() {
			comp.Add(s)
		} else {
			nonComp.Add(s)
		}
	}
	return []domain.TotalRow{
		{Label: domain.CompTotalLabel, Highlight: true, Cells: comp.Project()},
		{Label: domain.NonCompTotalLabel, Highlight: true, Cells: nonComp.Project()},
		{Label: domain.StoresTotalLabel, Highlight: true, Cells: all.Project()},
	}
}

// groupedView sums the main table into categories produced by classify and
// appends the cross totals computed from the pre-grouping rows. Rows whose
// classification is empty are excluded from the grouping but still count
// toward the totals.
func groupedView(kind domain.ViewKind, rows []domain.StoreRow, classify func(domain.StoreRow) string) *domain.View {
	groups := make(map[string]*domain.Sums)
	for _, r := range rows {
		label := classify(r)
		if label == "" {
			continue
		}
		g, ok := groups[label]
		if !ok {
			g = &domain.Sums{}
			groups[label] = g
		}
		g.Add(r.Sums())
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	details := make([]domain.DetailRow, 0, len(labels))
	for _, label := range labels {
		details = append(details, domain.DetailRow{
			Category: label,
			Cells:    groups[label].Project(),
		})
	}

	view := &domain.View{Kind: kind, Sects: []domain.Section{{Rows: details}}}
	if len(rows) > 0 {
		view.Totals = crossTotals(rows)
	}
	return view
}

// SBUView groups the main table by strategic business unit. Store codes
// outside the known prefixes land in the Bazaar bucket here.
func SBUView(mt domain.MainTable) *domain.View {
	return groupedView(domain.ViewSBU, mt.Rows, func(r domain.StoreRow) string {
		return domain.SBULabel(r.Code)
	})
}

// AreaView joins the main table to the area mapping and groups by area.
// Stores without an area assignment are dropped from the grouping (inner
// join) but still contribute to the cross totals, which always come from
// the full main table.
func AreaView(mt domain.MainTable, areas map[string]string) *domain.View {
	return groupedView(domain.ViewArea, mt.Rows, func(r domain.StoreRow) string {
		return areas[r.Code]
	})
}

// CNCView groups the main table by comp / non-comp classification.
func CNCView(mt domain.MainTable) *domain.View {
	return groupedView(domain.ViewCNC, mt.Rows, func(r domain.StoreRow) string {
		return domain.CNCLabel(r.Code, r.Comp())
	})
}

// storeSection lists the rows matching a code prefix, numbered from one,
// with an optional subtotal row closing the section.
func storeSection(rows []domain.StoreRow, prefix, subtotalLabel string) (domain.Section, []domain.StoreRow) {
	var sect domain.Section
	var matched []domain.StoreRow
	var sums domain.Sums

	for _, r := range rows {
		if !strings.HasPrefix(r.Code, prefix) {
			continue
		}
		matched = append(matched, r)
		sums.Add(r.Sums())
		sect.Rows = append(sect.Rows, domain.DetailRow{
			No:    len(sect.Rows) + 1,
			Code:  r.Code,
			Name:  r.Name,
			Cells: r.Sums().Project(),
		})
	}

	if subtotalLabel != "" && len(sect.Rows) > 0 {
		sect.Subtotal = &domain.TotalRow{Label: subtotalLabel, Cells: sums.Project()}
	}
	return sect, matched
}

// BrandView builds one of the single-brand store-list views. An empty
// filtered set yields an empty view with no totals.
func BrandView(mt domain.MainTable, kind domain.ViewKind) (*domain.View, error) {
	type partition struct {
		prefix   string
		subtotal string
	}

	var parts []partition
	switch kind {
	case domain.ViewODD:
		parts = []partition{{prefix: "OD"}}
	case domain.ViewFisik:
		parts = []partition{
			{prefix: "FS", subtotal: "FISIK SPORT TOTAL"},
			{prefix: "FF", subtotal: "FISIK FOOTBALL TOTAL"},
			{prefix: "FO", subtotal: "FACTORY OUTLET TOTAL"},
		}
	case domain.ViewBazaar:
		parts = []partition{{prefix: "BZ"}}
	default:
		return nil, fmt.Errorf("unrecognized store-list view kind %q", string(kind))
	}

	view := &domain.View{Kind: kind}
	var scoped []domain.StoreRow
	for _, p := range parts {
		sect, matched := storeSection(mt.Rows, p.prefix, p.subtotal)
		if len(sect.Rows) == 0 {
			continue
		}
		view.Sects = append(view.Sects, sect)
		scoped = append(scoped, matched...)
	}

	if len(scoped) > 0 {
		view.Totals = crossTotals(scoped)
	}
	return view, nil
}

// BuildViews derives all six report views from the main table and the area
// mapping, keyed by view kind.
func BuildViews(mt domain.MainTable, areas map[string]string) (map[domain.ViewKind]*domain.View, error) {
	views := map[domain.ViewKind]*domain.View{
		domain.ViewSBU:  SBUView(mt),
		domain.ViewArea: AreaView(mt, areas),
		domain.ViewCNC:  CNCView(mt),
	}
	for _, kind := range []domain.ViewKind{domain.ViewODD, domain.ViewFisik, domain.ViewBazaar} {
		view, err := BrandView(mt, kind)
		if err != nil {
			return nil, err
		}
		views[kind] = view
	}
	return views, nil
}
