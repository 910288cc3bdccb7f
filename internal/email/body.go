// Package email composes and sends the HTML digest accompanying the report
// workbook.
package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
)

// Digest percentage colors, one per achievement band.
const (
	digestRed   = "#FF004D"
	digestAmber = "#F6D776"
	digestGreen = "#B7E1B5"
)

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// rupiah renders a currency amount with Indonesian grouping and no cents.
func rupiah(v float64) string {
	return rupiahPrinter.Sprintf("Rp%v", number.Decimal(v, number.MaxFractionDigits(0)))
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}

func percentColor(v float64) string {
	switch {
	case v <= 0.5:
		return digestRed
	case v <= 1:
		return digestAmber
	default:
		return digestGreen
	}
}

type digestRow struct {
	Label      string
	Sales      string
	Target     string
	Ach        string
	AchColor   string
	LYSales    string
	LYAch      string
	LYAchColor string
}

type digestTable struct {
	Header string
	MTD    bool
	Rows   []digestRow
}

type digestData struct {
	DateLong   string
	CompiledAt string
	Daily      []digestTable
	MTD        []digestTable
}

// digestHeader is the category column header of a grouped view's digest
// table. The Others bucket is not enumerated here, matching the upstream
// digest.
func digestHeader(kind domain.ViewKind) (string, error) {
	switch kind {
	case domain.ViewSBU:
		return "Strategic Business Unit", nil
	case domain.ViewArea:
		return "Area", nil
	case domain.ViewCNC:
		return "Comp Stores Type", nil
	default:
		return "", fmt.Errorf("view %q has no digest grouping column", string(kind))
	}
}

// digestTableFor projects one view into a digest table. Only detail rows
// participate; rows whose numeric cells are all zero are dropped. Requesting
// a store-list view is a contract violation since it carries no grouping
// column.
func digestTableFor(view *domain.View, mtd bool) (digestTable, error) {
	if view == nil {
		return digestTable{}, fmt.Errorf("digest view is missing")
	}
	if !view.Kind.Grouped() {
		return digestTable{}, fmt.Errorf("view %q has no digest grouping column", string(view.Kind))
	}
	header, err := digestHeader(view.Kind)
	if err != nil {
		return digestTable{}, err
	}

	table := digestTable{Header: header, MTD: mtd}
	for _, detail := range view.Details() {
		var sales, target, ach, lySales, lyAch float64
		if mtd {
			sales, target, ach = detail.Cells[8], detail.Cells[9], detail.Cells[10]
			lySales, lyAch = detail.Cells[11], detail.Cells[12]
		} else {
			sales, target, ach = detail.Cells[0], detail.Cells[1], detail.Cells[2]
		}

		if sales == 0 && target == 0 && ach == 0 && lySales == 0 && lyAch == 0 {
			continue
		}

		row := digestRow{
			Label:    detail.Category,
			Sales:    rupiah(sales),
			Target:   rupiah(target),
			Ach:      percent(ach),
			AchColor: percentColor(ach),
		}
		if mtd {
			row.LYSales = rupiah(lySales)
			row.LYAch = percent(lyAch)
			row.LYAchColor = percentColor(lyAch)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html xmlns="https://www.w3.org/1999/xhtml" lang="id" xml:lang="id">
<head>
<style type="text/css">
    body { background-color: #6C7B95; color: #EEEEEE; text-align: center; }
    .report-table { background-color: #222831; text-align: left; }
    th.head { padding: 10px; text-align: center; font-size: 16px; background-color: #007F73; }
    td.num { padding: 10px; text-align: center; }
    td.label { padding: 10px; text-align: left; font-weight: bold; }
</style>
</head>
<body>
<table cellpadding="10" cellspacing="0" class="report-table">
<tr><td align="center"><span style="font-size: 36px; color: #1597BB;">Selamat pagi!</span></td></tr>
<tr><td>
    Berikut adalah rangkuman OMNAS untuk data yang berakhir pada tanggal {{.DateLong}}.
    Data ini dikompilasi dari database PostgreSQL pada tanggal {{.CompiledAt}}.<br><br>
    Untuk detail penjualan per toko dapat dilihat pada file terlampir pada email ini.<br><br>
</td></tr>
<tr><td><strong style="font-size: 36px; color: #FFD523;">Daily Sales</strong></td></tr>
{{range .Daily}}{{template "table" .}}{{end}}
<tr><td><strong style="font-size: 36px; color: #FFD523;">Month to Date Sales</strong></td></tr>
{{range .MTD}}{{template "table" .}}{{end}}
<tr><td>
    <span style="color: #EC625F; font-size: 12px;"><i>* file terlampir dan konten pada email ini
    di-generate secara otomatis pada jadwal harian, jika terjadi ketidaksesuaian data mohon
    hubungi pengirim email.</i></span>
</td></tr>
</table>
</body>
</html>
{{define "table"}}
<tr><td><table width="100%">
<tr>
    <th class="head">{{.Header}}</th>
    <th class="head">Sales</th>
    <th class="head">Target</th>
    <th class="head">% Target</th>
    {{if .MTD}}<th class="head">Last Year Sales</th>
    <th class="head">% Last Year</th>{{end}}
</tr>
{{range .Rows}}
<tr style="background-color: #35374B">
    <td class="label">{{.Label}}</td>
    <td class="num">{{.Sales}}</td>
    <td class="num">{{.Target}}</td>
    <td class="num"><span style="color: {{.AchColor}};">{{.Ach}}</span></td>
    {{if .LYSales}}<td class="num">{{.LYSales}}</td>
    <td class="num"><span style="color: {{.LYAchColor}};">{{.LYAch}}</span></td>{{end}}
</tr>
{{end}}
</table></td></tr>
{{end}}`))

// jakarta returns the report timezone, falling back to a fixed WIB offset
// when the zone database is unavailable.
func jakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// Body renders the HTML digest: a Daily and a Month-to-Date section with
// one table each for the SBU, Area and CNC views.
func Body(views map[domain.ViewKind]*domain.View, date domain.ReportDate) (string, error) {
	data := digestData{
		DateLong:   date.Format("02 January 2006"),
		CompiledAt: time.Now().In(jakarta()).Format("02 January 2006 15:04:05"),
	}

	for _, kind := range []domain.ViewKind{domain.ViewSBU, domain.ViewArea, domain.ViewCNC} {
		daily, err := digestTableFor(views[kind], false)
		if err != nil {
			return "", err
		}
		mtd, err := digestTableFor(views[kind], true)
		if err != nil {
			return "", err
		}
		data.Daily = append(data.Daily, daily)
		data.MTD = append(data.MTD, mtd)
	}

	var sb strings.Builder
	if err := digestTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return sb.String(), nil
}
