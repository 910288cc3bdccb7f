// Package query constructs the SQL text for the three report extracts. The
// window semantics live in SQL on purpose: daily is an exact date match, WTD
// matches the report date's ISO year and week capped at the report date,
// MTD matches year and month capped at the report date, WTD-LY shifts the
// year back while restricting to the day-of-week values actually elapsed in
// the current week, and MTD-LY shifts the year back capped at the report
// date's day of month.
package query

import (
	"fmt"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/params"
)

// Builder renders extract SQL from the injected schema naming.
type Builder struct {
	schema params.Schema
}

func NewBuilder(schema params.Schema) *Builder {
	return &Builder{schema: schema}
}

// bcTable quotes a ledger table with its company prefix.
func (b *Builder) bcTable(name string) string {
	return fmt.Sprintf("%q", b.schema.BC.TablePrefix+name)
}

// pdTable quotes a planning-data table within its schema.
func (b *Builder) pdTable(name string) string {
	return fmt.Sprintf("%s.%q", b.schema.PD.SchemaName, name)
}

// Sales builds the per-store sales extract from the sales ledger: the store
// universe with display names, plus the daily, WTD, WTD-LY, MTD and MTD-LY
// net sales sums. Ledger amounts are sign-inverted. Bazaar stores have no
// dimension-value name, so their display name is synthesized from the code.
func (b *Builder) Sales(date domain.ReportDate) string {
	bc := b.schema.BC
	day := date.SQL()

	return fmt.Sprintf(`
with store as (
    select distinct
        kode_toko.%[1]q "Toko",
        case
            when kode_toko.%[1]q like 'BZ%%'
            then concat('BAZAAR ', right(kode_toko.%[1]q, 3))
            else nama_toko.%[2]q
        end "Nama Toko"
    from %[3]s kode_toko
    left join %[4]s nama_toko
    on
        kode_toko.%[5]q = nama_toko.%[6]q
    where
        kode_toko.%[5]q != ''
), d as (
    select distinct
        %[7]q "Toko",
        SUM(%[8]q * -1) over(partition by %[7]q) "Daily Sales"
    from %[9]s
    where
        %[10]q = '%[11]s'
), wtd as (
    select distinct
        %[7]q "Toko",
        SUM(%[8]q * -1) over(partition by %[7]q) "WTD Sales"
    from %[9]s
    where
        date_part('year', %[10]q) = date_part('year', '%[11]s'::Date) and
        date_part('week', %[10]q) = date_part('week', '%[11]s'::Date) and
        %[10]q <= '%[11]s'
), wtd_ly as (
    select distinct
        %[7]q "Toko",
        SUM(%[8]q * -1) over(partition by %[7]q) "WTD LY Sales"
    from %[9]s
    where
        date_part('year', %[10]q) = date_part('year', '%[11]s'::Date) - 1 and
        date_part('week', %[10]q) = date_part('week', '%[11]s'::Date) and
        date_part('dow', %[10]q) in (
            select distinct
                date_part('dow', %[10]q)
            from %[9]s
            where
                date_part('year', %[10]q) = date_part('year', '%[11]s'::Date) and
                date_part('week', %[10]q) = date_part('week', '%[11]s'::Date) and
                %[10]q <= '%[11]s'
        )
), mtd as (
    select distinct
        %[7]q "Toko",
        SUM(%[8]q * -1) over(partition by %[7]q) "MTD Sales"
    from %[9]s
    where
        date_part('year', %[10]q) = date_part('year', '%[11]s'::Date) and
        date_part('month', %[10]q) = date_part('month', '%[11]s'::Date) and
        %[10]q <= '%[11]s'
), mtd_ly as (
    select distinct
        %[7]q "Toko",
        SUM(%[8]q * -1) over(partition by %[7]q) "MTD LY Sales"
    from %[9]s
    where
        date_part('year', %[10]q) = date_part('year', '%[11]s'::Date) - 1 and
        date_part('month', %[10]q) = date_part('month', '%[11]s'::Date) and
        date_part('day', %[10]q) <= date_part('day', '%[11]s'::Date)
)
select distinct
    store."Toko",
    store."Nama Toko",
    d."Daily Sales",
    wtd."WTD Sales",
    wtd_ly."WTD LY Sales",
    mtd."MTD Sales",
    mtd_ly."MTD LY Sales"
from store
left join d
on
    store."Toko" = d."Toko"
left join wtd
on
    store."Toko" = wtd."Toko"
left join mtd
on
    store."Toko" = mtd."Toko"
left join wtd_ly
on
    store."Toko" = wtd_ly."Toko"
left join mtd_ly
on
    store."Toko" = mtd_ly."Toko"
order by store."Toko"`,
		bc.LocCodeCol,              // 1
		bc.NameCol,                 // 2
		b.bcTable(bc.StoreMapTable), // 3
		b.bcTable(bc.DimValueTable), // 4
		bc.StoreDimCol,             // 5
		bc.CodeCol,                 // 6
		bc.StoreNoCol,              // 7
		bc.NetAmtCol,               // 8
		b.bcTable(bc.SalesEntryTable), // 9
		bc.DateCol,                 // 10
		day,                        // 11
	)
}

// Targets builds the per-store target extract from the planning schema:
// daily, WTD and MTD target sums, coalesced to zero where no target rows
// exist for the window.
func (b *Builder) Targets(date domain.ReportDate) string {
	pd := b.schema.PD
	day := date.SQL()

	return fmt.Sprintf(`
with toko as (
    select distinct
        %[1]q "Toko"
    from %[2]s
), d as (
    select distinct
        %[1]q "Toko",
        sum(%[3]q) over(partition by %[1]q) "Daily Target"
    from %[4]s
    where
        %[5]q = '%[6]s'
), wtd as (
    select distinct
        %[1]q "Toko",
        sum(%[3]q) over(partition by %[1]q) "WTD Target"
    from %[4]s
    where
        date_part('year', %[5]q) = date_part('year', '%[6]s'::Date) and
        date_part('week', %[5]q) = date_part('week', '%[6]s'::Date) and
        %[5]q <= '%[6]s'
), mtd as (
    select distinct
        %[1]q "Toko",
        sum(%[3]q) over(partition by %[1]q) "MTD Target"
    from %[4]s
    where
        date_part('year', %[5]q) = date_part('year', '%[6]s'::Date) and
        date_part('month', %[5]q) = date_part('month', '%[6]s'::Date) and
        %[5]q <= '%[6]s'
)
select
    toko."Toko",
    coalesce(d."Daily Target", 0) "Daily Target",
    coalesce(wtd."WTD Target", 0) "WTD Target",
    coalesce(mtd."MTD Target", 0) "MTD Target"
from toko
left join d
on
    toko."Toko" = d."Toko"
left join wtd
on
    toko."Toko" = wtd."Toko"
left join mtd
on
    toko."Toko" = mtd."Toko"`,
		pd.StoreCol,               // 1
		b.pdTable(pd.StoreTable),  // 2
		pd.TargetCol,              // 3
		b.pdTable(pd.TargetTable), // 4
		pd.DateCol,                // 5
		day,                       // 6
	)
}

// Areas builds the store-to-area extract: for every store, the assignment
// whose effective date is the latest one on or before the report date.
func (b *Builder) Areas(date domain.ReportDate) string {
	pd := b.schema.PD
	day := date.SQL()

	return fmt.Sprintf(`
select distinct
    at.%[1]q "Toko",
    max_tanggal_efektif.%[2]q "Area"
from %[3]s at
left join (
    select distinct
        %[1]q,
        %[2]q,
        max(%[4]q) over(partition by %[1]q, %[2]q) "max_tanggal_efektif"
    from %[3]s
    where
        %[4]q::Date <= '%[5]s'
) max_tanggal_efektif
on
    at.%[1]q = max_tanggal_efektif.%[1]q and
    at.%[4]q = max_tanggal_efektif."max_tanggal_efektif"`,
		pd.StoreCol,             // 1
		pd.AreaCol,              // 2
		b.pdTable(pd.AreaTable), // 3
		pd.EffectiveCol,         // 4
		day,                     // 5
	)
}
