package query

import (
	"strings"
	"testing"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/params"
)

func testSchema() params.Schema {
	return params.Schema{
		BC: params.BCSchema{
			TablePrefix:     "PT PRI$",
			StoreMapTable:   "Store Mapping$5ec",
			DimValueTable:   "Dimension Value$437",
			SalesEntryTable: "Store Sales Entry$5ec",
			LocCodeCol:      "Location Code",
			NameCol:         "Name",
			StoreDimCol:     "Store Dimension",
			CodeCol:         "Code",
			StoreNoCol:      "Store No_",
			NetAmtCol:       "Net Amount",
			DateCol:         "Date",
		},
		PD: params.PDSchema{
			SchemaName:   "pd",
			StoreTable:   "master_toko",
			TargetTable:  "daily_target",
			AreaTable:    "area_toko",
			StoreCol:     "kode_toko",
			TargetCol:    "nilai_target_non_ppn",
			DateCol:      "tanggal",
			AreaCol:      "area",
			EffectiveCol: "tanggal_efektif",
		},
	}
}

func testDate(t *testing.T) domain.ReportDate {
	t.Helper()
	d, err := domain.ParseReportDate("2024-01-31")
	if err != nil {
		t.Fatalf("ParseReportDate: %v", err)
	}
	return d
}

func TestSalesQueryShape(t *testing.T) {
	t.Parallel()

	sql := NewBuilder(testSchema()).Sales(testDate(t))

	for _, fragment := range []string{
		`"PT PRI$Store Sales Entry$5ec"`,
		`"PT PRI$Store Mapping$5ec"`,
		`"PT PRI$Dimension Value$437"`,
		`SUM("Net Amount" * -1)`,
		`concat('BAZAAR ', right(kode_toko."Location Code", 3))`,
		`like 'BZ%'`,
		`"Date" = '2024-01-31'`,
		`date_part('week', "Date") = date_part('week', '2024-01-31'::Date)`,
		`date_part('year', "Date") = date_part('year', '2024-01-31'::Date) - 1`,
		`date_part('dow', "Date") in (`,
		`date_part('day', "Date") <= date_part('day', '2024-01-31'::Date)`,
		`order by store."Toko"`,
	} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("sales SQL missing %q:\n%s", fragment, sql)
		}
	}

	// The format string must be fully consumed.
	if strings.Contains(sql, "%!") {
		t.Fatalf("sales SQL has a formatting error:\n%s", sql)
	}
}

func TestTargetsQueryShape(t *testing.T) {
	t.Parallel()

	sql := NewBuilder(testSchema()).Targets(testDate(t))

	for _, fragment := range []string{
		`pd."master_toko"`,
		`pd."daily_target"`,
		`sum("nilai_target_non_ppn") over(partition by "kode_toko")`,
		`coalesce(d."Daily Target", 0)`,
		`coalesce(wtd."WTD Target", 0)`,
		`coalesce(mtd."MTD Target", 0)`,
		`"tanggal" = '2024-01-31'`,
		`date_part('month', "tanggal") = date_part('month', '2024-01-31'::Date)`,
	} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("targets SQL missing %q:\n%s", fragment, sql)
		}
	}
	if strings.Contains(sql, "%!") {
		t.Fatalf("targets SQL has a formatting error:\n%s", sql)
	}
}

func TestAreasQueryShape(t *testing.T) {
	t.Parallel()

	sql := NewBuilder(testSchema()).Areas(testDate(t))

	for _, fragment := range []string{
		`pd."area_toko"`,
		`max("tanggal_efektif") over(partition by "kode_toko", "area")`,
		`"tanggal_efektif"::Date <= '2024-01-31'`,
	} {
		if !strings.Contains(sql, fragment) {
			t.Fatalf("areas SQL missing %q:\n%s", fragment, sql)
		}
	}
	if strings.Contains(sql, "%!") {
		t.Fatalf("areas SQL has a formatting error:\n%s", sql)
	}
}
