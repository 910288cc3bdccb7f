package postgres

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/query"
)

// SalesRow is one store of the sales extract. Window sums are NULL when the
// store had no ledger rows inside the window; the LY columns keep that
// NULL-ness because it drives comp/non-comp classification downstream.
type SalesRow struct {
	Code       string          `db:"Toko"`
	Name       sql.NullString  `db:"Nama Toko"`
	DailySales sql.NullFloat64 `db:"Daily Sales"`
	WTDSales   sql.NullFloat64 `db:"WTD Sales"`
	WTDLYSales sql.NullFloat64 `db:"WTD LY Sales"`
	MTDSales   sql.NullFloat64 `db:"MTD Sales"`
	MTDLYSales sql.NullFloat64 `db:"MTD LY Sales"`
}

// TargetRow is one store of the target extract. Targets are coalesced to
// zero in SQL, so they scan as plain floats.
type TargetRow struct {
	Code        string  `db:"Toko"`
	DailyTarget float64 `db:"Daily Target"`
	WTDTarget   float64 `db:"WTD Target"`
	MTDTarget   float64 `db:"MTD Target"`
}

// AreaRow is one store-to-area assignment effective at the report date.
type AreaRow struct {
	Code string         `db:"Toko"`
	Area sql.NullString `db:"Area"`
}

// ExtractRepository runs the three report extracts against the source.
type ExtractRepository struct {
	db      *DB
	queries *query.Builder
}

func NewExtractRepository(db *DB, queries *query.Builder) *ExtractRepository {
	return &ExtractRepository{db: db, queries: queries}
}

// Sales fetches the per-store sales extract for the report date.
func (r *ExtractRepository) Sales(ctx context.Context, date domain.ReportDate) ([]SalesRow, error) {
	var rows []SalesRow
	if err := r.db.SelectContext(ctx, &rows, r.queries.Sales(date)); err != nil {
		log.Error().Err(err).Str("extract", "sales").Msg("postgres: extract query failed")
		return nil, &QueryError{Err: err}
	}
	log.Debug().Int("rows", len(rows)).Msg("postgres: sales extract fetched")
	return rows, nil
}

// Targets fetches the per-store target extract for the report date.
func (r *ExtractRepository) Targets(ctx context.Context, date domain.ReportDate) ([]TargetRow, error) {
	var rows []TargetRow
	if err := r.db.SelectContext(ctx, &rows, r.queries.Targets(date)); err != nil {
		log.Error().Err(err).Str("extract", "targets").Msg("postgres: extract query failed")
		return nil, &QueryError{Err: err}
	}
	log.Debug().Int("rows", len(rows)).Msg("postgres: target extract fetched")
	return rows, nil
}

// Areas fetches the store-to-area mapping effective at the report date.
// Stores without an effective assignment are omitted, which is what drops
// them from the area view later.
func (r *ExtractRepository) Areas(ctx context.Context, date domain.ReportDate) (map[string]string, error) {
	var rows []AreaRow
	if err := r.db.SelectContext(ctx, &rows, r.queries.Areas(date)); err != nil {
		log.Error().Err(err).Str("extract", "areas").Msg("postgres: extract query failed")
		return nil, &QueryError{Err: err}
	}

	areas := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Area.Valid {
			areas[row.Code] = row.Area.String
		}
	}
	log.Debug().Int("stores", len(areas)).Msg("postgres: area extract fetched")
	return areas, nil
}
