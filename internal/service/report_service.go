// Package service orchestrates the daily report run: extract, aggregate,
// render, deliver.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/johanesPao/pri-retail-daily-sales/internal/config"
	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/email"
	"github.com/johanesPao/pri-retail-daily-sales/internal/excel"
	"github.com/johanesPao/pri-retail-daily-sales/internal/pipeline"
	"github.com/johanesPao/pri-retail-daily-sales/internal/repository/postgres"
)

// DefaultSheetNames maps each view to its worksheet name, in workbook order.
var DefaultSheetNames = map[domain.ViewKind]string{
	domain.ViewSBU:    "Dashboard SBU",
	domain.ViewArea:   "Dashboard Area",
	domain.ViewCNC:    "Dashboard Comp & Non Comp Store",
	domain.ViewODD:    "Our Daily Dose",
	domain.ViewFisik:  "Fisik",
	domain.ViewBazaar: "Bazaar",
}

// ReportService runs one report cycle for a given date.
type ReportService struct {
	extracts *postgres.ExtractRepository
	mailer   *email.Mailer
	cfg      *config.Config
}

func NewReportService(extracts *postgres.ExtractRepository, mailer *email.Mailer, cfg *config.Config) *ReportService {
	return &ReportService{extracts: extracts, mailer: mailer, cfg: cfg}
}

// Run extracts, aggregates and renders the report for date, then emails it
// when mail is enabled and sendMail is true. It returns the workbook path.
func (s *ReportService) Run(ctx context.Context, date domain.ReportDate, sendMail bool) (string, error) {
	log.Info().Str("report_date", date.SQL()).Msg("Starting daily sales report run")

	sales, err := s.extracts.Sales(ctx, date)
	if err != nil {
		return "", err
	}
	targets, err := s.extracts.Targets(ctx, date)
	if err != nil {
		return "", err
	}
	areas, err := s.extracts.Areas(ctx, date)
	if err != nil {
		return "", err
	}
	log.Info().
		Int("sales_rows", len(sales)).
		Int("target_rows", len(targets)).
		Int("area_rows", len(areas)).
		Msg("Extracts loaded")

	mt := pipeline.BuildMainTable(sales, targets)
	views, err := pipeline.BuildViews(mt, areas)
	if err != nil {
		return "", err
	}
	for _, kind := range domain.ViewOrder {
		if v, ok := views[kind]; ok {
			log.Info().Str("view", string(kind)).Int("rows", v.RowCount()).Msg("View built")
		}
	}

	filename := fmt.Sprintf("%s_%s.xlsx", s.cfg.App.ReportPrefix, date.FileSuffix())
	path := filepath.Join(s.cfg.App.OutputDir, filename)
	if err := excel.WriteWorkbook(path, views, date, DefaultSheetNames); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Msg("Workbook written")

	if sendMail && s.cfg.Mail.Enabled {
		if err := s.sendDigest(ctx, views, date, path, filename); err != nil {
			return "", err
		}
	}

	return path, nil
}

func (s *ReportService) sendDigest(ctx context.Context, views map[domain.ViewKind]*domain.View, date domain.ReportDate, path, filename string) error {
	body, err := email.Body(views, date)
	if err != nil {
		return err
	}
	workbook, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read workbook for attachment: %w", err)
	}

	to, cc := s.cfg.Mail.To, s.cfg.Mail.CC
	if s.cfg.CI.Redirect() {
		log.Warn().
			Str("branch", s.cfg.CI.WorkflowBranch).
			Msg("Non-production branch run, redirecting email to sender")
		to, cc = []string{s.cfg.Mail.From}, nil
	}

	msg := email.Message{
		Subject:    fmt.Sprintf("Laporan Penjualan Harian Retail %s", date.Format("02 January 2006")),
		HTML:       body,
		To:         to,
		CC:         cc,
		Attachment: &email.Attachment{Filename: filename, Data: workbook},
	}
	return s.mailer.Send(ctx, msg)
}
