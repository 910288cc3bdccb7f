package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/johanesPao/pri-retail-daily-sales/internal/config"
	"github.com/johanesPao/pri-retail-daily-sales/internal/domain"
	"github.com/johanesPao/pri-retail-daily-sales/internal/email"
	"github.com/johanesPao/pri-retail-daily-sales/internal/params"
	"github.com/johanesPao/pri-retail-daily-sales/internal/query"
	"github.com/johanesPao/pri-retail-daily-sales/internal/repository/postgres"
	"github.com/johanesPao/pri-retail-daily-sales/internal/service"
	"github.com/johanesPao/pri-retail-daily-sales/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:  "dailyreport",
		Usage: "Generate and deliver the retail daily sales report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "date",
				Aliases: []string{"t"},
				Usage:   "Report date in YYYY-MM-DD format",
				Value:   time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
			},
			&cli.BoolFlag{
				Name:  "skip-email",
				Usage: "Write the workbook without sending the email digest",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: "info",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("Report run failed")
	}
}

func run(c *cli.Context) error {
	logger.Setup()
	logger.SetLevel(c.String("log-level"))

	date, err := domain.ParseReportDate(c.String("date"))
	if err != nil {
		return err
	}

	cfg := config.Load()
	ctx := context.Background()

	store, err := params.NewStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.ParamCollection)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	schema, err := store.Load(ctx, cfg.Mongo.BCDocumentID, cfg.Mongo.PDDocumentID)
	if err != nil {
		return err
	}

	db, err := postgres.Open(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	extracts := postgres.NewExtractRepository(db, query.NewBuilder(schema))

	var mailer *email.Mailer
	if cfg.Mail.Enabled {
		mailer = email.NewMailer(cfg.Mail.MailgunDomain, cfg.Mail.MailgunAPIKey, cfg.Mail.From)
	}

	svc := service.NewReportService(extracts, mailer, cfg)
	_, err = svc.Run(ctx, date, !c.Bool("skip-email"))
	return err
}
