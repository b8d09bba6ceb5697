package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"godist/adapters/plot"
	"godist/adapters/postgres"
	"godist/app"
	"godist/internal"
	"godist/internal/analysis/descriptive"
	"godist/internal/config"
	"godist/ports"
	"godist/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	var repo ports.ReportRepository
	if cfg.Database.Enabled() {
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()
		repo = postgres.NewReportRepository(db)
		logger.Info("Report persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, reports will not be stored")
	}

	computer := descriptive.NewComputer(descriptive.Options{
		SkipPolicy: cfg.Analysis.SkipPolicy,
		Precision:  cfg.Analysis.Precision,
	})
	charts := plot.NewRenderer(plot.Config{
		WidthCm:  cfg.Plot.WidthCm,
		HeightCm: cfg.Plot.HeightCm,
		Format:   cfg.Plot.Format,
	}, logger)

	application, err := ui.NewApp(ui.Config{
		Port:       cfg.Server.Port,
		SkipPolicy: cfg.Analysis.SkipPolicy,
	}, app.NewDescribeService(computer, repo, logger), charts, logger)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting godist UI on http://localhost:%s", cfg.Server.Port)
	log.Fatal(application.Start())
}
