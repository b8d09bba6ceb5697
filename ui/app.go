package ui

import (
	"embed"
	"fmt"
	"html/template"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"godist/app"
	"godist/domain/stats"
	"godist/internal"
	"godist/internal/report"
	"godist/ports"
)

//go:embed templates/*
var embeddedFiles embed.FS

// maxBodyBytes caps request bodies
const maxBodyBytes = 10 << 20

// App represents the UI application
type App struct {
	router    *chi.Mux
	describe  *app.DescribeService
	charts    ports.ChartRenderer
	reports   *report.Renderer
	templates *template.Template
	chartSem  *semaphore.Weighted
	policy    stats.SkipPolicy
	logger    *internal.Logger
	port      string
}

// Config holds UI application configuration
type Config struct {
	Port string
	// MaxConcurrentCharts bounds chart rendering, which is the CPU-heavy
	// part of a request
	MaxConcurrentCharts int64
	SkipPolicy          stats.SkipPolicy
}

// NewApp creates a new UI application
func NewApp(config Config, describe *app.DescribeService, charts ports.ChartRenderer, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if config.MaxConcurrentCharts < 1 {
		config.MaxConcurrentCharts = 4
	}
	if config.Port == "" {
		config.Port = "8080"
	}

	funcMap := template.FuncMap{
		"double": report.FormatDouble,
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		describe:  describe,
		charts:    charts,
		reports:   report.NewRenderer(false),
		templates: templates,
		chartSem:  semaphore.NewWeighted(config.MaxConcurrentCharts),
		policy:    config.SkipPolicy,
		logger:    logger,
		port:      config.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  stdlog.New(a.logger.Writer(), "", 0),
		NoColor: true,
	}))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/healthz", a.handleHealth)

	a.router.Route("/api", func(r chi.Router) {
		r.Post("/describe", a.handleDescribe)
		r.Post("/describe/html", a.handleDescribeHTML)
		r.Post("/charts/{kind}", a.handleChart)

		r.Get("/reports", a.handleListReports)
		r.Get("/reports/{id}", a.handleGetReport)
		r.Get("/reports/{id}/charts/{kind}", a.handleReportChart)
	})
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	a.logger.Info("Starting godist UI server on %s", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
