package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/printprofit/internal/config"
	"github.com/Simplici0/printprofit/internal/db"
	"github.com/Simplici0/printprofit/internal/logging"
	"github.com/Simplici0/printprofit/internal/materials"
	"github.com/Simplici0/printprofit/internal/migrations"
	"github.com/Simplici0/printprofit/internal/pricing"
	"github.com/Simplici0/printprofit/internal/report"
	"github.com/Simplici0/printprofit/internal/seed"
	"github.com/Simplici0/printprofit/internal/session"
	"github.com/Simplici0/printprofit/web"
)

const sweepInterval = 5 * time.Minute

type server struct {
	log       *zap.Logger
	db        *sql.DB
	catalog   *materials.Store
	sessions  *session.Manager
	format    report.Formatter
	defaults  pricing.JobCostInput
	pages     map[string]*template.Template
	jobSchema *jsonschema.Schema
	now       func() time.Time
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	Theme          session.Theme
	Copy           themeCopy
	CurrencySymbol string
	Month          string
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.LogLevel
	if level == "" && cfg.IsDev() {
		level = "debug"
	}
	logger := logging.New(logging.Options{Level: level, File: cfg.LogFile})
	defer func() { _ = logger.Sync() }()
	for _, warning := range cfg.Warnings {
		logger.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	migrations.UseLogger(logger)
	if err := migrations.Up(ctx, database, cfg.MigrationsDir); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		logger.Fatal("failed to seed material catalog", zap.Error(err))
	}
	logger.Info("material catalog ready", zap.Int("inserted", stats.Inserts))

	store := session.NewStore(cfg.SessionTTL)
	go store.RunSweeper(ctx, sweepInterval, func(removed int) {
		if removed > 0 {
			logger.Debug("expired sessions removed", zap.Int("removed", removed))
		}
	})

	srv, err := newServer(logger, database, store, cfg)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newServer(logger *zap.Logger, database *sql.DB, store *session.Store, cfg config.Config) (*server, error) {
	defaults := cfg.Defaults
	defaultTheme := session.ParseTheme(cfg.DefaultTheme)
	sessions, err := session.NewManager(store, cfg.SessionSecret, func(id string) session.State {
		return session.State{ID: id, Theme: defaultTheme, Input: defaults}
	})
	if err != nil {
		return nil, err
	}

	pages, err := parsePages("calculator.html", "materials.html")
	if err != nil {
		return nil, err
	}

	jobSchema, err := compileJobSchema()
	if err != nil {
		return nil, err
	}

	return &server{
		log:       logging.Named(logger, "http"),
		db:        database,
		catalog:   materials.NewStore(database),
		sessions:  sessions,
		format:    report.Formatter{CurrencySymbol: cfg.CurrencySymbol},
		defaults:  defaults,
		pages:     pages,
		jobSchema: jobSchema,
		now:       time.Now,
	}, nil
}

func (s *server) routes() http.Handler {
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/", s.handleHome)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/reset", s.handleReset)
	r.Post("/theme", s.handleTheme)
	r.Get("/report.txt", s.handleReportText)
	r.Get("/report.xlsx", s.handleReportXLSX)
	r.Get("/admin/materials", s.handleAdminMaterialsForm)
	r.Post("/admin/materials/{id}", s.handleAdminMaterialsUpdate)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/defaults", s.handleAPIDefaults)
		r.Get("/materials", s.handleAPIMaterials)
		r.Post("/calculate", s.handleAPICalculate)
	})

	return r
}

func parsePages(names ...string) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.ParseFS(web.FS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (s *server) baseView(state session.State) baseViewData {
	return baseViewData{
		Theme:          state.Theme,
		Copy:           copyFor(state.Theme),
		CurrencySymbol: s.format.CurrencySymbol,
		Month:          s.now().Format("January 2006"),
	}
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		s.log.Error("unknown template", zap.String("page", page))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := db.Healthy(ctx, s.db); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
