// Package web provides the HTTP API of the reporting engine.
//
// The server loads a dataset once, keeps the most recent report of each
// type in a workspace, and exposes endpoints to generate reports, download
// exports of generated reports and manage schedule descriptors. When
// watching is enabled, dataset changes trigger a reload and a "reload"
// Server-Sent Event.
//
// SECURITY WARNING: This server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/finance"
	"github.com/robinvdvleuten/finreport/loader"
	"github.com/robinvdvleuten/finreport/report"
	"github.com/robinvdvleuten/finreport/schedule"
	"github.com/robinvdvleuten/finreport/telemetry"
)

type Server struct {
	Port         int
	Host         string
	Version      string
	CommitSHA    string
	WatchEnabled bool

	dataPath  string
	loader    *loader.Loader
	workspace *report.Workspace
	schedules *schedule.Store
	logger    zerolog.Logger

	mu      sync.RWMutex
	dataset *finance.Dataset
	root    string   // Absolute path of the loaded dataset
	files   []string // Absolute paths of every file read

	// SSE clients for broadcasting reload events
	sseClients map[chan string]struct{}
	sseMu      sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithGenerator sets the report generator, for example one with a fixed clock.
func WithGenerator(g *report.Generator) Option {
	return func(s *Server) {
		s.workspace = report.NewWorkspace(g)
	}
}

// WithLoader sets the dataset loader.
func WithLoader(l *loader.Loader) Option {
	return func(s *Server) {
		s.loader = l
	}
}

// WithLogger sets the request and reload logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by the health endpoint.
func WithVersion(version, commitSHA string) Option {
	return func(s *Server) {
		s.Version = version
		s.CommitSHA = commitSHA
	}
}

// New creates a server for the dataset at dataPath. Schedules are managed
// through schedules.
func New(port int, dataPath string, schedules *schedule.Store, opts ...Option) *Server {
	s := &Server{
		Port:       port,
		Host:       "127.0.0.1",
		dataPath:   dataPath,
		loader:     loader.New(),
		workspace:  report.NewWorkspace(report.New()),
		schedules:  schedules,
		logger:     zerolog.Nop(),
		sseClients: make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the dataset and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	collector := telemetry.FromContext(ctx)
	timer := collector.Start(fmt.Sprintf("web.start %s:%d", s.Host, s.Port))

	if s.dataPath == "" {
		timer.End()
		return fmt.Errorf("dataset path is required")
	}

	loadTimer := timer.Child(fmt.Sprintf("web.load_dataset %s", filepath.Base(s.dataPath)))
	if err := s.Reload(ctx); err != nil {
		loadTimer.End()
		timer.End()
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	loadTimer.End()

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			timer.End()
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	setupTimer := timer.Child("web.setup_router")
	handler := s.Handler()
	setupTimer.End()
	timer.End()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.Host, s.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/dataset", s.handleDataset)

	r.Route("/api/reports/{type}", func(r chi.Router) {
		r.Get("/", s.handleGenerateReport)
		r.Get("/export.{format}", s.handleExportReport)
	})

	r.Route("/api/schedules", func(r chi.Router) {
		r.Get("/", s.handleListSchedules)
		r.Post("/", s.handleAddSchedule)
		r.Get("/due", s.handleDueSchedules)
		r.Delete("/{id}", s.handleRemoveSchedule)
		r.Post("/{id}/enable", s.handleSetEnabled(true))
		r.Post("/{id}/disable", s.handleSetEnabled(false))
	})

	r.Get("/api/events", s.handleSSE)

	return r
}

// Reload loads the dataset from disk and drops reports generated from the
// previous one. Caller must NOT hold the mutex.
func (s *Server) Reload(ctx context.Context) error {
	result, err := s.loader.Load(ctx, s.dataPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = result.Dataset
	s.root = result.Root
	s.files = result.Files
	s.workspace.Reset()
	return nil
}

// generate runs a report over the loaded dataset. The read lock is held
// until the report is stored, so a concurrent Reload cannot reset the
// workspace between reading the dataset and storing its report.
func (s *Server) generate(ctx context.Context, typ report.Type, period analytics.Period) (*report.GeneratedReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.workspace.Generate(ctx, typ, period, s.dataset)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   version,
		"commitSHA": s.CommitSHA,
	})
}

type datasetResponse struct {
	Root         string   `json:"root"`
	Files        []string `json:"files"`
	Transactions int      `json:"transactions"`
	Budgets      int      `json:"budgets"`
	Investments  int      `json:"investments"`
	Debts        int      `json:"debts"`
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := datasetResponse{Root: s.root, Files: s.files}
	if s.dataset != nil {
		resp.Transactions = len(s.dataset.Transactions)
		resp.Budgets = len(s.dataset.Budgets)
		resp.Investments = len(s.dataset.Investments)
		resp.Debts = len(s.dataset.Debts)
	}
	s.mu.RUnlock()

	writeJSONResponse(w, http.StatusOK, resp)
}
