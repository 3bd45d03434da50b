package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/robinvdvleuten/finreport/loader"
	"github.com/robinvdvleuten/finreport/logging"
	"github.com/robinvdvleuten/finreport/output"
	"github.com/robinvdvleuten/finreport/schedule"
	"github.com/robinvdvleuten/finreport/storage"
	"github.com/robinvdvleuten/finreport/telemetry"
)

// sqliteFile is the database name used by the sqlite state backend.
const sqliteFile = "finreport.db"

// session carries the context of one command invocation and reports
// telemetry once when it finishes.
type session struct {
	ctx *kong.Context
	run context.Context

	collector telemetry.Collector
	root      telemetry.Timer
	once      sync.Once
}

func newSession(ctx *kong.Context, globals *Globals, name string) *session {
	s := &session{ctx: ctx, run: context.Background()}

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		s.collector = collector
		s.run = telemetry.WithCollector(s.run, collector)

		s.root = collector.Start(name)
		s.run = telemetry.WithRootTimer(s.run, s.root)
	}

	logger := newLogger(ctx, globals)
	s.run = logging.WithContext(s.run, logger)
	return s
}

func (s *session) finish() {
	s.once.Do(func() {
		if s.collector != nil {
			s.root.End()
			_, _ = fmt.Fprintln(s.ctx.Stderr)
			s.collector.Report(s.ctx.Stderr, output.NewStyles(s.ctx.Stderr))
		}
	})
}

// fail renders err to stderr, reports telemetry and returns an exit error.
func (s *session) fail(err error, summary string) error {
	_, _ = fmt.Fprintln(s.ctx.Stderr, NewErrorRenderer(sourceFor(err)).Render(err))
	_, _ = fmt.Fprintln(s.ctx.Stderr)
	printError(s.ctx.Stderr, summary)
	s.finish()
	return NewCommandError(1)
}

func newLogger(ctx *kong.Context, globals *Globals) zerolog.Logger {
	return logging.NewConsole(ctx.Stderr, logging.ParseLevel(globals.LogLevel))
}

// loadDataset reads the dataset named by --data.
func (s *session) loadDataset(globals *Globals) (*loader.Result, error) {
	result, err := loader.New().Load(s.run, globals.Data)
	if err != nil {
		return nil, s.fail(err, "failed to load dataset")
	}
	return result, nil
}

// sourceFor returns the file contents a CSV parse error points into.
func sourceFor(err error) []byte {
	var parse *loader.ParseError
	if !stdErrors.As(err, &parse) || parse.Line == 0 || parse.File == "" {
		return nil
	}
	data, readErr := os.ReadFile(parse.File)
	if readErr != nil {
		return nil
	}
	return data
}

// openStorage opens the configured state backend. The returned close
// function must be called when done.
func openStorage(globals *Globals) (storage.Store, func() error, error) {
	switch globals.Store {
	case "sqlite":
		if err := os.MkdirAll(globals.StateDir, 0700); err != nil {
			return nil, nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		store, err := storage.OpenSQLite(filepath.Join(globals.StateDir, sqliteFile))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil

	default:
		store, err := storage.NewFileStore(globals.StateDir, storage.WithPassphrase(globals.Passphrase))
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil
	}
}

// openSchedules opens the schedule store over the configured backend.
func (s *session) openSchedules(globals *Globals) (*schedule.Store, func() error, error) {
	backend, closeFn, err := openStorage(globals)
	if err != nil {
		return nil, nil, err
	}
	store := schedule.New(backend, schedule.WithLogger(logging.FromContext(s.run)))
	return store, closeFn, nil
}
