package report

import (
	"context"
	"sync"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/finance"
)

// Workspace keeps the most recent successful report of each type so that
// exports always operate on an already generated report.
type Workspace struct {
	generator *Generator

	mu      sync.RWMutex
	reports map[Type]*GeneratedReport
}

// NewWorkspace creates a Workspace that generates with g.
func NewWorkspace(g *Generator) *Workspace {
	if g == nil {
		g = New()
	}
	return &Workspace{
		generator: g,
		reports:   make(map[Type]*GeneratedReport),
	}
}

// Generate assembles a report and, on success, replaces the stored report of
// the same type. A failed generation leaves the stored report untouched.
func (w *Workspace) Generate(ctx context.Context, typ Type, period analytics.Period, ds *finance.Dataset) (*GeneratedReport, error) {
	r, err := w.generator.Generate(ctx, typ, period, ds)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.reports[typ] = r
	w.mu.Unlock()

	return r, nil
}

// Lookup returns the stored report of the given type and period.
func (w *Workspace) Lookup(typ Type, period analytics.Period) (*GeneratedReport, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	r, ok := w.reports[typ]
	if !ok || r.Period != period {
		return nil, &NotGeneratedError{Type: typ, Period: period}
	}
	return r, nil
}

// Reset drops every stored report.
func (w *Workspace) Reset() {
	w.mu.Lock()
	w.reports = make(map[Type]*GeneratedReport)
	w.mu.Unlock()
}
