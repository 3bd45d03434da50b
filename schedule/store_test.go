package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/logging"
	"github.com/robinvdvleuten/finreport/report"
	"github.com/robinvdvleuten/finreport/storage"
)

var created = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T, backend storage.Store, opts ...Option) *Store {
	t.Helper()
	n := 0
	defaults := []Option{
		WithClock(func() time.Time { return created }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithLocation(time.UTC),
	}
	return New(backend, append(defaults, opts...)...)
}

func validRequest() Request {
	return Request{
		Name:            "Monthly summary",
		ReportType:      "summary",
		Period:          "month",
		Frequency:       "monthly",
		NextRun:         "2024-02-01T09:00:00Z",
		EmailRecipients: []string{"Jane Doe <jane@example.com>"},
	}
}

func TestAdd(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := newStore(t, backend)
	ctx := context.Background()

	d, err := s.Add(ctx, validRequest())
	assert.NoError(t, err)
	assert.Equal(t, Descriptor{
		ID:              "id-1",
		Name:            "Monthly summary",
		ReportType:      report.TypeSummary,
		Period:          analytics.Month,
		Frequency:       Monthly,
		NextRun:         time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
		EmailRecipients: []string{"jane@example.com"},
		Enabled:         true,
		CreatedAt:       created,
	}, d)

	raw, err := backend.Get(ctx, StorageKey)
	assert.NoError(t, err)
	var persisted []map[string]any
	assert.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, 1, len(persisted))
	assert.Equal(t, "id-1", persisted[0]["id"])
	assert.Equal(t, "summary", persisted[0]["reportType"])
	assert.Equal(t, "2024-02-01T09:00:00Z", persisted[0]["nextRun"])
}

func TestAddRejectsMissingNextRun(t *testing.T) {
	backend := storage.NewMemoryStore()
	s := newStore(t, backend)

	req := validRequest()
	req.NextRun = "  "
	_, err := s.Add(context.Background(), req)

	var invalid *ValidationError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, "nextRun", invalid.Field)

	_, err = backend.Get(context.Background(), StorageKey)
	assert.IsError(t, err, storage.ErrNotFound)
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Request)
		field  string
	}{
		{"unparseable next run", func(r *Request) { r.NextRun = "next tuesday" }, "nextRun"},
		{"unknown report type", func(r *Request) { r.ReportType = "weekly" }, "reportType"},
		{"unknown period", func(r *Request) { r.Period = "decade" }, "period"},
		{"unknown frequency", func(r *Request) { r.Frequency = "hourly" }, "frequency"},
		{"missing frequency", func(r *Request) { r.Frequency = "" }, "frequency"},
		{"bad recipient", func(r *Request) { r.EmailRecipients = []string{"not-an-email"} }, "emailRecipients"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t, storage.NewMemoryStore())
			req := validRequest()
			tt.modify(&req)

			_, err := s.Add(context.Background(), req)
			var invalid *ValidationError
			assert.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)

			list, err := s.List(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 0, len(list))
		})
	}
}

func TestAddDefaults(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	disabled := false

	d, err := s.Add(context.Background(), Request{
		ReportType: "Budget",
		Frequency:  "weekly",
		NextRun:    "2024-02-01T09:30",
		Enabled:    &disabled,
		EmailRecipients: []string{
			"", "ops@example.com",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Budget month report", d.Name)
	assert.Equal(t, analytics.Month, d.Period)
	assert.Equal(t, report.TypeBudget, d.ReportType)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC), d.NextRun)
	assert.Equal(t, []string{"ops@example.com"}, d.EmailRecipients)
	assert.False(t, d.Enabled)
}

func TestRemove(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	first, err := s.Add(ctx, validRequest())
	assert.NoError(t, err)
	second, err := s.Add(ctx, validRequest())
	assert.NoError(t, err)

	assert.NoError(t, s.Remove(ctx, first.ID))

	list, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []Descriptor{second}, list)

	err = s.Remove(ctx, first.ID)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, first.ID, notFound.ID)
}

func TestSetEnabled(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	d, err := s.Add(ctx, validRequest())
	assert.NoError(t, err)

	updated, err := s.SetEnabled(ctx, d.ID, false)
	assert.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, d.NextRun, updated.NextRun)

	got, err := s.Get(ctx, d.ID)
	assert.NoError(t, err)
	assert.False(t, got.Enabled)

	_, err = s.SetEnabled(ctx, "missing", true)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))

	_, err = s.Get(ctx, "missing")
	assert.True(t, errors.As(err, &notFound))
}

func TestDue(t *testing.T) {
	s := newStore(t, storage.NewMemoryStore())
	ctx := context.Background()

	add := func(nextRun string, enabled bool) Descriptor {
		req := validRequest()
		req.NextRun = nextRun
		req.Enabled = &enabled
		d, err := s.Add(ctx, req)
		assert.NoError(t, err)
		return d
	}

	late := add("2024-01-15T08:00:00Z", true)
	early := add("2024-01-10T08:00:00Z", true)
	add("2024-01-05T08:00:00Z", false)
	add("2024-03-01T08:00:00Z", true)
	exact := add("2024-01-20T12:00:00Z", true)

	due, err := s.Due(ctx, created)
	assert.NoError(t, err)
	assert.Equal(t, []Descriptor{early, late, exact}, due)

	list, err := s.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 5, len(list))
	assert.Equal(t, late.NextRun, list[0].NextRun)
}

func TestPersistsAcrossStores(t *testing.T) {
	backend, err := storage.NewFileStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	d, err := newStore(t, backend).Add(ctx, validRequest())
	assert.NoError(t, err)

	got, err := New(backend).Get(ctx, d.ID)
	assert.NoError(t, err)
	assert.Equal(t, d.ReportType, got.ReportType)
	assert.True(t, d.NextRun.Equal(got.NextRun))
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))
}

func TestCorruptList(t *testing.T) {
	backend := storage.NewMemoryStore()
	assert.NoError(t, backend.Put(context.Background(), StorageKey, []byte("{")))

	_, err := newStore(t, backend).List(context.Background())
	assert.Error(t, err)
}

func TestLogsChanges(t *testing.T) {
	var buf bytes.Buffer
	s := newStore(t, storage.NewMemoryStore(), WithLogger(logging.New(&buf, 0)))
	ctx := context.Background()

	d, err := s.Add(ctx, validRequest())
	assert.NoError(t, err)
	assert.NoError(t, s.Remove(ctx, d.ID))

	assert.Contains(t, buf.String(), `"message":"scheduled report added"`)
	assert.Contains(t, buf.String(), `"message":"scheduled report removed"`)
}

func TestParseNextRun(t *testing.T) {
	amsterdam := time.FixedZone("CET", 3600)

	got, err := ParseNextRun("2024-02-01T09:00", amsterdam)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), got.UTC())

	got, err = ParseNextRun("2024-02-01T09:00:00+02:00", amsterdam)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC), got.UTC())
}
