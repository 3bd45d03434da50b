package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/finreport/storage"
)

// Store manages the descriptor list persisted in a storage.Store. Every
// operation reads the current list, so several processes sharing a backend
// see each other's changes.
type Store struct {
	backend storage.Store
	now     func() time.Time
	newID   func() string
	loc     *time.Location
	logger  zerolog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used to stamp createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// WithLocation sets the location local nextRun values are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		s.loc = loc
	}
}

// WithLogger sets the logger accepted and removed descriptors are logged to.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store over backend.
func New(backend storage.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
		loc:     time.Local,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add validates req and appends the resulting descriptor. A rejected request
// returns *ValidationError and persists nothing.
func (s *Store) Add(ctx context.Context, req Request) (Descriptor, error) {
	d, err := req.validate(s.loc)
	if err != nil {
		return Descriptor{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return Descriptor{}, err
	}

	d.ID = s.newID()
	d.CreatedAt = s.now()
	list = append(list, d)

	if err := s.save(ctx, list); err != nil {
		return Descriptor{}, err
	}

	s.logger.Info().
		Str("id", d.ID).
		Str("report_type", string(d.ReportType)).
		Str("frequency", string(d.Frequency)).
		Time("next_run", d.NextRun).
		Msg("scheduled report added")
	return d, nil
}

// Remove deletes the descriptor with the given id.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return err
	}

	i := slices.IndexFunc(list, func(d Descriptor) bool { return d.ID == id })
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	list = slices.Delete(list, i, i+1)

	if err := s.save(ctx, list); err != nil {
		return err
	}

	s.logger.Info().Str("id", id).Msg("scheduled report removed")
	return nil
}

// SetEnabled enables or disables the descriptor with the given id.
func (s *Store) SetEnabled(ctx context.Context, id string, enabled bool) (Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx)
	if err != nil {
		return Descriptor{}, err
	}

	i := slices.IndexFunc(list, func(d Descriptor) bool { return d.ID == id })
	if i < 0 {
		return Descriptor{}, &NotFoundError{ID: id}
	}
	if list[i].Enabled == enabled {
		return list[i], nil
	}
	list[i].Enabled = enabled

	if err := s.save(ctx, list); err != nil {
		return Descriptor{}, err
	}

	s.logger.Info().Str("id", id).Bool("enabled", enabled).Msg("scheduled report updated")
	return list[i], nil
}

// List returns every descriptor in creation order.
func (s *Store) List(ctx context.Context) ([]Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Get returns the descriptor with the given id.
func (s *Store) Get(ctx context.Context, id string) (Descriptor, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Descriptor{}, err
	}

	i := slices.IndexFunc(list, func(d Descriptor) bool { return d.ID == id })
	if i < 0 {
		return Descriptor{}, &NotFoundError{ID: id}
	}
	return list[i], nil
}

// Due returns the enabled descriptors whose nextRun is at or before now,
// earliest first. It changes nothing.
func (s *Store) Due(ctx context.Context, now time.Time) ([]Descriptor, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	due := make([]Descriptor, 0, len(list))
	for _, d := range list {
		if d.Enabled && !d.NextRun.After(now) {
			due = append(due, d)
		}
	}
	slices.SortStableFunc(due, func(a, b Descriptor) int {
		return a.NextRun.Compare(b.NextRun)
	})
	return due, nil
}

func (s *Store) load(ctx context.Context) ([]Descriptor, error) {
	data, err := s.backend.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []Descriptor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read scheduled reports: %w", err)
	}

	var list []Descriptor
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode scheduled reports: %w", err)
	}
	if list == nil {
		list = []Descriptor{}
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []Descriptor) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode scheduled reports: %w", err)
	}
	if err := s.backend.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write scheduled reports: %w", err)
	}
	return nil
}
