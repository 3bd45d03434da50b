// Package schedule validates and persists recurring report requests.
//
// A descriptor records what to generate (report type and period), how often
// and for whom. The store only keeps descriptors: nothing here runs a clock,
// advances nextRun or sends email.
package schedule

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/robinvdvleuten/finreport/analytics"
	"github.com/robinvdvleuten/finreport/report"
)

// StorageKey is the key the descriptor list is persisted under.
const StorageKey = "scheduledReports"

// LocalLayout is the minute-precision local datetime form accepted for nextRun.
const LocalLayout = "2006-01-02T15:04"

// Frequency is the cadence a descriptor is meant to recur at.
type Frequency string

const (
	Daily     Frequency = "daily"
	Weekly    Frequency = "weekly"
	Monthly   Frequency = "monthly"
	Quarterly Frequency = "quarterly"
)

// Frequencies lists every supported frequency.
var Frequencies = []Frequency{Daily, Weekly, Monthly, Quarterly}

// Valid reports whether f is a supported frequency.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Monthly, Quarterly:
		return true
	}
	return false
}

// Descriptor is a persisted schedule.
type Descriptor struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	ReportType      report.Type      `json:"reportType"`
	Period          analytics.Period `json:"period"`
	Frequency       Frequency        `json:"frequency"`
	NextRun         time.Time        `json:"nextRun"`
	EmailRecipients []string         `json:"emailRecipients"`
	Enabled         bool             `json:"enabled"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Request is a candidate descriptor as submitted by a user. Enabled
// defaults to true when unset.
type Request struct {
	Name            string   `json:"name"`
	ReportType      string   `json:"reportType"`
	Period          string   `json:"period"`
	Frequency       string   `json:"frequency"`
	NextRun         string   `json:"nextRun"`
	EmailRecipients []string `json:"emailRecipients"`
	Enabled         *bool    `json:"enabled,omitempty"`
}

// ValidationError reports the first request field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError is returned for an id that matches no descriptor.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("scheduled report %q not found", e.ID)
}

// ParseNextRun accepts RFC 3339 timestamps and the LocalLayout form, the
// latter interpreted in loc.
func ParseNextRun(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ValidationError{Field: "nextRun", Message: "a next run date and time is required"}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(LocalLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, &ValidationError{
		Field:   "nextRun",
		Message: fmt.Sprintf("%q is not a date and time (expected RFC 3339 or %s)", s, LocalLayout),
	}
}

// validate converts r into a descriptor without id or createdAt.
func (r Request) validate(loc *time.Location) (Descriptor, error) {
	nextRun, err := ParseNextRun(r.NextRun, loc)
	if err != nil {
		return Descriptor{}, err
	}

	typ, err := report.ParseType(r.ReportType)
	if err != nil {
		return Descriptor{}, &ValidationError{Field: "reportType", Message: err.Error()}
	}

	period := analytics.Period(strings.ToLower(strings.TrimSpace(r.Period)))
	if period == "" {
		period = analytics.Month
	}
	if !period.Valid() {
		return Descriptor{}, &ValidationError{
			Field:   "period",
			Message: fmt.Sprintf("unknown period %q (expected week, month, quarter or year)", r.Period),
		}
	}

	frequency := Frequency(strings.ToLower(strings.TrimSpace(r.Frequency)))
	if !frequency.Valid() {
		return Descriptor{}, &ValidationError{
			Field:   "frequency",
			Message: fmt.Sprintf("unknown frequency %q (expected daily, weekly, monthly or quarterly)", r.Frequency),
		}
	}

	recipients := make([]string, 0, len(r.EmailRecipients))
	for _, raw := range r.EmailRecipients {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return Descriptor{}, &ValidationError{
				Field:   "emailRecipients",
				Message: fmt.Sprintf("%q is not an email address", raw),
			}
		}
		recipients = append(recipients, addr.Address)
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = fmt.Sprintf("%s %s report", typ.Title(), period)
	}

	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return Descriptor{
		Name:            name,
		ReportType:      typ,
		Period:          period,
		Frequency:       frequency,
		NextRun:         nextRun,
		EmailRecipients: recipients,
		Enabled:         enabled,
	}, nil
}
