package report

import (
	"fmt"

	"github.com/robinvdvleuten/finreport/analytics"
)

// UnknownTypeError is returned for a report type outside summary, detailed and budget.
type UnknownTypeError struct {
	Value string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown report type %q (expected summary, detailed or budget)", e.Value)
}

// GenerationError is returned when assembling a report fails. No report is
// stored when it occurs.
type GenerationError struct {
	Type  Type
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s report: %v", e.Type, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// NotGeneratedError is returned when a report is requested before one of the
// matching type and period has been generated.
type NotGeneratedError struct {
	Type   Type
	Period analytics.Period
}

func (e *NotGeneratedError) Error() string {
	return fmt.Sprintf("no %s report for period %s has been generated yet; generate one first", e.Type, e.Period)
}
