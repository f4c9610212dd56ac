// Package errs defines the error kinds shared across ingest, configuration,
// and the assignment core.
package errs

import "fmt"

// IngestError reports a malformed or unreadable input row or sheet.
type IngestError struct {
	Source string
	Reason string
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingest error: %s: %s", e.Source, e.Reason)
}

// NewIngest builds an IngestError.
func NewIngest(source, reason string) error {
	return &IngestError{Source: source, Reason: reason}
}

// ConfigError reports a missing or invalid configuration element: an unknown
// shift tag, a missing shift parameter block, a missing column mapping.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// NewConfig builds a ConfigError.
func NewConfig(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// InvariantError reports a fatal post-condition failure: an output row-count
// mismatch, or a TTC pass that fails to terminate within its bound.
type InvariantError struct {
	Invariant string
	Detail    string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: %s: %s", e.Invariant, e.Detail)
}

// NewInvariant builds an InvariantError.
func NewInvariant(invariant, detail string) error {
	return &InvariantError{Invariant: invariant, Detail: detail}
}

// EmptyResult is not an error: it records that an availability query
// returned fewer observers than requested, and the shortfall was padded
// with the empty sentinel. It is collected for the run report, never
// returned up the call stack as a failure.
type EmptyResult struct {
	Shift     string
	Requested int
	Found     int
}

func (e EmptyResult) String() string {
	return fmt.Sprintf("%s: requested %d, found %d", e.Shift, e.Requested, e.Found)
}
