// Package logging assembles structured slog loggers and formatting helpers used
// across guessmedia components.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes the standardized field keys (component, event_type, error_hint,
// impact) so that parser, cache and scoring diagnostics share one shape. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
