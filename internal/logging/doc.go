// Package logging configures the process-wide slog logger and exposes
// small helpers for building structured attributes.
//
// Handlers are selected by config: "console" (text) for interactive use and
// "json" for machine-readable output. Field name constants keep attribute
// keys consistent across components.
package logging
