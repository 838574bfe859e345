// Package logging builds log/slog loggers with the output conventions the
// CLI expects: a compact console handler for terminals and a JSON handler
// for machine consumption, optionally teeing into a log file.
package logging
