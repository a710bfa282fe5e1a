// Package logging builds the application's slog loggers and carries them
// through request contexts.
//
// Environment variables:
//   - LOG_LEVEL: "debug" enables debug output, anything else means info
//   - LOG_FORMAT: "text" switches to the human-readable handler, default is JSON
package logging
