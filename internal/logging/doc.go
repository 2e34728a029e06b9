// Package logging assembles the structured slog loggers used across ytscribe.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides a no-op logger for tests and wiring code that cannot
// fail. Loggers are always passed explicitly into the code that uses them;
// nothing in this repository logs through package-global state.
package logging
