// Package ui renders command lifecycle events as concise console messages.
//
// Structured telemetry stays on the zap JSON pipeline; this package covers the
// human-readable log format, summarizing each GitHub CLI invocation in a
// single line an operator can follow during a batch run.
package ui
