// Package logging is the server's log surface. Handlers, the HTTP server
// and app wiring log through Logger; SlogLogger writes JSON lines.
package logging

import "context"

// Logger takes a message plus alternating keys and values:
//
//	log.Warn(ctx, "Failed to remove image file", "path", p, "error", err)
//
// Request-scoped fields such as the request id are passed explicitly.
type Logger interface {
	// Debug carries per-request detail, e.g. a removed image file.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn marks a failure that did not change the response, such as a
	// best-effort cleanup.
	Warn(ctx context.Context, msg string, args ...any)
	// Error marks a request answered with a 5xx or a failed startup step.
	Error(ctx context.Context, msg string, args ...any)

	// With binds fields to every subsequent entry, e.g. "module", "rest".
	With(args ...any) Logger
}
