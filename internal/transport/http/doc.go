// Package http contains the HTTP transport layer: Chi handlers that
// translate between the REST API and the service layer.
//
// Handlers follow a consistent shape. Each resource gets a handler struct
// holding its service, a *slog.Logger, and the shared RFC 7807 error
// handler; Routes() returns a chi.Router mounted by the application.
// Resource-scoped middleware (ReportCtx) resolves the {reportID} URL
// parameter once and places the stored report in the request context so
// the leaf handlers stay small.
//
// All error responses go through internal/errors so clients always see
// application/problem+json bodies with a trace_id.
package http
