// Package services contains the application service layer sitting between
// the HTTP transport and the parsing engine.
//
// ReportService owns the upload lifecycle: it validates raw report text,
// drives the parser, and keeps every accepted report in an in-memory
// registry keyed by a generated ID. HealthService exposes process liveness
// and registry statistics for the health endpoints.
//
// Services accept context.Context on every operation and log through the
// injected slog.Logger. They return domain errors (ErrReportNotFound,
// InvalidReportError) that the transport layer maps to RFC 7807 problem
// responses.
package services
