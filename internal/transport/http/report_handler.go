package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "appsalescli/internal/errors"
	"appsalescli/internal/exporter"
	"appsalescli/internal/services"
)

type contextKey string

// reportCtxKey carries the stored report resolved by ReportCtx
const reportCtxKey contextKey = "stored-report"

// Export views accepted by the csv export endpoint
const (
	viewTransactions = "transactions"
	viewCountries    = "countries"
	viewProducts     = "products"
	viewCurrencies   = "currencies"
)

// exportQuery holds the validated query parameters of the csv export endpoint
type exportQuery struct {
	View string `validate:"omitempty,oneof=transactions countries products currencies"`
}

// ReportHandler handles sales report HTTP requests with RFC 7807 compliance
type ReportHandler struct {
	service        *services.ReportService
	csv            *exporter.CSVWriter
	excel          *exporter.ExcelWriter
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validate       *validator.Validate
	maxUploadBytes int64
}

// NewReportHandler creates a new report handler with RFC 7807 error handling
func NewReportHandler(service *services.ReportService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{
		service:        service,
		csv:            exporter.NewCSVWriter(logger),
		excel:          exporter.NewExcelWriter(logger),
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes with proper Chi patterns
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	// Use render for consistent JSON responses
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/", h.Upload)
	r.Post("/validate", h.ValidateReport)
	r.Get("/", h.ListReports)

	// Sub-resource routes
	r.Route("/{reportID}", func(r chi.Router) {
		r.Use(h.ReportCtx) // Load stored report into context
		r.Get("/", h.GetReport)
		r.Get("/summary", h.GetSummary)
		r.Get("/stats", h.GetStats)
		r.Delete("/", h.DeleteReport)
		r.Get("/export/csv", h.ExportCSV)
		r.Get("/export/xlsx", h.ExportExcel)
	})

	return r
}

// ReportCtx middleware resolves the reportID parameter
func (h *ReportHandler) ReportCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reportID := chi.URLParam(r, "reportID")
		if reportID == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("reportID", "Report ID is required"))
			return
		}

		stored, err := h.service.Get(r.Context(), reportID)
		if err != nil {
			if errors.Is(err, services.ErrReportNotFound) {
				h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
				return
			}
			h.errorHandler.HandleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), reportCtxKey, stored)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// storedReport pulls the report loaded by ReportCtx out of the context
func storedReport(ctx context.Context) *services.StoredReport {
	stored, _ := ctx.Value(reportCtxKey).(*services.StoredReport)
	return stored
}

// Upload handles POST /api/reports
func (h *ReportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	content, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	filename := r.URL.Query().Get("filename")
	if filename == "" {
		filename = "report.txt"
	}

	stored, err := h.service.Create(ctx, filename, content)
	if err != nil {
		var invalid *services.InvalidReportError
		switch {
		case errors.Is(err, services.ErrEmptyUpload):
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Uploaded report is empty"))
		case errors.As(err, &invalid):
			h.errorHandler.HandleError(w, r, apierrors.InvalidReportError(invalid.Result.Errors))
		default:
			h.logger.ErrorContext(ctx, "upload failed",
				slog.String("filename", filename),
				slog.String("error", err.Error()))
			h.errorHandler.HandleError(w, r, err)
		}
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, stored)
}

// ValidateReport handles POST /api/reports/validate.
// It runs the structural checks without storing anything.
func (h *ReportHandler) ValidateReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	content, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	render.JSON(w, r, h.service.Validate(r.Context(), content))
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"reports": h.service.List(r.Context()),
	})
}

// GetReport handles GET /api/reports/{reportID}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, storedReport(r.Context()))
}

// GetSummary handles GET /api/reports/{reportID}/summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stored := storedReport(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"metadata": stored.Report.Metadata,
		"summary":  stored.Report.Summary,
	})
}

// GetStats handles GET /api/reports/{reportID}/stats
func (h *ReportHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stored := storedReport(r.Context())
	render.JSON(w, r, stored.Stats)
}

// DeleteReport handles DELETE /api/reports/{reportID}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	stored := storedReport(r.Context())
	if err := h.service.Delete(r.Context(), stored.ID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.ErrReportNotFound)
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.Status(r, http.StatusNoContent)
	render.NoContent(w, r)
}

// ExportCSV handles GET /api/reports/{reportID}/export/csv.
// The view query parameter selects which table to export; it defaults to
// the transaction list.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	stored := storedReport(r.Context())

	query := exportQuery{View: r.URL.Query().Get("view")}
	if err := h.validate.Struct(query); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("view",
			fmt.Sprintf("Invalid view %q: must be one of transactions, countries, products, currencies", query.View)))
		return
	}
	view := query.View
	if view == "" {
		view = viewTransactions
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s-%s.csv"`, stored.ID, view))

	options := exporter.WriteOptions{BOMPrefix: true}
	var err error
	switch view {
	case viewCountries:
		err = h.csv.WriteCountryBreakdown(w, stored.Report, options)
	case viewProducts:
		err = h.csv.WriteProductBreakdown(w, stored.Report, options)
	case viewCurrencies:
		err = h.csv.WriteCurrencySummary(w, stored.Report, options)
	default:
		err = h.csv.WriteTransactions(w, stored.Report, options)
	}
	if err != nil {
		// Headers are already written; the best we can do is log.
		h.logger.ErrorContext(r.Context(), "csv export failed",
			slog.String("report_id", stored.ID),
			slog.String("view", view),
			slog.String("error", err.Error()))
	}
}

// ExportExcel handles GET /api/reports/{reportID}/export/xlsx
func (h *ReportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	stored := storedReport(r.Context())

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s.xlsx"`, stored.ID))

	if err := h.excel.Write(w, stored.Report); err != nil {
		h.logger.ErrorContext(r.Context(), "excel export failed",
			slog.String("report_id", stored.ID),
			slog.String("error", err.Error()))
	}
}
