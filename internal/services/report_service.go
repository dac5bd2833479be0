package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"appsalescli/internal/salesreport"
	"appsalescli/internal/validation"
	"appsalescli/pkg/contracts/domain"
)

// StoredReport is one uploaded and parsed report held in the registry.
// The embedded ParsedReport is immutable; consumers only read it.
type StoredReport struct {
	ID         string                  `json:"id"`
	Filename   string                  `json:"filename"`
	UploadedAt time.Time               `json:"uploaded_at"`
	Delimiter  string                  `json:"delimiter"`
	Report     *domain.ParsedReport    `json:"report"`
	Stats      *salesreport.ParseStats `json:"stats"`
	Validation validation.Result       `json:"validation"`
}

// ReportInfo is the listing view of a stored report
type ReportInfo struct {
	ID                string    `json:"id"`
	Filename          string    `json:"filename"`
	VendorName        string    `json:"vendor_name"`
	StartDate         string    `json:"start_date"`
	EndDate           string    `json:"end_date"`
	TotalTransactions int       `json:"total_transactions"`
	UploadedAt        time.Time `json:"uploaded_at"`
}

// ReportService validates, parses, and holds uploaded sales reports in an
// in-memory registry keyed by generated ID. Nothing is persisted: a report
// lives until it is deleted or the process exits.
type ReportService struct {
	mu      sync.RWMutex
	reports map[string]*StoredReport
	order   []string

	parser    *salesreport.Parser
	validator *validation.ReportValidator
	logger    *slog.Logger
}

// NewReportService creates a new report service with the given logger
func NewReportService(logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		reports:   make(map[string]*StoredReport),
		parser:    salesreport.NewParser(logger),
		validator: validation.NewReportValidator(logger),
		logger:    logger.With(slog.String("component", "report_service")),
	}
}

// Validate runs the structural checks on raw report text without storing
// anything.
func (s *ReportService) Validate(ctx context.Context, content []byte) validation.Result {
	text := string(content)
	return s.validator.Validate(text, salesreport.DetectDelimiter(text))
}

// Create validates and parses one uploaded report and stores the result.
// Validation errors reject the upload with an InvalidReportError; parse
// errors propagate as-is.
func (s *ReportService) Create(ctx context.Context, filename string, content []byte) (*StoredReport, error) {
	if len(content) == 0 {
		return nil, ErrEmptyUpload
	}

	text := string(content)
	delimiter := salesreport.DetectDelimiter(text)

	result := s.validator.Validate(text, delimiter)
	if !result.Valid {
		s.logger.WarnContext(ctx, "upload rejected by validation",
			slog.String("filename", filename),
			slog.Any("errors", result.Errors))
		return nil, &InvalidReportError{Result: result}
	}

	report, stats, err := s.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}

	stored := &StoredReport{
		ID:         uuid.New().String(),
		Filename:   filename,
		UploadedAt: time.Now().UTC(),
		Delimiter:  delimiter,
		Report:     report,
		Stats:      stats,
		Validation: result,
	}

	s.mu.Lock()
	s.reports[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "report stored",
		slog.String("report_id", stored.ID),
		slog.String("filename", filename),
		slog.Int("transactions", report.Summary.TotalTransactions))

	return stored, nil
}

// Get returns one stored report by ID
func (s *ReportService) Get(ctx context.Context, id string) (*StoredReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return stored, nil
}

// List returns the stored reports in upload order
func (s *ReportService) List(ctx context.Context) []ReportInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]ReportInfo, 0, len(s.order))
	for _, id := range s.order {
		stored := s.reports[id]
		infos = append(infos, ReportInfo{
			ID:                stored.ID,
			Filename:          stored.Filename,
			VendorName:        stored.Report.Metadata.VendorName,
			StartDate:         stored.Report.Metadata.StartDate,
			EndDate:           stored.Report.Metadata.EndDate,
			TotalTransactions: stored.Report.Summary.TotalTransactions,
			UploadedAt:        stored.UploadedAt,
		})
	}
	return infos
}

// Delete removes one stored report by ID
func (s *ReportService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[id]; !ok {
		return ErrReportNotFound
	}
	delete(s.reports, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	s.logger.InfoContext(ctx, "report deleted", slog.String("report_id", id))
	return nil
}

// Count returns the number of stored reports
func (s *ReportService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
