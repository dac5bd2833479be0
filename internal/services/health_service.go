package services

import (
	"context"
	"log/slog"
	"time"
)

// HealthStatus is the response model of the health endpoints
type HealthStatus struct {
	Status        string    `json:"status"`
	Version       string    `json:"version"`
	StartedAt     time.Time `json:"started_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	ReportsLoaded int       `json:"reports_loaded"`
}

// HealthService reports process liveness and basic registry statistics
type HealthService struct {
	version   string
	startedAt time.Time
	reports   *ReportService
	logger    *slog.Logger
}

// NewHealthService creates a new health service
func NewHealthService(version string, reports *ReportService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		startedAt: time.Now().UTC(),
		reports:   reports,
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// Check returns the current health status
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	now := time.Now().UTC()
	return HealthStatus{
		Status:        "healthy",
		Version:       s.version,
		StartedAt:     s.startedAt,
		UptimeSeconds: int64(now.Sub(s.startedAt).Seconds()),
		ReportsLoaded: s.reports.Count(),
	}
}
