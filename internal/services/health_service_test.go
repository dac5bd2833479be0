package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthServiceCheck(t *testing.T) {
	reports := NewReportService(nil)
	health := NewHealthService("1.0.0", reports, nil)

	status := health.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.0.0", status.Version)
	assert.Zero(t, status.ReportsLoaded)

	_, err := reports.Create(context.Background(), "january.txt", []byte(sampleUpload))
	require.NoError(t, err)

	status = health.Check(context.Background())
	assert.Equal(t, 1, status.ReportsLoaded)
	assert.GreaterOrEqual(t, status.UptimeSeconds, int64(0))
}
