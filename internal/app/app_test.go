package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	t.Setenv("APPSALES_LOGGING_OUTPUT", "console")
	tmp := t.TempDir()
	t.Setenv("APPSALES_PATHS_DATA_DIR", tmp+"/data")
	t.Setenv("APPSALES_PATHS_EXPORTS_DIR", tmp+"/exports")
	t.Setenv("APPSALES_PATHS_LOGS_DIR", tmp+"/logs")

	application, err := NewApplication()
	require.NoError(t, err)
	return application
}

func TestApplicationHealthEndpoint(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestApplicationMetricsEndpoint(t *testing.T) {
	application := newTestApplication(t)

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplicationReportLifecycle(t *testing.T) {
	application := newTestApplication(t)

	upload := `Vendor Name	Acme Inc
Start Date	01/01/2024
End Date	01/31/2024
Transaction Date	SKU	Title	Country of Sale	Sale or Return	Quantity	Extended Partner Share	Partner Share Currency
01/02/2024	APP1	My App	US	S	1	0.70	USD
01/03/2024	APP1	My App	US	S	2	1.40	USD
`

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(upload)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	application.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/reports", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Inc")
}

func TestApplicationCompressesJSONResponses(t *testing.T) {
	application := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gzip", rec.Header().Get("Content-Encoding"))
}

func TestApplicationRequestIDPropagation(t *testing.T) {
	application := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "test-trace")

	rec := httptest.NewRecorder()
	application.Router.ServeHTTP(rec, req)

	assert.Equal(t, "test-trace", rec.Header().Get("X-Request-ID"))
}
