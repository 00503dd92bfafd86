package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsServiceRecordsDomainEvents(t *testing.T) {
	m := NewMetricsService()
	m.RecordLogin("professor")
	m.RecordLogin("invalid")
	m.RecordLogin("invalid")
	m.RecordCheckIn("leave", true)
	m.RecordUploadCleanup("queued")
	m.RecordRateLimited("/api/login")
	m.ObserveHTTPRequest(http.MethodGet, "/api/students", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `auth_logins_total{outcome="invalid"} 2`)
	assert.Contains(t, body, `attendance_checkins_total{leave_document="true",status="leave"} 1`)
	assert.Contains(t, body, `attendance_upload_cleanups_total{result="queued"} 1`)
	assert.Contains(t, body, `http_rate_limited_total{path="/api/login"} 1`)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/students",status="200"} 1`)
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.RecordLogin("student")
		m.RecordCheckIn("present", false)
		m.RecordUploadCleanup("deleted")
		m.RecordRateLimited("/x")
		m.ObserveHTTPRequest(http.MethodGet, "/x", 200, time.Millisecond)
	})
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
