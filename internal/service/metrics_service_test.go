package service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berryseed/327project-group10/internal/dto"
)

func TestMetricsServiceSchedulerCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordValidation(dto.ValidationResult{Conflicts: []dto.ScheduleConflict{{Reason: "a"}, {Reason: "b"}}})
	m.RecordFallback("time_slots")
	m.RecordSlots([]dto.DaySlots{{Slots: []dto.TimeSlot{{Type: dto.SlotStudy}, {Type: dto.SlotBreak}, {Type: dto.SlotStudy}}}})
	m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 2*time.Millisecond)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.ValidationConflicts)
	assert.Equal(t, uint64(1), snap.GenerationFallbacks)
	assert.Equal(t, uint64(1), snap.RequestsTotal)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, name := range []string{"scheduler_validation_conflicts_total", "scheduler_generation_fallbacks_total", "scheduler_slots_generated_total", "http_requests_total"} {
		assert.True(t, names[name], name)
	}
}

func TestMetricsServiceHandlerExposesText(t *testing.T) {
	m := NewMetricsService()
	m.RecordFallback("optimal_schedule")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `scheduler_generation_fallbacks_total{component="optimal_schedule"} 1`))
}

func TestMetricsServiceNilIsSafe(t *testing.T) {
	var m *MetricsService
	m.RecordFallback("time_slots")
	m.RecordValidation(dto.ValidationResult{})
	assert.Equal(t, SystemMetrics{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
