package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/polyview/moderation-api/api"
	"github.com/polyview/moderation-api/config"
)

// MetricsHandler exposes in-process request metrics for operators
type MetricsHandler struct{}

// GetMetricsSummary returns the aggregate request counters
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(api.GetMetrics().GetSummary())
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// GetRouteMetrics returns per-route timing aggregates, busiest routes first
func (m MetricsHandler) GetRouteMetrics(w http.ResponseWriter, r *http.Request) {
	routes := api.GetMetrics().GetRouteMetrics()

	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > len(routes) {
		limit = len(routes)
	}

	result := make([]map[string]interface{}, limit)
	for i, route := range routes[:limit] {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}

	b, err := json.Marshal(map[string]interface{}{"routes": result})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
