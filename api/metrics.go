package api

import (
	"regexp"
	"sort"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	RequestID     string        `json:"requestId"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	Status        int           `json:"status"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	TotalDuration time.Duration `json:"totalDuration"`
	Error         string        `json:"error,omitempty"`
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	LastRequest time.Time     `json:"lastRequest"`
}

// MetricsCollector collects and aggregates request metrics
type MetricsCollector struct {
	mu           sync.RWMutex
	traces       []RequestTrace
	maxTraces    int
	routeMetrics map[string]*RouteMetrics
	windowStart  time.Time

	totalRequests int64
	totalErrors   int64

	traceChan chan RequestTrace
	stopChan  chan struct{}
}

var globalMetrics *MetricsCollector

// InitMetrics initializes the global metrics collector. Traces are queued on
// a buffered channel and processed in a background goroutine; when the
// channel is full new traces are dropped. Metrics are best-effort and must
// never slow a request down.
func InitMetrics(maxTraces int) {
	globalMetrics = &MetricsCollector{
		traces:       make([]RequestTrace, 0, maxTraces),
		maxTraces:    maxTraces,
		routeMetrics: make(map[string]*RouteMetrics),
		windowStart:  time.Now(),
		traceChan:    make(chan RequestTrace, 1000),
		stopChan:     make(chan struct{}),
	}

	go globalMetrics.processTraces()
}

// GetMetrics returns the global metrics collector
func GetMetrics() *MetricsCollector {
	if globalMetrics == nil {
		InitMetrics(10000)
	}
	return globalMetrics
}

// RecordTrace records a request trace asynchronously. Never blocks; a full
// channel drops the trace.
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	select {
	case mc.traceChan <- trace:
	default:
	}
}

func (mc *MetricsCollector) processTraces() {
	for {
		select {
		case trace := <-mc.traceChan:
			mc.processTrace(trace)
		case <-mc.stopChan:
			return
		}
	}
}

func (mc *MetricsCollector) processTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.traces) >= mc.maxTraces {
		mc.traces = mc.traces[1:]
	}
	mc.traces = append(mc.traces, trace)

	routeKey := trace.Method + " " + normalizeRoutePath(trace.Path)

	metrics, exists := mc.routeMetrics[routeKey]
	if !exists {
		metrics = &RouteMetrics{
			Method:  trace.Method,
			Path:    normalizeRoutePath(trace.Path),
			MinTime: trace.TotalDuration,
		}
		mc.routeMetrics[routeKey] = metrics
	}

	metrics.Count++
	metrics.TotalTime += trace.TotalDuration
	metrics.AvgTime = metrics.TotalTime / time.Duration(metrics.Count)
	metrics.LastRequest = trace.StartTime

	if trace.TotalDuration < metrics.MinTime {
		metrics.MinTime = trace.TotalDuration
	}
	if trace.TotalDuration > metrics.MaxTime {
		metrics.MaxTime = trace.TotalDuration
	}

	if trace.Status >= 400 {
		metrics.ErrorCount++
		mc.totalErrors++
	}

	mc.totalRequests++
}

var (
	objectIDPattern = regexp.MustCompile(`[0-9a-fA-F]{24}`)
	numericPattern  = regexp.MustCompile(`/\d+`)
)

// normalizeRoutePath collapses path parameters so per-report and per-user
// URLs aggregate under one route
func normalizeRoutePath(path string) string {
	path = objectIDPattern.ReplaceAllString(path, "{id}")
	path = numericPattern.ReplaceAllString(path, "/{id}")
	return path
}

// Summary is the rollup returned by the metrics endpoint
type Summary struct {
	TotalRequests int64     `json:"totalRequests"`
	TotalErrors   int64     `json:"totalErrors"`
	WindowStart   time.Time `json:"windowStart"`
	RouteCount    int       `json:"routeCount"`
}

// GetSummary returns the aggregate counters
func (mc *MetricsCollector) GetSummary() Summary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return Summary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		WindowStart:   mc.windowStart,
		RouteCount:    len(mc.routeMetrics),
	}
}

// GetRouteMetrics returns per-route aggregates sorted by request count,
// busiest first
func (mc *MetricsCollector) GetRouteMetrics() []*RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	routes := make([]*RouteMetrics, 0, len(mc.routeMetrics))
	for _, m := range mc.routeMetrics {
		copied := *m
		routes = append(routes, &copied)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Count > routes[j].Count
	})
	return routes
}

// GetRecentTraces returns up to limit of the newest traces
func (mc *MetricsCollector) GetRecentTraces(limit int) []RequestTrace {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if limit <= 0 || limit > len(mc.traces) {
		limit = len(mc.traces)
	}
	out := make([]RequestTrace, limit)
	copy(out, mc.traces[len(mc.traces)-limit:])
	return out
}

// Stop shuts down the background trace processor
func (mc *MetricsCollector) Stop() {
	close(mc.stopChan)
}
