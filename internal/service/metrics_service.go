package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "course_portal"

// MetricsSnapshot is the JSON summary served to administrators.
type MetricsSnapshot struct {
	RequestsTotal            uint64            `json:"requests_total"`
	AverageRequestDurationMs float64           `json:"average_request_duration_ms"`
	CacheHits                uint64            `json:"cache_hits"`
	CacheMisses              uint64            `json:"cache_misses"`
	CacheHitRatio            float64           `json:"cache_hit_ratio"`
	DBQueryCount             uint64            `json:"db_query_count"`
	AverageDBQueryDurationMs float64           `json:"average_db_query_duration_ms"`
	FilterQueries            uint64            `json:"filter_queries"`
	AverageFilterResults     float64           `json:"average_filter_results"`
	JourneyStates            map[string]uint64 `json:"journey_states"`
	Goroutines               int               `json:"goroutines"`
	GeneratedAt              time.Time         `json:"generated_at"`
}

// MetricsService owns the Prometheus registry and keeps running totals for
// MetricsSnapshot. A nil *MetricsService is a valid no-op recorder.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHitRatio   prometheus.Gauge
	dbQueryDuration *prometheus.HistogramVec
	filterResults   prometheus.Histogram
	journeyStates   *prometheus.CounterVec

	requestCount         uint64
	requestDurationTotal uint64
	cacheHitCount        uint64
	cacheMissCount       uint64
	dbQueryCount         uint64
	dbQueryDurationTotal uint64
	filterCount          uint64
	filterResultTotal    uint64

	mu          sync.Mutex
	stateCounts map[string]uint64
}

// NewMetricsService registers the HTTP, cache, database and catalog
// collectors plus the Go runtime and process collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		registry:    prometheus.NewRegistry(),
		stateCounts: make(map[string]uint64),
	}

	m.requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	m.requestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route template.",
	}, []string{"method", "route", "status"})

	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Catalog snapshot lookups by result.",
	}, []string{"result"})
	m.cacheLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "cache",
		Name:      "lookup_seconds",
		Help:      "Catalog snapshot lookup latency.",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheWrite = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "cache",
		Name:      "write_seconds",
		Help:      "Catalog snapshot write latency.",
		Buckets:   prometheus.DefBuckets,
	})
	m.cacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "cache",
		Name:      "hit_ratio",
		Help:      "Hits over total lookups since start.",
	})

	m.dbQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Database query latency by query name.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	m.filterResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "catalog_filter_results",
		Help:      "Courses matched per catalog filter evaluation.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
	m.journeyStates = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "journey_state_total",
		Help:      "Resolved student journey states.",
	}, []string{"state"})

	m.registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLookups, m.cacheLatency, m.cacheWrite, m.cacheHitRatio,
		m.dbQueryDuration, m.filterResults, m.journeyStates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, route, code).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a snapshot lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheLookups.WithLabelValues("miss").Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	m.cacheHitRatio.Set(ratio(atomic.LoadUint64(&m.cacheHitCount), atomic.LoadUint64(&m.cacheMissCount)))
}

// ObserveCacheWrite records a snapshot write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveDBQuery records a named database query.
func (m *MetricsService) ObserveDBQuery(query string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	atomic.AddUint64(&m.dbQueryCount, 1)
	atomic.AddUint64(&m.dbQueryDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveFilterResults records how many courses one filter evaluation matched.
func (m *MetricsService) ObserveFilterResults(count int) {
	if m == nil {
		return
	}
	m.filterResults.Observe(float64(count))
	atomic.AddUint64(&m.filterCount, 1)
	atomic.AddUint64(&m.filterResultTotal, uint64(count))
}

// RecordJourneyState counts a resolved journey state.
func (m *MetricsService) RecordJourneyState(state string) {
	if m == nil {
		return
	}
	m.journeyStates.WithLabelValues(state).Inc()
	m.mu.Lock()
	m.stateCounts[state]++
	m.mu.Unlock()
}

// Snapshot aggregates the running totals.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	dbCount := atomic.LoadUint64(&m.dbQueryCount)
	filters := atomic.LoadUint64(&m.filterCount)

	m.mu.Lock()
	states := make(map[string]uint64, len(m.stateCounts))
	for state, n := range m.stateCounts {
		states[state] = n
	}
	m.mu.Unlock()

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: averageMillis(atomic.LoadUint64(&m.requestDurationTotal), requests),
		CacheHits:                hits,
		CacheMisses:              misses,
		CacheHitRatio:            ratio(hits, misses),
		DBQueryCount:             dbCount,
		AverageDBQueryDurationMs: averageMillis(atomic.LoadUint64(&m.dbQueryDurationTotal), dbCount),
		FilterQueries:            filters,
		AverageFilterResults:     average(atomic.LoadUint64(&m.filterResultTotal), filters),
		JourneyStates:            states,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}

func ratio(hits, misses uint64) float64 {
	return average(hits, hits+misses)
}

func average(total, count uint64) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

func averageMillis(totalNanos, count uint64) float64 {
	return average(totalNanos, count) / float64(time.Millisecond)
}
