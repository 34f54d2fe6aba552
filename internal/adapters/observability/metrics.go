package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	StageRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "germanmarket", Name: "stage_requests_total", Help: "Analysis stage executions."},
		[]string{"stage", "status"}, // status: ok|error
	)
	StageLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "germanmarket", Name: "stage_duration_seconds",
			Help:    "Analysis stage duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "germanmarket", Name: "external_requests_total", Help: "Outbound capability requests."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "germanmarket", Name: "external_request_duration_seconds",
			Help:    "Outbound capability request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "germanmarket", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	BatchItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "germanmarket", Name: "batch_items_total", Help: "Per-item batch outcomes."},
		[]string{"outcome"}, // outcome: finalized|partial|failed
	)
)

// Serve starts the metrics side server when METRICS_ADDR is set.
func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(StageRequests, StageLatency, ExternalRequests, ExternalLatency, CacheEvents, BatchItems)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Handler is the exposition endpoint Serve mounts: a fresh registry holding
// every vec of this package, so /metrics always carries the pipeline series.
func Handler() http.Handler {
	return MetricsHandler(InitRegistry())
}

func ObserveStage(stage string, err error, dur time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StageRequests.WithLabelValues(stage, status).Inc()
	StageLatency.WithLabelValues(stage).Observe(dur.Seconds())
}

func ObserveExternal(service, endpoint string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

func ObserveBatchItem(outcome string) {
	BatchItems.WithLabelValues(outcome).Inc()
}
