package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostering_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rostering_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostering_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rostering_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type", "table"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostering_cache_requests_total",
			Help: "Total number of cache lookups by outcome",
		},
		[]string{"cache", "outcome"},
	)

	PlansGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rostering_plans_generated_total",
			Help: "Total number of shift plans generated",
		},
	)

	PlanGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rostering_plan_generation_duration_seconds",
			Help:    "Shift plan generation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	PlanSynergyPercent = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rostering_plan_synergy_percent",
			Help:    "Synergy bonus per filled workplace in efficiency percent",
			Buckets: []float64{0, 10, 25, 50, 75, 100, 150, 200},
		},
		[]string{"category"},
	)

	PlanCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rostering_plan_cache_total",
			Help: "Plan cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	RulesCompiled = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rostering_rules_compiled",
			Help: "Number of combination rules in the compiled table",
		},
	)

	ServiceUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rostering_service_uptime_seconds",
			Help: "Time since the service started in seconds",
		},
	)

	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rostering_service_info",
			Help: "Rostering Service information",
		},
		[]string{"version", "build_time"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordPlanGenerated(duration float64) {
	PlansGeneratedTotal.Inc()
	PlanGenerationDuration.Observe(duration)
}

func RecordPlanCache(outcome string) {
	PlanCacheTotal.WithLabelValues(outcome).Inc()
}

func RecordWorkplaceSynergy(category string, synergy float64) {
	PlanSynergyPercent.WithLabelValues(category).Observe(synergy)
}
