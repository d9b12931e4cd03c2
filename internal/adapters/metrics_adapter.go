package adapters

import (
	"time"

	"github.com/outpost-tools/rostering-service/internal/storage"
	"github.com/outpost-tools/rostering-service/pkg/metrics"
)

// MetricsAdapter adapts pkg/metrics to storage.MetricsInterface.
type MetricsAdapter struct{}

// NewMetricsAdapter creates the metrics adapter.
func NewMetricsAdapter() storage.MetricsInterface {
	return &MetricsAdapter{}
}

// IncDBQuery counts one database query.
func (a *MetricsAdapter) IncDBQuery(operation string) {
	metrics.DBQueriesTotal.WithLabelValues(operation, "operators").Inc()
}

// IncCacheHit counts one cache hit.
func (a *MetricsAdapter) IncCacheHit(cacheType string) {
	metrics.CacheRequestsTotal.WithLabelValues(cacheType, "hit").Inc()
}

// IncCacheMiss counts one cache miss.
func (a *MetricsAdapter) IncCacheMiss(cacheType string) {
	metrics.CacheRequestsTotal.WithLabelValues(cacheType, "miss").Inc()
}

// ObserveDBQueryDuration records the duration of one database query.
func (a *MetricsAdapter) ObserveDBQueryDuration(operation string, duration time.Duration) {
	metrics.DBQueryDuration.WithLabelValues(operation, "operators").Observe(duration.Seconds())
}
