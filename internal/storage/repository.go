package storage

import (
	"context"
	"time"

	"github.com/outpost-tools/rostering-service/internal/models"
)

// OperatorRepository provides access to the operator catalog.
type OperatorRepository interface {
	// ListOperators returns the full catalog in stable (name) order.
	ListOperators(ctx context.Context) ([]models.Operator, error)

	// GetOperatorByName returns one catalog entry, or nil if unknown.
	GetOperatorByName(ctx context.Context, name string) (*models.Operator, error)

	// InvalidateCatalogCache drops the cached catalog snapshot.
	InvalidateCatalogCache(ctx context.Context) error
}

// Repository bundles all repositories.
type Repository struct {
	Operator OperatorRepository
}

// RepositoryDependencies carries the shared backends repositories build on.
type RepositoryDependencies struct {
	DB               DatabaseInterface
	Cache            CacheInterface
	MetricsCollector MetricsInterface
}

// NewRepository creates the repository bundle.
func NewRepository(deps *RepositoryDependencies) *Repository {
	return &Repository{
		Operator: NewOperatorRepository(deps),
	}
}

// DatabaseInterface is the query surface repositories use, satisfied by the
// pgx adapter.
type DatabaseInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) Row
	Query(ctx context.Context, query string, args ...interface{}) (Rows, error)
	Exec(ctx context.Context, query string, args ...interface{}) error
	Health(ctx context.Context) error
}

// CacheInterface is the cache surface, satisfied by the redis adapter.
type CacheInterface interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	Health(ctx context.Context) error
}

// MetricsInterface collects storage-level metrics.
type MetricsInterface interface {
	IncDBQuery(operation string)
	IncCacheHit(cacheType string)
	IncCacheMiss(cacheType string)
	ObserveDBQueryDuration(operation string, duration time.Duration)
}

// Row is a single-row query result.
type Row interface {
	Scan(dest ...interface{}) error
}

// Rows is a multi-row query result.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
	Close()
}
