package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/outpost-tools/rostering-service/internal/models"
)

const (
	catalogCacheKey = "rostering:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// operatorRepository implements OperatorRepository over postgres with a
// redis-cached catalog snapshot. Plan generation reads the whole catalog at
// once, so the snapshot is cached as one JSON document.
type operatorRepository struct {
	db      DatabaseInterface
	cache   CacheInterface
	metrics MetricsInterface
}

// NewOperatorRepository creates the operator catalog repository.
func NewOperatorRepository(deps *RepositoryDependencies) OperatorRepository {
	return &operatorRepository{
		db:      deps.DB,
		cache:   deps.Cache,
		metrics: deps.MetricsCollector,
	}
}

// ListOperators returns the full catalog, preferring the cached snapshot.
func (r *operatorRepository) ListOperators(ctx context.Context) ([]models.Operator, error) {
	if cached, err := r.cache.Get(ctx, catalogCacheKey); err == nil && cached != "" {
		var operators []models.Operator
		if err := json.Unmarshal([]byte(cached), &operators); err == nil {
			r.metrics.IncCacheHit("catalog")
			return operators, nil
		}
	}
	r.metrics.IncCacheMiss("catalog")

	operators, err := r.queryOperators(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(operators); err == nil {
		// Cache write failures are not fatal; the next call re-queries.
		_ = r.cache.Set(ctx, catalogCacheKey, string(encoded), catalogCacheTTL)
	}

	return operators, nil
}

func (r *operatorRepository) queryOperators(ctx context.Context) ([]models.Operator, error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveDBQueryDuration("list_operators", time.Since(start))
	}()
	r.metrics.IncDBQuery("list_operators")

	query := `
		SELECT id, code, name, tier, level, owned, trait, rarity
		FROM roster.operators
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query operators: %w", err)
	}
	defer rows.Close()

	var operators []models.Operator
	for rows.Next() {
		var op models.Operator
		err := rows.Scan(
			&op.ID,
			&op.Code,
			&op.Name,
			&op.Tier,
			&op.Level,
			&op.Owned,
			&op.Trait,
			&op.Rarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operator: %w", err)
		}
		operators = append(operators, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return operators, nil
}

// GetOperatorByName returns one operator, or nil when the name is unknown.
func (r *operatorRepository) GetOperatorByName(ctx context.Context, name string) (*models.Operator, error) {
	start := time.Now()
	defer func() {
		r.metrics.ObserveDBQueryDuration("get_operator_by_name", time.Since(start))
	}()
	r.metrics.IncDBQuery("get_operator_by_name")

	query := `
		SELECT id, code, name, tier, level, owned, trait, rarity
		FROM roster.operators
		WHERE name = $1
	`

	var op models.Operator
	row := r.db.QueryRow(ctx, query, name)
	err := row.Scan(
		&op.ID,
		&op.Code,
		&op.Name,
		&op.Tier,
		&op.Level,
		&op.Owned,
		&op.Trait,
		&op.Rarity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operator %q: %w", name, err)
	}

	return &op, nil
}

// InvalidateCatalogCache drops the catalog snapshot after catalog updates.
func (r *operatorRepository) InvalidateCatalogCache(ctx context.Context) error {
	if err := r.cache.Del(ctx, catalogCacheKey); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}
