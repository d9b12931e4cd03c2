package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/internal/rules"
	"github.com/outpost-tools/rostering-service/internal/storage"
	"github.com/outpost-tools/rostering-service/pkg/metrics"
	"go.uber.org/zap"
)

// PlanService exposes plan generation over the stored catalog. Generated
// plans are cached by an input digest: the engine is deterministic, so
// identical catalog and request always reproduce the same plan.
type PlanService struct {
	operatorRepo storage.OperatorRepository
	cache        storage.CacheInterface
	ruleset      *rules.RuleSet
	logger       *zap.Logger
	planCacheTTL time.Duration
}

// NewPlanService creates the plan service around one compiled ruleset.
func NewPlanService(operatorRepo storage.OperatorRepository, cache storage.CacheInterface, ruleset *rules.RuleSet, planCacheTTL time.Duration, logger *zap.Logger) *PlanService {
	return &PlanService{
		operatorRepo: operatorRepo,
		cache:        cache,
		ruleset:      ruleset,
		logger:       logger,
		planCacheTTL: planCacheTTL,
	}
}

// GeneratePlan computes the cycle plan for one request.
func (s *PlanService) GeneratePlan(ctx context.Context, req models.GeneratePlanRequest) (*models.Plan, error) {
	start := time.Now()

	operators, err := s.operatorRepo.ListOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load operator catalog: %w", err)
	}
	catalog := models.NewCatalog(operators)

	cacheKey, err := s.planCacheKey(operators, req)
	if err == nil && s.cache != nil {
		if cached, cacheErr := s.cache.Get(ctx, cacheKey); cacheErr == nil && cached != "" {
			var plan models.Plan
			if json.Unmarshal([]byte(cached), &plan) == nil {
				metrics.RecordPlanCache("hit")
				return &plan, nil
			}
		}
		metrics.RecordPlanCache("miss")
	}

	scheduler := NewCycleScheduler(s.ruleset, catalog, s.logger)
	plan := scheduler.BuildPlan(RunConfig{
		TradingStations:       req.TradingStations,
		ManufacturingStations: req.ManufacturingStations,
		TradingProducts:       req.Products.Trading,
		ManufacturingProducts: req.Products.Manufacturing,
		BoostEnabled:          req.Boost.Enabled,
		BoostPreference:       s.ruleset.BoostPreference(),
	})

	elapsed := time.Since(start)
	metrics.RecordPlanGenerated(elapsed.Seconds())
	s.logger.Info("Generated shift plan",
		zap.Int("trading_stations", req.TradingStations),
		zap.Int("manufacturing_stations", req.ManufacturingStations),
		zap.Bool("boost", req.Boost.Enabled),
		zap.Duration("duration", elapsed),
	)

	if s.cache != nil && cacheKey != "" {
		if encoded, marshalErr := json.Marshal(plan); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, cacheKey, string(encoded), s.planCacheTTL); cacheErr != nil {
				s.logger.Warn("Failed to cache generated plan", zap.Error(cacheErr))
			}
		}
	}

	return plan, nil
}

// ListOperators returns the catalog for the listing endpoint.
func (s *PlanService) ListOperators(ctx context.Context, ownedOnly bool) ([]models.Operator, error) {
	operators, err := s.operatorRepo.ListOperators(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load operator catalog: %w", err)
	}
	if !ownedOnly {
		return operators, nil
	}
	return models.NewCatalog(operators).OwnedOperators(), nil
}

// ListRules returns the compiled rule table summary.
func (s *PlanService) ListRules() []models.RuleSummary {
	return s.ruleset.Summaries()
}

// planCacheKey digests the catalog and request into a stable cache key.
func (s *PlanService) planCacheKey(operators []models.Operator, req models.GeneratePlanRequest) (string, error) {
	payload := struct {
		Operators []models.Operator          `json:"operators"`
		Request   models.GeneratePlanRequest `json:"request"`
	}{operators, req}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to build plan cache key: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return "rostering:plan:" + hex.EncodeToString(sum[:]), nil
}
