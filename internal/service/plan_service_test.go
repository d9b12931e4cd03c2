package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOperatorRepo struct {
	operators []models.Operator
	calls     int
}

func (f *fakeOperatorRepo) ListOperators(ctx context.Context) ([]models.Operator, error) {
	f.calls++
	return f.operators, nil
}

func (f *fakeOperatorRepo) GetOperatorByName(ctx context.Context, name string) (*models.Operator, error) {
	for i := range f.operators {
		if f.operators[i].Name == name {
			return &f.operators[i], nil
		}
	}
	return nil, nil
}

func (f *fakeOperatorRepo) InvalidateCatalogCache(ctx context.Context) error {
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	sets    int
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val := f.entries[key]
	if val != "" {
		f.hits++
	}
	return val, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Health(ctx context.Context) error {
	return nil
}

func planServiceFixture(t *testing.T, cache *fakeCache) (*PlanService, *fakeOperatorRepo) {
	t.Helper()
	repo := &fakeOperatorRepo{operators: []models.Operator{
		owned("Texas", 2), owned("Lappland", 2), owned("Jaye", 2),
	}}

	rs := testRuleSet([]models.CombinationRule{
		{
			System: "standard", Category: models.CategoryTrading,
			Operators: []string{"Texas", "Lappland"}, Synergy: 50,
			Description: "standard - Texas, Lappland",
		},
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	var cacheIface = newFakeCache()
	if cache != nil {
		cacheIface = cache
	}
	return NewPlanService(repo, cacheIface, rs, time.Minute, zap.NewNop()), repo
}

func TestPlanService_GeneratePlan(t *testing.T) {
	svc, _ := planServiceFixture(t, nil)

	plan, err := svc.GeneratePlan(context.Background(), models.GeneratePlanRequest{
		TradingStations: 1,
	})
	require.NoError(t, err)
	require.Len(t, plan.Shifts, 3)
	assert.Equal(t, []string{"Texas", "Lappland", "Jaye"}, plan.Shifts[0].Rooms.Trading[0].Operators)
}

func TestPlanService_CachesGeneratedPlans(t *testing.T) {
	cache := newFakeCache()
	svc, repo := planServiceFixture(t, cache)

	req := models.GeneratePlanRequest{TradingStations: 1}

	first, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits, "second identical request is served from cache")
	assert.Equal(t, first.Shifts, second.Shifts)
	assert.Equal(t, 2, repo.calls, "the catalog is part of the cache key, so it is always loaded")
}

func TestPlanService_DifferentRequestsGetDifferentKeys(t *testing.T) {
	cache := newFakeCache()
	svc, _ := planServiceFixture(t, cache)

	_, err := svc.GeneratePlan(context.Background(), models.GeneratePlanRequest{TradingStations: 1})
	require.NoError(t, err)
	_, err = svc.GeneratePlan(context.Background(), models.GeneratePlanRequest{TradingStations: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, cache.sets)
	assert.Equal(t, 0, cache.hits)
}

func TestPlanService_ListOperators(t *testing.T) {
	svc, repo := planServiceFixture(t, nil)
	repo.operators = append(repo.operators, models.Operator{Name: "Unowned", Tier: 2, Owned: false})

	all, err := svc.ListOperators(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	ownedOnly, err := svc.ListOperators(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, ownedOnly, 3)
}

func TestPlanService_ListRules(t *testing.T) {
	svc, _ := planServiceFixture(t, nil)

	rules := svc.ListRules()
	require.Len(t, rules, 2)
	assert.Equal(t, "standard - Texas, Lappland", rules[0].Description)
}
