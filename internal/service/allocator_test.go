package service

import (
	"testing"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func owned(name string, tier int) models.Operator {
	return models.Operator{Name: name, Tier: tier, Owned: true}
}

func tradingStation(slots int) *models.Workplace {
	return &models.Workplace{
		ID:             "trading_1",
		Name:           "Trading Station 1",
		Category:       models.CategoryTrading,
		MaxOperators:   slots,
		BaseEfficiency: 100,
	}
}

func TestFillWorkplace_ComboBeatsWeakerApplyEach(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Lappland", 2), owned("Exusiai", 2))
	rules := []models.CombinationRule{
		{
			System: "standard", Category: models.CategoryTrading,
			Operators: []string{"Texas", "Lappland"}, Synergy: 50,
			Description: "standard - Texas, Lappland",
		},
		{
			System: "standard", Category: models.CategoryTrading,
			Operators: []string{"Exusiai"}, Synergy: 10,
			ApplyEach: true, Generic: true,
			Description: "standard",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	state := NewScheduleState()
	result := allocator.FillWorkplace(tradingStation(3), state)

	// The combo scores 25 per slot and wins the first round; the remaining
	// slot falls through to the generic pass.
	assert.Equal(t, []string{"Texas", "Lappland", "Exusiai"}, result.OperatorNames())
	assert.Equal(t, 60.0, result.Synergy)
	assert.Equal(t, 160.0, result.TotalEff)
	assert.Equal(t, []string{"standard - Texas, Lappland", "standard(Exusiai)"}, result.AppliedRules)
}

func TestFillWorkplace_NamedPassBeforeGeneric(t *testing.T) {
	catalog := testCatalog(owned("Jaye", 2), owned("Midnight", 2))
	rules := []models.CombinationRule{
		{
			System: "clerks", Category: models.CategoryTrading,
			Operators: []string{"Midnight"}, Synergy: 5,
			Description: "clerks - Midnight",
		},
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 40,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(1), NewScheduleState())

	// A named rule always wins over generic ones, whatever the scores.
	assert.Equal(t, []string{"Midnight"}, result.OperatorNames())
}

func TestFillWorkplace_MissingGroupMemberRejectsRule(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Jaye", 2))
	rules := []models.CombinationRule{
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
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(2), NewScheduleState())

	assert.Equal(t, []string{"Jaye"}, result.OperatorNames(), "unowned Lappland rejects the combo entirely")
}

func TestFillWorkplace_UnsatisfiedSupportFallsThrough(t *testing.T) {
	catalog := testCatalog(owned("Proviso", 2), owned("Jaye", 2))
	rules := []models.CombinationRule{
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 60,
			Support: []models.RequirementRef{
				{Kind: models.RequirementControlCenter, Operator: "Whislash", MinTier: 2},
			},
			Description: "linked - Proviso",
		},
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(1), NewScheduleState())

	assert.Equal(t, []string{"Jaye"}, result.OperatorNames(), "missing support operator skips the named rule")
}

func TestFillWorkplace_GroupLargerThanRemainingSkipped(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Lappland", 2), owned("Exusiai", 2))
	rules := []models.CombinationRule{
		{
			System: "trio", Category: models.CategoryTrading,
			Operators: []string{"Texas", "Lappland", "Exusiai"}, Synergy: 90,
			Description: "trio - Texas, Lappland, Exusiai",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(2), NewScheduleState())

	assert.Empty(t, result.OperatorNames())
	assert.Equal(t, 100.0, result.TotalEff, "base efficiency only")
}

func TestFillWorkplace_TieKeepsEarliestRule(t *testing.T) {
	catalog := testCatalog(owned("A", 2), owned("B", 2))
	rules := []models.CombinationRule{
		{
			System: "s", Category: models.CategoryTrading,
			Operators: []string{"A"}, Synergy: 20, Description: "s - A",
		},
		{
			System: "s", Category: models.CategoryTrading,
			Operators: []string{"B"}, Synergy: 20, Description: "s - B",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(1), NewScheduleState())

	assert.Equal(t, []string{"A"}, result.OperatorNames(), "equal scores keep table order")
}

func TestFillWorkplace_ZeroSynergyNeverApplies(t *testing.T) {
	catalog := testCatalog(owned("A", 2))
	rules := []models.CombinationRule{
		{
			System: "s", Category: models.CategoryTrading,
			Operators: []string{"A"}, Synergy: 0, Description: "s - A",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(3), NewScheduleState())

	assert.Empty(t, result.OperatorNames())
}

func TestFillWorkplace_ProductFilter(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Jaye", 2))
	rules := []models.CombinationRule{
		{
			System: "gold", Category: models.CategoryTrading,
			Operators: []string{"Texas"}, Synergy: 50,
			Products:    []string{"gold"},
			Description: "gold - Texas",
		},
		{
			System: "any", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 10,
			Description: "any - Jaye",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())

	wp := tradingStation(1)
	wp.CurrentProduct = "shards"
	result := allocator.FillWorkplace(wp, NewScheduleState())
	assert.Equal(t, []string{"Jaye"}, result.OperatorNames(), "product-restricted rule filtered out")

	wp2 := tradingStation(1)
	wp2.CurrentProduct = "gold"
	result = allocator.FillWorkplace(wp2, NewScheduleState())
	assert.Equal(t, []string{"Texas"}, result.OperatorNames())
}

func TestFillWorkplace_ApplyEachOnePerOperator(t *testing.T) {
	catalog := testCatalog(owned("A", 2), owned("B", 2), owned("C", 2))
	rules := []models.CombinationRule{
		{
			System: "each", Category: models.CategoryManufacturing,
			Operators: []string{"A", "B", "C"}, Synergy: 10,
			ApplyEach: true, Generic: true,
			Description: "each",
		},
	}

	wp := &models.Workplace{
		ID: "manufacturing_1", Category: models.CategoryManufacturing,
		MaxOperators: 2, BaseEfficiency: 100,
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(wp, NewScheduleState())

	// Each application costs one slot and carries the full value.
	require.Equal(t, []string{"A", "B"}, result.OperatorNames())
	assert.Equal(t, 20.0, result.Synergy)
}

func TestFillWorkplace_CarriesSupportRefs(t *testing.T) {
	catalog := testCatalog(owned("Proviso", 2), owned("Whislash", 2))
	rules := []models.CombinationRule{
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 40,
			Support: []models.RequirementRef{
				{Kind: models.RequirementControlCenter, Operator: "Whislash", MinTier: 2},
			},
			Description: "linked - Proviso",
		},
	}

	allocator := NewAllocator(rules, catalog, zap.NewNop())
	result := allocator.FillWorkplace(tradingStation(1), NewScheduleState())

	require.Len(t, result.Support, 1)
	assert.Equal(t, "Whislash", result.Support[0].Operator)
}
