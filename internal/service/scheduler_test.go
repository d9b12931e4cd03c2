package service

import (
	"encoding/json"
	"testing"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRuleSet(table []models.CombinationRule) *rules.RuleSet {
	return &rules.RuleSet{
		Rules:                 table,
		TradingDefaults:       models.WorkplaceDefaults{MaxOperators: 3, BaseEfficiency: 100},
		ManufacturingDefaults: models.WorkplaceDefaults{MaxOperators: 3, BaseEfficiency: 100},
		Meeting: models.Workplace{
			ID: "meeting_1", Name: "Meeting Room",
			Category: models.CategoryMeeting, MaxOperators: 2, BaseEfficiency: 100,
		},
		PowerStations: []models.Workplace{
			{ID: "power_1", Name: "Power Station 1", Category: models.CategoryPower, MaxOperators: 1, BaseEfficiency: 100},
		},
	}
}

func TestBuildPlan_Structure(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Lappland", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "standard", Category: models.CategoryTrading,
			Operators: []string{"Texas", "Lappland"}, Synergy: 50,
			Description: "standard - Texas, Lappland",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 2, ManufacturingStations: 1})

	require.Len(t, plan.Shifts, 3)
	for _, shift := range plan.Shifts {
		assert.Len(t, shift.Rooms.Trading, 2)
		assert.Len(t, shift.Rooms.Manufacture, 1)
		assert.Len(t, shift.Rooms.Control, 1)
		assert.Len(t, shift.Rooms.Meeting, 1)
		assert.Len(t, shift.Rooms.Power, 1)
		assert.Len(t, shift.Rooms.Dormitory, 4)
		for _, dorm := range shift.Rooms.Dormitory {
			assert.True(t, dorm.Autofill)
		}
	}
}

func TestBuildPlan_ShiftExclusivity(t *testing.T) {
	catalog := testCatalog(owned("Jaye", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 2})

	shift := plan.Shifts[0]
	assert.Equal(t, []string{"Jaye"}, shift.Rooms.Trading[0].Operators)
	assert.Empty(t, shift.Rooms.Trading[1].Operators, "an operator fills at most one room per shift")
	assert.True(t, shift.Rooms.Trading[1].Autofill)
}

func TestBuildPlan_UsageBudgetAcrossShifts(t *testing.T) {
	catalog := testCatalog(owned("Jaye", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 1})

	assert.Equal(t, []string{"Jaye"}, plan.Shifts[0].Rooms.Trading[0].Operators)
	assert.Equal(t, []string{"Jaye"}, plan.Shifts[1].Rooms.Trading[0].Operators)
	assert.Empty(t, plan.Shifts[2].Rooms.Trading[0].Operators, "two-shift budget exhausted")
}

func TestBuildPlan_BoostGrantsThirdTradingShift(t *testing.T) {
	catalog := testCatalog(owned("Exusiai", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Exusiai"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{
		TradingStations: 1,
		BoostEnabled:    true,
		BoostPreference: []string{"Exusiai"},
	})

	for i, shift := range plan.Shifts {
		assert.Equal(t, []string{"Exusiai"}, shift.Rooms.Trading[0].Operators, "shift %d", i+1)
		assert.True(t, shift.Boost.Enabled)
		assert.Equal(t, "Exusiai", shift.Boost.Target)
	}
}

func TestBuildPlan_BoostDisabledWithoutTargets(t *testing.T) {
	catalog := testCatalog(models.Operator{Name: "Low", Tier: 1, Owned: true})
	rs := testRuleSet(nil)

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{
		TradingStations: 1,
		BoostEnabled:    true,
		BoostPreference: []string{"Low"},
	})

	for _, shift := range plan.Shifts {
		assert.False(t, shift.Boost.Enabled, "boost turns off when nobody qualifies")
		assert.Empty(t, shift.Boost.Target)
	}
}

func TestBuildPlan_SupportFoldsIntoControlAndDormitory(t *testing.T) {
	catalog := testCatalog(owned("Proviso", 2), owned("Whislash", 2), owned("Ptilopsis", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 40,
			Support: []models.RequirementRef{
				{Kind: models.RequirementControlCenter, Operator: "Whislash", MinTier: 2},
				{Kind: models.RequirementDormitory, Operator: "Ptilopsis"},
			},
			Description: "linked - Proviso",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 1})

	shift := plan.Shifts[0]
	assert.Equal(t, []string{"Proviso"}, shift.Rooms.Trading[0].Operators)
	assert.Equal(t, []string{"Whislash"}, shift.Rooms.Control[0].Operators)
	assert.Equal(t, []string{"Ptilopsis"}, shift.Rooms.Dormitory[0].Operators)
}

func TestBuildPlan_SupportAdmissionConsumesAvailability(t *testing.T) {
	catalog := testCatalog(owned("Proviso", 2), owned("Jaye", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 40,
			Support: []models.RequirementRef{
				{Kind: models.RequirementDormitory, Operator: "Jaye"},
			},
			Description: "linked - Proviso",
		},
		{
			System: "fillers", Category: models.CategoryManufacturing,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 1, ManufacturingStations: 1})

	shift := plan.Shifts[0]
	assert.Equal(t, []string{"Jaye"}, shift.Rooms.Dormitory[0].Operators)
	assert.Empty(t, shift.Rooms.Manufacture[0].Operators,
		"a folded support operator is placed for the shift and cannot also staff a station")
}

func TestBuildPlan_PowerStationSupportNotFolded(t *testing.T) {
	catalog := testCatalog(owned("Proviso", 2), owned("Greyy", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 40,
			Support: []models.RequirementRef{
				{Kind: models.RequirementPowerStation, Operator: "Greyy"},
			},
			Description: "linked - Proviso",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{TradingStations: 1})

	shift := plan.Shifts[0]
	assert.Empty(t, shift.Rooms.Control[0].Operators)
	assert.Empty(t, shift.Rooms.Dormitory[0].Operators)
}

func TestBuildPlan_ProductAssignment(t *testing.T) {
	catalog := testCatalog(owned("Texas", 2), owned("Jaye", 2))
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "gold", Category: models.CategoryTrading,
			Operators: []string{"Texas"}, Synergy: 50,
			Products:    []string{"gold"},
			Description: "gold - Texas",
		},
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	scheduler := NewCycleScheduler(rs, catalog, zap.NewNop())
	plan := scheduler.BuildPlan(RunConfig{
		TradingStations: 2,
		TradingProducts: []models.ProductQuantity{{Product: "gold", Count: 1}},
	})

	shift := plan.Shifts[0]
	assert.Equal(t, "gold", shift.Rooms.Trading[0].Product)
	assert.Equal(t, []string{"Texas"}, shift.Rooms.Trading[0].Operators)
	assert.Empty(t, shift.Rooms.Trading[1].Product, "stations beyond the sequence get no product")
	assert.Equal(t, []string{"Jaye"}, shift.Rooms.Trading[1].Operators)
}

func TestBuildPlan_Deterministic(t *testing.T) {
	catalog := testCatalog(
		owned("Texas", 2), owned("Lappland", 2), owned("Exusiai", 2),
		owned("Jaye", 2), owned("Proviso", 2), owned("Whislash", 2),
	)
	rs := testRuleSet([]models.CombinationRule{
		{
			System: "standard", Category: models.CategoryTrading,
			Operators: []string{"Texas", "Lappland"}, Synergy: 50,
			Description: "standard - Texas, Lappland",
		},
		{
			System: "linked", Category: models.CategoryTrading,
			Operators: []string{"Proviso"}, Synergy: 40,
			Support: []models.RequirementRef{
				{Kind: models.RequirementControlCenter, Operator: "Whislash", MinTier: 2},
			},
			Description: "linked - Proviso",
		},
		{
			System: "fillers", Category: models.CategoryTrading,
			Operators: []string{"Jaye", "Exusiai"}, Synergy: 15,
			ApplyEach: true, Generic: true,
			Description: "fillers",
		},
	})

	cfg := RunConfig{TradingStations: 2, ManufacturingStations: 2, BoostEnabled: true, BoostPreference: []string{"Texas"}}

	first, err := json.Marshal(NewCycleScheduler(rs, catalog, zap.NewNop()).BuildPlan(cfg))
	require.NoError(t, err)
	second, err := json.Marshal(NewCycleScheduler(rs, catalog, zap.NewNop()).BuildPlan(cfg))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestExpandProducts(t *testing.T) {
	sequence := expandProducts([]models.ProductQuantity{
		{Product: "gold", Count: 2},
		{Product: "shards", Count: 1},
		{Product: "dust", Count: 0},
	})
	assert.Equal(t, []string{"gold", "gold", "shards"}, sequence)
}
