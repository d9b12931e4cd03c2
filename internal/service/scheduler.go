package service

import (
	"fmt"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/internal/rules"
	"go.uber.org/zap"
)

// The cycle is a fixed three-shift rotation; dormitories always emit four
// rooms in the plan document.
const (
	ShiftCount     = 3
	dormitoryRooms = 4
)

// RunConfig is the per-run scheduling input.
type RunConfig struct {
	TradingStations       int
	ManufacturingStations int
	TradingProducts       []models.ProductQuantity
	ManufacturingProducts []models.ProductQuantity
	BoostEnabled          bool
	BoostPreference       []string
}

// CycleScheduler drives the allocator across all workplaces for the full
// shift cycle, maintaining the cross-shift usage budget and folding support
// requirements into the control-center and dormitory assignments.
type CycleScheduler struct {
	ruleset *rules.RuleSet
	catalog *models.Catalog
	logger  *zap.Logger
}

// NewCycleScheduler creates a scheduler over one compiled ruleset and one
// catalog snapshot.
func NewCycleScheduler(ruleset *rules.RuleSet, catalog *models.Catalog, logger *zap.Logger) *CycleScheduler {
	return &CycleScheduler{ruleset: ruleset, catalog: catalog, logger: logger}
}

// BuildPlan computes the full cycle plan. The computation is pure and
// deterministic: identical inputs always yield an identical plan.
func (s *CycleScheduler) BuildPlan(cfg RunConfig) *models.Plan {
	workplaces := s.ruleset.Workplaces(cfg.TradingStations, cfg.ManufacturingStations)
	allocator := NewAllocator(s.ruleset.Rules, s.catalog, s.logger)
	state := NewScheduleState()

	boostEnabled := cfg.BoostEnabled
	var boostTargets []string
	if boostEnabled {
		selector := NewBoostSelector(s.catalog, s.ruleset.Rules, cfg.BoostPreference)
		boostTargets = selector.SelectTargets()
		if len(boostTargets) == 0 {
			boostEnabled = false
		}
		state.SetBoosted(boostTargets)
	}

	assignProducts(workplaces[models.CategoryTrading], expandProducts(cfg.TradingProducts))
	assignProducts(workplaces[models.CategoryManufacturing], expandProducts(cfg.ManufacturingProducts))

	plan := &models.Plan{
		Title:       "Optimized shift rotation",
		Description: "Generated from combination rules and the operator catalog",
	}

	for shift := 0; shift < ShiftCount; shift++ {
		state.BeginShift()

		target := ""
		if len(boostTargets) > 0 {
			target = boostTargets[shift%len(boostTargets)]
		}

		shiftPlan := models.ShiftPlan{
			Name:        fmt.Sprintf("Shift %d", shift+1),
			Description: fmt.Sprintf("Auto-generated shift %d", shift+1),
			Boost:       models.BoostSetting{Enabled: boostEnabled, Target: target, Order: "pre"},
		}

		support := newSupportCollector(state)

		for _, wp := range workplaces[models.CategoryTrading] {
			result := allocator.FillWorkplace(wp, state)
			shiftPlan.Rooms.Trading = append(shiftPlan.Rooms.Trading, models.RoomForResult(&result, true))
			support.fold(result.Support)
		}
		for _, wp := range workplaces[models.CategoryManufacturing] {
			result := allocator.FillWorkplace(wp, state)
			shiftPlan.Rooms.Manufacture = append(shiftPlan.Rooms.Manufacture, models.RoomForResult(&result, true))
			support.fold(result.Support)
		}

		shiftPlan.Rooms.Control = []models.Room{{Operators: support.controlCenter}}

		for _, wp := range workplaces[models.CategoryMeeting] {
			result := allocator.FillWorkplace(wp, state)
			shiftPlan.Rooms.Meeting = append(shiftPlan.Rooms.Meeting, models.RoomForResult(&result, false))
		}
		for _, wp := range workplaces[models.CategoryPower] {
			result := allocator.FillWorkplace(wp, state)
			shiftPlan.Rooms.Power = append(shiftPlan.Rooms.Power, models.RoomForResult(&result, false))
		}

		shiftPlan.Rooms.Dormitory = dormitoryPlan(support.dormitory)
		if shiftPlan.Rooms.Trading == nil {
			shiftPlan.Rooms.Trading = []models.Room{}
		}
		if shiftPlan.Rooms.Manufacture == nil {
			shiftPlan.Rooms.Manufacture = []models.Room{}
		}
		if shiftPlan.Rooms.Power == nil {
			shiftPlan.Rooms.Power = []models.Room{}
		}

		s.logger.Debug("Completed shift",
			zap.Int("shift", shift+1),
			zap.Strings("control_center", support.controlCenter),
			zap.Strings("dormitory", support.dormitory),
			zap.String("boost_target", target),
		)

		plan.Shifts = append(plan.Shifts, shiftPlan)
	}

	return plan
}

// expandProducts flattens an ordered quantity list into the product
// sequence zipped against workplace instances.
func expandProducts(requirements []models.ProductQuantity) []string {
	var sequence []string
	for _, req := range requirements {
		for i := 0; i < req.Count; i++ {
			sequence = append(sequence, req.Product)
		}
	}
	return sequence
}

// assignProducts zips the product sequence against instances in declaration
// order; instances beyond the sequence get no product.
func assignProducts(workplaces []*models.Workplace, sequence []string) {
	for i, wp := range workplaces {
		if i < len(sequence) {
			wp.CurrentProduct = sequence[i]
		} else {
			wp.CurrentProduct = ""
		}
	}
}

// supportCollector folds the support requirements of trading and
// manufacturing results into deduplicated control-center and dormitory
// assignments. Admission consumes budget exactly like a workplace
// assignment, so it happens as results arrive, before later workplaces are
// filled. Insertion order is kept so plans stay deterministic.
type supportCollector struct {
	state         *ScheduleState
	controlCenter []string
	dormitory     []string
	admitted      map[string]struct{}
}

func newSupportCollector(state *ScheduleState) *supportCollector {
	return &supportCollector{
		state:         state,
		controlCenter: []string{},
		dormitory:     []string{},
		admitted:      make(map[string]struct{}),
	}
}

func (c *supportCollector) fold(refs []models.RequirementRef) {
	for _, ref := range refs {
		var room *[]string
		switch ref.Kind {
		case models.RequirementControlCenter:
			room = &c.controlCenter
		case models.RequirementDormitory:
			room = &c.dormitory
		default:
			// Power-station requirements gate eligibility only; they are
			// not folded into a support room.
			continue
		}

		if _, dup := c.admitted[ref.Operator]; dup {
			continue
		}
		if !c.state.Available(ref.Operator, "") {
			continue
		}
		c.state.Commit(ref.Operator)
		c.admitted[ref.Operator] = struct{}{}
		*room = append(*room, ref.Operator)
	}
}

// dormitoryPlan emits the fixed four dormitory rooms; derived operators
// land in room 0, the rest stay autofill-only.
func dormitoryPlan(operators []string) []models.Room {
	dorms := make([]models.Room, dormitoryRooms)
	for i := range dorms {
		dorms[i] = models.Room{Operators: []string{}, Autofill: true}
	}
	dorms[0].Operators = operators
	return dorms
}
