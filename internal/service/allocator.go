package service

import (
	"fmt"
	"strings"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/outpost-tools/rostering-service/pkg/metrics"
	"go.uber.org/zap"
)

// Allocator fills one workplace at a time by repeatedly applying the
// highest per-slot-efficiency eligible rule. It owns no state of its own;
// the cycle state is passed in and mutated atomically per applied rule.
type Allocator struct {
	rules   []models.CombinationRule
	catalog *models.Catalog
	checker *EligibilityChecker
	logger  *zap.Logger
}

// NewAllocator creates an allocator over a compiled rule table. The table
// must already be in (priority, synergy) descending order; candidate
// tie-breaks depend on it.
func NewAllocator(rules []models.CombinationRule, catalog *models.Catalog, logger *zap.Logger) *Allocator {
	return &Allocator{
		rules:   rules,
		catalog: catalog,
		checker: NewEligibilityChecker(catalog),
		logger:  logger,
	}
}

// candidate is one applicable (rule, operator group) pair under evaluation.
type candidate struct {
	rule     *models.CombinationRule
	required []string
	slots    int
	each     bool
}

func (c *candidate) perSlot() float64 {
	if c.each {
		// applyEach rules cost one slot and keep the full synergy value.
		return c.rule.Synergy
	}
	return c.rule.Synergy / float64(c.slots)
}

// FillWorkplace returns the assignment for one workplace in the current
// shift. The loop terminates when capacity is exhausted or no remaining
// candidate scores above zero; both are normal outcomes.
func (a *Allocator) FillWorkplace(wp *models.Workplace, state *ScheduleState) models.AssignmentResult {
	result := models.AssignmentResult{Workplace: wp}

	pool := a.rulePool(wp)
	remaining := wp.MaxOperators

	for remaining > 0 {
		best := a.selectCandidate(pool, wp.Category, remaining, state)
		if best == nil {
			break
		}

		for _, name := range best.required {
			state.Commit(name)
			result.Operators = append(result.Operators, *a.catalog.Get(name))
		}
		remaining -= best.slots
		result.Synergy += best.rule.Synergy
		result.Support = append(result.Support, best.rule.Support...)

		if best.each {
			result.AppliedRules = append(result.AppliedRules,
				fmt.Sprintf("%s(%s)", best.rule.Description, strings.Join(best.required, ", ")))
		} else {
			result.AppliedRules = append(result.AppliedRules, best.rule.Description)
		}

		a.logger.Debug("Applied combination rule",
			zap.String("workplace", wp.ID),
			zap.String("rule", best.rule.Description),
			zap.Float64("synergy", best.rule.Synergy),
			zap.Int("remaining_slots", remaining),
		)
	}

	result.TotalEff = wp.BaseEfficiency + result.Synergy
	if len(result.Operators) > 0 {
		metrics.RecordWorkplaceSynergy(string(wp.Category), result.Synergy)
	}
	return result
}

// rulePool filters the table down to rules matching the workplace category
// and its current product.
func (a *Allocator) rulePool(wp *models.Workplace) []*models.CombinationRule {
	var pool []*models.CombinationRule
	for i := range a.rules {
		rule := &a.rules[i]
		if rule.Category != wp.Category {
			continue
		}
		if !rule.MatchesProduct(wp.CurrentProduct) {
			continue
		}
		pool = append(pool, rule)
	}
	return pool
}

// selectCandidate runs the two evaluation passes: named-system rules first,
// generic rules (including applyEach expansions) only when no named rule
// qualifies. Within a pass the single best per-slot score wins; ties keep
// the earliest candidate in the table's stable order.
func (a *Allocator) selectCandidate(pool []*models.CombinationRule, category models.WorkplaceCategory, remaining int, state *ScheduleState) *candidate {
	if best := a.bestInPass(pool, category, remaining, state, false); best != nil {
		return best
	}
	return a.bestInPass(pool, category, remaining, state, true)
}

func (a *Allocator) bestInPass(pool []*models.CombinationRule, category models.WorkplaceCategory, remaining int, state *ScheduleState, generic bool) *candidate {
	var best *candidate
	bestScore := 0.0

	consider := func(c *candidate) {
		if score := c.perSlot(); score > bestScore {
			best = c
			bestScore = score
		}
	}

	for _, rule := range pool {
		if rule.Generic != generic {
			continue
		}

		if rule.ApplyEach {
			// One candidate per listed operator, slot cost 1, full value.
			for _, name := range rule.Operators {
				if !a.operatorUsable(name, category, state) {
					continue
				}
				if !a.checker.RuleEligible(rule, []string{name}) {
					continue
				}
				consider(&candidate{rule: rule, required: []string{name}, slots: 1, each: true})
			}
			continue
		}

		if len(rule.Operators) > remaining {
			continue
		}
		if !a.groupUsable(rule.Operators, category, state) {
			continue
		}
		if !a.checker.RuleEligible(rule, rule.Operators) {
			continue
		}
		consider(&candidate{rule: rule, required: rule.Operators, slots: len(rule.Operators)})
	}

	return best
}

func (a *Allocator) operatorUsable(name string, category models.WorkplaceCategory, state *ScheduleState) bool {
	if !a.catalog.Owned(name) {
		return false
	}
	return state.Available(name, category)
}

// groupUsable requires every member of a core group to be usable; a single
// missing operator rejects the whole rule.
func (a *Allocator) groupUsable(group []string, category models.WorkplaceCategory, state *ScheduleState) bool {
	for _, name := range group {
		if !a.operatorUsable(name, category, state) {
			return false
		}
	}
	return true
}
