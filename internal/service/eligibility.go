package service

import (
	"github.com/outpost-tools/rostering-service/internal/models"
)

// EligibilityChecker holds the pure predicates a rule must pass before it
// can be applied. All checks run against the live catalog; a single failing
// requirement rejects the rule as a whole.
type EligibilityChecker struct {
	catalog *models.Catalog
}

// NewEligibilityChecker creates a checker bound to one catalog.
func NewEligibilityChecker(catalog *models.Catalog) *EligibilityChecker {
	return &EligibilityChecker{catalog: catalog}
}

// TiersSatisfied checks the per-operator minimum-tier overrides for the
// named group. Operators without an override are unconstrained.
func (c *EligibilityChecker) TiersSatisfied(group []string, overrides map[string]int) bool {
	for _, name := range group {
		required, ok := overrides[name]
		if !ok {
			continue
		}
		op := c.catalog.Get(name)
		if op == nil || op.Tier < required {
			return false
		}
	}
	return true
}

// SupportSatisfied checks a support-requirement list: every referenced
// operator must exist in the catalog, be owned and be at least at the
// required tier, independent of the rule's own group.
func (c *EligibilityChecker) SupportSatisfied(refs []models.RequirementRef) bool {
	for _, ref := range refs {
		op := c.catalog.Get(ref.Operator)
		if op == nil || !op.Owned || op.Tier < ref.MinTier {
			return false
		}
	}
	return true
}

// RuleEligible runs all checks for a rule against the given core group.
func (c *EligibilityChecker) RuleEligible(rule *models.CombinationRule, group []string) bool {
	if !c.TiersSatisfied(group, rule.TierOverrides) {
		return false
	}
	return c.SupportSatisfied(rule.Support)
}
