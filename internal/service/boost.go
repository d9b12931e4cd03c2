package service

import (
	"sort"

	"github.com/outpost-tools/rostering-service/internal/models"
)

// Quota-boost selection parameters: up to boostQuota targets, each required
// to be owned and at least at this tier.
const (
	boostQuota   = 3
	boostMinTier = 2
)

// BoostSelector nominates the operators granted the relaxed usage cap in
// the trading category. It runs once before shift 0.
type BoostSelector struct {
	catalog    *models.Catalog
	rules      []models.CombinationRule
	preference []string
}

// NewBoostSelector creates a selector with a fixed preference list taken in
// order before the synergy-ranked fallback.
func NewBoostSelector(catalog *models.Catalog, rules []models.CombinationRule, preference []string) *BoostSelector {
	return &BoostSelector{catalog: catalog, rules: rules, preference: preference}
}

// SelectTargets returns up to boostQuota operator names: preference-list
// entries first, then owned eligible operators appearing in trading rules
// ranked by summed per-slot synergy contribution.
func (s *BoostSelector) SelectTargets() []string {
	var selected []string
	taken := make(map[string]struct{})

	for _, name := range s.preference {
		if len(selected) >= boostQuota {
			return selected
		}
		if !s.eligible(name) {
			continue
		}
		if _, dup := taken[name]; dup {
			continue
		}
		selected = append(selected, name)
		taken[name] = struct{}{}
	}
	if len(selected) >= boostQuota {
		return selected
	}

	// Fallback: rank candidates by their average contribution across all
	// trading rules they appear in.
	scores := make(map[string]float64)
	var order []string
	for _, rule := range s.rules {
		if rule.Category != models.CategoryTrading {
			continue
		}
		perSlot := rule.Synergy / float64(len(rule.Operators))
		for _, name := range rule.Operators {
			if _, dup := taken[name]; dup {
				continue
			}
			if !s.eligible(name) {
				continue
			}
			if _, seen := scores[name]; !seen {
				order = append(order, name)
			}
			scores[name] += perSlot
		}
	}

	// Stable by first appearance in the rule table, then score descending,
	// so equal scores resolve deterministically.
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	for _, name := range order {
		if len(selected) >= boostQuota {
			break
		}
		selected = append(selected, name)
	}
	return selected
}

func (s *BoostSelector) eligible(name string) bool {
	op := s.catalog.Get(name)
	return op != nil && op.Owned && op.Tier >= boostMinTier
}
