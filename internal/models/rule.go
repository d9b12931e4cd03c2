package models

// RequirementKind distinguishes the three support-facility requirement
// classes. They share one shape but are collected separately by the
// scheduler.
type RequirementKind string

const (
	RequirementControlCenter RequirementKind = "control_center"
	RequirementDormitory     RequirementKind = "dormitory"
	RequirementPowerStation  RequirementKind = "power_station"
)

// RequirementRef names an operator that must be owned and at least at
// MinTier for a rule to qualify. The referenced operator is independent of
// the rule's own core group.
type RequirementRef struct {
	Kind     RequirementKind `json:"kind"`
	Operator string          `json:"operator"`
	MinTier  int             `json:"min_tier"`
}

// CombinationRule is one compiled synergy rule. Rules are immutable after
// compilation; System carries the provenance of the ruleset entry the rule
// was expanded from.
type CombinationRule struct {
	System        string              `json:"system"`
	Category      WorkplaceCategory   `json:"category"`
	Operators     []string            `json:"operators"`
	Synergy       float64             `json:"synergy"`
	TierOverrides map[string]int      `json:"tier_overrides,omitempty"`
	Support       []RequirementRef    `json:"support,omitempty"`
	ApplyEach     bool                `json:"apply_each,omitempty"`
	Generic       bool                `json:"generic,omitempty"`
	Priority      int                 `json:"priority,omitempty"`
	Products      []string            `json:"products,omitempty"`
	Description   string              `json:"description"`
}

// SupportOfKind returns the subset of support requirements of one kind.
func (r *CombinationRule) SupportOfKind(kind RequirementKind) []RequirementRef {
	var refs []RequirementRef
	for _, ref := range r.Support {
		if ref.Kind == kind {
			refs = append(refs, ref)
		}
	}
	return refs
}

// MatchesProduct reports whether the rule applies when the workplace is
// producing the given product. An empty product set means unrestricted.
func (r *CombinationRule) MatchesProduct(product string) bool {
	if len(r.Products) == 0 {
		return true
	}
	for _, p := range r.Products {
		if p == product {
			return true
		}
	}
	return false
}
