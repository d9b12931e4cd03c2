package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/tidwall/gjson"
)

// Compile expands the nested combination_rules document into a flat rule
// table sorted by (priority desc, synergy desc). The sort is stable, so
// document order breaks ties; the allocator relies on that for its
// deterministic tie-break.
//
// Two system shapes are accepted: a plain array of rules, and an object
// with an optional shared base_combo whose rules each extend the base
// group. Malformed operator tokens and missing efficiency values are
// compile errors, never defaulted.
func Compile(doc gjson.Result) ([]models.CombinationRule, error) {
	var compiled []models.CombinationRule
	var compileErr error

	doc.ForEach(func(categoryKey, systems gjson.Result) bool {
		category := categoryKey.String()
		if !models.ValidCategory(category) {
			compileErr = fmt.Errorf("unknown workplace category %q", category)
			return false
		}

		systems.ForEach(func(systemKey, systemData gjson.Result) bool {
			system := systemKey.String()
			var err error
			switch {
			case systemData.IsArray():
				err = compileFlatSystem(&compiled, models.WorkplaceCategory(category), system, systemData)
			case systemData.IsObject():
				err = compileBasedSystem(&compiled, models.WorkplaceCategory(category), system, systemData)
			default:
				err = fmt.Errorf("system %q must be a rule list or an object", system)
			}
			if err != nil {
				compileErr = fmt.Errorf("category %q: %w", category, err)
				return false
			}
			return true
		})
		return compileErr == nil
	})
	if compileErr != nil {
		return nil, compileErr
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		if compiled[i].Priority != compiled[j].Priority {
			return compiled[i].Priority > compiled[j].Priority
		}
		return compiled[i].Synergy > compiled[j].Synergy
	})

	return compiled, nil
}

// compileFlatSystem handles the plain-array system shape: every entry is a
// self-contained rule.
func compileFlatSystem(out *[]models.CombinationRule, category models.WorkplaceCategory, system string, data gjson.Result) error {
	var err error
	data.ForEach(func(_, ruleData gjson.Result) bool {
		var rule models.CombinationRule
		rule, err = compileRule(category, system, ruleData, nil, nil, nil, false)
		if err != nil {
			err = fmt.Errorf("system %q: %w", system, err)
			return false
		}
		*out = append(*out, rule)
		return true
	})
	return err
}

// compileBasedSystem handles the object shape: base_combo operators and
// tier overrides are prepended to every sub-rule, and the system-level
// product set is the default for sub-rules that omit their own.
func compileBasedSystem(out *[]models.CombinationRule, category models.WorkplaceCategory, system string, data gjson.Result) error {
	var baseOperators []string
	baseOverrides := map[string]int{}

	var err error
	data.Get("base_combo").ForEach(func(_, tok gjson.Result) bool {
		var name string
		var tier int
		name, tier, err = parseOperatorToken(tok.String())
		if err != nil {
			return false
		}
		baseOperators = append(baseOperators, name)
		if tier > 0 {
			baseOverrides[name] = tier
		}
		return true
	})
	if err != nil {
		return fmt.Errorf("system %q base_combo: %w", system, err)
	}

	baseProducts := parseProducts(data.Get("product"))
	systemGeneric := data.Get("generic").Bool()

	data.Get("rules").ForEach(func(_, ruleData gjson.Result) bool {
		var rule models.CombinationRule
		rule, err = compileRule(category, system, ruleData, baseOperators, baseOverrides, baseProducts, systemGeneric)
		if err != nil {
			err = fmt.Errorf("system %q: %w", system, err)
			return false
		}
		*out = append(*out, rule)
		return true
	})
	return err
}

// compileRule normalizes one raw rule entry. baseOperators/baseOverrides/
// baseProducts are empty for flat systems.
func compileRule(category models.WorkplaceCategory, system string, ruleData gjson.Result,
	baseOperators []string, baseOverrides map[string]int, baseProducts []string, systemGeneric bool) (models.CombinationRule, error) {

	efficiency := ruleData.Get("efficiency")
	if !efficiency.Exists() {
		return models.CombinationRule{}, fmt.Errorf("rule %s is missing mandatory efficiency", ruleData.Get("combo").Raw)
	}

	operators := append([]string(nil), baseOperators...)
	overrides := make(map[string]int, len(baseOverrides))
	for name, tier := range baseOverrides {
		overrides[name] = tier
	}

	var tokenErr error
	ruleData.Get("combo").ForEach(func(_, tok gjson.Result) bool {
		name, tier, err := parseOperatorToken(tok.String())
		if err != nil {
			tokenErr = err
			return false
		}
		operators = append(operators, name)
		if tier > 0 {
			overrides[name] = tier
		}
		return true
	})
	if tokenErr != nil {
		return models.CombinationRule{}, tokenErr
	}
	if len(operators) == 0 {
		return models.CombinationRule{}, fmt.Errorf("rule in system %q has an empty operator group", system)
	}

	var support []models.RequirementRef
	for _, kind := range []models.RequirementKind{
		models.RequirementControlCenter,
		models.RequirementDormitory,
		models.RequirementPowerStation,
	} {
		refs, err := parseRequirements(kind, ruleData.Get(string(kind)))
		if err != nil {
			return models.CombinationRule{}, err
		}
		support = append(support, refs...)
	}

	products := parseProducts(ruleData.Get("product"))
	if products == nil {
		products = baseProducts
	}

	applyEach := ruleData.Get("apply_each").Bool()

	rule := models.CombinationRule{
		System:    system,
		Category:  category,
		Operators: operators,
		Synergy:   efficiency.Float(),
		Support:   support,
		ApplyEach: applyEach,
		Generic:   applyEach || systemGeneric || ruleData.Get("generic").Bool(),
		Priority:  int(ruleData.Get("priority").Int()),
		Products:  products,
	}
	if len(overrides) > 0 {
		rule.TierOverrides = overrides
	}
	if applyEach {
		rule.Description = system
	} else {
		rule.Description = fmt.Sprintf("%s - %s", system, strings.Join(operators, ", "))
	}

	return rule, nil
}

// parseOperatorToken splits a "name" or "name/tier" token. A token without
// a tier part has no override (tier 0).
func parseOperatorToken(token string) (string, int, error) {
	name, tierPart, found := strings.Cut(token, "/")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, fmt.Errorf("operator token %q has an empty name", token)
	}
	if !found {
		return name, 0, nil
	}

	tier, err := strconv.Atoi(strings.TrimSpace(tierPart))
	if err != nil || tier < 0 {
		return "", 0, fmt.Errorf("operator token %q has a malformed tier", token)
	}
	return name, tier, nil
}

// parseRequirements parses one support-requirement token list.
func parseRequirements(kind models.RequirementKind, data gjson.Result) ([]models.RequirementRef, error) {
	if !data.Exists() {
		return nil, nil
	}

	var refs []models.RequirementRef
	var err error
	data.ForEach(func(_, tok gjson.Result) bool {
		var name string
		var tier int
		name, tier, err = parseOperatorToken(tok.String())
		if err != nil {
			err = fmt.Errorf("%s requirement: %w", kind, err)
			return false
		}
		refs = append(refs, models.RequirementRef{Kind: kind, Operator: name, MinTier: tier})
		return true
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// parseProducts accepts a single product string or a list. A missing value
// returns nil so callers can distinguish "omitted" from "empty".
func parseProducts(data gjson.Result) []string {
	if !data.Exists() {
		return nil
	}
	if data.IsArray() {
		products := []string{}
		data.ForEach(func(_, p gjson.Result) bool {
			products = append(products, p.String())
			return true
		})
		return products
	}
	return []string{data.String()}
}
