package rules

import (
	"fmt"
	"os"

	"github.com/outpost-tools/rostering-service/internal/models"
	"github.com/tidwall/gjson"
)

// RuleSet is a loaded and compiled ruleset document: the flat rule table
// plus the workplace defaults and fixed instances it declares.
type RuleSet struct {
	Rules []models.CombinationRule

	TradingDefaults       models.WorkplaceDefaults
	ManufacturingDefaults models.WorkplaceDefaults

	Meeting       models.Workplace
	PowerStations []models.Workplace

	boostPreference []string
}

// BoostPreference returns the ruleset's ordered quota-boost preference
// list, possibly empty.
func (rs *RuleSet) BoostPreference() []string {
	return rs.boostPreference
}

// Load reads and compiles a ruleset document from disk. Any malformation is
// a fatal configuration error for the caller.
func Load(path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file: %w", err)
	}
	rs, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return rs, nil
}

// Parse compiles a raw ruleset document.
func Parse(raw []byte) (*RuleSet, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("ruleset is not valid JSON")
	}
	doc := gjson.ParseBytes(raw)

	compiled, err := Compile(doc.Get("combination_rules"))
	if err != nil {
		return nil, fmt.Errorf("failed to compile combination rules: %w", err)
	}

	rs := &RuleSet{Rules: compiled}
	if err := rs.parseWorkplaces(doc.Get("workplaces")); err != nil {
		return nil, err
	}

	doc.Get("boost.preference").ForEach(func(_, name gjson.Result) bool {
		rs.boostPreference = append(rs.boostPreference, name.String())
		return true
	})

	return rs, nil
}

func (rs *RuleSet) parseWorkplaces(doc gjson.Result) error {
	rs.TradingDefaults = parseDefaults(doc.Get("trading"))
	rs.ManufacturingDefaults = parseDefaults(doc.Get("manufacturing"))

	meeting := doc.Get("meeting")
	if !meeting.Exists() {
		return fmt.Errorf("workplaces section is missing the meeting room")
	}
	rs.Meeting = models.Workplace{
		ID:             stringOr(meeting.Get("id"), "meeting_1"),
		Name:           stringOr(meeting.Get("name"), "Meeting Room"),
		Category:       models.CategoryMeeting,
		MaxOperators:   int(meeting.Get("max_operators").Int()),
		BaseEfficiency: meeting.Get("base_efficiency").Float(),
	}

	var i int
	doc.Get("power").ForEach(func(_, ps gjson.Result) bool {
		i++
		rs.PowerStations = append(rs.PowerStations, models.Workplace{
			ID:             stringOr(ps.Get("id"), fmt.Sprintf("power_%d", i)),
			Name:           stringOr(ps.Get("name"), fmt.Sprintf("Power Station %d", i)),
			Category:       models.CategoryPower,
			MaxOperators:   int(ps.Get("max_operators").Int()),
			BaseEfficiency: ps.Get("base_efficiency").Float(),
		})
		return true
	})

	return nil
}

// parseDefaults takes the first entry of a countable-category workplace
// list, falling back to 3 slots at 100% when the list is absent.
func parseDefaults(data gjson.Result) models.WorkplaceDefaults {
	defaults := models.WorkplaceDefaults{MaxOperators: 3, BaseEfficiency: 100}
	first := data.Get("0")
	if first.Exists() {
		defaults.MaxOperators = int(first.Get("max_operators").Int())
		defaults.BaseEfficiency = first.Get("base_efficiency").Float()
	}
	return defaults
}

func stringOr(v gjson.Result, fallback string) string {
	if s := v.String(); s != "" {
		return s
	}
	return fallback
}

// Workplaces instantiates the full workplace set for one run: counted
// trading and manufacturing stations from the defaults, plus the fixed
// meeting room and power stations.
func (rs *RuleSet) Workplaces(tradingCount, manufacturingCount int) map[models.WorkplaceCategory][]*models.Workplace {
	workplaces := map[models.WorkplaceCategory][]*models.Workplace{}

	for i := 0; i < tradingCount; i++ {
		workplaces[models.CategoryTrading] = append(workplaces[models.CategoryTrading], &models.Workplace{
			ID:             fmt.Sprintf("trading_%d", i+1),
			Name:           fmt.Sprintf("Trading Station %d", i+1),
			Category:       models.CategoryTrading,
			MaxOperators:   rs.TradingDefaults.MaxOperators,
			BaseEfficiency: rs.TradingDefaults.BaseEfficiency,
		})
	}
	for i := 0; i < manufacturingCount; i++ {
		workplaces[models.CategoryManufacturing] = append(workplaces[models.CategoryManufacturing], &models.Workplace{
			ID:             fmt.Sprintf("manufacturing_%d", i+1),
			Name:           fmt.Sprintf("Manufacturing Station %d", i+1),
			Category:       models.CategoryManufacturing,
			MaxOperators:   rs.ManufacturingDefaults.MaxOperators,
			BaseEfficiency: rs.ManufacturingDefaults.BaseEfficiency,
		})
	}

	meeting := rs.Meeting
	workplaces[models.CategoryMeeting] = []*models.Workplace{&meeting}

	for i := range rs.PowerStations {
		ps := rs.PowerStations[i]
		workplaces[models.CategoryPower] = append(workplaces[models.CategoryPower], &ps)
	}

	return workplaces
}

// Summaries returns the compiled table as listing rows, in table order.
func (rs *RuleSet) Summaries() []models.RuleSummary {
	summaries := make([]models.RuleSummary, 0, len(rs.Rules))
	for _, rule := range rs.Rules {
		summaries = append(summaries, models.RuleSummary{
			Description: rule.Description,
			System:      rule.System,
			Category:    rule.Category,
			Operators:   rule.Operators,
			Synergy:     rule.Synergy,
			Priority:    rule.Priority,
			ApplyEach:   rule.ApplyEach,
			Generic:     rule.Generic,
		})
	}
	return summaries
}
