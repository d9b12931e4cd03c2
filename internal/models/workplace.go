package models

// WorkplaceCategory identifies a class of workplaces sharing rules and
// defaults.
type WorkplaceCategory string

const (
	CategoryTrading       WorkplaceCategory = "trading"
	CategoryManufacturing WorkplaceCategory = "manufacturing"
	CategoryMeeting       WorkplaceCategory = "meeting"
	CategoryPower         WorkplaceCategory = "power"
)

// ValidCategory reports whether s names a known workplace category.
func ValidCategory(s string) bool {
	switch WorkplaceCategory(s) {
	case CategoryTrading, CategoryManufacturing, CategoryMeeting, CategoryPower:
		return true
	}
	return false
}

// Workplace is one capacity-bounded slot group. Instances are created at
// startup; CurrentProduct is the only field rewritten between shifts.
type Workplace struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       WorkplaceCategory `json:"category"`
	MaxOperators   int               `json:"max_operators"`
	BaseEfficiency float64           `json:"base_efficiency"`
	CurrentProduct string            `json:"current_product,omitempty"`
}

// WorkplaceDefaults carries the per-category capacity and base efficiency
// used when countable instances are created from configuration counts.
type WorkplaceDefaults struct {
	MaxOperators   int     `json:"max_operators"`
	BaseEfficiency float64 `json:"base_efficiency"`
}
