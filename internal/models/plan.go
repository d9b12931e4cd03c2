package models

// AssignmentResult is the outcome of filling one workplace in one shift.
type AssignmentResult struct {
	Workplace    *Workplace       `json:"workplace"`
	Operators    []Operator       `json:"operators"`
	TotalEff     float64          `json:"total_efficiency"`
	Synergy      float64          `json:"synergy"`
	AppliedRules []string         `json:"applied_rules,omitempty"`
	Support      []RequirementRef `json:"support,omitempty"`
}

// OperatorNames returns the assigned operator names in assignment order.
func (r *AssignmentResult) OperatorNames() []string {
	names := make([]string, 0, len(r.Operators))
	for _, op := range r.Operators {
		names = append(names, op.Name)
	}
	return names
}

// Room is one room entry in the emitted plan. Autofill marks rooms the
// external tool should staff on its own.
type Room struct {
	Operators []string `json:"operators"`
	Autofill  bool     `json:"autofill"`
	Product   string   `json:"product,omitempty"`
}

// RoomForResult converts an assignment into its plan room.
func RoomForResult(result *AssignmentResult, withProduct bool) Room {
	room := Room{
		Operators: result.OperatorNames(),
		Autofill:  len(result.Operators) == 0,
	}
	if room.Operators == nil {
		room.Operators = []string{}
	}
	if withProduct {
		room.Product = result.Workplace.CurrentProduct
	}
	return room
}

// BoostSetting is the per-shift quota-boost block of the plan.
type BoostSetting struct {
	Enabled bool   `json:"enable"`
	Target  string `json:"target"`
	Order   string `json:"order"`
}

// ShiftRooms groups the room assignments of one shift by room type.
type ShiftRooms struct {
	Trading     []Room `json:"trading"`
	Manufacture []Room `json:"manufacture"`
	Control     []Room `json:"control"`
	Power       []Room `json:"power"`
	Meeting     []Room `json:"meeting"`
	Dormitory   []Room `json:"dormitory"`
}

// ShiftPlan is the emitted plan for one shift.
type ShiftPlan struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Boost       BoostSetting `json:"boost"`
	Rooms       ShiftRooms   `json:"rooms"`
}

// Plan is the full cycle plan handed to the external scheduling tool.
type Plan struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Shifts      []ShiftPlan `json:"plans"`
}
