package service

import (
	"sort"

	"github.com/outpost-tools/rostering-service/internal/models"
)

// Usage caps across the whole cycle. Boosted operators get the relaxed cap
// only inside the trading category.
const (
	defaultUsageCap = 2
	boostedUsageCap = 3
)

// ScheduleState is the explicit global allocation state threaded through
// the cycle: the cross-shift usage budget, the per-shift exclusivity set
// and the quota-boost set. It is created once per run and mutated only by
// the single active allocator call.
type ScheduleState struct {
	usage     map[string]int
	shiftUsed map[string]struct{}
	boosted   map[string]struct{}
}

// NewScheduleState creates a fresh state for one plan run.
func NewScheduleState() *ScheduleState {
	return &ScheduleState{
		usage:     make(map[string]int),
		shiftUsed: make(map[string]struct{}),
	}
}

// SetBoosted installs the quota-boost set selected before shift 0.
func (s *ScheduleState) SetBoosted(names []string) {
	s.boosted = make(map[string]struct{}, len(names))
	for _, name := range names {
		s.boosted[name] = struct{}{}
	}
}

// BeginShift resets the per-shift exclusivity set. The usage budget
// survives shift boundaries.
func (s *ScheduleState) BeginShift() {
	s.shiftUsed = make(map[string]struct{})
}

// UsageCap returns the cycle-wide cap for one operator in one category.
func (s *ScheduleState) UsageCap(name string, category models.WorkplaceCategory) int {
	if _, ok := s.boosted[name]; ok && category == models.CategoryTrading {
		return boostedUsageCap
	}
	return defaultUsageCap
}

// Available reports whether the operator can still be placed this shift:
// not already placed somewhere this shift, and under its usage cap.
func (s *ScheduleState) Available(name string, category models.WorkplaceCategory) bool {
	if _, used := s.shiftUsed[name]; used {
		return false
	}
	return s.usage[name] < s.UsageCap(name, category)
}

// Commit marks the operator as placed: it joins the shift exclusivity set
// and consumes one usage-budget unit.
func (s *ScheduleState) Commit(name string) {
	s.shiftUsed[name] = struct{}{}
	s.usage[name]++
}

// UsageCount returns the number of shifts the operator has been placed in
// so far.
func (s *ScheduleState) UsageCount(name string) int {
	return s.usage[name]
}

// UsageSnapshot returns a sorted copy of the usage budget, for logging and
// tests.
func (s *ScheduleState) UsageSnapshot() []OperatorUsage {
	snapshot := make([]OperatorUsage, 0, len(s.usage))
	for name, count := range s.usage {
		snapshot = append(snapshot, OperatorUsage{Name: name, Shifts: count})
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].Name < snapshot[j].Name })
	return snapshot
}

// OperatorUsage is one usage-budget entry.
type OperatorUsage struct {
	Name   string `json:"name"`
	Shifts int    `json:"shifts"`
}
