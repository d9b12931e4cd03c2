package models

import (
	"github.com/google/uuid"
)

// Operator is a single catalog entry. Catalog data is immutable for the
// duration of a plan run.
type Operator struct {
	ID     uuid.UUID `json:"id"`
	Code   string    `json:"code,omitempty"`
	Name   string    `json:"name"`
	Tier   int       `json:"tier"`
	Level  int       `json:"level"`
	Owned  bool      `json:"owned"`
	Trait  int       `json:"trait"`
	Rarity int       `json:"rarity"`
}

// Catalog provides name-keyed access to operators while preserving the
// load order of the underlying records.
type Catalog struct {
	Operators []Operator
	byName    map[string]*Operator
}

// NewCatalog builds a catalog from a list of operator records. Later
// records shadow earlier ones with the same name.
func NewCatalog(operators []Operator) *Catalog {
	c := &Catalog{
		Operators: operators,
		byName:    make(map[string]*Operator, len(operators)),
	}
	for i := range c.Operators {
		c.byName[c.Operators[i].Name] = &c.Operators[i]
	}
	return c
}

// Get returns the operator with the given name, or nil if unknown.
func (c *Catalog) Get(name string) *Operator {
	return c.byName[name]
}

// Owned reports whether the named operator exists and is owned.
func (c *Catalog) Owned(name string) bool {
	op := c.byName[name]
	return op != nil && op.Owned
}

// OwnedOperators returns the owned subset in catalog order.
func (c *Catalog) OwnedOperators() []Operator {
	var owned []Operator
	for _, op := range c.Operators {
		if op.Owned {
			owned = append(owned, op)
		}
	}
	return owned
}
