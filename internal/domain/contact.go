package domain

import (
	"maps"
	"slices"
	"time"
)

type Contact struct {
	ID          string            `gorm:"primaryKey;type:varchar(64)" json:"id"`
	PhoneNumber string            `gorm:"type:varchar(32)" json:"phone_number"`
	Name        string            `gorm:"type:varchar(255)" json:"name"`
	Variables   map[string]string `gorm:"serializer:json" json:"variables"`
	// VariableOrder is the column order the variables were imported in.
	VariableOrder []string  `gorm:"serializer:json" json:"variable_order,omitempty"`
	Position      int64     `gorm:"index" json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bindings returns the values available when rendering a template for this
// contact. Imported variables shadow the phoneNumber and name keys.
func (c *Contact) Bindings() map[string]string {
	bindings := make(map[string]string, len(c.Variables)+2)
	bindings["phoneNumber"] = c.PhoneNumber
	bindings["name"] = c.Name
	for k, v := range c.Variables {
		bindings[k] = v
	}
	return bindings
}

// VariableKeys returns the keys of Variables in import order. Keys missing
// from VariableOrder follow in sorted order.
func (c *Contact) VariableKeys() []string {
	keys := make([]string, 0, len(c.Variables))
	for _, k := range c.VariableOrder {
		if _, ok := c.Variables[k]; ok && !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	if len(keys) == len(c.Variables) {
		return keys
	}
	for _, k := range slices.Sorted(maps.Keys(c.Variables)) {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}
