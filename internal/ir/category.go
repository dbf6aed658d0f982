package ir

import (
	"fmt"
	"strings"
)

// Domain names a patcher and the top-level key of a rule-set document.
type Domain string

const (
	DomainArmor   Domain = "armor"
	DomainWeapons Domain = "weapons"
	DomainAmmo    Domain = "ammunition"
)

// Domains lists every domain in patch order.
var Domains = []Domain{DomainArmor, DomainWeapons, DomainAmmo}

// Category is the coarse classification of an item used as the primary
// axis for base-stat lookup and for rule filters.
type Category int

const (
	CategoryUnknown Category = iota

	// Armor categories.
	CategoryLight
	CategoryHeavy
	CategoryClothing

	// Weapon categories (animation type).
	CategoryOneHanded
	CategoryTwoHanded
	CategoryBow
	CategoryCrossbow
	CategoryStaff

	// Ammunition categories.
	CategoryArrow
	CategoryBolt
)

var categoryNames = map[Category]string{
	CategoryUnknown:   "Unknown",
	CategoryLight:     "Light",
	CategoryHeavy:     "Heavy",
	CategoryClothing:  "Clothing",
	CategoryOneHanded: "OneHanded",
	CategoryTwoHanded: "TwoHanded",
	CategoryBow:       "Bow",
	CategoryCrossbow:  "Crossbow",
	CategoryStaff:     "Staff",
	CategoryArrow:     "Arrow",
	CategoryBolt:      "Bolt",
}

// String returns the name used in rule filters.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Domain returns the domain a category belongs to.
func (c Category) Domain() Domain {
	switch c {
	case CategoryLight, CategoryHeavy, CategoryClothing:
		return DomainArmor
	case CategoryOneHanded, CategoryTwoHanded, CategoryBow, CategoryCrossbow, CategoryStaff:
		return DomainWeapons
	case CategoryArrow, CategoryBolt:
		return DomainAmmo
	case CategoryUnknown:
		return ""
	}
	panic(fmt.Sprintf("ir: unhandled category %d", int(c)))
}

// ParseCategory parses a category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	return CategoryUnknown, fmt.Errorf("unknown category %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Slot is the body slot an armor piece occupies.
type Slot string

const (
	SlotNone   Slot = ""
	SlotBody   Slot = "body"
	SlotHead   Slot = "head"
	SlotHands  Slot = "hands"
	SlotFeet   Slot = "feet"
	SlotShield Slot = "shield"
)
