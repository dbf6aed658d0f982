package ir

import (
	"maps"
	"slices"
)

// Metric names a numeric attribute on an item.
type Metric string

const (
	MetricArmor      Metric = "armor"
	MetricDamage     Metric = "damage"
	MetricSpeed      Metric = "speed"
	MetricReach      Metric = "reach"
	MetricCritDamage Metric = "critDamage"
	MetricStagger    Metric = "stagger"
	MetricGravity    Metric = "gravity"
	MetricRange      Metric = "range"
	MetricValue      Metric = "value"
	MetricWeight     Metric = "weight"
)

// Item is an equipment record: armor, weapon or ammunition.
type Item struct {
	Ref         StableRef          `json:"ref" yaml:"ref"`
	EditorID    string             `json:"editor_id" yaml:"editor_id"`
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Playable    bool               `json:"playable" yaml:"playable"`
	Category    Category           `json:"category" yaml:"category"`
	Slot        Slot               `json:"slot,omitempty" yaml:"slot,omitempty"`
	Keywords    []StableRef        `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Stats       map[Metric]float64 `json:"stats,omitempty" yaml:"stats,omitempty"`

	// Template is the item a generated variant was derived from.
	Template StableRef `json:"template,omitempty" yaml:"template,omitempty"`
}

// HasKeyword reports whether the item carries kw.
func (it *Item) HasKeyword(kw StableRef) bool {
	if kw.IsNull() {
		return false
	}
	return slices.Contains(it.Keywords, kw)
}

// AddKeyword adds kw if not already present.
func (it *Item) AddKeyword(kw StableRef) {
	if kw.IsNull() || it.HasKeyword(kw) {
		return
	}
	it.Keywords = append(it.Keywords, kw)
}

// Stat returns the value of metric m (zero when unset).
func (it *Item) Stat(m Metric) float64 {
	return it.Stats[m]
}

// SetStat sets metric m.
func (it *Item) SetStat(m Metric, v float64) {
	if it.Stats == nil {
		it.Stats = make(map[Metric]float64)
	}
	it.Stats[m] = v
}

// Clone returns a deep copy.
func (it *Item) Clone() *Item {
	c := *it
	c.Keywords = slices.Clone(it.Keywords)
	c.Stats = maps.Clone(it.Stats)
	return &c
}

// ConditionFunc is the game function a recipe condition evaluates.
type ConditionFunc string

const (
	CondHasPerk      ConditionFunc = "HasPerk"
	CondGetItemCount ConditionFunc = "GetItemCount"
	CondGetEquipped  ConditionFunc = "GetEquipped"
)

// Condition is one entry of a recipe condition list. Consecutive
// conditions flagged Or form an OR group that ends at the next unflagged
// condition.
//
// Condition is comparable, so condition lists can be compared as sets.
type Condition struct {
	Func  ConditionFunc `json:"func" yaml:"func"`
	Ref   StableRef     `json:"ref" yaml:"ref"`
	Op    string        `json:"op" yaml:"op"`
	Value float64       `json:"value" yaml:"value"`
	Or    bool          `json:"or,omitempty" yaml:"or,omitempty"`
}

// RecipeInput is a consumed item stack.
type RecipeInput struct {
	Item  StableRef `json:"item" yaml:"item"`
	Count int       `json:"count" yaml:"count"`
}

// Recipe is a constructible-object record: crafting, tempering or breakdown.
type Recipe struct {
	Ref         StableRef     `json:"ref" yaml:"ref"`
	EditorID    string        `json:"editor_id" yaml:"editor_id"`
	Workbench   StableRef     `json:"workbench" yaml:"workbench"`
	Output      StableRef     `json:"output" yaml:"output"`
	OutputCount int           `json:"output_count" yaml:"output_count"`
	Inputs      []RecipeInput `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Conditions  []Condition   `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

// Clone returns a deep copy.
func (r *Recipe) Clone() *Recipe {
	c := *r
	c.Inputs = slices.Clone(r.Inputs)
	c.Conditions = slices.Clone(r.Conditions)
	return &c
}

// Consumes reports whether the recipe lists item among its inputs.
func (r *Recipe) Consumes(item StableRef) bool {
	for _, in := range r.Inputs {
		if in.Item == item {
			return true
		}
	}
	return false
}

// InputCount returns the consumed count of item (zero if absent).
func (r *Recipe) InputCount(item StableRef) int {
	for _, in := range r.Inputs {
		if in.Item == item {
			return in.Count
		}
	}
	return 0
}

// PerkConditions returns the HasPerk conditions in declaration order.
func (r *Recipe) PerkConditions() []Condition {
	var out []Condition
	for _, c := range r.Conditions {
		if c.Func == CondHasPerk {
			out = append(out, c)
		}
	}
	return out
}

// SameConditionSet reports whether a and b hold the same conditions,
// ignoring order and multiplicity.
func SameConditionSet(a, b []Condition) bool {
	return sameSet(a, b)
}

// SameInputSet reports whether a and b consume the same stacks, ignoring order.
func SameInputSet(a, b []RecipeInput) bool {
	return sameSet(a, b)
}

func sameSet[T comparable](a, b []T) bool {
	as := make(map[T]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[T]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}

// Descriptor links a symbolic material or type id to the keyword that
// marks it on an item, its base crafting resource and the perks required
// to work it. Descriptors are built once per run and never mutated.
type Descriptor struct {
	ID       string      `json:"id" yaml:"id"`
	Tag      StableRef   `json:"tag" yaml:"tag"`
	Resource StableRef   `json:"resource" yaml:"resource"`
	Perks    []StableRef `json:"perks,omitempty" yaml:"perks,omitempty"`
}
