// Package testutil provides fixtures shared by package tests: a record
// store preloaded with the base-game forms, item and recipe builders, and
// a rule document builder.
package testutil

import (
	"fmt"

	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// Game is the container of fixture records.
const Game = "Skyrim.esm"

// Const returns the ref of a builtin constant. It panics on unknown names.
func Const(name string) ir.StableRef {
	for _, c := range identity.Builtin {
		if c.Name == name {
			return c.Ref
		}
	}
	panic(fmt.Sprintf("testutil: unknown constant %q", name))
}

// Consts resolves several builtin constants.
func Consts(names ...string) []ir.StableRef {
	out := make([]ir.StableRef, 0, len(names))
	for _, n := range names {
		out = append(out, Const(n))
	}
	return out
}

// NewStore returns an in-memory store holding a form for every required
// builtin constant, plus the optional ones when addOns is set.
func NewStore(addOns bool) *recordstore.Memory {
	m := recordstore.NewMemory(recordstore.DefaultPatch)
	m.Import(&recordstore.Dataset{Forms: recordstore.BaseForms(identity.Builtin, addOns)})
	return m
}

// Item builds a playable item. Keywords are builtin constant names.
func Item(kind ir.RecordKind, id uint32, editorID, name string, c ir.Category, keywords ...string) *ir.Item {
	return &ir.Item{
		Ref:      ir.Ref(Game, id, kind),
		EditorID: editorID,
		Name:     name,
		Playable: true,
		Category: c,
		Keywords: Consts(keywords...),
		Stats:    make(map[ir.Metric]float64),
	}
}

// With sets stats on it and returns it.
func With(it *ir.Item, stats map[ir.Metric]float64) *ir.Item {
	for m, v := range stats {
		it.SetStat(m, v)
	}
	return it
}

// SteelSword is the base-game steel sword: forge recipe 0x0EAFD8 and
// grindstone recipe 0x0D0BF1.
func SteelSword() *ir.Item {
	return With(Item(ir.KindWeapon, 0x013989, "WeapSteelSword", "Steel Sword", ir.CategoryOneHanded,
		"WeapMaterialSteel", "WeapTypeSword"), map[ir.Metric]float64{
		ir.MetricDamage: 8,
		ir.MetricSpeed:  1,
		ir.MetricReach:  1,
		ir.MetricValue:  45,
		ir.MetricWeight: 10,
	})
}

// SteelSwordRecipes are the forge and tempering recipes of SteelSword.
func SteelSwordRecipes() []*ir.Recipe {
	sword := SteelSword().Ref
	return []*ir.Recipe{
		{
			Ref:         ir.Ref(Game, 0x0EAFD8, ir.KindRecipe),
			EditorID:    "RecipeWeaponSteelSword",
			Workbench:   Const(identity.WorkbenchForge),
			Output:      sword,
			OutputCount: 1,
			Inputs: []ir.RecipeInput{
				{Item: Const("IngotSteel"), Count: 2},
				{Item: Const("IngotIron"), Count: 1},
				{Item: Const("LeatherStrips"), Count: 1},
			},
		},
		{
			Ref:         ir.Ref(Game, 0x0D0BF1, ir.KindRecipe),
			EditorID:    "TemperSteelSword",
			Workbench:   Const(identity.WorkbenchGrindstone),
			Output:      sword,
			OutputCount: 1,
			Inputs:      []ir.RecipeInput{{Item: Const("IngotSteel"), Count: 1}},
		},
	}
}

// SteelHelmet is a heavy head piece without recipes.
func SteelHelmet() *ir.Item {
	it := With(Item(ir.KindArmor, 0x013952, "ArmorSteelHelmetA", "Steel Helmet", ir.CategoryHeavy,
		"ArmorMaterialSteel", "ArmorHelmet", "ArmorHeavy"), map[ir.Metric]float64{
		ir.MetricArmor:  17,
		ir.MetricValue:  125,
		ir.MetricWeight: 5,
	})
	it.Slot = ir.SlotHead
	return it
}

// IronArrow is untagged ammunition.
func IronArrow() *ir.Item {
	return With(Item(ir.KindAmmo, 0x01397D, "IronArrow", "Iron Arrow", ir.CategoryArrow), map[ir.Metric]float64{
		ir.MetricDamage:  8,
		ir.MetricSpeed:   3000,
		ir.MetricRange:   8000,
		ir.MetricGravity: 0.35,
		ir.MetricValue:   1,
	})
}

// Seed returns a store with the base-game forms and the given items and
// recipes.
func Seed(items []*ir.Item, recipes []*ir.Recipe) *recordstore.Memory {
	m := NewStore(false)
	for _, it := range items {
		m.AddItem(it)
	}
	for _, r := range recipes {
		m.AddRecipe(r)
	}
	return m
}
