package derive

import (
	"fmt"

	"github.com/roach88/forgepatch/internal/ir"
)

// Breakdown creates a recipe that turns the item back into its most
// valuable material resource. It returns the new recipe's ref, or false
// when nothing was created.
func (g *Generator) Breakdown(t Target, diag Diagnostics) (ir.StableRef, bool) {
	item := t.Item
	if existing := g.existingBreakdown(item.Ref); existing != nil && g.cfg.SkipExistingBreakdown {
		diag.Info("breakdown skipped, %s already exists", existing.EditorID)
		return ir.NullRef, false
	}

	resource, base, ok := g.chooseResource(t, diag)
	if !ok {
		diag.Error("breakdown: no resource for materials %v", materialIDs(t.Materials))
		return ir.NullRef, false
	}

	bench := g.cfg.Smelter
	if g.tanning[resource] {
		bench = g.cfg.TanningRack
	}
	if bench.IsNull() {
		diag.Error("breakdown: no workbench for %s", g.name(resource))
		return ir.NullRef, false
	}

	qty := refund(base, g.cfg.RefundPercent)
	r := &ir.Recipe{
		EditorID:    g.ids.Unique("Breakdown" + item.EditorID),
		Workbench:   bench,
		Output:      resource,
		OutputCount: qty,
		Inputs:      []ir.RecipeInput{{Item: item.Ref, Count: 1}},
		Conditions: []ir.Condition{
			{Func: ir.CondGetItemCount, Ref: item.Ref, Op: ">=", Value: 1},
			{Func: ir.CondGetEquipped, Ref: item.Ref, Op: "==", Value: 0},
		},
	}
	ref := g.store.CreateRecipe(r)
	g.counters.Created++
	diag.Info("breakdown %s yields %d x %s", r.EditorID, qty, g.name(resource))
	return ref, true
}

// existingBreakdown returns a recipe that already consumes the item to
// produce a non-equipment record.
func (g *Generator) existingBreakdown(item ir.StableRef) *ir.Recipe {
	for _, r := range g.store.Recipes() {
		if isEquipment(r.Output.Kind) || !r.Consumes(item) {
			continue
		}
		return r
	}
	return nil
}

func isEquipment(k ir.RecordKind) bool {
	return k == ir.KindArmor || k == ir.KindWeapon || k == ir.KindAmmo
}

// chooseResource picks the output resource and the base quantity. The
// item's forge recipe is the hint: the material resource it consumes most
// of wins and its count is the base. Without a usable hint the primary
// material's resource and the category default are used.
func (g *Generator) chooseResource(t Target, diag Diagnostics) (ir.StableRef, int, bool) {
	var candidates []ir.StableRef
	for _, m := range t.Materials {
		if !m.Resource.IsNull() {
			candidates = append(candidates, m.Resource)
		}
	}
	if len(candidates) == 0 {
		return ir.NullRef, 0, false
	}

	hintRef := t.Hint
	if hintRef.IsNull() {
		hintRef = t.Item.Ref
	}
	if hint := g.craftingRecipe(hintRef); hint != nil {
		best, bestCount := ir.NullRef, 0
		for _, c := range candidates {
			if n := hint.InputCount(c); n > bestCount {
				best, bestCount = c, n
			}
		}
		if bestCount > 0 {
			return best, bestCount, true
		}
		diag.Caution("breakdown: %s consumes none of the material resources, using defaults", hint.EditorID)
	}
	return candidates[0], defaultQuantity(t.Category, t.Item.Slot), true
}

func (g *Generator) craftingRecipe(item ir.StableRef) *ir.Recipe {
	for _, r := range g.store.RecipesFor(item) {
		if r.Workbench == g.cfg.Forge {
			return r
		}
	}
	return nil
}

// defaultQuantity is the resource count an item of category c is assumed
// to be made of when no crafting recipe says otherwise.
func defaultQuantity(c ir.Category, slot ir.Slot) int {
	switch c {
	case ir.CategoryLight, ir.CategoryHeavy:
		switch slot {
		case ir.SlotBody:
			return 4
		case ir.SlotShield:
			return 3
		default:
			return 2
		}
	case ir.CategoryClothing, ir.CategoryStaff, ir.CategoryArrow, ir.CategoryBolt, ir.CategoryUnknown:
		return 1
	case ir.CategoryOneHanded, ir.CategoryBow:
		return 2
	case ir.CategoryTwoHanded, ir.CategoryCrossbow:
		return 3
	}
	panic(fmt.Sprintf("derive: unhandled category %d", int(c)))
}

func (g *Generator) name(ref ir.StableRef) string {
	if id := g.store.EditorID(ref); id != "" {
		return id
	}
	return ref.String()
}

func materialIDs(mats []ir.Descriptor) []string {
	ids := make([]string, 0, len(mats))
	for _, m := range mats {
		ids = append(ids, m.ID)
	}
	return ids
}
