package derive

import (
	"fmt"
	"strings"

	"github.com/roach88/forgepatch/internal/ir"
)

// Subtype is one entry of a variant system, e.g. an elemental arrow head.
type Subtype struct {
	ID string

	// Name and Description are literal text or "$key" localization keys.
	Name        string
	Description string

	Tag        ir.StableRef
	Perk       ir.StableRef
	Ingredient ir.StableRef

	// Multipliers scale the template's metrics.
	Multipliers map[ir.Metric]float64
}

// Variants creates one variant per ordered pair of subtypes, self-pairs
// included. A self-pair applies its multipliers once; a cross-pair applies
// both subtypes' multipliers. Every variant gets a crafting recipe, a
// tempering recipe and a breakdown recipe.
func (g *Generator) Variants(t Target, subtypes []Subtype, diag Diagnostics) ([]ir.StableRef, error) {
	var refs []ir.StableRef
	for _, a := range subtypes {
		for _, b := range subtypes {
			ref, err := g.variant(t, a, b, diag)
			if err != nil {
				return refs, err
			}
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

func (g *Generator) variant(t Target, a, b Subtype, diag Diagnostics) (ir.StableRef, error) {
	item := t.Item
	self := a.ID == b.ID
	parts := []Subtype{a}
	if !self {
		parts = append(parts, b)
	}

	v := item.Clone()
	v.Template = item.Ref
	v.Ref = ir.Ref("", 0, item.Ref.Kind)

	var names, descs []string
	suffix := ""
	for _, s := range parts {
		name, err := g.text(s.Name, item.Name)
		if err != nil {
			return ir.NullRef, fmt.Errorf("subtype %s: %w", s.ID, err)
		}
		names = append(names, name)
		if s.Description != "" {
			desc, err := g.text(s.Description, item.Name)
			if err != nil {
				return ir.NullRef, fmt.Errorf("subtype %s: %w", s.ID, err)
			}
			descs = append(descs, desc)
		}
		v.AddKeyword(s.Tag)
		for metric, m := range s.Multipliers {
			if cur, ok := v.Stats[metric]; ok {
				v.SetStat(metric, cur*m)
			}
		}
		suffix += s.ID
	}
	v.Name = strings.Join(append(names, item.Name), " ")
	if len(descs) > 0 {
		v.Description = strings.Join(descs, " ")
	}
	v.EditorID = g.ids.Unique(item.EditorID + suffix)

	ref := g.store.CreateItem(v)
	g.counters.Created++
	diag.Info("variant %s (%s)", v.Name, v.EditorID)

	created, ok := g.store.Item(ref)
	if !ok {
		return ir.NullRef, fmt.Errorf("variant %s vanished after creation", v.EditorID)
	}

	g.variantCrafting(t, created, parts)
	g.variantTempering(t, created, diag)
	g.Breakdown(Target{Item: created, Category: t.Category, Materials: t.Materials, Hint: item.Ref}, diag)
	return ref, nil
}

func (g *Generator) variantCrafting(t Target, v *ir.Item, parts []Subtype) {
	batch := t.Batch
	if batch < 1 {
		batch = 1
	}
	r := &ir.Recipe{
		EditorID:    g.ids.Unique("Craft" + v.EditorID),
		Workbench:   g.cfg.Forge,
		Output:      v.Ref,
		OutputCount: batch,
		Inputs:      []ir.RecipeInput{{Item: t.Item.Ref, Count: batch}},
	}
	for _, s := range parts {
		if !s.Ingredient.IsNull() {
			r.Inputs = append(r.Inputs, ir.RecipeInput{Item: s.Ingredient, Count: 1})
		}
		if !s.Perk.IsNull() {
			r.Conditions = append(r.Conditions, ir.Condition{Func: ir.CondHasPerk, Ref: s.Perk, Op: "==", Value: 1})
		}
	}
	g.store.CreateRecipe(r)
	g.counters.Created++
}

func (g *Generator) variantTempering(t Target, v *ir.Item, diag Diagnostics) {
	if t.TemperBench.IsNull() {
		diag.Caution("variant %s: no tempering workbench", v.EditorID)
		return
	}
	inputs := resourceInputs(t.Materials)
	if len(inputs) == 0 {
		diag.Caution("variant %s: no material resource to temper with", v.EditorID)
		return
	}
	r := &ir.Recipe{
		EditorID:    g.ids.Unique("Temper" + v.EditorID),
		Workbench:   t.TemperBench,
		Output:      v.Ref,
		OutputCount: 1,
		Inputs:      inputs,
		Conditions:  perkChain(t.Materials),
	}
	g.store.CreateRecipe(r)
	g.counters.Created++
}

func (g *Generator) text(s, context string) (string, error) {
	key, ok := strings.CutPrefix(s, "$")
	if !ok {
		return s, nil
	}
	if g.tr == nil {
		return "", fmt.Errorf("localized text %q without a translator", s)
	}
	return g.tr.T(key, context)
}
