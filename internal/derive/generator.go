package derive

import (
	"math"
	"slices"
	"strings"

	"github.com/roach88/forgepatch/internal/edid"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// Translator resolves localization keys.
type Translator interface {
	T(key, context string) (string, error)
}

// Diagnostics receives per-item messages. *report.Report implements it.
type Diagnostics interface {
	Info(format string, args ...any)
	Caution(format string, args ...any)
	Error(format string, args ...any)
	Verbose(format string, args ...any)
}

// Config holds the run-wide inputs of a Generator.
type Config struct {
	// RefundPercent is the share of the base quantity a breakdown returns.
	RefundPercent float64

	// SkipExistingBreakdown leaves items that already have a breakdown
	// recipe alone.
	SkipExistingBreakdown bool

	// ReplaceTemperingItems rewrites tempering inputs to one unit of each
	// resolved material's resource.
	ReplaceTemperingItems bool

	Forge       ir.StableRef
	Smelter     ir.StableRef
	TanningRack ir.StableRef

	// TanningResources are broken down at the tanning rack instead of the
	// smelter.
	TanningResources []ir.StableRef

	// ManagedPerks are the perks tempering amendment owns. Other perk
	// conditions on a tempering recipe are kept.
	ManagedPerks []ir.StableRef
}

// Counters summarize a generator's work.
type Counters struct {
	Amended   int
	Created   int
	Discarded int
}

// Target is the item a step works on.
type Target struct {
	// Item is the current state of the item (its override when one exists).
	Item     *ir.Item
	Category ir.Category

	// Materials are the resolved materials, most significant first.
	Materials []ir.Descriptor

	// TemperBench is the workbench of the item's tempering recipes.
	TemperBench ir.StableRef

	// Batch is the output count of variant crafting recipes. Zero means 1.
	Batch int

	// Hint is the item whose forge recipe guides breakdown quantities.
	// Null means Item itself.
	Hint ir.StableRef
}

// Generator builds derived records. It is shared by every item of a run;
// its only mutable state is the counters.
type Generator struct {
	store recordstore.Store
	ids   *edid.Allocator
	tr    Translator
	cfg   Config

	tanning map[ir.StableRef]bool
	managed map[ir.StableRef]bool

	counters Counters
}

// New creates a generator.
func New(store recordstore.Store, ids *edid.Allocator, tr Translator, cfg Config) *Generator {
	g := &Generator{
		store:   store,
		ids:     ids,
		tr:      tr,
		cfg:     cfg,
		tanning: make(map[ir.StableRef]bool),
		managed: make(map[ir.StableRef]bool),
	}
	for _, r := range cfg.TanningResources {
		g.tanning[r] = true
	}
	for _, p := range cfg.ManagedPerks {
		g.managed[p] = true
	}
	return g
}

// Counters returns the work done so far.
func (g *Generator) Counters() Counters {
	return g.counters
}

// AmendCrafting adds the material perk requirement to the item's forge
// recipes. A recipe that already requires a smithing perk keeps it; other
// perk conditions do not count.
func (g *Generator) AmendCrafting(t Target, diag Diagnostics) int {
	fresh := perkChain(t.Materials)
	if len(fresh) == 0 {
		return 0
	}
	amended := 0
	for _, r := range g.store.RecipesFor(t.Item.Ref) {
		if r.Workbench != g.cfg.Forge {
			continue
		}
		if g.requiresSmithing(r) {
			diag.Verbose("crafting %s keeps its perk requirement", r.EditorID)
			continue
		}
		ov, err := g.store.OverrideRecipe(r.Ref)
		if err != nil {
			diag.Error("crafting %s: %v", r.EditorID, err)
			continue
		}
		ov.Conditions = append(ov.Conditions, fresh...)
		amended++
		diag.Info("crafting %s requires %s", r.EditorID, g.perkNames(fresh))
	}
	g.counters.Amended += amended
	return amended
}

// AmendTempering rebuilds the perk conditions of the item's tempering
// recipes from its materials. A rebuilt recipe identical to the original
// is discarded instead of committed. Without a material perk to require
// the recipes are left as they are.
func (g *Generator) AmendTempering(t Target, diag Diagnostics) (amended, discarded int) {
	fresh := perkChain(t.Materials)
	inputs := resourceInputs(t.Materials)
	replaceInputs := g.cfg.ReplaceTemperingItems && len(inputs) > 0

	for _, r := range g.store.RecipesFor(t.Item.Ref) {
		if r.Workbench != t.TemperBench || t.TemperBench.IsNull() {
			continue
		}
		if len(fresh) == 0 {
			diag.Caution("tempering %s kept, no material perk to require", r.EditorID)
			continue
		}
		existed := g.store.HasOverride(r.Ref)
		ov, err := g.store.OverrideRecipe(r.Ref)
		if err != nil {
			diag.Error("tempering %s: %v", r.EditorID, err)
			continue
		}

		conditions := make([]ir.Condition, 0, len(ov.Conditions)+len(fresh))
		for _, c := range ov.Conditions {
			if c.Func == ir.CondHasPerk && g.managed[c.Ref] {
				continue
			}
			conditions = append(conditions, c)
		}
		conditions = append(conditions, fresh...)

		sameInputs := !replaceInputs || ir.SameInputSet(inputs, ov.Inputs)
		if ir.SameConditionSet(conditions, ov.Conditions) && sameInputs {
			if !existed {
				g.store.RemoveOverride(r.Ref)
			}
			discarded++
			diag.Verbose("tempering %s unchanged, override discarded", r.EditorID)
			continue
		}

		ov.Conditions = conditions
		if replaceInputs {
			ov.Inputs = slices.Clone(inputs)
		}
		amended++
		diag.Info("tempering %s rebuilt", r.EditorID)
	}
	g.counters.Amended += amended
	g.counters.Discarded += discarded
	return amended, discarded
}

func (g *Generator) requiresSmithing(r *ir.Recipe) bool {
	for _, c := range r.PerkConditions() {
		if g.managed[c.Ref] {
			return true
		}
	}
	return false
}

// perkChain returns HasPerk conditions for the distinct perks of mats,
// OR-chained: every condition but the last carries the OR flag.
func perkChain(mats []ir.Descriptor) []ir.Condition {
	var out []ir.Condition
	seen := make(map[ir.StableRef]bool)
	for _, m := range mats {
		for _, p := range m.Perks {
			if p.IsNull() || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, ir.Condition{Func: ir.CondHasPerk, Ref: p, Op: "==", Value: 1, Or: true})
		}
	}
	if len(out) > 0 {
		out[len(out)-1].Or = false
	}
	return out
}

// resourceInputs returns one unit of each distinct material resource.
func resourceInputs(mats []ir.Descriptor) []ir.RecipeInput {
	var out []ir.RecipeInput
	seen := make(map[ir.StableRef]bool)
	for _, m := range mats {
		if m.Resource.IsNull() || seen[m.Resource] {
			continue
		}
		seen[m.Resource] = true
		out = append(out, ir.RecipeInput{Item: m.Resource, Count: 1})
	}
	return out
}

func (g *Generator) perkNames(conds []ir.Condition) string {
	names := make([]string, 0, len(conds))
	for _, c := range conds {
		names = append(names, g.name(c.Ref))
	}
	return strings.Join(names, " or ")
}

// refund returns the breakdown output for base units, clamped to [1, base].
func refund(base int, percent float64) int {
	if base < 1 {
		base = 1
	}
	q := int(math.Floor(float64(base) * percent / 100))
	return min(max(q, 1), base)
}
