package engine

import (
	"github.com/roach88/forgepatch/internal/derive"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/stats"
)

// Profile is what distinguishes one patcher from another: the record kind
// it drives, its rule domain, its descriptors and metrics. Profiles are
// built once per run by the patcher package.
type Profile struct {
	Domain ir.Domain
	Kind   ir.RecordKind

	Materials []ir.Descriptor
	Types     []ir.Descriptor

	Stats *stats.Resolver

	// TemperBench is the workbench of this domain's tempering recipes.
	TemperBench ir.StableRef

	// Subtypes drive variant generation. Empty disables it.
	Subtypes []derive.Subtype

	// Batch is the output count of variant crafting recipes.
	Batch int

	// BaseKeys returns the base-stat ids to try for an item, most specific
	// first. Nil means the category name only.
	BaseKeys func(it *ir.Item, c ir.Category) []string
}

func (p *Profile) material(id string) (ir.Descriptor, bool) {
	return findDescriptor(p.Materials, id)
}

func (p *Profile) typ(id string) (ir.Descriptor, bool) {
	return findDescriptor(p.Types, id)
}

func findDescriptor(ds []ir.Descriptor, id string) (ir.Descriptor, bool) {
	for _, d := range ds {
		if equalID(d.ID, id) {
			return d, true
		}
	}
	return ir.Descriptor{}, false
}
