// Package patcher defines the three domain patchers. A patcher is an
// engine.Profile: the engine pipeline is shared, only the record kind,
// rule domain, descriptors and metrics differ.
package patcher

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/rules"
	"github.com/roach88/forgepatch/internal/stats"
)

// Metric specs per domain, in resolution order.
var (
	ArmorMetrics = []stats.MetricSpec{
		{Metric: ir.MetricArmor, Mode: stats.Multiplicative},
		{Metric: ir.MetricValue, Mode: stats.Multiplicative},
		{Metric: ir.MetricWeight, Mode: stats.Multiplicative},
	}

	WeaponMetrics = []stats.MetricSpec{
		{Metric: ir.MetricDamage, Mode: stats.Multiplicative},
		{Metric: ir.MetricSpeed, Mode: stats.Multiplicative, RangeLike: true, SafeDefault: 1},
		{Metric: ir.MetricReach, Mode: stats.Multiplicative, RangeLike: true, SafeDefault: 1},
		{Metric: ir.MetricCritDamage, Mode: stats.Multiplicative},
		{Metric: ir.MetricStagger, Mode: stats.Multiplicative},
		{Metric: ir.MetricValue, Mode: stats.Multiplicative},
		{Metric: ir.MetricWeight, Mode: stats.Multiplicative},
	}

	AmmoMetrics = []stats.MetricSpec{
		{Metric: ir.MetricDamage, Mode: stats.Multiplicative},
		{Metric: ir.MetricSpeed, Mode: stats.Multiplicative, RangeLike: true, SafeDefault: 3000},
		{Metric: ir.MetricRange, Mode: stats.Multiplicative, RangeLike: true, SafeDefault: 8000},
		{Metric: ir.MetricGravity, Mode: stats.Additive},
		{Metric: ir.MetricValue, Mode: stats.Multiplicative},
	}
)

func tables(c *engine.Context, d ir.Domain) stats.Tables {
	return stats.Tables{
		Base:      c.Rules.Set(d, rules.SetBaseStats),
		Types:     c.Rules.Set(d, rules.SetTypes),
		Materials: c.Rules.Set(d, rules.SetMaterials),
		Modifiers: c.Rules.Set(d, rules.SetModifiers),
	}
}

// Armor builds the armor patcher. Base stats are looked up per category
// and slot, e.g. "Heavy.head", then per category.
func Armor(c *engine.Context) (*engine.Profile, error) {
	subtypes, err := Subtypes(c, ir.DomainArmor, ArmorMetrics)
	if err != nil {
		return nil, err
	}
	return &engine.Profile{
		Domain:      ir.DomainArmor,
		Kind:        ir.KindArmor,
		Materials:   c.Identity.Descriptors(identity.ArmorMaterials),
		Stats:       stats.NewResolver(tables(c, ir.DomainArmor), ArmorMetrics),
		TemperBench: c.Identity.Get(identity.WorkbenchArmorTable),
		Subtypes:    subtypes,
		Batch:       1,
		BaseKeys:    armorBaseKeys,
	}, nil
}

func armorBaseKeys(it *ir.Item, c ir.Category) []string {
	if it.Slot == ir.SlotNone {
		return []string{c.String()}
	}
	return []string{c.String() + "." + string(it.Slot), c.String()}
}

// Weapons builds the weapon patcher. Weapons also resolve a type layer.
func Weapons(c *engine.Context) (*engine.Profile, error) {
	subtypes, err := Subtypes(c, ir.DomainWeapons, WeaponMetrics)
	if err != nil {
		return nil, err
	}
	return &engine.Profile{
		Domain:      ir.DomainWeapons,
		Kind:        ir.KindWeapon,
		Materials:   c.Identity.Descriptors(identity.WeaponMaterials),
		Types:       c.Identity.Descriptors(identity.WeaponTypes),
		Stats:       stats.NewResolver(tables(c, ir.DomainWeapons), WeaponMetrics),
		TemperBench: c.Identity.Get(identity.WorkbenchGrindstone),
		Subtypes:    subtypes,
		Batch:       1,
	}, nil
}

// Ammunition builds the ammunition patcher. Ammunition carries no
// material keyword, so materials come from name rules only; variants are
// crafted in batches.
func Ammunition(c *engine.Context) (*engine.Profile, error) {
	subtypes, err := Subtypes(c, ir.DomainAmmo, AmmoMetrics)
	if err != nil {
		return nil, err
	}
	var materials []ir.Descriptor
	for _, d := range c.Identity.Descriptors(identity.WeaponMaterials) {
		d.Tag = ir.NullRef
		materials = append(materials, d)
	}
	return &engine.Profile{
		Domain:      ir.DomainAmmo,
		Kind:        ir.KindAmmo,
		Materials:   materials,
		Stats:       stats.NewResolver(tables(c, ir.DomainAmmo), AmmoMetrics),
		TemperBench: c.Identity.Get(identity.WorkbenchGrindstone),
		Subtypes:    subtypes,
		Batch:       c.Settings.AmmoBatch,
	}, nil
}

// Profiles builds the enabled patchers in patch order.
func Profiles(c *engine.Context) ([]*engine.Profile, error) {
	features := c.Settings.Features
	builders := []struct {
		enabled bool
		build   func(*engine.Context) (*engine.Profile, error)
	}{
		{features.Armor, Armor},
		{features.Weapons, Weapons},
		{features.Ammunition, Ammunition},
	}

	var out []*engine.Profile
	for _, b := range builders {
		if !b.enabled {
			continue
		}
		p, err := b.build(c)
		if err != nil {
			return nil, err
		}
		slog.Debug("patcher ready", "domain", p.Domain, "materials", len(p.Materials), "subtypes", len(p.Subtypes))
		out = append(out, p)
	}
	return out, nil
}

// Run builds the enabled patchers and drives them through the engine.
func Run(ctx context.Context, c *engine.Context) (*engine.RunSummary, error) {
	profiles, err := Profiles(c)
	if err != nil {
		return nil, fmt.Errorf("build patchers: %w", err)
	}
	return engine.New(c).Run(ctx, profiles)
}
