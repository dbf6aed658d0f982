package patcher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/i18n"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
	"github.com/roach88/forgepatch/internal/rules"
	"github.com/roach88/forgepatch/internal/testutil"
)

func bootstrap(t *testing.T, store recordstore.Store, b *testutil.Rules, mutate func(*config.Settings)) *engine.Context {
	t.Helper()
	s := config.Default()
	if mutate != nil {
		mutate(&s)
	}
	c, err := engine.Bootstrap(engine.Options{
		Settings: &s,
		Store:    store,
		Document: b.Document(),
		Tables:   []*i18n.Table{i18n.NewTable("en").Set("fire", "Flaming")},
		Tokens:   engine.NewFixedGenerator("run-patcher"),
	})
	require.NoError(t, err)
	return c
}

func arrowRules() *testutil.Rules {
	return testutil.NewRules().
		Add(ir.DomainAmmo, rules.SetMaterials, testutil.Fields{"id": "Iron", "names": "Iron"}).
		Add(ir.DomainAmmo, rules.SetSubtypes, testutil.Fields{
			"id": "Fire", "name": "$fire", "ingredient": "FireSalts", "damage": 1.5,
		}).
		Add(ir.DomainAmmo, rules.SetSubtypes, testutil.Fields{
			"id": "Frost", "name": "Frost", "ingredient": "FrostSalts", "damage": 1.25,
		})
}

func TestProfiles_FeatureToggles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
		want   []ir.Domain
	}{
		{"all", nil, []ir.Domain{ir.DomainArmor, ir.DomainWeapons, ir.DomainAmmo}},
		{"no ammunition", func(s *config.Settings) { s.Features.Ammunition = false }, []ir.Domain{ir.DomainArmor, ir.DomainWeapons}},
		{"armor only", func(s *config.Settings) {
			s.Features.Weapons = false
			s.Features.Ammunition = false
		}, []ir.Domain{ir.DomainArmor}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bootstrap(t, testutil.NewStore(false), testutil.NewRules(), tt.mutate)
			profiles, err := Profiles(c)
			require.NoError(t, err)

			var got []ir.Domain
			for _, p := range profiles {
				got = append(got, p.Domain)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmmunition_MatchesMaterialsByName(t *testing.T) {
	c := bootstrap(t, testutil.NewStore(false), testutil.NewRules(), func(s *config.Settings) { s.AmmoBatch = 12 })
	p, err := Ammunition(c)
	require.NoError(t, err)

	assert.Equal(t, 12, p.Batch)
	assert.Empty(t, p.Types)
	require.NotEmpty(t, p.Materials)
	for _, m := range p.Materials {
		assert.True(t, m.Tag.IsNull(), m.ID)
	}
}

func TestWeapons_Profile(t *testing.T) {
	c := bootstrap(t, testutil.NewStore(false), testutil.NewRules(), nil)
	p, err := Weapons(c)
	require.NoError(t, err)

	assert.Equal(t, ir.KindWeapon, p.Kind)
	assert.Equal(t, testutil.Const("CraftingSmithingSharpeningWheel"), p.TemperBench)
	assert.NotEmpty(t, p.Types)
	assert.Equal(t, WeaponMetrics, p.Stats.Specs())
}

func TestArmorBaseKeys(t *testing.T) {
	helmet := testutil.SteelHelmet()
	assert.Equal(t, []string{"Heavy.head", "Heavy"}, armorBaseKeys(helmet, ir.CategoryHeavy))

	helmet.Slot = ir.SlotNone
	assert.Equal(t, []string{"Heavy"}, armorBaseKeys(helmet, ir.CategoryHeavy))
}

func TestSubtypes(t *testing.T) {
	b := arrowRules().Add(ir.DomainAmmo, rules.SetSubtypes, testutil.Fields{
		"id": "Dawn", "name": "Dawn", "perk": "DLC1EnhancedCrossbowsPerk",
	})
	c := bootstrap(t, testutil.NewStore(false), b, nil)

	got, err := Subtypes(c, ir.DomainAmmo, AmmoMetrics)
	require.NoError(t, err)
	require.Len(t, got, 2, "subtype of a missing add-on is skipped")

	assert.Equal(t, "Fire", got[0].ID)
	assert.Equal(t, "$fire", got[0].Name)
	assert.Equal(t, testutil.Const("FireSalts"), got[0].Ingredient)
	assert.True(t, got[0].Perk.IsNull())
	assert.Equal(t, map[ir.Metric]float64{ir.MetricDamage: 1.5}, got[0].Multipliers)
	assert.Equal(t, "Frost", got[1].ID)
}

func TestSubtypes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields testutil.Fields
		want   string
	}{
		{"missing name", testutil.Fields{"id": "Shock"}, "id and name are required"},
		{"duplicate id", testutil.Fields{"id": "Fire", "name": "Other"}, `duplicate id "Fire"`},
		{"unknown constant", testutil.Fields{"id": "Shock", "name": "Shock", "ingredient": "Lightning"}, `ingredient "Lightning" is not a known constant`},
		{"bad multiplier", testutil.Fields{"id": "Shock", "name": "Shock", "damage": "lots"}, "damage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := bootstrap(t, testutil.NewStore(false), arrowRules().Add(ir.DomainAmmo, rules.SetSubtypes, tt.fields), nil)

			_, err := Subtypes(c, ir.DomainAmmo, AmmoMetrics)
			require.Error(t, err)
			assert.True(t, engine.IsConfigError(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_ArrowVariants(t *testing.T) {
	arrow := testutil.IronArrow()
	store := testutil.Seed([]*ir.Item{arrow}, nil)
	c := bootstrap(t, store, arrowRules(), func(s *config.Settings) {
		s.Features.Armor = false
		s.Features.Weapons = false
	})

	sum, err := Run(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, sum.Patchers, 1)
	assert.Equal(t, engine.Summary{Domain: ir.DomainAmmo, Total: 1, Eligible: 1}, sum.Patchers[0])

	names := make(map[string]*ir.Item)
	for _, it := range store.Changes().CreatedItems {
		names[it.EditorID] = it
	}
	require.Len(t, names, 4, "one variant per ordered pair of subtypes")

	fire := names["IronArrowFire"]
	require.NotNil(t, fire, "self-pair suffix appears once")
	assert.Equal(t, "Flaming Iron Arrow", fire.Name)
	assert.Equal(t, arrow.Ref, fire.Template)
	assert.InDelta(t, 12.0, fire.Stat(ir.MetricDamage), 1e-9)

	mixed := names["IronArrowFireFrost"]
	require.NotNil(t, mixed)
	assert.Equal(t, "Flaming Frost Iron Arrow", mixed.Name)
	assert.InDelta(t, 15.0, mixed.Stat(ir.MetricDamage), 1e-9)

	var craft *ir.Recipe
	for _, r := range store.Changes().CreatedRecipes {
		if r.EditorID == "CraftIronArrowFire" {
			craft = r
		}
	}
	require.NotNil(t, craft)
	assert.Equal(t, 10, craft.OutputCount)
	assert.Equal(t, []ir.RecipeInput{
		{Item: arrow.Ref, Count: 10},
		{Item: testutil.Const("FireSalts"), Count: 1},
	}, craft.Inputs)
}

func TestRun_HelmetBaseStatsBySlot(t *testing.T) {
	helmet := testutil.SteelHelmet()
	store := testutil.Seed([]*ir.Item{helmet}, nil)
	b := testutil.NewRules().
		Add(ir.DomainArmor, rules.SetBaseStats, testutil.Fields{"id": "Heavy", "armor": 30}).
		Add(ir.DomainArmor, rules.SetBaseStats, testutil.Fields{"id": "Heavy.head", "armor": 15}).
		Add(ir.DomainArmor, rules.SetMaterials, testutil.Fields{"id": "Steel", "names": "Steel", "armor": 5})
	c := bootstrap(t, store, b, func(s *config.Settings) {
		s.Features.Weapons = false
		s.Features.Ammunition = false
	})

	_, err := Run(context.Background(), c)
	require.NoError(t, err)

	got, ok := store.Item(helmet.Ref)
	require.True(t, ok)
	assert.Equal(t, 20.0, got.Stat(ir.MetricArmor))
	assert.Equal(t, 125.0, got.Stat(ir.MetricValue), "no value rule")
}

func TestRun_BadSubtypeFailsBeforePatching(t *testing.T) {
	store := testutil.Seed([]*ir.Item{testutil.IronArrow()}, nil)
	b := arrowRules().Add(ir.DomainAmmo, rules.SetSubtypes, testutil.Fields{"id": "Fire", "name": "Again"})
	c := bootstrap(t, store, b, nil)

	_, err := Run(context.Background(), c)
	require.Error(t, err)
	assert.True(t, engine.IsConfigError(err))
	assert.Empty(t, store.Changes().ItemOverrides)
}
