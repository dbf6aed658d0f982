package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/i18n"
	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
	"github.com/roach88/forgepatch/internal/rules"
	"github.com/roach88/forgepatch/internal/stats"
	"github.com/roach88/forgepatch/internal/testutil"
)

const weapons = ir.DomainWeapons

var testSpecs = []stats.MetricSpec{
	{Metric: ir.MetricDamage, Mode: stats.Multiplicative},
	{Metric: ir.MetricSpeed, Mode: stats.Multiplicative, RangeLike: true, SafeDefault: 1},
}

func bootstrap(t *testing.T, store recordstore.Store, doc ir.RuleDocument, mutate func(*config.Settings)) (*Context, *bytes.Buffer) {
	t.Helper()
	s := config.Default()
	if mutate != nil {
		mutate(&s)
	}
	var buf bytes.Buffer
	c, err := Bootstrap(Options{
		Settings: &s,
		Store:    store,
		Document: doc,
		Tables:   []*i18n.Table{i18n.NewTable("en").Set("blade", "Blade")},
		Report:   &buf,
		Tokens:   NewFixedGenerator("run-test"),
	})
	require.NoError(t, err)
	return c, &buf
}

func weaponProfile(c *Context) *Profile {
	return &Profile{
		Domain:    weapons,
		Kind:      ir.KindWeapon,
		Materials: c.Identity.Descriptors(identity.WeaponMaterials),
		Types:     c.Identity.Descriptors(identity.WeaponTypes),
		Stats: stats.NewResolver(stats.Tables{
			Base:      c.Rules.Set(weapons, rules.SetBaseStats),
			Types:     c.Rules.Set(weapons, rules.SetTypes),
			Materials: c.Rules.Set(weapons, rules.SetMaterials),
			Modifiers: c.Rules.Set(weapons, rules.SetModifiers),
		}, testSpecs),
		TemperBench: c.Identity.Get(identity.WorkbenchGrindstone),
		Batch:       1,
	}
}

func swordRules() *testutil.Rules {
	return testutil.NewRules().
		Add(weapons, rules.SetBaseStats, testutil.Fields{"id": "OneHanded", "damage": 4}).
		Add(weapons, rules.SetTypes, testutil.Fields{"id": "Sword", "names": "Sword", "damage": 2}).
		Add(weapons, rules.SetMaterials, testutil.Fields{"id": "Steel", "names": "Steel", "damage": 3}).
		Add(weapons, rules.SetRenamer, testutil.Fields{"find": "Sword", "replace": "Blade"})
}

func run(t *testing.T, c *Context) *RunSummary {
	t.Helper()
	sum, err := New(c).Run(context.Background(), []*Profile{weaponProfile(c)})
	require.NoError(t, err)
	return sum
}

func createdRecipe(m *recordstore.Memory, editorID string) *ir.Recipe {
	for _, r := range m.Changes().CreatedRecipes {
		if r.EditorID == editorID {
			return r
		}
	}
	return nil
}

func TestRun_SteelSword(t *testing.T) {
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, testutil.SteelSwordRecipes())
	c, buf := bootstrap(t, store, swordRules().Document(), nil)

	sum := run(t, c)

	require.Len(t, sum.Patchers, 1)
	assert.Equal(t, Summary{Domain: weapons, Total: 1, Eligible: 1}, sum.Patchers[0])
	assert.Equal(t, "run-test", sum.Token)
	assert.Equal(t, 3, sum.Overrides, "item, forge recipe and tempering recipe")
	assert.Equal(t, 1, sum.Created)
	assert.Equal(t, 0, sum.Discarded)

	sword, ok := store.Item(testutil.SteelSword().Ref)
	require.True(t, ok)
	assert.Equal(t, "Steel Blade", sword.Name)
	assert.Equal(t, 9.0, sword.Stat(ir.MetricDamage))
	assert.Equal(t, 1.0, sword.Stat(ir.MetricSpeed))

	steelPerk := ir.Condition{Func: ir.CondHasPerk, Ref: testutil.Const("SteelSmithing"), Op: "==", Value: 1}
	for _, r := range testutil.SteelSwordRecipes() {
		got, ok := store.Recipe(r.Ref)
		require.True(t, ok)
		assert.Equal(t, []ir.Condition{steelPerk}, got.Conditions, r.EditorID)
	}

	bd := createdRecipe(store, "BreakdownWeapSteelSword")
	require.NotNil(t, bd)
	assert.Equal(t, testutil.Const("IngotSteel"), bd.Output)
	assert.Equal(t, 1, bd.OutputCount)
	assert.Equal(t, testutil.Const(identity.WorkbenchSmelter), bd.Workbench)

	out := buf.String()
	assert.Contains(t, out, "== Steel Sword (WeapSteelSword) ==")
	assert.Contains(t, out, `renamed "Steel Sword" to "Steel Blade"`)
	assert.Contains(t, out, "damage 8 -> 9")
}

func TestRun_SecondPassIsStable(t *testing.T) {
	rs := swordRules().Document()
	first := testutil.Seed([]*ir.Item{testutil.SteelSword()}, testutil.SteelSwordRecipes())
	c, _ := bootstrap(t, first, rs, nil)
	run(t, c)

	// Feed the first run's output back in as winning records.
	second := testutil.NewStore(false)
	for _, it := range first.Items(ir.KindWeapon) {
		second.AddItem(it)
	}
	for _, it := range first.Changes().ItemOverrides {
		second.AddItem(it)
	}
	for _, r := range first.Recipes() {
		second.AddRecipe(r)
	}
	c2, _ := bootstrap(t, second, rs, nil)
	sum := run(t, c2)

	assert.Equal(t, 0, sum.Overrides, "nothing left to change")
	assert.Equal(t, 0, sum.Created, "the breakdown recipe already exists")
	assert.Equal(t, 1, sum.Discarded)
}

func TestRun_TemperingNoOpIsDiscarded(t *testing.T) {
	recipes := testutil.SteelSwordRecipes()
	recipes[1].Conditions = []ir.Condition{{Func: ir.CondHasPerk, Ref: testutil.Const("SteelSmithing"), Op: "==", Value: 1}}
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, recipes)
	c, _ := bootstrap(t, store, swordRules().Document(), nil)

	sum := run(t, c)

	assert.Equal(t, 1, sum.Discarded)
	assert.False(t, store.HasOverride(recipes[1].Ref))
	assert.True(t, store.HasOverride(recipes[0].Ref))
}

func TestRun_NonPlayableGetsNoDerivedRecords(t *testing.T) {
	sword := testutil.SteelSword()
	sword.Playable = false
	store := testutil.Seed([]*ir.Item{sword}, testutil.SteelSwordRecipes())
	c, buf := bootstrap(t, store, swordRules().Document(), nil)

	sum := run(t, c)

	assert.Equal(t, 1, sum.Patchers[0].Eligible)
	assert.Equal(t, 0, sum.Created)
	assert.False(t, store.HasOverride(testutil.SteelSwordRecipes()[0].Ref))
	got, _ := store.Item(sword.Ref)
	assert.Equal(t, "Steel Blade", got.Name, "non-playable items are still renamed")
	assert.Empty(t, buf.String(), "non-playable reports are suppressed")
}

func TestRun_ExcludedFromEverything(t *testing.T) {
	rs := swordRules().Add(weapons, rules.SetMasquerade, testutil.Fields{"names": "Steel Sword", "forcedName": "Forced Name"})
	sword := testutil.SteelSword()
	store := testutil.Seed([]*ir.Item{sword}, testutil.SteelSwordRecipes())
	c, buf := bootstrap(t, store, rs.Document(), func(s *config.Settings) {
		s.Exclusions.All = []string{"WeapSteelSword"}
	})

	sum := run(t, c)

	assert.Equal(t, Summary{Domain: weapons, Total: 1}, sum.Patchers[0])
	assert.Equal(t, 0, sum.Overrides)
	assert.False(t, store.HasOverride(sword.Ref), "masquerade does not touch excluded items")
	got, _ := store.Item(sword.Ref)
	assert.Equal(t, "Steel Sword", got.Name)
	assert.Empty(t, buf.String())
}

func TestRun_StageExclusions(t *testing.T) {
	tests := []struct {
		name   string
		rules  *testutil.Rules
		mutate func(*config.Settings)
		check  func(t *testing.T, store *recordstore.Memory)
	}{
		{
			name:  "rule excludes breakdown",
			rules: swordRules().Add(weapons, rules.SetExclusions, testutil.Fields{"names": "Steel", "stages": "breakdown"}),
			check: func(t *testing.T, store *recordstore.Memory) {
				assert.Nil(t, createdRecipe(store, "BreakdownWeapSteelSword"))
				assert.True(t, store.HasOverride(testutil.SteelSwordRecipes()[1].Ref))
			},
		},
		{
			name:   "name substring excludes rename",
			rules:  swordRules(),
			mutate: func(s *config.Settings) { s.Exclusions.Rename = []string{"steel"} },
			check: func(t *testing.T, store *recordstore.Memory) {
				got, _ := store.Item(testutil.SteelSword().Ref)
				assert.Equal(t, "Steel Sword", got.Name)
				assert.Equal(t, 9.0, got.Stat(ir.MetricDamage))
			},
		},
		{
			name:  "rule with all stages",
			rules: swordRules().Add(weapons, rules.SetExclusions, testutil.Fields{"names": "Sword", "stages": []string{"all"}}),
			check: func(t *testing.T, store *recordstore.Memory) {
				assert.Empty(t, store.Changes().ItemOverrides)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, testutil.SteelSwordRecipes())
			c, _ := bootstrap(t, store, tt.rules.Document(), tt.mutate)
			run(t, c)
			tt.check(t, store)
		})
	}
}

func TestRun_MasqueradeBlocksRename(t *testing.T) {
	rs := swordRules().Add(weapons, rules.SetMasquerade, testutil.Fields{"names": "Steel Sword", "forcedName": "Old Sword"})
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, nil)
	c, buf := bootstrap(t, store, rs.Document(), nil)

	run(t, c)

	got, _ := store.Item(testutil.SteelSword().Ref)
	assert.Equal(t, "Old Sword", got.Name)
	assert.Contains(t, buf.String(), `name forced from "Steel Sword" to "Old Sword"`)
}

func TestRun_MasqueradeForcesCategory(t *testing.T) {
	rs := testutil.NewRules().
		Add(weapons, rules.SetBaseStats, testutil.Fields{"id": "TwoHanded", "damage": 20}).
		Add(weapons, rules.SetMasquerade, testutil.Fields{"names": "Sword", "category": "TwoHanded"})
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, nil)
	c, _ := bootstrap(t, store, rs.Document(), nil)

	run(t, c)

	got, _ := store.Item(testutil.SteelSword().Ref)
	assert.Equal(t, ir.CategoryTwoHanded, got.Category)
	assert.Equal(t, 20.0, got.Stat(ir.MetricDamage))
}

func TestRun_UniqueItemsGetNoBreakdown(t *testing.T) {
	sword := testutil.SteelSword()
	sword.AddKeyword(testutil.Const(identity.KeywordUnique))
	store := testutil.Seed([]*ir.Item{sword}, testutil.SteelSwordRecipes())
	c, _ := bootstrap(t, store, swordRules().Document(), nil)

	sum := run(t, c)

	assert.Equal(t, 0, sum.Created)
	assert.Nil(t, createdRecipe(store, "BreakdownWeapSteelSword"))
}

func TestRun_MaterialSuggestion(t *testing.T) {
	it := testutil.Item(ir.KindWeapon, 0x0A0001, "WeapStealSword", "Steal Sword", ir.CategoryOneHanded)
	store := testutil.Seed([]*ir.Item{it}, nil)
	c, buf := bootstrap(t, store, swordRules().Document(), nil)

	run(t, c)

	out := buf.String()
	assert.Contains(t, out, "material not identified")
	assert.Contains(t, out, `did you mean "Steel"?`)
}

func TestRun_MaterialByName(t *testing.T) {
	it := testutil.With(testutil.Item(ir.KindWeapon, 0x0A0002, "WeapNordSteelSword", "Nord Steel Sword", ir.CategoryOneHanded),
		map[ir.Metric]float64{ir.MetricDamage: 7})
	store := testutil.Seed([]*ir.Item{it}, nil)
	c, buf := bootstrap(t, store, swordRules().Document(), nil)

	run(t, c)

	got, _ := store.Item(it.Ref)
	assert.Equal(t, 9.0, got.Stat(ir.MetricDamage), "base 4 + type 2 + material 3")
	out := buf.String()
	assert.Contains(t, out, "material Steel resolved without its keyword")
	assert.Contains(t, out, "type Sword resolved without its keyword")
	assert.NotContains(t, out, "material not identified")
}

func TestPatchItem_RecoversPanics(t *testing.T) {
	boom := testutil.With(testutil.Item(ir.KindWeapon, 0x0A0003, "Boom", "Iron Boom", ir.CategoryOneHanded),
		map[ir.Metric]float64{ir.MetricDamage: 1})
	store := testutil.Seed([]*ir.Item{boom, testutil.SteelSword()}, nil)
	c, buf := bootstrap(t, store, swordRules().Document(), nil)
	p := weaponProfile(c)
	p.BaseKeys = func(it *ir.Item, cat ir.Category) []string {
		if it.EditorID == "Boom" {
			panic("bad base keys")
		}
		return []string{cat.String()}
	}

	sum, err := New(c).Patch(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Eligible)
	assert.Equal(t, 1, sum.Failed)
	got, _ := store.Item(testutil.SteelSword().Ref)
	assert.Equal(t, 9.0, got.Stat(ir.MetricDamage), "later items are unaffected")
	assert.Contains(t, buf.String(), "ITEM_FAILED: panic: bad base keys (item=Boom)")
}

func TestRun_StopsWhenCancelled(t *testing.T) {
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, nil)
	c, _ := bootstrap(t, store, swordRules().Document(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(c).Run(ctx, []*Profile{weaponProfile(c)})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Changes().ItemOverrides)
}

func TestEnsureOverride_IsCachedPerItem(t *testing.T) {
	sword := testutil.SteelSword()
	store := testutil.Seed([]*ir.Item{sword}, nil)
	c, _ := bootstrap(t, store, nil, nil)
	ic := newItemContext(weaponProfile(c), sword, store)

	assert.Same(t, sword, ic.Current())
	assert.False(t, ic.Modified)

	a, err := ic.EnsureOverride()
	require.NoError(t, err)
	b, err := ic.EnsureOverride()
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Same(t, a, ic.Current())
	assert.True(t, ic.Modified)
	a.Name = "Changed"
	assert.Equal(t, "Steel Sword", sword.Name, "the winning record is never written")
}

func TestBootstrap_Errors(t *testing.T) {
	t.Run("missing localization key", func(t *testing.T) {
		doc := testutil.NewRules().Add(weapons, rules.SetRenamer, testutil.Fields{"find": "Sword", "replace": "$nope"}).Document()
		s := config.Default()
		_, err := Bootstrap(Options{Settings: &s, Store: testutil.NewStore(false), Document: doc, Tables: []*i18n.Table{}})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.True(t, errors.Is(err, i18n.ErrMissingKey))
		assert.Contains(t, err.Error(), "$nope")
	})

	t.Run("required constant missing", func(t *testing.T) {
		s := config.Default()
		_, err := Bootstrap(Options{Settings: &s, Store: recordstore.NewMemory(""), Document: ir.RuleDocument{}, Tables: []*i18n.Table{}})
		require.Error(t, err)
		assert.True(t, IsIdentityError(err))
		assert.False(t, IsConfigError(err))
	})

	t.Run("no store", func(t *testing.T) {
		_, err := Bootstrap(Options{})
		assert.True(t, IsConfigError(err))
	})

	t.Run("required rule file missing", func(t *testing.T) {
		s := config.Default()
		s.Rules = []config.RuleFile{{Path: t.TempDir() + "/missing.json", Required: true}}
		_, err := Bootstrap(Options{Settings: &s, Store: testutil.NewStore(false), Tables: []*i18n.Table{}})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestBootstrap_Context(t *testing.T) {
	store := testutil.Seed([]*ir.Item{testutil.SteelSword()}, nil)
	store.AddForm(recordstore.Form{Ref: testutil.Const("DLC1WeapMaterialDragonbone"), EditorID: "DLC1WeapMaterialDragonbone"})
	store.AddForm(recordstore.Form{Ref: testutil.Const("DLC2WeaponMaterialStalhrim"), EditorID: "DLC2WeaponMaterialStalhrim"})

	c, _ := bootstrap(t, store, swordRules().Document(), func(s *config.Settings) {
		s.DisabledAddOns = []string{"Dawnguard.esm"}
	})

	assert.Equal(t, "run-test", c.RunToken)
	assert.True(t, c.Identity.Get("DLC1WeapMaterialDragonbone").IsNull(), "disabled add-on")
	assert.False(t, c.Identity.Get("DLC2WeaponMaterialStalhrim").IsNull())
	assert.True(t, c.IDs.Taken("WeapSteelSword"), "loaded editor ids are reserved")
	assert.Equal(t, 4, c.Rules.Count())
}

func TestError_Format(t *testing.T) {
	err := &Error{Code: ErrCodeDerivedRecord, Message: "breakdown aborted", Item: "WeapSteelSword", Err: errors.New("no resource")}
	assert.Equal(t, "DERIVED_RECORD_FAILED: breakdown aborted (item=WeapSteelSword): no resource", err.Error())
	assert.True(t, IsItemError(err))
	assert.False(t, IsItemError(errors.New("plain")))
}

func TestFixedGenerator(t *testing.T) {
	gen := NewFixedGenerator("a", "b")
	assert.Equal(t, "a", gen.Generate())
	assert.Equal(t, "b", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator_IsSortable(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
