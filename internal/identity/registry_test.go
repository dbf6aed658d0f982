package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/ir"
)

type fakeStore map[ir.StableRef]bool

func (f fakeStore) Exists(ref ir.StableRef) bool { return f[ref] }

var (
	steelKw  = ir.Ref(skyrim, 0x06BBE6, ir.KindKeyword)
	steelBar = ir.Ref(skyrim, 0x05ACE5, ir.KindMisc)
	steelPk  = ir.Ref(skyrim, 0x0CB40D, ir.KindPerk)
	dlcKw    = ir.Ref(dragonborn, 0x02622F, ir.KindKeyword)
)

func TestBuild_ResolvesConstants(t *testing.T) {
	store := fakeStore{steelKw: true, steelBar: true}
	reg, err := Build([]Constant{
		{Name: "ArmorMaterialSteel", Ref: steelKw},
		{Name: "IngotSteel", Ref: steelBar},
	}, store)
	require.NoError(t, err)

	assert.Equal(t, steelKw, reg.Get("ArmorMaterialSteel"))
	assert.Equal(t, "IngotSteel", reg.Name(steelBar))

	ref, ok := reg.Lookup("IngotSteel")
	assert.True(t, ok)
	assert.Equal(t, steelBar, ref)
}

func TestBuild_OptionalBecomesNullRef(t *testing.T) {
	reg, err := Build([]Constant{{Name: "DLC2WeaponMaterialStalhrim", Ref: dlcKw, Optional: true}}, fakeStore{})
	require.NoError(t, err)

	assert.True(t, reg.Get("DLC2WeaponMaterialStalhrim").IsNull())
	_, ok := reg.Lookup("DLC2WeaponMaterialStalhrim")
	assert.False(t, ok)
	assert.True(t, reg.Declared("DLC2WeaponMaterialStalhrim"))
	assert.False(t, reg.Declared("NoSuchConstant"))
}

func TestBuild_RequiredUnresolvedIsFatal(t *testing.T) {
	_, err := Build([]Constant{
		{Name: "IngotSteel", Ref: steelBar},
		{Name: "ArmorMaterialSteel", Ref: steelKw},
	}, fakeStore{})
	require.Error(t, err)

	var ue *UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"ArmorMaterialSteel", "IngotSteel"}, ue.Names)
}

func TestBuild_DuplicateName(t *testing.T) {
	_, err := Build([]Constant{
		{Name: "IngotSteel", Ref: steelBar},
		{Name: "IngotSteel", Ref: steelBar},
	}, fakeStore{steelBar: true})
	assert.Error(t, err)
}

func TestDescriptors(t *testing.T) {
	store := fakeStore{steelKw: true, steelBar: true, steelPk: true}
	reg, err := Build([]Constant{
		{Name: "ArmorMaterialSteel", Ref: steelKw},
		{Name: "IngotSteel", Ref: steelBar},
		{Name: "SteelSmithing", Ref: steelPk},
		{Name: "DLC2ArmorMaterialStalhrimHeavy", Ref: dlcKw, Optional: true},
	}, store)
	require.NoError(t, err)

	ds := reg.Descriptors([]DescriptorSpec{
		{ID: "Steel", Tag: "ArmorMaterialSteel", Resource: "IngotSteel", Perks: []string{"SteelSmithing"}},
		{ID: "Stalhrim", Tag: "DLC2ArmorMaterialStalhrimHeavy", Resource: "DLC2OreStalhrim"},
		{ID: "Bone", Resource: "IngotSteel"},
	})
	require.Len(t, ds, 2)
	assert.Equal(t, ir.Descriptor{ID: "Steel", Tag: steelKw, Resource: steelBar, Perks: []ir.StableRef{steelPk}}, ds[0])
	assert.Equal(t, "Bone", ds[1].ID)
	assert.True(t, ds[1].Tag.IsNull())
}

func TestBuiltin_NamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Builtin {
		assert.False(t, seen[c.Name], "duplicate %s", c.Name)
		seen[c.Name] = true
	}
	for _, specs := range [][]DescriptorSpec{ArmorMaterials, WeaponMaterials, WeaponTypes} {
		for _, s := range specs {
			assert.True(t, seen[s.Tag], "descriptor %s tag %s not in Builtin", s.ID, s.Tag)
			if s.Resource != "" {
				assert.True(t, seen[s.Resource], "descriptor %s resource %s not in Builtin", s.ID, s.Resource)
			}
			for _, p := range s.Perks {
				assert.True(t, seen[p], "descriptor %s perk %s not in Builtin", s.ID, p)
			}
		}
	}
}
