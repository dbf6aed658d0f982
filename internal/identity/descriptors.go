package identity

// ArmorMaterials are the armor material descriptors.
var ArmorMaterials = []DescriptorSpec{
	{ID: "Hide", Tag: "ArmorMaterialHide", Resource: "Leather01"},
	{ID: "Leather", Tag: "ArmorMaterialLeather", Resource: "Leather01"},
	{ID: "Iron", Tag: "ArmorMaterialIron", Resource: "IngotIron"},
	{ID: "Steel", Tag: "ArmorMaterialSteel", Resource: "IngotSteel", Perks: []string{"SteelSmithing"}},
	{ID: "Scaled", Tag: "ArmorMaterialScaled", Resource: "IngotCorundum", Perks: []string{"AdvancedArmors"}},
	{ID: "Elven", Tag: "ArmorMaterialElven", Resource: "IngotMoonstone", Perks: []string{"ElvenSmithing"}},
	{ID: "Dwarven", Tag: "ArmorMaterialDwarven", Resource: "IngotDwarven", Perks: []string{"DwarvenSmithing"}},
	{ID: "Orcish", Tag: "ArmorMaterialOrcish", Resource: "IngotOrichalcum", Perks: []string{"OrcishSmithing"}},
	{ID: "SteelPlate", Tag: "ArmorMaterialSteelPlate", Resource: "IngotCorundum", Perks: []string{"AdvancedArmors"}},
	{ID: "Glass", Tag: "ArmorMaterialGlass", Resource: "IngotMalachite", Perks: []string{"GlassSmithing"}},
	{ID: "Ebony", Tag: "ArmorMaterialEbony", Resource: "IngotEbony", Perks: []string{"EbonySmithing"}},
	{ID: "Dragonscale", Tag: "ArmorMaterialDragonscale", Resource: "DragonScales", Perks: []string{"DragonArmor"}},
	{ID: "Dragonplate", Tag: "ArmorMaterialDragonplate", Resource: "DragonBone", Perks: []string{"DragonArmor"}},
	{ID: "Daedric", Tag: "ArmorMaterialDaedric", Resource: "IngotEbony", Perks: []string{"DaedricSmithing"}},
	{ID: "Stalhrim", Tag: "DLC2ArmorMaterialStalhrimHeavy", Resource: "DLC2OreStalhrim", Perks: []string{"EbonySmithing"}},
}

// WeaponMaterials are the weapon material descriptors. They also serve
// ammunition, which carries no material keyword and is matched by name.
var WeaponMaterials = []DescriptorSpec{
	{ID: "Wood", Tag: "WeapMaterialWood", Resource: "Firewood01"},
	{ID: "Iron", Tag: "WeapMaterialIron", Resource: "IngotIron"},
	{ID: "Steel", Tag: "WeapMaterialSteel", Resource: "IngotSteel", Perks: []string{"SteelSmithing"}},
	{ID: "Dwarven", Tag: "WeapMaterialDwarven", Resource: "IngotDwarven", Perks: []string{"DwarvenSmithing"}},
	{ID: "Elven", Tag: "WeapMaterialElven", Resource: "IngotMoonstone", Perks: []string{"ElvenSmithing"}},
	{ID: "Orcish", Tag: "WeapMaterialOrcish", Resource: "IngotOrichalcum", Perks: []string{"OrcishSmithing"}},
	{ID: "Glass", Tag: "WeapMaterialGlass", Resource: "IngotMalachite", Perks: []string{"GlassSmithing"}},
	{ID: "Ebony", Tag: "WeapMaterialEbony", Resource: "IngotEbony", Perks: []string{"EbonySmithing"}},
	{ID: "Daedric", Tag: "WeapMaterialDaedric", Resource: "IngotEbony", Perks: []string{"DaedricSmithing"}},
	{ID: "Dragonbone", Tag: "DLC1WeapMaterialDragonbone", Resource: "DragonBone", Perks: []string{"DragonArmor"}},
	{ID: "Stalhrim", Tag: "DLC2WeaponMaterialStalhrim", Resource: "DLC2OreStalhrim", Perks: []string{"EbonySmithing"}},
}

// WeaponTypes are the weapon type descriptors. Types carry a tag only.
var WeaponTypes = []DescriptorSpec{
	{ID: "Sword", Tag: "WeapTypeSword"},
	{ID: "WarAxe", Tag: "WeapTypeWarAxe"},
	{ID: "Dagger", Tag: "WeapTypeDagger"},
	{ID: "Mace", Tag: "WeapTypeMace"},
	{ID: "Greatsword", Tag: "WeapTypeGreatsword"},
	{ID: "Battleaxe", Tag: "WeapTypeBattleaxe"},
	{ID: "Warhammer", Tag: "WeapTypeWarhammer"},
	{ID: "Bow", Tag: "WeapTypeBow"},
	{ID: "Staff", Tag: "WeapTypeStaff"},
}
