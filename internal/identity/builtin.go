package identity

import "github.com/roach88/forgepatch/internal/ir"

// Containers declaring the built-in constants.
const (
	skyrim     = "Skyrim.esm"
	dawnguard  = "Dawnguard.esm"
	dragonborn = "Dragonborn.esm"
)

// Workbench and marker keyword names used by the patchers.
const (
	WorkbenchForge       = "CraftingSmithingForge"
	WorkbenchGrindstone  = "CraftingSmithingSharpeningWheel"
	WorkbenchArmorTable  = "CraftingSmithingArmorTable"
	WorkbenchSmelter     = "CraftingSmelter"
	WorkbenchTanningRack = "CraftingTanningRack"
	KeywordUnique        = "DaedricArtifact"
)

// TanningResources are broken down at the tanning rack.
var TanningResources = []string{"Leather01", "LeatherStrips"}

// Builtin is the identity table of the base game and its optional add-ons.
var Builtin = []Constant{
	{Name: "CraftingSmithingForge", Ref: ir.Ref(skyrim, 0x088105, ir.KindKeyword)},
	{Name: "CraftingSmithingSharpeningWheel", Ref: ir.Ref(skyrim, 0x088108, ir.KindKeyword)},
	{Name: "CraftingSmithingArmorTable", Ref: ir.Ref(skyrim, 0x0ADB78, ir.KindKeyword)},
	{Name: "CraftingSmelter", Ref: ir.Ref(skyrim, 0x0A5CCE, ir.KindKeyword)},
	{Name: "CraftingTanningRack", Ref: ir.Ref(skyrim, 0x07866A, ir.KindKeyword)},
	{Name: "ArmorHeavy", Ref: ir.Ref(skyrim, 0x06BBD2, ir.KindKeyword)},
	{Name: "ArmorLight", Ref: ir.Ref(skyrim, 0x06BBD3, ir.KindKeyword)},
	{Name: "ArmorClothing", Ref: ir.Ref(skyrim, 0x08F95B, ir.KindKeyword)},
	{Name: "ArmorCuirass", Ref: ir.Ref(skyrim, 0x06C0EC, ir.KindKeyword)},
	{Name: "ArmorHelmet", Ref: ir.Ref(skyrim, 0x06C0EE, ir.KindKeyword)},
	{Name: "ArmorGauntlets", Ref: ir.Ref(skyrim, 0x06C0EF, ir.KindKeyword)},
	{Name: "ArmorBoots", Ref: ir.Ref(skyrim, 0x06C0ED, ir.KindKeyword)},
	{Name: "ArmorShield", Ref: ir.Ref(skyrim, 0x0965B2, ir.KindKeyword)},
	{Name: "DaedricArtifact", Ref: ir.Ref(skyrim, 0x0A8668, ir.KindKeyword)},
	{Name: "VendorItemArrow", Ref: ir.Ref(skyrim, 0x0917E7, ir.KindKeyword)},
	{Name: "ArmorMaterialHide", Ref: ir.Ref(skyrim, 0x06BBDD, ir.KindKeyword)},
	{Name: "ArmorMaterialLeather", Ref: ir.Ref(skyrim, 0x06BBDB, ir.KindKeyword)},
	{Name: "ArmorMaterialIron", Ref: ir.Ref(skyrim, 0x06BBE3, ir.KindKeyword)},
	{Name: "ArmorMaterialSteel", Ref: ir.Ref(skyrim, 0x06BBE6, ir.KindKeyword)},
	{Name: "ArmorMaterialScaled", Ref: ir.Ref(skyrim, 0x06BBDE, ir.KindKeyword)},
	{Name: "ArmorMaterialElven", Ref: ir.Ref(skyrim, 0x06BBD9, ir.KindKeyword)},
	{Name: "ArmorMaterialDwarven", Ref: ir.Ref(skyrim, 0x06BBD7, ir.KindKeyword)},
	{Name: "ArmorMaterialOrcish", Ref: ir.Ref(skyrim, 0x06BBE5, ir.KindKeyword)},
	{Name: "ArmorMaterialSteelPlate", Ref: ir.Ref(skyrim, 0x06BBE7, ir.KindKeyword)},
	{Name: "ArmorMaterialGlass", Ref: ir.Ref(skyrim, 0x06BBDC, ir.KindKeyword)},
	{Name: "ArmorMaterialEbony", Ref: ir.Ref(skyrim, 0x06BBD8, ir.KindKeyword)},
	{Name: "ArmorMaterialDragonscale", Ref: ir.Ref(skyrim, 0x06BBD6, ir.KindKeyword)},
	{Name: "ArmorMaterialDragonplate", Ref: ir.Ref(skyrim, 0x06BBD5, ir.KindKeyword)},
	{Name: "ArmorMaterialDaedric", Ref: ir.Ref(skyrim, 0x06BBD4, ir.KindKeyword)},
	{Name: "WeapMaterialWood", Ref: ir.Ref(skyrim, 0x01E717, ir.KindKeyword)},
	{Name: "WeapMaterialIron", Ref: ir.Ref(skyrim, 0x01E718, ir.KindKeyword)},
	{Name: "WeapMaterialSteel", Ref: ir.Ref(skyrim, 0x01E719, ir.KindKeyword)},
	{Name: "WeapMaterialDwarven", Ref: ir.Ref(skyrim, 0x01E71A, ir.KindKeyword)},
	{Name: "WeapMaterialElven", Ref: ir.Ref(skyrim, 0x01E71B, ir.KindKeyword)},
	{Name: "WeapMaterialGlass", Ref: ir.Ref(skyrim, 0x01E71C, ir.KindKeyword)},
	{Name: "WeapMaterialDaedric", Ref: ir.Ref(skyrim, 0x01E71D, ir.KindKeyword)},
	{Name: "WeapMaterialOrcish", Ref: ir.Ref(skyrim, 0x01E71E, ir.KindKeyword)},
	{Name: "WeapMaterialEbony", Ref: ir.Ref(skyrim, 0x01E71F, ir.KindKeyword)},
	{Name: "WeapTypeSword", Ref: ir.Ref(skyrim, 0x01E711, ir.KindKeyword)},
	{Name: "WeapTypeWarAxe", Ref: ir.Ref(skyrim, 0x01E712, ir.KindKeyword)},
	{Name: "WeapTypeDagger", Ref: ir.Ref(skyrim, 0x01E713, ir.KindKeyword)},
	{Name: "WeapTypeMace", Ref: ir.Ref(skyrim, 0x01E714, ir.KindKeyword)},
	{Name: "WeapTypeBow", Ref: ir.Ref(skyrim, 0x01E715, ir.KindKeyword)},
	{Name: "WeapTypeStaff", Ref: ir.Ref(skyrim, 0x01E716, ir.KindKeyword)},
	{Name: "WeapTypeWarhammer", Ref: ir.Ref(skyrim, 0x06D930, ir.KindKeyword)},
	{Name: "WeapTypeGreatsword", Ref: ir.Ref(skyrim, 0x06D931, ir.KindKeyword)},
	{Name: "WeapTypeBattleaxe", Ref: ir.Ref(skyrim, 0x06D932, ir.KindKeyword)},
	{Name: "SteelSmithing", Ref: ir.Ref(skyrim, 0x0CB40D, ir.KindPerk)},
	{Name: "DwarvenSmithing", Ref: ir.Ref(skyrim, 0x0CB40E, ir.KindPerk)},
	{Name: "ElvenSmithing", Ref: ir.Ref(skyrim, 0x0CB40F, ir.KindPerk)},
	{Name: "OrcishSmithing", Ref: ir.Ref(skyrim, 0x0CB410, ir.KindPerk)},
	{Name: "GlassSmithing", Ref: ir.Ref(skyrim, 0x0CB411, ir.KindPerk)},
	{Name: "EbonySmithing", Ref: ir.Ref(skyrim, 0x0CB412, ir.KindPerk)},
	{Name: "DaedricSmithing", Ref: ir.Ref(skyrim, 0x0CB413, ir.KindPerk)},
	{Name: "AdvancedArmors", Ref: ir.Ref(skyrim, 0x0CB414, ir.KindPerk)},
	{Name: "DragonArmor", Ref: ir.Ref(skyrim, 0x052190, ir.KindPerk)},
	{Name: "ArcaneBlacksmith", Ref: ir.Ref(skyrim, 0x05218E, ir.KindPerk)},
	{Name: "Firewood01", Ref: ir.Ref(skyrim, 0x06F993, ir.KindMisc)},
	{Name: "LeatherStrips", Ref: ir.Ref(skyrim, 0x0800E4, ir.KindMisc)},
	{Name: "Leather01", Ref: ir.Ref(skyrim, 0x0DB5D2, ir.KindMisc)},
	{Name: "IngotIron", Ref: ir.Ref(skyrim, 0x05ACE4, ir.KindMisc)},
	{Name: "IngotSteel", Ref: ir.Ref(skyrim, 0x05ACE5, ir.KindMisc)},
	{Name: "IngotCorundum", Ref: ir.Ref(skyrim, 0x05AD93, ir.KindMisc)},
	{Name: "IngotOrichalcum", Ref: ir.Ref(skyrim, 0x05AD99, ir.KindMisc)},
	{Name: "IngotEbony", Ref: ir.Ref(skyrim, 0x05AD9D, ir.KindMisc)},
	{Name: "IngotMoonstone", Ref: ir.Ref(skyrim, 0x05AD9F, ir.KindMisc)},
	{Name: "IngotMalachite", Ref: ir.Ref(skyrim, 0x05ADA1, ir.KindMisc)},
	{Name: "IngotDwarven", Ref: ir.Ref(skyrim, 0x0DB8A2, ir.KindMisc)},
	{Name: "DragonScales", Ref: ir.Ref(skyrim, 0x03ADA3, ir.KindMisc)},
	{Name: "DragonBone", Ref: ir.Ref(skyrim, 0x03ADA4, ir.KindMisc)},
	{Name: "DaedraHeart", Ref: ir.Ref(skyrim, 0x03AD5B, ir.KindIngredient)},
	{Name: "FireSalts", Ref: ir.Ref(skyrim, 0x03AD5E, ir.KindIngredient)},
	{Name: "FrostSalts", Ref: ir.Ref(skyrim, 0x03AD5F, ir.KindIngredient)},
	{Name: "VoidSalts", Ref: ir.Ref(skyrim, 0x03AD60, ir.KindIngredient)},
	{Name: "Deathbell", Ref: ir.Ref(skyrim, 0x0516C8, ir.KindIngredient)},
	{Name: "DLC1WeapMaterialDragonbone", Ref: ir.Ref(dawnguard, 0x019822, ir.KindKeyword), Optional: true},
	{Name: "DLC1CrossbowWorkbenchBolts", Ref: ir.Ref(dawnguard, 0x0195B5, ir.KindKeyword), Optional: true},
	{Name: "DLC1EnhancedCrossbowsPerk", Ref: ir.Ref(dawnguard, 0x00D4C8, ir.KindPerk), Optional: true},
	{Name: "DLC2WeaponMaterialStalhrim", Ref: ir.Ref(dragonborn, 0x02622F, ir.KindKeyword), Optional: true},
	{Name: "DLC2ArmorMaterialStalhrimHeavy", Ref: ir.Ref(dragonborn, 0x024101, ir.KindKeyword), Optional: true},
	{Name: "DLC2OreStalhrim", Ref: ir.Ref(dragonborn, 0x02B06B, ir.KindMisc), Optional: true},
}
