package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains_StrictRequiresWholeWord(t *testing.T) {
	assert.False(t, Contains("Irony Helmet", "Iron", true), "strict must not match inside a word")
	assert.True(t, Contains("Irony Helmet", "Iron", false), "loose matches substrings")
	assert.True(t, Contains("Iron Helmet", "Iron", true))
	assert.True(t, Contains("Helmet of Iron", "Iron", true))
}

func TestContains_CaseInsensitive(t *testing.T) {
	assert.True(t, Contains("DAEDRIC BOW", "daedric", true))
	assert.True(t, Contains("daedric bow", "Daedric", false))
}

func TestContains_PunctuationIsBoundary(t *testing.T) {
	assert.True(t, Contains("Steel-Plate Boots", "Steel", true))
	assert.True(t, Contains("Boots (Steel)", "Steel", true))
}

func TestContains_ApostropheIsBoundary(t *testing.T) {
	assert.True(t, Contains("Iron's Blade", "Iron", true))
	assert.True(t, Contains("Hunter's Bow", "Hunter's", true))
	assert.True(t, ContainsAllWords("Jarl's Iron Helmet", "iron helmet"))
}

func TestContains_MultiWordKey(t *testing.T) {
	assert.True(t, Contains("Steel Plate Armor", "Steel Plate", true))
	assert.False(t, Contains("Steel Plated Armor", "Steel Plate", true))
}

func TestContains_ShortKeysNeverMatch(t *testing.T) {
	for _, key := range []string{"", " ", "a", "I"} {
		assert.False(t, Contains("I am a sword", key, true), "key %q", key)
		assert.False(t, Contains("I am a sword", key, false), "key %q", key)
	}
}

func TestContains_NormalizesAccents(t *testing.T) {
	composed := "\u00C9p\u00E9e d'acier"
	decomposed := "E\u0301pe\u0301e"
	assert.True(t, Contains(composed, decomposed, true))
}

func TestAll_EveryKeyMustMatch(t *testing.T) {
	assert.True(t, All("Ancient Nord Sword", []string{"Nord", "Ancient"}, true))
	assert.False(t, All("Nord Hero Sword", []string{"Nord", "Ancient"}, true))
	assert.False(t, All("Nord Hero Sword", nil, true))
}

func TestAny(t *testing.T) {
	assert.True(t, Any("Glass Dagger", []string{"Ebony", "Glass"}, true))
	assert.False(t, Any("Glass Dagger", []string{"Ebony", "Elven"}, true))
}

func TestIndexWord_SkipsEmbeddedOccurrences(t *testing.T) {
	assert.Equal(t, 6, IndexWord("irony iron", "iron"))
	assert.Equal(t, -1, IndexWord("irony", "iron"))
	assert.Equal(t, -1, IndexWord("iron", ""))
}

func TestContainsAllWords(t *testing.T) {
	assert.True(t, ContainsAllWords("Reinforced Steel Armor", "steel armor"))
	assert.False(t, ContainsAllWords("Steel Armor", "Reinforced Steel"))
	assert.False(t, ContainsAllWords("Steel Armor", "  "))
}

func TestContainsAnyWord(t *testing.T) {
	assert.True(t, ContainsAnyWord("Ebony Mail", []string{"Mail", "Cuirass"}))
	assert.False(t, ContainsAnyWord("Ebony Mailbox", []string{"Mail"}))
}
