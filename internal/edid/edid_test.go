package edid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique_AppendsIncreasingSuffix(t *testing.T) {
	a := New()
	assert.Equal(t, "X", a.Unique("X"))
	assert.Equal(t, "X1", a.Unique("X"))
	assert.Equal(t, "X2", a.Unique("X"))
}

func TestUnique_SkipsReservedSuffixes(t *testing.T) {
	a := New("Breakdown", "Breakdown1")
	assert.Equal(t, "Breakdown2", a.Unique("Breakdown"))
	assert.True(t, a.Taken("Breakdown2"))
}

func TestUnique_IndependentCandidates(t *testing.T) {
	a := New()
	assert.Equal(t, "A", a.Unique("A"))
	assert.Equal(t, "B", a.Unique("B"))
	assert.Equal(t, "A1", a.Unique("A"))
}
