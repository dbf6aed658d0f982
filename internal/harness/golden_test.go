package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
)

func TestRunWithGolden_SteelSword(t *testing.T) {
	require.NoError(t, RunWithGolden(t, load(t, "steel_sword")))
}

func TestSnapshot(t *testing.T) {
	r := NewResult()
	r.Summary = &engine.RunSummary{
		Token:    "run-9",
		Patchers: []engine.Summary{{Domain: ir.DomainAmmo, Total: 3, Eligible: 2}},
		Created:  2,
	}
	r.Changes = recordstore.Changes{
		CreatedItems: []*ir.Item{{
			EditorID: "IronArrowFire",
			Name:     "Flaming Iron Arrow",
			Stats:    map[ir.Metric]float64{ir.MetricValue: 1, ir.MetricDamage: 12, ir.MetricGravity: 0.35},
		}},
		CreatedRecipes: []*ir.Recipe{{EditorID: "CraftIronArrowFire"}},
	}

	assert.Equal(t,
		"run run-9: 2/3 eligible, overrides 0, created 2, discarded 0\n"+
			`item created IronArrowFire "Flaming Iron Arrow" damage=12 gravity=0.35 value=1`+"\n"+
			"recipe created CraftIronArrowFire\n",
		Snapshot(r))
}
