package report

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	r := New("Steel Sword", "WeaponSteelSword", true)
	r.Verbose("material Steel via keyword")
	r.Error("no breakdown resource")
	r.Caution("speed kept at 0 (custom value)")
	r.Info("damage 7 -> 9")
	r.Info("renamed from Steel Blade")
	return r
}

func TestReport_BucketsKeepInsertionOrder(t *testing.T) {
	r := sampleReport()
	assert.Equal(t, []string{"damage 7 -> 9", "renamed from Steel Blade"}, r.Entries(SeverityInfo))
	assert.Equal(t, 1, r.Count(SeverityError))
	assert.False(t, r.Empty())
	assert.True(t, New("x", "y", true).Empty())
}

func TestCollector_RenderGolden(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, Filter{Verbose: true})
	require.NoError(t, c.Flush(sampleReport()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "report_verbose", buf.Bytes())
}

func TestCollector_HidesVerboseByDefault(t *testing.T) {
	c := NewCollector(&bytes.Buffer{}, Filter{})
	out := c.Render(sampleReport())
	assert.NotContains(t, out, "verbose:")
	assert.Contains(t, out, "error:")
}

func TestCollector_SuppressesNonPlayable(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, Filter{})
	r := New("Skin Naked", "SkinNaked", false)
	r.Info("renamed")
	require.NoError(t, c.Flush(r))
	assert.Empty(t, buf.String())

	c = NewCollector(&buf, Filter{ShowNonPlayable: true})
	require.NoError(t, c.Flush(r))
	assert.Contains(t, buf.String(), "Skin Naked")
}

func TestCollector_NameFilter(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, Filter{NameContains: []string{"dagger", "bow"}})

	sword := New("Iron Sword", "IronSword", true)
	sword.Info("x")
	bow := New("Elven Bow", "ElvenBow", true)
	bow.Info("x")

	require.NoError(t, c.Flush(sword))
	require.NoError(t, c.Flush(bow))

	assert.NotContains(t, buf.String(), "Iron Sword")
	assert.Contains(t, buf.String(), "Elven Bow")

	s := c.Summary()
	assert.Equal(t, 2, s.Items)
	assert.Equal(t, 1, s.Printed)
}

func TestCollector_SkipsEmptyReports(t *testing.T) {
	var buf bytes.Buffer
	c := NewCollector(&buf, Filter{})
	require.NoError(t, c.Flush(New("Iron Sword", "IronSword", true)))
	assert.Empty(t, buf.String())
	assert.Equal(t, Summary{Items: 1}, c.Summary())
}

func TestCollector_SummaryCountsFilteredItems(t *testing.T) {
	c := NewCollector(&bytes.Buffer{}, Filter{NameContains: []string{"nothing"}})
	require.NoError(t, c.Flush(sampleReport()))
	assert.Equal(t, Summary{Items: 1, Cautions: 1, Errors: 1}, c.Summary())
}
