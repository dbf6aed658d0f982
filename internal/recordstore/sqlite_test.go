package recordstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/ir"
)

// createTestStore opens a fresh database in a temp dir.
func createTestStore(t *testing.T) *SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "iteration %d", i)
		s.Close()
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"records", "runs", "overrides", "created_records"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "table %q", table)
	}

	var index string
	err = s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_records_kind'").Scan(&index)
	assert.NoError(t, err, "kind index comes from the schema")
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "1"))
}

func TestSQLite_ImportLoadRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ds, err := ReadDataset(strings.NewReader(sampleDataset))
	require.NoError(t, err)

	n, err := s.Import(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Re-import replaces instead of duplicating.
	ds.Items[0].Name = "Steel Blade"
	_, err = s.Import(ctx, ds)
	require.NoError(t, err)

	m, err := s.Load(ctx, "")
	require.NoError(t, err)

	sword, ok := m.Item(steelSwordRef)
	require.True(t, ok)
	assert.Equal(t, "Steel Blade", sword.Name)
	assert.Equal(t, ir.CategoryOneHanded, sword.Category)
	assert.Equal(t, 8.0, sword.Stat(ir.MetricDamage))
	assert.True(t, sword.HasKeyword(steelKwRef))
	assert.Equal(t, ir.NullRef, sword.Template)

	assert.True(t, m.Exists(steelKwRef))
	assert.Len(t, m.Recipes(), 1)
}

func TestSQLite_CommitStampsRunToken(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	ds, err := ReadDataset(strings.NewReader(sampleDataset))
	require.NoError(t, err)
	_, err = s.Import(ctx, ds)
	require.NoError(t, err)

	m, err := s.Load(ctx, "")
	require.NoError(t, err)
	ov, err := m.OverrideItem(steelSwordRef)
	require.NoError(t, err)
	ov.SetStat(ir.MetricDamage, 9)
	m.CreateRecipe(&ir.Recipe{EditorID: "BreakdownSteelSword", Output: steelKwRef, OutputCount: 1})

	seq, err := s.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	require.NoError(t, s.Commit(ctx, m, RunInfo{Token: "run-1", Seq: seq, Eligible: 1, Total: 1}))

	overrides, created, err := s.OutputCounts(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, overrides)
	assert.Equal(t, 1, created)

	// A second run replaces the stored output but keeps the log.
	m2, err := s.Load(ctx, "")
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, m2, RunInfo{Token: "run-2", Seq: 2, Eligible: 1, Total: 1}))

	overrides, created, err = s.OutputCounts(ctx, "run-1")
	require.NoError(t, err)
	assert.Zero(t, overrides)
	assert.Zero(t, created)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, RunInfo{Token: "run-1", Seq: 1, Eligible: 1, Total: 1, Overrides: 1, Created: 1}, runs[0])
	assert.Equal(t, "run-2", runs[1].Token)
}
