package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuite(t *testing.T) {
	res, err := RunSuite("testdata/scenarios")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Passed, "failures: %v", res.Failures)
	assert.Zero(t, res.Failed)
}

func TestRunSuite_CountsFailures(t *testing.T) {
	dir := t.TempDir()
	fixtures, err := filepath.Abs("testdata/fixtures")
	require.NoError(t, err)

	broken := "name: broken\ndescription: d\n"
	failing := "name: failing\ndescription: d\n" +
		"settings: " + filepath.Join(fixtures, "forgepatch.yaml") + "\n" +
		"dataset: " + filepath.Join(fixtures, "sword.yaml") + "\n" +
		"base_forms: true\n" +
		"assertions:\n  - type: summary\n    created: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_broken.yaml"), []byte(broken), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_failing.yaml"), []byte(failing), 0644))

	res, err := RunSuite(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Failed)
	require.Len(t, res.Failures, 2)
	assert.Contains(t, res.Failures[0].Error, "settings is required")
	assert.Contains(t, res.Failures[1].Error, "summary: expected created 7, got 1")
}
