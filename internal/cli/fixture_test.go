package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forgepatch/internal/engine"
)

const swordRules = `{
	"weapons": {
		"baseStats": [ { "id": "OneHanded", "damage": 4 } ],
		"types":     [ { "id": "Sword", "names": "Sword", "damage": 2 } ],
		"materials": [ { "id": "Steel", "names": "Steel", "damage": 3 } ],
		// the replacement is localized
		"renamer":   [ { "find": "Sword", "replace": "$blade" } ]
	}
}`

const swordDataset = `
items:
  - ref: WEAP:Skyrim.esm:013989
    editor_id: WeapSteelSword
    name: Steel Sword
    playable: true
    category: OneHanded
    keywords:
      - KYWD:Skyrim.esm:01E719
      - KYWD:Skyrim.esm:01E711
    stats:
      damage: 8
      speed: 1
      reach: 1
      value: 45
      weight: 10
recipes:
  - ref: COBJ:Skyrim.esm:0EAFD8
    editor_id: RecipeWeaponSteelSword
    workbench: KYWD:Skyrim.esm:088105
    output: WEAP:Skyrim.esm:013989
    output_count: 1
    inputs:
      - item: MISC:Skyrim.esm:05ACE5
        count: 2
      - item: MISC:Skyrim.esm:05ACE4
        count: 1
      - item: MISC:Skyrim.esm:0800E4
        count: 1
  - ref: COBJ:Skyrim.esm:0D0BF1
    editor_id: TemperSteelSword
    workbench: KYWD:Skyrim.esm:088108
    output: WEAP:Skyrim.esm:013989
    output_count: 1
    inputs:
      - item: MISC:Skyrim.esm:05ACE5
        count: 1
`

const swordSettings = `
language: en
database: records.db
rules:
  - path: rules.json
    required: true
localization: lang
`

// workspace is a settings file with its rules, localization and dataset.
type workspace struct {
	dir      string
	settings string
	dataset  string
	database string
	tokens   *engine.FixedGenerator
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}
	ws := &workspace{
		dir:      dir,
		settings: write("forgepatch.yaml", swordSettings),
		dataset:  write("sword.yaml", swordDataset),
		database: filepath.Join(dir, "records.db"),
		tokens:   engine.NewFixedGenerator("run-1", "run-2", "run-3"),
	}
	write("rules.json", swordRules)
	write("lang/en.json", `{"blade": "Blade"}`)
	return ws
}

func (ws *workspace) write(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, name), []byte(content), 0644))
}

// execute runs a command built by newCmd with the workspace settings.
func execute(t *testing.T, ws *workspace, format string, newCmd func(*RootOptions) *cobra.Command, args ...string) (string, error) {
	t.Helper()
	opts := &RootOptions{
		Format:    format,
		Config:    ws.settings,
		LogWriter: io.Discard,
		Tokens:    ws.tokens,
	}
	setupLogging(opts)

	buf := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// loaded is a workspace whose dataset is already in the database.
func loaded(t *testing.T) *workspace {
	t.Helper()
	ws := newWorkspace(t)
	_, err := execute(t, ws, "text", NewLoadCommand, "--base-forms", ws.dataset)
	require.NoError(t, err)
	return ws
}

func splitLines(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
