// Package harness runs end-to-end patch scenarios.
//
// A scenario names a settings file and a dataset, runs every enabled
// patcher over an in-memory record store and checks the outcome against
// its assertions.
//
// # Scenario Format
//
// Scenarios are YAML files. Paths are relative to the scenario file:
//
//	name: steel_sword
//	description: "A steel sword is renamed and rebalanced"
//	settings: forgepatch.yaml
//	dataset: sword.yaml
//	base_forms: true
//	run_token: run-1
//	assertions:
//	  - type: item_state
//	    editor_id: WeapSteelSword
//	    name: Steel Blade
//	    stats: { damage: 9 }
//	  - type: created
//	    editor_ids: [BreakdownWeapSteelSword]
//	  - type: summary
//	    overrides: 3
//	  - type: report_contains
//	    text: renamed
//
// # Assertion Types
//
//   - item_state: the final name and stats of an armor, weapon or ammunition record
//   - created: records with these editor ids were created by the run
//   - summary: run counters, only the ones given are compared
//   - report_contains: the rendered report contains a substring
//
// # Deterministic Runs
//
// Each scenario runs on a fresh store with a fixed run token, so the same
// scenario always produces the same snapshot. RunWithGolden compares that
// snapshot against testdata/golden/{name}.golden.
package harness
