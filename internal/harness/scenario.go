package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/forgepatch/internal/ir"
)

// DefaultRunToken is used when a scenario does not name one.
const DefaultRunToken = "scenario-run"

// Scenario is one end-to-end patch run and the checks on its outcome.
type Scenario struct {
	// Name identifies the scenario and its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Settings is the settings file; its rule and localization paths
	// resolve against its own directory.
	Settings string `yaml:"settings"`

	// Dataset is the record dataset imported before the run.
	Dataset string `yaml:"dataset"`

	// BaseForms seeds the built-in keywords, perks and resources.
	BaseForms bool `yaml:"base_forms,omitempty"`

	// AddOns also seeds the optional add-on constants.
	AddOns bool `yaml:"add_ons,omitempty"`

	RunToken string `yaml:"run_token,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one aspect of a run outcome.
type Assertion struct {
	Type string `yaml:"type"`

	// EditorID and the fields below it are used by item_state.
	EditorID string                `yaml:"editor_id,omitempty"`
	Name     *string               `yaml:"name,omitempty"`
	Stats    map[ir.Metric]float64 `yaml:"stats,omitempty"`

	// EditorIDs is used by created.
	EditorIDs []string `yaml:"editor_ids,omitempty"`

	// Text is used by report_contains.
	Text string `yaml:"text,omitempty"`

	// Counters used by summary. Nil counters are not compared.
	Eligible  *int `yaml:"eligible,omitempty"`
	Overrides *int `yaml:"overrides,omitempty"`
	Created   *int `yaml:"created,omitempty"`
	Discarded *int `yaml:"discarded,omitempty"`
}

// Assertion type constants.
const (
	AssertItemState      = "item_state"
	AssertCreated        = "created"
	AssertSummary        = "summary"
	AssertReportContains = "report_contains"
)

// LoadScenario reads a scenario file. Unknown fields are rejected and
// the settings and dataset paths are resolved against the file's
// directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	dir := filepath.Dir(path)
	s.Settings = resolve(dir, s.Settings)
	s.Dataset = resolve(dir, s.Dataset)

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Settings == "" {
		return fmt.Errorf("settings is required")
	}
	if s.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for _, p := range []string{s.Settings, s.Dataset} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", p)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertItemState:
		if a.EditorID == "" {
			return fmt.Errorf("assertions[%d]: editor_id is required for item_state", index)
		}
		if a.Name == nil && len(a.Stats) == 0 {
			return fmt.Errorf("assertions[%d]: item_state needs a name or stats", index)
		}
	case AssertCreated:
		if len(a.EditorIDs) == 0 {
			return fmt.Errorf("assertions[%d]: editor_ids list is required for created", index)
		}
	case AssertSummary:
		if a.Eligible == nil && a.Overrides == nil && a.Created == nil && a.Discarded == nil {
			return fmt.Errorf("assertions[%d]: summary needs at least one counter", index)
		}
	case AssertReportContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for report_contains", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
