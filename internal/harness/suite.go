package harness

import (
	"fmt"
	"path/filepath"
	"sort"
)

// SuiteResult summarizes a directory of scenarios.
type SuiteResult struct {
	Total    int               `json:"total"`
	Passed   int               `json:"passed"`
	Failed   int               `json:"failed"`
	Failures []ScenarioFailure `json:"failures,omitempty"`
}

// ScenarioFailure is a scenario that could not run or failed an assertion.
type ScenarioFailure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// RunSuite runs every *.yaml scenario in dir in name order. A scenario
// that fails to load or run counts as failed; the rest still run.
func RunSuite(dir string) (*SuiteResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	sort.Strings(paths)

	res := &SuiteResult{}
	for _, path := range paths {
		res.Total++
		if err := runOne(path); err != nil {
			res.Failed++
			res.Failures = append(res.Failures, ScenarioFailure{Path: path, Error: err.Error()})
			continue
		}
		res.Passed++
	}
	return res, nil
}

func runOne(path string) error {
	s, err := LoadScenario(path)
	if err != nil {
		return err
	}
	result, err := Run(s)
	if err != nil {
		return err
	}
	if !result.Pass {
		return fmt.Errorf("%d assertion(s) failed: %s", len(result.Errors), result.Errors[0])
	}
	return nil
}
