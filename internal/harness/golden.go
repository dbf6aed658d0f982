package harness

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/forgepatch/internal/ir"
)

// Snapshot renders the output of a run as stable text: the run counters,
// then every override and created record ordered by ref.
func Snapshot(r *Result) string {
	var b strings.Builder
	s := r.Summary
	fmt.Fprintf(&b, "run %s: %d/%d eligible, overrides %d, created %d, discarded %d\n",
		s.Token, s.Eligible(), s.Total(), s.Overrides, s.Created, s.Discarded)

	for _, it := range r.Changes.ItemOverrides {
		fmt.Fprintf(&b, "item override %s\n", itemLine(it))
	}
	for _, rc := range r.Changes.RecipeOverrides {
		fmt.Fprintf(&b, "recipe override %s\n", rc.EditorID)
	}
	for _, it := range r.Changes.CreatedItems {
		fmt.Fprintf(&b, "item created %s\n", itemLine(it))
	}
	for _, rc := range r.Changes.CreatedRecipes {
		fmt.Fprintf(&b, "recipe created %s\n", rc.EditorID)
	}
	return b.String()
}

func itemLine(it *ir.Item) string {
	metrics := make([]ir.Metric, 0, len(it.Stats))
	for m := range it.Stats {
		metrics = append(metrics, m)
	}
	slices.Sort(metrics)

	parts := []string{it.EditorID, fmt.Sprintf("%q", it.Name)}
	for _, m := range metrics {
		parts = append(parts, fmt.Sprintf("%s=%s", m, ir.Number(it.Stats[m])))
	}
	return strings.Join(parts, " ")
}

// RunWithGolden runs a scenario, fails the test on any failed assertion
// and compares its snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", s.Name, msg)
	}
	AssertGolden(t, s.Name, result)
	return nil
}

// AssertGolden compares the snapshot of an existing result against the
// golden file called name.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(Snapshot(result)))
}
