package harness

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/forgepatch/internal/ir"
)

// statTolerance absorbs float noise from multiplicative stat composition.
const statTolerance = 1e-6

// AssertionError is a failed assertion with its expected and actual outcome.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion and returns one message per
// failure. All assertions are evaluated even after a failure.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluate(r, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertItemState:
		return assertItemState(r, a)
	case AssertCreated:
		return assertCreated(r, a)
	case AssertSummary:
		return assertSummary(r, a)
	case AssertReportContains:
		return assertReportContains(r, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertItemState(r *Result, a Assertion) error {
	it, ok := r.Item(a.EditorID)
	if !ok {
		return &AssertionError{
			Type:     AssertItemState,
			Expected: fmt.Sprintf("item %s", a.EditorID),
			Actual:   "no such item",
		}
	}

	if a.Name != nil && it.Name != *a.Name {
		return &AssertionError{
			Type:     AssertItemState,
			Expected: fmt.Sprintf("%s named %q", a.EditorID, *a.Name),
			Actual:   fmt.Sprintf("%q", it.Name),
		}
	}

	metrics := make([]ir.Metric, 0, len(a.Stats))
	for m := range a.Stats {
		metrics = append(metrics, m)
	}
	slices.Sort(metrics)
	for _, m := range metrics {
		want := a.Stats[m]
		got, set := it.Stats[m]
		if !set || math.Abs(got-want) > statTolerance {
			actual := "unset"
			if set {
				actual = ir.Number(got).String()
			}
			return &AssertionError{
				Type:     AssertItemState,
				Expected: fmt.Sprintf("%s %s %s", a.EditorID, m, ir.Number(want)),
				Actual:   actual,
			}
		}
	}
	return nil
}

func assertCreated(r *Result, a Assertion) error {
	created := r.CreatedEditorIDs()
	var missing []string
	for _, id := range a.EditorIDs {
		if !slices.Contains(created, id) {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(created)
	return &AssertionError{
		Type:     AssertCreated,
		Expected: strings.Join(missing, ", "),
		Actual:   fmt.Sprintf("[%s]", strings.Join(created, ", ")),
	}
}

func assertSummary(r *Result, a Assertion) error {
	s := r.Summary
	checks := []struct {
		name string
		want *int
		got  int
	}{
		{"eligible", a.Eligible, s.Eligible()},
		{"overrides", a.Overrides, s.Overrides},
		{"created", a.Created, s.Created},
		{"discarded", a.Discarded, s.Discarded},
	}
	for _, c := range checks {
		if c.want != nil && *c.want != c.got {
			return &AssertionError{
				Type:     AssertSummary,
				Expected: fmt.Sprintf("%s %d", c.name, *c.want),
				Actual:   fmt.Sprintf("%d", c.got),
			}
		}
	}
	return nil
}

func assertReportContains(r *Result, a Assertion) error {
	if strings.Contains(r.Report, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertReportContains,
		Expected: fmt.Sprintf("report containing %q", a.Text),
		Actual:   fmt.Sprintf("%d byte report", len(r.Report)),
	}
}
