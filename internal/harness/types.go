package harness

import (
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	Summary *engine.RunSummary `json:"summary"`

	// Report is the rendered per-item report.
	Report string `json:"report"`

	// Items is the final state of every armor, weapon and ammunition
	// record, created ones included.
	Items []*ir.Item `json:"items"`

	Changes recordstore.Changes `json:"-"`

	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Summary: &engine.RunSummary{},
		Errors:  []string{},
	}
}

// AddError records a failed check and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Item returns the final state of the item with the given editor id.
func (r *Result) Item(editorID string) (*ir.Item, bool) {
	for _, it := range r.Items {
		if it.EditorID == editorID {
			return it, true
		}
	}
	return nil, false
}

// CreatedEditorIDs lists the editor ids of the created records, items
// first, each group ordered by ref.
func (r *Result) CreatedEditorIDs() []string {
	var out []string
	for _, it := range r.Changes.CreatedItems {
		out = append(out, it.EditorID)
	}
	for _, rc := range r.Changes.CreatedRecipes {
		out = append(out, rc.EditorID)
	}
	return out
}
