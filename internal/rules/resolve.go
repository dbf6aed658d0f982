package rules

import (
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/match"
)

// Resolve returns the payload field of the highest-priority rule in set
// whose match field matches name.
//
// Every string of a rule's match field must match name individually
// (strict = whole words, otherwise substring). Rules missing either field
// are skipped. The payload is returned unparsed.
func Resolve(name string, set ir.RuleSet, matchField, payloadField string, strict bool) (ir.Value, bool) {
	q := Query{Name: name, MatchField: matchField, PayloadField: payloadField, Strict: strict}
	rule, ok := q.Find(set)
	if !ok {
		return nil, false
	}
	return rule.Field(payloadField)
}

// Query describes a rule lookup. The zero values of the optional fields
// disable the corresponding check.
type Query struct {
	// Name is matched against each rule's MatchField.
	Name string

	// MatchField defaults to "names".
	MatchField string

	// PayloadField, when set, must be present on a rule for it to be eligible.
	PayloadField string

	Strict bool

	// Category restricts rules to those whose filter admits it.
	Category ir.Category

	// Facts is the environment handed to rule predicates.
	Facts map[string]any
}

// Find walks set from last to first and returns the first matching rule.
func (q Query) Find(set ir.RuleSet) (ir.Rule, bool) {
	field := q.MatchField
	if field == "" {
		field = ir.FieldNames
	}
	for i := len(set) - 1; i >= 0; i-- {
		rule := set[i]
		if !q.eligible(rule, field) {
			continue
		}
		keys := rule.Strings(field)
		if !match.All(q.Name, keys, q.Strict) {
			continue
		}
		return rule, true
	}
	return ir.Rule{}, false
}

// FindAll returns every matching rule, highest priority first.
func (q Query) FindAll(set ir.RuleSet) []ir.Rule {
	field := q.MatchField
	if field == "" {
		field = ir.FieldNames
	}
	var out []ir.Rule
	for i := len(set) - 1; i >= 0; i-- {
		rule := set[i]
		if q.eligible(rule, field) && match.All(q.Name, rule.Strings(field), q.Strict) {
			out = append(out, rule)
		}
	}
	return out
}

// FindByID returns the highest-priority rule whose "id" field equals id,
// case-insensitively.
func (q Query) FindByID(set ir.RuleSet, id string) (ir.Rule, bool) {
	if len(strings.TrimSpace(id)) < match.MinKeyLen {
		return ir.Rule{}, false
	}
	for i := len(set) - 1; i >= 0; i-- {
		rule := set[i]
		if !q.eligible(rule, ir.FieldID) {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rule.Str(ir.FieldID)), strings.TrimSpace(id)) {
			return rule, true
		}
	}
	return ir.Rule{}, false
}

func (q Query) eligible(rule ir.Rule, matchField string) bool {
	if !rule.Has(matchField) {
		return false
	}
	if q.PayloadField != "" && !rule.Has(q.PayloadField) {
		return false
	}
	if q.Category != ir.CategoryUnknown && !rule.AppliesTo(q.Category) {
		return false
	}
	if rule.When != nil {
		ok, err := rule.When.Eval(q.Facts)
		if err != nil {
			slog.Warn("rule predicate failed", "source", rule.Source, "index", rule.Index, "when", rule.When.Source(), "error", err)
			return false
		}
		return ok
	}
	return true
}

// Suggest returns the match key in set closest to name, for "did you mean"
// diagnostics. It returns "" when nothing is close enough.
func Suggest(name string, set ir.RuleSet, matchField string) string {
	if matchField == "" {
		matchField = ir.FieldNames
	}
	target := match.Normalize(name)
	best, bestDist := "", -1
	for _, rule := range set {
		for _, key := range rule.Strings(matchField) {
			for _, word := range match.Words(name) {
				dist := levenshtein.ComputeDistance(word, match.Normalize(key))
				if dist > suggestLimit(len(key)) {
					continue
				}
				if bestDist < 0 || dist < bestDist {
					best, bestDist = key, dist
				}
			}
			if d := levenshtein.ComputeDistance(target, match.Normalize(key)); d <= suggestLimit(len(key)) && (bestDist < 0 || d < bestDist) {
				best, bestDist = key, d
			}
		}
	}
	return best
}

func suggestLimit(n int) int {
	switch {
	case n <= 3:
		return 0
	case n <= 6:
		return 1
	default:
		return 2
	}
}
