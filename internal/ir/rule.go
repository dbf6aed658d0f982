package ir

import (
	"strings"
)

// Common rule field names.
const (
	FieldNames   = "names"
	FieldID      = "id"
	FieldFilter  = "filter"
	FieldWhen    = "when"
	FieldFind    = "find"
	FieldReplace = "replace"
	FieldOptions = "options"
	FieldSkipIf  = "skipIf"
)

// Predicate is a compiled rule guard evaluated against item facts.
type Predicate interface {
	Eval(facts map[string]any) (bool, error)
	Source() string
}

// Rule is one entry of a rule list: a mapping of typed fields.
//
// Index is the declaration position across every loaded file, so a rule
// appended by a later file always has a higher Index than built-in rules.
type Rule struct {
	Index  int
	Source string
	Fields map[string]Value
	When   Predicate
}

// Field returns the value of a field.
func (r Rule) Field(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Has reports whether the rule defines field.
func (r Rule) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Str returns a string field, or "" when the field is missing or not a string.
func (r Rule) Str(name string) string {
	v, ok := r.Fields[name]
	if !ok {
		return ""
	}
	s, err := AsString(v)
	if err != nil {
		return ""
	}
	return s
}

// Strings returns a string or list field as a slice.
func (r Rule) Strings(name string) []string {
	v, ok := r.Fields[name]
	if !ok {
		return nil
	}
	list, err := AsStrings(v)
	if err != nil {
		return nil
	}
	return list
}

// AppliesTo reports whether the rule's filter admits category c.
// A rule without a filter applies to every category.
func (r Rule) AppliesTo(c Category) bool {
	filter := r.Str(FieldFilter)
	if strings.TrimSpace(filter) == "" {
		return true
	}
	for _, part := range strings.Split(filter, ",") {
		if strings.EqualFold(strings.TrimSpace(part), c.String()) {
			return true
		}
	}
	return false
}

// RuleSet is an ordered list of rules (declaration order).
type RuleSet []Rule

// RuleDocument maps domain → rule-set name → rules.
type RuleDocument map[Domain]map[string]RuleSet

// Set returns the named rule list of a domain (nil when absent).
func (d RuleDocument) Set(domain Domain, name string) RuleSet {
	if d == nil {
		return nil
	}
	return d[domain][name]
}

// Append adds rules to a named set, preserving order.
func (d RuleDocument) Append(domain Domain, name string, rules ...Rule) {
	if d[domain] == nil {
		d[domain] = make(map[string]RuleSet)
	}
	d[domain][name] = append(d[domain][name], rules...)
}
