package testutil

import (
	"fmt"

	"github.com/roach88/forgepatch/internal/compiler"
	"github.com/roach88/forgepatch/internal/ir"
)

// Fields is a rule as plain values.
type Fields map[string]any

// Rules builds a rule document in declaration order, so rules added later
// take precedence, like rules of a later file.
type Rules struct {
	doc  ir.RuleDocument
	next int
}

// NewRules creates an empty builder.
func NewRules() *Rules {
	return &Rules{doc: ir.RuleDocument{}}
}

// Add appends a rule to a set. A "when" field is compiled into the rule's
// predicate. It panics on values a rule file could not hold.
func (b *Rules) Add(domain ir.Domain, set string, fields Fields) *Rules {
	rule := ir.Rule{Index: b.next, Source: "fixture", Fields: make(map[string]ir.Value, len(fields))}
	for name, raw := range fields {
		v, err := ir.ValueFromAny(raw)
		if err != nil {
			panic(fmt.Sprintf("testutil: rule field %s: %v", name, err))
		}
		rule.Fields[name] = v
		if name == ir.FieldWhen {
			p, err := compiler.CompilePredicate(raw.(string))
			if err != nil {
				panic(fmt.Sprintf("testutil: %v", err))
			}
			rule.When = p
		}
	}
	b.next++
	b.doc.Append(domain, set, rule)
	return b
}

// Document returns the built document.
func (b *Rules) Document() ir.RuleDocument {
	return b.doc
}
