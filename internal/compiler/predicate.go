package compiler

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprPredicate is a rule guard backed by github.com/expr-lang/expr.
//
// Facts handed to Eval are the item's variables, e.g.
// `category == "Heavy" && value > 500`. Unknown variables evaluate to nil.
type ExprPredicate struct {
	source  string
	program *exprvm.Program
}

// CompilePredicate compiles a boolean expression.
func CompilePredicate(source string) (*ExprPredicate, error) {
	if source == "" {
		return nil, fmt.Errorf("expression must not be empty")
	}
	program, err := exprlang.Compile(source,
		exprlang.AllowUndefinedVariables(),
		exprlang.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", source, err)
	}
	return &ExprPredicate{source: source, program: program}, nil
}

// Eval runs the predicate against facts.
func (p *ExprPredicate) Eval(facts map[string]any) (bool, error) {
	env := facts
	if env == nil {
		env = map[string]any{}
	}
	out, err := exprlang.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p.source, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q: result is %T, not bool", p.source, out)
	}
	return b, nil
}

// Source returns the expression text.
func (p *ExprPredicate) Source() string {
	return p.source
}
