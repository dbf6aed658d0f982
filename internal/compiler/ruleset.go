package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/roach88/forgepatch/internal/ir"
)

// Result is the output of compiling one rule-set file.
type Result struct {
	Document ir.RuleDocument
	// NextIndex is the declaration index the next file should start from.
	NextIndex int
	Rules     int
}

// Compile parses, schema-checks and converts one rule-set file.
// firstIndex is the declaration index assigned to the file's first rule;
// indices keep increasing across files so later files win ties.
func Compile(file string, data []byte, firstIndex int) (*Result, error) {
	ctx, schema, err := documentSchema()
	if err != nil {
		return nil, err
	}

	expr, err := cuejson.Extract(file, StripComments(data))
	if err != nil {
		return nil, &CompileError{File: file, Field: "json", Message: err.Error()}
	}

	val := ctx.BuildExpr(expr)
	if err := val.Err(); err != nil {
		return nil, formatCUEError(file, err)
	}

	unified := schema.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(file, err)
	}

	result := &Result{Document: ir.RuleDocument{}, NextIndex: firstIndex}
	for _, domain := range ir.Domains {
		dv := unified.LookupPath(cue.MakePath(cue.Str(string(domain))))
		if !dv.Exists() {
			continue
		}
		sets, err := dv.Fields()
		if err != nil {
			return nil, formatCUEError(file, err)
		}
		for sets.Next() {
			setName := sets.Label()
			list, err := sets.Value().List()
			if err != nil {
				return nil, formatCUEError(file, err)
			}
			for list.Next() {
				rule, err := compileRule(file, result.NextIndex, list.Value())
				if err != nil {
					return nil, err
				}
				result.Document.Append(domain, setName, rule)
				result.NextIndex++
				result.Rules++
			}
		}
	}
	return result, nil
}

// compileRule converts one rule object. Every field becomes an ir.Value;
// "when" is additionally compiled into a predicate.
func compileRule(file string, index int, v cue.Value) (ir.Rule, error) {
	rule := ir.Rule{Index: index, Source: file, Fields: make(map[string]ir.Value)}

	fields, err := v.Fields()
	if err != nil {
		return rule, formatCUEError(file, err)
	}
	for fields.Next() {
		name := fields.Label()
		value, err := convertValue(fields.Value())
		if err != nil {
			return rule, &CompileError{File: file, Field: name, Message: err.Error(), Pos: fields.Value().Pos()}
		}
		rule.Fields[name] = value

		if name == ir.FieldWhen {
			src, err := ir.AsString(value)
			if err != nil {
				return rule, &CompileError{File: file, Field: name, Message: err.Error(), Pos: fields.Value().Pos()}
			}
			pred, err := CompilePredicate(src)
			if err != nil {
				return rule, &CompileError{File: file, Field: name, Message: err.Error(), Pos: fields.Value().Pos()}
			}
			rule.When = pred
		}
	}
	return rule, nil
}

func convertValue(v cue.Value) (ir.Value, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, err
		}
		return ir.String(s), nil
	case cue.IntKind, cue.FloatKind, cue.NumberKind:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return ir.Number(f), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		return ir.Bool(b), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, err
		}
		var list ir.StringList
		for iter.Next() {
			s, err := iter.Value().String()
			if err != nil {
				return nil, err
			}
			list = append(list, s)
		}
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.Kind())
	}
}
