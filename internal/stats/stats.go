package stats

import (
	"fmt"
	"math"

	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/rules"
)

const (
	// NearZero is the magnitude below which a current value is treated as
	// deliberately zeroed.
	NearZero = 0.0001

	// CustomFactor is how many times the composed value a current value
	// must exceed to be treated as hand-authored.
	CustomFactor = 10.0

	changeTolerance = 1e-9
)

// Mode is how the modifier layer combines with the composed value.
type Mode int

const (
	Multiplicative Mode = iota
	Additive
)

// MetricSpec declares how one metric is composed and validated.
type MetricSpec struct {
	Metric ir.Metric
	Mode   Mode

	// RangeLike metrics must be positive. A non-positive result is
	// replaced by SafeDefault.
	RangeLike   bool
	SafeDefault float64
}

// Tables are the rule layers of one domain.
type Tables struct {
	Base      ir.RuleSet
	Types     ir.RuleSet
	Materials ir.RuleSet
	Modifiers ir.RuleSet
}

// Input describes the item being resolved.
type Input struct {
	Name     string
	Category ir.Category

	// BaseKeys are tried in order as ids in the base table. Empty means
	// the category name.
	BaseKeys []string

	TypeID         string
	TypeTagged     bool
	MaterialID     string
	MaterialTagged bool

	Current map[ir.Metric]float64
	Facts   map[string]any
}

// Diagnostics receives per-item messages. *report.Report implements it.
type Diagnostics interface {
	Caution(format string, args ...any)
	Error(format string, args ...any)
	Verbose(format string, args ...any)
}

// Source tells where a contribution came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceID      Source = "id"
	SourceName    Source = "name"
)

// Contribution is one layer's share of a metric.
type Contribution struct {
	Value  float64
	Source Source
	Rule   int
}

func (c Contribution) found() bool {
	return c.Source != SourceDefault
}

// Result is the resolution of one metric.
type Result struct {
	Metric  ir.Metric
	Current float64

	Base     Contribution
	Type     Contribution
	Material Contribution
	Modifier Contribution

	Composed float64
	Final    float64

	// Matched is false when no base, type or material rule supplied the
	// metric; the current value is kept then.
	Matched bool
	Exempt  bool
	Invalid bool
	Changed bool
}

// Resolver composes metrics for one domain. Read-only after construction.
type Resolver struct {
	tables Tables
	specs  []MetricSpec
}

// NewResolver creates a resolver.
func NewResolver(tables Tables, specs []MetricSpec) *Resolver {
	return &Resolver{tables: tables, specs: specs}
}

// Specs returns the metric specs in resolution order.
func (r *Resolver) Specs() []MetricSpec {
	return r.specs
}

// Resolve composes every metric of in.
func (r *Resolver) Resolve(in Input, diag Diagnostics) []Result {
	l := lookup{in: in, diag: diag, cautioned: make(map[string]bool)}
	out := make([]Result, 0, len(r.specs))
	for _, spec := range r.specs {
		out = append(out, r.resolveMetric(l, spec))
	}
	return out
}

func (r *Resolver) resolveMetric(l lookup, spec MetricSpec) Result {
	field := string(spec.Metric)
	res := Result{Metric: spec.Metric, Current: l.in.Current[spec.Metric]}

	res.Base = l.base(r.tables.Base, field)
	res.Type = l.layer("type", r.tables.Types, field, l.in.TypeID, l.in.TypeTagged)
	res.Material = l.layer("material", r.tables.Materials, field, l.in.MaterialID, l.in.MaterialTagged)
	res.Modifier = l.modifier(r.tables.Modifiers, field, spec.Mode)

	res.Matched = res.Base.found() || res.Type.found() || res.Material.found()
	res.Composed = res.Base.Value + res.Type.Value + res.Material.Value
	switch spec.Mode {
	case Multiplicative:
		res.Final = res.Composed * res.Modifier.Value
	case Additive:
		res.Final = res.Composed + res.Modifier.Value
	default:
		panic(fmt.Sprintf("stats: unhandled mode %d", spec.Mode))
	}

	if !res.Matched {
		l.diag.Verbose("%s: no rule, kept %s", spec.Metric, format(res.Current))
		res.Final = res.Current
		return res
	}

	switch {
	case spec.RangeLike:
		if res.Final <= 0 {
			l.diag.Error("%s: composed value %s is not positive, using %s", spec.Metric, format(res.Final), format(spec.SafeDefault))
			res.Final = spec.SafeDefault
			res.Invalid = true
		}
	case isCustom(res.Current, res.Final):
		l.diag.Caution("%s: kept custom value %s (composed %s)", spec.Metric, format(res.Current), format(res.Final))
		res.Final = res.Current
		res.Exempt = true
	}

	res.Changed = math.Abs(res.Final-res.Current) > changeTolerance
	if res.Changed {
		l.diag.Verbose("%s: %s = (%s + %s + %s) %s %s", spec.Metric, format(res.Final),
			format(res.Base.Value), format(res.Type.Value), format(res.Material.Value),
			modeSymbol(spec.Mode), format(res.Modifier.Value))
	}
	return res
}

// isCustom reports whether current looks hand-authored relative to the
// expected value.
func isCustom(current, expected float64) bool {
	if math.Abs(current) < NearZero {
		return true
	}
	return expected > 0 && current > CustomFactor*expected
}

// Apply writes the changed results into stats and reports whether
// anything was written.
func Apply(it *ir.Item, results []Result) bool {
	changed := false
	for _, res := range results {
		if res.Changed {
			it.SetStat(res.Metric, res.Final)
			changed = true
		}
	}
	return changed
}

// AnyChanged reports whether applying results would modify the item.
func AnyChanged(results []Result) bool {
	for _, res := range results {
		if res.Changed {
			return true
		}
	}
	return false
}

type lookup struct {
	in        Input
	diag      Diagnostics
	cautioned map[string]bool
}

func (l lookup) base(set ir.RuleSet, field string) Contribution {
	keys := l.in.BaseKeys
	if len(keys) == 0 {
		keys = []string{l.in.Category.String()}
	}
	q := rules.Query{PayloadField: field, Facts: l.in.Facts}
	for _, key := range keys {
		if rule, ok := q.FindByID(set, key); ok {
			return l.number(rule, field, SourceID, 0)
		}
	}
	return Contribution{Source: SourceDefault}
}

// layer resolves a type or material contribution by id first, then by the
// item name.
func (l lookup) layer(name string, set ir.RuleSet, field, id string, tagged bool) Contribution {
	q := rules.Query{Name: l.in.Name, PayloadField: field, Strict: true, Category: l.in.Category, Facts: l.in.Facts}
	if id != "" {
		if rule, ok := q.FindByID(set, id); ok {
			if !tagged && !l.cautioned[name] {
				l.cautioned[name] = true
				l.diag.Caution("%s %s resolved without its keyword", name, id)
			}
			return l.number(rule, field, SourceID, 0)
		}
	}
	if rule, ok := q.Find(set); ok {
		return l.number(rule, field, SourceName, 0)
	}
	return Contribution{Source: SourceDefault}
}

func (l lookup) modifier(set ir.RuleSet, field string, mode Mode) Contribution {
	def := 1.0
	if mode == Additive {
		def = 0
	}
	q := rules.Query{Name: l.in.Name, PayloadField: field, Strict: true, Category: l.in.Category, Facts: l.in.Facts}
	if rule, ok := q.Find(set); ok {
		return l.number(rule, field, SourceName, def)
	}
	return Contribution{Value: def, Source: SourceDefault}
}

// number coerces a rule's payload. A payload of the wrong type is an
// error diagnostic and yields the default.
func (l lookup) number(rule ir.Rule, field string, src Source, def float64) Contribution {
	v, _ := rule.Field(field)
	n, err := ir.AsNumber(v)
	if err != nil {
		l.diag.Error("rule %d (%s): %s: %v", rule.Index, rule.Source, field, err)
		return Contribution{Value: def, Source: SourceDefault}
	}
	return Contribution{Value: n, Source: src, Rule: rule.Index}
}

func modeSymbol(m Mode) string {
	if m == Additive {
		return "+"
	}
	return "*"
}

func format(v float64) string {
	return ir.Number(v).String()
}
