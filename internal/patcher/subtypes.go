package patcher

import (
	"fmt"
	"log/slog"

	"github.com/roach88/forgepatch/internal/derive"
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/rules"
	"github.com/roach88/forgepatch/internal/stats"
)

// Fields of a "subtypes" rule. Metric names are multiplier fields.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldTag         = "tag"
	fieldPerk        = "perk"
	fieldIngredient  = "ingredient"
)

// Subtypes reads the variant subtypes of a domain, in declaration order.
// A subtype naming an undeclared constant is a configuration error; one
// naming a constant of a missing add-on is skipped.
func Subtypes(c *engine.Context, d ir.Domain, metrics []stats.MetricSpec) ([]derive.Subtype, error) {
	var out []derive.Subtype
	seen := make(map[string]bool)

	for _, rule := range c.Rules.Set(d, rules.SetSubtypes) {
		s := derive.Subtype{
			ID:          rule.Str(ir.FieldID),
			Name:        rule.Str(fieldName),
			Description: rule.Str(fieldDescription),
			Multipliers: make(map[ir.Metric]float64),
		}
		if s.ID == "" || s.Name == "" {
			return nil, subtypeError(d, rule, "id and name are required")
		}
		if seen[s.ID] {
			return nil, subtypeError(d, rule, fmt.Sprintf("duplicate id %q", s.ID))
		}
		seen[s.ID] = true

		usable := true
		refs := []struct {
			field string
			dst   *ir.StableRef
		}{
			{fieldTag, &s.Tag},
			{fieldPerk, &s.Perk},
			{fieldIngredient, &s.Ingredient},
		}
		for _, r := range refs {
			field, dst := r.field, r.dst
			name := rule.Str(field)
			if name == "" {
				continue
			}
			if !c.Identity.Declared(name) {
				return nil, subtypeError(d, rule, fmt.Sprintf("%s %q is not a known constant", field, name))
			}
			ref, ok := c.Identity.Lookup(name)
			if !ok {
				usable = false
				break
			}
			*dst = ref
		}
		if !usable {
			slog.Info("subtype skipped, add-on not loaded", "domain", d, "id", s.ID)
			continue
		}

		for _, spec := range metrics {
			v, ok := rule.Field(string(spec.Metric))
			if !ok {
				continue
			}
			m, err := ir.AsNumber(v)
			if err != nil {
				return nil, subtypeError(d, rule, fmt.Sprintf("%s: %v", spec.Metric, err))
			}
			s.Multipliers[spec.Metric] = m
		}
		out = append(out, s)
	}
	return out, nil
}

func subtypeError(d ir.Domain, rule ir.Rule, msg string) error {
	return &engine.Error{
		Code:    engine.ErrCodeConfig,
		Message: fmt.Sprintf("%s subtype rule %d (%s): %s", d, rule.Index, rule.Source, msg),
	}
}
