package engine

import (
	"strings"

	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/rules"
)

// Payload fields of the identification rule-sets.
const (
	FieldCategory   = "category"
	FieldForcedName = "forcedName"
	FieldMaterial   = "material"
)

func equalID(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (e *Engine) query(ic *ItemContext, payload string) rules.Query {
	return rules.Query{
		Name:         ic.Name(),
		PayloadField: payload,
		Strict:       true,
		Category:     ic.Category,
		Facts:        ic.Facts(),
	}
}

// masquerade applies the highest-priority masquerade rule. A rule may
// force the category, the name, or both; either sets Overridden.
func (e *Engine) masquerade(ic *ItemContext) error {
	set := e.ctx.Rules.Set(ic.Profile.Domain, rules.SetMasquerade)
	rule, ok := e.query(ic, "").Find(set)
	if !ok {
		return nil
	}

	if v, ok := rule.Field(FieldCategory); ok {
		c, err := parseCategory(v)
		switch {
		case err != nil:
			ic.Report.Error("masquerade rule %d: %v", rule.Index, err)
		case c.Domain() != ic.Profile.Domain:
			ic.Report.Caution("masquerade rule %d: category %s is not a %s category", rule.Index, c, ic.Profile.Domain)
		case c != ic.Category:
			ov, err := ic.EnsureOverride()
			if err != nil {
				return err
			}
			ov.Category = c
			ic.Category = c
			ic.Overridden = true
			ic.Report.Info("category forced to %s", c)
		}
	}

	if ic.Category.Domain() != ic.Profile.Domain {
		return nil
	}
	if name := rule.Str(FieldForcedName); name != "" && name != ic.Name() {
		ov, err := ic.EnsureOverride()
		if err != nil {
			return err
		}
		ic.Report.Info("name forced from %q to %q", ov.Name, name)
		ov.Name = name
		ic.Overridden = true
	}
	return nil
}

func parseCategory(v ir.Value) (ir.Category, error) {
	s, err := ir.AsString(v)
	if err != nil {
		return ir.CategoryUnknown, err
	}
	return ir.ParseCategory(s)
}

// identifyMaterials resolves the item's materials: keywords first, then a
// materialOverrides rule, then a materials rule matched by name.
func (e *Engine) identifyMaterials(ic *ItemContext) {
	p := ic.Profile
	it := ic.Current()
	for _, d := range p.Materials {
		if !d.Tag.IsNull() && it.HasKeyword(d.Tag) {
			ic.Materials = append(ic.Materials, d)
		}
	}
	if len(ic.Materials) > 0 {
		ic.MaterialTagged = true
		return
	}

	if rule, ok := e.query(ic, FieldMaterial).Find(e.ctx.Rules.Set(p.Domain, rules.SetMaterialOverrides)); ok {
		id := rule.Str(FieldMaterial)
		ic.Materials = []ir.Descriptor{e.descriptor(p, id)}
		ic.Report.Verbose("material %s forced by rule %d (%s)", id, rule.Index, rule.Source)
		return
	}

	materials := e.ctx.Rules.Set(p.Domain, rules.SetMaterials)
	if rule, ok := e.query(ic, ir.FieldID).Find(materials); ok {
		id := rule.Str(ir.FieldID)
		ic.Materials = []ir.Descriptor{e.descriptor(p, id)}
		ic.Report.Verbose("material %s matched by name, rule %d (%s)", id, rule.Index, rule.Source)
		return
	}

	if len(p.Materials) == 0 && len(materials) == 0 {
		return
	}
	ic.Report.Caution("material not identified")
	if s := rules.Suggest(ic.Name(), materials, ""); s != "" {
		ic.Report.Caution("no material rule matched, did you mean %q?", s)
	}
}

// descriptor returns the known descriptor for id, or a bare descriptor
// carrying only the id when the material is defined by rules alone.
func (e *Engine) descriptor(p *Profile, id string) ir.Descriptor {
	if d, ok := p.material(id); ok {
		return d
	}
	return ir.Descriptor{ID: id}
}

// identifyType resolves the item's type by keyword, then by name.
func (e *Engine) identifyType(ic *ItemContext) {
	p := ic.Profile
	it := ic.Current()
	for _, d := range p.Types {
		if !d.Tag.IsNull() && it.HasKeyword(d.Tag) {
			ic.TypeID = d.ID
			ic.TypeTagged = true
			return
		}
	}
	if rule, ok := e.query(ic, ir.FieldID).Find(e.ctx.Rules.Set(p.Domain, rules.SetTypes)); ok {
		ic.TypeID = rule.Str(ir.FieldID)
		if _, known := p.typ(ic.TypeID); !known && len(p.Types) > 0 {
			ic.Report.Verbose("type %s is defined by rules only", ic.TypeID)
		}
	}
}

func (e *Engine) identifyUnique(ic *ItemContext) {
	tag := e.ctx.Identity.Get(identity.KeywordUnique)
	if !tag.IsNull() && ic.Current().HasKeyword(tag) {
		ic.Unique = true
		return
	}
	ic.Unique = listed(e.ctx.Settings.Exclusions.Unique, ic)
}
