package engine

import (
	"strings"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/match"
	"github.com/roach88/forgepatch/internal/rules"
)

// fieldStages is the payload of "exclusions" rules: the stages the rule
// switches off, as a list or a comma-separated string.
const fieldStages = "stages"

// excluded reports whether stage is switched off for the item, either by
// the settings' exclusion lists or by an "exclusions" rule. A rule naming
// the "all" stage excludes every stage.
func (e *Engine) excluded(ic *ItemContext, stage string) bool {
	if listed(e.ctx.Settings.Exclusions.Stage(stage), ic) {
		return true
	}
	q := rules.Query{
		Name:         ic.Name(),
		PayloadField: fieldStages,
		Strict:       true,
		Category:     ic.Category,
		Facts:        ic.Facts(),
	}
	for _, rule := range q.FindAll(e.ctx.Rules.Set(ic.Profile.Domain, rules.SetExclusions)) {
		for _, s := range rule.Strings(fieldStages) {
			for _, part := range strings.Split(s, ",") {
				part = strings.TrimSpace(part)
				if strings.EqualFold(part, stage) || strings.EqualFold(part, config.StageAll) {
					ic.Report.Verbose("%s excluded by rule %d (%s)", stage, rule.Index, rule.Source)
					return true
				}
			}
		}
	}
	return false
}

// listed matches entries against the item's editor id exactly and against
// its name by substring.
func listed(entries []string, ic *ItemContext) bool {
	it := ic.Current()
	for _, entry := range entries {
		if entry == it.EditorID || entry == ic.Winning.EditorID {
			return true
		}
		if match.Contains(it.Name, entry, false) {
			return true
		}
	}
	return false
}
