package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/derive"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
	"github.com/roach88/forgepatch/internal/rename"
	"github.com/roach88/forgepatch/internal/report"
	"github.com/roach88/forgepatch/internal/rules"
	"github.com/roach88/forgepatch/internal/stats"
)

// Engine drives items through the patching pipeline.
//
// Per item: masquerade, exclusion check, identification, rename, stats,
// derived records, report flush. Items are processed one at a time in
// record order; a failing item is reported and never stops the run.
type Engine struct {
	ctx *Context
}

// New creates an engine over a bootstrapped context.
func New(ctx *Context) *Engine {
	return &Engine{ctx: ctx}
}

// Context returns the run context.
func (e *Engine) Context() *Context {
	return e.ctx
}

// Summary counts one patcher's items.
type Summary struct {
	Domain   ir.Domain
	Total    int
	Eligible int
	Failed   int
}

// RunSummary is the outcome of a run.
type RunSummary struct {
	Token    string
	Patchers []Summary

	Overrides int
	Created   int
	Discarded int

	Reports report.Summary
}

// Total is the item count over every patcher.
func (s *RunSummary) Total() int {
	n := 0
	for _, p := range s.Patchers {
		n += p.Total
	}
	return n
}

// Eligible is the eligible item count over every patcher.
func (s *RunSummary) Eligible() int {
	n := 0
	for _, p := range s.Patchers {
		n += p.Eligible
	}
	return n
}

// Run patches every profile in order. It returns early only when ctx is
// cancelled; per-item failures are in the reports.
func (e *Engine) Run(ctx context.Context, profiles []*Profile) (*RunSummary, error) {
	sum := &RunSummary{Token: e.ctx.RunToken}
	for _, p := range profiles {
		ps, err := e.Patch(ctx, p)
		sum.Patchers = append(sum.Patchers, ps)
		if err != nil {
			return sum, err
		}
	}

	counters := e.ctx.Derive.Counters()
	sum.Created = counters.Created
	sum.Discarded = counters.Discarded
	if m, ok := e.ctx.Store.(interface{ Stats() recordstore.WriteStats }); ok {
		st := m.Stats()
		sum.Overrides = st.Overrides - st.Removed
	}
	sum.Reports = e.ctx.Reports.Summary()

	slog.Info("run complete",
		"token", sum.Token,
		"total", sum.Total(),
		"eligible", sum.Eligible(),
		"overrides", sum.Overrides,
		"created", sum.Created,
		"discarded", sum.Discarded,
	)
	return sum, nil
}

// Patch drives every winning record of the profile's kind.
func (e *Engine) Patch(ctx context.Context, p *Profile) (Summary, error) {
	sum := Summary{Domain: p.Domain}
	items := e.ctx.Store.Items(p.Kind)
	sum.Total = len(items)
	slog.Info("patcher starting", "domain", p.Domain, "items", len(items))

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		eligible, err := e.PatchItem(p, it)
		if eligible {
			sum.Eligible++
		}
		if err != nil {
			sum.Failed++
			slog.Debug("item failed", "domain", p.Domain, "item", it.EditorID, "error", err)
		}
	}

	slog.Info("patcher done", "domain", p.Domain, "total", sum.Total, "eligible", sum.Eligible, "failed", sum.Failed)
	return sum, nil
}

// PatchItem runs the pipeline for one item. It reports whether the item
// was eligible. A returned error is always an *Error with ErrCodeItem; it
// has already been written to the item's report, including recovered
// panics.
func (e *Engine) PatchItem(p *Profile, winning *ir.Item) (eligible bool, err error) {
	ic := newItemContext(p, winning, e.ctx.Store)

	defer func() {
		if r := recover(); r != nil {
			slog.Debug("item panicked", "item", winning.EditorID, "panic", r, "stack", string(debug.Stack()))
			err = &Error{Code: ErrCodeItem, Message: fmt.Sprintf("panic: %v", r), Item: winning.EditorID}
		}
		if err != nil {
			ic.Report.Error("%v", err)
		}
		if eligible || err != nil {
			if ferr := e.ctx.Reports.Flush(ic.Report); ferr != nil {
				slog.Warn("failed to write report", "item", winning.EditorID, "error", ferr)
			}
		}
	}()

	// Checked against the winning record: an excluded item is never written.
	if e.excluded(ic, config.StageAll) {
		return false, nil
	}
	if err := e.masquerade(ic); err != nil {
		return false, itemError(winning, "masquerade", err)
	}
	if ic.Category.Domain() != p.Domain {
		return false, nil
	}
	eligible = true

	e.identifyMaterials(ic)
	if len(p.Types) > 0 || len(e.ctx.Rules.Set(p.Domain, rules.SetTypes)) > 0 {
		e.identifyType(ic)
	}
	e.identifyUnique(ic)

	features := e.ctx.Settings.Features
	if features.Rename && !e.excluded(ic, config.StageRename) {
		if err := e.rename(ic); err != nil {
			return eligible, itemError(winning, "rename", err)
		}
	}
	if features.Stats && !e.excluded(ic, config.StageStats) {
		if err := e.stats(ic); err != nil {
			return eligible, itemError(winning, "stats", err)
		}
	}
	if ic.NonPlayable {
		ic.Report.Verbose("non-playable, no derived records")
		return eligible, nil
	}
	e.derived(ic)
	return eligible, nil
}

func itemError(it *ir.Item, stage string, err error) *Error {
	return &Error{Code: ErrCodeItem, Message: stage + " failed", Item: it.EditorID, Err: err}
}

func (e *Engine) rename(ic *ItemContext) error {
	before := ic.Name()
	after, err := rename.Rename(before, e.ctx.Rules.Set(ic.Profile.Domain, rules.SetRenamer), ic.Category, rename.Options{
		Overridden: ic.Overridden,
		Translator: e.ctx.I18n,
		Trace: func(rule ir.Rule, from, to string) {
			ic.Report.Verbose("rename rule %d (%s): %q -> %q", rule.Index, rule.Source, from, to)
		},
	})
	if err != nil {
		// A missing key is caught at startup; anything else keeps the name.
		ic.Report.Error("rename: %v", err)
		return nil
	}
	if after == before {
		return nil
	}
	ov, err := ic.EnsureOverride()
	if err != nil {
		return err
	}
	ov.Name = after
	ic.Report.Info("renamed %q to %q", before, after)
	return nil
}

func (e *Engine) stats(ic *ItemContext) error {
	p := ic.Profile
	if p.Stats == nil {
		return nil
	}
	it := ic.Current()
	in := stats.Input{
		Name:           it.Name,
		Category:       ic.Category,
		TypeID:         ic.TypeID,
		TypeTagged:     ic.TypeTagged,
		MaterialID:     ic.MaterialID(),
		MaterialTagged: ic.MaterialTagged,
		Current:        it.Stats,
		Facts:          ic.Facts(),
	}
	if p.BaseKeys != nil {
		in.BaseKeys = p.BaseKeys(it, ic.Category)
	}

	results := p.Stats.Resolve(in, ic.Report)
	if !stats.AnyChanged(results) {
		return nil
	}
	ov, err := ic.EnsureOverride()
	if err != nil {
		return err
	}
	stats.Apply(ov, results)
	for _, r := range results {
		if r.Changed {
			ic.Report.Info("%s %s -> %s", r.Metric, ir.Number(r.Current), ir.Number(r.Final))
		}
	}
	return nil
}

// derived runs the derived-record steps. Each step is independent: one
// failing never prevents the others.
func (e *Engine) derived(ic *ItemContext) {
	p := ic.Profile
	features := e.ctx.Settings.Features
	gen := e.ctx.Derive
	t := derive.Target{
		Item:        ic.Current(),
		Category:    ic.Category,
		Materials:   ic.Materials,
		TemperBench: p.TemperBench,
		Batch:       p.Batch,
	}

	e.step(ic, "crafting", features.Crafting, func() error {
		gen.AmendCrafting(t, ic.Report)
		return nil
	})
	e.step(ic, "tempering", features.Tempering, func() error {
		gen.AmendTempering(t, ic.Report)
		return nil
	})
	e.step(ic, "breakdown", features.Breakdown, func() error {
		if ic.Unique {
			ic.Report.Verbose("unique, no breakdown")
			return nil
		}
		if e.excluded(ic, config.StageBreakdown) {
			return nil
		}
		gen.Breakdown(t, ic.Report)
		return nil
	})
	e.step(ic, "variants", features.Variants && len(p.Subtypes) > 0, func() error {
		if e.excluded(ic, config.StageVariants) {
			return nil
		}
		_, err := gen.Variants(t, p.Subtypes, ic.Report)
		return err
	})
}

// step runs one derived-record step, containing its errors and panics.
func (e *Engine) step(ic *ItemContext, name string, enabled bool, fn func() error) {
	if !enabled {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err != nil {
		derr := &Error{Code: ErrCodeDerivedRecord, Message: name + " aborted", Item: ic.Winning.EditorID, Err: err}
		ic.Report.Error("%v", derr)
	}
}
