package engine

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/forgepatch/internal/compiler"
	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/derive"
	"github.com/roach88/forgepatch/internal/edid"
	"github.com/roach88/forgepatch/internal/i18n"
	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
	"github.com/roach88/forgepatch/internal/report"
	"github.com/roach88/forgepatch/internal/rules"
)

// Context is the state shared by every item of a run. Everything except
// the record store, the editor-id allocator, the generator counters and
// the report collector is read-only once Bootstrap returns.
type Context struct {
	Settings *config.Settings
	Store    recordstore.Store
	Rules    *rules.Store
	Identity *identity.Registry
	I18n     *i18n.Resolver
	IDs      *edid.Allocator
	Derive   *derive.Generator
	Reports  *report.Collector

	// RunToken stamps everything this run writes.
	RunToken string
}

// Options are the inputs of Bootstrap.
type Options struct {
	Settings *config.Settings
	Store    recordstore.Store

	// Document replaces loading Settings.Rules when set.
	Document ir.RuleDocument

	// Tables replace loading Settings.Localization when set.
	Tables []*i18n.Table

	// Constants defaults to identity.Builtin.
	Constants []identity.Constant

	// Report receives the per-item report blocks. Nil discards them.
	Report io.Writer

	// Tokens defaults to UUIDv7Generator.
	Tokens RunTokenGenerator
}

// Bootstrap builds the run context. Every failure is fatal and is returned
// before any item is touched.
func Bootstrap(opts Options) (*Context, error) {
	settings := opts.Settings
	if settings == nil {
		def := config.Default()
		settings = &def
	}
	if opts.Store == nil {
		return nil, configError("no record store", nil)
	}

	doc := opts.Document
	if doc == nil {
		loaded, err := loadRules(settings.Rules)
		if err != nil {
			return nil, err
		}
		doc = loaded
	}

	tables := opts.Tables
	if tables == nil && settings.Localization != "" {
		loaded, err := i18n.LoadDir(settings.Localization)
		if err != nil {
			return nil, configError("failed to load localization", err)
		}
		tables = loaded
	}
	tr := i18n.NewResolver(settings.Language, tables...)
	if err := CheckLocalization(doc, tr); err != nil {
		return nil, err
	}

	constants := opts.Constants
	if constants == nil {
		constants = identity.Builtin
	}
	reg, err := identity.Build(constants, addOnGate{store: opts.Store, settings: settings})
	if err != nil {
		return nil, &Error{Code: ErrCodeIdentity, Message: "failed to resolve constants", Err: err}
	}

	w := opts.Report
	if w == nil {
		w = io.Discard
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}

	ids := edid.New(opts.Store.EditorIDs()...)
	c := &Context{
		Settings: settings,
		Store:    opts.Store,
		Rules:    rules.NewStore(doc),
		Identity: reg,
		I18n:     tr,
		IDs:      ids,
		Reports: report.NewCollector(w, report.Filter{
			NameContains:    settings.Report.Names,
			ShowNonPlayable: settings.Report.ShowNonPlayable,
			Verbose:         settings.Report.Verbose,
		}),
		RunToken: tokens.Generate(),
	}
	c.Derive = derive.New(opts.Store, ids, tr, derive.Config{
		RefundPercent:         settings.RefundPercent,
		SkipExistingBreakdown: settings.SkipExistingBreakdown,
		ReplaceTemperingItems: settings.ReplaceTemperingItems,
		Forge:                 reg.Get(identity.WorkbenchForge),
		Smelter:               reg.Get(identity.WorkbenchSmelter),
		TanningRack:           reg.Get(identity.WorkbenchTanningRack),
		TanningResources:      reg.Refs(identity.TanningResources...),
		ManagedPerks:          managedPerks(reg),
	})

	slog.Info("run context ready",
		"token", c.RunToken,
		"rules", c.Rules.Count(),
		"language", settings.Language,
		"editor_ids", len(opts.Store.EditorIDs()),
	)
	return c, nil
}

func loadRules(files []config.RuleFile) (ir.RuleDocument, error) {
	sources := make([]compiler.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, compiler.Source{Path: f.Path, Required: f.Required})
	}
	result, errs := compiler.Load(sources, compiler.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, configError("failed to load rules", errs[0])
	}
	if verrs := compiler.Validate(result.Document); len(verrs) > 0 {
		return nil, configError(fmt.Sprintf("%d invalid rules", len(verrs)), verrs[0])
	}
	slog.Info("rules loaded", "files", result.Files, "rules", result.Rules, "skipped", len(result.Warnings))
	return result.Document, nil
}

// localizedFields are the rule fields whose "$key" values are resolved
// while patching.
var localizedFields = map[string][]string{
	rules.SetRenamer:  {ir.FieldReplace},
	rules.SetSubtypes: {"name", "description"},
}

// CheckLocalization fails when a rule refers to a key that resolves in
// neither the current nor the base language, so that missing text is a
// startup error instead of a per-item one.
func CheckLocalization(doc ir.RuleDocument, tr *i18n.Resolver) error {
	var missing []string
	for _, domain := range ir.Domains {
		for set, fields := range localizedFields {
			for _, rule := range doc.Set(domain, set) {
				for _, field := range fields {
					key, ok := strings.CutPrefix(rule.Str(field), "$")
					if ok && !tr.Has(key) {
						missing = append(missing, fmt.Sprintf("%s/%s rule %d: $%s", domain, set, rule.Index, key))
					}
				}
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return configError("unresolved localization keys", fmt.Errorf("%w: %s", i18n.ErrMissingKey, strings.Join(missing, ", ")))
}

// managedPerks are the perks of every known material descriptor.
func managedPerks(reg *identity.Registry) []ir.StableRef {
	var out []ir.StableRef
	seen := make(map[ir.StableRef]bool)
	for _, specs := range [][]identity.DescriptorSpec{identity.ArmorMaterials, identity.WeaponMaterials} {
		for _, d := range reg.Descriptors(specs) {
			for _, p := range d.Perks {
				if !p.IsNull() && !seen[p] {
					seen[p] = true
					out = append(out, p)
				}
			}
		}
	}
	return out
}

// addOnGate hides the records of disabled add-ons from identity
// resolution.
type addOnGate struct {
	store    recordstore.Store
	settings *config.Settings
}

func (g addOnGate) Exists(ref ir.StableRef) bool {
	if g.settings.AddOnDisabled(ref.Container) {
		return false
	}
	return g.store.Exists(ref)
}
