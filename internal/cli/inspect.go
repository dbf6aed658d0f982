package cli

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/patcher"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions

	// Dump prints the patched record with go-spew.
	Dump bool
}

// InspectResult is the outcome of patching one item in isolation.
type InspectResult struct {
	EditorID string    `json:"editor_id"`
	Domain   string    `json:"domain"`
	Before   string    `json:"name_before"`
	After    string    `json:"name_after"`
	Eligible bool      `json:"eligible"`
	Failed   string    `json:"failed,omitempty"`
	Stats    []StatRow `json:"stats"`
	Created  []string  `json:"created,omitempty"`
}

// StatRow is one metric before and after patching.
type StatRow struct {
	Metric string  `json:"metric"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

var dumper = spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect <editor-id>",
		Short: "Patch one item without committing and show every step",
		Long: `Resolve a single item through the full pipeline with the verbose report
enabled, then print its name and stats before and after. Nothing is
written to the database.

Example:
  forgepatch inspect WeapSteelSword
  forgepatch inspect ArmorSteelHelmetA --dump`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "dump the patched record")

	return cmd
}

func runInspect(opts *InspectOptions, editorID string, cmd *cobra.Command) error {
	out := formatter(opts.RootOptions, cmd)

	settings, err := loadSettings(opts.RootOptions)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, "failed to load settings", err)
	}
	settings.Report = config.Report{ShowNonPlayable: true, Verbose: true}

	db, err := openDatabase(settings.Database, true)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer closeDatabase(db)

	mem, err := db.Load(cmd.Context(), settings.Patch)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to load records", err)
	}

	it, ok := findItem(mem, editorID)
	if !ok {
		return out.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("no armor, weapon or ammunition %q", editorID), nil)
	}
	before := it.Clone()

	c, err := engine.Bootstrap(engine.Options{
		Settings: settings,
		Store:    mem,
		Report:   out.ReportWriter(),
		Tokens:   engine.NewFixedGenerator("inspect"),
	})
	if err != nil {
		_ = out.Error(ErrCodeSettings, "startup failed", err.Error())
		return runError("startup failed", err)
	}

	profiles, err := patcher.Profiles(c)
	if err != nil {
		_ = out.Error(ErrCodeSettings, "startup failed", err.Error())
		return runError("startup failed", err)
	}
	var profile *engine.Profile
	for _, p := range profiles {
		if p.Kind == it.Ref.Kind {
			profile = p
		}
	}
	if profile == nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, fmt.Sprintf("the %s patcher is disabled", it.Ref.Kind), nil)
	}

	eligible, itemErr := engine.New(c).PatchItem(profile, it)
	after, _ := mem.Item(it.Ref)

	result := InspectResult{
		EditorID: before.EditorID,
		Domain:   string(profile.Domain),
		Before:   before.Name,
		After:    after.Name,
		Eligible: eligible,
	}
	if itemErr != nil {
		result.Failed = itemErr.Error()
	}
	for _, spec := range profile.Stats.Specs() {
		cur, ok := before.Stats[spec.Metric]
		if !ok {
			continue
		}
		result.Stats = append(result.Stats, StatRow{Metric: string(spec.Metric), Before: cur, After: after.Stat(spec.Metric)})
	}
	changes := mem.Changes()
	for _, v := range changes.CreatedItems {
		result.Created = append(result.Created, v.EditorID)
	}
	for _, r := range changes.CreatedRecipes {
		result.Created = append(result.Created, r.EditorID)
	}

	if out.Format == "json" {
		return out.Success(result)
	}
	fmt.Fprint(out.Writer, result.String())
	if opts.Dump {
		dumper.Fdump(out.Writer, after)
	}
	return nil
}

func findItem(m *recordstore.Memory, editorID string) (*ir.Item, bool) {
	for _, kind := range []ir.RecordKind{ir.KindArmor, ir.KindWeapon, ir.KindAmmo} {
		for _, it := range m.Items(kind) {
			if strings.EqualFold(it.EditorID, editorID) {
				return it, true
			}
		}
	}
	return nil, false
}

// String renders the inspection for text output.
func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.EditorID, r.Domain)
	if !r.Eligible {
		b.WriteString("  not eligible\n")
	}
	if r.Failed != "" {
		fmt.Fprintf(&b, "  failed: %s\n", r.Failed)
	}
	if r.Before != r.After {
		fmt.Fprintf(&b, "  name    %q -> %q\n", r.Before, r.After)
	} else {
		fmt.Fprintf(&b, "  name    %q\n", r.Before)
	}
	for _, s := range r.Stats {
		fmt.Fprintf(&b, "  %-7s %s -> %s\n", s.Metric, ir.Number(s.Before), ir.Number(s.After))
	}
	for _, e := range r.Created {
		fmt.Fprintf(&b, "  + %s\n", e)
	}
	return b.String()
}
