package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/patcher"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// PatchOptions holds flags for the patch command.
type PatchOptions struct {
	*RootOptions

	// DryRun patches in memory without committing.
	DryRun bool
}

// PatchResult is the JSON payload of a patch run.
type PatchResult struct {
	Token     string          `json:"token"`
	Seq       int64           `json:"seq,omitempty"`
	Patchers  []PatcherResult `json:"patchers"`
	Eligible  int             `json:"eligible"`
	Total     int             `json:"total"`
	Overrides int             `json:"overrides"`
	Created   int             `json:"created"`
	Discarded int             `json:"discarded"`
	Cautions  int             `json:"cautions"`
	Errors    int             `json:"errors"`
	DryRun    bool            `json:"dry_run,omitempty"`
}

// PatcherResult counts one patcher's items.
type PatcherResult struct {
	Domain   string `json:"domain"`
	Eligible int    `json:"eligible"`
	Total    int    `json:"total"`
	Failed   int    `json:"failed"`
}

// NewPatchCommand creates the patch command.
func NewPatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Patch every winning record and commit the result",
		Long: `Load the winning records from the database, run the armor, weapon and
ammunition patchers over them and store the resulting overrides and
created records, replacing the previous run's output.

Per-item reports are written to stdout (stderr with --format json).

Example:
  forgepatch patch --config forgepatch.yaml
  forgepatch patch --db ./records.db --dry-run`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "patch without committing the result")

	return cmd
}

func runPatch(opts *PatchOptions, cmd *cobra.Command) error {
	out := formatter(opts.RootOptions, cmd)

	settings, err := loadSettings(opts.RootOptions)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, "failed to load settings", err)
	}

	db, err := openDatabase(settings.Database, true)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer closeDatabase(db)

	ctx, stop := signalContext(cmd)
	defer stop()

	mem, err := db.Load(ctx, settings.Patch)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to load records", err)
	}

	c, err := engine.Bootstrap(engine.Options{
		Settings: settings,
		Store:    mem,
		Report:   out.ReportWriter(),
		Tokens:   opts.Tokens,
	})
	if err != nil {
		_ = out.Error(ErrCodeSettings, "startup failed", err.Error())
		return runError("startup failed", err)
	}

	sum, err := patcher.Run(ctx, c)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return out.Fail(ExitFailure, ErrCodeGeneric, "patch interrupted, nothing committed", err)
		}
		_ = out.Error(ErrCodeGeneric, "patch failed", err.Error())
		return runError("patch failed", err)
	}

	result := patchResult(sum)
	result.DryRun = opts.DryRun
	if !opts.DryRun {
		seq, err := db.NextSeq(ctx)
		if err != nil {
			return out.Fail(ExitFailure, ErrCodeDatabase, "failed to commit", err)
		}
		run := recordstore.RunInfo{
			Token:     sum.Token,
			Seq:       seq,
			Eligible:  sum.Eligible(),
			Total:     sum.Total(),
			Discarded: sum.Discarded,
		}
		if err := db.Commit(ctx, mem, run); err != nil {
			return out.Fail(ExitFailure, ErrCodeDatabase, "failed to commit", err)
		}
		result.Seq = seq
		slog.Info("run committed", "token", sum.Token, "seq", seq)
	}

	if out.Format == "json" {
		return out.Success(result)
	}
	fmt.Fprint(out.Writer, result.String())
	return nil
}

func patchResult(sum *engine.RunSummary) PatchResult {
	r := PatchResult{
		Token:     sum.Token,
		Eligible:  sum.Eligible(),
		Total:     sum.Total(),
		Overrides: sum.Overrides,
		Created:   sum.Created,
		Discarded: sum.Discarded,
		Cautions:  sum.Reports.Cautions,
		Errors:    sum.Reports.Errors,
	}
	for _, p := range sum.Patchers {
		r.Patchers = append(r.Patchers, PatcherResult{
			Domain:   string(p.Domain),
			Eligible: p.Eligible,
			Total:    p.Total,
			Failed:   p.Failed,
		})
	}
	return r
}

// String renders the run summary for text output.
func (r PatchResult) String() string {
	var b strings.Builder
	switch {
	case r.DryRun:
		fmt.Fprintf(&b, "Run %s (dry run, not committed)\n", r.Token)
	default:
		fmt.Fprintf(&b, "Run %s (#%d)\n", r.Token, r.Seq)
	}
	for _, p := range r.Patchers {
		fmt.Fprintf(&b, "  %-12s %d/%d eligible", p.Domain, p.Eligible, p.Total)
		if p.Failed > 0 {
			fmt.Fprintf(&b, ", %d failed", p.Failed)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "  overrides %d, created %d, discarded %d\n", r.Overrides, r.Created, r.Discarded)
	fmt.Fprintf(&b, "  %d caution(s), %d error(s)\n", r.Cautions, r.Errors)
	return b.String()
}
