package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/recordstore"
)

// RunsResult is the JSON payload of the runs command.
type RunsResult struct {
	Runs []recordstore.RunInfo `json:"runs"`

	// Stored counts the rows of the latest run still in the database.
	StoredOverrides int `json:"stored_overrides"`
	StoredCreated   int `json:"stored_created"`
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List the committed patch runs",
		Long: `List the run log of the record database, oldest first. The latest run's
output is the one currently stored; its row counts are checked against
the log.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(rootOpts, cmd)
		},
	}
	return cmd
}

func runRuns(opts *RootOptions, cmd *cobra.Command) error {
	out := formatter(opts, cmd)

	settings, err := loadSettings(opts)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, "failed to load settings", err)
	}
	db, err := openDatabase(settings.Database, true)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer closeDatabase(db)

	ctx := cmd.Context()
	runs, err := db.Runs(ctx)
	if err != nil {
		return out.Fail(ExitFailure, ErrCodeDatabase, "failed to read run log", err)
	}
	result := RunsResult{Runs: runs}
	if len(runs) > 0 {
		latest := runs[len(runs)-1]
		result.StoredOverrides, result.StoredCreated, err = db.OutputCounts(ctx, latest.Token)
		if err != nil {
			return out.Fail(ExitFailure, ErrCodeDatabase, "failed to count stored output", err)
		}
	}

	if out.Format == "json" {
		return out.Success(result)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out.Writer, "No runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out.Writer, "#%d %s  %d/%d eligible, overrides %d, created %d, discarded %d\n",
			r.Seq, r.Token, r.Eligible, r.Total, r.Overrides, r.Created, r.Discarded)
	}
	latest := runs[len(runs)-1]
	if result.StoredOverrides != latest.Overrides || result.StoredCreated != latest.Created {
		fmt.Fprintf(out.Writer, "warning: stored output (%d overrides, %d created) does not match run #%d\n",
			result.StoredOverrides, result.StoredCreated, latest.Seq)
	}
	return nil
}
