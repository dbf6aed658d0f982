package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions

	// BaseForms imports a form for every built-in constant first.
	BaseForms bool

	// AddOns includes the forms of the optional add-on containers.
	AddOns bool
}

// LoadResult is the JSON payload of the load command.
type LoadResult struct {
	Database string `json:"database"`
	Files    int    `json:"files"`
	Records  int    `json:"records"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load [dataset.yaml...]",
		Short: "Import record datasets into the database",
		Long: `Import YAML record datasets into the record database, creating it if
needed. Datasets are applied in order: a record of a later file replaces
the same record of an earlier one, like a later data layer.

Example:
  forgepatch load --db ./records.db --base-forms skyrim.yaml mods.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.BaseForms, "base-forms", false, "import the built-in base-game forms first")
	cmd.Flags().BoolVar(&opts.AddOns, "add-ons", false, "with --base-forms, include the add-on forms")

	return cmd
}

func runLoad(opts *LoadOptions, paths []string, cmd *cobra.Command) error {
	out := formatter(opts.RootOptions, cmd)

	if len(paths) == 0 && !opts.BaseForms {
		return out.Fail(ExitCommandError, ErrCodeGeneric, "nothing to load: name a dataset or pass --base-forms", nil)
	}

	settings, err := loadSettings(opts.RootOptions)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, "failed to load settings", err)
	}

	// Parse everything before touching the database.
	var datasets []*recordstore.Dataset
	if opts.BaseForms {
		datasets = append(datasets, &recordstore.Dataset{Forms: recordstore.BaseForms(identity.Builtin, opts.AddOns)})
	}
	for _, p := range paths {
		ds, err := recordstore.LoadDataset(p)
		if err != nil {
			return out.Fail(ExitCommandError, ErrCodeNotFound, "failed to read dataset", err)
		}
		datasets = append(datasets, ds)
	}

	db, err := openDatabase(settings.Database, false)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", err)
	}
	defer closeDatabase(db)

	ctx := cmd.Context()
	result := LoadResult{Database: settings.Database, Files: len(paths)}
	for _, ds := range datasets {
		n, err := db.Import(ctx, ds)
		if err != nil {
			return out.Fail(ExitFailure, ErrCodeDatabase, "import failed", err)
		}
		result.Records += n
	}
	slog.Info("records imported", "database", settings.Database, "records", result.Records)

	if out.Format == "json" {
		return out.Success(result)
	}
	fmt.Fprintf(out.Writer, "Loaded %d record(s) from %d file(s) into %s\n", result.Records, result.Files, result.Database)
	return nil
}
