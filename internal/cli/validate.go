package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/forgepatch/internal/compiler"
	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/i18n"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool                       `json:"valid"`
	Files     int                        `json:"files"`
	Rules     int                        `json:"rules"`
	Languages int                        `json:"languages"`
	Problems  []string                   `json:"problems,omitempty"`
	Errors    []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check settings, rule files and localization without patching",
		Long: `Compile every rule file named by the settings, check the rules for
semantic mistakes and parse the localization files. Unlike patch, every
file is compiled so that all problems are reported at once.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	out := formatter(opts, cmd)

	settings, err := loadSettings(opts)
	if err != nil {
		return out.Fail(ExitCommandError, ErrCodeSettings, "failed to load settings", err)
	}

	sources := make([]compiler.Source, 0, len(settings.Rules))
	for _, f := range settings.Rules {
		sources = append(sources, compiler.Source{Path: f.Path, Required: f.Required})
	}
	loaded, loadErrs := compiler.Load(sources, compiler.LoadModeCollectAll)
	out.VerboseLog("compiled %d rule file(s), %d rule(s)", loaded.Files, loaded.Rules)

	result := ValidationResult{Files: loaded.Files, Rules: loaded.Rules}
	for _, err := range loadErrs {
		result.Problems = append(result.Problems, err.Error())
	}
	for _, w := range loaded.Warnings {
		out.VerboseLog("skipped optional file: %v", w)
	}
	result.Errors = compiler.Validate(loaded.Document)

	tables, err := loadTables(settings, out)
	if err != nil {
		result.Problems = append(result.Problems, err.Error())
	}
	result.Languages = len(tables)
	tr := i18n.NewResolver(settings.Language, tables...)
	if err := engine.CheckLocalization(loaded.Document, tr); err != nil {
		result.Problems = append(result.Problems, err.Error())
	}

	result.Valid = len(result.Problems) == 0 && len(result.Errors) == 0
	return outputValidation(out, result)
}

func loadTables(settings *config.Settings, out *OutputFormatter) ([]*i18n.Table, error) {
	if settings.Localization == "" {
		return nil, nil
	}
	tables, err := i18n.LoadDir(settings.Localization)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		out.VerboseLog("localization %s: %d key(s)", t.Language, len(t.Entries))
	}
	return tables, nil
}

func outputValidation(out *OutputFormatter, result ValidationResult) error {
	n := len(result.Problems) + len(result.Errors)

	if out.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if !result.Valid {
			resp.Status = "error"
			resp.Error = &CLIError{Code: ErrCodeValidation, Message: fmt.Sprintf("%d problem(s)", n)}
		}
		if err := encodeIndented(out.Writer, resp); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(out.Writer, "✓ %d rule file(s), %d rule(s), %d language(s) valid\n", result.Files, result.Rules, result.Languages)
	} else {
		fmt.Fprintln(out.Writer, "✗ Validation failed")
		fmt.Fprintln(out.Writer)
		for _, p := range result.Problems {
			fmt.Fprintf(out.Writer, "  %s\n", p)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(out.Writer, "  %s\n", e.Error())
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d problem(s)", n))
	}
	return nil
}
