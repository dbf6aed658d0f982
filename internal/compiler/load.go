package compiler

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/roach88/forgepatch/internal/ir"
)

// LoadMode controls how errors in required files are handled.
type LoadMode int

const (
	// LoadModeFailFast stops on the first required-file error.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll compiles every file and collects all errors.
	LoadModeCollectAll
)

// Source is a rule-set file to load.
type Source struct {
	Path     string
	Required bool
}

// LoadResult is the merged document of every loaded file.
type LoadResult struct {
	Document ir.RuleDocument
	Files    int
	Rules    int

	// Warnings holds errors from optional files, which were skipped.
	Warnings []error
}

// Load compiles sources in order and appends their rules into a single
// document, so rules of later sources take priority over earlier ones.
//
// A failing optional source is skipped with a warning. A failing required
// source is a configuration error: it is returned in errs, and in
// LoadModeFailFast mode loading stops there.
func Load(sources []Source, mode LoadMode) (*LoadResult, []error) {
	result := &LoadResult{Document: ir.RuleDocument{}}
	var errs []error
	next := 0

	for _, src := range sources {
		compiled, err := loadOne(src.Path, next)
		if err != nil {
			if !src.Required {
				slog.Warn("skipping optional rule file", "path", src.Path, "error", err)
				result.Warnings = append(result.Warnings, err)
				continue
			}
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}

		for domain, sets := range compiled.Document {
			for name, set := range sets {
				result.Document.Append(domain, name, set...)
			}
		}
		next = compiled.NextIndex
		result.Files++
		result.Rules += compiled.Rules
		slog.Debug("loaded rule file", "path", src.Path, "rules", compiled.Rules)
	}
	return result, errs
}

func loadOne(path string, firstIndex int) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return Compile(path, data, firstIndex)
}
