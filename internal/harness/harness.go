package harness

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/forgepatch/internal/config"
	"github.com/roach88/forgepatch/internal/engine"
	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/patcher"
	"github.com/roach88/forgepatch/internal/recordstore"
)

// equipment lists the record kinds the patchers touch.
var equipment = []ir.RecordKind{ir.KindArmor, ir.KindWeapon, ir.KindAmmo}

// Run executes a scenario on a fresh in-memory store and evaluates its
// assertions. Startup failures are returned as errors; failed assertions
// are recorded on the result.
func Run(s *Scenario) (*Result, error) {
	return RunContext(context.Background(), s)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, s *Scenario) (*Result, error) {
	settings, err := config.Load(s.Settings)
	if err != nil {
		return nil, err
	}
	ds, err := recordstore.LoadDataset(s.Dataset)
	if err != nil {
		return nil, err
	}

	mem := recordstore.NewMemory(settings.Patch)
	if s.BaseForms {
		mem.Import(&recordstore.Dataset{Forms: recordstore.BaseForms(identity.Builtin, s.AddOns)})
	}
	mem.Import(ds)

	token := s.RunToken
	if token == "" {
		token = DefaultRunToken
	}

	var report bytes.Buffer
	c, err := engine.Bootstrap(engine.Options{
		Settings: settings,
		Store:    mem,
		Report:   &report,
		Tokens:   engine.NewFixedGenerator(token),
	})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	sum, err := patcher.Run(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	result := NewResult()
	result.Summary = sum
	result.Report = report.String()
	result.Changes = mem.Changes()
	for _, kind := range equipment {
		for _, it := range mem.Items(kind) {
			cur, _ := mem.Item(it.Ref)
			result.Items = append(result.Items, cur.Clone())
		}
	}
	for _, it := range result.Changes.CreatedItems {
		result.Items = append(result.Items, it.Clone())
	}

	for _, msg := range EvaluateAssertions(result, s.Assertions) {
		result.AddError(msg)
	}
	slog.Debug("scenario finished", "name", s.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}
