package compiler

import (
	_ "embed"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	schemaDoc  cue.Value
	schemaErr  error
)

// documentSchema returns the compiled #Document definition and the CUE
// context it belongs to. Values unified with it must come from the same
// context.
func documentSchema() (*cue.Context, cue.Value, error) {
	schemaOnce.Do(func() {
		schemaCtx = cuecontext.New()
		v := schemaCtx.CompileString(schemaCUE, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			schemaErr = formatCUEError("schema.cue", err)
			return
		}
		schemaDoc = v.LookupPath(cue.ParsePath("#Document"))
		schemaErr = schemaDoc.Err()
	})
	return schemaCtx, schemaDoc, schemaErr
}
