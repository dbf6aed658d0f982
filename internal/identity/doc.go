// Package identity maps short symbolic names to stable external record
// references.
//
// The constant tables in this package are static data: literal
// (container, local id, kind) triples. Build resolves every constant once
// against the record store at startup. A constant declared by an optional
// add-on that is not loaded resolves to ir.NullRef; any other unresolved
// constant makes Build fail, aborting the run before items are processed.
package identity
