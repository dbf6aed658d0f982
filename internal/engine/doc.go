// Package engine implements the per-item patching pipeline shared by the
// armor, weapon and ammunition patchers.
//
// ARCHITECTURE:
//
// Startup:
// Bootstrap loads rules and localization, resolves identity constants and
// wires the record store, editor-id allocator, derived-record generator and
// report collector into a Context. Every startup failure is fatal and is
// returned before any item is touched.
//
// Per-Item Flow:
//  1. Masquerade: a forced category or name sets the overridden flag
//  2. Eligibility: category domain check and the "all" exclusion
//  3. Identification: materials, type, unique flag
//  4. Rename through the override write path
//  5. Stats: compose, validate, write only what changed
//  6. Derived records: crafting, tempering, breakdown, variants
//  7. Report flush
//
// The engine is single-threaded and processes items in record order.
//
// CRITICAL PATTERNS:
//
// Owned Override Slot:
// Records are never mutated in place. ItemContext.EnsureOverride creates
// the item's override once and hands back the same record afterwards.
//
// Contained Failures:
// A failing item, including a panic, is written to its report and the run
// continues. A failing derived-record step aborts only that step.
//
// Deterministic Output:
// Rules are evaluated last-declared first, items in ref order. Nothing
// depends on wall-clock time except the run token.
package engine
