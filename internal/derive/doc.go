// Package derive amends and synthesizes the records that depend on an
// item: crafting recipes, tempering recipes, breakdown recipes and
// combinatorial variants.
//
// Every step works through the record store's override path and never
// commits a record that is indistinguishable from what already exists.
// Failures are per step: a missing output resource aborts that recipe,
// everything else degrades to a default and a caution.
package derive
