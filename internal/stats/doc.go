// Package stats composes an item's final numeric attributes from rule
// layers.
//
// For every metric:
//
//	composed = base(category) + type + material
//	final    = composed * modifier   (multiplicative metrics, modifier defaults to 1)
//	final    = composed + modifier   (additive metrics, modifier defaults to 0)
//
// Each layer falls back to its default when no rule supplies the metric.
// Range-like metrics must end up positive and fall back to a safe default
// otherwise. Other metrics keep the item's current value when it looks
// hand-authored: near zero, or more than ten times the composed value.
package stats
