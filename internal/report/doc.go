// Package report collects per-item diagnostics and renders them.
//
// A Report has four ordered buckets (info, caution, error, verbose). It is
// created when an item's processing starts, filled by every stage, and
// flushed through a Collector when the item is done. Reports are never
// shared between items.
package report
