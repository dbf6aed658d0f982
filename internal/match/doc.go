// Package match implements the case-insensitive text matching used by rule
// resolution and renaming.
//
// Two modes are supported:
//   - strict: the key must occur as whole words, anchored on word boundaries
//   - loose: the key may occur anywhere as a substring
//
// Both sides are NFC-normalized and case-folded before comparison, so
// "Daedric" matches "DAEDRIC" and composed/decomposed accents compare equal.
// Keys shorter than MinKeyLen never match.
package match
