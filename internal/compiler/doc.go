// Package compiler turns rule-set files into an ir.RuleDocument.
//
// A rule-set file is a JSON document with "//" and "/* */" comments
// allowed. Compilation runs in four steps:
//
//  1. Comments are stripped (string literals are left untouched).
//  2. The JSON is extracted into a CUE value and unified with the embedded
//     schema (schema.cue), so structural mistakes carry file positions.
//  3. Every rule field is converted once into the sealed ir.Value type.
//  4. Optional "when" guards are compiled into expr-lang programs.
//
// Semantic checks that CUE cannot express (renamer option flags, filter
// category names) run afterwards in Validate and produce coded
// ValidationErrors.
package compiler
