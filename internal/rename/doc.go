// Package rename rewrites display names with an ordered chain of
// find/replace rules.
//
// Rules are evaluated from last declared to first. Each rule carries a
// "find" text, a "replace" text and an "options" string of flag letters:
//
//	i  case-insensitive find (the default when "options" is absent)
//	g  replace every occurrence instead of the first
//	p  find anywhere, not only as whole words; also disables the
//	   redundancy guard
//	c  retain the case of the matched text's first letter (implies i)
//	n  keep evaluating lower-priority rules after a change
//	o  fire even when a forced override already changed the item
//
// A "replace" text starting with '$' is a localization key.
package rename
