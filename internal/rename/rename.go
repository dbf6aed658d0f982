package rename

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/match"
)

// defaultFlags applies to rules without an "options" field.
const defaultFlags = "i"

// Translator resolves localization keys.
type Translator interface {
	T(key, context string) (string, error)
}

// Flags are the parsed option letters of a rule.
type Flags struct {
	IgnoreCase bool
	Global     bool
	Partial    bool
	KeepCase   bool
	Continue   bool
	Override   bool
}

// ParseFlags parses an options string. Unknown letters are ignored; the
// rule compiler reports them. Case retention implies case-insensitive
// matching.
func ParseFlags(options string) Flags {
	f := Flags{
		IgnoreCase: strings.ContainsRune(options, 'i'),
		Global:     strings.ContainsRune(options, 'g'),
		Partial:    strings.ContainsRune(options, 'p'),
		KeepCase:   strings.ContainsRune(options, 'c'),
		Continue:   strings.ContainsRune(options, 'n'),
		Override:   strings.ContainsRune(options, 'o'),
	}
	if f.KeepCase {
		f.IgnoreCase = true
	}
	return f
}

func ruleFlags(r ir.Rule) Flags {
	if !r.Has(ir.FieldOptions) {
		return ParseFlags(defaultFlags)
	}
	return ParseFlags(r.Str(ir.FieldOptions))
}

// Options configure one Rename call.
type Options struct {
	// Overridden is set when a forced rule already changed the item.
	// Only rules with the 'o' flag fire then.
	Overridden bool

	// Translator resolves "$key" replacements. Required only when such
	// rules exist.
	Translator Translator

	// Trace, when set, is called for every rule that changed the name.
	Trace func(rule ir.Rule, before, after string)
}

// Rename applies set to original for an item of category c and returns the
// resulting name. An error means a "$key" replacement did not resolve.
func Rename(original string, set ir.RuleSet, c ir.Category, opts Options) (string, error) {
	current := original
	for i := len(set) - 1; i >= 0; i-- {
		rule := set[i]
		find := rule.Str(ir.FieldFind)
		if len(strings.TrimSpace(find)) == 0 || !rule.Has(ir.FieldReplace) {
			continue
		}
		if !rule.AppliesTo(c) {
			continue
		}
		flags := ruleFlags(rule)
		if opts.Overridden && !flags.Override {
			continue
		}

		replacement, err := replacementText(rule.Str(ir.FieldReplace), current, opts.Translator)
		if err != nil {
			return original, fmt.Errorf("rename rule %d (%s): %w", rule.Index, rule.Source, err)
		}

		if !flags.Partial && replacement != "" && match.ContainsAllWords(current, replacement) {
			continue
		}
		if match.ContainsAnyWord(current, rule.Strings(ir.FieldSkipIf)) {
			continue
		}

		next := Replace(current, find, replacement, flags)
		if next == current {
			continue
		}
		if opts.Trace != nil {
			opts.Trace(rule, current, next)
		}
		current = next
		if !flags.Continue {
			break
		}
	}
	return current, nil
}

func replacementText(replace, context string, tr Translator) (string, error) {
	key, ok := strings.CutPrefix(replace, "$")
	if !ok {
		return replace, nil
	}
	if tr == nil {
		return "", fmt.Errorf("localized replacement %q without a translator", replace)
	}
	return tr.T(key, context)
}

// Replace substitutes find with replacement in s according to flags.
// Without the partial flag a match must be delimited by whitespace or the
// ends of s. Removing a match collapses the whitespace left around it.
func Replace(s, find, replacement string, flags Flags) string {
	var b strings.Builder
	pos := 0
	replaced := false
	for pos <= len(s) {
		start, end, ok := indexFrom(s, pos, find, flags)
		if !ok {
			break
		}
		b.WriteString(s[pos:start])
		if flags.KeepCase {
			b.WriteString(matchCase(replacement, s[start:end]))
		} else {
			b.WriteString(replacement)
		}
		pos = end
		replaced = true
		if !flags.Global {
			break
		}
	}
	if !replaced {
		return s
	}
	b.WriteString(s[pos:])
	if replacement == "" {
		return strings.Join(strings.Fields(b.String()), " ")
	}
	return b.String()
}

// indexFrom finds the next occurrence of find in s at or after byte offset
// from and returns its byte span.
func indexFrom(s string, from int, find string, flags Flags) (int, int, bool) {
	for i := from; i < len(s); {
		if end, ok := matchAt(s, i, find, flags.IgnoreCase); ok {
			if flags.Partial || (spaceBoundary(s, i) && spaceBoundary(s, end)) {
				return i, end, true
			}
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return 0, 0, false
}

// matchAt reports whether find occurs in s at byte offset i, comparing rune
// by rune so case variants of different byte widths still match.
func matchAt(s string, i int, find string, fold bool) (int, bool) {
	j := i
	for _, fr := range find {
		if j >= len(s) {
			return 0, false
		}
		sr, size := utf8.DecodeRuneInString(s[j:])
		if sr != fr && !(fold && equalFold(sr, fr)) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFold(a, b rune) bool {
	return strings.EqualFold(string(a), string(b))
}

func spaceBoundary(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	before, _ := utf8.DecodeLastRuneInString(s[:i])
	after, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(before) || unicode.IsSpace(after)
}

// matchCase sets the case of replacement's first letter to that of matched's
// first letter. The rest of replacement is kept verbatim.
func matchCase(replacement, matched string) string {
	m, _ := utf8.DecodeRuneInString(matched)
	r, size := utf8.DecodeRuneInString(replacement)
	if r == utf8.RuneError || !unicode.IsLetter(m) {
		return replacement
	}
	switch {
	case unicode.IsUpper(m):
		r = unicode.ToUpper(r)
	case unicode.IsLower(m):
		r = unicode.ToLower(r)
	}
	return string(r) + replacement[size:]
}
