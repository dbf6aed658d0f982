package match

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MinKeyLen is the shortest key that can match anything. Shorter keys are
// treated as authoring mistakes (e.g. an empty "names" entry) instead of
// matching every target.
const MinKeyLen = 2

// Normalize NFC-normalizes and case-folds s.
func Normalize(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// Contains reports whether key occurs in target.
// With strict set the occurrence must start and end on a word boundary.
func Contains(target, key string, strict bool) bool {
	if utf8.RuneCountInString(strings.TrimSpace(key)) < MinKeyLen {
		return false
	}
	t := Normalize(target)
	k := Normalize(strings.TrimSpace(key))
	if !strict {
		return strings.Contains(t, k)
	}
	return IndexWord(t, k) >= 0
}

// All reports whether every key matches target. An empty key list never matches.
func All(target string, keys []string, strict bool) bool {
	if len(keys) == 0 {
		return false
	}
	for _, k := range keys {
		if !Contains(target, k, strict) {
			return false
		}
	}
	return true
}

// Any reports whether at least one key matches target.
func Any(target string, keys []string, strict bool) bool {
	for _, k := range keys {
		if Contains(target, k, strict) {
			return true
		}
	}
	return false
}

// IndexWord returns the byte index of the first occurrence of needle in
// haystack that sits on word boundaries on both sides, or -1.
// The comparison is exact; callers normalize first when needed.
func IndexWord(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	offset := 0
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(needle)
		if IsBoundary(haystack, start) && IsBoundary(haystack, end) {
			return start
		}
		_, size := utf8.DecodeRuneInString(haystack[start:])
		offset = start + size
	}
}

// IsBoundary reports whether byte position i in s is a word boundary:
// the start or end of s, or a position next to a non-word rune.
func IsBoundary(s string, i int) bool {
	if i <= 0 || i >= len(s) {
		return true
	}
	before, _ := utf8.DecodeLastRuneInString(s[:i])
	after, _ := utf8.DecodeRuneInString(s[i:])
	return !IsWordRune(before) || !IsWordRune(after)
}

// IsWordRune reports whether r is part of a word. Apostrophes are not, so
// a possessive still carries its stem as a whole word.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Words splits s into normalized words.
func Words(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !IsWordRune(r)
	})
}

// ContainsAllWords reports whether every word of phrase already appears as
// a word of s. A phrase without words reports false.
func ContainsAllWords(s, phrase string) bool {
	want := Words(phrase)
	if len(want) == 0 {
		return false
	}
	have := make(map[string]struct{})
	for _, w := range Words(s) {
		have[w] = struct{}{}
	}
	for _, w := range want {
		if _, ok := have[w]; !ok {
			return false
		}
	}
	return true
}

// ContainsAnyWord reports whether any word of phrases occurs as a word of s.
func ContainsAnyWord(s string, phrases []string) bool {
	for _, p := range phrases {
		if Contains(s, p, true) {
			return true
		}
	}
	return false
}
