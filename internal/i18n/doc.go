// Package i18n resolves symbolic string keys to language-specific text.
//
// Lookup falls back from the current language to BaseLanguage. Entries may
// be a single string or a list of grammatical-gender variants
// (masculine, feminine, neuter); a variant is chosen by matching the
// disambiguation context (usually the item name) against the language's
// gendered noun lists.
package i18n
