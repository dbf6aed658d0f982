package i18n

import (
	"errors"
	"fmt"

	"github.com/roach88/forgepatch/internal/match"
)

// BaseLanguage is the language every other language falls back to.
const BaseLanguage = "en"

// Gender tags, in variant-list order.
const (
	GenderMasculine = "masculine"
	GenderFeminine  = "feminine"
	GenderNeuter    = "neuter"
)

// GenderOrder maps variant index to gender tag.
var GenderOrder = []string{GenderMasculine, GenderFeminine, GenderNeuter}

// ErrMissingKey is returned when a key exists neither in the requested
// language nor in the base language. Callers treat it as a configuration
// error: the content references a string that does not exist.
var ErrMissingKey = errors.New("localization key not found")

// Entry is one localized string: a scalar or a list of gender variants.
type Entry struct {
	Text     string
	Variants []string
	IsList   bool
}

// Table is the string table of one language.
type Table struct {
	Language string
	Entries  map[string]Entry

	// Genders maps a gender tag to the nouns of that gender.
	Genders map[string][]string

	// Fallback is the gender tag used when no noun list matches.
	// Defaults to GenderMasculine.
	Fallback string
}

// NewTable creates an empty table.
func NewTable(lang string) *Table {
	return &Table{
		Language: lang,
		Entries:  make(map[string]Entry),
		Genders:  make(map[string][]string),
		Fallback: GenderMasculine,
	}
}

// Set adds a scalar entry.
func (t *Table) Set(key, text string) *Table {
	t.Entries[key] = Entry{Text: text}
	return t
}

// SetVariants adds a gendered entry.
func (t *Table) SetVariants(key string, variants ...string) *Table {
	t.Entries[key] = Entry{Variants: variants, IsList: true}
	return t
}

// Resolver looks up keys in a set of language tables.
type Resolver struct {
	language string
	tables   map[string]*Table
}

// NewResolver creates a resolver for the current language.
func NewResolver(language string, tables ...*Table) *Resolver {
	if language == "" {
		language = BaseLanguage
	}
	r := &Resolver{language: language, tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.Language] = t
	}
	return r
}

// Language returns the current language.
func (r *Resolver) Language() string {
	return r.language
}

// Translate resolves key in lang (the current language when empty), falling
// back to the base language. context disambiguates gendered entries.
func (r *Resolver) Translate(key, lang, context string) (string, error) {
	if lang == "" {
		lang = r.language
	}

	table, entry, ok := r.lookup(key, lang)
	if !ok && lang != BaseLanguage {
		table, entry, ok = r.lookup(key, BaseLanguage)
	}
	if !ok {
		return "", fmt.Errorf("%w: %q (language %s)", ErrMissingKey, key, lang)
	}

	if !entry.IsList {
		return entry.Text, nil
	}
	return table.selectVariant(key, entry.Variants, context), nil
}

// T is Translate in the current language.
func (r *Resolver) T(key, context string) (string, error) {
	return r.Translate(key, "", context)
}

// Has reports whether key resolves in the current or base language.
func (r *Resolver) Has(key string) bool {
	_, err := r.Translate(key, "", "")
	return err == nil
}

func (r *Resolver) lookup(key, lang string) (*Table, Entry, bool) {
	table, ok := r.tables[lang]
	if !ok {
		return nil, Entry{}, false
	}
	entry, ok := table.Entries[key]
	return table, entry, ok
}

// selectVariant picks the variant whose gender noun list matches context.
// With no match the fallback gender's variant is used; an empty list
// yields the key itself.
func (t *Table) selectVariant(key string, variants []string, context string) string {
	if len(variants) == 0 {
		return key
	}
	if context != "" {
		for i, gender := range GenderOrder {
			if i >= len(variants) {
				break
			}
			if match.ContainsAnyWord(context, t.Genders[gender]) {
				return variants[i]
			}
		}
	}
	for i, gender := range GenderOrder {
		if gender == t.Fallback && i < len(variants) {
			return variants[i]
		}
	}
	return variants[0]
}
