package compiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/forgepatch/internal/ir"
)

// Validation error codes (E200-E299)
const (
	ErrUnknownOption    = "E201" // renamer option flag outside "igpcno"
	ErrUnknownCategory  = "E202" // filter names an unknown category
	ErrMissingMatchKey  = "E203" // rule has neither names nor id
	ErrMissingFind      = "E204" // renamer rule without find
	ErrWrongFieldType   = "E205" // field has the wrong value type
	ErrCategoryMismatch = "E206" // filter category belongs to another domain
)

// ValidOptions are the renamer flag characters.
const ValidOptions = "igpcno"

// ValidationError represents a semantic rule error.
type ValidationError struct {
	Code   string `json:"code"`
	Domain string `json:"domain"`
	Set    string `json:"set"`
	Index  int    `json:"index"`
	Source string `json:"source"`
	Field  string `json:"field"`
	Msg    string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s.%s[%d].%s: %s", e.Code, e.Source, e.Domain, e.Set, e.Index, e.Field, e.Msg)
}

// Validate checks a compiled document for semantic mistakes.
// Returns all errors found (does not fail-fast), in a stable order.
func Validate(doc ir.RuleDocument) []ValidationError {
	var errs []ValidationError

	domains := make([]string, 0, len(doc))
	for d := range doc {
		domains = append(domains, string(d))
	}
	sort.Strings(domains)

	for _, d := range domains {
		domain := ir.Domain(d)
		names := make([]string, 0, len(doc[domain]))
		for name := range doc[domain] {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			for _, rule := range doc[domain][name] {
				errs = append(errs, validateRule(domain, name, rule)...)
			}
		}
	}
	return errs
}

func validateRule(domain ir.Domain, set string, rule ir.Rule) []ValidationError {
	var errs []ValidationError
	add := func(code, field, msg string) {
		errs = append(errs, ValidationError{
			Code: code, Domain: string(domain), Set: set, Index: rule.Index,
			Source: rule.Source, Field: field, Msg: msg,
		})
	}

	if filter, ok := rule.Field(ir.FieldFilter); ok {
		s, err := ir.AsString(filter)
		if err != nil {
			add(ErrWrongFieldType, ir.FieldFilter, err.Error())
		} else {
			for _, part := range strings.Split(s, ",") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				c, err := ir.ParseCategory(part)
				if err != nil {
					add(ErrUnknownCategory, ir.FieldFilter, err.Error())
					continue
				}
				if c.Domain() != domain {
					add(ErrCategoryMismatch, ir.FieldFilter, fmt.Sprintf("category %s belongs to %s", c, c.Domain()))
				}
			}
		}
	}

	if set == "renamer" {
		if !rule.Has(ir.FieldFind) {
			add(ErrMissingFind, ir.FieldFind, "renamer rule needs find")
		}
		if opts, ok := rule.Field(ir.FieldOptions); ok {
			s, err := ir.AsString(opts)
			if err != nil {
				add(ErrWrongFieldType, ir.FieldOptions, err.Error())
			} else {
				for _, r := range s {
					if !strings.ContainsRune(ValidOptions, r) {
						add(ErrUnknownOption, ir.FieldOptions, fmt.Sprintf("unknown option %q", r))
					}
				}
			}
		}
		return errs
	}

	if !rule.Has(ir.FieldNames) && !rule.Has(ir.FieldID) {
		add(ErrMissingMatchKey, ir.FieldNames, "rule needs names or id")
	}
	return errs
}
