package rules

import (
	"github.com/roach88/forgepatch/internal/ir"
)

// Rule-set names shared by the patchers.
const (
	SetRenamer           = "renamer"
	SetMaterials         = "materials"
	SetTypes             = "types"
	SetModifiers         = "modifiers"
	SetMaterialOverrides = "materialOverrides"
	SetMasquerade        = "masquerade"
	SetBaseStats         = "baseStats"
	SetSubtypes          = "subtypes"
	SetExclusions        = "exclusions"
)

// Store holds every rule list of a run. It is built once at engine start
// and read-only afterwards.
type Store struct {
	doc ir.RuleDocument
}

// NewStore wraps a compiled rule document. A nil document yields an empty store.
func NewStore(doc ir.RuleDocument) *Store {
	if doc == nil {
		doc = ir.RuleDocument{}
	}
	return &Store{doc: doc}
}

// Set returns the named rule list of a domain. Missing sets are empty.
func (s *Store) Set(domain ir.Domain, name string) ir.RuleSet {
	return s.doc.Set(domain, name)
}

// Count returns the total number of rules loaded.
func (s *Store) Count() int {
	n := 0
	for _, sets := range s.doc {
		for _, set := range sets {
			n += len(set)
		}
	}
	return n
}

// Document returns the underlying document.
func (s *Store) Document() ir.RuleDocument {
	return s.doc
}
