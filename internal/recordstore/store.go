package recordstore

import (
	"errors"

	"github.com/roach88/forgepatch/internal/ir"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the record store contract the engine depends on.
type Store interface {
	Exists(ref ir.StableRef) bool
	Items(kind ir.RecordKind) []*ir.Item
	Item(ref ir.StableRef) (*ir.Item, bool)
	Recipe(ref ir.StableRef) (*ir.Recipe, bool)
	Recipes() []*ir.Recipe
	RecipesFor(output ir.StableRef) []*ir.Recipe

	OverrideItem(ref ir.StableRef) (*ir.Item, error)
	OverrideRecipe(ref ir.StableRef) (*ir.Recipe, error)
	HasOverride(ref ir.StableRef) bool
	RemoveOverride(ref ir.StableRef)

	CreateItem(it *ir.Item) ir.StableRef
	CreateRecipe(r *ir.Recipe) ir.StableRef

	EditorIDs() []string
	EditorID(ref ir.StableRef) string
}

var _ Store = (*Memory)(nil)
