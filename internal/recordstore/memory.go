package recordstore

import (
	"fmt"
	"sort"

	"github.com/roach88/forgepatch/internal/ir"
)

// DefaultPatch is the container new records are created in.
const DefaultPatch = "forgepatch.esp"

// firstLocalID is the first local id handed to created records.
const firstLocalID = 0x800

// Form is a record the patchers only reference: keywords, perks, resources.
type Form struct {
	Ref      ir.StableRef `json:"ref" yaml:"ref"`
	EditorID string       `json:"editor_id" yaml:"editor_id"`
}

// WriteStats counts calls on the write path.
type WriteStats struct {
	Overrides int
	Created   int
	Removed   int
}

// Memory is an in-memory record store. It is not safe for concurrent use.
type Memory struct {
	patch  string
	nextID uint32

	forms   map[ir.StableRef]Form
	items   map[ir.StableRef]*ir.Item
	recipes map[ir.StableRef]*ir.Recipe

	itemOverrides   map[ir.StableRef]*ir.Item
	recipeOverrides map[ir.StableRef]*ir.Recipe
	createdItems    map[ir.StableRef]*ir.Item
	createdRecipes  map[ir.StableRef]*ir.Recipe

	stats WriteStats
}

// NewMemory creates an empty store whose created records live in patch.
// An empty patch name uses DefaultPatch.
func NewMemory(patch string) *Memory {
	if patch == "" {
		patch = DefaultPatch
	}
	return &Memory{
		patch:           patch,
		nextID:          firstLocalID,
		forms:           make(map[ir.StableRef]Form),
		items:           make(map[ir.StableRef]*ir.Item),
		recipes:         make(map[ir.StableRef]*ir.Recipe),
		itemOverrides:   make(map[ir.StableRef]*ir.Item),
		recipeOverrides: make(map[ir.StableRef]*ir.Recipe),
		createdItems:    make(map[ir.StableRef]*ir.Item),
		createdRecipes:  make(map[ir.StableRef]*ir.Recipe),
	}
}

// Patch returns the container of created records.
func (m *Memory) Patch() string {
	return m.patch
}

// AddForm registers a referenced record.
func (m *Memory) AddForm(f Form) {
	m.forms[f.Ref] = f
}

// AddItem registers a winning item. A later call for the same ref replaces
// the earlier record, the way a higher-priority data layer does.
func (m *Memory) AddItem(it *ir.Item) {
	m.items[it.Ref] = it.Clone()
}

// AddRecipe registers a winning recipe.
func (m *Memory) AddRecipe(r *ir.Recipe) {
	m.recipes[r.Ref] = r.Clone()
}

// Import registers every record of a dataset.
func (m *Memory) Import(ds *Dataset) {
	for _, f := range ds.Forms {
		m.AddForm(f)
	}
	for i := range ds.Items {
		m.AddItem(&ds.Items[i])
	}
	for i := range ds.Recipes {
		m.AddRecipe(&ds.Recipes[i])
	}
}

// Exists reports whether ref names any known record.
func (m *Memory) Exists(ref ir.StableRef) bool {
	if ref.IsNull() {
		return false
	}
	if _, ok := m.forms[ref]; ok {
		return true
	}
	if _, ok := m.items[ref]; ok {
		return true
	}
	if _, ok := m.recipes[ref]; ok {
		return true
	}
	if _, ok := m.createdItems[ref]; ok {
		return true
	}
	_, ok := m.createdRecipes[ref]
	return ok
}

// Items returns copies of the winning items of kind, ordered by ref.
// Created records are not included.
func (m *Memory) Items(kind ir.RecordKind) []*ir.Item {
	var out []*ir.Item
	for ref, it := range m.items {
		if ref.Kind == kind {
			out = append(out, it.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return refLess(out[i].Ref, out[j].Ref) })
	return out
}

// Item returns the current state of an item: its override when one
// exists, else the created or winning record. The result must not be
// mutated; use OverrideItem to change a record.
func (m *Memory) Item(ref ir.StableRef) (*ir.Item, bool) {
	if it, ok := m.itemOverrides[ref]; ok {
		return it, true
	}
	if it, ok := m.createdItems[ref]; ok {
		return it, true
	}
	it, ok := m.items[ref]
	return it, ok
}

// Recipe returns the current state of a recipe.
func (m *Memory) Recipe(ref ir.StableRef) (*ir.Recipe, bool) {
	if r, ok := m.recipeOverrides[ref]; ok {
		return r, true
	}
	if r, ok := m.createdRecipes[ref]; ok {
		return r, true
	}
	r, ok := m.recipes[ref]
	return r, ok
}

// Recipes returns the current state of every recipe, winning and created,
// ordered by ref. The results must not be mutated.
func (m *Memory) Recipes() []*ir.Recipe {
	out := make([]*ir.Recipe, 0, len(m.recipes)+len(m.createdRecipes))
	for ref := range m.recipes {
		r, _ := m.Recipe(ref)
		out = append(out, r)
	}
	for _, r := range m.createdRecipes {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return refLess(out[i].Ref, out[j].Ref) })
	return out
}

// RecipesFor returns the current recipes producing output.
func (m *Memory) RecipesFor(output ir.StableRef) []*ir.Recipe {
	var out []*ir.Recipe
	for _, r := range m.Recipes() {
		if r.Output == output {
			out = append(out, r)
		}
	}
	return out
}

// OverrideItem returns the writable copy of an item, creating it from the
// winning record on first request. Created items are already writable and
// are returned as is.
func (m *Memory) OverrideItem(ref ir.StableRef) (*ir.Item, error) {
	if it, ok := m.itemOverrides[ref]; ok {
		return it, nil
	}
	if it, ok := m.createdItems[ref]; ok {
		return it, nil
	}
	winning, ok := m.items[ref]
	if !ok {
		return nil, fmt.Errorf("override %s: %w", ref, ErrNotFound)
	}
	it := winning.Clone()
	m.itemOverrides[ref] = it
	m.stats.Overrides++
	return it, nil
}

// OverrideRecipe returns the writable copy of a recipe.
func (m *Memory) OverrideRecipe(ref ir.StableRef) (*ir.Recipe, error) {
	if r, ok := m.recipeOverrides[ref]; ok {
		return r, nil
	}
	if r, ok := m.createdRecipes[ref]; ok {
		return r, nil
	}
	winning, ok := m.recipes[ref]
	if !ok {
		return nil, fmt.Errorf("override %s: %w", ref, ErrNotFound)
	}
	r := winning.Clone()
	m.recipeOverrides[ref] = r
	m.stats.Overrides++
	return r, nil
}

// HasOverride reports whether ref has an override in this run.
func (m *Memory) HasOverride(ref ir.StableRef) bool {
	if _, ok := m.itemOverrides[ref]; ok {
		return true
	}
	_, ok := m.recipeOverrides[ref]
	return ok
}

// RemoveOverride drops the override of ref, restoring the winning record.
func (m *Memory) RemoveOverride(ref ir.StableRef) {
	if _, ok := m.itemOverrides[ref]; ok {
		delete(m.itemOverrides, ref)
		m.stats.Removed++
	}
	if _, ok := m.recipeOverrides[ref]; ok {
		delete(m.recipeOverrides, ref)
		m.stats.Removed++
	}
}

// CreateItem mints a new item in the patch container and returns its ref.
// The stored record is a copy of it with Ref set.
func (m *Memory) CreateItem(it *ir.Item) ir.StableRef {
	c := it.Clone()
	c.Ref = m.mint(it.Ref.Kind)
	m.createdItems[c.Ref] = c
	m.stats.Created++
	return c.Ref
}

// CreateRecipe mints a new recipe in the patch container.
func (m *Memory) CreateRecipe(r *ir.Recipe) ir.StableRef {
	c := r.Clone()
	c.Ref = m.mint(ir.KindRecipe)
	m.createdRecipes[c.Ref] = c
	m.stats.Created++
	return c.Ref
}

func (m *Memory) mint(kind ir.RecordKind) ir.StableRef {
	ref := ir.Ref(m.patch, m.nextID, kind)
	m.nextID++
	return ref
}

// EditorIDs returns the editor ids of every known record.
func (m *Memory) EditorIDs() []string {
	out := make([]string, 0, len(m.forms)+len(m.items)+len(m.recipes))
	for _, f := range m.forms {
		out = append(out, f.EditorID)
	}
	for _, it := range m.items {
		out = append(out, it.EditorID)
	}
	for _, r := range m.recipes {
		out = append(out, r.EditorID)
	}
	for _, it := range m.createdItems {
		out = append(out, it.EditorID)
	}
	for _, r := range m.createdRecipes {
		out = append(out, r.EditorID)
	}
	sort.Strings(out)
	return out
}

// EditorID returns the editor id of any known record.
func (m *Memory) EditorID(ref ir.StableRef) string {
	if f, ok := m.forms[ref]; ok {
		return f.EditorID
	}
	if it, ok := m.Item(ref); ok {
		return it.EditorID
	}
	if r, ok := m.Recipe(ref); ok {
		return r.EditorID
	}
	return ""
}

// Stats returns the write-path counters.
func (m *Memory) Stats() WriteStats {
	return m.stats
}

// Changes returns the overrides and created records of the run, ordered by ref.
func (m *Memory) Changes() Changes {
	var c Changes
	for _, it := range m.itemOverrides {
		c.ItemOverrides = append(c.ItemOverrides, it)
	}
	for _, r := range m.recipeOverrides {
		c.RecipeOverrides = append(c.RecipeOverrides, r)
	}
	for _, it := range m.createdItems {
		c.CreatedItems = append(c.CreatedItems, it)
	}
	for _, r := range m.createdRecipes {
		c.CreatedRecipes = append(c.CreatedRecipes, r)
	}
	sortItems(c.ItemOverrides)
	sortItems(c.CreatedItems)
	sortRecipes(c.RecipeOverrides)
	sortRecipes(c.CreatedRecipes)
	return c
}

// Changes is the output of a run.
type Changes struct {
	ItemOverrides   []*ir.Item
	RecipeOverrides []*ir.Recipe
	CreatedItems    []*ir.Item
	CreatedRecipes  []*ir.Recipe
}

func sortItems(s []*ir.Item) {
	sort.Slice(s, func(i, j int) bool { return refLess(s[i].Ref, s[j].Ref) })
}

func sortRecipes(s []*ir.Recipe) {
	sort.Slice(s, func(i, j int) bool { return refLess(s[i].Ref, s[j].Ref) })
}

func refLess(a, b ir.StableRef) bool {
	if a.Container != b.Container {
		return a.Container < b.Container
	}
	if a.LocalID != b.LocalID {
		return a.LocalID < b.LocalID
	}
	return a.Kind < b.Kind
}
