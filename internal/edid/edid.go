// Package edid allocates unique editor ids for records created during a run.
package edid

import "strconv"

// Allocator hands out editor ids that are unique within a run.
// Not safe for concurrent use; a run is single-threaded.
type Allocator struct {
	used map[string]struct{}
}

// New creates an allocator. Existing ids (e.g. every editor id already in
// the record store) are reserved up front.
func New(existing ...string) *Allocator {
	a := &Allocator{used: make(map[string]struct{}, len(existing))}
	for _, id := range existing {
		a.Reserve(id)
	}
	return a
}

// Reserve marks id as taken without returning it.
func (a *Allocator) Reserve(id string) {
	a.used[id] = struct{}{}
}

// Taken reports whether id has been allocated or reserved.
func (a *Allocator) Taken(id string) bool {
	_, ok := a.used[id]
	return ok
}

// Unique returns candidate the first time it is requested. After that it
// appends 1, 2, ... until the combination is unused, registers the result
// and returns it.
func (a *Allocator) Unique(candidate string) string {
	id := candidate
	for n := 1; a.Taken(id); n++ {
		id = candidate + strconv.Itoa(n)
	}
	a.used[id] = struct{}{}
	return id
}
