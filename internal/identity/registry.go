package identity

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/roach88/forgepatch/internal/ir"
)

// Constant is one symbolic name to record binding.
type Constant struct {
	Name string
	Ref  ir.StableRef

	// Optional marks constants owned by an add-on that may not be loaded.
	Optional bool
}

// Checker reports whether a record exists in the external store.
type Checker interface {
	Exists(ref ir.StableRef) bool
}

// UnresolvedError lists required constants that were not found.
type UnresolvedError struct {
	Names []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved identity constants: %s", strings.Join(e.Names, ", "))
}

// Registry is the resolved name table. Read-only after Build.
type Registry struct {
	refs  map[string]ir.StableRef
	names map[ir.StableRef]string
}

// Build resolves constants against the store. Duplicate names are a
// programming error and reported as such.
func Build(constants []Constant, store Checker) (*Registry, error) {
	r := &Registry{
		refs:  make(map[string]ir.StableRef, len(constants)),
		names: make(map[ir.StableRef]string, len(constants)),
	}

	var missing []string
	for _, c := range constants {
		if _, dup := r.refs[c.Name]; dup {
			return nil, fmt.Errorf("duplicate identity constant %q", c.Name)
		}
		if !store.Exists(c.Ref) {
			if c.Optional {
				slog.Debug("optional constant not loaded", "name", c.Name, "ref", c.Ref)
				r.refs[c.Name] = ir.NullRef
				continue
			}
			missing = append(missing, c.Name)
			continue
		}
		r.refs[c.Name] = c.Ref
		r.names[c.Ref] = c.Name
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &UnresolvedError{Names: missing}
	}
	return r, nil
}

// Get returns the ref bound to name. Unknown names and unresolved optional
// constants return ir.NullRef.
func (r *Registry) Get(name string) ir.StableRef {
	return r.refs[name]
}

// Lookup returns the ref bound to name and whether it resolved to a record.
func (r *Registry) Lookup(name string) (ir.StableRef, bool) {
	ref, ok := r.refs[name]
	return ref, ok && !ref.IsNull()
}

// Declared reports whether name is a constant of the table, resolved or not.
func (r *Registry) Declared(name string) bool {
	_, ok := r.refs[name]
	return ok
}

// Name returns the symbolic name of ref, or "".
func (r *Registry) Name(ref ir.StableRef) string {
	return r.names[ref]
}

// Refs resolves several names, dropping null refs.
func (r *Registry) Refs(names ...string) []ir.StableRef {
	out := make([]ir.StableRef, 0, len(names))
	for _, n := range names {
		if ref := r.Get(n); !ref.IsNull() {
			out = append(out, ref)
		}
	}
	return out
}

// DescriptorSpec declares a material or type descriptor by constant names.
type DescriptorSpec struct {
	ID       string
	Tag      string
	Resource string
	Perks    []string
}

// Descriptors builds descriptors from specs. Specs naming a tag that did
// not resolve (an add-on material that is not loaded) are dropped; specs
// without a tag are kept and can only be matched by rule.
func (r *Registry) Descriptors(specs []DescriptorSpec) []ir.Descriptor {
	out := make([]ir.Descriptor, 0, len(specs))
	for _, s := range specs {
		tag := r.Get(s.Tag)
		if s.Tag != "" && tag.IsNull() {
			continue
		}
		out = append(out, ir.Descriptor{
			ID:       s.ID,
			Tag:      tag,
			Resource: r.Get(s.Resource),
			Perks:    r.Refs(s.Perks...),
		})
	}
	return out
}
