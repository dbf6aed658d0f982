package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// RecordKind is the declared kind of an external record.
type RecordKind string

const (
	KindArmor      RecordKind = "ARMO"
	KindWeapon     RecordKind = "WEAP"
	KindAmmo       RecordKind = "AMMO"
	KindMisc       RecordKind = "MISC"
	KindKeyword    RecordKind = "KYWD"
	KindPerk       RecordKind = "PERK"
	KindRecipe     RecordKind = "COBJ"
	KindGlobal     RecordKind = "GLOB"
	KindIngredient RecordKind = "INGR"
)

// StableRef identifies an external record by the container (plugin file)
// that declares it, the local numeric id inside that container, and the
// declared record kind.
//
// StableRef is comparable and safe to use as a map key.
//
// In JSON and YAML a StableRef is written in its String form.
type StableRef struct {
	Container string
	LocalID   uint32
	Kind      RecordKind
}

// NullRef is the sentinel for an optional reference that did not resolve.
var NullRef = StableRef{}

// IsNull reports whether r is the null sentinel.
func (r StableRef) IsNull() bool {
	return r == NullRef
}

// Ref constructs a StableRef.
func Ref(container string, localID uint32, kind RecordKind) StableRef {
	return StableRef{Container: container, LocalID: localID, Kind: kind}
}

// String renders the ref as "KIND:container:000000".
func (r StableRef) String() string {
	if r.IsNull() {
		return "NULL"
	}
	return fmt.Sprintf("%s:%s:%06X", r.Kind, r.Container, r.LocalID)
}

// ParseRef parses the format produced by String.
func ParseRef(s string) (StableRef, error) {
	if s == "NULL" || s == "" {
		return NullRef, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return NullRef, fmt.Errorf("invalid ref %q: want KIND:container:id", s)
	}
	id, err := strconv.ParseUint(parts[2], 16, 32)
	if err != nil {
		return NullRef, fmt.Errorf("invalid ref %q: %w", s, err)
	}
	return Ref(parts[1], uint32(id), RecordKind(parts[0])), nil
}

// MarshalText implements encoding.TextMarshaler.
func (r StableRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *StableRef) UnmarshalText(text []byte) error {
	parsed, err := ParseRef(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
