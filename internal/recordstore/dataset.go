package recordstore

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/forgepatch/internal/identity"
	"github.com/roach88/forgepatch/internal/ir"
)

// Dataset is a YAML snapshot of winning records.
//
//	forms:
//	  - ref: KYWD:Skyrim.esm:01E719
//	    editor_id: WeapMaterialSteel
//	items:
//	  - ref: WEAP:Skyrim.esm:013989
//	    editor_id: SteelSword
//	    name: Steel Sword
//	    ...
type Dataset struct {
	Forms   []Form      `yaml:"forms"`
	Items   []ir.Item   `yaml:"items"`
	Recipes []ir.Recipe `yaml:"recipes"`
}

// BaseForms returns a form for every constant. Optional constants are
// included only when addOns is set.
func BaseForms(constants []identity.Constant, addOns bool) []Form {
	forms := make([]Form, 0, len(constants))
	for _, c := range constants {
		if c.Optional && !addOns {
			continue
		}
		forms = append(forms, Form{Ref: c.Ref, EditorID: c.Name})
	}
	return forms
}

// ReadDataset decodes a dataset, rejecting unknown fields.
func ReadDataset(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if err == io.EOF {
			return &ds, nil
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// LoadDataset reads a dataset file.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := ReadDataset(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

func (ds *Dataset) validate() error {
	seen := make(map[ir.StableRef]struct{})
	check := func(ref ir.StableRef, what string) error {
		if ref.IsNull() {
			return fmt.Errorf("%s without ref", what)
		}
		if _, dup := seen[ref]; dup {
			return fmt.Errorf("duplicate ref %s", ref)
		}
		seen[ref] = struct{}{}
		return nil
	}
	for _, f := range ds.Forms {
		if err := check(f.Ref, "form "+f.EditorID); err != nil {
			return err
		}
	}
	for _, it := range ds.Items {
		if err := check(it.Ref, "item "+it.EditorID); err != nil {
			return err
		}
		switch it.Ref.Kind {
		case ir.KindArmor, ir.KindWeapon, ir.KindAmmo:
		default:
			return fmt.Errorf("item %s: kind %s is not an equipment kind", it.EditorID, it.Ref.Kind)
		}
	}
	for _, r := range ds.Recipes {
		if err := check(r.Ref, "recipe "+r.EditorID); err != nil {
			return err
		}
		if r.Ref.Kind != ir.KindRecipe {
			return fmt.Errorf("recipe %s: kind %s, want %s", r.EditorID, r.Ref.Kind, ir.KindRecipe)
		}
	}
	return nil
}
