package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// Reserved keys of a localization file.
const (
	keyGenderedNouns  = "genderedNouns"
	keyGenderFallback = "genderFallback"
)

// ParseTable parses a localization document: a flat object of key to
// string or array of 1-3 gender variants, plus the reserved keys
// "genderedNouns" (gender tag to word list) and "genderFallback".
func ParseTable(lang string, data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("localization %s: invalid JSON", lang)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("localization %s: top level must be an object", lang)
	}

	table := NewTable(lang)
	var parseErr error
	doc.ForEach(func(k, v gjson.Result) bool {
		key := k.String()
		switch key {
		case keyGenderedNouns:
			v.ForEach(func(gender, words gjson.Result) bool {
				for _, w := range words.Array() {
					table.Genders[gender.String()] = append(table.Genders[gender.String()], w.String())
				}
				return true
			})
		case keyGenderFallback:
			table.Fallback = v.String()
		default:
			switch {
			case v.IsArray():
				items := v.Array()
				if len(items) > len(GenderOrder) {
					parseErr = fmt.Errorf("localization %s: key %q has %d variants, at most %d allowed", lang, key, len(items), len(GenderOrder))
					return false
				}
				variants := make([]string, 0, len(items))
				for _, item := range items {
					variants = append(variants, item.String())
				}
				table.SetVariants(key, variants...)
			case v.Type == gjson.String:
				table.Set(key, v.String())
			default:
				parseErr = fmt.Errorf("localization %s: key %q must be a string or list", lang, key)
				return false
			}
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return table, nil
}

// LoadDir loads every "<lang>.json" file in dir.
func LoadDir(dir string) ([]*Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scan localization dir: %w", err)
	}
	tables := make([]*Table, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read localization file: %w", err)
		}
		lang := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		table, err := ParseTable(lang, data)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}
