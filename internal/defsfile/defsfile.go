// Package defsfile loads an option's definitions block from a YAML-shaped
// "<OptionName>.cfg" file: plain "name: value" pairs. It reads one struct
// per file and rejects unknown keys, since a misspelled field in a
// definitions file is meant to fail loudly rather than silently keep the
// zero value.
package defsfile

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads dir/<name>.cfg, decodes it into a freshly zeroed T, and returns
// it. A missing file is reported as a wrapped os.ErrNotExist so callers can
// distinguish "no definitions file" from "definitions file present but
// malformed" if they choose to. Any key present in the file that does not
// correspond to a yaml-tagged (or exported, untagged) field of T is reported
// as an error naming the unknown key.
func Load[T any](dir, name string) (T, error) {
	var out T
	path := filepath.Join(dir, name+".cfg")

	raw, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("defsfile: reading %s: %w", path, err)
	}

	if err := checkUnknownKeys(path, raw, out); err != nil {
		return out, err
	}

	if err := yaml.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("defsfile: parsing %s: %w", path, err)
	}
	return out, nil
}

// checkUnknownKeys decodes raw as a generic mapping and rejects any top
// level key that is not a known yaml-tagged (or exported, untagged) field
// name of dst's type, catching a misspelled definitions-file key instead
// of silently leaving the corresponding field at its zero value.
func checkUnknownKeys(path string, raw []byte, dst any) error {
	var probe map[string]yaml.Node
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return fmt.Errorf("defsfile: parsing %s: %w", path, err)
	}
	known := knownFieldNames(dst)
	for key := range probe {
		if !known[key] {
			return fmt.Errorf("defsfile: %s: unknown key %q", path, key)
		}
	}
	return nil
}

func knownFieldNames(v any) map[string]bool {
	names := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("yaml")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		names[name] = true
	}
	return names
}
