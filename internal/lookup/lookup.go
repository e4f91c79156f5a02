// Package lookup resolves categorical codes from the remote API into display
// labels. Tables are loaded once at startup and never mutated afterwards.
package lookup

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Table names.
const (
	POL          = "pol"
	POE          = "poe"
	Status       = "status"
	CantEquipo   = "cantEquipo"
	TamanoEquipo = "tamanoEquipo"
	Ejecutivo    = "ejecutivo"
)

var tableNames = []string{POL, POE, Status, CantEquipo, TamanoEquipo, Ejecutivo}

//go:embed data/*.json
var defaults embed.FS

// Tables is an immutable set of code → label tables.
type Tables struct {
	tables map[string]map[string]string
}

// Load reads the embedded default tables and, when dir is not empty, replaces
// any table for which dir holds a <name>.json, <name>.yaml or <name>.yml file.
func Load(dir string) (*Tables, error) {
	t := &Tables{tables: make(map[string]map[string]string, len(tableNames))}

	for _, name := range tableNames {
		raw, err := defaults.ReadFile("data/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("read embedded table %s: %w", name, err)
		}
		table, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse embedded table %s: %w", name, err)
		}
		t.tables[name] = table
	}

	if dir == "" {
		return t, nil
	}

	for _, name := range tableNames {
		raw, err := readOverride(dir, name)
		if err != nil {
			return nil, err
		}
		if raw == nil {
			continue
		}
		table, err := parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse table %s from %s: %w", name, dir, err)
		}
		t.tables[name] = table
	}

	return t, nil
}

// New builds Tables from in-memory maps. The maps are copied.
func New(src map[string]map[string]string) *Tables {
	t := &Tables{tables: make(map[string]map[string]string, len(src))}
	for name, table := range src {
		cp := make(map[string]string, len(table))
		for k, v := range table {
			cp[k] = v
		}
		t.tables[name] = cp
	}
	return t
}

// Resolve returns the label for code in the named table, or "" when either
// the table or the code is unknown.
func (t *Tables) Resolve(table, code string) string {
	if t == nil {
		return ""
	}
	return t.tables[table][code]
}

// Len reports the number of entries in a table.
func (t *Tables) Len(table string) int {
	if t == nil {
		return 0
	}
	return len(t.tables[table])
}

func readOverride(dir, name string) ([]byte, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		raw, err := os.ReadFile(filepath.Join(dir, name+ext))
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read table %s: %w", name, err)
		}
	}
	return nil, nil
}

// parse accepts JSON or YAML mappings; keys and values may be numbers or strings.
func parse(raw []byte) (map[string]string, error) {
	var generic map[interface{}]interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(generic))
	for k, v := range generic {
		if v == nil {
			continue
		}
		out[fmt.Sprint(k)] = fmt.Sprint(v)
	}
	return out, nil
}
