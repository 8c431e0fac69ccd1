package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kasperlewau/vimb/internal/input/keymap"
	"github.com/kasperlewau/vimb/internal/input/mode"
)

// MapDef is one mapping definition from a map file.
type MapDef struct {
	Mode string `toml:"mode" yaml:"mode" json:"mode"`
	LHS  string `toml:"lhs" yaml:"lhs" json:"lhs"`
	RHS  string `toml:"rhs" yaml:"rhs" json:"rhs"`
}

// mapFile is the on-disk structure shared by all three formats.
type mapFile struct {
	Maps []MapDef `toml:"map" yaml:"map" json:"map"`
}

// LoadMapFile reads mapping definitions from a file. The format follows
// the extension: .toml, .yaml/.yml or .json.
func LoadMapFile(path string) ([]MapDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}

	var mf mapFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &mf)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &mf)
	case ".json":
		err = json.Unmarshal(data, &mf)
	default:
		return nil, fmt.Errorf("map file %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing map file %s: %w", path, err)
	}

	for i, def := range mf.Maps {
		if def.LHS == "" {
			return nil, fmt.Errorf("map file %s: map %d: empty lhs", path, i)
		}
		if _, ok := mode.ParseID(def.Mode); !ok {
			return nil, fmt.Errorf("map file %s: map %d (%s): unknown mode %q", path, i, def.LHS, def.Mode)
		}
	}

	return mf.Maps, nil
}

// Apply inserts the definitions into the table with replace semantics: an
// existing mapping with the same lhs and mode is deleted first, so
// re-applying a reloaded file does not pile up shadowed records.
func Apply(defs []MapDef, table *keymap.Table) {
	for _, def := range defs {
		id, ok := mode.ParseID(def.Mode)
		if !ok {
			continue
		}
		table.Delete(def.LHS, id)
		table.Insert(def.LHS, def.RHS, id)
	}
}
