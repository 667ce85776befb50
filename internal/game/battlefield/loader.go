package battlefield

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Layout symbols.
const (
	symbolFloor = '.'
	symbolWall  = '#'
	symbolHole  = '~'
)

// yamlMapFile is the top-level YAML structure for map files.
type yamlMapFile struct {
	Map yamlMap `yaml:"map"`
}

// yamlMap is the YAML representation of a fight map.
type yamlMap struct {
	ID          string           `yaml:"id"`
	Layout      string           `yaml:"layout"`
	StartPlaces []yamlStartPlace `yaml:"start_places"`
}

// yamlStartPlace lists the placement cells of one team.
type yamlStartPlace struct {
	Team  int   `yaml:"team"`
	Cells []int `yaml:"cells"`
}

// LoadTopologyFromFile reads and validates a single map YAML file.
//
// Precondition: path must point to a valid YAML map file.
// Postcondition: Returns a validated Topology or a non-nil error.
func LoadTopologyFromFile(path string) (*Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}
	return LoadTopologyFromBytes(data)
}

// LoadTopologyFromBytes parses and validates a map from YAML bytes.
//
// Layout rows are separated by newlines; every row must have the same width.
// '.' is floor, '#' a wall (blocks movement and sight), '~' a hole (blocks movement only).
//
// Postcondition: Returns a validated Topology or a non-nil error.
func LoadTopologyFromBytes(data []byte) (*Topology, error) {
	var file yamlMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing map YAML: %w", err)
	}

	topology, err := convertYAMLMap(file.Map)
	if err != nil {
		return nil, err
	}
	if err := topology.Validate(); err != nil {
		return nil, fmt.Errorf("validating map: %w", err)
	}
	return topology, nil
}

// LoadTopologiesFromDir loads every YAML file in dir, keyed by map id.
//
// Postcondition: Returns all validated maps or the first error encountered.
func LoadTopologiesFromDir(dir string) (map[string]*Topology, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading maps directory %s: %w", dir, err)
	}

	out := make(map[string]*Topology)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadTopologyFromFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, dup := out[t.ID]; dup {
			return nil, fmt.Errorf("duplicate map id %q in %s", t.ID, entry.Name())
		}
		out[t.ID] = t
	}
	return out, nil
}

func convertYAMLMap(ym yamlMap) (*Topology, error) {
	var rows []string
	for _, line := range strings.Split(ym.Layout, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("map %q has an empty layout", ym.ID)
	}

	width := len(rows[0])
	terrain := make([]Terrain, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("map %q row %d has width %d, want %d", ym.ID, y, len(row), width)
		}
		for x, sym := range row {
			switch sym {
			case symbolFloor:
				terrain = append(terrain, Floor)
			case symbolWall:
				terrain = append(terrain, Terrain{})
			case symbolHole:
				terrain = append(terrain, Terrain{LineOfSight: true})
			default:
				return nil, fmt.Errorf("map %q has unknown symbol %q at (%d, %d)", ym.ID, sym, x, y)
			}
		}
	}

	starts := make(map[int][]int, len(ym.StartPlaces))
	for _, sp := range ym.StartPlaces {
		starts[sp.Team] = append(starts[sp.Team], sp.Cells...)
	}

	return &Topology{
		ID:          ym.ID,
		Dimensions:  Dimensions{Width: width, Height: len(rows)},
		Terrain:     terrain,
		StartPlaces: starts,
	}, nil
}
