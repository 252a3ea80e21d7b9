package level

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/bridges"
)

// yamlLevelFile is the top-level YAML structure for level files.
type yamlLevelFile struct {
	Level yamlLevel `yaml:"level"`
}

// yamlLevel is the YAML representation of a level.
type yamlLevel struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	ViewBox []float64    `yaml:"view_box"`
	Regions []yamlRegion `yaml:"regions"`
	Bridges []yamlBridge `yaml:"bridges"`
}

// yamlRegion is the YAML representation of a terrain region.
type yamlRegion struct {
	Name     string       `yaml:"name"`
	Terrain  string       `yaml:"terrain"`
	Rect     []float64    `yaml:"rect"`
	Circle   []float64    `yaml:"circle"`
	Polygon  [][]float64  `yaml:"polygon"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
	Scale    float64      `yaml:"scale"`
	Z        int          `yaml:"z"`
	Children []yamlRegion `yaml:"children"`
}

// yamlBridge is the YAML representation of a bridge.
type yamlBridge struct {
	ID   string    `yaml:"id"`
	Rect []float64 `yaml:"rect"`
}

// LoadFromFile reads and validates a single level YAML file.
//
// Precondition: path must point to a valid YAML level file.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromFile(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading level file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a level from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the level schema.
// Postcondition: Returns a validated Level or a non-nil error.
func LoadFromBytes(data []byte) (*Level, error) {
	var file yamlLevelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing level YAML: %w", err)
	}

	lvl, err := convertYAMLLevel(file.Level)
	if err != nil {
		return nil, fmt.Errorf("converting level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("validating level: %w", err)
	}
	return lvl, nil
}

// LoadFromDir loads all YAML files in a directory as levels, sorted by file
// name.
//
// Precondition: dir must be a valid directory path.
// Postcondition: Returns all validated levels or the first error encountered.
func LoadFromDir(dir string) ([]*Level, error) {
	return loadFromFS(os.DirFS(dir), ".", dir)
}

// loadFromFS loads every .yaml/.yml file directly under root in fsys.
// label names the location in error messages.
func loadFromFS(fsys fs.FS, root, label string) ([]*Level, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading level directory %s: %w", label, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var levels []*Level
	ids := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("reading level file %s: %w", filepath.Join(label, name), err)
		}
		lvl, err := LoadFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading level from %s: %w", name, err)
		}
		if prev, dup := ids[lvl.ID]; dup {
			return nil, fmt.Errorf("level %q defined in both %s and %s", lvl.ID, prev, name)
		}
		ids[lvl.ID] = name
		levels = append(levels, lvl)
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("no level files found in %s", label)
	}
	return levels, nil
}

// convertYAMLLevel converts the parsed YAML structures into domain types.
func convertYAMLLevel(yl yamlLevel) (*Level, error) {
	lvl := &Level{ID: yl.ID, Name: strings.TrimSpace(yl.Name)}

	vb, err := rectFromSlice(yl.ViewBox)
	if err != nil {
		return nil, fmt.Errorf("view_box: %w", err)
	}
	lvl.ViewBox = vb

	for _, yr := range yl.Regions {
		spec, err := convertYAMLRegion(yr)
		if err != nil {
			return nil, err
		}
		lvl.Regions = append(lvl.Regions, spec)
	}

	for _, yb := range yl.Bridges {
		fp, err := rectFromSlice(yb.Rect)
		if err != nil {
			return nil, fmt.Errorf("bridge %q: rect: %w", yb.ID, err)
		}
		lvl.Bridges = append(lvl.Bridges, BridgeSpec{ID: yb.ID, Footprint: fp})
	}
	return lvl, nil
}

func convertYAMLRegion(yr yamlRegion) (RegionSpec, error) {
	terrain, err := ParseTerrain(yr.Terrain)
	if err != nil {
		return RegionSpec{}, fmt.Errorf("region %q: %w", yr.Name, err)
	}
	spec := RegionSpec{
		Name:    yr.Name,
		Terrain: terrain,
		X:       yr.X,
		Y:       yr.Y,
		Scale:   yr.Scale,
		ZIndex:  yr.Z,
	}

	if yr.Rect != nil {
		r, err := rectFromSlice(yr.Rect)
		if err != nil {
			return RegionSpec{}, fmt.Errorf("region %q: rect: %w", yr.Name, err)
		}
		spec.Shape.Rect = &r
	}
	if yr.Circle != nil {
		if len(yr.Circle) != 3 {
			return RegionSpec{}, fmt.Errorf("region %q: circle: want [cx, cy, r], got %d values", yr.Name, len(yr.Circle))
		}
		spec.Shape.Circle = &Circle{CenterX: yr.Circle[0], CenterY: yr.Circle[1], Radius: yr.Circle[2]}
	}
	if yr.Polygon != nil {
		spec.Shape.Polygon = make([]bridges.Vec2, 0, len(yr.Polygon))
		for i, pt := range yr.Polygon {
			if len(pt) != 2 {
				return RegionSpec{}, fmt.Errorf("region %q: polygon point %d: want [x, y], got %d values", yr.Name, i, len(pt))
			}
			spec.Shape.Polygon = append(spec.Shape.Polygon, bridges.Vec2{X: pt[0], Y: pt[1]})
		}
	}

	for _, yc := range yr.Children {
		child, err := convertYAMLRegion(yc)
		if err != nil {
			return RegionSpec{}, fmt.Errorf("region %q: %w", yr.Name, err)
		}
		spec.Children = append(spec.Children, child)
	}
	return spec, nil
}

func rectFromSlice(v []float64) (bridges.Rect, error) {
	if len(v) != 4 {
		return bridges.Rect{}, fmt.Errorf("want [x, y, width, height], got %d values", len(v))
	}
	return bridges.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// ParseTerrain maps a level-file terrain name to its tag. The empty string
// and "none" both mean untagged.
func ParseTerrain(s string) (bridges.Terrain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return bridges.TerrainNone, nil
	case "land":
		return bridges.TerrainLand, nil
	case "water":
		return bridges.TerrainWater, nil
	default:
		return bridges.TerrainNone, fmt.Errorf("unknown terrain %q", s)
	}
}
