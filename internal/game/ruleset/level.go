package ruleset

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Level is one fixed campaign encounter.
type Level struct {
	Number int    `yaml:"level"`
	Name   string `yaml:"name"`
	HP     int    `yaml:"hp"`
}

type levelFile struct {
	Levels []*Level `yaml:"levels"`
}

// LoadLevels reads every .yaml file in dir and returns the levels sorted by number.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns levels numbered 1..n without gaps, or a non-nil error.
func LoadLevels(dir string) ([]*Level, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	var levels []*Level
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var f levelFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parsing level file %s: %w", path, err)
		}
		levels = append(levels, f.Levels...)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Number < levels[j].Number })
	for i, l := range levels {
		if l.Number != i+1 {
			return nil, fmt.Errorf("levels must be numbered 1..%d without gaps, found %d at position %d", len(levels), l.Number, i+1)
		}
		if l.HP < 1 {
			return nil, fmt.Errorf("level %d: hp must be >= 1, got %d", l.Number, l.HP)
		}
	}
	return levels, nil
}
